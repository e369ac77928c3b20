// kookcat connects the configured bots to the KOOK gateway and prints every
// event as it arrives. Useful for smoke-testing tokens and watching traffic.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	kook "github.com/Tian-que/kook-go-sdk"
	"github.com/Tian-que/kook-go-sdk/event"
)

var (
	configPath string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "kookcat",
		Short: "tail events from the KOOK gateway",
		RunE:  run,

		SilenceUsage: true,
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config (env vars with KOOK_ prefix also apply)")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg, err := kook.LoadConfig(configPath)
	if err != nil {
		return err
	}

	sup := kook.NewSupervisor(cfg, printEvent, log)
	sup.OnConnect(func(b *kook.Bot) {
		fmt.Printf("[%s] online as %s\n", b.SelfID(), b.Username())
	})
	sup.OnDisconnect(func(b *kook.Bot) {
		fmt.Printf("[%s] offline\n", b.SelfID())
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sup.Start(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")
	cancel()
	return sup.Stop(10 * time.Second)
}

func printEvent(ctx context.Context, b *kook.Bot, ev event.Event) {
	switch e := ev.(type) {
	case *event.ChannelMessageEvent:
		fmt.Printf("[%s] %s @ %s/%s: %s\n", b.SelfID(), e.UserID, e.Extra.GuildID, e.GroupID, e.PlainText())
	case *event.PrivateMessageEvent:
		fmt.Printf("[%s] DM from %s: %s\n", b.SelfID(), e.UserID, e.PlainText())
	case *event.HeartbeatMetaEvent:
		// too chatty for stdout
	default:
		fmt.Printf("[%s] %s\n", b.SelfID(), ev.Name())
	}
}
