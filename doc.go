// Package kook is a client SDK for the KOOK (formerly kaiheila) chat
// platform. It maintains the gateway WebSocket session, decodes signaling
// frames into typed events, and wraps the v3 REST API.
//
// The usual entry point is a Supervisor, which runs one Session per
// configured bot token:
//
//	cfg, err := kook.LoadConfig("config.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	sup := kook.NewSupervisor(cfg, func(ctx context.Context, b *kook.Bot, ev event.Event) {
//		if msg, ok := ev.(*event.ChannelMessageEvent); ok && msg.ToMe {
//			b.Send(ctx, msg, message.Message{&message.Text{Content: "hi"}})
//		}
//	}, slog.Default())
//	sup.Run(ctx)
//
// Subpackages: wire (frame codec), event (typed event tree and registry),
// message (segments, serialization, kmarkdown), api (REST client and object
// model).
package kook
