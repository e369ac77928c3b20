package kook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/Tian-que/kook-go-sdk/api"
	"github.com/Tian-que/kook-go-sdk/event"
	"github.com/Tian-que/kook-go-sdk/wire"
)

const (
	reconnectInterval = 3 * time.Second
	heartbeatInterval = 26 * time.Second
)

// Handler receives every decoded event for a connected bot. Handlers run on
// their own goroutine per event; slow ones never stall the read loop.
type Handler func(ctx context.Context, b *Bot, ev event.Event)

// LifecycleHook observes a bot coming online or going offline. The connect
// hook fires once the handshake resolved the bot's identity; the disconnect
// hook fires when a live connection drains, before any reconnect attempt.
type LifecycleHook func(b *Bot)

// Session owns one bot token's gateway connection: dialing, the handshake,
// heartbeats, decoding and dispatch. It reconnects forever until its context
// is cancelled or the token is rejected.
type Session struct {
	cfg     *Config
	token   string
	api     *api.Client
	seq     *SeqStore
	dec     *Decoder
	handler Handler
	log     *slog.Logger

	onConnect    LifecycleHook
	onDisconnect LifecycleHook
}

// NewSession creates a session for one token. seq may be shared between
// sessions; each bot keys its own counter.
func NewSession(cfg *Config, token string, seq *SeqStore, handler Handler, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	client := api.NewClient(token,
		api.WithBaseURL(cfg.APIBaseURL),
		api.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}),
		api.WithLogger(log),
	)
	return &Session{
		cfg:     cfg,
		token:   token,
		api:     client,
		seq:     seq,
		dec:     NewDecoder(seq, cfg.IgnoreOtherBots, log),
		handler: handler,
		log:     log,
	}
}

// API returns the session's REST client.
func (s *Session) API() *api.Client { return s.api }

// OnConnect registers a hook called after each successful handshake.
func (s *Session) OnConnect(fn LifecycleHook) { s.onConnect = fn }

// OnDisconnect registers a hook called when a live connection drains.
func (s *Session) OnDisconnect(fn LifecycleHook) { s.onDisconnect = fn }

// Run connects and serves events until ctx is cancelled or the token is
// rejected. Every other failure reconnects after a fixed delay.
func (s *Session) Run(ctx context.Context) error {
	for {
		err := s.runOnce(ctx)

		var te *TokenError
		if errors.As(err, &te) {
			s.log.Error("token rejected, giving up", "token", maskToken(s.token), "error", err)
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			s.log.Warn("connection lost, reconnecting", "error", err, "delay", reconnectInterval)
		}

		select {
		case <-time.After(reconnectInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runOnce performs one full connection lifetime: gateway fetch, dial,
// handshake, read loop. Returning ErrReconnect (or any non-token error)
// makes Run dial again from scratch.
func (s *Session) runOnce(ctx context.Context) error {
	gw, err := s.api.Gateway(ctx, s.cfg.Compress)
	if err != nil {
		return fmt.Errorf("fetch gateway: %w", err)
	}

	dialer := ws.Dialer{
		Header: ws.HandshakeHeaderHTTP(http.Header{
			"Authorization": []string{"Bot " + s.token},
		}),
	}
	conn, _, _, err := dialer.Dial(ctx, gw)
	if err != nil {
		return fmt.Errorf("dial gateway: %w", err)
	}
	s.log.Debug("gateway connection established", "url", gw)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	var bot *Bot
	defer func() {
		conn.Close()
		if bot != nil {
			// The next connection starts a fresh sequence; stale counters
			// would make the server skip events.
			s.seq.Reset(bot.SelfID())
			s.log.Info("bot disconnected", "self_id", bot.SelfID())
			if s.onDisconnect != nil {
				s.onDisconnect(bot)
			}
		}
	}()

	for {
		data, _, err := wsutil.ReadServerData(conn)
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		if s.cfg.Compress {
			if data, err = wire.Inflate(data); err != nil {
				s.log.Warn("drop undecompressable frame", "error", err)
				continue
			}
		}

		f, err := wire.Parse(data)
		if err != nil {
			s.log.Debug("drop bad frame", "error", err)
			continue
		}

		selfID := ""
		if bot != nil {
			selfID = bot.SelfID()
		}
		ev, err := s.dec.Decode(f, selfID)
		if err != nil {
			var te *TokenError
			if errors.Is(err, ErrReconnect) || errors.As(err, &te) {
				return err
			}
			s.log.Warn("drop undecodable event", "error", err)
			continue
		}
		if ev == nil {
			continue
		}

		if bot == nil {
			lc, ok := ev.(*event.LifecycleMetaEvent)
			if !ok || lc.SubType != "connect" {
				continue
			}
			bot, err = s.handshake(ctx)
			if err != nil {
				return err
			}
			if s.onConnect != nil {
				s.onConnect(bot)
			}
			go s.heartbeat(conn, bot.SelfID(), stop)
		}

		s.dispatch(ctx, bot, ev)
	}
}

// maskToken keeps enough of a token to identify it in logs without
// leaking the credential.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}

// handshake resolves the bot identity behind the token once the gateway has
// said hello.
func (s *Session) handshake(ctx context.Context) (*Bot, error) {
	var me api.User
	if err := s.api.CallInto(ctx, "user/me", nil, &me); err != nil {
		return nil, fmt.Errorf("resolve bot identity: %w", err)
	}
	bot := NewBot(me.ID, me.Username, s.api, s.log)
	bot.SetNicknames(s.cfg.Nicknames)
	s.log.Info("bot connected", "self_id", bot.SelfID(), "username", bot.Username())
	return bot, nil
}

// heartbeat pings the gateway with the highest consumed sequence number
// until the connection goes away.
func (s *Session) heartbeat(conn net.Conn, selfID string, stop <-chan struct{}) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		if err := wsutil.WriteClientText(conn, wire.Heartbeat(s.seq.Get(selfID))); err != nil {
			s.log.Debug("heartbeat write failed", "error", err)
			return
		}
		select {
		case <-ticker.C:
		case <-stop:
			return
		}
	}
}

// dispatch runs to-me detection on chat messages and hands the event to the
// handler on its own goroutine. A panicking handler is logged, not fatal.
func (s *Session) dispatch(ctx context.Context, bot *Bot, ev event.Event) {
	for _, prefix := range s.cfg.SuppressEvents {
		if strings.HasPrefix(ev.Name(), prefix) {
			s.log.Debug("event suppressed", "event", ev.Name(), "prefix", prefix)
			return
		}
	}

	switch e := ev.(type) {
	case *event.ChannelMessageEvent:
		bot.CheckAtMe(&e.MessageEvent)
		if !e.ToMe {
			bot.CheckNickname(&e.MessageEvent)
		}
	case *event.PrivateMessageEvent:
		e.ToMe = true
	}

	if s.handler == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("handler panic", "event", ev.Name(), "panic", r)
			}
		}()
		s.handler(ctx, bot, ev)
	}()
}
