package kook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Supervisor runs one Session per configured bot token. Sessions are
// isolated: a rejected token stops that bot alone, the rest keep serving.
type Supervisor struct {
	cfg      *Config
	handler  Handler
	log      *slog.Logger
	seq      *SeqStore
	sessions []*Session

	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewSupervisor builds sessions for every bot in cfg. cfg must have passed
// Validate.
func NewSupervisor(cfg *Config, handler Handler, log *slog.Logger) *Supervisor {
	if log == nil {
		log = slog.Default()
	}
	seq := NewSeqStore()
	s := &Supervisor{cfg: cfg, handler: handler, log: log, seq: seq}
	for _, b := range cfg.Bots {
		s.sessions = append(s.sessions, NewSession(cfg, b.Token, seq, handler, log))
	}
	return s
}

// Sessions returns the supervised sessions, one per token.
func (s *Supervisor) Sessions() []*Session { return s.sessions }

// OnConnect registers fn on every session. Set hooks before Start.
func (s *Supervisor) OnConnect(fn LifecycleHook) {
	for _, sess := range s.sessions {
		sess.OnConnect(fn)
	}
}

// OnDisconnect registers fn on every session. Set hooks before Start.
func (s *Supervisor) OnDisconnect(fn LifecycleHook) {
	for _, sess := range s.sessions {
		sess.OnDisconnect(fn)
	}
}

// Start launches every session. It returns immediately; use Wait or Stop.
func (s *Supervisor) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	s.group = g

	for _, sess := range s.sessions {
		sess := sess
		g.Go(func() error {
			err := sess.Run(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				// Keep the other bots alive; the failure is already logged
				// with its token's session.
				s.log.Error("session terminated", "error", err)
			}
			return nil
		})
	}
}

// Wait blocks until every session has exited. Before Start there is
// nothing to wait for.
func (s *Supervisor) Wait() error {
	if s.group == nil {
		return nil
	}
	return s.group.Wait()
}

// Run starts all sessions and blocks until ctx is cancelled and they wind
// down.
func (s *Supervisor) Run(ctx context.Context) error {
	s.Start(ctx)
	return s.Wait()
}

// Stop cancels all sessions and waits up to timeout for them to exit.
// Sessions still running after the deadline are abandoned and logged.
func (s *Supervisor) Stop(timeout time.Duration) error {
	if s.cancel != nil {
		s.cancel()
	}
	done := make(chan error, 1)
	go func() { done <- s.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		s.log.Warn("shutdown timed out, abandoning sessions", "timeout", timeout)
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
