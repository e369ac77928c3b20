package kook

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Tian-que/kook-go-sdk/api"
	"github.com/Tian-que/kook-go-sdk/event"
	"github.com/Tian-que/kook-go-sdk/message"
	"github.com/Tian-que/kook-go-sdk/wire"
)

// Decoder turns signaling frames into domain events. A nil event with a nil
// error means the frame was consumed without producing anything to dispatch
// (pings, resume acks, suppressed authors).
type Decoder struct {
	seq             *SeqStore
	ignoreOtherBots bool
	log             *slog.Logger
}

// NewDecoder creates a decoder sharing the session's sequence store.
func NewDecoder(seq *SeqStore, ignoreOtherBots bool, log *slog.Logger) *Decoder {
	if log == nil {
		log = slog.Default()
	}
	return &Decoder{seq: seq, ignoreOtherBots: ignoreOtherBots, log: log}
}

// Decode processes one frame for the bot identified by selfID. selfID may
// be empty before the handshake completes; author suppression is skipped
// until it is known.
func (d *Decoder) Decode(f *wire.Frame, selfID string) (event.Event, error) {
	switch f.Signal {
	case wire.SigHello:
		return d.decodeHello(f)

	case wire.SigPong:
		d.log.Debug("heartbeat ack", "self_id", selfID)
		return event.NewHeartbeat(), nil

	case wire.SigReconnect:
		return nil, ErrReconnect

	case wire.SigResumeAck:
		// Resume is never attempted; a broken session reconnects from
		// scratch instead.
		return nil, nil

	case wire.SigEvent:
		// The counter must advance even if the body fails to decode, so a
		// poison event is not re-delivered forever. Before the handshake no
		// bot owns a counter yet; nothing to advance.
		if selfID != "" {
			d.seq.Update(selfID, f.SN)
		}
		return d.decodeEvent(f, selfID)

	default:
		return nil, nil
	}
}

func (d *Decoder) decodeHello(f *wire.Frame) (event.Event, error) {
	hello, err := f.Hello()
	if err != nil {
		return nil, err
	}
	switch hello.Code {
	case wire.HelloOK:
		return event.NewLifecycle(hello.SessionID), nil
	case wire.HelloSessionExpired:
		return nil, ErrReconnect
	case wire.HelloTokenInvalid:
		return nil, &TokenError{Code: hello.Code, Message: "invalid token"}
	case wire.HelloTokenVerifyErr:
		return nil, &TokenError{Code: hello.Code, Message: "token verification failed"}
	default:
		return nil, fmt.Errorf("gateway hello failed: code %d", hello.Code)
	}
}

// probe is the minimal envelope slice needed to classify an event payload.
type probe struct {
	Type        int    `json:"type"`
	ChannelType string `json:"channel_type"`
	TargetID    string `json:"target_id"`
	AuthorID    string `json:"author_id"`
	Extra       struct {
		Type   event.ExtraType `json:"type"`
		Author *api.User       `json:"author"`
	} `json:"extra"`
}

func (d *Decoder) decodeEvent(f *wire.Frame, selfID string) (event.Event, error) {
	var p probe
	if err := json.Unmarshal(f.Data, &p); err != nil {
		return nil, fmt.Errorf("decode event envelope: %w", err)
	}

	// The bot's own messages echo back; drop them.
	if selfID != "" && p.AuthorID == selfID {
		return nil, nil
	}
	if d.ignoreOtherBots && p.Extra.Author != nil && p.Extra.Author.Bot {
		return nil, nil
	}

	derived := &event.Derived{
		SelfID:  selfID,
		UserID:  p.AuthorID,
		GroupID: p.TargetID,
	}
	// author_id "1" is the platform itself.
	if p.AuthorID == "1" {
		derived.UserID = "SYSTEM"
	}

	var name string
	if p.Type == message.TypeSystem {
		derived.PostType = "notice"
		derived.NoticeType = string(p.Extra.Type)
		name = "notice." + derived.NoticeType
	} else {
		derived.PostType = "message"
		derived.MessageType = strings.ToLower(p.ChannelType)
		if derived.MessageType == "person" {
			derived.MessageType = "private"
		}
		derived.SubType = message.TypeName(p.Type)
		name = "message." + derived.MessageType + "." + derived.SubType
	}

	return event.Parse(name, f.Data, derived), nil
}
