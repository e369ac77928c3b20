// Package event defines the typed event tree for the KOOK gateway and the
// prefix-keyed model registry used to pick the most specific shape for a
// dotted event name (post_type.detail_type.sub_type). The registry is built
// once from an explicit registration list; no runtime introspection.
package event

import (
	"encoding/json"
	"strconv"

	"github.com/Tian-que/kook-go-sdk/api"
	"github.com/Tian-que/kook-go-sdk/message"
)

// Event is one decoded domain object handed to the dispatch boundary.
type Event interface {
	// Name returns the dotted event path, e.g. "message.group.text".
	Name() string
	// PostType returns the first path component ("message", "notice",
	// "meta_event").
	PostType() string
}

// Derived carries the classification fields the decoder computes from the
// raw envelope before parsing candidate shapes.
type Derived struct {
	SelfID      string
	PostType    string // "message" or "notice"
	MessageType string // "private" or "group", message events only
	SubType     string // content-kind name, message events only
	NoticeType  string // notice events only
	UserID      string
	GroupID     string
}

// filler is implemented by shapes that accept derived fields after the raw
// envelope has been unmarshalled. Returning an error rejects the candidate
// and moves parsing on to the next, looser shape.
type filler interface {
	fill(d *Derived) error
}

// ExtraType is the "extra.type" wire field: an integer content-kind code on
// message events, a notice name string on system events.
type ExtraType string

func (t *ExtraType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = ExtraType(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = ExtraType(strconv.Itoa(n))
	return nil
}

// Code returns the integer form, or 0 when the field held a notice name.
func (t ExtraType) Code() int {
	n, _ := strconv.Atoi(string(t))
	return n
}

// Extra is the kind-specific envelope section of an event payload.
type Extra struct {
	Type         ExtraType              `json:"type"`
	GuildID      string                 `json:"guild_id,omitempty"`
	ChannelName  string                 `json:"channel_name,omitempty"`
	Mention      []string               `json:"mention,omitempty"`
	MentionAll   bool                   `json:"mention_all,omitempty"`
	MentionRoles []int64                `json:"mention_roles,omitempty"`
	MentionHere  bool                   `json:"mention_here,omitempty"`
	Author       *api.User              `json:"author,omitempty"`
	Body         json.RawMessage        `json:"body,omitempty"`
	KMarkdown    *message.KMarkdownInfo `json:"kmarkdown,omitempty"`
	Attachments  *message.Attachment    `json:"attachments,omitempty"`
	Code         string                 `json:"code,omitempty"`
}

// Base is the common envelope every normal event carries. It is also the
// generic catch-all shape: resolution that matches nothing more specific
// terminates here.
type Base struct {
	ChannelType  string `json:"channel_type"`
	TypeCode     int    `json:"type"`
	TargetID     string `json:"target_id"`
	AuthorID     string `json:"author_id"`
	Content      string `json:"content"`
	MsgID        string `json:"msg_id"`
	MsgTimestamp int64  `json:"msg_timestamp"`
	Nonce        string `json:"nonce,omitempty"`
	Extra        Extra  `json:"extra"`

	// Derived, not on the wire.
	SelfID       string `json:"-"`
	UserID       string `json:"-"`
	GroupID      string `json:"-"`
	PostTypeName string `json:"-"`
}

func (b *Base) Name() string     { return b.PostTypeName }
func (b *Base) PostType() string { return b.PostTypeName }

func (b *Base) fill(d *Derived) error {
	b.SelfID = d.SelfID
	b.UserID = d.UserID
	b.GroupID = d.GroupID
	b.PostTypeName = d.PostType
	return nil
}

// --------------------------------------------------------------------------
// Message events
// --------------------------------------------------------------------------

// MessageEvent is a chat message, direct or channel.
type MessageEvent struct {
	Base
	MessageType string // "private" or "group"
	SubType     string // content-kind name ("text", "image", ...)
	Message     message.Message
	ToMe        bool
}

func (e *MessageEvent) Name() string {
	name := "message." + e.MessageType
	if e.SubType != "" {
		name += "." + e.SubType
	}
	return name
}

func (e *MessageEvent) PostType() string { return "message" }

// PlainText returns the message's plain-text projection.
func (e *MessageEvent) PlainText() string { return e.Message.ExtractPlainText() }

func (e *MessageEvent) fill(d *Derived) error {
	if err := e.Base.fill(d); err != nil {
		return err
	}
	e.MessageType = d.MessageType
	e.SubType = d.SubType
	e.Message = message.Deserialize(e.TypeCode, &message.Payload{
		Content:     e.Content,
		Attachments: e.Extra.Attachments,
		KMarkdown:   e.Extra.KMarkdown,
	})
	return nil
}

// PrivateMessageEvent is a direct message.
type PrivateMessageEvent struct {
	MessageEvent
}

func (e *PrivateMessageEvent) fill(d *Derived) error {
	if err := e.MessageEvent.fill(d); err != nil {
		return err
	}
	if d.MessageType != "private" {
		return errShapeMismatch
	}
	return nil
}

// SessionID identifies the conversation for per-session middleware.
func (e *PrivateMessageEvent) SessionID() string { return "user_" + e.UserID }

// ChannelMessageEvent is a message in a guild channel.
type ChannelMessageEvent struct {
	MessageEvent
}

func (e *ChannelMessageEvent) fill(d *Derived) error {
	if err := e.MessageEvent.fill(d); err != nil {
		return err
	}
	if d.MessageType != "group" {
		return errShapeMismatch
	}
	return nil
}

func (e *ChannelMessageEvent) SessionID() string {
	return "group_" + e.GroupID + "_" + e.UserID
}

// --------------------------------------------------------------------------
// Meta events
// --------------------------------------------------------------------------

// MetaEvent covers protocol lifecycle and heartbeat signals; it carries no
// wire envelope.
type MetaEvent struct {
	MetaEventType string
	SubType       string
}

func (e *MetaEvent) Name() string {
	name := "meta_event." + e.MetaEventType
	if e.SubType != "" {
		name += "." + e.SubType
	}
	return name
}

func (e *MetaEvent) PostType() string { return "meta_event" }

// LifecycleMetaEvent is synthesized by the decoder for a successful Hello.
type LifecycleMetaEvent struct {
	MetaEvent
	SessionID string
}

// HeartbeatMetaEvent is synthesized by the decoder for each Pong.
type HeartbeatMetaEvent struct {
	MetaEvent
}

// NewLifecycle builds the connect lifecycle event for a gateway session id.
func NewLifecycle(sessionID string) *LifecycleMetaEvent {
	return &LifecycleMetaEvent{
		MetaEvent: MetaEvent{MetaEventType: "lifecycle", SubType: "connect"},
		SessionID: sessionID,
	}
}

// NewHeartbeat builds the heartbeat meta event.
func NewHeartbeat() *HeartbeatMetaEvent {
	return &HeartbeatMetaEvent{MetaEvent: MetaEvent{MetaEventType: "heartbeat"}}
}
