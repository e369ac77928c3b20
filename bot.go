package kook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Tian-que/kook-go-sdk/api"
	"github.com/Tian-que/kook-go-sdk/event"
	"github.com/Tian-que/kook-go-sdk/message"
)

// SendStrategy performs the final API call for an outgoing message. The
// default posts to the platform; applications swap it to intercept or
// redirect sends (testing, moderation, dry runs).
type SendStrategy func(ctx context.Context, b *Bot, endpoint string, params map[string]any) (*api.MessageCreateReturn, error)

// Bot is one authenticated identity: its REST client plus message helpers.
// It is handed to event handlers and is safe for concurrent use.
type Bot struct {
	selfID    string
	username  string
	api       *api.Client
	send      SendStrategy
	nicknames []string
	log       *slog.Logger
}

// NewBot wraps an API client as a bot identity.
func NewBot(selfID, username string, client *api.Client, log *slog.Logger) *Bot {
	if log == nil {
		log = slog.Default()
	}
	return &Bot{
		selfID:   selfID,
		username: username,
		api:      client,
		send:     defaultSend,
		log:      log,
	}
}

// SelfID returns the bot's user id.
func (b *Bot) SelfID() string { return b.selfID }

// Username returns the bot's username.
func (b *Bot) Username() string { return b.username }

// API exposes the underlying REST client for endpoints without a helper.
func (b *Bot) API() *api.Client { return b.api }

// SetSendStrategy replaces the outgoing-message strategy.
func (b *Bot) SetSendStrategy(s SendStrategy) {
	if s != nil {
		b.send = s
	}
}

// SetNicknames sets the names CheckNickname strips from message heads.
func (b *Bot) SetNicknames(names []string) { b.nicknames = names }

func defaultSend(ctx context.Context, b *Bot, endpoint string, params map[string]any) (*api.MessageCreateReturn, error) {
	var ret api.MessageCreateReturn
	if err := b.api.CallInto(ctx, endpoint, params, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// UploadAsset uploads a local file and returns its remote URL. Bot
// satisfies message.Uploader, so serialization can push inline media.
func (b *Bot) UploadAsset(ctx context.Context, filename string, data []byte) (string, error) {
	return b.api.UploadAsset(ctx, filename, data)
}

var _ message.Uploader = (*Bot)(nil)

// --------------------------------------------------------------------------
// Sending
// --------------------------------------------------------------------------

// SendChannelMsg sends a message to a guild channel. quote may be empty.
func (b *Bot) SendChannelMsg(ctx context.Context, targetID string, msg message.Message, quote string) (*api.MessageCreateReturn, error) {
	params, err := b.sendParams(ctx, targetID, msg, quote)
	if err != nil {
		return nil, err
	}
	return b.send(ctx, b, "message/create", params)
}

// SendTempMsg sends an ephemeral channel message visible only to tempTargetID.
// It is not persisted server-side.
func (b *Bot) SendTempMsg(ctx context.Context, targetID, tempTargetID string, msg message.Message, quote string) (*api.MessageCreateReturn, error) {
	params, err := b.sendParams(ctx, targetID, msg, quote)
	if err != nil {
		return nil, err
	}
	params["temp_target_id"] = tempTargetID
	return b.send(ctx, b, "message/create", params)
}

// SendPrivateMsg sends a direct message to a user.
func (b *Bot) SendPrivateMsg(ctx context.Context, userID string, msg message.Message, quote string) (*api.MessageCreateReturn, error) {
	params, err := b.sendParams(ctx, userID, msg, quote)
	if err != nil {
		return nil, err
	}
	return b.send(ctx, b, "direct-message/create", params)
}

// Send replies in the conversation an event came from: the channel for
// channel messages, the author's DM for private ones.
func (b *Bot) Send(ctx context.Context, ev event.Event, msg message.Message) (*api.MessageCreateReturn, error) {
	switch e := ev.(type) {
	case *event.ChannelMessageEvent:
		return b.SendChannelMsg(ctx, e.TargetID, msg, "")
	case *event.PrivateMessageEvent:
		return b.SendPrivateMsg(ctx, e.UserID, msg, "")
	default:
		return nil, fmt.Errorf("cannot reply to event %s", ev.Name())
	}
}

func (b *Bot) sendParams(ctx context.Context, targetID string, msg message.Message, quote string) (map[string]any, error) {
	wc, err := message.Serialize(ctx, msg, b)
	if err != nil {
		return nil, fmt.Errorf("serialize message: %w", err)
	}
	params := map[string]any{
		"type":      wc.Type,
		"target_id": targetID,
		"content":   wc.Content,
		"nonce":     uuid.NewString(),
	}
	if wc.Quote != "" {
		params["quote"] = wc.Quote
	}
	if quote != "" {
		params["quote"] = quote
	}
	return params, nil
}

// --------------------------------------------------------------------------
// Typed endpoint helpers
// --------------------------------------------------------------------------

// GetUserInfo fetches a user profile. guildID may be empty for the global one.
func (b *Bot) GetUserInfo(ctx context.Context, userID, guildID string) (*api.User, error) {
	params := map[string]any{"user_id": userID}
	if guildID != "" {
		params["guild_id"] = guildID
	}
	var u api.User
	if err := b.api.CallInto(ctx, "user/view", params, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetGuildList lists the guilds the bot has joined.
func (b *Bot) GetGuildList(ctx context.Context) (*api.GuildsReturn, error) {
	var ret api.GuildsReturn
	if err := b.api.CallInto(ctx, "guild/list", nil, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// GetChannelInfo fetches one channel.
func (b *Bot) GetChannelInfo(ctx context.Context, channelID string) (*api.Channel, error) {
	var ch api.Channel
	if err := b.api.CallInto(ctx, "channel/view", map[string]any{"target_id": channelID}, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// DeleteMsg removes a channel message the bot may manage.
func (b *Bot) DeleteMsg(ctx context.Context, msgID string) error {
	_, err := b.api.Call(ctx, "message/delete", map[string]any{"msg_id": msgID})
	return err
}

// --------------------------------------------------------------------------
// To-me detection
// --------------------------------------------------------------------------

// CheckAtMe sets ToMe and strips the bot's own mention when the message
// starts or ends with it.
func (b *Bot) CheckAtMe(ev *event.MessageEvent) {
	msg := ev.Message
	if len(msg) == 0 {
		return
	}
	if m, ok := msg[0].(*message.Mention); ok && m.UserID == b.selfID {
		ev.ToMe = true
		msg = msg[1:]
		msg = trimLeadingSpace(msg)
	} else if m, ok := msg[len(msg)-1].(*message.Mention); ok && m.UserID == b.selfID {
		ev.ToMe = true
		msg = msg[:len(msg)-1]
	}
	ev.Message = msg
}

// CheckNickname sets ToMe and strips a configured nickname from the head of
// the first text segment.
func (b *Bot) CheckNickname(ev *event.MessageEvent) {
	if len(ev.Message) == 0 || len(b.nicknames) == 0 {
		return
	}
	first, ok := ev.Message[0].(*message.Text)
	if !ok {
		return
	}
	for _, nick := range b.nicknames {
		if nick == "" || !strings.HasPrefix(first.Content, nick) {
			continue
		}
		ev.ToMe = true
		rest := strings.TrimLeft(strings.TrimPrefix(first.Content, nick), " ")
		if rest == "" {
			ev.Message = ev.Message[1:]
		} else {
			first.Content = rest
		}
		return
	}
}

func trimLeadingSpace(msg message.Message) message.Message {
	if len(msg) == 0 {
		return msg
	}
	if t, ok := msg[0].(*message.Text); ok {
		t.Content = strings.TrimLeft(t.Content, " ")
		if t.Content == "" {
			return msg[1:]
		}
	}
	return msg
}
