package event

import (
	"encoding/json"
	"errors"

	"github.com/Tian-que/kook-go-sdk/api"
)

// errShapeMismatch rejects a candidate shape whose discriminator does not
// match the classified name; parsing then falls back to a looser shape.
var errShapeMismatch = errors.New("event shape mismatch")

// NoticeEvent is the base shape of every system notice.
type NoticeEvent struct {
	Base
	NoticeType string
}

func (e *NoticeEvent) Name() string     { return "notice." + e.NoticeType }
func (e *NoticeEvent) PostType() string { return "notice" }

func (e *NoticeEvent) fill(d *Derived) error {
	if err := e.Base.fill(d); err != nil {
		return err
	}
	e.NoticeType = d.NoticeType
	return nil
}

// expect verifies the classified notice name against the shape's literal.
func (e *NoticeEvent) expect(want string) error {
	if e.NoticeType != want {
		return errShapeMismatch
	}
	return nil
}

// body decodes the kind-specific extra.body section.
func (e *NoticeEvent) body(dest any) error {
	if len(e.Extra.Body) == 0 {
		return nil
	}
	return json.Unmarshal(e.Extra.Body, dest)
}

// ChannelNoticeEvent covers notices scoped to a guild channel.
type ChannelNoticeEvent struct {
	NoticeEvent
}

// PrivateNoticeEvent covers notices scoped to a private chat.
type PrivateNoticeEvent struct {
	NoticeEvent
}

// GuildNoticeEvent covers notices scoped to a whole guild; the envelope's
// target_id is the guild id.
type GuildNoticeEvent struct {
	NoticeEvent
}

// GuildID returns the guild the notice happened in.
func (e *GuildNoticeEvent) GuildID() string { return e.TargetID }

// UserNoticeEvent covers user-centric notices (audio channels, profile).
type UserNoticeEvent struct {
	NoticeEvent
}

// --------------------------------------------------------------------------
// Notice bodies
// --------------------------------------------------------------------------

// ReactionBody describes a reaction change on a channel message.
type ReactionBody struct {
	ChannelID string    `json:"channel_id"`
	MsgID     string    `json:"msg_id"`
	UserID    string    `json:"user_id"`
	Emoji     api.Emoji `json:"emoji"`
}

// PrivateReactionBody describes a reaction change on a direct message.
type PrivateReactionBody struct {
	MsgID    string    `json:"msg_id"`
	UserID   string    `json:"user_id"`
	ChatCode string    `json:"chat_code"`
	Emoji    api.Emoji `json:"emoji"`
}

type MessageUpdateBody struct {
	ChannelID    string   `json:"channel_id"`
	MsgID        string   `json:"msg_id"`
	Content      string   `json:"content"`
	Mention      []string `json:"mention,omitempty"`
	MentionAll   bool     `json:"mention_all,omitempty"`
	MentionHere  bool     `json:"mention_here,omitempty"`
	MentionRoles []int64  `json:"mention_roles,omitempty"`
	UpdatedAt    int64    `json:"updated_at,omitempty"`
}

type MessageDeleteBody struct {
	ChannelID string `json:"channel_id"`
	MsgID     string `json:"msg_id"`
}

type PinBody struct {
	ChannelID  string `json:"channel_id"`
	OperatorID string `json:"operator_id"`
	MsgID      string `json:"msg_id"`
}

type PrivateMessageUpdateBody struct {
	AuthorID  string `json:"author_id"`
	TargetID  string `json:"target_id"`
	MsgID     string `json:"msg_id"`
	Content   string `json:"content"`
	ChatCode  string `json:"chat_code,omitempty"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

type PrivateMessageDeleteBody struct {
	AuthorID  string `json:"author_id"`
	TargetID  string `json:"target_id"`
	MsgID     string `json:"msg_id"`
	ChatCode  string `json:"chat_code,omitempty"`
	DeletedAt int64  `json:"deleted_at,omitempty"`
}

type GuildMemberBody struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname,omitempty"`
	JoinedAt int64  `json:"joined_at,omitempty"`
	ExitedAt int64  `json:"exited_at,omitempty"`
}

type GuildMemberPresenceBody struct {
	UserID    string   `json:"user_id"`
	EventTime int64    `json:"event_time,omitempty"`
	Guilds    []string `json:"guilds,omitempty"`
}

type BlockListBody struct {
	OperatorID string   `json:"operator_id"`
	Remark     string   `json:"remark,omitempty"`
	UserID     []string `json:"user_id"`
}

type AudioChannelBody struct {
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
	JoinedAt  int64  `json:"joined_at,omitempty"`
	ExitedAt  int64  `json:"exited_at,omitempty"`
}

type UserUpdateBody struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type SelfGuildBody struct {
	GuildID string `json:"guild_id"`
}

type BtnClickBody struct {
	Value    string   `json:"value"`
	MsgID    string   `json:"msg_id"`
	UserID   string   `json:"user_id"`
	TargetID string   `json:"target_id"`
	UserInfo api.User `json:"user_info,omitempty"`
}

// --------------------------------------------------------------------------
// Channel notices
// --------------------------------------------------------------------------

// ChannelAddReactionEvent: a user added a reaction to a channel message.
type ChannelAddReactionEvent struct {
	ChannelNoticeEvent
	Body ReactionBody
}

func (e *ChannelAddReactionEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("added_reaction"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// ChannelDeletedReactionEvent: a user removed a reaction from a channel
// message.
type ChannelDeletedReactionEvent struct {
	ChannelNoticeEvent
	Body ReactionBody
}

func (e *ChannelDeletedReactionEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("deleted_reaction"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// ChannelUpdatedMessageEvent: a channel message was edited.
type ChannelUpdatedMessageEvent struct {
	ChannelNoticeEvent
	Body MessageUpdateBody
}

func (e *ChannelUpdatedMessageEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("updated_message"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// ChannelDeleteMessageEvent: a channel message was deleted.
type ChannelDeleteMessageEvent struct {
	ChannelNoticeEvent
	Body MessageDeleteBody
}

func (e *ChannelDeleteMessageEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("deleted_message"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// ChannelAddedEvent: a channel was created in the guild.
type ChannelAddedEvent struct {
	ChannelNoticeEvent
	Body api.Channel
}

func (e *ChannelAddedEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("added_channel"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// ChannelUpdatedEvent: a channel's settings changed.
type ChannelUpdatedEvent struct {
	ChannelNoticeEvent
	Body api.Channel
}

func (e *ChannelUpdatedEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("updated_channel"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// ChannelDeleteEvent: a channel was removed from the guild.
type ChannelDeleteEvent struct {
	ChannelNoticeEvent
	Body struct {
		ID        string `json:"id"`
		DeletedAt int64  `json:"deleted_at,omitempty"`
	}
}

func (e *ChannelDeleteEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("deleted_channel"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// ChannelPinnedMessageEvent: a message was pinned.
type ChannelPinnedMessageEvent struct {
	ChannelNoticeEvent
	Body PinBody
}

func (e *ChannelPinnedMessageEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("pinned_message"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// ChannelUnpinnedMessageEvent: a message was unpinned.
type ChannelUnpinnedMessageEvent struct {
	ChannelNoticeEvent
	Body PinBody
}

func (e *ChannelUnpinnedMessageEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("unpinned_message"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// --------------------------------------------------------------------------
// Private notices
// --------------------------------------------------------------------------

// PrivateUpdateMessageEvent: a direct message was edited.
type PrivateUpdateMessageEvent struct {
	PrivateNoticeEvent
	Body PrivateMessageUpdateBody
}

func (e *PrivateUpdateMessageEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("updated_private_message"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// PrivateDeleteMessageEvent: a direct message was deleted.
type PrivateDeleteMessageEvent struct {
	PrivateNoticeEvent
	Body PrivateMessageDeleteBody
}

func (e *PrivateDeleteMessageEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("deleted_private_message"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// PrivateAddReactionEvent: a reaction was added to a direct message.
type PrivateAddReactionEvent struct {
	PrivateNoticeEvent
	Body PrivateReactionBody
}

func (e *PrivateAddReactionEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("private_added_reaction"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// PrivateDeleteReactionEvent: a reaction was removed from a direct message.
type PrivateDeleteReactionEvent struct {
	PrivateNoticeEvent
	Body PrivateReactionBody
}

func (e *PrivateDeleteReactionEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("private_deleted_reaction"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// --------------------------------------------------------------------------
// Guild notices
// --------------------------------------------------------------------------

// GuildMemberIncreaseEvent: a member joined the guild.
type GuildMemberIncreaseEvent struct {
	GuildNoticeEvent
	Body GuildMemberBody
}

func (e *GuildMemberIncreaseEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("joined_guild"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildMemberDecreaseEvent: a member left the guild.
type GuildMemberDecreaseEvent struct {
	GuildNoticeEvent
	Body GuildMemberBody
}

func (e *GuildMemberDecreaseEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("exited_guild"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildMemberUpdateEvent: a member's guild nickname changed.
type GuildMemberUpdateEvent struct {
	GuildNoticeEvent
	Body GuildMemberBody
}

func (e *GuildMemberUpdateEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("updated_guild_member"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildMemberOnlineEvent: a member came online.
type GuildMemberOnlineEvent struct {
	GuildNoticeEvent
	Body GuildMemberPresenceBody
}

func (e *GuildMemberOnlineEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("guild_member_online"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildMemberOfflineEvent: a member went offline.
type GuildMemberOfflineEvent struct {
	GuildNoticeEvent
	Body GuildMemberPresenceBody
}

func (e *GuildMemberOfflineEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("guild_member_offline"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildRoleAddEvent: a role was created.
type GuildRoleAddEvent struct {
	GuildNoticeEvent
	Body api.Role
}

func (e *GuildRoleAddEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("added_role"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildRoleDeleteEvent: a role was removed.
type GuildRoleDeleteEvent struct {
	GuildNoticeEvent
	Body api.Role
}

func (e *GuildRoleDeleteEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("deleted_role"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildRoleUpdateEvent: a role's settings changed.
type GuildRoleUpdateEvent struct {
	GuildNoticeEvent
	Body api.Role
}

func (e *GuildRoleUpdateEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("updated_role"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildUpdateEvent: the guild's settings changed.
type GuildUpdateEvent struct {
	GuildNoticeEvent
	Body api.Guild
}

func (e *GuildUpdateEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("updated_guild"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildDeleteEvent: the guild was deleted.
type GuildDeleteEvent struct {
	GuildNoticeEvent
	Body api.Guild
}

func (e *GuildDeleteEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("deleted_guild"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildAddBlockListEvent: users were banned from the guild.
type GuildAddBlockListEvent struct {
	GuildNoticeEvent
	Body BlockListBody
}

func (e *GuildAddBlockListEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("added_block_list"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// GuildDeleteBlockListEvent: users were unbanned.
type GuildDeleteBlockListEvent struct {
	GuildNoticeEvent
	Body BlockListBody
}

func (e *GuildDeleteBlockListEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("deleted_block_list"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// --------------------------------------------------------------------------
// User notices
// --------------------------------------------------------------------------

// UserJoinAudioChannelEvent: a user joined a voice channel.
type UserJoinAudioChannelEvent struct {
	UserNoticeEvent
	Body AudioChannelBody
}

func (e *UserJoinAudioChannelEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("joined_channel"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// UserExitAudioChannelEvent: a user left a voice channel.
type UserExitAudioChannelEvent struct {
	UserNoticeEvent
	Body AudioChannelBody
}

func (e *UserExitAudioChannelEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("exited_channel"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// UserInfoUpdateEvent: a related user changed username or avatar. Sent only
// to bots sharing a chat session or friendship with that user.
type UserInfoUpdateEvent struct {
	UserNoticeEvent
	Body UserUpdateBody
}

func (e *UserInfoUpdateEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("user_updated"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// SelfJoinGuildEvent: this bot was added to a guild.
type SelfJoinGuildEvent struct {
	NoticeEvent
	Body SelfGuildBody
}

func (e *SelfJoinGuildEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("self_joined_guild"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// SelfExitGuildEvent: this bot was removed from a guild.
type SelfExitGuildEvent struct {
	NoticeEvent
	Body SelfGuildBody
}

func (e *SelfExitGuildEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("self_exited_guild"); err != nil {
		return err
	}
	return e.body(&e.Body)
}

// CardBtnClickEvent: a user clicked a button inside a card message.
type CardBtnClickEvent struct {
	NoticeEvent
	Body BtnClickBody
}

func (e *CardBtnClickEvent) fill(d *Derived) error {
	if err := e.NoticeEvent.fill(d); err != nil {
		return err
	}
	if err := e.expect("message_btn_click"); err != nil {
		return err
	}
	return e.body(&e.Body)
}
