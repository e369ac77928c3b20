package event

import "strings"

// Model binds a dotted event path to a constructor for its shape.
type Model struct {
	Path string
	New  func() Event
}

// registry maps dotted paths to models. It is populated at init time and by
// Register calls during startup; reads after startup need no locking.
var registry = map[string]Model{}

// Register binds a shape constructor to a dotted event path. Registering an
// already-bound path replaces the previous model, which lets applications
// substitute their own shapes before connecting.
func Register(path string, newFn func() Event) {
	registry[path] = Model{Path: path, New: newFn}
}

// Resolve returns the candidate models for a dotted event name, most
// specific first. Candidates are the registered models whose path is the
// name itself or a whole-segment prefix of it, ending with the generic
// catch-all at path "".
func Resolve(name string) []Model {
	var out []Model
	for path := name; path != ""; {
		if m, ok := registry[path]; ok {
			out = append(out, m)
		}
		i := strings.LastIndexByte(path, '.')
		if i < 0 {
			break
		}
		path = path[:i]
	}
	if m, ok := registry[""]; ok {
		out = append(out, m)
	}
	return out
}

func init() {
	for _, m := range []Model{
		{"", func() Event { return &Base{} }},

		{"message", func() Event { return &MessageEvent{} }},
		{"message.private", func() Event { return &PrivateMessageEvent{} }},
		{"message.group", func() Event { return &ChannelMessageEvent{} }},

		{"notice", func() Event { return &NoticeEvent{} }},
		{"notice.added_reaction", func() Event { return &ChannelAddReactionEvent{} }},
		{"notice.deleted_reaction", func() Event { return &ChannelDeletedReactionEvent{} }},
		{"notice.updated_message", func() Event { return &ChannelUpdatedMessageEvent{} }},
		{"notice.deleted_message", func() Event { return &ChannelDeleteMessageEvent{} }},
		{"notice.added_channel", func() Event { return &ChannelAddedEvent{} }},
		{"notice.updated_channel", func() Event { return &ChannelUpdatedEvent{} }},
		{"notice.deleted_channel", func() Event { return &ChannelDeleteEvent{} }},
		{"notice.pinned_message", func() Event { return &ChannelPinnedMessageEvent{} }},
		{"notice.unpinned_message", func() Event { return &ChannelUnpinnedMessageEvent{} }},
		{"notice.updated_private_message", func() Event { return &PrivateUpdateMessageEvent{} }},
		{"notice.deleted_private_message", func() Event { return &PrivateDeleteMessageEvent{} }},
		{"notice.private_added_reaction", func() Event { return &PrivateAddReactionEvent{} }},
		{"notice.private_deleted_reaction", func() Event { return &PrivateDeleteReactionEvent{} }},
		{"notice.joined_guild", func() Event { return &GuildMemberIncreaseEvent{} }},
		{"notice.exited_guild", func() Event { return &GuildMemberDecreaseEvent{} }},
		{"notice.updated_guild_member", func() Event { return &GuildMemberUpdateEvent{} }},
		{"notice.guild_member_online", func() Event { return &GuildMemberOnlineEvent{} }},
		{"notice.guild_member_offline", func() Event { return &GuildMemberOfflineEvent{} }},
		{"notice.added_role", func() Event { return &GuildRoleAddEvent{} }},
		{"notice.deleted_role", func() Event { return &GuildRoleDeleteEvent{} }},
		{"notice.updated_role", func() Event { return &GuildRoleUpdateEvent{} }},
		{"notice.updated_guild", func() Event { return &GuildUpdateEvent{} }},
		{"notice.deleted_guild", func() Event { return &GuildDeleteEvent{} }},
		{"notice.added_block_list", func() Event { return &GuildAddBlockListEvent{} }},
		{"notice.deleted_block_list", func() Event { return &GuildDeleteBlockListEvent{} }},
		{"notice.joined_channel", func() Event { return &UserJoinAudioChannelEvent{} }},
		{"notice.exited_channel", func() Event { return &UserExitAudioChannelEvent{} }},
		{"notice.user_updated", func() Event { return &UserInfoUpdateEvent{} }},
		{"notice.self_joined_guild", func() Event { return &SelfJoinGuildEvent{} }},
		{"notice.self_exited_guild", func() Event { return &SelfExitGuildEvent{} }},
		{"notice.message_btn_click", func() Event { return &CardBtnClickEvent{} }},

		{"meta_event", func() Event { return &MetaEvent{} }},
		{"meta_event.lifecycle", func() Event { return &LifecycleMetaEvent{} }},
		{"meta_event.heartbeat", func() Event { return &HeartbeatMetaEvent{} }},
	} {
		Register(m.Path, m.New)
	}
}
