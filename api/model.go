// Package api holds the typed object model for the KOOK open platform, the
// endpoint route table, and the HTTP client that speaks the v3 REST surface.
package api

// User is a platform user, possibly scoped to a guild (nickname, roles).
type User struct {
	ID             string  `json:"id,omitempty"`
	Username       string  `json:"username,omitempty"`
	Nickname       string  `json:"nickname,omitempty"`
	IdentifyNum    string  `json:"identify_num,omitempty"`
	Online         bool    `json:"online,omitempty"`
	Bot            bool    `json:"bot,omitempty"`
	OS             string  `json:"os,omitempty"`
	Status         int     `json:"status,omitempty"`
	Avatar         string  `json:"avatar,omitempty"`
	VIPAvatar      string  `json:"vip_avatar,omitempty"`
	MobileVerified bool    `json:"mobile_verified,omitempty"`
	Roles          []int64 `json:"roles,omitempty"`
	JoinedAt       int64   `json:"joined_at,omitempty"`
	ActiveTime     int64   `json:"active_time,omitempty"`
}

// Role is a guild role.
type Role struct {
	RoleID      int64  `json:"role_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Color       int    `json:"color,omitempty"`
	Position    int    `json:"position,omitempty"`
	Hoist       int    `json:"hoist,omitempty"`
	Mentionable int    `json:"mentionable,omitempty"`
	Permissions int64  `json:"permissions,omitempty"`
}

type PermissionOverwrite struct {
	RoleID int64 `json:"role_id,omitempty"`
	Allow  int64 `json:"allow,omitempty"`
	Deny   int64 `json:"deny,omitempty"`
}

type PermissionUser struct {
	User  *User `json:"user,omitempty"`
	Allow int64 `json:"allow,omitempty"`
	Deny  int64 `json:"deny,omitempty"`
}

// ChannelRoleInfo is the per-channel permission override set.
type ChannelRoleInfo struct {
	PermissionOverwrites []PermissionOverwrite `json:"permission_overwrites,omitempty"`
	PermissionUsers      []PermissionUser      `json:"permission_users,omitempty"`
	PermissionSync       int                   `json:"permission_sync,omitempty"`
}

type ChannelRoleSyncResult struct {
	PermissionOverwrites []PermissionOverwrite `json:"permission_overwrites,omitempty"`
	PermissionUsers      []PermissionUser      `json:"permission_users,omitempty"`
}

// Channel is a guild channel. Type 1 is text, 2 is voice.
type Channel struct {
	ChannelRoleInfo
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	MasterID    string `json:"master_id,omitempty"`
	GuildID     string `json:"guild_id,omitempty"`
	Topic       string `json:"topic,omitempty"`
	IsCategory  bool   `json:"is_category,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	Level       int    `json:"level,omitempty"`
	SlowMode    int    `json:"slow_mode,omitempty"`
	Type        int    `json:"type,omitempty"`
	HasPassword bool   `json:"has_password,omitempty"`
	LimitAmount int    `json:"limit_amount,omitempty"`
}

// Guild is a server.
type Guild struct {
	ID               string    `json:"id,omitempty"`
	Name             string    `json:"name,omitempty"`
	Topic            string    `json:"topic,omitempty"`
	UserID           string    `json:"user_id,omitempty"`
	Icon             string    `json:"icon,omitempty"`
	NotifyType       int       `json:"notify_type,omitempty"`
	Region           string    `json:"region,omitempty"`
	EnableOpen       bool      `json:"enable_open,omitempty"`
	OpenID           string    `json:"open_id,omitempty"`
	DefaultChannelID string    `json:"default_channel_id,omitempty"`
	WelcomeChannelID string    `json:"welcome_channel_id,omitempty"`
	Roles            []Role    `json:"roles,omitempty"`
	Channels         []Channel `json:"channels,omitempty"`
}

// Quote is the referenced message attached to a reply.
type Quote struct {
	ID       string `json:"id,omitempty"`
	Type     int    `json:"type,omitempty"`
	Content  string `json:"content,omitempty"`
	CreateAt int64  `json:"create_at,omitempty"`
	Author   *User  `json:"author,omitempty"`
}

// Attachments is the multimedia payload of a fetched message.
type Attachments struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
	Size int64  `json:"size,omitempty"`
}

type Emoji struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// URL is the single-field return of asset uploads, invites and the gateway
// endpoint.
type URL struct {
	URL string `json:"url,omitempty"`
}

// Meta is the pagination block of list returns.
type Meta struct {
	Page      int `json:"page,omitempty"`
	PageTotal int `json:"page_total,omitempty"`
	PageSize  int `json:"page_size,omitempty"`
	Total     int `json:"total,omitempty"`
}

type BlackList struct {
	UserID      string `json:"user_id,omitempty"`
	CreatedTime int64  `json:"created_time,omitempty"`
	Remark      string `json:"remark,omitempty"`
	User        *User  `json:"user,omitempty"`
}

type BlackListsReturn struct {
	Meta       Meta        `json:"meta,omitempty"`
	BlackLists []BlackList `json:"items,omitempty"`
}

// MessageCreateReturn is the acknowledgement of a sent message.
type MessageCreateReturn struct {
	MsgID        string `json:"msg_id,omitempty"`
	MsgTimestamp int64  `json:"msg_timestamp,omitempty"`
	Nonce        string `json:"nonce,omitempty"`
}

type ChannelRoleReturn struct {
	RoleID int64  `json:"role_id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	Allow  int64  `json:"allow,omitempty"`
	Deny   int64  `json:"deny,omitempty"`
}

type GetUserJoinedChannelReturn struct {
	Meta     Meta      `json:"meta,omitempty"`
	Channels []Channel `json:"items,omitempty"`
}

type GuildsReturn struct {
	Meta   Meta    `json:"meta,omitempty"`
	Guilds []Guild `json:"items,omitempty"`
}

type ChannelsReturn struct {
	Meta     Meta      `json:"meta,omitempty"`
	Channels []Channel `json:"items,omitempty"`
}

type GuildUsersReturn struct {
	Meta         Meta   `json:"meta,omitempty"`
	Users        []User `json:"items,omitempty"`
	UserCount    int    `json:"user_count,omitempty"`
	OnlineCount  int    `json:"online_count,omitempty"`
	OfflineCount int    `json:"offline_count,omitempty"`
}

type Reaction struct {
	Emoji Emoji `json:"emoji,omitempty"`
	Count int   `json:"count,omitempty"`
	Me    bool  `json:"me,omitempty"`
}

// BaseMessage is the common shape of fetched channel and direct messages.
type BaseMessage struct {
	ID          string       `json:"id,omitempty"`
	Type        int          `json:"type,omitempty"`
	Content     string       `json:"content,omitempty"`
	CreateAt    int64        `json:"create_at,omitempty"`
	UpdatedAt   int64        `json:"updated_at,omitempty"`
	Reactions   []Reaction   `json:"reactions,omitempty"`
	ImageName   string       `json:"image_name,omitempty"`
	ReadStatus  bool         `json:"read_status,omitempty"`
	Quote       *Quote       `json:"quote,omitempty"`
	Attachments *Attachments `json:"attachments,omitempty"`
}

type ChannelMessage struct {
	BaseMessage
	Author       *User    `json:"author,omitempty"`
	Mention      []string `json:"mention,omitempty"`
	MentionAll   bool     `json:"mention_all,omitempty"`
	MentionRoles []int64  `json:"mention_roles,omitempty"`
	MentionHere  bool     `json:"mention_here,omitempty"`
}

type DirectMessage struct {
	BaseMessage
	AuthorID string `json:"author_id,omitempty"`
	FromType int    `json:"from_type,omitempty"`
	MsgIcon  string `json:"msg_icon,omitempty"`
}

type ChannelMessagesReturn struct {
	Messages []ChannelMessage `json:"items,omitempty"`
}

type DirectMessagesReturn struct {
	Messages []DirectMessage `json:"items,omitempty"`
}

type ReactionUser struct {
	User
	ReactionTime int64 `json:"reaction_time,omitempty"`
}

// TargetInfo is the peer of a private chat session.
type TargetInfo struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Online   bool   `json:"online,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// UserChat is a private chat session.
type UserChat struct {
	Code          string      `json:"code,omitempty"`
	LastReadTime  int64       `json:"last_read_time,omitempty"`
	LatestMsgTime int64       `json:"latest_msg_time,omitempty"`
	UnreadCount   int         `json:"unread_count,omitempty"`
	TargetInfo    *TargetInfo `json:"target_info,omitempty"`
}

type UserChatsReturn struct {
	Meta      Meta       `json:"meta,omitempty"`
	UserChats []UserChat `json:"items,omitempty"`
}

type RolesReturn struct {
	Meta  Meta   `json:"meta,omitempty"`
	Roles []Role `json:"items,omitempty"`
}

type GuildRoleReturn struct {
	UserID  string  `json:"user_id,omitempty"`
	GuildID string  `json:"guild_id,omitempty"`
	Roles   []int64 `json:"roles,omitempty"`
}

type IntimacyImg struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

type IntimacyIndexReturn struct {
	ImgURL     string        `json:"img_url,omitempty"`
	SocialInfo string        `json:"social_info,omitempty"`
	LastRead   int64         `json:"last_read,omitempty"`
	Score      int           `json:"score,omitempty"`
	ImgList    []IntimacyImg `json:"img_list,omitempty"`
}

type GuildBoost struct {
	UserID    string `json:"user_id,omitempty"`
	GuildID   string `json:"guild_id,omitempty"`
	StartTime int64  `json:"start_time,omitempty"`
	EndTime   int64  `json:"end_time,omitempty"`
	User      *User  `json:"user,omitempty"`
}

type GuildBoostReturn struct {
	Meta  Meta         `json:"meta,omitempty"`
	Boost []GuildBoost `json:"items,omitempty"`
}

type GuildEmoji struct {
	Name     string `json:"name,omitempty"`
	ID       string `json:"id,omitempty"`
	UserInfo *User  `json:"user_info,omitempty"`
}

type GuildEmojisReturn struct {
	Meta   Meta         `json:"meta,omitempty"`
	Emojis []GuildEmoji `json:"items,omitempty"`
}

type Invite struct {
	GuildID   string `json:"guild_id,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
	URLCode   string `json:"url_code,omitempty"`
	URL       string `json:"url,omitempty"`
	User      *User  `json:"user,omitempty"`
}

type InvitesReturn struct {
	Meta    Meta     `json:"meta,omitempty"`
	Invites []Invite `json:"items,omitempty"`
}
