package api

import "net/http"

// route binds an endpoint name to its HTTP method and, where the platform
// documents one, a constructor for the typed result. A nil newResult means
// the caller gets the raw data section.
type route struct {
	method    string
	newResult func() any
}

// routes is the endpoint table. Unknown names fall back to POST with a raw
// result, matching the platform's own convention for new endpoints.
var routes = map[string]route{
	"asset/create":     {http.MethodPost, func() any { return &URL{} }},
	"blacklist/create": {http.MethodPost, nil},
	"blacklist/delete": {http.MethodPost, nil},
	"blacklist/list":   {http.MethodGet, func() any { return &BlackListsReturn{} }},

	"channel-user/get-joined-channel": {http.MethodGet, func() any { return &GetUserJoinedChannelReturn{} }},

	"channel-role/create": {http.MethodPost, func() any { return &ChannelRoleReturn{} }},
	"channel-role/delete": {http.MethodPost, nil},
	"channel-role/index":  {http.MethodGet, func() any { return &ChannelRoleInfo{} }},
	"channel-role/update": {http.MethodPost, func() any { return &ChannelRoleReturn{} }},
	"channel-role/sync":   {http.MethodPost, func() any { return &ChannelRoleSyncResult{} }},

	"channel/create":    {http.MethodPost, func() any { return &Channel{} }},
	"channel/delete":    {http.MethodPost, nil},
	"channel/update":    {http.MethodPost, func() any { return &Channel{} }},
	"channel/list":      {http.MethodGet, func() any { return &ChannelsReturn{} }},
	"channel/move-user": {http.MethodPost, nil},
	"channel/user-list": {http.MethodGet, func() any { return &[]User{} }},
	"channel/view":      {http.MethodGet, func() any { return &Channel{} }},

	"direct-message/add-reaction":    {http.MethodPost, nil},
	"direct-message/create":          {http.MethodPost, func() any { return &MessageCreateReturn{} }},
	"direct-message/delete":          {http.MethodPost, nil},
	"direct-message/delete-reaction": {http.MethodPost, nil},
	"direct-message/list":            {http.MethodGet, func() any { return &DirectMessagesReturn{} }},
	"direct-message/reaction-list":   {http.MethodGet, func() any { return &[]ReactionUser{} }},
	"direct-message/update":          {http.MethodPost, nil},
	"direct-message/view":            {http.MethodGet, func() any { return &DirectMessage{} }},

	"gateway/index": {http.MethodGet, func() any { return &URL{} }},

	"guild-boost/history": {http.MethodGet, func() any { return &GuildBoostReturn{} }},

	"guild-emoji/create": {http.MethodPost, nil},
	"guild-emoji/delete": {http.MethodPost, nil},
	"guild-emoji/list":   {http.MethodGet, func() any { return &GuildEmojisReturn{} }},
	"guild-emoji/update": {http.MethodPost, nil},

	"guild-mute/create": {http.MethodPost, nil},
	"guild-mute/delete": {http.MethodPost, nil},
	"guild-mute/list":   {http.MethodGet, nil},

	"guild-role/create": {http.MethodPost, func() any { return &Role{} }},
	"guild-role/delete": {http.MethodPost, nil},
	"guild-role/grant":  {http.MethodPost, func() any { return &GuildRoleReturn{} }},
	"guild-role/list":   {http.MethodGet, func() any { return &RolesReturn{} }},
	"guild-role/revoke": {http.MethodPost, func() any { return &GuildRoleReturn{} }},
	"guild-role/update": {http.MethodPost, func() any { return &Role{} }},

	"guild/kickout":   {http.MethodPost, nil},
	"guild/leave":     {http.MethodPost, nil},
	"guild/list":      {http.MethodGet, func() any { return &GuildsReturn{} }},
	"guild/nickname":  {http.MethodPost, nil},
	"guild/user-list": {http.MethodGet, func() any { return &GuildUsersReturn{} }},
	"guild/view":      {http.MethodGet, func() any { return &Guild{} }},

	"intimacy/index":  {http.MethodGet, func() any { return &IntimacyIndexReturn{} }},
	"intimacy/update": {http.MethodPost, nil},

	"invite/create": {http.MethodPost, func() any { return &URL{} }},
	"invite/delete": {http.MethodPost, nil},
	"invite/list":   {http.MethodGet, func() any { return &InvitesReturn{} }},

	"message/add-reaction":    {http.MethodPost, nil},
	"message/create":          {http.MethodPost, func() any { return &MessageCreateReturn{} }},
	"message/delete":          {http.MethodPost, nil},
	"message/delete-reaction": {http.MethodPost, nil},
	"message/list":            {http.MethodGet, func() any { return &ChannelMessagesReturn{} }},
	"message/reaction-list":   {http.MethodGet, func() any { return &[]ReactionUser{} }},
	"message/update":          {http.MethodPost, nil},
	"message/view":            {http.MethodGet, func() any { return &ChannelMessage{} }},

	"user-chat/create": {http.MethodPost, func() any { return &UserChat{} }},
	"user-chat/delete": {http.MethodPost, nil},
	"user-chat/list":   {http.MethodGet, func() any { return &UserChatsReturn{} }},
	"user-chat/view":   {http.MethodGet, func() any { return &UserChat{} }},

	"user/me":      {http.MethodGet, func() any { return &User{} }},
	"user/offline": {http.MethodPost, nil},
	"user/view":    {http.MethodGet, func() any { return &User{} }},
}

// Method returns the HTTP method for an endpoint name, defaulting to POST
// for names outside the table.
func Method(name string) string {
	if r, ok := routes[name]; ok {
		return r.method
	}
	return http.MethodPost
}

// NewResult returns a fresh typed result value for an endpoint, or nil when
// the endpoint has no documented return shape.
func NewResult(name string) any {
	if r, ok := routes[name]; ok && r.newResult != nil {
		return r.newResult()
	}
	return nil
}
