package event

import (
	"encoding/json"
	"testing"
)

func unmarshal(s string, v any) error { return json.Unmarshal([]byte(s), v) }

const groupTextPayload = `{
	"channel_type": "GROUP",
	"type": 1,
	"target_id": "channel-7",
	"author_id": "user-9",
	"content": "hello there",
	"msg_id": "msg-1",
	"msg_timestamp": 1700000000000,
	"extra": {
		"type": 1,
		"guild_id": "guild-3",
		"author": {"id": "user-9", "username": "alice"}
	}
}`

func groupTextDerived() *Derived {
	return &Derived{
		SelfID:      "bot-1",
		PostType:    "message",
		MessageType: "group",
		SubType:     "text",
		UserID:      "user-9",
		GroupID:     "channel-7",
	}
}

func TestResolveMostSpecificFirst(t *testing.T) {
	models := Resolve("notice.added_reaction")
	if len(models) != 3 {
		t.Fatalf("len(models) = %d, want 3", len(models))
	}
	want := []string{"notice.added_reaction", "notice", ""}
	for i, m := range models {
		if m.Path != want[i] {
			t.Errorf("models[%d].Path = %q, want %q", i, m.Path, want[i])
		}
	}
}

func TestResolveUnknownNameFallsToCatchAll(t *testing.T) {
	models := Resolve("notice.brand_new_notice")
	if len(models) != 2 {
		t.Fatalf("len(models) = %d, want 2", len(models))
	}
	if models[0].Path != "notice" || models[1].Path != "" {
		t.Fatalf("paths = %q, %q", models[0].Path, models[1].Path)
	}
}

func TestParseGroupTextMessage(t *testing.T) {
	ev := Parse("message.group.text", []byte(groupTextPayload), groupTextDerived())
	msg, ok := ev.(*ChannelMessageEvent)
	if !ok {
		t.Fatalf("event type = %T, want *ChannelMessageEvent", ev)
	}
	if msg.Name() != "message.group.text" {
		t.Errorf("Name() = %q", msg.Name())
	}
	if msg.SelfID != "bot-1" || msg.GroupID != "channel-7" {
		t.Errorf("derived fields not applied: %+v", msg.Base)
	}
	if got := msg.PlainText(); got != "hello there" {
		t.Errorf("PlainText() = %q", got)
	}
	if msg.Extra.Author == nil || msg.Extra.Author.Username != "alice" {
		t.Errorf("author not decoded: %+v", msg.Extra.Author)
	}
}

func TestParsePrivateShapeRejectsGroupDerived(t *testing.T) {
	// A group-classified payload must not come back as the private shape
	// even if someone registers the private model on the group path.
	Register("message.group", func() Event { return &PrivateMessageEvent{} })
	defer Register("message.group", func() Event { return &ChannelMessageEvent{} })

	ev := Parse("message.group.text", []byte(groupTextPayload), groupTextDerived())
	if _, ok := ev.(*PrivateMessageEvent); ok {
		t.Fatalf("private shape accepted group classification")
	}
	// Falls back to the looser "message" shape.
	if _, ok := ev.(*MessageEvent); !ok {
		t.Fatalf("event type = %T, want *MessageEvent", ev)
	}
}

func TestParseNoticeTyped(t *testing.T) {
	payload := `{
		"channel_type": "GROUP",
		"type": 255,
		"target_id": "guild-3",
		"author_id": "1",
		"msg_id": "msg-2",
		"extra": {
			"type": "added_reaction",
			"body": {
				"channel_id": "channel-7",
				"msg_id": "msg-1",
				"user_id": "user-9",
				"emoji": {"id": "[#128077;]", "name": "thumbsup"}
			}
		}
	}`
	d := &Derived{
		SelfID:     "bot-1",
		PostType:   "notice",
		NoticeType: "added_reaction",
		UserID:     "SYSTEM",
		GroupID:    "guild-3",
	}
	ev := Parse("notice.added_reaction", []byte(payload), d)
	n, ok := ev.(*ChannelAddReactionEvent)
	if !ok {
		t.Fatalf("event type = %T, want *ChannelAddReactionEvent", ev)
	}
	if n.Body.UserID != "user-9" || n.Body.Emoji.Name != "thumbsup" {
		t.Errorf("body = %+v", n.Body)
	}
	if n.Name() != "notice.added_reaction" {
		t.Errorf("Name() = %q", n.Name())
	}
}

func TestParseUnknownNoticeFallsBack(t *testing.T) {
	payload := `{
		"type": 255,
		"target_id": "guild-3",
		"author_id": "1",
		"extra": {"type": "brand_new_notice", "body": {}}
	}`
	d := &Derived{PostType: "notice", NoticeType: "brand_new_notice", UserID: "SYSTEM"}
	ev := Parse("notice.brand_new_notice", []byte(payload), d)
	n, ok := ev.(*NoticeEvent)
	if !ok {
		t.Fatalf("event type = %T, want *NoticeEvent", ev)
	}
	if n.Name() != "notice.brand_new_notice" {
		t.Errorf("Name() = %q", n.Name())
	}
}

func TestRegisterLastWriterWins(t *testing.T) {
	type customBase struct{ Base }
	Register("", func() Event { return &customBase{} })
	defer Register("", func() Event { return &Base{} })

	ev := Parse("something.unheard_of", []byte(`{}`), &Derived{PostType: "something"})
	if _, ok := ev.(*customBase); !ok {
		t.Fatalf("event type = %T, want *customBase", ev)
	}
}

func TestExtraTypeAcceptsIntAndString(t *testing.T) {
	var e Extra
	if err := unmarshal(`{"type": 9}`, &e); err != nil {
		t.Fatalf("int type: %v", err)
	}
	if e.Type.Code() != 9 {
		t.Errorf("Code() = %d, want 9", e.Type.Code())
	}
	if err := unmarshal(`{"type": "joined_guild"}`, &e); err != nil {
		t.Fatalf("string type: %v", err)
	}
	if string(e.Type) != "joined_guild" {
		t.Errorf("Type = %q", e.Type)
	}
}

func TestMetaEventNames(t *testing.T) {
	if got := NewLifecycle("sess-1").Name(); got != "meta_event.lifecycle.connect" {
		t.Errorf("lifecycle name = %q", got)
	}
	if got := NewHeartbeat().Name(); got != "meta_event.heartbeat" {
		t.Errorf("heartbeat name = %q", got)
	}
}
