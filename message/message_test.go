package message

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEscapeRoundTrip(t *testing.T) {
	in := "a*b(c)d[e]f`g~h!i.j:k>l-m\\n"
	escaped := Escape(in)
	if !strings.Contains(escaped, "\\*") {
		t.Errorf("escape did not quote *: %q", escaped)
	}
	if got := Unescape(escaped); got != in {
		t.Errorf("round trip: got %q, want %q", got, in)
	}
}

func TestUnescapeKeepsLoneBackslash(t *testing.T) {
	if got := Unescape(`a\b`); got != `a\b` {
		t.Errorf("got %q, want %q", got, `a\b`)
	}
}

func TestSerializeSingleText(t *testing.T) {
	wc, err := Serialize(context.Background(), Message{&Text{Content: "hello"}}, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if wc.Type != TypeText || wc.Content != "hello" {
		t.Errorf("got (%d, %q), want (%d, %q)", wc.Type, wc.Content, TypeText, "hello")
	}
}

func TestSerializeMergesAdjacentText(t *testing.T) {
	a, err := Serialize(context.Background(), Message{&Text{Content: "a"}, &Text{Content: "b"}}, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	b, err := Serialize(context.Background(), Message{&Text{Content: "ab"}}, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if a.Type != b.Type || a.Content != b.Content {
		t.Errorf("merge mismatch: (%d,%q) vs (%d,%q)", a.Type, a.Content, b.Type, b.Content)
	}
}

func TestSerializeTextIntoKMarkdownEscapes(t *testing.T) {
	wc, err := Serialize(context.Background(), Message{
		&Text{Content: "1*2"},
		&KMarkdown{Content: "**bold**", RawContent: "bold"},
	}, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if wc.Type != TypeKMarkdown {
		t.Fatalf("type: got %d, want %d", wc.Type, TypeKMarkdown)
	}
	if wc.Content != `1\*2**bold**` {
		t.Errorf("content: got %q", wc.Content)
	}
}

func TestSerializeMentionBecomesToken(t *testing.T) {
	wc, err := Serialize(context.Background(), Message{
		&Text{Content: "hi "},
		&Mention{UserID: "123", UserName: "alice"},
	}, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if wc.Type != TypeKMarkdown {
		t.Fatalf("type: got %d, want %d", wc.Type, TypeKMarkdown)
	}
	if wc.Content != "hi (met)123(met)" {
		t.Errorf("content: got %q", wc.Content)
	}
}

func TestSerializeQuoteExtracted(t *testing.T) {
	wc, err := Serialize(context.Background(), Message{
		&Text{Content: "reply"},
		&Quote{MsgID: "msg-1"},
	}, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if wc.Quote != "msg-1" {
		t.Errorf("quote: got %q, want msg-1", wc.Quote)
	}
	if wc.Type != TypeText || wc.Content != "reply" {
		t.Errorf("content: got (%d, %q)", wc.Type, wc.Content)
	}
}

func TestSerializeMixedFoldsToCard(t *testing.T) {
	wc, err := Serialize(context.Background(), Message{
		&Text{Content: "hi "},
		&Image{FileKey: "https://img.example/key"},
	}, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if wc.Type != TypeCard {
		t.Fatalf("type: got %d, want %d", wc.Type, TypeCard)
	}

	var cards []struct {
		Type    string `json:"type"`
		Modules []struct {
			Type string `json:"type"`
		} `json:"modules"`
	}
	if err := json.Unmarshal([]byte(wc.Content), &cards); err != nil {
		t.Fatalf("card json: %v", err)
	}
	if len(cards) != 1 || cards[0].Type != "card" {
		t.Fatalf("unexpected card envelope: %s", wc.Content)
	}
	if len(cards[0].Modules) != 2 {
		t.Fatalf("modules: got %d, want 2", len(cards[0].Modules))
	}
	if cards[0].Modules[0].Type != "section" || cards[0].Modules[1].Type != "container" {
		t.Errorf("module kinds: %s / %s", cards[0].Modules[0].Type, cards[0].Modules[1].Type)
	}
}

func TestSerializeCardInsideMixedFails(t *testing.T) {
	_, err := Serialize(context.Background(), Message{
		&Text{Content: "x"},
		&Card{Content: "[]"},
	}, nil)
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("got %v, want ErrUnsupportedOperation", err)
	}
}

type fakeUploader struct {
	calls int
	url   string
	err   error
}

func (f *fakeUploader) UploadAsset(_ context.Context, filename string, data []byte) (string, error) {
	f.calls++
	return f.url, f.err
}

func TestSerializeUploadsLocalMedia(t *testing.T) {
	up := &fakeUploader{url: "https://asset.example/a.png"}
	wc, err := Serialize(context.Background(), Message{&Image{Data: []byte{1, 2, 3}}}, up)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if up.calls != 1 {
		t.Errorf("upload calls: got %d, want 1", up.calls)
	}
	if wc.Type != TypeImage || wc.Content != up.url {
		t.Errorf("got (%d, %q)", wc.Type, wc.Content)
	}
}

func TestSerializeLocalMediaWithoutUploader(t *testing.T) {
	_, err := Serialize(context.Background(), Message{&Image{Data: []byte{1}}}, nil)
	if !errors.Is(err, ErrNoUploader) {
		t.Errorf("got %v, want ErrNoUploader", err)
	}
}

func TestRoundTripText(t *testing.T) {
	wc, err := Serialize(context.Background(), Message{&Text{Content: "round trip"}}, nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	msg := Deserialize(wc.Type, &Payload{Content: wc.Content})
	if len(msg) != 1 {
		t.Fatalf("segments: got %d, want 1", len(msg))
	}
	txt, ok := msg[0].(*Text)
	if !ok {
		t.Fatalf("segment kind: got %s", msg[0].SegmentType())
	}
	if txt.Content != "round trip" {
		t.Errorf("content: got %q", txt.Content)
	}
}

func TestDeserializeMedia(t *testing.T) {
	msg := Deserialize(TypeVideo, &Payload{
		Attachments: &Attachment{URL: "https://v.example/v.mp4", Name: "v.mp4"},
	})
	v, ok := msg[0].(*Video)
	if !ok {
		t.Fatalf("segment kind: got %s", msg[0].SegmentType())
	}
	if v.FileKey != "https://v.example/v.mp4" || v.Title != "v.mp4" {
		t.Errorf("got %+v", v)
	}
}

func TestDeserializeKMarkdownDowngrade(t *testing.T) {
	// Escaped plain text whose unescape equals raw_content downgrades to Text.
	msg := Deserialize(TypeKMarkdown, &Payload{
		Content:   `hi \:smile\:`,
		KMarkdown: &KMarkdownInfo{RawContent: "hi :smile:"},
	})
	if len(msg) != 1 {
		t.Fatalf("segments: got %d, want 1", len(msg))
	}
	if _, ok := msg[0].(*Text); !ok {
		t.Fatalf("segment kind: got %s, want text", msg[0].SegmentType())
	}
	if msg[0].PlainText() != "hi :smile:" {
		t.Errorf("plaintext: got %q", msg[0].PlainText())
	}
}

func TestDeserializeKMarkdownMentionSplit(t *testing.T) {
	msg := Deserialize(TypeKMarkdown, &Payload{
		Content: `hey (met)42(met) ok`,
		KMarkdown: &KMarkdownInfo{
			RawContent:  "hey @bob ok",
			MentionPart: []MentionPart{{ID: "42", Username: "bob"}},
		},
	})
	if len(msg) != 3 {
		t.Fatalf("segments: got %d, want 3 (%v)", len(msg), msg)
	}
	m, ok := msg[1].(*Mention)
	if !ok {
		t.Fatalf("middle kind: got %s, want mention", msg[1].SegmentType())
	}
	if m.UserID != "42" || m.UserName != "bob" {
		t.Errorf("mention: got %+v", m)
	}
}

func TestDeserializeKMarkdownStaysRich(t *testing.T) {
	msg := Deserialize(TypeKMarkdown, &Payload{
		Content:   "**bold**",
		KMarkdown: &KMarkdownInfo{RawContent: "bold"},
	})
	k, ok := msg[0].(*KMarkdown)
	if !ok {
		t.Fatalf("segment kind: got %s, want kmarkdown", msg[0].SegmentType())
	}
	if k.Content != "**bold**" || k.RawContent != "bold" {
		t.Errorf("got %+v", k)
	}
}

func TestDeserializeUnknownTypeFallsBack(t *testing.T) {
	msg := Deserialize(77, &Payload{Content: "???"})
	if _, ok := msg[0].(*Text); !ok {
		t.Errorf("fallback kind: got %s, want text", msg[0].SegmentType())
	}
}

func TestExtractPlainText(t *testing.T) {
	m := Message{
		&Text{Content: "a "},
		&Mention{UserID: "1", UserName: "n"},
		&KMarkdown{Content: "**b**", RawContent: "b"},
	}
	if got := m.ExtractPlainText(); got != "a @nb" {
		t.Errorf("got %q", got)
	}
}
