// Package message models KOOK message content as an ordered sequence of
// typed segments and converts between that representation and the wire
// format (a single type code plus a content string). Mixed-content messages
// that the wire format cannot carry directly are folded into a card payload.
package message

// Wire content type codes.
//
// https://developer.kookapp.cn/doc/event/message
const (
	TypeText      = 1
	TypeImage     = 2
	TypeVideo     = 3
	TypeFile      = 4
	TypeAudio     = 8
	TypeKMarkdown = 9
	TypeCard      = 10
	TypeSystem    = 255
)

// TypeName returns the content-kind name for a wire type code, used as the
// sub_type component of dotted event names. Unknown codes map to "".
func TypeName(code int) string {
	switch code {
	case TypeText:
		return "text"
	case TypeImage:
		return "image"
	case TypeVideo:
		return "video"
	case TypeFile:
		return "file"
	case TypeAudio:
		return "audio"
	case TypeKMarkdown:
		return "kmarkdown"
	case TypeCard:
		return "card"
	case TypeSystem:
		return "sys"
	}
	return ""
}

// Segment is one typed unit of message content.
type Segment interface {
	// SegmentType returns the segment kind name ("text", "image", ...).
	SegmentType() string
	// PlainText returns the segment's plain-text projection; empty for
	// segments that have no textual rendering.
	PlainText() string
}

// Text is a plain text segment.
type Text struct {
	Content string
}

func (t *Text) SegmentType() string { return "text" }
func (t *Text) PlainText() string   { return t.Content }

// KMarkdown is a rich-markup segment. RawContent is the server-provided
// plain-text projection of the markup.
type KMarkdown struct {
	Content    string
	RawContent string
}

func (k *KMarkdown) SegmentType() string { return "kmarkdown" }
func (k *KMarkdown) PlainText() string   { return k.RawContent }

// Card is an opaque structured card payload (JSON string).
type Card struct {
	Content string
}

func (c *Card) SegmentType() string { return "card" }
func (c *Card) PlainText() string   { return "" }

// Image references a server-side image asset, or local bytes not yet
// uploaded (FileKey empty, Data set).
type Image struct {
	FileKey string
	Title   string
	Data    []byte
}

func (i *Image) SegmentType() string { return "image" }
func (i *Image) PlainText() string   { return "" }

// Video references a server-side video asset or local bytes.
type Video struct {
	FileKey string
	Title   string
	Data    []byte
}

func (v *Video) SegmentType() string { return "video" }
func (v *Video) PlainText() string   { return "" }

// Audio references a server-side audio asset or local bytes.
type Audio struct {
	FileKey  string
	Title    string
	Duration int
	Data     []byte
}

func (a *Audio) SegmentType() string { return "audio" }
func (a *Audio) PlainText() string   { return "" }

// File references a server-side file asset or local bytes.
type File struct {
	FileKey string
	Title   string
	Data    []byte
}

func (f *File) SegmentType() string { return "file" }
func (f *File) PlainText() string   { return "" }

// Mention addresses a single user.
type Mention struct {
	UserID   string
	UserName string
}

func (m *Mention) SegmentType() string { return "mention" }
func (m *Mention) PlainText() string {
	if m.UserName != "" {
		return "@" + m.UserName
	}
	return "@" + m.UserID
}

// MentionRole addresses every holder of a role.
type MentionRole struct {
	RoleID int64
	Name   string
}

func (m *MentionRole) SegmentType() string { return "mention_role" }
func (m *MentionRole) PlainText() string   { return "@" + m.Name }

// MentionAll addresses every member.
type MentionAll struct{}

func (m *MentionAll) SegmentType() string { return "mention_all" }

// PlainText returns the rendering KOOK uses for @everyone in raw_content.
func (m *MentionAll) PlainText() string { return "@全体成员" }

// MentionHere addresses every online member.
type MentionHere struct{}

func (m *MentionHere) SegmentType() string { return "mention_here" }

// PlainText returns the rendering KOOK uses for @online in raw_content.
func (m *MentionHere) PlainText() string { return "@在线成员" }

// Quote marks the message as a reply to another message. It never travels
// as content: the serializer lifts it into the top-level quote field.
type Quote struct {
	MsgID string
}

func (q *Quote) SegmentType() string { return "quote" }
func (q *Quote) PlainText() string   { return "" }

// Message is an ordered sequence of segments.
type Message []Segment

// ExtractPlainText concatenates the plain-text projection of every segment.
func (m Message) ExtractPlainText() string {
	var out string
	for _, seg := range m {
		out += seg.PlainText()
	}
	return out
}
