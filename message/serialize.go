package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnsupportedType is returned when a message reduces to a segment
	// kind the wire format cannot carry as standalone content.
	ErrUnsupportedType = errors.New("message: unsupported message type")

	// ErrUnsupportedOperation is returned for operations the wire format
	// rules out, such as nesting a card inside a folded card.
	ErrUnsupportedOperation = errors.New("message: unsupported message operation")

	// ErrNoUploader is returned when a message carries local media bytes
	// but no uploader was provided.
	ErrNoUploader = errors.New("message: local media requires an uploader")
)

// WireContent is the serialized form of a message: one type code, one
// content string, and an optional message id this message replies to.
type WireContent struct {
	Type    int
	Content string
	Quote   string
}

// Uploader stores local media on the server and returns the asset URL.
// The bot's asset/create call satisfies this.
type Uploader interface {
	UploadAsset(ctx context.Context, filename string, data []byte) (string, error)
}

// Serialize reduces a message to the single content blob the wire protocol
// accepts per call. A trailing Quote segment becomes the Quote field.
// Mention segments are rewritten as KMarkdown tokens, adjacent text-like
// segments are merged, and anything still mixed after merging is folded
// into a synthetic card. Local media is uploaded through up first.
func Serialize(ctx context.Context, msg Message, up Uploader) (*WireContent, error) {
	wc := &WireContent{}

	segs := make(Message, 0, len(msg))
	for _, seg := range msg {
		if q, ok := seg.(*Quote); ok {
			wc.Quote = q.MsgID
			continue
		}
		segs = append(segs, seg)
	}

	for _, seg := range segs {
		if err := uploadLocal(ctx, seg, up); err != nil {
			return nil, err
		}
	}

	segs = resolveMentions(segs)
	segs = mergeAdjacent(segs)

	switch len(segs) {
	case 0:
		wc.Type = TypeText
		return wc, nil
	case 1:
		ty, content, err := singleContent(segs[0])
		if err != nil {
			return nil, err
		}
		wc.Type, wc.Content = ty, content
		return wc, nil
	default:
		card, err := foldCard(segs)
		if err != nil {
			return nil, err
		}
		wc.Type, wc.Content = TypeCard, card
		return wc, nil
	}
}

func uploadLocal(ctx context.Context, seg Segment, up Uploader) error {
	var (
		key   *string
		title string
		data  []byte
	)
	switch s := seg.(type) {
	case *Image:
		key, title, data = &s.FileKey, s.Title, s.Data
	case *Video:
		key, title, data = &s.FileKey, s.Title, s.Data
	case *Audio:
		key, title, data = &s.FileKey, s.Title, s.Data
	case *File:
		key, title, data = &s.FileKey, s.Title, s.Data
	default:
		return nil
	}
	if *key != "" || data == nil {
		return nil
	}
	if up == nil {
		return ErrNoUploader
	}
	if title == "" {
		title = "upload-file"
	}
	url, err := up.UploadAsset(ctx, title, data)
	if err != nil {
		return fmt.Errorf("upload %s: %w", seg.SegmentType(), err)
	}
	*key = url
	return nil
}

// resolveMentions rewrites Mention* segments as inline KMarkdown tokens so
// they can merge with surrounding text.
func resolveMentions(in Message) Message {
	out := make(Message, 0, len(in))
	for _, seg := range in {
		switch m := seg.(type) {
		case *Mention:
			out = append(out, &KMarkdown{
				Content:    "(met)" + m.UserID + "(met)",
				RawContent: m.PlainText(),
			})
		case *MentionRole:
			out = append(out, &KMarkdown{
				Content:    "(rol)" + strconv.FormatInt(m.RoleID, 10) + "(rol)",
				RawContent: m.PlainText(),
			})
		case *MentionAll:
			out = append(out, &KMarkdown{Content: "(met)all(met)", RawContent: m.PlainText()})
		case *MentionHere:
			out = append(out, &KMarkdown{Content: "(met)here(met)", RawContent: m.PlainText()})
		default:
			out = append(out, seg)
		}
	}
	return out
}

func mergeAdjacent(in Message) Message {
	out := make(Message, 0, len(in))
	for _, seg := range in {
		if len(out) > 0 {
			if merged, ok := mergeTextLike(out[len(out)-1], seg); ok {
				out[len(out)-1] = merged
				continue
			}
		}
		out = append(out, seg)
	}
	return out
}

// mergeTextLike joins two adjacent text-like segments. Plain text merged
// into markup is escaped so the markup keeps its meaning.
func mergeTextLike(a, b Segment) (Segment, bool) {
	at, aIsText := a.(*Text)
	bt, bIsText := b.(*Text)
	ak, aIsKmd := a.(*KMarkdown)
	bk, bIsKmd := b.(*KMarkdown)

	switch {
	case aIsText && bIsText:
		return &Text{Content: at.Content + bt.Content}, true
	case aIsText && bIsKmd:
		return &KMarkdown{
			Content:    Escape(at.Content) + bk.Content,
			RawContent: at.Content + bk.RawContent,
		}, true
	case aIsKmd && bIsText:
		return &KMarkdown{
			Content:    ak.Content + Escape(bt.Content),
			RawContent: ak.RawContent + bt.Content,
		}, true
	case aIsKmd && bIsKmd:
		return &KMarkdown{
			Content:    ak.Content + bk.Content,
			RawContent: ak.RawContent + bk.RawContent,
		}, true
	}
	return nil, false
}

func singleContent(seg Segment) (int, string, error) {
	switch s := seg.(type) {
	case *Text:
		return TypeText, s.Content, nil
	case *KMarkdown:
		return TypeKMarkdown, s.Content, nil
	case *Card:
		return TypeCard, s.Content, nil
	case *Image:
		return TypeImage, s.FileKey, nil
	case *Video:
		return TypeVideo, s.FileKey, nil
	case *Audio:
		return TypeAudio, s.FileKey, nil
	case *File:
		return TypeFile, s.FileKey, nil
	}
	return 0, "", fmt.Errorf("%w: %s", ErrUnsupportedType, seg.SegmentType())
}

// foldCard repackages a mixed message as one card with a display module per
// segment, the only way the wire format carries mixed content in one call.
func foldCard(segs Message) (string, error) {
	modules := make([]any, 0, len(segs))
	for _, seg := range segs {
		switch s := seg.(type) {
		case *Text:
			modules = append(modules, map[string]any{
				"type": "section",
				"text": map[string]any{"type": "plain-text", "content": s.Content},
			})
		case *KMarkdown:
			modules = append(modules, map[string]any{
				"type": "section",
				"text": map[string]any{"type": "kmarkdown", "content": s.Content},
			})
		case *Image:
			modules = append(modules, map[string]any{
				"type":     "container",
				"elements": []any{map[string]any{"type": "image", "src": s.FileKey}},
			})
		case *Video:
			modules = append(modules, mediaModule("video", s.Title, s.FileKey))
		case *Audio:
			modules = append(modules, mediaModule("audio", s.Title, s.FileKey))
		case *File:
			modules = append(modules, mediaModule("file", s.Title, s.FileKey))
		default:
			// Card inside a folded card cannot nest.
			return "", fmt.Errorf("%w: cannot fold %s into a card", ErrUnsupportedOperation, seg.SegmentType())
		}
	}

	card := []any{map[string]any{
		"type":    "card",
		"theme":   "none",
		"size":    "lg",
		"modules": modules,
	}}
	b, err := json.Marshal(card)
	if err != nil {
		return "", fmt.Errorf("marshal card: %w", err)
	}
	return string(b), nil
}

func mediaModule(kind, title, src string) map[string]any {
	return map[string]any{"type": kind, "title": title, "src": src}
}
