package message

import (
	"regexp"
	"strconv"
)

// Attachment is the wire shape of a media attachment inside an event
// payload.
type Attachment struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	URL      string  `json:"url"`
	FileType string  `json:"file_type,omitempty"`
	Size     int64   `json:"size,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"hight,omitempty"` // sic, wire field name
}

// MentionPart resolves a mentioned user id to display names.
type MentionPart struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// MentionRolePart resolves a mentioned role id to its name.
type MentionRolePart struct {
	RoleID int64  `json:"role_id"`
	Name   string `json:"name"`
}

// KMarkdownInfo is the side channel the gateway attaches to kmarkdown
// messages: the plain-text projection plus mention resolution lists.
type KMarkdownInfo struct {
	RawContent      string            `json:"raw_content"`
	MentionPart     []MentionPart     `json:"mention_part"`
	MentionRolePart []MentionRolePart `json:"mention_role_part"`
}

// Payload is the subset of an event payload the deserializer consumes.
type Payload struct {
	Content     string
	Attachments *Attachment
	KMarkdown   *KMarkdownInfo
}

// Deserialize converts a wire type code plus payload into a Message.
// Unknown type codes fall back to a plain text segment holding the raw
// content so a single odd frame never fails to produce a message.
func Deserialize(typeCode int, p *Payload) Message {
	if p == nil {
		p = &Payload{}
	}
	switch typeCode {
	case TypeText:
		return Message{&Text{Content: p.Content}}
	case TypeImage:
		return Message{&Image{FileKey: p.Content}}
	case TypeVideo:
		return Message{&Video{FileKey: attachmentURL(p), Title: attachmentName(p)}}
	case TypeFile:
		return Message{&File{FileKey: attachmentURL(p), Title: attachmentName(p)}}
	case TypeAudio:
		return Message{&Audio{FileKey: attachmentURL(p), Title: attachmentName(p)}}
	case TypeKMarkdown:
		return deserializeKMarkdown(p.Content, p.KMarkdown)
	case TypeCard:
		return Message{&Card{Content: p.Content}}
	}
	return Message{&Text{Content: p.Content}}
}

func attachmentURL(p *Payload) string {
	if p.Attachments == nil {
		return ""
	}
	return p.Attachments.URL
}

func attachmentName(p *Payload) string {
	if p.Attachments == nil {
		return ""
	}
	return p.Attachments.Name
}

// mentionToken matches the inline mention markup kinds:
// (met)id(met), (met)all(met), (met)here(met) and (rol)id(rol).
var mentionToken = regexp.MustCompile(`\(met\)(\d+|all|here)\(met\)|\(rol\)(\d+)\(rol\)`)

// deserializeKMarkdown splits mention tokens out of the markup and, when the
// remainder un-escapes to exactly the server's raw projection, downgrades
// the whole segment to plain text interleaved with Mention* segments.
// Otherwise the markup is kept as a single KMarkdown segment.
func deserializeKMarkdown(content string, info *KMarkdownInfo) Message {
	raw := ""
	if info != nil {
		raw = info.RawContent
	}

	split := splitMentions(content, info)
	if split.ExtractPlainText() == raw {
		return split
	}
	return Message{&KMarkdown{Content: content, RawContent: raw}}
}

func splitMentions(content string, info *KMarkdownInfo) Message {
	var segs Message
	last := 0
	for _, loc := range mentionToken.FindAllStringSubmatchIndex(content, -1) {
		if txt := content[last:loc[0]]; txt != "" {
			segs = append(segs, &Text{Content: Unescape(txt)})
		}
		if loc[2] >= 0 {
			target := content[loc[2]:loc[3]]
			switch target {
			case "all":
				segs = append(segs, &MentionAll{})
			case "here":
				segs = append(segs, &MentionHere{})
			default:
				segs = append(segs, &Mention{UserID: target, UserName: lookupUser(info, target)})
			}
		} else {
			id, _ := strconv.ParseInt(content[loc[4]:loc[5]], 10, 64)
			segs = append(segs, &MentionRole{RoleID: id, Name: lookupRole(info, id)})
		}
		last = loc[1]
	}
	if txt := content[last:]; txt != "" {
		segs = append(segs, &Text{Content: Unescape(txt)})
	}
	return segs
}

func lookupUser(info *KMarkdownInfo, id string) string {
	if info == nil {
		return ""
	}
	for _, p := range info.MentionPart {
		if p.ID == id {
			return p.Username
		}
	}
	return ""
}

func lookupRole(info *KMarkdownInfo, id int64) string {
	if info == nil {
		return ""
	}
	for _, p := range info.MentionRolePart {
		if p.RoleID == id {
			return p.Name
		}
	}
	return ""
}
