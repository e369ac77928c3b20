package message

import "strings"

// Characters with meaning in KMarkdown that must be escaped when plain text
// is transported inside markup.
const escapeChars = "!()*-.:>[\\]`~"

// Escape backslash-escapes every KMarkdown metacharacter in content.
func Escape(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, c := range content {
		if c < 128 && strings.ContainsRune(escapeChars, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Unescape removes the backslash escapes Escape inserts. Backslashes that do
// not precede a metacharacter are kept verbatim.
func Unescape(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	for i := 0; i < len(content); i++ {
		if content[i] == '\\' && i+1 < len(content) &&
			strings.IndexByte(escapeChars, content[i+1]) >= 0 {
			b.WriteByte(content[i+1])
			i++
			continue
		}
		b.WriteByte(content[i])
	}
	return b.String()
}
