package sanitize

import (
	"strings"
	"unicode/utf8"
)

const maxInlineLen = 240

// Inline sanitizes matched-line text before embedding it into terminal or
// report output: control characters dropped, whitespace flattened, length
// capped.
func Inline(text string) string {
	text = strings.TrimRight(text, "\r\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\n', '\r', '\t':
			b.WriteRune(' ')
		default:
			if r < 0x20 || r == 0x7f {
				continue
			}
			if !utf8.ValidRune(r) {
				continue
			}
			b.WriteRune(r)
		}
	}

	out := b.String()
	if len(out) > maxInlineLen {
		out = out[:maxInlineLen] + "..."
	}
	return out
}
