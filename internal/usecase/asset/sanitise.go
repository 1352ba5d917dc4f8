package asset

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// commentPolicy strips every tag and attribute; comments are plain text.
var commentPolicy = bluemonday.StrictPolicy()

const maxCommentLength = 500

// SanitiseComment removes markup and scripts from free text before it is
// persisted or echoed back to any client.
func SanitiseComment(raw string) string {
	clean := commentPolicy.Sanitize(strings.TrimSpace(raw))
	if len(clean) > maxCommentLength {
		// Cut on a rune boundary so a split multibyte character never
		// persists as invalid UTF-8.
		cut := maxCommentLength
		for cut > 0 && !utf8.RuneStart(clean[cut]) {
			cut--
		}
		clean = clean[:cut]
	}
	return clean
}
