package asset

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitiseComment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "nice shot!", "nice shot!"},
		{"strips markup", "<b>bold</b> move", "bold move"},
		{"strips scripts", "<script>alert(1)</script>hello", "hello"},
		{"trims whitespace", "  hello  ", "hello"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitiseComment(tt.in); got != tt.want {
				t.Errorf("SanitiseComment(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitiseComment_Truncates(t *testing.T) {
	long := strings.Repeat("a", maxCommentLength+100)
	got := SanitiseComment(long)
	if len(got) != maxCommentLength {
		t.Errorf("len = %d; want %d", len(got), maxCommentLength)
	}
}

func TestSanitiseComment_TruncatesOnRuneBoundary(t *testing.T) {
	// 3-byte runes that never line up with the byte limit, so a naive byte
	// cut would split one in half.
	long := strings.Repeat("猫", maxCommentLength)
	got := SanitiseComment(long)

	if !utf8.ValidString(got) {
		t.Fatal("truncated comment is not valid UTF-8")
	}
	if len(got) > maxCommentLength {
		t.Errorf("len = %d; want <= %d", len(got), maxCommentLength)
	}
	if !strings.HasSuffix(got, "猫") {
		t.Errorf("truncated comment should end on a whole rune, got %q tail", got[len(got)-3:])
	}
}
