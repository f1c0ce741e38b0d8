package sanitize

import (
	"strings"
	"testing"
)

func TestInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "echo $_GET['name'];", "echo $_GET['name'];"},
		{"tabs to spaces", "\tif (true) {\treturn;", " if (true) { return;"},
		{"trailing newline stripped", "line\n", "line"},
		{"control chars dropped", "a\x00b\x07c", "abc"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inline(tt.in); got != tt.want {
				t.Errorf("Inline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInlineCapsLength(t *testing.T) {
	out := Inline(strings.Repeat("x", 1000))
	if len(out) != maxInlineLen+3 {
		t.Fatalf("len = %d, want %d", len(out), maxInlineLen+3)
	}
	if !strings.HasSuffix(out, "...") {
		t.Fatal("capped output must end with ellipsis")
	}
}
