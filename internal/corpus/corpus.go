// Package corpus turns unified-diff text into the flat, ordered sequence of
// added lines that rules are evaluated against. The corpus keeps no per-file
// attribution: file boundaries belong to the diff and report layers, not to
// rule evaluation.
package corpus

import "strings"

// Line is one added line, stripped of its diff marker. Index is the line's
// position in the corpus, counted from 1 across all files in diff order.
type Line struct {
	Index int
	Text  string
}

// Build extracts the added lines from unified-diff text: every line starting
// with "+" except the "+++" file header. An empty corpus is a valid state,
// not an error; the engine runs normally against it and reports nothing.
//
// The diff must already be restricted to included paths. Filtering happens
// before diffing so excluded file content is never requested at all.
func Build(diffText string) []Line {
	if diffText == "" {
		return nil
	}

	var lines []Line
	for _, raw := range strings.Split(diffText, "\n") {
		if !strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "+++") {
			continue
		}
		lines = append(lines, Line{
			Index: len(lines) + 1,
			Text:  strings.TrimPrefix(raw, "+"),
		})
	}
	return lines
}
