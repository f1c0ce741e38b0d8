package badge

import (
	"strings"
	"testing"

	"patrol/internal/model"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		counts    map[model.Severity]int
		wantGrade string
		wantColor string
	}{
		{"no findings", map[model.Severity]int{}, "A+", "brightgreen"},
		{"info only", map[model.Severity]int{model.SeverityInfo: 4}, "A", "green"},
		{"review only", map[model.Severity]int{model.SeverityReview: 2}, "A", "green"},
		{"few warnings", map[model.Severity]int{model.SeverityWarning: 3}, "B", "yellowgreen"},
		{"many warnings", map[model.Severity]int{model.SeverityWarning: 4}, "C", "yellow"},
		{"some critical", map[model.Severity]int{model.SeverityCritical: 2}, "D", "orange"},
		{"many critical", map[model.Severity]int{model.SeverityCritical: 4}, "F", "red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade, color := Grade(tt.counts)
			if grade != tt.wantGrade || color != tt.wantColor {
				t.Errorf("Grade = %s/%s, want %s/%s", grade, color, tt.wantGrade, tt.wantColor)
			}
		})
	}
}

func TestShieldsJSON(t *testing.T) {
	out := ShieldsJSON("patrol", "A+", "brightgreen")
	for _, want := range []string{`"schemaVersion": 1`, `"label": "patrol"`, `"message": "A+"`, `"color": "brightgreen"`} {
		if !strings.Contains(out, want) {
			t.Errorf("shields json missing %q: %s", want, out)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	out := RenderSVG("patrol", "F", "red")
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "#e05d44") {
		t.Errorf("svg output wrong:\n%s", out)
	}
	if !strings.Contains(out, ">F<") {
		t.Errorf("svg missing grade text:\n%s", out)
	}
}

func TestRenderSVGUnknownColor(t *testing.T) {
	out := RenderSVG("patrol", "?", "fuchsia")
	if !strings.Contains(out, "#9f9f9f") {
		t.Error("unknown color should fall back to gray")
	}
}
