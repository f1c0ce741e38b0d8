package engine

import (
	"context"
	"strings"
	"testing"

	"patrol/internal/corpus"
	"patrol/internal/model"
	"patrol/internal/rules"
)

// Adversarial corpus content: the engine treats lines as opaque text, so
// none of these may panic, skip rules, or corrupt ordering.

func TestEvaluateHostileLines(t *testing.T) {
	cat := builtinCatalogue(t)
	lines := corpusOf(
		"",
		"\x00\x01\x02",
		strings.Repeat("A", 1<<16),
		"日本語のコメント echo $_GET['q'];",
		"((((((((((",
		"$_GET",
		"++++++",
		"+++ not a file header, markers were stripped upstream",
	)

	findings, skipped, err := Evaluate(context.Background(), lines, cat)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("hostile lines must not skip rules: %v", skipped)
	}

	fired := make(map[string]bool)
	for _, f := range findings {
		fired[f.RuleID] = true
	}
	// The unicode line still matches: rules are evaluated against every
	// line of every included file, whatever the language.
	if !fired["echo-request-input"] {
		t.Error("echo-request-input did not fire on unicode-wrapped line")
	}
	if !fired["request-input-usage"] {
		t.Error("request-input-usage did not fire on bare $_GET")
	}
}

func TestEvaluateLineInManyFindings(t *testing.T) {
	cat := builtinCatalogue(t)
	// One line deliberately hitting several distinct rules at once.
	line := `$wpdb->query("DELETE FROM t WHERE id=" . $_GET['id']); // TODO escape`
	findings, _, err := Evaluate(context.Background(), corpusOf(line), cat)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(findings) < 4 {
		t.Fatalf("expected at least 4 findings for the combined line, got %d: %+v", len(findings), findings)
	}
	for _, f := range findings {
		if f.MatchCount != 1 || len(f.Matches) != 1 {
			t.Errorf("rule %s: MatchCount=%d len=%d, want 1/1", f.RuleID, f.MatchCount, len(f.Matches))
		}
		if f.Matches[0].Line != 1 {
			t.Errorf("rule %s matched corpus line %d, want 1", f.RuleID, f.Matches[0].Line)
		}
	}
}

func TestEvaluateMatchIndexesAreCorpusPositions(t *testing.T) {
	cat := mustCatalogue(t, []rules.Group{{
		ID:   "test",
		Name: "Test",
		Rules: []rules.Rule{
			{ID: "needle", Pattern: "needle", Severity: model.SeverityInfo, Message: "needle"},
		},
	}})

	findings, _, err := Evaluate(context.Background(), []corpus.Line{
		{Index: 1, Text: "hay"},
		{Index: 2, Text: "needle"},
		{Index: 3, Text: "hay"},
		{Index: 4, Text: "NEEDLE, matching is case-insensitive"},
	}, cat)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	got := []int{findings[0].Matches[0].Line, findings[0].Matches[1].Line}
	if got[0] != 2 || got[1] != 4 {
		t.Fatalf("match lines = %v, want [2 4]", got)
	}
}

func TestEvaluateNoDeduplicationAcrossIdenticalPatterns(t *testing.T) {
	// Two rules with the same pattern both fire; broad and narrow checks
	// coexist on purpose.
	cat := mustCatalogue(t, []rules.Group{{
		ID:   "test",
		Name: "Test",
		Rules: []rules.Rule{
			{ID: "broad", Pattern: `\$_GET`, Severity: model.SeverityReview, Message: "broad"},
			{ID: "narrow", Pattern: `\$_GET`, Severity: model.SeverityCritical, Message: "narrow"},
		},
	}})

	findings, _, err := Evaluate(context.Background(), corpusOf("$_GET['x']"), cat)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("expected both identical-pattern rules to fire, got %d", len(findings))
	}
	counts := Aggregate(findings)
	if counts[model.SeverityReview] != 1 || counts[model.SeverityCritical] != 1 {
		t.Fatalf("counts = %v, want one review and one critical", counts)
	}
}
