package rules

import (
	"strings"
	"testing"

	"patrol/internal/model"
)

func validGroup() Group {
	return Group{
		ID:   "custom-checks",
		Name: "Custom Checks",
		Rules: []Rule{
			{ID: "no-foo", Pattern: `\bfoo\(`, Message: "call to foo", Severity: model.SeverityWarning},
		},
	}
}

func TestValidateGroupOK(t *testing.T) {
	if err := ValidateGroup(validGroup()); err != nil {
		t.Fatalf("valid group rejected: %v", err)
	}
}

func TestValidateGroupFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Group)
		problem string
	}{
		{
			"missing id",
			func(g *Group) { g.ID = "" },
			"id is required",
		},
		{
			"bad id characters",
			func(g *Group) { g.ID = "Bad ID!" },
			"id must match",
		},
		{
			"missing name",
			func(g *Group) { g.Name = " " },
			"name is required",
		},
		{
			"no rules",
			func(g *Group) { g.Rules = nil },
			"at least one rule",
		},
		{
			"wrong api version",
			func(g *Group) { g.APIVersion = "patrol/v99" },
			"api_version",
		},
		{
			"malformed pattern",
			func(g *Group) { g.Rules[0].Pattern = `unclosed[` },
			"does not compile",
		},
		{
			"missing message",
			func(g *Group) { g.Rules[0].Message = "" },
			"message is required",
		},
		{
			"bad severity",
			func(g *Group) { g.Rules[0].Severity = "catastrophic" },
			"severity",
		},
		{
			"duplicate rule id",
			func(g *Group) { g.Rules = append(g.Rules, g.Rules[0]) },
			"duplicates an earlier rule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := validGroup()
			tt.mutate(&group)
			err := ValidateGroup(group)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.problem) {
				t.Fatalf("error %q does not mention %q", err, tt.problem)
			}
		})
	}
}

func TestValidateGroupReportsAllProblems(t *testing.T) {
	group := Group{Rules: []Rule{{}}}
	err := ValidateGroup(group)
	if err == nil {
		t.Fatal("expected validation error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Problems) < 4 {
		t.Fatalf("expected every problem reported at once, got %v", verr.Problems)
	}
}
