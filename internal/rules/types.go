package rules

import (
	"regexp"

	"patrol/internal/model"
)

const APIVersion = "patrol/v1"

type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceCustom  Source = "custom"
)

// Rule is one declarative detection pattern. Rules are data, not code: the
// catalogue can be loaded, validated, and tested independently of the engine.
// Patterns are matched case-insensitively and unanchored against every added
// line regardless of file type; overlapping rules are intentional and all of
// them fire.
type Rule struct {
	ID       string         `yaml:"id" json:"id"`
	Pattern  string         `yaml:"pattern" json:"pattern"`
	Message  string         `yaml:"message" json:"message"`
	Severity model.Severity `yaml:"severity" json:"severity"`
}

// Group is a named section of the catalogue. Grouping exists for report
// sectioning and selection only; it has no effect on evaluation semantics.
type Group struct {
	APIVersion string `yaml:"api_version,omitempty" json:"api_version,omitempty"`
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Source     Source `yaml:"-" json:"source,omitempty"`
	Rules      []Rule `yaml:"rules" json:"rules"`
}

// CompiledRule pairs a rule with its compiled case-insensitive regex and the
// group it came from.
type CompiledRule struct {
	Rule
	GroupID   string
	GroupName string
	Regex     *regexp.Regexp
}

// Catalogue is the resolved, ordered, immutable rule set for one process.
// Rule order is a documented invariant: findings are reported in catalogue
// order, so the order here is the order everywhere.
type Catalogue struct {
	Groups []Group
	rules  []CompiledRule
}

// Rules returns all compiled rules in catalogue order.
func (c *Catalogue) Rules() []CompiledRule {
	return c.rules
}

func (c *Catalogue) Len() int {
	return len(c.rules)
}
