package rules

import (
	"fmt"
	"strings"
)

// Options selects which rule groups make up the effective catalogue.
type Options struct {
	RulesDir string
	NoCustom bool

	// OnlyGroups/SkipGroups filter by group ID. Only wins when both are set
	// for the same ID.
	OnlyGroups []string
	SkipGroups []string
}

// Resolve builds the effective catalogue: built-in groups in declaration
// order, then custom groups in file-name order, validated and compiled.
// Any invalid group or pattern fails the whole resolution before a scan can
// start.
func Resolve(opts Options) (*Catalogue, error) {
	groups := Builtins()

	if !opts.NoCustom && strings.TrimSpace(opts.RulesDir) != "" {
		custom, err := LoadDir(opts.RulesDir)
		if err != nil {
			return nil, err
		}
		groups = append(groups, custom...)
	}

	seen := make(map[string]bool, len(groups))
	for _, group := range groups {
		if err := ValidateGroup(group); err != nil {
			return nil, err
		}
		if seen[group.ID] {
			return nil, fmt.Errorf("duplicate rule group id %q", group.ID)
		}
		seen[group.ID] = true
	}

	groups, err := selectGroups(groups, opts.OnlyGroups, opts.SkipGroups)
	if err != nil {
		return nil, err
	}
	return NewCatalogue(groups)
}

// NewCatalogue compiles validated groups into a catalogue. Group and rule
// order is preserved exactly.
func NewCatalogue(groups []Group) (*Catalogue, error) {
	catalogue := &Catalogue{Groups: groups}
	for _, group := range groups {
		for _, rule := range group.Rules {
			re, err := compilePattern(rule.Pattern)
			if err != nil {
				// Unreachable after validation, but the catalogue must
				// never carry an uncompiled rule into a scan.
				return nil, fmt.Errorf("compile rule %s/%s: %w", group.ID, rule.ID, err)
			}
			catalogue.rules = append(catalogue.rules, CompiledRule{
				Rule:      rule,
				GroupID:   group.ID,
				GroupName: group.Name,
				Regex:     re,
			})
		}
	}
	return catalogue, nil
}

func selectGroups(groups []Group, only, skip []string) ([]Group, error) {
	known := make(map[string]bool, len(groups))
	for _, group := range groups {
		known[group.ID] = true
	}
	for _, id := range append(append([]string{}, only...), skip...) {
		if !known[id] {
			return nil, fmt.Errorf("unknown rule group %q", id)
		}
	}

	onlySet := toSet(only)
	skipSet := toSet(skip)

	out := make([]Group, 0, len(groups))
	for _, group := range groups {
		if len(onlySet) > 0 {
			if onlySet[group.ID] {
				out = append(out, group)
			}
			continue
		}
		if skipSet[group.ID] {
			continue
		}
		out = append(out, group)
	}
	return out, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = true
		}
	}
	return set
}
