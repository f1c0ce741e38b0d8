package rules

import (
	"fmt"
	"regexp"
	"strings"

	"patrol/internal/model"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

// ValidationError aggregates every problem found in a group so a catalogue
// author sees all of them at once. The catalogue fails closed: any
// validation error is fatal before a scan starts, never during one.
type ValidationError struct {
	GroupID  string
	Problems []string
}

func (e *ValidationError) Error() string {
	id := e.GroupID
	if id == "" {
		id = "(missing id)"
	}
	return fmt.Sprintf("invalid rule group %s: %s", id, strings.Join(e.Problems, "; "))
}

// ValidateGroup checks a group and every rule in it, including that each
// pattern compiles as a case-insensitive regex.
func ValidateGroup(group Group) error {
	var problems []string

	if v := strings.TrimSpace(group.APIVersion); v != "" && v != APIVersion {
		problems = append(problems, fmt.Sprintf("api_version must be %q", APIVersion))
	}
	id := strings.TrimSpace(group.ID)
	if id == "" {
		problems = append(problems, "id is required")
	} else if !idPattern.MatchString(id) {
		problems = append(problems, "id must match ^[a-z0-9][a-z0-9_-]{1,63}$")
	}
	if strings.TrimSpace(group.Name) == "" {
		problems = append(problems, "name is required")
	}
	if len(group.Rules) == 0 {
		problems = append(problems, "rules must contain at least one rule")
	}

	seen := make(map[string]bool, len(group.Rules))
	for i, rule := range group.Rules {
		prefix := fmt.Sprintf("rules[%d]", i)
		ruleID := strings.TrimSpace(rule.ID)
		switch {
		case ruleID == "":
			problems = append(problems, prefix+".id is required")
		case !idPattern.MatchString(ruleID):
			problems = append(problems, prefix+".id must match ^[a-z0-9][a-z0-9_-]{1,63}$")
		case seen[ruleID]:
			problems = append(problems, fmt.Sprintf("%s.id %q duplicates an earlier rule", prefix, ruleID))
		default:
			seen[ruleID] = true
		}
		if strings.TrimSpace(rule.Message) == "" {
			problems = append(problems, prefix+".message is required")
		}
		if strings.TrimSpace(rule.Pattern) == "" {
			problems = append(problems, prefix+".pattern is required")
		} else if _, err := compilePattern(rule.Pattern); err != nil {
			problems = append(problems, fmt.Sprintf("%s.pattern does not compile: %v", prefix, err))
		}
		if _, err := model.ParseSeverity(string(rule.Severity)); err != nil {
			problems = append(problems, fmt.Sprintf("%s.severity: %v", prefix, err))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{GroupID: group.ID, Problems: problems}
	}
	return nil
}

// compilePattern compiles a rule pattern with the catalogue's matching
// semantics: case-insensitive, unanchored.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}
