package report

import (
	"encoding/json"
	"fmt"

	"patrol/internal/model"
	"patrol/internal/sanitize"
	"patrol/internal/version"
)

// SARIF v2.1.0 types, the minimal subset GitHub Code Scanning accepts.

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri"`
	Version        string      `json:"version"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string              `json:"id"`
	Name             string              `json:"name,omitempty"`
	ShortDescription sarifMessage        `json:"shortDescription"`
	DefaultConfig    *sarifDefaultConfig `json:"defaultConfiguration,omitempty"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID     string           `json:"ruleId"`
	Level      string           `json:"level"`
	Message    sarifMessage     `json:"message"`
	Properties *sarifProperties `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifProperties struct {
	Severity   string   `json:"severity"`
	Group      string   `json:"group"`
	MatchCount int      `json:"match_count"`
	Truncated  bool     `json:"truncated,omitempty"`
	Examples   []string `json:"examples,omitempty"`
}

func sarifLevel(sev model.Severity) string {
	switch sev {
	case model.SeverityCritical:
		return "error"
	case model.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// RenderSARIF converts the report into SARIF. Findings carry no file
// attribution (the corpus is a flat added-line sequence), so results omit
// physical locations and keep the matched lines as properties.
func RenderSARIF(rep model.Report) (string, error) {
	results := make([]sarifResult, 0, len(rep.Findings))
	sarifRules := make([]sarifRule, 0, len(rep.Findings))
	for _, f := range rep.Findings {
		examples := make([]string, 0, len(f.Matches))
		for _, m := range f.Matches {
			examples = append(examples, sanitize.Inline(m.Text))
		}
		sarifRules = append(sarifRules, sarifRule{
			ID:               f.RuleID,
			Name:             f.RuleID,
			ShortDescription: sarifMessage{Text: f.Message},
			DefaultConfig:    &sarifDefaultConfig{Level: sarifLevel(f.Severity)},
		})
		results = append(results, sarifResult{
			RuleID:  f.RuleID,
			Level:   sarifLevel(f.Severity),
			Message: sarifMessage{Text: fmt.Sprintf("%s (%d match(es) in added lines)", f.Message, f.MatchCount)},
			Properties: &sarifProperties{
				Severity:   string(f.Severity),
				Group:      f.Group,
				MatchCount: f.MatchCount,
				Truncated:  f.Truncated,
				Examples:   examples,
			},
		})
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           "patrol",
				InformationURI: "https://github.com/patrol-dev/patrol",
				Version:        version.Version,
				Rules:          sarifRules,
			}},
			Results: results,
		}},
	}
	b, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sarif: %w", err)
	}
	return string(b) + "\n", nil
}

func WriteSARIF(path string, rep model.Report) error {
	content, err := RenderSARIF(rep)
	if err != nil {
		return err
	}
	return writeText(path, content)
}
