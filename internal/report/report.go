// Package report assembles and renders the scan report. The engine hands
// over findings and skipped rules; file and line statistics come from the
// git collaborator and are never recomputed here.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"patrol/internal/engine"
	"patrol/internal/model"
)

type BuildParams struct {
	BaseRef        string
	HeadRef        string
	Findings       []model.Finding
	SkippedRules   []model.SkippedRule
	RulesEvaluated int
	ChangedFiles   []model.ChangedPath
	LinesAdded     int
	LinesRemoved   int
	CorpusLines    int
}

// Build assembles the report: findings stay in catalogue order, severity
// counts are a pure reduction over them, and the overall status is derived
// from the counts.
func Build(params BuildParams) model.Report {
	counts := engine.Aggregate(params.Findings)
	findings := params.Findings
	if findings == nil {
		findings = []model.Finding{}
	}
	changed := params.ChangedFiles
	if changed == nil {
		changed = []model.ChangedPath{}
	}
	return model.Report{
		GeneratedAt:      time.Now().UTC(),
		BaseRef:          params.BaseRef,
		HeadRef:          params.HeadRef,
		Findings:         findings,
		SkippedRules:     params.SkippedRules,
		CountsBySeverity: counts,
		RulesEvaluated:   params.RulesEvaluated,
		ChangedFiles:     changed,
		ChangedFileCount: len(changed),
		LinesAdded:       params.LinesAdded,
		LinesRemoved:     params.LinesRemoved,
		CorpusLines:      params.CorpusLines,
		OverallStatus:    engine.DeriveStatus(counts),
	}
}

func WriteJSON(path string, rep model.Report) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o600); err != nil {
		return fmt.Errorf("write report json: %w", err)
	}
	return nil
}

func writeText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func ReadJSON(path string) (model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Report{}, fmt.Errorf("read report %s: %w", path, err)
	}
	var rep model.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return model.Report{}, fmt.Errorf("parse report %s: %w", path, err)
	}
	return rep, nil
}
