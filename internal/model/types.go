package model

import (
	"fmt"
	"strings"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityReview   Severity = "review"
	SeverityInfo     Severity = "info"
)

// Severities lists all severities from most to least severe. The order is
// used for summary emphasis only, never for short-circuiting evaluation.
var Severities = []Severity{SeverityCritical, SeverityWarning, SeverityReview, SeverityInfo}

func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityCritical:
		return SeverityCritical, nil
	case SeverityWarning:
		return SeverityWarning, nil
	case SeverityReview:
		return SeverityReview, nil
	case SeverityInfo:
		return SeverityInfo, nil
	default:
		return "", fmt.Errorf("unknown severity %q (want critical|warning|review|info)", s)
	}
}

// Rank returns the sort rank of a severity (lower = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityReview:
		return 2
	case SeverityInfo:
		return 3
	default:
		return 4
	}
}

type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeRenamed  ChangeKind = "renamed"
)

type ChangedPath struct {
	Path string     `json:"path"`
	Kind ChangeKind `json:"kind"`
}

// MatchLine is one corpus line a rule matched. Line is the position in the
// flattened added-line corpus, not a file line number.
type MatchLine struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

type Finding struct {
	RuleID     string      `json:"rule_id"`
	Group      string      `json:"group"`
	GroupName  string      `json:"group_name,omitempty"`
	Message    string      `json:"message"`
	Severity   Severity    `json:"severity"`
	Matches    []MatchLine `json:"matches"`
	MatchCount int         `json:"match_count"`
	Truncated  bool        `json:"truncated,omitempty"`
}

// SkippedRule records a rule whose evaluation failed at scan time. The run
// still completes; skipped rules are surfaced in the report so it is never
// silently partial.
type SkippedRule struct {
	RuleID string `json:"rule_id"`
	Reason string `json:"reason"`
}

type OverallStatus string

const (
	StatusClean    OverallStatus = "clean"
	StatusWarning  OverallStatus = "warning"
	StatusCritical OverallStatus = "critical"
)

type Report struct {
	GeneratedAt      time.Time        `json:"generated_at"`
	BaseRef          string           `json:"base_ref"`
	HeadRef          string           `json:"head_ref"`
	Findings         []Finding        `json:"findings"`
	SkippedRules     []SkippedRule    `json:"skipped_rules,omitempty"`
	CountsBySeverity map[Severity]int `json:"counts_by_severity"`
	RulesEvaluated   int              `json:"rules_evaluated"`
	ChangedFiles     []ChangedPath    `json:"changed_files"`
	ChangedFileCount int              `json:"changed_file_count"`
	LinesAdded       int              `json:"lines_added"`
	LinesRemoved     int              `json:"lines_removed"`
	CorpusLines      int              `json:"corpus_lines"`
	OverallStatus    OverallStatus    `json:"overall_status"`
}
