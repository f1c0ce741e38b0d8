package progress

import "time"

type EventType string

const (
	EventRunStarted    EventType = "run_started"
	EventStageStarted  EventType = "stage_started"
	EventStageFinished EventType = "stage_finished"
	EventRuleSkipped   EventType = "rule_skipped"
	EventRunFinished   EventType = "run_finished"
)

// Stage names emitted during a scan, in pipeline order.
const (
	StagePaths    = "changed_paths"
	StageDiff     = "diff"
	StageEvaluate = "evaluate"
	StageReport   = "report"
)

type Event struct {
	Type         EventType `json:"type"`
	At           time.Time `json:"at"`
	Stage        string    `json:"stage,omitempty"`
	Status       string    `json:"status,omitempty"`
	Message      string    `json:"message,omitempty"`
	FindingCount int       `json:"finding_count,omitempty"`
	DurationMS   int64     `json:"duration_ms,omitempty"`
}
