package progress

import (
	"strings"
	"testing"
	"time"
)

func TestChannelSinkDropsOnBackpressure(t *testing.T) {
	ch := make(chan Event, 1)
	sink := NewChannelSink(ch)
	sink.Emit(Event{Type: EventRunStarted})
	sink.Emit(Event{Type: EventRunFinished}) // full channel, must not block
	if len(ch) != 1 {
		t.Fatalf("channel holds %d events, want 1", len(ch))
	}
}

func TestChannelSinkNilSafe(t *testing.T) {
	var sink *ChannelSink
	sink.Emit(Event{Type: EventRunStarted}) // must not panic
}

func TestPlainSinkFormats(t *testing.T) {
	var b strings.Builder
	sink := NewPlainSink(&b)
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	sink.Emit(Event{Type: EventRunStarted, At: at})
	sink.Emit(Event{Type: EventStageStarted, At: at, Stage: StageEvaluate})
	sink.Emit(Event{Type: EventStageFinished, At: at, Stage: StageEvaluate, DurationMS: 12, Message: "3 finding(s)"})
	sink.Emit(Event{Type: EventRuleSkipped, At: at, Message: "slow-rule: timeout"})
	sink.Emit(Event{Type: EventRunFinished, At: at, Status: "critical", FindingCount: 3, DurationMS: 40})

	out := b.String()
	for _, want := range []string{
		"[12:00:00] scan started",
		"evaluate started",
		"evaluate finished duration=12ms 3 finding(s)",
		"rule skipped: slow-rule: timeout",
		"scan finished status=critical findings=3 duration=40ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plain sink output missing %q:\n%s", want, out)
		}
	}
}

func TestPlainSinkIgnoresUnknownEvents(t *testing.T) {
	var b strings.Builder
	NewPlainSink(&b).Emit(Event{Type: "mystery"})
	if b.Len() != 0 {
		t.Fatalf("unexpected output: %q", b.String())
	}
}
