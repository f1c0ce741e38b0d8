package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type Sink interface {
	Emit(Event)
}

type NoopSink struct{}

func (NoopSink) Emit(Event) {}

type ChannelSink struct {
	ch chan<- Event
}

func NewChannelSink(ch chan<- Event) *ChannelSink {
	return &ChannelSink{ch: ch}
}

func (s *ChannelSink) Emit(e Event) {
	if s == nil || s.ch == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	select {
	case s.ch <- e:
	default:
		// Drop on backpressure so an absent/slow UI cannot block the scan.
	}
}

type PlainSink struct {
	w  io.Writer
	mu sync.Mutex
}

func NewPlainSink(w io.Writer) *PlainSink {
	return &PlainSink{w: w}
}

func (s *PlainSink) Emit(e Event) {
	if s == nil || s.w == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	line := formatPlain(e)
	if line == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.w, line)
}

func formatPlain(e Event) string {
	ts := e.At.Format("15:04:05")
	switch e.Type {
	case EventRunStarted:
		return fmt.Sprintf("[%s] scan started", ts)
	case EventStageStarted:
		return fmt.Sprintf("[%s] %s started", ts, e.Stage)
	case EventStageFinished:
		line := fmt.Sprintf("[%s] %s finished duration=%dms", ts, e.Stage, e.DurationMS)
		if msg := strings.TrimSpace(e.Message); msg != "" {
			line += " " + msg
		}
		return line
	case EventRuleSkipped:
		return fmt.Sprintf("[%s] rule skipped: %s", ts, strings.TrimSpace(e.Message))
	case EventRunFinished:
		return fmt.Sprintf("[%s] scan finished status=%s findings=%d duration=%dms",
			ts, e.Status, e.FindingCount, e.DurationMS)
	default:
		return ""
	}
}
