package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"patrol/internal/progress"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

type stageState struct {
	status     string // pending | running | done
	message    string
	durationMS int64
}

type eventMsg struct {
	event progress.Event
	ok    bool
}

type tickMsg time.Time

type uiModel struct {
	events <-chan progress.Event

	stages map[string]*stageState
	order  []string

	skipped   []string
	runStatus string
	findings  int
	done      bool
	tick      int
}

func newModel(events <-chan progress.Event) uiModel {
	order := []string{progress.StagePaths, progress.StageDiff, progress.StageEvaluate, progress.StageReport}
	stages := make(map[string]*stageState, len(order))
	for _, name := range order {
		stages[name] = &stageState{status: "pending"}
	}
	return uiModel{events: events, stages: stages, order: order}
}

func (m uiModel) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), tickCmd())
}

func (m uiModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.events
		return eventMsg{event: e, ok: ok}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.tick++
		if m.done {
			return m, tea.Quit
		}
		return m, tickCmd()
	case eventMsg:
		if !msg.ok {
			m.done = true
			return m, tea.Quit
		}
		m.apply(msg.event)
		if m.done {
			return m, tea.Quit
		}
		return m, m.waitForEvent()
	}
	return m, nil
}

func (m *uiModel) apply(e progress.Event) {
	switch e.Type {
	case progress.EventStageStarted:
		if s, ok := m.stages[e.Stage]; ok {
			s.status = "running"
		}
	case progress.EventStageFinished:
		if s, ok := m.stages[e.Stage]; ok {
			s.status = "done"
			s.message = e.Message
			s.durationMS = e.DurationMS
		}
	case progress.EventRuleSkipped:
		m.skipped = append(m.skipped, e.Message)
	case progress.EventRunFinished:
		m.runStatus = e.Status
		m.findings = e.FindingCount
		m.done = true
	}
}

func (m uiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("patrol scan") + "\n\n")

	for _, name := range m.order {
		s := m.stages[name]
		var marker, label string
		switch s.status {
		case "done":
			marker = okStyle.Render("ok")
			label = name
			if s.message != "" {
				label += "  " + idleStyle.Render(s.message)
			}
		case "running":
			marker = runningStyle.Render(spinnerFrames[m.tick%len(spinnerFrames)])
			label = name
		default:
			marker = idleStyle.Render("..")
			label = idleStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("  %-2s %s\n", marker, label))
	}

	for _, skip := range m.skipped {
		b.WriteString(warnStyle.Render("  skipped: "+skip) + "\n")
	}

	if m.done {
		status := strings.ToUpper(m.runStatus)
		style := okStyle
		switch m.runStatus {
		case "critical":
			style = errorStyle
		case "warning":
			style = warnStyle
		}
		b.WriteString("\n" + style.Render(fmt.Sprintf("%s: %d finding(s)", status, m.findings)) + "\n")
	} else {
		b.WriteString("\n" + helpStyle.Render("q to quit") + "\n")
	}
	return b.String()
}
