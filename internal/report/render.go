package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"patrol/internal/model"
	"patrol/internal/sanitize"
)

var (
	criticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warningStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	reviewStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cleanStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func severityStyle(sev model.Severity) lipgloss.Style {
	switch sev {
	case model.SeverityCritical:
		return criticalStyle
	case model.SeverityWarning:
		return warningStyle
	case model.SeverityReview:
		return reviewStyle
	default:
		return infoStyle
	}
}

type section struct {
	id       string
	name     string
	findings []model.Finding
}

// sections groups findings by catalogue section, preserving the order in
// which sections first appear (catalogue order, since findings are already
// in catalogue order).
func sections(findings []model.Finding) []section {
	index := make(map[string]int)
	var out []section
	for _, f := range findings {
		i, ok := index[f.Group]
		if !ok {
			i = len(out)
			index[f.Group] = i
			name := f.GroupName
			if name == "" {
				name = f.Group
			}
			out = append(out, section{id: f.Group, name: name})
		}
		out[i].findings = append(out[i].findings, f)
	}
	return out
}

// RenderHuman formats the report for the terminal. When color is false every
// lipgloss style is bypassed, so output is safe to pipe.
func RenderHuman(rep model.Report, color bool) string {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	rangeLabel := rep.BaseRef
	if rep.HeadRef != "" {
		rangeLabel += ".." + rep.HeadRef
	}
	b.WriteString(style(headerStyle, "patrol scan") + "  " + rangeLabel + "\n")
	b.WriteString(fmt.Sprintf("  changed files: %d   lines: +%d -%d   corpus: %d line(s)\n",
		rep.ChangedFileCount, rep.LinesAdded, rep.LinesRemoved, rep.CorpusLines))

	var tags []string
	for _, sev := range model.Severities {
		tag := fmt.Sprintf("%s:%d", strings.ToUpper(string(sev)), rep.CountsBySeverity[sev])
		tags = append(tags, style(severityStyle(sev), tag))
	}
	b.WriteString("  " + strings.Join(tags, "  ") + "\n\n")

	if len(rep.Findings) == 0 {
		b.WriteString("No findings in added lines.\n")
	}
	for _, sec := range sections(rep.Findings) {
		b.WriteString(style(headerStyle, sec.name) + "\n")
		for _, f := range sec.findings {
			tag := fmt.Sprintf("[%-8s]", strings.ToUpper(string(f.Severity)))
			b.WriteString(fmt.Sprintf("%s %s (%s)\n", style(severityStyle(f.Severity), tag), f.Message, f.RuleID))
			for _, m := range f.Matches {
				b.WriteString(fmt.Sprintf("    %4d | %s\n", m.Line, sanitize.Inline(m.Text)))
			}
			if f.Truncated {
				b.WriteString(style(mutedStyle,
					fmt.Sprintf("    ... %d more match(es) not shown\n", f.MatchCount-len(f.Matches))))
			}
		}
		b.WriteString("\n")
	}

	for _, s := range rep.SkippedRules {
		b.WriteString(style(warningStyle, fmt.Sprintf("skipped rule %s: %s\n", s.RuleID, s.Reason)))
	}

	switch rep.OverallStatus {
	case model.StatusCritical:
		b.WriteString(style(criticalStyle, "status: CRITICAL") + "\n")
	case model.StatusWarning:
		b.WriteString(style(warningStyle, "status: WARNING") + "\n")
	default:
		b.WriteString(style(cleanStyle, "status: CLEAN") + "\n")
	}
	return b.String()
}

// RenderMarkdown formats the report as a markdown document for file output.
func RenderMarkdown(rep model.Report) string {
	var b strings.Builder
	b.WriteString("# Patrol Scan Report\n\n")
	rangeLabel := rep.BaseRef
	if rep.HeadRef != "" {
		rangeLabel += ".." + rep.HeadRef
	}
	b.WriteString(fmt.Sprintf("- Range: `%s`\n", rangeLabel))
	b.WriteString(fmt.Sprintf("- Generated: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	b.WriteString(fmt.Sprintf("- Changed files: %d\n", rep.ChangedFileCount))
	b.WriteString(fmt.Sprintf("- Lines: +%d / -%d (%d added line(s) scanned)\n", rep.LinesAdded, rep.LinesRemoved, rep.CorpusLines))
	b.WriteString(fmt.Sprintf("- Status: **%s**\n\n", strings.ToUpper(string(rep.OverallStatus))))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Severity | Fired rules |\n|---|---|\n")
	for _, sev := range model.Severities {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", strings.ToUpper(string(sev)), rep.CountsBySeverity[sev]))
	}
	b.WriteString("\n")

	if len(rep.Findings) == 0 {
		b.WriteString("No findings in added lines.\n")
	}
	for _, sec := range sections(rep.Findings) {
		b.WriteString(fmt.Sprintf("## %s\n\n", sec.name))
		for _, f := range sec.findings {
			b.WriteString(fmt.Sprintf("### %s: %s\n\n", strings.ToUpper(string(f.Severity)), f.Message))
			b.WriteString(fmt.Sprintf("Rule `%s`, %d match(es).\n\n", f.RuleID, f.MatchCount))
			b.WriteString("```\n")
			for _, m := range f.Matches {
				b.WriteString(fmt.Sprintf("%4d | %s\n", m.Line, sanitize.Inline(m.Text)))
			}
			b.WriteString("```\n\n")
			if f.Truncated {
				b.WriteString(fmt.Sprintf("_%d more match(es) not shown._\n\n", f.MatchCount-len(f.Matches)))
			}
		}
	}

	if len(rep.SkippedRules) > 0 {
		b.WriteString("## Skipped rules\n\n")
		for _, s := range rep.SkippedRules {
			b.WriteString(fmt.Sprintf("- `%s`: %s\n", s.RuleID, s.Reason))
		}
		b.WriteString("\n")
	}

	if len(rep.ChangedFiles) > 0 {
		b.WriteString("## Changed files\n\n")
		for _, p := range rep.ChangedFiles {
			b.WriteString(fmt.Sprintf("- `%s` (%s)\n", p.Path, p.Kind))
		}
	}
	return b.String()
}

func WriteMarkdown(path string, rep model.Report) error {
	return writeText(path, RenderMarkdown(rep))
}
