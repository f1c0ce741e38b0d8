package engine

import "patrol/internal/model"

// Aggregate tallies fired rules by severity. One finding increments exactly
// one counter: a rule with fifty matching lines still counts once toward its
// severity.
func Aggregate(findings []model.Finding) map[model.Severity]int {
	counts := make(map[model.Severity]int, len(model.Severities))
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}

// DeriveStatus computes the overall scan status. Review and info findings
// are informational only and never affect it.
func DeriveStatus(counts map[model.Severity]int) model.OverallStatus {
	switch {
	case counts[model.SeverityCritical] > 0:
		return model.StatusCritical
	case counts[model.SeverityWarning] > 0:
		return model.StatusWarning
	default:
		return model.StatusClean
	}
}
