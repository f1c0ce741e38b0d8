package badge

import "patrol/internal/model"

// Grade computes a letter grade and badge color from fired-rule severity
// counts. Only the grade and color are returned; no finding details leak
// into the badge.
func Grade(counts map[model.Severity]int) (grade string, color string) {
	critical := counts[model.SeverityCritical]
	warning := counts[model.SeverityWarning]
	total := 0
	for _, c := range counts {
		total += c
	}

	switch {
	case total == 0:
		return "A+", "brightgreen"
	case critical == 0 && warning == 0:
		return "A", "green"
	case critical == 0 && warning <= 3:
		return "B", "yellowgreen"
	case critical == 0:
		return "C", "yellow"
	case critical <= 3:
		return "D", "orange"
	default:
		return "F", "red"
	}
}
