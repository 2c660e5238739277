// Package feedback orders findings by priority and renders them into
// corrective feedback sentences.
package feedback

import (
	"fmt"
	"sort"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// GoodForm is emitted when a sequence produced no findings at all.
const GoodForm = "Good form! No major errors detected."

// Prioritize sorts findings by severity descending. The sort is stable so
// equal severities keep the rule engine's table order, which makes any
// prefix of the output a valid "top N" and the whole list deterministic.
func Prioritize(findings []core.ErrorFinding) []core.ErrorFinding {
	ordered := make([]core.ErrorFinding, len(findings))
	copy(ordered, findings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Severity > ordered[j].Severity
	})
	return ordered
}

// Render turns prioritized findings into feedback sentences, deduplicating
// identical renderings while preserving order. An empty finding list
// renders a single all-clear sentence.
func Render(findings []core.ErrorFinding) []string {
	if len(findings) == 0 {
		return []string{GoodForm}
	}

	seen := make(map[string]struct{}, len(findings))
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		line := renderOne(f)
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}
	return lines
}

func renderOne(f core.ErrorFinding) string {
	if f.Measurement == "" {
		return fmt.Sprintf("[%s] %s. %s.", f.Severity, f.Description, f.Correction)
	}
	return fmt.Sprintf("[%s] %s. %s. (%s)", f.Severity, f.Description, f.Correction, f.Measurement)
}
