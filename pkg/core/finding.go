package core

import (
	"encoding/json"
	"fmt"
)

// Severity classifies how far a metric deviates from its ideal range.
type Severity int

// Severity levels, ordered so that a larger value means a worse problem.
const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

// String returns the wire name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	default:
		return "unknown"
	}
}

// MarshalJSON writes the severity as its wire name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON reads a severity from its wire name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "high":
		*s = SeverityHigh
	case "medium":
		*s = SeverityMedium
	case "low":
		*s = SeverityLow
	default:
		return fmt.Errorf("unknown severity %q", name)
	}
	return nil
}

// FindingType groups findings by the aspect of form they concern.
type FindingType string

// Finding types.
const (
	FindingStance  FindingType = "stance"
	FindingPosture FindingType = "posture"
	FindingDraw    FindingType = "draw"
)

// PhaseName identifies a temporal segment of the shot sequence.
type PhaseName string

// Shot phases.
const (
	PhaseStance PhaseName = "stance"
	PhaseDraw   PhaseName = "draw"
	PhaseAnchor PhaseName = "anchor"
)

// ErrorFinding is one rule violation: what went wrong, how bad it is, and
// how to correct it. SourceMetric names the aggregate in
// AnalysisResult.Metrics that triggered the finding.
type ErrorFinding struct {
	Type         FindingType `json:"type"`
	Issue        string      `json:"issue"`
	Severity     Severity    `json:"severity"`
	Description  string      `json:"description"`
	Correction   string      `json:"correction"`
	Measurement  string      `json:"measurement,omitempty"`
	SourceMetric string      `json:"sourceMetric"`
}
