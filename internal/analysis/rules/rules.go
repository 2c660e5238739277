// Package rules evaluates a fixed, ordered table of form rules against
// per-phase metric aggregates and emits severity-tagged error findings.
//
// Each rule binds one metric to one phase, an ideal range, and three
// severity bands expressed as deviation distances outside the range. Band
// edges are half-open on the low side: a deviation d yields high when
// d >= High, medium when Medium <= d < High, low when Low <= d < Medium.
// A deviation of exactly zero (value on the range edge) never triggers.
package rules

import (
	"fmt"
	"math"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/metrics"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/phase"
	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// Aggregate selects how the rule's metric is reduced over its phase.
type Aggregate string

// Aggregation modes.
const (
	// AggMean averages the metric over every detected frame of the phase.
	AggMean Aggregate = "mean"
	// AggKeyFrame reads the metric at the phase's key frame.
	AggKeyFrame Aggregate = "keyframe"
)

// Bands holds the deviation distances at which each severity begins.
// A band set to Never disables that severity.
type Bands struct {
	Low    float64
	Medium float64
	High   float64
}

// Never disables a severity band.
var Never = math.Inf(1)

// Rule is one row of the rule table.
type Rule struct {
	// Issue is the stable identifier of the finding this rule produces.
	Issue string

	Type      core.FindingType
	Metric    string
	Phase     core.PhaseName
	Aggregate Aggregate

	// Min/Max bound the ideal range, inclusive on both edges.
	Min, Max float64

	Bands Bands

	Description string
	Correction  string

	// Unit renders in the measurement string ("", "deg", ...).
	Unit string
}

// DefaultTable returns the built-in rule calibration. The thresholds are
// domain calibration values, overridable through configuration; they follow
// the stance/posture/draw heuristics the service shipped with.
func DefaultTable() []Rule {
	return []Rule{
		{
			Issue:       "stance_width",
			Type:        core.FindingStance,
			Metric:      metrics.StanceWidth,
			Phase:       core.PhaseStance,
			Aggregate:   AggMean,
			Min:         0.8,
			Max:         1.3,
			Bands:       Bands{Low: Never, Medium: 0, High: 0.2},
			Description: "Stance width is outside the stable range relative to shoulder width",
			Correction:  "Place your feet about shoulder-width apart for a stable base",
		},
		{
			Issue:       "uneven_foot_height",
			Type:        core.FindingStance,
			Metric:      metrics.FootLevel,
			Phase:       core.PhaseStance,
			Aggregate:   AggMean,
			Min:         0,
			Max:         0.1,
			Bands:       Bands{Low: Never, Medium: 0, High: Never},
			Description: "Feet are planted at different heights",
			Correction:  "Plant both feet firmly and evenly on the ground",
		},
		{
			Issue:       "knee_misalignment",
			Type:        core.FindingStance,
			Metric:      metrics.KneeAlignment,
			Phase:       core.PhaseStance,
			Aggregate:   AggMean,
			Min:         0,
			Max:         0.12,
			Bands:       Bands{Low: Never, Medium: 0, High: Never},
			Description: "Knees are not aligned over the feet",
			Correction:  "Align your knees directly over your feet for better stability",
		},
		{
			Issue:       "body_misalignment",
			Type:        core.FindingPosture,
			Metric:      metrics.BodyAlignment,
			Phase:       core.PhaseStance,
			Aggregate:   AggMean,
			Min:         0,
			Max:         0.12,
			Bands:       Bands{Low: 0, Medium: 0.08, High: 0.2},
			Description: "Shoulders are not centered over the feet",
			Correction:  "Center your shoulders directly over your feet",
		},
		{
			Issue:       "uneven_shoulders",
			Type:        core.FindingDraw,
			Metric:      metrics.ShoulderLevel,
			Phase:       core.PhaseDraw,
			Aggregate:   AggMean,
			Min:         0,
			Max:         0.03,
			Bands:       Bands{Low: 0, Medium: 0.02, High: 0.09},
			Description: "Shoulders are not level during the draw",
			Correction:  "Keep both shoulders level and relaxed while drawing",
		},
		{
			Issue:       "draw_elbow_angle",
			Type:        core.FindingDraw,
			Metric:      metrics.ElbowAngleDraw,
			Phase:       core.PhaseAnchor,
			Aggregate:   AggKeyFrame,
			Min:         80,
			Max:         100,
			Bands:       Bands{Low: 0, Medium: 15, High: 30},
			Description: "Drawing elbow angle is outside the anchor range",
			Correction:  "Keep the drawing elbow up and back to hold proper back tension",
			Unit:        "deg",
		},
		{
			Issue:       "draw_length",
			Type:        core.FindingDraw,
			Metric:      metrics.DrawLength,
			Phase:       core.PhaseAnchor,
			Aggregate:   AggKeyFrame,
			Min:         1.0,
			Max:         2.2,
			Bands:       Bands{Low: 0, Medium: 0.25, High: 0.5},
			Description: "Draw length at anchor does not match your frame",
			Correction:  "Draw to a consistent anchor point at the corner of your mouth",
		},
	}
}

// Engine evaluates a rule table. The table is read-only after construction
// and safe for concurrent use across analysis runs.
type Engine struct {
	table []Rule
}

// NewEngine creates an Engine over the given table. A nil table uses the
// default calibration.
func NewEngine(table []Rule) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	return &Engine{table: table}
}

// Table exposes the rule table for inspection and exhaustive testing.
func (e *Engine) Table() []Rule { return e.table }

// Evaluate runs every rule against the segmented sequence. It returns the
// findings in table order and the aggregate value computed for each
// evaluated rule keyed by metric name, which becomes the result's metric
// summary. Rules bound to an empty phase, or whose aggregate has no usable
// frames, are skipped silently.
func (e *Engine) Evaluate(series metrics.Series, phases phase.Phases) ([]core.ErrorFinding, map[string]float64) {
	findings := make([]core.ErrorFinding, 0)
	aggregates := make(map[string]float64, len(e.table))

	for _, r := range e.table {
		window := phases.Window(r.Phase)
		if window.Empty() {
			continue
		}
		values, ok := series[r.Metric]
		if !ok {
			continue
		}

		var value float64
		switch r.Aggregate {
		case AggKeyFrame:
			key := phases.Key(r.Phase)
			if key < 0 || key >= len(values) {
				continue
			}
			value = values[key]
		default:
			value = metrics.Mean(values, window.Start, window.End+1)
		}
		if math.IsNaN(value) {
			continue
		}

		aggregates[r.Metric] = value

		severity, deviation := classify(r, value)
		if severity == 0 {
			continue
		}

		findings = append(findings, core.ErrorFinding{
			Type:         r.Type,
			Issue:        r.Issue,
			Severity:     severity,
			Description:  r.Description,
			Correction:   r.Correction,
			Measurement:  r.measurement(value, deviation),
			SourceMetric: r.Metric,
		})
	}

	return findings, aggregates
}

// classify returns the severity for a value and its deviation outside the
// ideal range, or 0 when the value is within tolerance.
func classify(r Rule, value float64) (core.Severity, float64) {
	var deviation float64
	switch {
	case value < r.Min:
		deviation = r.Min - value
	case value > r.Max:
		deviation = value - r.Max
	default:
		return 0, 0
	}

	switch {
	case deviation >= r.Bands.High:
		return core.SeverityHigh, deviation
	case deviation >= r.Bands.Medium:
		return core.SeverityMedium, deviation
	case deviation >= r.Bands.Low:
		return core.SeverityLow, deviation
	default:
		return 0, deviation
	}
}

func (r Rule) measurement(value, deviation float64) string {
	unit := r.Unit
	if unit != "" {
		unit = " " + unit
	}
	return fmt.Sprintf("%s: %.3f%s (ideal %.3f to %.3f%s, deviation %.3f)",
		r.Metric, value, unit, r.Min, r.Max, unit, deviation)
}
