// Package analysis wires the normalization, metric, phase, rule and
// feedback stages into the single Analyze operation exposed to callers.
//
// One Analyzer is built per process with an immutable rule table and
// calibration; it holds no per-run state, so concurrent analysis runs are
// safe without locking.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/feedback"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/metrics"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/normalize"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/phase"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/rules"
	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// Fatal analysis errors. Local conditions (a bad frame, an undetectable
// phase) degrade gracefully and never surface as errors.
var (
	// ErrNoPoseDetected means zero frames survived normalization.
	ErrNoPoseDetected = errors.New("no pose detected in sequence")

	// ErrInvalidSequence means the input was empty or its frames were
	// not monotonically ordered.
	ErrInvalidSequence = errors.New("invalid pose sequence")
)

// Options bundles the calibration for one Analyzer.
type Options struct {
	Normalize normalize.Options
	Phase     phase.Options

	// DrawSide selects the string arm; defaults to right.
	DrawSide metrics.Side

	// Table overrides the rule table; nil uses the default calibration.
	Table []rules.Rule

	// PoseDataLimit bounds the down-sampled frame trace returned for
	// visualization.
	PoseDataLimit int
}

// DefaultOptions returns the shipped calibration.
func DefaultOptions() Options {
	return Options{
		Normalize:     normalize.DefaultOptions(),
		Phase:         phase.DefaultOptions(),
		DrawSide:      metrics.SideRight,
		PoseDataLimit: 20,
	}
}

// Analyzer runs the full biomechanical analysis pipeline.
type Analyzer struct {
	normalizer *normalize.Normalizer
	detector   *phase.Detector
	engine     *rules.Engine
	drawSide   metrics.Side
	poseLimit  int
	logger     *slog.Logger
}

// New creates an Analyzer. The logger is the only impure dependency; pass
// a discard logger in tests.
func New(opts Options, logger *slog.Logger) *Analyzer {
	if opts.DrawSide == "" {
		opts.DrawSide = metrics.SideRight
	}
	if opts.PoseDataLimit <= 0 {
		opts.PoseDataLimit = 20
	}
	return &Analyzer{
		normalizer: normalize.New(opts.Normalize),
		detector:   phase.New(opts.Phase),
		engine:     rules.NewEngine(opts.Table),
		drawSide:   opts.DrawSide,
		poseLimit:  opts.PoseDataLimit,
		logger:     logger,
	}
}

// DrawSide reports which arm the analyzer treats as the string arm.
func (a *Analyzer) DrawSide() metrics.Side { return a.drawSide }

// Analyze runs the pipeline over one pose sequence and assembles the
// result. The sequence is never mutated; each stage is a pure
// transformation over the previous stage's output, so running the same
// sequence twice yields identical results.
func (a *Analyzer) Analyze(seq core.PoseSequence) (core.AnalysisResult, []core.Frame, error) {
	var result core.AnalysisResult

	if err := validate(seq); err != nil {
		return result, nil, err
	}

	normalized, detected := a.normalizer.Sequence(seq.Frames)
	if detected == 0 {
		return result, nil, ErrNoPoseDetected
	}

	series := metrics.ComputeSeries(normalized, a.drawSide)
	phases := a.detector.Detect(normalized, series)

	findings, aggregates := a.engine.Evaluate(series, phases)
	ordered := feedback.Prioritize(findings)

	result = core.AnalysisResult{
		AnalyzedFrames: detected,
		TotalFrames:    len(seq.Frames),
		Errors:         ordered,
		Feedback:       feedback.Render(ordered),
		Metrics:        aggregates,
		PoseData:       a.poseTrace(seq.Frames, phases),
	}

	a.logger.Debug("analysis complete",
		"totalFrames", len(seq.Frames),
		"analyzedFrames", detected,
		"findings", len(ordered),
		"stance", phases.Stance.Len(),
		"draw", phases.Draw.Len(),
		"anchor", phases.Anchor.Len())

	return result, normalized, nil
}

// validate enforces the sequence contract: non-empty, fixed landmark
// slots, strictly increasing index and non-decreasing timestamp.
func validate(seq core.PoseSequence) error {
	if len(seq.Frames) == 0 {
		return fmt.Errorf("%w: empty sequence", ErrInvalidSequence)
	}
	for i, f := range seq.Frames {
		if len(f.Landmarks) != core.LandmarkCount {
			return fmt.Errorf("%w: frame %d has %d landmarks, want %d",
				ErrInvalidSequence, f.Index, len(f.Landmarks), core.LandmarkCount)
		}
		if i == 0 {
			continue
		}
		prev := seq.Frames[i-1]
		if f.Index <= prev.Index {
			return fmt.Errorf("%w: frame index %d not increasing after %d",
				ErrInvalidSequence, f.Index, prev.Index)
		}
		if f.Timestamp <= prev.Timestamp {
			return fmt.Errorf("%w: timestamp not increasing at frame %d", ErrInvalidSequence, f.Index)
		}
	}
	return nil
}

// poseTrace picks a bounded, representative frame subset for external
// visualization: the phase key frames first, then evenly spaced frames up
// to the limit. Frames come from the raw input so viewers see what the
// camera saw.
func (a *Analyzer) poseTrace(frames []core.Frame, phases phase.Phases) []core.Frame {
	picked := make(map[int]struct{})
	for _, key := range []int{phases.StanceKey, phases.DrawKey, phases.AnchorKey} {
		if key >= 0 {
			picked[key] = struct{}{}
		}
	}

	remaining := a.poseLimit - len(picked)
	if remaining > 0 && len(frames) > 0 {
		stride := len(frames) / remaining
		if stride < 1 {
			stride = 1
		}
		for i := 0; i < len(frames) && len(picked) < a.poseLimit; i += stride {
			picked[i] = struct{}{}
		}
	}

	trace := make([]core.Frame, 0, len(picked))
	for i := range frames {
		if _, ok := picked[i]; ok {
			trace = append(trace, frames[i])
		}
	}
	return trace
}
