// Package phase segments a normalized pose sequence into the stance, draw
// and anchor regions of one shot, and picks one representative key frame per
// region for rule evaluation.
//
// The segmentation reads the draw_length trajectory: stance is the leading
// run where the draw hand stays near the bow shoulder and holds steady
// (growing jitter ends the run), draw is the rise up to the peak draw
// length, and anchor is a short window centered on that peak. Peak ties resolve to the earliest frame so the result is
// deterministic under floating noise.
package phase

import (
	"math"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/metrics"
	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// Options tunes the segmentation thresholds.
type Options struct {
	// StanceThreshold is the draw_length (in torso units) below which the
	// archer is considered not yet drawing.
	StanceThreshold float64

	// MinFrames is the minimum number of detected frames required before
	// a draw/anchor segmentation is attempted.
	MinFrames int

	// AnchorWindow is the number of neighboring frames on each side of
	// the peak included in the anchor phase.
	AnchorWindow int

	// VarianceWindow is the trailing window length used to watch
	// draw_length jitter during the stance run.
	VarianceWindow int

	// VarianceTolerance is how much the trailing-window deviation may
	// grow frame to frame before the stance run is cut.
	VarianceTolerance float64
}

// DefaultOptions returns the calibration used for single-shot clips.
func DefaultOptions() Options {
	return Options{
		StanceThreshold:   0.6,
		MinFrames:         10,
		AnchorWindow:      2,
		VarianceWindow:    3,
		VarianceTolerance: 0.05,
	}
}

// Window is a contiguous, inclusive range of frame positions within the
// sequence. A zero Window (Empty) means the phase could not be detected.
type Window struct {
	Start, End int
	Found      bool
}

// Empty reports whether the phase has no frames.
func (w Window) Empty() bool { return !w.Found }

// Len returns the number of frame positions covered by the window.
func (w Window) Len() int {
	if !w.Found {
		return 0
	}
	return w.End - w.Start + 1
}

// Phases is the result of segmenting one sequence. Key frame positions are
// -1 when the owning phase is empty.
type Phases struct {
	Stance Window
	Draw   Window
	Anchor Window

	StanceKey int
	DrawKey   int
	AnchorKey int
}

// Window returns the window bound to the named phase.
func (p Phases) Window(name core.PhaseName) Window {
	switch name {
	case core.PhaseStance:
		return p.Stance
	case core.PhaseDraw:
		return p.Draw
	case core.PhaseAnchor:
		return p.Anchor
	default:
		return Window{}
	}
}

// Key returns the key frame position for the named phase, or -1.
func (p Phases) Key(name core.PhaseName) int {
	switch name {
	case core.PhaseStance:
		return p.StanceKey
	case core.PhaseDraw:
		return p.DrawKey
	case core.PhaseAnchor:
		return p.AnchorKey
	default:
		return -1
	}
}

// Detector segments sequences into shot phases.
type Detector struct {
	opts Options
}

// New creates a Detector with the given options.
func New(opts Options) *Detector {
	return &Detector{opts: opts}
}

// Detect segments the sequence using its per-frame draw_length trajectory.
// frames and series must be index-aligned. A sequence too short or without
// a clear draw peak gets an empty draw/anchor; rules bound to those phases
// are skipped, never failed.
func (d *Detector) Detect(frames []core.Frame, series metrics.Series) Phases {
	p := Phases{StanceKey: -1, DrawKey: -1, AnchorKey: -1}
	drawLength := series[metrics.DrawLength]
	if len(drawLength) == 0 {
		return p
	}

	detected := 0
	for _, f := range frames {
		if f.Detected {
			detected++
		}
	}
	if detected == 0 {
		return p
	}

	// stance: leading contiguous run of frames whose draw_length stays
	// below the threshold and whose jitter is not growing. Undetected
	// frames inside the run are tolerated (they carry no draw_length
	// signal either way).
	stanceEnd := -1
	w := d.opts.VarianceWindow
	prevSD := 0.0
	for i, v := range drawLength {
		if !math.IsNaN(v) && v >= d.opts.StanceThreshold {
			break
		}
		if i >= w && w > 1 {
			sd := metrics.StdDev(drawLength, i-w+1, i+1)
			if sd > prevSD+d.opts.VarianceTolerance {
				break
			}
			prevSD = sd
		} else if i == w-1 {
			prevSD = metrics.StdDev(drawLength, i-w+1, i+1)
		}
		stanceEnd = i
	}
	if stanceEnd >= 0 {
		p.Stance = Window{Start: 0, End: stanceEnd, Found: true}
		p.StanceKey = keyFrame(frames, 0, stanceEnd)
	}

	// peak of the draw, earliest index on ties
	peak := metrics.MaxIndex(drawLength)
	if peak < 0 || detected < d.opts.MinFrames {
		return p
	}
	if drawLength[peak] < d.opts.StanceThreshold {
		// the archer never drew; keep draw/anchor empty
		return p
	}

	drawStart := stanceEnd + 1
	if drawStart <= peak {
		p.Draw = Window{Start: drawStart, End: peak, Found: true}
		p.DrawKey = keyFrame(frames, drawStart, peak)
	}

	anchorStart := max(0, peak-d.opts.AnchorWindow)
	anchorEnd := min(len(frames)-1, peak+d.opts.AnchorWindow)
	p.Anchor = Window{Start: anchorStart, End: anchorEnd, Found: true}
	p.AnchorKey = peak

	return p
}

// keyFrame picks the detected frame closest to the middle of the window,
// scanning outward with a preference for the earlier side so the choice is
// stable. Returns -1 when no frame in the window is detected.
func keyFrame(frames []core.Frame, start, end int) int {
	mid := (start + end) / 2
	for offset := 0; ; offset++ {
		lo, hi := mid-offset, mid+offset
		if lo < start && hi > end {
			return -1
		}
		if lo >= start && frames[lo].Detected {
			return lo
		}
		if hi <= end && frames[hi].Detected {
			return hi
		}
	}
}
