// Package metrics provides the pure geometric metric functions evaluated on
// normalized pose frames. Every function is total over valid input; a metric
// whose required landmarks were excluded by the normalizer evaluates to NaN
// and is skipped (not zero-filled) by the aggregate helpers.
package metrics

import (
	"math"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// Metric names emitted by the per-frame calculator.
const (
	ElbowAngleLeft  = "elbow_angle_left"
	ElbowAngleRight = "elbow_angle_right"
	ElbowAngleDraw  = "elbow_angle_draw"
	FootDistance    = "foot_distance"
	ShoulderWidth   = "shoulder_width"
	StanceWidth     = "stance_width_ratio"
	ShoulderLevel   = "shoulder_alignment_ratio"
	BodyAlignment   = "body_alignment"
	KneeAlignment   = "knee_alignment"
	FootLevel       = "foot_level_diff"
	DrawLength      = "draw_length"
)

// Names lists every per-frame metric in a fixed order.
var Names = []string{
	ElbowAngleLeft,
	ElbowAngleRight,
	ElbowAngleDraw,
	FootDistance,
	ShoulderWidth,
	StanceWidth,
	ShoulderLevel,
	BodyAlignment,
	KneeAlignment,
	FootLevel,
	DrawLength,
}

// Side selects which arm draws the string.
type Side string

// Draw sides. A right-handed archer draws with the right arm and holds the
// bow with the left.
const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Distance returns the Euclidean distance between two landmarks.
func Distance(a, b core.Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Angle returns the angle in degrees at vertex b formed by the segments b-a
// and b-c, computed via the law of cosines. The result is in [0, 180].
// Returns NaN when either segment has zero length.
func Angle(a, b, c core.Landmark) float64 {
	ab := Distance(b, a)
	cb := Distance(b, c)
	if ab == 0 || cb == 0 {
		return math.NaN()
	}
	ac := Distance(a, c)
	cos := (ab*ab + cb*cb - ac*ac) / (2 * ab * cb)
	// numeric noise can push the cosine slightly outside [-1, 1]
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// AlignmentRatio expresses the vertical offset between a symmetric landmark
// pair as a fraction of a reference length, so 0 means perfectly level.
// Returns NaN when the reference length is zero.
func AlignmentRatio(a, b core.Landmark, reference float64) float64 {
	if reference == 0 {
		return math.NaN()
	}
	return math.Abs(a.Y-b.Y) / reference
}

// Set holds one frame's metric values keyed by metric name.
type Set map[string]float64

// Compute evaluates every per-frame metric on a normalized frame. For a
// frame the normalizer rejected (Detected=false) every value is NaN.
func Compute(f core.Frame, drawSide Side) Set {
	set := make(Set, len(Names))
	if !f.Detected || len(f.Landmarks) < core.LandmarkCount {
		for _, name := range Names {
			set[name] = math.NaN()
		}
		return set
	}

	lm := f.Landmarks

	set[ElbowAngleLeft] = Angle(lm[core.LeftShoulder], lm[core.LeftElbow], lm[core.LeftWrist])
	set[ElbowAngleRight] = Angle(lm[core.RightShoulder], lm[core.RightElbow], lm[core.RightWrist])

	drawWrist, bowShoulder := core.RightWrist, core.LeftShoulder
	set[ElbowAngleDraw] = set[ElbowAngleRight]
	if drawSide == SideLeft {
		drawWrist, bowShoulder = core.LeftWrist, core.RightShoulder
		set[ElbowAngleDraw] = set[ElbowAngleLeft]
	}

	shoulderWidth := Distance(lm[core.LeftShoulder], lm[core.RightShoulder])
	footDistance := Distance(lm[core.LeftAnkle], lm[core.RightAnkle])
	set[ShoulderWidth] = shoulderWidth
	set[FootDistance] = footDistance
	if shoulderWidth > 0 {
		set[StanceWidth] = footDistance / shoulderWidth
	} else {
		set[StanceWidth] = math.NaN()
	}

	set[ShoulderLevel] = AlignmentRatio(lm[core.LeftShoulder], lm[core.RightShoulder], shoulderWidth)

	shoulderMidX, _, _ := f.Midpoint(core.LeftShoulder, core.RightShoulder)
	ankleMidX, _, _ := f.Midpoint(core.LeftAnkle, core.RightAnkle)
	kneeMidX, _, _ := f.Midpoint(core.LeftKnee, core.RightKnee)
	set[BodyAlignment] = math.Abs(shoulderMidX - ankleMidX)
	set[KneeAlignment] = math.Abs(kneeMidX - ankleMidX)

	set[FootLevel] = math.Abs(lm[core.LeftAnkle].Y - lm[core.RightAnkle].Y)

	set[DrawLength] = Distance(lm[drawWrist], lm[bowShoulder])

	return set
}

// Series holds per-frame metric values across a sequence, one slice entry
// per frame in original order.
type Series map[string][]float64

// ComputeSeries evaluates every metric on every frame, preserving frame
// order so the phase detector can read temporal trajectories.
func ComputeSeries(frames []core.Frame, drawSide Side) Series {
	series := make(Series, len(Names))
	for _, name := range Names {
		series[name] = make([]float64, len(frames))
	}
	for i, f := range frames {
		set := Compute(f, drawSide)
		for _, name := range Names {
			series[name][i] = set[name]
		}
	}
	return series
}

// Mean averages the values inside the half-open window [start, end],
// skipping NaN entries. Returns NaN if no usable value exists.
func Mean(values []float64, start, end int) float64 {
	if start < 0 {
		start = 0
	}
	if end > len(values) {
		end = len(values)
	}
	sum, n := 0.0, 0
	for _, v := range values[start:end] {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// StdDev returns the population standard deviation over the window,
// skipping NaN entries. Returns 0 with fewer than two usable values.
func StdDev(values []float64, start, end int) float64 {
	mean := Mean(values, start, end)
	if math.IsNaN(mean) {
		return 0
	}
	if start < 0 {
		start = 0
	}
	if end > len(values) {
		end = len(values)
	}
	sumSq, n := 0.0, 0
	for _, v := range values[start:end] {
		if math.IsNaN(v) {
			continue
		}
		d := v - mean
		sumSq += d * d
		n++
	}
	if n < 2 {
		return 0
	}
	return math.Sqrt(sumSq / float64(n))
}

// MaxIndex returns the index of the maximum value in the slice, skipping
// NaN entries. Ties resolve to the earliest index so peak selection stays
// deterministic under floating noise. Returns -1 when every value is NaN.
func MaxIndex(values []float64) int {
	best := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if best == -1 || v > values[best] {
			best = i
		}
	}
	return best
}
