// Package normalize rescales raw pose frames into a body-centered,
// scale-invariant coordinate system so metrics compare across subjects:
// the hip midpoint becomes the origin and all coordinates are divided by
// the torso length (shoulder midpoint to hip midpoint).
package normalize

import (
	"math"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// Options tunes the confidence quorum and the degenerate-detection guard.
type Options struct {
	// MinConfidence is the per-landmark confidence threshold; landmarks
	// below it do not count toward the quorum.
	MinConfidence float64

	// MinVisible is the number of landmarks that must pass MinConfidence
	// for the frame to count as detected.
	MinVisible int

	// MinTorso rejects frames whose torso length collapses below this
	// epsilon (degenerate detection, e.g. the model latched onto a
	// point cluster).
	MinTorso float64
}

// DefaultOptions mirror the pose model's own 0.5 detection threshold.
func DefaultOptions() Options {
	return Options{
		MinConfidence: 0.5,
		MinVisible:    12,
		MinTorso:      1e-3,
	}
}

// required landmarks for establishing the body frame
var anchors = []int{core.LeftShoulder, core.RightShoulder, core.LeftHip, core.RightHip}

// Normalizer translates frames into the body-centered coordinate frame.
type Normalizer struct {
	opts Options
}

// New creates a Normalizer with the given options.
func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Frame normalizes a single frame. Frames that fail the confidence quorum
// or have a degenerate torso are returned unmodified with Detected=false;
// no error is raised for a single bad frame.
func (n *Normalizer) Frame(f core.Frame) core.Frame {
	out := f
	out.Detected = false

	if len(f.Landmarks) < core.LandmarkCount {
		return out
	}

	visible := 0
	for _, l := range f.Landmarks {
		if l.Confidence >= n.opts.MinConfidence {
			visible++
		}
	}
	if visible < n.opts.MinVisible {
		return out
	}
	for _, id := range anchors {
		if f.Landmarks[id].Confidence < n.opts.MinConfidence {
			return out
		}
	}

	hipX, hipY, hipZ := f.Midpoint(core.LeftHip, core.RightHip)
	shX, shY, shZ := f.Midpoint(core.LeftShoulder, core.RightShoulder)

	dx, dy, dz := shX-hipX, shY-hipY, shZ-hipZ
	torso := dx*dx + dy*dy + dz*dz
	if torso < n.opts.MinTorso*n.opts.MinTorso {
		return out
	}
	scale := 1 / math.Sqrt(torso)

	out.Landmarks = make([]core.Landmark, len(f.Landmarks))
	for i, l := range f.Landmarks {
		out.Landmarks[i] = core.Landmark{
			X:          (l.X - hipX) * scale,
			Y:          (l.Y - hipY) * scale,
			Z:          (l.Z - hipZ) * scale,
			Confidence: l.Confidence,
		}
	}
	out.Detected = true
	return out
}

// Sequence normalizes every frame in order and reports how many frames
// passed. The caller decides whether zero detections is fatal.
func (n *Normalizer) Sequence(frames []core.Frame) (normalized []core.Frame, detected int) {
	normalized = make([]core.Frame, len(frames))
	for i, f := range frames {
		normalized[i] = n.Frame(f)
		if normalized[i].Detected {
			detected++
		}
	}
	return normalized, detected
}
