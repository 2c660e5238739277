package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// testFrame builds a plausible standing pose in raw image coordinates with
// the given confidence applied to every landmark.
func testFrame(conf float64) core.Frame {
	f := core.Frame{Index: 0, Timestamp: 0, Landmarks: make([]core.Landmark, core.LandmarkCount)}
	for i := range f.Landmarks {
		f.Landmarks[i] = core.Landmark{X: 0.5, Y: 0.5, Z: 0, Confidence: conf}
	}
	f.Landmarks[core.LeftShoulder] = core.Landmark{X: 0.45, Y: 0.30, Confidence: conf}
	f.Landmarks[core.RightShoulder] = core.Landmark{X: 0.55, Y: 0.30, Confidence: conf}
	f.Landmarks[core.LeftHip] = core.Landmark{X: 0.46, Y: 0.55, Confidence: conf}
	f.Landmarks[core.RightHip] = core.Landmark{X: 0.54, Y: 0.55, Confidence: conf}
	f.Landmarks[core.LeftAnkle] = core.Landmark{X: 0.44, Y: 0.90, Confidence: conf}
	f.Landmarks[core.RightAnkle] = core.Landmark{X: 0.56, Y: 0.90, Confidence: conf}
	return f
}

func TestFrameNormalization(t *testing.T) {
	n := New(DefaultOptions())
	out := n.Frame(testFrame(0.9))

	require.True(t, out.Detected)

	// hip midpoint is the origin
	hx, hy, hz := out.Midpoint(core.LeftHip, core.RightHip)
	assert.InDelta(t, 0, hx, 1e-12)
	assert.InDelta(t, 0, hy, 1e-12)
	assert.InDelta(t, 0, hz, 1e-12)

	// torso length is the unit of measure
	sx, sy, sz := out.Midpoint(core.LeftShoulder, core.RightShoulder)
	torso := math.Sqrt(sx*sx + sy*sy + sz*sz)
	assert.InDelta(t, 1.0, torso, 1e-12)
}

func TestFrameScaleInvariance(t *testing.T) {
	n := New(DefaultOptions())

	small := testFrame(0.9)
	large := testFrame(0.9)
	for i := range large.Landmarks {
		large.Landmarks[i].X = large.Landmarks[i].X*3 + 10
		large.Landmarks[i].Y = large.Landmarks[i].Y*3 - 2
		large.Landmarks[i].Z = large.Landmarks[i].Z * 3
	}

	a := n.Frame(small)
	b := n.Frame(large)
	require.True(t, a.Detected)
	require.True(t, b.Detected)

	for i := range a.Landmarks {
		assert.InDelta(t, a.Landmarks[i].X, b.Landmarks[i].X, 1e-9)
		assert.InDelta(t, a.Landmarks[i].Y, b.Landmarks[i].Y, 1e-9)
		assert.InDelta(t, a.Landmarks[i].Z, b.Landmarks[i].Z, 1e-9)
	}
}

func TestFrameLowConfidenceRejected(t *testing.T) {
	n := New(DefaultOptions())
	raw := testFrame(0.2)
	out := n.Frame(raw)

	assert.False(t, out.Detected)
	// rejected frames pass through unmodified for visualization
	assert.Equal(t, raw.Landmarks, out.Landmarks)
}

func TestFrameAnchorBelowThresholdRejected(t *testing.T) {
	n := New(DefaultOptions())
	raw := testFrame(0.9)
	raw.Landmarks[core.LeftHip].Confidence = 0.1
	assert.False(t, n.Frame(raw).Detected)
}

func TestFrameDegenerateTorsoRejected(t *testing.T) {
	n := New(DefaultOptions())
	raw := testFrame(0.9)
	// collapse shoulders onto the hips
	raw.Landmarks[core.LeftShoulder] = raw.Landmarks[core.LeftHip]
	raw.Landmarks[core.RightShoulder] = raw.Landmarks[core.RightHip]
	assert.False(t, n.Frame(raw).Detected)
}

func TestFrameShortLandmarkSliceRejected(t *testing.T) {
	n := New(DefaultOptions())
	f := core.Frame{Landmarks: make([]core.Landmark, 5)}
	assert.False(t, n.Frame(f).Detected)
}

func TestSequenceCountsDetectedFrames(t *testing.T) {
	n := New(DefaultOptions())
	frames := []core.Frame{testFrame(0.9), testFrame(0.1), testFrame(0.8)}

	out, detected := n.Sequence(frames)
	require.Len(t, out, 3)
	assert.Equal(t, 2, detected)
	assert.True(t, out[0].Detected)
	assert.False(t, out[1].Detected)
	assert.True(t, out[2].Detected)
}
