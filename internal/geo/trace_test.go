package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/metrics"
	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

func wristFrame(ts, x, y, z float64, detected bool) core.Frame {
	f := core.Frame{Timestamp: ts, Detected: detected, Landmarks: make([]core.Landmark, core.LandmarkCount)}
	f.Landmarks[core.RightWrist] = core.Landmark{X: x, Y: y, Z: z, Confidence: 1}
	f.Landmarks[core.LeftWrist] = core.Landmark{X: -x, Y: y, Z: z, Confidence: 1}
	return f
}

func TestWristPath(t *testing.T) {
	frames := []core.Frame{
		wristFrame(0.0, 0.1, 0.2, 0.0, true),
		wristFrame(0.2, 0.4, 0.3, 0.1, false), // excluded
		wristFrame(0.4, 0.8, 0.4, 0.2, true),
		wristFrame(0.6, 1.2, 0.5, 0.2, true),
	}

	ls, err := WristPath(frames, metrics.SideRight)
	require.NoError(t, err)

	seq := ls.Coordinates()
	require.Equal(t, 3, seq.Length())

	first := seq.Get(0)
	assert.InDelta(t, 0.1, first.X, 1e-12)
	assert.InDelta(t, 0.2, first.Y, 1e-12)
	assert.InDelta(t, 0.0, first.M, 1e-12)

	last := seq.Get(2)
	assert.InDelta(t, 1.2, last.X, 1e-12)
	assert.InDelta(t, 0.6, last.M, 1e-12)
}

func TestWristPathLeftSide(t *testing.T) {
	frames := []core.Frame{
		wristFrame(0.0, 0.1, 0.2, 0.0, true),
		wristFrame(0.2, 0.4, 0.3, 0.0, true),
	}

	ls, err := WristPath(frames, metrics.SideLeft)
	require.NoError(t, err)
	assert.InDelta(t, -0.1, ls.Coordinates().Get(0).X, 1e-12)
}

func TestWristPathTooFewPoints(t *testing.T) {
	frames := []core.Frame{wristFrame(0, 0.1, 0.2, 0, true)}

	_, err := WristPath(frames, metrics.SideRight)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	assert.Empty(t, WristPathWKT(frames, metrics.SideRight))
	assert.Nil(t, WristPathWKB(frames, metrics.SideRight))
}

func TestWristPathWKTRoundTrip(t *testing.T) {
	frames := []core.Frame{
		wristFrame(0.0, 0.1, 0.2, 0.0, true),
		wristFrame(0.2, 0.4, 0.3, 0.1, true),
	}

	wkt := WristPathWKT(frames, metrics.SideRight)
	assert.Contains(t, wkt, "LINESTRING ZM")

	wkb := WristPathWKB(frames, metrics.SideRight)
	assert.NotEmpty(t, wkb)
}
