// Package geo builds geometric traces from pose sequences for storage and
// external visualization. Trajectories are kept as XYZM linestrings with the
// frame timestamp in the M dimension, serialized as WKB so spatially
// unaware stores can round-trip them from plain bytes.
package geo

import (
	"errors"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/metrics"
	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// ErrTooFewPoints is returned when fewer than two detected frames exist, so
// no linestring can be formed.
var ErrTooFewPoints = errors.New("too few detected frames for a trajectory")

// WristPath builds the draw-hand wrist trajectory across the detected
// frames of a normalized sequence.
func WristPath(frames []core.Frame, drawSide metrics.Side) (geom.LineString, error) {
	wrist := core.RightWrist
	if drawSide == metrics.SideLeft {
		wrist = core.LeftWrist
	}

	coords := make([]float64, 0, len(frames)*4)
	points := 0
	for _, f := range frames {
		if !f.Detected || len(f.Landmarks) < core.LandmarkCount {
			continue
		}
		l := f.Landmarks[wrist]
		coords = append(coords, l.X, l.Y, l.Z, f.Timestamp)
		points++
	}
	if points < 2 {
		return geom.LineString{}, ErrTooFewPoints
	}

	seq := geom.NewSequence(coords, geom.DimXYZM)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, err
	}
	return ls, nil
}

// WristPathWKT renders the wrist trajectory as WKT, or "" when the
// sequence has too few detected frames.
func WristPathWKT(frames []core.Frame, drawSide metrics.Side) string {
	ls, err := WristPath(frames, drawSide)
	if err != nil {
		return ""
	}
	return ls.AsText()
}

// WristPathWKB renders the wrist trajectory as WKB, or nil when the
// sequence has too few detected frames.
func WristPathWKB(frames []core.Frame, drawSide metrics.Side) []byte {
	ls, err := WristPath(frames, drawSide)
	if err != nil {
		return nil
	}
	return ls.AsBinary()
}
