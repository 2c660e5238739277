// Package core holds the dependency-free value types exchanged between the
// analysis engine, the storage backends and the HTTP layer.
package core

// LandmarkCount is the fixed number of pose landmarks per frame.
// The indices follow the standard 33-point full-body topology produced by
// the external pose-estimation model.
const LandmarkCount = 33

// Anatomical landmark indices used by the analysis engine.
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
)

// Landmark is one anatomical keypoint with a normalized 3D position and the
// detection confidence reported by the pose model.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Confidence float64 `json:"confidence"`
}

// Frame is a single captured pose: a fixed-size set of landmarks plus the
// capture index and timestamp. Detected is false when too few landmarks
// passed the confidence quorum; such frames are excluded from metric
// aggregation but kept for visualization continuity.
type Frame struct {
	Index     int        `json:"index"`
	Timestamp float64    `json:"timestamp"`
	Landmarks []Landmark `json:"landmarks"`
	Detected  bool       `json:"detected"`
}

// Midpoint returns the point halfway between two landmarks of the frame.
func (f Frame) Midpoint(a, b int) (x, y, z float64) {
	la, lb := f.Landmarks[a], f.Landmarks[b]
	return (la.X + lb.X) / 2, (la.Y + lb.Y) / 2, (la.Z + lb.Z) / 2
}

// PoseSequence is the ordered frame sequence for one analysis run.
// Index and Timestamp are strictly increasing; the sequence is owned by a
// single run and never mutated after creation.
type PoseSequence struct {
	Frames []Frame `json:"frames"`
}
