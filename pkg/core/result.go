package core

import (
	"errors"
	"time"
)

// ErrRunNotFound reports an unknown run id. It lives here so every run
// store backend can return the same sentinel.
var ErrRunNotFound = errors.New("analysis run not found")

// AnalysisResult is the terminal, read-only output of one analysis run.
//
// Invariants: AnalyzedFrames equals the count of input frames with
// Detected=true; every finding's SourceMetric exists as a key in Metrics;
// Errors is sorted by severity descending with rule-table order breaking
// ties.
type AnalysisResult struct {
	AnalyzedFrames int                `json:"analyzed_frames"`
	TotalFrames    int                `json:"total_frames"`
	Errors         []ErrorFinding     `json:"errors"`
	Feedback       []string           `json:"feedback"`
	Metrics        map[string]float64 `json:"metrics"`
	PoseData       []Frame            `json:"pose_data"`
}

// AnalysisRun wraps a result with the host-side bookkeeping stored by the
// run history backends.
type AnalysisRun struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	Result    AnalysisResult `json:"result"`

	// WristPathWKT is the draw-hand wrist trajectory across detected
	// frames, rendered as an XYZM linestring (M carries the frame
	// timestamp). Empty when fewer than two frames were detected.
	WristPathWKT string `json:"wrist_path_wkt,omitempty"`
}
