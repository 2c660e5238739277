// Package sequence decodes landmark-sequence documents from their JSON wire
// format and loads the bundled sample captures. Pose estimation happens
// upstream; what arrives here is the already-extracted 33-landmark frames.
package sequence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// ErrBadDocument reports a document that does not decode into a pose
// sequence at all, as opposed to one that decodes but violates the
// sequence contract.
var ErrBadDocument = errors.New("malformed sequence document")

// document is the wire envelope. Frames may arrive either wrapped in an
// object or as a bare top-level array.
type document struct {
	Frames []frame `json:"frames"`
	FPS    float64 `json:"fps,omitempty"`
	Source string  `json:"source,omitempty"`
}

type frame struct {
	Index     *int            `json:"index"`
	Timestamp *float64        `json:"timestamp"`
	Landmarks []core.Landmark `json:"landmarks"`
}

// Decode parses a landmark-sequence document. Frames missing explicit
// indices or timestamps get sequential ones derived from position and the
// document FPS (default 30), so minimal exports stay accepted.
func Decode(data []byte) (core.PoseSequence, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		// bare top-level array form
		var frames []frame
		if arrErr := json.Unmarshal(data, &frames); arrErr != nil {
			return core.PoseSequence{}, fmt.Errorf("%w: %v", ErrBadDocument, err)
		}
		doc.Frames = frames
	}
	if len(doc.Frames) == 0 {
		return core.PoseSequence{}, fmt.Errorf("%w: no frames", ErrBadDocument)
	}

	fps := doc.FPS
	if fps <= 0 {
		fps = 30
	}

	seq := core.PoseSequence{Frames: make([]core.Frame, len(doc.Frames))}
	for i, f := range doc.Frames {
		out := core.Frame{Landmarks: f.Landmarks}
		if f.Index != nil {
			out.Index = *f.Index
		} else {
			out.Index = i
		}
		if f.Timestamp != nil {
			out.Timestamp = *f.Timestamp
		} else {
			out.Timestamp = float64(i) / fps
		}
		if len(f.Landmarks) != core.LandmarkCount {
			return core.PoseSequence{}, fmt.Errorf("%w: frame %d has %d landmarks, want %d",
				ErrBadDocument, out.Index, len(f.Landmarks), core.LandmarkCount)
		}
		seq.Frames[i] = out
	}
	return seq, nil
}

// Downsample keeps every stride-th frame, always including the first.
// A stride below 2 returns the sequence unchanged. Original indices and
// timestamps are preserved so phase windows stay meaningful.
func Downsample(seq core.PoseSequence, stride int) core.PoseSequence {
	if stride < 2 || len(seq.Frames) == 0 {
		return seq
	}
	kept := make([]core.Frame, 0, len(seq.Frames)/stride+1)
	for i := 0; i < len(seq.Frames); i += stride {
		kept = append(kept, seq.Frames[i])
	}
	return core.PoseSequence{Frames: kept}
}
