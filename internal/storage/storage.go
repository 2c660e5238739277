// Package storage defines the persistence interface for analysis run
// history and the factory that selects a backend from configuration.
package storage

import (
	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// ErrRunNotFound reports an unknown run id.
var ErrRunNotFound = core.ErrRunNotFound

// Backend is the interface all run stores must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Run history
	SaveRun(run *core.AnalysisRun) error
	GetRun(id string) (*core.AnalysisRun, error)

	// ListRuns returns runs newest first, at most limit entries. A
	// non-positive limit means no bound.
	ListRuns(limit int) ([]core.AnalysisRun, error)
}
