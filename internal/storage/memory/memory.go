// Package memory holds analysis runs in process memory. It is the default
// backend: zero setup, perfect for single-session use, history gone on
// restart.
package memory

import (
	"sync"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// Backend stores runs in insertion order guarded by a RWMutex.
type Backend struct {
	runs  map[string]core.AnalysisRun
	order []string // run ids oldest first
	mu    sync.RWMutex
}

// New creates an empty memory backend.
func New() *Backend {
	return &Backend{
		runs: make(map[string]core.AnalysisRun),
	}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// SaveRun records a run. Saving an existing id overwrites the stored run
// but keeps its original position in history.
func (b *Backend) SaveRun(run *core.AnalysisRun) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.runs[run.ID]; !exists {
		b.order = append(b.order, run.ID)
	}
	b.runs[run.ID] = *run
	return nil
}

// GetRun returns the run with the given id.
func (b *Backend) GetRun(id string) (*core.AnalysisRun, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	run, ok := b.runs[id]
	if !ok {
		return nil, core.ErrRunNotFound
	}
	return &run, nil
}

// ListRuns returns runs newest first, bounded by limit.
func (b *Backend) ListRuns(limit int) ([]core.AnalysisRun, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]core.AnalysisRun, 0, n)
	for i := len(b.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, b.runs[b.order[i]])
	}
	return out, nil
}
