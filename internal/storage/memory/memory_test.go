package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

func testRun(id string) *core.AnalysisRun {
	return &core.AnalysisRun{
		ID:        id,
		Source:    "upload",
		CreatedAt: time.Now().UTC(),
		Result: core.AnalysisResult{
			AnalyzedFrames: 28,
			TotalFrames:    30,
			Feedback:       []string{"Good form! No major errors detected."},
			Metrics:        map[string]float64{"stance_width_ratio": 1.02},
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	b := New()
	require.NoError(t, b.Init())
	defer b.Close()

	run := testRun("run-1")
	require.NoError(t, b.SaveRun(run))

	got, err := b.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, 28, got.Result.AnalyzedFrames)
}

func TestGetRun_NotFound(t *testing.T) {
	b := New()
	_, err := b.GetRun("missing")
	assert.ErrorIs(t, err, core.ErrRunNotFound)
}

func TestGetRun_ReturnsCopy(t *testing.T) {
	b := New()
	require.NoError(t, b.SaveRun(testRun("run-1")))

	got, err := b.GetRun("run-1")
	require.NoError(t, err)
	got.Source = "mutated"

	again, err := b.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "upload", again.Source)
}

func TestListRuns_NewestFirst(t *testing.T) {
	b := New()
	for i := range 5 {
		require.NoError(t, b.SaveRun(testRun(fmt.Sprintf("run-%d", i))))
	}

	runs, err := b.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 5)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-0", runs[4].ID)
}

func TestListRuns_Limit(t *testing.T) {
	b := New()
	for i := range 5 {
		require.NoError(t, b.SaveRun(testRun(fmt.Sprintf("run-%d", i))))
	}

	runs, err := b.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)
}

func TestSaveRun_OverwriteKeepsPosition(t *testing.T) {
	b := New()
	require.NoError(t, b.SaveRun(testRun("a")))
	require.NoError(t, b.SaveRun(testRun("b")))

	updated := testRun("a")
	updated.Source = "sample:draw_right"
	require.NoError(t, b.SaveRun(updated))

	runs, err := b.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
	assert.Equal(t, "sample:draw_right", runs[1].Source)
}
