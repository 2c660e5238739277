package influx

import (
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

func TestConnect_Disabled(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("influx.enabled", false)

	m := NewManager(zerolog.Nop())
	err := m.Connect()
	require.Error(t, err)
	assert.False(t, m.IsValid)
}

func TestExportRun_NoopWhenInvalid(t *testing.T) {
	m := NewManager(zerolog.Nop())
	// must not panic with no client
	m.ExportRun(&core.AnalysisRun{ID: "run-1"})
}

func TestRunPoint(t *testing.T) {
	run := &core.AnalysisRun{
		ID:        "run-1",
		Source:    "sample:draw_right",
		CreatedAt: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		Result: core.AnalysisResult{
			AnalyzedFrames: 28,
			TotalFrames:    30,
			Errors: []core.ErrorFinding{
				{Issue: "draw_elbow_angle", Severity: core.SeverityHigh},
				{Issue: "stance_width", Severity: core.SeverityLow},
				{Issue: "uneven_shoulders", Severity: core.SeverityLow},
			},
			Metrics: map[string]float64{"stance_width_ratio": 1.02},
		},
	}

	point := RunPoint(run)
	line := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)

	assert.Contains(t, line, Measurement)
	assert.Contains(t, line, "source=sample:draw_right")
	assert.Contains(t, line, "analyzed_frames=28i")
	assert.Contains(t, line, "total_frames=30i")
	assert.Contains(t, line, "findings_high=1i")
	assert.Contains(t, line, "findings_medium=0i")
	assert.Contains(t, line, "findings_low=2i")
	assert.Contains(t, line, "metric_stance_width_ratio=1.02")
}
