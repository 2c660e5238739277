// Package influx exports per-run aggregate metrics to InfluxDB. The
// exporter is optional: when disabled or unreachable the server runs
// unaffected and export calls become no-ops.
package influx

import (
	"context"
	"errors"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// Measurement is the InfluxDB measurement written per analysis run.
const Measurement = "analysis_run"

// Manager handles the InfluxDB connection and per-run writes.
type Manager struct {
	Client  influxdb2.Client
	Writer  influxdb2_api.WriteAPI
	IsValid bool
	Bucket  string
	Logger  zerolog.Logger
}

// NewManager creates a new InfluxDB manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		IsValid: false,
		Logger:  log,
	}
}

// Connect establishes a connection to InfluxDB. Returns an error when
// export is disabled in config; an unreachable server only marks the
// manager invalid so runs keep flowing.
func (m *Manager) Connect() error {
	if !viper.GetBool("influx.enabled") {
		return errors.New("influx.enabled is false")
	}

	m.Bucket = viper.GetString("influx.bucket")
	m.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf(
			"%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port"),
		),
		viper.GetString("influx.token"),
		influxdb2.DefaultOptions().
			SetBatchSize(100).
			SetFlushInterval(1000),
	)

	running, err := m.Client.Ping(context.Background())
	if err != nil || !running {
		m.IsValid = false
		m.Logger.Warn().Msg("InfluxDB unreachable, run metric export disabled")
		return nil
	}

	m.IsValid = true
	m.Writer = m.Client.WriteAPI(viper.GetString("influx.org"), m.Bucket)

	errorsCh := m.Writer.Errors()
	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			m.Logger.Error().Err(writeErr).Str("bucket", m.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}(errorsCh)

	m.Logger.Info().Str("bucket", m.Bucket).Msg("InfluxDB client initialized")
	return nil
}

// ExportRun writes one run's aggregates as a single point, tagged by
// source with the run id. No-op when the client never connected.
func (m *Manager) ExportRun(run *core.AnalysisRun) {
	if !m.IsValid || m.Writer == nil {
		return
	}
	m.Writer.WritePoint(RunPoint(run))
}

// Close flushes pending writes and shuts the client down.
func (m *Manager) Close() {
	if m.Writer != nil {
		m.Writer.Flush()
	}
	if m.Client != nil {
		m.Client.Close()
	}
}

// RunPoint converts a run into an InfluxDB point: frame counts, per-
// severity finding counts and every summary metric as fields.
func RunPoint(run *core.AnalysisRun) *influxdb2_write.Point {
	point := influxdb2_write.NewPointWithMeasurement(Measurement).
		AddTag("source", run.Source).
		AddField("run_id", run.ID).
		AddField("analyzed_frames", run.Result.AnalyzedFrames).
		AddField("total_frames", run.Result.TotalFrames).
		SetTime(run.CreatedAt)

	var low, medium, high int
	for _, f := range run.Result.Errors {
		switch f.Severity {
		case core.SeverityLow:
			low++
		case core.SeverityMedium:
			medium++
		case core.SeverityHigh:
			high++
		}
	}
	point.AddField("findings_low", low)
	point.AddField("findings_medium", medium)
	point.AddField("findings_high", high)

	for name, value := range run.Result.Metrics {
		point.AddField("metric_"+name, value)
	}

	return point
}
