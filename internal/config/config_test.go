package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/metrics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"server": { "addr": ":9000" },
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, ":9000", viper.GetString("server.addr"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{}`)
	require.NoError(t, Load(dir))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./logs", viper.GetString("logsDir"))
	assert.Equal(t, ":8001", viper.GetString("server.addr"))
	assert.Equal(t, "./samples", viper.GetString("server.samplesDir"))
	assert.Equal(t, "right", viper.GetString("analysis.drawSide"))
	assert.Equal(t, 20, viper.GetInt("analysis.poseDataLimit"))
	assert.Equal(t, 0.6, viper.GetFloat64("analysis.phase.stanceThreshold"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "archery", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "archery-metrics", viper.GetString("influx.org"))
	assert.Equal(t, "analysis_runs", viper.GetString("influx.bucket"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetServerConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{"server": {"addr": ":9090", "samplesDir": "/opt/samples"}}`)
	require.NoError(t, Load(dir))

	sc := GetServerConfig()
	assert.Equal(t, ":9090", sc.Addr)
	assert.Equal(t, "/opt/samples", sc.SamplesDir)
}

func TestGetInfluxConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{"influx": {"enabled": true, "token": "secret"}}`)
	require.NoError(t, Load(dir))

	ic := GetInfluxConfig()
	assert.True(t, ic.Enabled)
	assert.Equal(t, "secret", ic.Token)
	assert.Equal(t, "http", ic.Protocol)
	assert.Equal(t, "8086", ic.Port)
}

func TestGetAnalysisOptions_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{}`)
	require.NoError(t, Load(dir))

	opts := GetAnalysisOptions()
	assert.Equal(t, metrics.SideRight, opts.DrawSide)
	assert.Equal(t, 20, opts.PoseDataLimit)
	assert.Equal(t, 0.5, opts.Normalize.MinConfidence)
	assert.Equal(t, 12, opts.Normalize.MinVisible)
	assert.Equal(t, 0.6, opts.Phase.StanceThreshold)
	assert.Equal(t, 10, opts.Phase.MinFrames)
	assert.Equal(t, 3, opts.Phase.VarianceWindow)
	assert.Equal(t, 0.05, opts.Phase.VarianceTolerance)
	require.NotEmpty(t, opts.Table)
}

func TestGetAnalysisOptions_RuleOverride(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"analysis": {
			"drawSide": "left",
			"rules": {
				"stance_width": { "min": 0.7, "max": 1.4, "medium": 0.1 }
			}
		}
	}`)
	require.NoError(t, Load(dir))

	opts := GetAnalysisOptions()
	assert.Equal(t, metrics.SideLeft, opts.DrawSide)

	var found bool
	for _, r := range opts.Table {
		if r.Issue != "stance_width" {
			continue
		}
		found = true
		assert.Equal(t, 0.7, r.Min)
		assert.Equal(t, 1.4, r.Max)
		assert.Equal(t, 0.1, r.Bands.Medium)
		// untouched keys keep the shipped calibration
		assert.True(t, math.IsInf(r.Bands.Low, 1))
	}
	assert.True(t, found)
}
