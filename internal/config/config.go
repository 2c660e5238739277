// Package config loads runtime configuration from a JSON file with viper,
// layering file values over built-in defaults. Every analysis threshold is
// a config key so the shipped calibration can be tuned per deployment
// without a rebuild.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/metrics"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis/rules"
)

// ConfigFileName is the config file looked up inside the config directory.
const ConfigFileName = "archery_server.cfg.json"

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr       string
	SamplesDir string
}

// DBConfig holds the relational database settings.
type DBConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	LocalDir string
}

// InfluxConfig holds the metric export settings.
type InfluxConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Protocol string
	Token    string
	Org      string
	Bucket   string
}

// Load reads configuration from the JSON file in configDir and sets
// default values for every key.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("server.addr", ":8001")
	viper.SetDefault("server.samplesDir", "./samples")

	viper.SetDefault("analysis.drawSide", "right")
	viper.SetDefault("analysis.poseDataLimit", 20)
	viper.SetDefault("analysis.downsampleStride", 1)

	viper.SetDefault("analysis.normalize.minConfidence", 0.5)
	viper.SetDefault("analysis.normalize.minVisible", 12)
	viper.SetDefault("analysis.normalize.minTorso", 1e-3)

	viper.SetDefault("analysis.phase.stanceThreshold", 0.6)
	viper.SetDefault("analysis.phase.minFrames", 10)
	viper.SetDefault("analysis.phase.anchorWindow", 2)
	viper.SetDefault("analysis.phase.varianceWindow", 3)
	viper.SetDefault("analysis.phase.varianceTolerance", 0.05)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.listLimit", 50)

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "archery")
	viper.SetDefault("db.localDir", "./data")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "archery-metrics")
	viper.SetDefault("influx.bucket", "analysis_runs")

	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetServerConfig returns the HTTP listener settings.
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Addr:       viper.GetString("server.addr"),
		SamplesDir: viper.GetString("server.samplesDir"),
	}
}

// GetDBConfig returns the relational database settings.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
		LocalDir: viper.GetString("db.localDir"),
	}
}

// GetInfluxConfig returns the metric export settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Protocol: viper.GetString("influx.protocol"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetAnalysisOptions builds the analyzer calibration from config, starting
// from the shipped defaults and applying any per-rule overrides under
// analysis.rules.<issue>.
func GetAnalysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()

	opts.DrawSide = metrics.Side(viper.GetString("analysis.drawSide"))
	opts.PoseDataLimit = viper.GetInt("analysis.poseDataLimit")

	opts.Normalize.MinConfidence = viper.GetFloat64("analysis.normalize.minConfidence")
	opts.Normalize.MinVisible = viper.GetInt("analysis.normalize.minVisible")
	opts.Normalize.MinTorso = viper.GetFloat64("analysis.normalize.minTorso")

	opts.Phase.StanceThreshold = viper.GetFloat64("analysis.phase.stanceThreshold")
	opts.Phase.MinFrames = viper.GetInt("analysis.phase.minFrames")
	opts.Phase.AnchorWindow = viper.GetInt("analysis.phase.anchorWindow")
	opts.Phase.VarianceWindow = viper.GetInt("analysis.phase.varianceWindow")
	opts.Phase.VarianceTolerance = viper.GetFloat64("analysis.phase.varianceTolerance")

	opts.Table = overrideTable(rules.DefaultTable())
	return opts
}

// overrideTable applies analysis.rules.<issue>.{min,max,low,medium,high}
// config keys over the shipped rule table. Unknown issues in config are
// ignored; unset keys leave the shipped value.
func overrideTable(table []rules.Rule) []rules.Rule {
	for i := range table {
		prefix := "analysis.rules." + table[i].Issue + "."
		if viper.IsSet(prefix + "min") {
			table[i].Min = viper.GetFloat64(prefix + "min")
		}
		if viper.IsSet(prefix + "max") {
			table[i].Max = viper.GetFloat64(prefix + "max")
		}
		if viper.IsSet(prefix + "low") {
			table[i].Bands.Low = viper.GetFloat64(prefix + "low")
		}
		if viper.IsSet(prefix + "medium") {
			table[i].Bands.Medium = viper.GetFloat64(prefix + "medium")
		}
		if viper.IsSet(prefix + "high") {
			table[i].Bands.High = viper.GetFloat64(prefix + "high")
		}
	}
	return table
}
