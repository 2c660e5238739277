// Command archery-server runs the biomechanical form analysis HTTP
// service: it loads configuration, wires logging, storage and the
// optional InfluxDB exporter, and serves the analysis API until
// interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/config"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/influx"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/logging"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/server"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/storage"
)

const serviceName = "archery-server"

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.ConfigFileName)
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		// config file is optional; defaults cover a local run
		logging.NewManager().Logger().Warn("Config file not loaded, using defaults", "error", err)
	}

	logManager := logging.NewManager()
	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0o755); err == nil {
		logPath := logging.LogFilePath(logsDir, serviceName, time.Now().UTC())
		if logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			defer logFile.Close()
			logManager.Setup(logFile, config.GetString("logLevel"))
		} else {
			logManager.Setup(nil, config.GetString("logLevel"))
		}
	} else {
		logManager.Setup(nil, config.GetString("logLevel"))
	}
	logger := logManager.Logger()

	zlog := zerolog.New(os.Stdout).With().Timestamp().Logger()

	store, err := storage.NewBackend(config.GetString("storage.type"), zlog)
	if err != nil {
		logger.Error("Storage backend init failed", "error", err)
		os.Exit(1)
	}
	if err := store.Init(); err != nil {
		logger.Error("Storage backend migration failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var exporter server.RunExporter
	influxManager := influx.NewManager(zlog)
	if config.GetBool("influx.enabled") {
		if err := influxManager.Connect(); err != nil {
			logger.Warn("InfluxDB connect failed, continuing without export", "error", err)
		} else {
			exporter = influxManager
			defer influxManager.Close()
		}
	}

	analyzer := analysis.New(config.GetAnalysisOptions(), logger)

	serverCfg := config.GetServerConfig()
	srv, err := server.New(server.Options{
		Analyzer:   analyzer,
		Store:      store,
		Exporter:   exporter,
		SamplesDir: serverCfg.SamplesDir,
		ListLimit:  config.GetInt("storage.listLimit"),
		Stride:     config.GetInt("analysis.downsampleStride"),
		Logger:     logger,
	})
	if err != nil {
		logger.Error("Server init failed", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         serverCfg.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server listening", "addr", serverCfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
