// Package server exposes the analysis engine over HTTP: sample listing,
// on-demand analysis of uploaded or bundled landmark sequences, and run
// history backed by the configured store.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/analysis"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/geo"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/sequence"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/storage"
	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// maxUploadBytes bounds POST /api/analyze request bodies.
const maxUploadBytes = 32 << 20

// RunExporter receives each persisted run for out-of-band metric export.
type RunExporter interface {
	ExportRun(run *core.AnalysisRun)
}

// Options configures a Server.
type Options struct {
	Analyzer   *analysis.Analyzer
	Store      storage.Backend
	Exporter   RunExporter // optional
	SamplesDir string
	ListLimit  int
	Stride     int // down-sampling stride for incoming sequences
	Logger     *slog.Logger
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	analyzer   *analysis.Analyzer
	store      storage.Backend
	exporter   RunExporter
	samplesDir string
	listLimit  int
	stride     int
	logger     *slog.Logger

	runsAnalyzed    metric.Int64Counter
	findingsEmitted metric.Int64Counter
}

// New wires a Server and its meter instruments.
func New(opts Options) (*Server, error) {
	s := &Server{
		analyzer:   opts.Analyzer,
		store:      opts.Store,
		exporter:   opts.Exporter,
		samplesDir: opts.SamplesDir,
		listLimit:  opts.ListLimit,
		stride:     opts.Stride,
		logger:     opts.Logger,
	}
	if s.listLimit <= 0 {
		s.listLimit = 50
	}

	m := meter()
	var err error
	s.runsAnalyzed, err = m.Int64Counter(
		"server.runs.analyzed",
		metric.WithDescription("Total analysis runs completed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}
	s.findingsEmitted, err = m.Int64Counter(
		"server.findings.emitted",
		metric.WithDescription("Total form findings emitted across runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating findings counter: %w", err)
	}

	return s, nil
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", s.RootHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/sample-sequences", s.ListSamplesHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/analyze-sample/{id}", s.AnalyzeSampleHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/analyze", s.AnalyzeHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/runs", s.ListRunsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/runs/{id}", s.GetRunHandler).Methods(http.MethodGet)

	return r
}

// RootHandler serves the service banner.
func (s *Server) RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "archery-form-analysis",
		"status":  "ok",
	})
}

// ListSamplesHandler lists the bundled sample sequences.
func (s *Server) ListSamplesHandler(w http.ResponseWriter, r *http.Request) {
	samples, err := sequence.ListSamples(s.samplesDir)
	if err != nil {
		s.logger.Error("Listing samples failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list samples")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"samples": samples})
}

// AnalyzeSampleHandler analyzes one bundled sample by id.
func (s *Server) AnalyzeSampleHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	seq, err := sequence.LoadSample(s.samplesDir, id)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	run, err := s.analyzeAndStore(r, seq, "sample:"+id)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// AnalyzeHandler analyzes an uploaded landmark-sequence document.
func (s *Server) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	seq, err := sequence.Decode(body)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	run, err := s.analyzeAndStore(r, seq, "upload")
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// ListRunsHandler lists persisted runs, newest first.
func (s *Server) ListRunsHandler(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns(s.listLimit)
	if err != nil {
		s.logger.Error("Listing runs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// GetRunHandler fetches one persisted run by id.
func (s *Server) GetRunHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	run, err := s.store.GetRun(id)
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger.Error("Loading run failed", "run", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// analyzeAndStore runs the full pipeline on a decoded sequence, persists
// the run and feeds the exporter and counters.
func (s *Server) analyzeAndStore(r *http.Request, seq core.PoseSequence, source string) (*core.AnalysisRun, error) {
	totalFrames := len(seq.Frames)
	seq = sequence.Downsample(seq, s.stride)

	result, normalized, err := s.analyzer.Analyze(seq)
	if err != nil {
		return nil, err
	}
	// report the capture length, not the downsampled one
	result.TotalFrames = totalFrames

	run := &core.AnalysisRun{
		ID:           uuid.NewString(),
		Source:       source,
		CreatedAt:    time.Now().UTC(),
		Result:       result,
		WristPathWKT: geo.WristPathWKT(normalized, s.analyzer.DrawSide()),
	}

	if err := s.store.SaveRun(run); err != nil {
		return nil, fmt.Errorf("saving run: %w", err)
	}
	if s.exporter != nil {
		s.exporter.ExportRun(run)
	}

	ctx := r.Context()
	s.runsAnalyzed.Add(ctx, 1)
	s.findingsEmitted.Add(ctx, int64(len(result.Errors)))

	s.logger.Info("Analysis run completed",
		"run", run.ID,
		"source", source,
		"analyzedFrames", result.AnalyzedFrames,
		"findings", len(result.Errors))

	return run, nil
}

// writeAnalysisError maps pipeline errors onto HTTP statuses.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sequence.ErrSampleNotFound):
		writeError(w, http.StatusNotFound, "sample not found")
	case errors.Is(err, sequence.ErrBadDocument),
		errors.Is(err, analysis.ErrInvalidSequence):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, analysis.ErrNoPoseDetected):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("Analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
