// Package gormstore persists analysis runs through GORM, serving both the
// postgres and local sqlite paths. Result payloads are stored as JSON
// columns; the wrist trajectory is stored as linestring WKB so external
// GIS tooling can read it directly.
package gormstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// runRecord is the database row for one analysis run.
type runRecord struct {
	ID             string    `gorm:"primaryKey"`
	Source         string    `gorm:"index"`
	CreatedAt      time.Time `gorm:"index"`
	AnalyzedFrames int
	TotalFrames    int
	Findings       datatypes.JSON
	Feedback       datatypes.JSON
	Metrics        datatypes.JSON
	PoseData       datatypes.JSON
	WristPath      []byte
}

func (runRecord) TableName() string {
	return "analysis_runs"
}

// Backend stores runs in a relational database via GORM.
type Backend struct {
	db *gorm.DB
}

// New wraps an open GORM connection. The caller owns connecting; see the
// database manager for the postgres/sqlite fallback order.
func New(db *gorm.DB) *Backend {
	return &Backend{db: db}
}

// Init migrates the runs table.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(&runRecord{}); err != nil {
		return fmt.Errorf("migrating analysis_runs: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveRun upserts a run row.
func (b *Backend) SaveRun(run *core.AnalysisRun) error {
	rec, err := toRecord(run)
	if err != nil {
		return err
	}
	if err := b.db.Save(rec).Error; err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun loads one run by id.
func (b *Backend) GetRun(id string) (*core.AnalysisRun, error) {
	var rec runRecord
	err := b.db.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}
	return fromRecord(&rec)
}

// ListRuns returns runs newest first, bounded by limit.
func (b *Backend) ListRuns(limit int) ([]core.AnalysisRun, error) {
	q := b.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []runRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	runs := make([]core.AnalysisRun, 0, len(recs))
	for i := range recs {
		run, err := fromRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, nil
}

func toRecord(run *core.AnalysisRun) (*runRecord, error) {
	rec := &runRecord{
		ID:             run.ID,
		Source:         run.Source,
		CreatedAt:      run.CreatedAt,
		AnalyzedFrames: run.Result.AnalyzedFrames,
		TotalFrames:    run.Result.TotalFrames,
	}

	var err error
	if rec.Findings, err = json.Marshal(run.Result.Errors); err != nil {
		return nil, fmt.Errorf("encoding findings: %w", err)
	}
	if rec.Feedback, err = json.Marshal(run.Result.Feedback); err != nil {
		return nil, fmt.Errorf("encoding feedback: %w", err)
	}
	if rec.Metrics, err = json.Marshal(run.Result.Metrics); err != nil {
		return nil, fmt.Errorf("encoding metrics: %w", err)
	}
	if rec.PoseData, err = json.Marshal(run.Result.PoseData); err != nil {
		return nil, fmt.Errorf("encoding pose data: %w", err)
	}

	if run.WristPathWKT != "" {
		g, err := geom.UnmarshalWKT(run.WristPathWKT)
		if err != nil {
			return nil, fmt.Errorf("parsing wrist path WKT: %w", err)
		}
		rec.WristPath = g.AsBinary()
	}

	return rec, nil
}

func fromRecord(rec *runRecord) (*core.AnalysisRun, error) {
	run := &core.AnalysisRun{
		ID:        rec.ID,
		Source:    rec.Source,
		CreatedAt: rec.CreatedAt,
		Result: core.AnalysisResult{
			AnalyzedFrames: rec.AnalyzedFrames,
			TotalFrames:    rec.TotalFrames,
		},
	}

	if err := json.Unmarshal(rec.Findings, &run.Result.Errors); err != nil {
		return nil, fmt.Errorf("decoding findings for run %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(rec.Feedback, &run.Result.Feedback); err != nil {
		return nil, fmt.Errorf("decoding feedback for run %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(rec.Metrics, &run.Result.Metrics); err != nil {
		return nil, fmt.Errorf("decoding metrics for run %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(rec.PoseData, &run.Result.PoseData); err != nil {
		return nil, fmt.Errorf("decoding pose data for run %s: %w", rec.ID, err)
	}

	if len(rec.WristPath) > 0 {
		g, err := geom.UnmarshalWKB(rec.WristPath)
		if err != nil {
			return nil, fmt.Errorf("parsing wrist path WKB for run %s: %w", rec.ID, err)
		}
		run.WristPathWKT = g.AsText()
	}

	return run, nil
}
