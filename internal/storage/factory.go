package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Sai-Pranav-tech/Future-Sportler/internal/database"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/storage/gormstore"
	"github.com/Sai-Pranav-tech/Future-Sportler/internal/storage/memory"
)

// NewBackend creates a run store based on the configured storage type.
// "db" connects postgres-first with a local sqlite fallback; "sqlite"
// skips postgres entirely.
func NewBackend(storageType string, log zerolog.Logger) (Backend, error) {
	switch storageType {
	case "memory":
		return memory.New(), nil
	case "db", "postgres":
		mgr := database.NewManager(log)
		if err := mgr.Connect(); err != nil {
			return nil, fmt.Errorf("connecting run database: %w", err)
		}
		return gormstore.New(mgr.DB), nil
	case "sqlite":
		mgr := database.NewManager(log)
		if err := mgr.ConnectLocal(); err != nil {
			return nil, fmt.Errorf("opening sqlite run database: %w", err)
		}
		return gormstore.New(mgr.DB), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}
