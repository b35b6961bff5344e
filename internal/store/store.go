// Package store persists run state and per-listing enrichment checkpoints
// so interrupted batches resume without repeating work.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/therapistindex/directory-cli/internal/config"
	"github.com/therapistindex/directory-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Stage  string          `json:"stage,omitempty"`
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
}

// Store defines the persistence interface for pipeline runs.
type Store interface {
	CreateRun(ctx context.Context, stage string, total int) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunProgress(ctx context.Context, runID string, processed int) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)
	LatestRun(ctx context.Context, stage string) (*model.Run, error)

	SaveCheckpoint(ctx context.Context, cp model.Checkpoint) error
	LoadCheckpoints(ctx context.Context, runID string) (map[string]model.Checkpoint, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
