package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/therapistindex/directory-cli/internal/model"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	stage      TEXT NOT NULL,
	status     TEXT NOT NULL,
	total      INTEGER NOT NULL DEFAULT 0,
	processed  INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_stage ON runs(stage, created_at);

CREATE TABLE IF NOT EXISTS checkpoints (
	run_id      TEXT NOT NULL,
	listing_key TEXT NOT NULL,
	enrichment  JSONB,
	no_content  BOOLEAN NOT NULL DEFAULT FALSE,
	saved_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (run_id, listing_key)
);
`

// Pool is the subset of pgxpool.Pool the store uses. Tests substitute a
// pgxmock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore persists runs and checkpoints in PostgreSQL, for shared
// deployments where several operators watch the same runs.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects to the database at databaseURL.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "store: parse postgres url")
	}
	poolCfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, eris.Wrap(err, "store: connect postgres")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "store: ping postgres")
	}

	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the runs and checkpoints tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return eris.Wrap(err, "store: migrate postgres")
	}
	return nil
}

// CreateRun inserts a new queued run for the given stage.
func (s *PostgresStore) CreateRun(ctx context.Context, stage string, total int) (*model.Run, error) {
	now := time.Now().UTC()
	run := &model.Run{
		ID:        uuid.New().String(),
		Stage:     stage,
		Status:    model.RunStatusQueued,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, stage, status, total, processed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.Stage, run.Status, run.Total, run.Processed, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: create run")
	}
	return run, nil
}

// UpdateRunStatus transitions a run to the given status.
func (s *PostgresStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrap(err, "store: update run status")
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrRunNotFound, "run %s", runID)
	}
	return nil
}

// UpdateRunProgress records how many listings a run has processed.
func (s *PostgresStore) UpdateRunProgress(ctx context.Context, runID string, processed int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET processed = $1, updated_at = $2 WHERE id = $3`,
		processed, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrap(err, "store: update run progress")
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrRunNotFound, "run %s", runID)
	}
	return nil
}

// GetRun loads a run by ID.
func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, stage, status, total, processed, created_at, updated_at
		 FROM runs WHERE id = $1`, runID,
	)
	var r model.Run
	err := row.Scan(&r.ID, &r.Stage, &r.Status, &r.Total, &r.Processed, &r.CreatedAt, &r.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: scan run")
	}
	return &r, nil
}

// LatestRun returns the most recently created run for a stage, or nil when
// the stage has never run.
func (s *PostgresStore) LatestRun(ctx context.Context, stage string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, stage, status, total, processed, created_at, updated_at
		 FROM runs WHERE stage = $1 ORDER BY created_at DESC LIMIT 1`, stage,
	)
	var r model.Run
	err := row.Scan(&r.ID, &r.Stage, &r.Status, &r.Total, &r.Processed, &r.CreatedAt, &r.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: scan run")
	}
	return &r, nil
}

// ListRuns returns runs matching the filter, newest first.
func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, stage, status, total, processed, created_at, updated_at FROM runs
		WHERE ($1 = '' OR stage = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, query, filter.Stage, string(filter.Status), limit)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		if err := rows.Scan(&r.ID, &r.Stage, &r.Status, &r.Total, &r.Processed, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan run")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate runs")
	}
	return runs, nil
}

// SaveCheckpoint upserts the enrichment result for one listing in a run.
func (s *PostgresStore) SaveCheckpoint(ctx context.Context, cp model.Checkpoint) error {
	var enrichJSON []byte
	if cp.Enrichment != nil {
		b, err := json.Marshal(cp.Enrichment)
		if err != nil {
			return eris.Wrap(err, "store: marshal enrichment")
		}
		enrichJSON = b
	}
	savedAt := cp.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO checkpoints (run_id, listing_key, enrichment, no_content, saved_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (run_id, listing_key) DO UPDATE SET
			enrichment = EXCLUDED.enrichment,
			no_content = EXCLUDED.no_content,
			saved_at = EXCLUDED.saved_at`,
		cp.RunID, cp.ListingKey, enrichJSON, cp.NoContent, savedAt,
	)
	if err != nil {
		return eris.Wrap(err, "store: save checkpoint")
	}
	return nil
}

// LoadCheckpoints returns all checkpoints for a run keyed by listing key.
func (s *PostgresStore) LoadCheckpoints(ctx context.Context, runID string) (map[string]model.Checkpoint, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT run_id, listing_key, enrichment, no_content, saved_at
		 FROM checkpoints WHERE run_id = $1`, runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: load checkpoints")
	}
	defer rows.Close()

	checkpoints := make(map[string]model.Checkpoint)
	for rows.Next() {
		var cp model.Checkpoint
		var enrichJSON []byte
		if err := rows.Scan(&cp.RunID, &cp.ListingKey, &enrichJSON, &cp.NoContent, &cp.SavedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan checkpoint")
		}
		if len(enrichJSON) > 0 {
			var e model.Enrichment
			if err := json.Unmarshal(enrichJSON, &e); err != nil {
				return nil, eris.Wrap(err, "store: unmarshal enrichment")
			}
			cp.Enrichment = &e
		}
		checkpoints[cp.ListingKey] = cp
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate checkpoints")
	}
	return checkpoints, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
