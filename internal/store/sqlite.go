package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/therapistindex/directory-cli/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	stage      TEXT NOT NULL,
	status     TEXT NOT NULL,
	total      INTEGER NOT NULL DEFAULT 0,
	processed  INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_stage ON runs(stage, created_at);

CREATE TABLE IF NOT EXISTS checkpoints (
	run_id      TEXT NOT NULL,
	listing_key TEXT NOT NULL,
	enrichment  TEXT,
	no_content  INTEGER NOT NULL DEFAULT 0,
	saved_at    TIMESTAMP NOT NULL,
	PRIMARY KEY (run_id, listing_key)
);
`

// SQLiteStore persists runs and checkpoints in a local SQLite file. It is
// the default backend; no server required.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the SQLite database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "directory.db"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open sqlite")
	}

	// Single writer; SQLite locks the whole database on write.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "store: %s", pragma)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Migrate creates the runs and checkpoints tables if they do not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return eris.Wrap(err, "store: migrate sqlite")
	}
	return nil
}

// CreateRun inserts a new queued run for the given stage.
func (s *SQLiteStore) CreateRun(ctx context.Context, stage string, total int) (*model.Run, error) {
	now := time.Now().UTC()
	run := &model.Run{
		ID:        uuid.New().String(),
		Stage:     stage,
		Status:    model.RunStatusQueued,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, stage, status, total, processed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Stage, run.Status, run.Total, run.Processed, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: create run")
	}
	return run, nil
}

// UpdateRunStatus transitions a run to the given status.
func (s *SQLiteStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrap(err, "store: update run status")
	}
	return checkRowAffected(res, runID)
}

// UpdateRunProgress records how many listings a run has processed.
func (s *SQLiteStore) UpdateRunProgress(ctx context.Context, runID string, processed int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET processed = ?, updated_at = ? WHERE id = ?`,
		processed, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrap(err, "store: update run progress")
	}
	return checkRowAffected(res, runID)
}

// GetRun loads a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, stage, status, total, processed, created_at, updated_at
		 FROM runs WHERE id = ?`, runID,
	)
	return scanRun(row)
}

// LatestRun returns the most recently created run for a stage, or nil when
// the stage has never run.
func (s *SQLiteStore) LatestRun(ctx context.Context, stage string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, stage, status, total, processed, created_at, updated_at
		 FROM runs WHERE stage = ? ORDER BY created_at DESC LIMIT 1`, stage,
	)
	run, err := scanRun(row)
	if eris.Is(err, ErrRunNotFound) {
		return nil, nil
	}
	return run, err
}

// ListRuns returns runs matching the filter, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, stage, status, total, processed, created_at, updated_at FROM runs`
	var conds []string
	var args []any
	if filter.Stage != "" {
		conds = append(conds, "stage = ?")
		args = append(args, filter.Stage)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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
func (s *SQLiteStore) SaveCheckpoint(ctx context.Context, cp model.Checkpoint) error {
	enrichJSON, err := marshalEnrichment(cp.Enrichment)
	if err != nil {
		return err
	}
	savedAt := cp.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO checkpoints (run_id, listing_key, enrichment, no_content, saved_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, listing_key) DO UPDATE SET
			enrichment = excluded.enrichment,
			no_content = excluded.no_content,
			saved_at = excluded.saved_at`,
		cp.RunID, cp.ListingKey, enrichJSON, cp.NoContent, savedAt,
	)
	if err != nil {
		return eris.Wrap(err, "store: save checkpoint")
	}
	return nil
}

// LoadCheckpoints returns all checkpoints for a run keyed by listing key.
func (s *SQLiteStore) LoadCheckpoints(ctx context.Context, runID string) (map[string]model.Checkpoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, listing_key, enrichment, no_content, saved_at
		 FROM checkpoints WHERE run_id = ?`, runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: load checkpoints")
	}
	defer rows.Close()

	checkpoints := make(map[string]model.Checkpoint)
	for rows.Next() {
		var cp model.Checkpoint
		var enrichJSON sql.NullString
		if err := rows.Scan(&cp.RunID, &cp.ListingKey, &enrichJSON, &cp.NoContent, &cp.SavedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan checkpoint")
		}
		if cp.Enrichment, err = unmarshalEnrichment(enrichJSON.String); err != nil {
			return nil, err
		}
		checkpoints[cp.ListingKey] = cp
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate checkpoints")
	}
	return checkpoints, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = eris.New("store: run not found")

func checkRowAffected(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "store: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrRunNotFound, "run %s", runID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var r model.Run
	err := row.Scan(&r.ID, &r.Stage, &r.Status, &r.Total, &r.Processed, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: scan run")
	}
	return &r, nil
}

func marshalEnrichment(e *model.Enrichment) (sql.NullString, error) {
	if e == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return sql.NullString{}, eris.Wrap(err, "store: marshal enrichment")
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalEnrichment(raw string) (*model.Enrichment, error) {
	if raw == "" {
		return nil, nil
	}
	var e model.Enrichment
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal enrichment")
	}
	return &e, nil
}
