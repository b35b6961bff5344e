package model

import "time"

// RunStatus represents the current state of a pipeline run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run tracks one batch invocation of a pipeline stage (clean, enrich,
// verify, export) so interrupted batches can be resumed.
type Run struct {
	ID        string    `json:"id"`
	Stage     string    `json:"stage"`
	Status    RunStatus `json:"status"`
	Total     int       `json:"total"`
	Processed int       `json:"processed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Checkpoint stores the enrichment result for a single listing within a run.
// Replays of the same run skip listings that already have a checkpoint.
type Checkpoint struct {
	RunID      string      `json:"run_id"`
	ListingKey string      `json:"listing_key"`
	Enrichment *Enrichment `json:"enrichment,omitempty"`
	NoContent  bool        `json:"no_content,omitempty"`
	SavedAt    time.Time   `json:"saved_at"`
}
