package sagalog

import "context"

// Repository is the port (interface) for persisting saga log entries.
// The coordinator depends on this abstraction, not on SQLite directly,
// so the implementation can be swapped for Postgres, in-memory (tests), etc.
type Repository interface {
	// Save persists a new log entry. Each call appends a row; the table is
	// an append-only audit log, not an upsert.
	Save(ctx context.Context, entry *SagaLog) error

	// GetLatest returns the most recent entry for a saga id, i.e. its
	// current state. Backs the save-status endpoint.
	GetLatest(ctx context.Context, sagaID string) (*SagaLog, error)
}
