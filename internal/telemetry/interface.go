package telemetry

import (
	"context"

	"github.com/NitishVankina/ServerPet/internal/engine"
)

// Recorder journals engine snapshots. The journal is write-only: nothing is
// ever read back into the engine, so session state stays in-memory.
type Recorder interface {
	Record(ctx context.Context, snapshot engine.Snapshot) error
	Close() error
}

// Repository defines the storage backend for the journal.
type Repository interface {
	Store(ctx context.Context, snapshot engine.Snapshot) error
	Close() error
}
