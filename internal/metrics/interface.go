package metrics

import (
	"context"
	"time"
)

// Counters holds cumulative network byte counters and the instant they were read.
type Counters struct {
	BytesSent uint64
	BytesRecv uint64
	Timestamp time.Time
}

// Source provides the raw host readings the engine samples. Every method may
// fail; the engine treats a failure as a recoverable per-tick error.
type Source interface {
	// CPUPercent blocks for the measurement window (~1s) and returns the
	// CPU utilization over that window.
	CPUPercent(ctx context.Context) (float64, error)

	// RAMPercent returns the current virtual memory utilization.
	RAMPercent() (float64, error)

	// DiskPercent returns the space utilization of the filesystem at path.
	DiskPercent(path string) (float64, error)

	// NetworkCounters returns host-wide cumulative network counters.
	NetworkCounters() (Counters, error)
}
