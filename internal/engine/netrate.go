package engine

import (
	"time"

	"github.com/NitishVankina/ServerPet/internal/metrics"
)

// minElapsed floors the rate denominator so clock anomalies (zero or negative
// elapsed time) cannot divide by zero.
const minElapsed = time.Millisecond

// EstimateRate converts two cumulative counter readings into bytes/sec.
// A counter running backwards (interface reset) counts as zero delta.
func EstimateRate(prev, curr metrics.Counters) float64 {
	elapsed := curr.Timestamp.Sub(prev.Timestamp)
	if elapsed < minElapsed {
		elapsed = minElapsed
	}

	var delta uint64
	if curr.BytesSent >= prev.BytesSent {
		delta += curr.BytesSent - prev.BytesSent
	}
	if curr.BytesRecv >= prev.BytesRecv {
		delta += curr.BytesRecv - prev.BytesRecv
	}

	return float64(delta) / elapsed.Seconds()
}

// RateEstimator tracks the previous counter reading across ticks.
type RateEstimator struct {
	prev    metrics.Counters
	hasPrev bool
}

func NewRateEstimator() *RateEstimator {
	return &RateEstimator{}
}

// Update consumes the current reading and returns the instantaneous rate in
// bytes/sec. The first reading seeds the estimator and yields zero.
func (r *RateEstimator) Update(curr metrics.Counters) float64 {
	if !r.hasPrev {
		r.prev = curr
		r.hasPrev = true
		return 0
	}

	rate := EstimateRate(r.prev, curr)
	r.prev = curr

	return rate
}
