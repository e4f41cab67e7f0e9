package engine

import "time"

// Snapshot is the immutable result of one successful tick. It is copied
// across the goroutine boundary; consumers never share state with the engine.
type Snapshot struct {
	Timestamp   time.Time
	CPU         float64
	RAM         float64
	Disk        float64
	NetRateKBs  float64
	Mood        Mood
	MoodChanged bool
	AlertFired  bool
}
