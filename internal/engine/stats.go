package engine

import (
	"sync"
	"time"
)

// Stats accumulates wall-clock time per mood and running maxima for the
// session. Counters only ever grow.
type Stats struct {
	mu           sync.RWMutex
	sessionStart time.Time
	timeInState  map[Mood]float64
	maxCPU       float64
	maxRAM       float64
	maxDisk      float64
}

// StatsSummary is a read-only copy of the session statistics.
type StatsSummary struct {
	SessionStart time.Time
	TotalElapsed time.Duration
	TimeInState  map[Mood]time.Duration
	MoodPercent  map[Mood]float64
	MaxCPU       float64
	MaxRAM       float64
	MaxDisk      float64
}

func NewStats() *Stats {
	return &Stats{
		sessionStart: time.Now(),
		timeInState:  make(map[Mood]float64, len(Moods())),
	}
}

// Record adds interval seconds to the time spent in mood.
func (s *Stats) Record(mood Mood, intervalSeconds float64) {
	if intervalSeconds < 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeInState[mood] += intervalSeconds
}

// RecordPeaks raises the per-metric maxima where exceeded.
func (s *Stats) RecordPeaks(cpu, ram, disk float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxCPU = max(s.maxCPU, cpu)
	s.maxRAM = max(s.maxRAM, ram)
	s.maxDisk = max(s.maxDisk, disk)
}

// TotalElapsed is the wall clock since construction, regardless of how many
// ticks actually succeeded.
func (s *Stats) TotalElapsed() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return time.Since(s.sessionStart)
}

// Summary copies the current statistics. The mood percentages are derived
// from recorded time, so they stay meaningful even when ticks were skipped;
// a zero denominator yields zero percentages, never a division error.
func (s *Stats) Summary() StatsSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := StatsSummary{
		SessionStart: s.sessionStart,
		TotalElapsed: time.Since(s.sessionStart),
		TimeInState:  make(map[Mood]time.Duration, len(Moods())),
		MoodPercent:  make(map[Mood]float64, len(Moods())),
		MaxCPU:       s.maxCPU,
		MaxRAM:       s.maxRAM,
		MaxDisk:      s.maxDisk,
	}

	recorded := 0.0
	for _, m := range Moods() {
		recorded += s.timeInState[m]
	}

	for _, m := range Moods() {
		seconds := s.timeInState[m]
		summary.TimeInState[m] = time.Duration(seconds * float64(time.Second))
		if recorded > 0 {
			summary.MoodPercent[m] = seconds / recorded * 100
		}
	}

	return summary
}
