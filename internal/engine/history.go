package engine

import "sync"

// DefaultHistorySize covers two minutes of samples at the default cadence.
const DefaultHistorySize = 60

// History is a fixed-capacity rolling sequence of samples, oldest first.
// Pushing past capacity evicts the oldest entry.
type History struct {
	mu       sync.RWMutex
	samples  []float64
	capacity int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}

	return &History{
		samples:  make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a sample, evicting the oldest when the buffer is full.
func (h *History) Push(sample float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) == h.capacity {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.capacity-1]
	}
	h.samples = append(h.samples, sample)
}

// Snapshot returns an ordered copy of the current contents. Readers never see
// a live reference into the buffer.
func (h *History) Snapshot() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]float64, len(h.samples))
	copy(out, h.samples)

	return out
}

// Average returns the arithmetic mean of the current contents, or 0 when empty.
func (h *History) Average() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return 0
	}

	sum := 0.0
	for _, s := range h.samples {
		sum += s
	}

	return sum / float64(len(h.samples))
}

// Len returns the number of samples currently held.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.samples)
}

// Capacity returns the fixed capacity set at construction.
func (h *History) Capacity() int {
	return h.capacity
}
