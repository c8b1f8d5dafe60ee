package latency

import "netpulse/internal/models"

// History is a bounded FIFO over the most recent samples. Pushing into
// a full history evicts the oldest entry. It is owned by the consuming
// loop and is not safe for concurrent use.
type History struct {
	capacity int
	samples  []models.Sample
}

// NewHistory creates a history holding at most capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		capacity: capacity,
		samples:  make([]models.Sample, 0, capacity),
	}
}

// Push appends s, evicting the oldest sample when full.
func (h *History) Push(s models.Sample) {
	if len(h.samples) == h.capacity {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.capacity-1]
	}
	h.samples = append(h.samples, s)
}

// Samples returns a copy of the stored samples, oldest first.
func (h *History) Samples() []models.Sample {
	out := make([]models.Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// Latest returns the most recently pushed sample.
func (h *History) Latest() (models.Sample, bool) {
	if len(h.samples) == 0 {
		return models.Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

func (h *History) Len() int { return len(h.samples) }

func (h *History) Cap() int { return h.capacity }
