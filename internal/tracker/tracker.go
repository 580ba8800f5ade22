// Package tracker keeps a sliding window of attempt outcomes.
package tracker

import "math"

// ResultTracker holds the most recent outcome ratios, oldest first.
type ResultTracker struct {
	capacity int
	results  []float64
}

// New returns a tracker holding at most capacity ratios.
func New(capacity int) *ResultTracker {
	if capacity < 1 {
		capacity = 1
	}
	return &ResultTracker{capacity: capacity, results: make([]float64, 0, capacity)}
}

// Record appends success/total and evicts the oldest ratio on overflow.
// It reports whether this call filled the window for the first time.
func (t *ResultTracker) Record(success, total int) bool {
	before := len(t.results)
	ratio := float64(success) / float64(total)
	if before == t.capacity {
		copy(t.results, t.results[1:])
		t.results[before-1] = ratio
		return false
	}
	t.results = append(t.results, ratio)
	return len(t.results) == t.capacity
}

// TrailingRatio is the mean of the held ratios, NaN when empty.
func (t *ResultTracker) TrailingRatio() float64 {
	if len(t.results) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, r := range t.results {
		sum += r
	}
	return sum / float64(len(t.results))
}

// Len returns the number of held ratios.
func (t *ResultTracker) Len() int {
	return len(t.results)
}

// Cap returns the window capacity.
func (t *ResultTracker) Cap() int {
	return t.capacity
}

// Full reports whether the window holds capacity ratios.
func (t *ResultTracker) Full() bool {
	return len(t.results) == t.capacity
}

// Results returns a copy of the window, oldest first.
func (t *ResultTracker) Results() []float64 {
	out := make([]float64, len(t.results))
	copy(out, t.results)
	return out
}
