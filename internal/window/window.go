// Package window keeps a bounded history of price samples.
package window

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceWindow is a fixed-capacity ring of price samples, oldest first.
// Once full, each Push evicts the oldest sample.
//
// It is not safe for concurrent use; the monitor loop owns it.
type PriceWindow struct {
	buf   []decimal.Decimal
	start int // index of the oldest sample
	n     int
}

// New creates an empty window holding at most capacity samples.
// A capacity below 1 is raised to 1.
func New(capacity int) *PriceWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &PriceWindow{buf: make([]decimal.Decimal, capacity)}
}

// CapacityForInterval returns how many samples taken every interval cover
// lookback, at least 1.
func CapacityForInterval(lookback, interval time.Duration) int {
	if interval <= 0 {
		return 1
	}
	n := int(lookback / interval)
	if n < 1 {
		return 1
	}
	return n
}

// Push appends a sample, evicting the oldest one when the window is full.
func (w *PriceWindow) Push(sample decimal.Decimal) {
	if w.n < len(w.buf) {
		w.buf[(w.start+w.n)%len(w.buf)] = sample
		w.n++
		return
	}
	w.buf[w.start] = sample
	w.start = (w.start + 1) % len(w.buf)
}

// SampleFromBack returns the sample k positions behind the most recent one
// (k=0 is the latest). When fewer than k+1 samples exist, the oldest sample
// is returned instead. ok is false only when the window is empty.
func (w *PriceWindow) SampleFromBack(k int) (sample decimal.Decimal, ok bool) {
	if w.n == 0 {
		return decimal.Zero, false
	}
	if k < 0 {
		k = 0
	}
	idx := w.n - 1 - k
	if idx < 0 {
		idx = 0
	}
	return w.at(idx), true
}

// Latest returns the most recent sample.
func (w *PriceWindow) Latest() (decimal.Decimal, bool) { return w.SampleFromBack(0) }

// Oldest returns the oldest retained sample.
func (w *PriceWindow) Oldest() (decimal.Decimal, bool) {
	if w.n == 0 {
		return decimal.Zero, false
	}
	return w.at(0), true
}

// Len returns the number of samples held.
func (w *PriceWindow) Len() int { return w.n }

// Cap returns the fixed capacity.
func (w *PriceWindow) Cap() int { return len(w.buf) }

// Full reports whether the window reached its capacity.
func (w *PriceWindow) Full() bool { return w.n == len(w.buf) }

// Values returns a copy of the samples, oldest first.
func (w *PriceWindow) Values() []decimal.Decimal {
	out := make([]decimal.Decimal, w.n)
	for i := range out {
		out[i] = w.at(i)
	}
	return out
}

// at returns the i-th sample in storage order (0 = oldest).
func (w *PriceWindow) at(i int) decimal.Decimal {
	return w.buf[(w.start+i)%len(w.buf)]
}
