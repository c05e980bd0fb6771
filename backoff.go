package reactor

import "time"

// Backoff is the stateful reconnect-delay iterator: 0, 0.1s, 0.2s,
// 0.4s, 0.8s, 1.6s, 3.2s, 6.4s, 10s, 10s, ... (spec.md §3, §6; testable
// property 7). Reset returns it to the start.
type Backoff struct {
	n int

	// Max, if non-zero, caps every delay Next returns below the
	// schedule's own 10s ceiling (spec.md §6's configurable MaxBackoff,
	// wired in by Connector/Config).
	Max time.Duration
}

// Next returns the current delay and advances the iterator.
func (b *Backoff) Next() time.Duration {
	d := backoffSchedule[b.n]
	if b.n < len(backoffSchedule)-1 {
		b.n++
	}
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// Reset returns the iterator to its initial state.
func (b *Backoff) Reset() { b.n = 0 }

var backoffSchedule = []time.Duration{
	0,
	100 * time.Millisecond,
	200 * time.Millisecond,
	400 * time.Millisecond,
	800 * time.Millisecond,
	1600 * time.Millisecond,
	3200 * time.Millisecond,
	6400 * time.Millisecond,
	10 * time.Second,
}
