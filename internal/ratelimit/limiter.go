package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow implements sliding-window admission control over a single
// shared counter. Only requests admitted within the trailing window count
// toward the limit; history is pruned lazily on every query.
// Thread-safe: the prune + check + append in Allow is one critical section.
type SlidingWindow struct {
	maxRequests int
	window      time.Duration
	timestamps  []time.Time
	now         func() time.Time
	mu          sync.Mutex
}

// NewSlidingWindow creates a limiter admitting at most maxRequests per window.
func NewSlidingWindow(maxRequests int, window time.Duration) *SlidingWindow {
	if maxRequests < 1 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	return &SlidingWindow{
		maxRequests: maxRequests,
		window:      window,
		timestamps:  make([]time.Time, 0, maxRequests),
		now:         time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (l *SlidingWindow) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Allow reports whether a request may proceed and, if so, records it.
// Denial does not mutate history.
func (l *SlidingWindow) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	if len(l.timestamps) >= l.maxRequests {
		return false
	}

	l.timestamps = append(l.timestamps, now)
	return true
}

// Count returns the number of requests admitted within the current window.
func (l *SlidingWindow) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(l.now())
	return len(l.timestamps)
}

// Remaining returns how many more requests the current window can admit.
func (l *SlidingWindow) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(l.now())
	remaining := l.maxRequests - len(l.timestamps)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// TimeUntilReset returns how long until the oldest admitted request leaves
// the window, freeing the next slot. Zero when the window is empty.
func (l *SlidingWindow) TimeUntilReset() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	if len(l.timestamps) == 0 {
		return 0
	}

	until := l.timestamps[0].Add(l.window).Sub(now)
	if until < 0 {
		until = 0
	}
	return until
}

// Reset clears all admission history immediately.
func (l *SlidingWindow) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timestamps = l.timestamps[:0]
}

// MaxRequests returns the configured window capacity.
func (l *SlidingWindow) MaxRequests() int {
	return l.maxRequests
}

// Window returns the configured window duration.
func (l *SlidingWindow) Window() time.Duration {
	return l.window
}

// prune drops timestamps that have aged out of the window.
// Callers must hold the mutex.
func (l *SlidingWindow) prune(now time.Time) {
	cutoff := now.Add(-l.window)

	keep := 0
	for keep < len(l.timestamps) && !l.timestamps[keep].After(cutoff) {
		keep++
	}
	if keep > 0 {
		l.timestamps = append(l.timestamps[:0], l.timestamps[keep:]...)
	}
}
