package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock. Once pinned it keeps ticking from the pinned
// instant at wall-clock speed.
type Time struct {
	mu       sync.RWMutex
	pinned   time.Time
	pinnedAt time.Time
}

func NewTime() *Time {
	now := time.Now()
	return &Time{pinned: now, pinnedAt: now}
}

func (t *Time) SetCurrentTime(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinned = at
	t.pinnedAt = time.Now()
}

// Advance moves the clock forward by d.
func (t *Time) Advance(d time.Duration) {
	t.SetCurrentTime(t.Now().Add(d))
}

// Reset returns the clock to wall time.
func (t *Time) Reset() {
	t.SetCurrentTime(time.Now())
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pinned.Add(time.Since(t.pinnedAt))
}
