// Package gameclock provides the injectable clock used by every
// time-dependent game operation (cooldowns, buff expiry, regeneration,
// dungeon time limits). Core packages never call time.Now directly.
package gameclock

import (
	"sync"
	"time"
)

// Clock supplies the current time to game operations.
type Clock interface {
	Now() time.Time
}

// Real is a Clock backed by the system time.
type Real struct{}

// Now returns the current UTC time.
func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a settable Clock for tests and replays.
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixed creates a Fixed clock starting at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

// Now returns the clock's current time.
func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
