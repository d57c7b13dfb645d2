package stats

import "time"

// Buff is a named, time-bounded additive stat modifier. The entity store
// owns buff lifecycle; aggregation only skips expired rows, it never
// deletes them.
type Buff struct {
	Name      string
	Bonuses   map[string]int // stat name -> additive delta
	StartedAt time.Time
	ExpiresAt time.Time
}

// ActiveAt reports whether the buff still applies at the given instant.
func (b Buff) ActiveAt(now time.Time) bool {
	return now.Before(b.ExpiresAt)
}
