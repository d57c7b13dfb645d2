package dungeon

import (
	"fmt"
	"time"
)

// State tracks where a run is in its lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
	StateFailed
	StateExpired
	StateAbandoned
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateExpired:
		return "expired"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateExpired || s == StateAbandoned
}

// Run is one player's attempt at one dungeon. Room is the index of the
// next room to fight and stays within [0, RoomCount].
type Run struct {
	ID        string
	PlayerID  int64
	DungeonID string
	State     State
	Room      int
	Defeated  int // monsters killed this run
	PlayerHP  int // carried between rooms
	StartedAt time.Time
	EndedAt   time.Time
}

// NewRun starts a run in the first room. Callers gate on cooldown and
// energy before creating one.
func NewRun(id string, playerID int64, t *Template, playerHP int, now time.Time) *Run {
	return &Run{
		ID:        id,
		PlayerID:  playerID,
		DungeonID: t.ID,
		State:     StateInProgress,
		Room:      0,
		PlayerHP:  playerHP,
		StartedAt: now,
	}
}

// Expired reports whether the run has outlived the dungeon's time limit.
// A zero limit never expires.
func (r *Run) Expired(t *Template, now time.Time) bool {
	if t.TimeLimit <= 0 {
		return false
	}
	return now.Sub(r.StartedAt) > t.TimeLimit
}

// Expire marks the run expired.
func (r *Run) Expire(now time.Time) error {
	return r.finish(StateExpired, now)
}

// Fail marks the run failed after a lost fight.
func (r *Run) Fail(now time.Time) error {
	return r.finish(StateFailed, now)
}

// Abandon ends the run voluntarily. The entry energy stays spent.
func (r *Run) Abandon(now time.Time) error {
	return r.finish(StateAbandoned, now)
}

// ClearRoom records a cleared room and either advances to the next one
// or, past the last room, completes the run. Returns the new state.
func (r *Run) ClearRoom(t *Template, killed int, remainingHP int, now time.Time) (State, error) {
	if r.State != StateInProgress {
		return r.State, fmt.Errorf("run is %s, not in progress", r.State)
	}
	if r.Room >= t.RoomCount() {
		return r.State, fmt.Errorf("room index %d out of range for %d rooms", r.Room, t.RoomCount())
	}

	r.Defeated += killed
	r.PlayerHP = remainingHP
	r.Room++

	if r.Room == t.RoomCount() {
		if err := r.finish(StateCompleted, now); err != nil {
			return r.State, err
		}
	}
	return r.State, nil
}

// Elapsed returns the run's duration. For a live run it measures against
// now; for a finished run, against when it ended.
func (r *Run) Elapsed(now time.Time) time.Duration {
	if r.State.Terminal() {
		return r.EndedAt.Sub(r.StartedAt)
	}
	return now.Sub(r.StartedAt)
}

func (r *Run) finish(s State, now time.Time) error {
	if r.State.Terminal() {
		return fmt.Errorf("run already %s", r.State)
	}
	r.State = s
	r.EndedAt = now
	return nil
}
