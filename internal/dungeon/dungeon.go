// Package dungeon defines dungeon templates and the run state machine
// that tracks a player's progress through one.
package dungeon

import (
	"time"

	"github.com/batonquest/server/internal/items"
)

// Template is an immutable dungeon definition. Rooms hold ordered groups
// of monster IDs; the boss, when set, guards the final room.
type Template struct {
	ID            string
	Name          string
	Description   string
	MinLevel      int
	EnergyCost    int
	Cooldown      time.Duration
	TimeLimit     time.Duration
	Rooms         [][]string
	BossID        string
	LootTable     items.DropTable
	ExperienceMin int
	ExperienceMax int
	BatonMin      int
	BatonMax      int
}

// RoomCount returns the number of rooms, counting the boss room when a
// boss is set.
func (t *Template) RoomCount() int {
	n := len(t.Rooms)
	if t.BossID != "" {
		n++
	}
	return n
}

// RoomMonsters returns the monster IDs guarding the given room. The boss
// room, when present, is the last index.
func (t *Template) RoomMonsters(room int) []string {
	if room < 0 || room >= t.RoomCount() {
		return nil
	}
	if room == len(t.Rooms) && t.BossID != "" {
		return []string{t.BossID}
	}
	return t.Rooms[room]
}

// IsBossRoom reports whether the given room index is the boss room.
func (t *Template) IsBossRoom(room int) bool {
	return t.BossID != "" && room == len(t.Rooms)
}

// OffCooldown reports whether a player whose last attempt was at
// lastAttempt may enter again at now. A zero lastAttempt means no prior
// attempt.
func (t *Template) OffCooldown(lastAttempt, now time.Time) bool {
	if lastAttempt.IsZero() {
		return true
	}
	return !now.Before(lastAttempt.Add(t.Cooldown))
}

// CooldownRemaining returns how long until the player may enter again.
// Zero when already off cooldown.
func (t *Template) CooldownRemaining(lastAttempt, now time.Time) time.Duration {
	if t.OffCooldown(lastAttempt, now) {
		return 0
	}
	return lastAttempt.Add(t.Cooldown).Sub(now)
}

// Progress is a player's persistent standing with one dungeon.
type Progress struct {
	PlayerID    int64
	DungeonID   string
	LastAttempt time.Time
	BestTime    time.Duration // zero means never completed
	Completions int
}

// RecordBest updates the player's best clear time. Returns true when the
// time improves on (or sets) the previous best.
func (p *Progress) RecordBest(elapsed time.Duration) bool {
	p.Completions++
	if p.BestTime == 0 || elapsed < p.BestTime {
		p.BestTime = elapsed
		return true
	}
	return false
}

// Record is the dungeon-wide fastest clear.
type Record struct {
	DungeonID string
	PlayerID  int64
	Time      time.Duration
	SetAt     time.Time
}

// Beats reports whether elapsed would take this record. A zero-time
// record has never been set.
func (r *Record) Beats(elapsed time.Duration) bool {
	return r.Time == 0 || elapsed < r.Time
}
