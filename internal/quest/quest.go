// Package quest implements daily quests: a rotating board of three
// tasks per player per day, advanced by energy-gated attempts.
package quest

import (
	"time"

	"github.com/batonquest/server/internal/combat"
)

// Attempt tuning.
const (
	DailyCount    = 3   // quests assigned per day
	SuccessChance = 0.7 // an attempt advances progress this often
	ProgressMin   = 1
	ProgressMax   = 5
)

// Kind is the flavor of a daily task.
type Kind string

const (
	KindKill    Kind = "kill"
	KindGather  Kind = "gather"
	KindExplore Kind = "explore"
	KindCraft   Kind = "craft"
	KindTrain   Kind = "train"
)

// Definition is one daily quest template.
type Definition struct {
	ID               string
	Name             string
	Description      string
	Kind             Kind
	Required         int // progress needed to complete
	EnergyCost       int // per attempt
	RewardBatons     int
	RewardExperience int
	RewardItems      map[string]int
}

// Daily is a player's progress on one assigned quest.
type Daily struct {
	QuestID   string
	Progress  int
	Completed bool
	Claimed   bool
}

// Board is a player's quest slate for one day. Day is the UTC date in
// YYYY-MM-DD form; a board from a previous day is stale and gets
// reassigned on access.
type Board struct {
	PlayerID int64
	Day      string
	Quests   []*Daily
}

// DayKey formats the UTC date a board belongs to.
func DayKey(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// Stale reports whether the board belongs to an earlier day.
func (b *Board) Stale(now time.Time) bool {
	return b.Day != DayKey(now)
}

// Get returns the daily entry for a quest ID.
func (b *Board) Get(questID string) (*Daily, bool) {
	for _, d := range b.Quests {
		if d.QuestID == questID {
			return d, true
		}
	}
	return nil, false
}

// Attempt rolls one try at the quest. On success it advances progress by
// a random step, clamped at the requirement. Returns the progress gained
// and whether this attempt completed the quest.
func (d *Daily) Attempt(def *Definition, rng combat.RNG) (gained int, completed bool) {
	if d.Completed {
		return 0, false
	}
	if rng.Float64() >= SuccessChance {
		return 0, false
	}

	gained = ProgressMin + rng.Intn(ProgressMax-ProgressMin+1)
	d.Progress += gained
	if d.Progress >= def.Required {
		d.Progress = def.Required
		d.Completed = true
	}
	return gained, d.Completed
}

// Claim marks a completed quest's reward as paid out. Returns false when
// the quest is unfinished or already claimed.
func (d *Daily) Claim() bool {
	if !d.Completed || d.Claimed {
		return false
	}
	d.Claimed = true
	return true
}
