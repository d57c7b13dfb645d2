// Package achievement tracks long-running player milestones fed by
// settlement events.
package achievement

import (
	"sort"
)

// Metric names a counter achievements can watch.
type Metric string

const (
	MetricMonstersKilled    Metric = "monsters_killed"
	MetricBossesKilled      Metric = "bosses_killed"
	MetricDungeonsCompleted Metric = "dungeons_completed"
	MetricItemsCrafted      Metric = "items_crafted"
	MetricPvPWins           Metric = "pvp_wins"
	MetricQuestsCompleted   Metric = "quests_completed"
	MetricLevel             Metric = "level"
	MetricBatonsEarned      Metric = "batons_earned"
)

// Definition is one achievement: reach Target on Metric.
type Definition struct {
	ID           string
	Name         string
	Description  string
	Metric       Metric
	Target       int
	RewardBatons int
	RewardPoints int
	Title        string // honorific granted on completion, optional
}

// Progress is one player's standing across all achievements.
type Progress struct {
	PlayerID  int64
	Counters  map[Metric]int
	Completed map[string]bool // achievement ID -> done
	Points    int
	Titles    []string
}

// NewProgress returns empty progress for a player.
func NewProgress(playerID int64) *Progress {
	return &Progress{
		PlayerID:  playerID,
		Counters:  make(map[Metric]int),
		Completed: make(map[string]bool),
	}
}

// Record bumps a cumulative counter.
func (p *Progress) Record(metric Metric, delta int) {
	if delta <= 0 {
		return
	}
	p.Counters[metric] += delta
}

// SetLevel records the player's level as a high-water mark rather than a
// cumulative count.
func (p *Progress) SetLevel(level int) {
	if level > p.Counters[MetricLevel] {
		p.Counters[MetricLevel] = level
	}
}

// Evaluate checks every definition against the counters and marks newly
// reached ones complete, granting points and titles. Returns the newly
// completed definitions sorted by ID so notifications replay stably.
func (p *Progress) Evaluate(defs []*Definition) []*Definition {
	var unlocked []*Definition
	for _, d := range defs {
		if p.Completed[d.ID] {
			continue
		}
		if p.Counters[d.Metric] < d.Target {
			continue
		}
		p.Completed[d.ID] = true
		p.Points += d.RewardPoints
		if d.Title != "" {
			p.Titles = append(p.Titles, d.Title)
		}
		unlocked = append(unlocked, d)
	}
	sort.Slice(unlocked, func(i, j int) bool { return unlocked[i].ID < unlocked[j].ID })
	return unlocked
}
