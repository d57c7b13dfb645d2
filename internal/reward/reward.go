// Package reward settles loot, batons and experience after victories.
// Settlement is only ever invoked for wins; draws and defeats pay
// nothing by construction.
package reward

import (
	"sort"

	"github.com/batonquest/server/internal/combat"
	"github.com/batonquest/server/internal/dungeon"
	"github.com/batonquest/server/internal/monster"
)

// Active pets receive this share of the player's experience from any
// settlement, plus a small happiness bump.
const (
	PetExperienceShare = 0.5
	PetHappinessBonus  = 5
)

// Dungeon loot quantity bounds per successful drop roll.
const (
	DungeonLootQtyMin = 1
	DungeonLootQtyMax = 3
)

// Reward is one settlement: what a player walks away with.
type Reward struct {
	Experience int
	Batons     int
	Items      map[string]int // item ID -> quantity
}

// PetShare returns the experience an active pet earns from this reward.
func (r Reward) PetShare() int {
	return int(float64(r.Experience) * PetExperienceShare)
}

// MonsterKill settles a defeated monster: fixed experience, batons
// uniform within the template's range, and one independent drop roll per
// drop table entry.
func MonsterKill(m *monster.Monster, rng combat.RNG) Reward {
	r := Reward{
		Experience: m.ExperienceReward,
		Batons:     uniform(rng, m.BatonRewardMin, m.BatonRewardMax),
		Items:      make(map[string]int),
	}
	for _, id := range sortedKeys(m.DropTable) {
		if rng.Float64() < m.DropTable[id] {
			r.Items[id]++
		}
	}
	return r
}

// DungeonClear settles a completed dungeon. Experience and batons scale
// with the dungeon's minimum level; each loot entry rolls independently
// with a random quantity on success.
func DungeonClear(t *dungeon.Template, rng combat.RNG) Reward {
	r := Reward{
		Experience: uniform(rng, t.ExperienceMin, t.ExperienceMax) * t.MinLevel,
		Batons:     uniform(rng, t.BatonMin, t.BatonMax) * t.MinLevel,
		Items:      make(map[string]int),
	}
	for _, id := range sortedKeys(t.LootTable) {
		if rng.Float64() < t.LootTable[id] {
			r.Items[id] += uniform(rng, DungeonLootQtyMin, DungeonLootQtyMax)
		}
	}
	return r
}

// Merge folds another reward into this one.
func (r *Reward) Merge(other Reward) {
	r.Experience += other.Experience
	r.Batons += other.Batons
	if r.Items == nil {
		r.Items = make(map[string]int)
	}
	for id, qty := range other.Items {
		r.Items[id] += qty
	}
}

// uniform draws an integer in [lo, hi]. Degenerate ranges collapse to lo.
func uniform(rng combat.RNG, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// sortedKeys fixes drop roll order so a seeded RNG replays identically.
func sortedKeys(table map[string]float64) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
