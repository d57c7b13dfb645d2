// Package leveling implements the shared experience curve and level-up
// ledger for players, pets and crafting.
package leveling

import "math"

// Leveling constants
const (
	MaxLevel = 100

	// BaseExpMultiplier is the single canonical curve base. The original
	// game carried a second, diverging multiplier on one code path; both
	// now resolve here.
	BaseExpMultiplier = 100

	// Per-level grants for players. Pets gain nothing fixed on level-up;
	// their scaling is a level multiplier applied at stat aggregation.
	AttributePerLevel = 2
	HealthPerLevel    = 20
	EnergyPerLevel    = 10
)

// XPForNextLevel returns the XP required to advance past a given level.
// Uses polynomial curve: 100 * level^1.5
func XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(float64(BaseExpMultiplier) * math.Pow(float64(level), 1.5))
}

// Result describes the outcome of an experience grant.
type Result struct {
	Level      int
	Experience int
	LevelsUp   int
}

// LeveledUp reports whether at least one level was gained.
func (r Result) LeveledUp() bool {
	return r.LevelsUp > 0
}

// AddExperience applies an experience grant. Experience accumulates as a
// running total; the level advances while the total reaches the current
// level's threshold, so a single large grant can produce several level-ups
// in one call. Afterwards experience < XPForNextLevel(level) always holds
// (below MaxLevel).
func AddExperience(level, experience, amount int) Result {
	if level < 1 {
		level = 1
	}
	experience += amount

	ups := 0
	for level < MaxLevel && experience >= XPForNextLevel(level) {
		level++
		ups++
	}

	return Result{Level: level, Experience: experience, LevelsUp: ups}
}

// PetLevelMultiplier returns the continuous stat multiplier pets get per
// level instead of fixed attribute grants: 1 + (level-1)*0.1
func PetLevelMultiplier(level int) float64 {
	if level < 1 {
		level = 1
	}
	return 1.0 + float64(level-1)*0.1
}
