package crafting

import "github.com/batonquest/server/internal/leveling"

// Skill is a player's crafting track. It levels on the shared experience
// curve, independently of the player's combat level.
type Skill struct {
	Level      int
	Experience int
}

// NewSkill returns a level-1 crafting skill.
func NewSkill() Skill {
	return Skill{Level: 1}
}

// AddExperience grants crafting experience and reports how many levels
// were gained.
func (s *Skill) AddExperience(amount int) int {
	r := leveling.AddExperience(s.Level, s.Experience, amount)
	s.Level = r.Level
	s.Experience = r.Experience
	return r.LevelsUp
}

// CanAttempt reports whether the skill level meets the recipe's gate.
func (s Skill) CanAttempt(recipe *Recipe) bool {
	return s.Level >= recipe.LevelRequired
}
