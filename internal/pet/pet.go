// Package pet implements companion pets: templates, owned pets with
// happiness and hunger, training, evolution, and the combat hook that
// lets an active pet fight alongside its owner.
package pet

import (
	"time"

	"github.com/batonquest/server/internal/items"
	"github.com/batonquest/server/internal/leveling"
)

// Care and training tuning.
const (
	FeedCost          = 10 // batons
	FeedHungerRelief  = 50
	FeedHappinessGain = 20
	TrainCost         = 20 // batons per session

	HungerPerHour     = 5
	HungerSadLine     = 50 // hunger above this erodes happiness
	LowHappinessLine  = 50 // training gains halve below this
	EvolutionScale    = 1.5
	PassiveAuraFactor = 0.2 // share of pet stats granted to the owner
)

// AbilityType classifies what a pet ability does.
type AbilityType int

const (
	AbilityCombat AbilityType = iota
	AbilityPassive
)

// String returns the string representation of an AbilityType
func (t AbilityType) String() string {
	if t == AbilityPassive {
		return "passive"
	}
	return "combat"
}

// Ability is one pet ability. Combat abilities fire during battle rounds;
// passive abilities feed flat stat bonuses into the owner's aura.
type Ability struct {
	ID                string
	Name              string
	Description       string
	Type              AbilityType
	Damage            int // combat: direct damage to the enemy
	Heal              int // combat: health restored to the owner
	StatBonuses       map[string]int
	Cooldown          int // rounds between uses
	RequiredEvolution int
}

// Template is an immutable pet species definition.
type Template struct {
	ID           string
	Name         string
	Kind         string // dragon, wolf, cat, ...
	Rarity       items.Rarity
	BaseDamage   int
	BaseDefense  int
	BaseHealth   int
	MaxEvolution int
	Abilities    []Ability
}

// Price returns the shop price for this species, by rarity.
func (t *Template) Price() int {
	switch t.Rarity {
	case items.Rare:
		return 300
	case items.Epic:
		return 1000
	case items.Legendary:
		return 5000
	default:
		return 100
	}
}

// Stats is a pet's resolved combat contribution.
type Stats struct {
	Damage  int
	Defense int
	Health  int
}

// Owned is a player's pet instance. Evolution lives here, not on the
// template, so one owner evolving never changes anyone else's pet.
type Owned struct {
	ID           string
	PlayerID     int64
	TemplateID   string
	Nickname     string
	Level        int
	Experience   int
	Happiness    int // 0-100
	Hunger       int // 0-100
	Evolution    int
	LastFed      time.Time
	Active       bool
	TrainedBonus map[string]int // stat -> flat bonus from training
}

// NewOwned creates a fresh level-1 pet of the given species.
func NewOwned(id string, playerID int64, templateID string, now time.Time) *Owned {
	return &Owned{
		ID:           id,
		PlayerID:     playerID,
		TemplateID:   templateID,
		Level:        1,
		Experience:   0,
		Happiness:    100,
		Hunger:       0,
		Evolution:    1,
		LastFed:      now,
		TrainedBonus: make(map[string]int),
	}
}

// DisplayName returns the nickname, or the species name when unset.
func (o *Owned) DisplayName(t *Template) string {
	if o.Nickname != "" {
		return o.Nickname
	}
	return t.Name
}

// Stats resolves the pet's combat stats: base × level multiplier ×
// evolution scale, plus flat trained bonuses.
func (o *Owned) Stats(t *Template) Stats {
	mult := leveling.PetLevelMultiplier(o.Level)
	for i := 1; i < o.Evolution; i++ {
		mult *= EvolutionScale
	}
	return Stats{
		Damage:  int(float64(t.BaseDamage)*mult) + o.TrainedBonus["damage"],
		Defense: int(float64(t.BaseDefense)*mult) + o.TrainedBonus["defense"],
		Health:  int(float64(t.BaseHealth)*mult) + o.TrainedBonus["health"],
	}
}

// AddExperience grants experience on the shared curve. Pets gain no fixed
// attribute deltas on level-up; scaling is continuous via the level
// multiplier.
func (o *Owned) AddExperience(amount int) bool {
	r := leveling.AddExperience(o.Level, o.Experience, amount)
	o.Level = r.Level
	o.Experience = r.Experience
	return r.LeveledUp()
}

// UpdateStatus advances hunger and happiness to the given instant.
// Hunger climbs with time since feeding; a hungry pet loses happiness.
func (o *Owned) UpdateStatus(now time.Time) {
	hours := now.Sub(o.LastFed).Hours()
	if hours <= 0 {
		return
	}

	o.Hunger = min(100, o.Hunger+int(hours*HungerPerHour))
	if o.Hunger > HungerSadLine {
		loss := int(float64(o.Hunger-HungerSadLine) * 0.5)
		o.Happiness = max(0, o.Happiness-loss)
	}
}

// Feed resets hunger, lifts happiness and stamps the feed time.
func (o *Owned) Feed(now time.Time) {
	o.Hunger = max(0, o.Hunger-FeedHungerRelief)
	o.Happiness = min(100, o.Happiness+FeedHappinessGain)
	o.LastFed = now
}

// AddHappiness raises happiness, clamped at 100.
func (o *Owned) AddHappiness(amount int) {
	o.Happiness = min(100, o.Happiness+amount)
}

// EvolutionLevelRequired returns the pet level needed for the next
// evolution stage.
func (o *Owned) EvolutionLevelRequired() int {
	return o.Evolution * 10
}

// EvolutionCost returns the baton cost of the next evolution stage.
func (o *Owned) EvolutionCost() int {
	return o.Evolution * 100
}

// CanEvolve reports whether another evolution stage exists and the pet
// meets its level requirement.
func (o *Owned) CanEvolve(t *Template) bool {
	return o.Evolution < t.MaxEvolution && o.Level >= o.EvolutionLevelRequired()
}

// Evolve advances to the next evolution stage. Callers gate on CanEvolve
// and the baton cost.
func (o *Owned) Evolve() {
	o.Evolution++
}

// UnlockedAbilities returns the abilities available at the pet's current
// evolution stage, filtered by type.
func (o *Owned) UnlockedAbilities(t *Template, kind AbilityType) []Ability {
	var out []Ability
	for _, a := range t.Abilities {
		if a.Type == kind && a.RequiredEvolution <= o.Evolution {
			out = append(out, a)
		}
	}
	return out
}
