package pet

import (
	"math"
	"testing"
	"time"

	"github.com/batonquest/server/internal/items"
	"github.com/batonquest/server/internal/stats"
)

func testTemplate() *Template {
	return &Template{
		ID:           "ember_drake",
		Name:         "Ember Drake",
		Kind:         "dragon",
		Rarity:       items.Rare,
		BaseDamage:   10,
		BaseDefense:  8,
		BaseHealth:   50,
		MaxEvolution: 3,
		Abilities: []Ability{
			{ID: "bite", Name: "Bite", Type: AbilityCombat, Damage: 5, Cooldown: 0, RequiredEvolution: 1},
			{ID: "flame", Name: "Flame Breath", Type: AbilityCombat, Damage: 15, Cooldown: 2, RequiredEvolution: 2},
			{ID: "warmth", Name: "Warmth", Type: AbilityPassive, StatBonuses: map[string]int{"health": 10}, RequiredEvolution: 1},
		},
	}
}

func TestStatsScaling(t *testing.T) {
	tmpl := testTemplate()
	now := time.Now()

	tests := []struct {
		name       string
		level      int
		evolution  int
		trained    map[string]int
		wantDamage int
	}{
		{"level 1 base", 1, 1, nil, 10},
		{"level 5 multiplier", 5, 1, nil, 14},  // 10 * 1.4
		{"level 11 doubles", 11, 1, nil, 20},   // 10 * 2.0
		{"evolution stage 2", 1, 2, nil, 15},   // 10 * 1.5
		{"evolution stage 3", 1, 3, nil, 22},   // 10 * 2.25
		{"trained bonus is flat", 1, 1, map[string]int{"damage": 3}, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOwned("p1", 1, tmpl.ID, now)
			o.Level = tt.level
			o.Evolution = tt.evolution
			for k, v := range tt.trained {
				o.TrainedBonus[k] = v
			}
			got := o.Stats(tmpl)
			if got.Damage != tt.wantDamage {
				t.Errorf("Stats().Damage = %d, want %d", got.Damage, tt.wantDamage)
			}
		})
	}
}

func TestUpdateStatusHungerAndHappiness(t *testing.T) {
	now := time.Now()

	o := NewOwned("p1", 1, "ember_drake", now)
	o.UpdateStatus(now.Add(4 * time.Hour))
	if o.Hunger != 20 {
		t.Errorf("hunger after 4h = %d, want 20", o.Hunger)
	}
	if o.Happiness != 100 {
		t.Errorf("happiness should not erode below the hunger line, got %d", o.Happiness)
	}

	// 16 hours: hunger 80, happiness loses (80-50)*0.5 = 15.
	o = NewOwned("p1", 1, "ember_drake", now)
	o.UpdateStatus(now.Add(16 * time.Hour))
	if o.Hunger != 80 {
		t.Errorf("hunger after 16h = %d, want 80", o.Hunger)
	}
	if o.Happiness != 85 {
		t.Errorf("happiness after 16h = %d, want 85", o.Happiness)
	}

	// Hunger caps at 100.
	o = NewOwned("p1", 1, "ember_drake", now)
	o.UpdateStatus(now.Add(100 * time.Hour))
	if o.Hunger != 100 {
		t.Errorf("hunger should cap at 100, got %d", o.Hunger)
	}
}

func TestFeed(t *testing.T) {
	now := time.Now()
	o := NewOwned("p1", 1, "ember_drake", now)
	o.Hunger = 80
	o.Happiness = 60

	fedAt := now.Add(time.Hour)
	o.Feed(fedAt)

	if o.Hunger != 30 {
		t.Errorf("hunger after feed = %d, want 30", o.Hunger)
	}
	if o.Happiness != 80 {
		t.Errorf("happiness after feed = %d, want 80", o.Happiness)
	}
	if !o.LastFed.Equal(fedAt) {
		t.Errorf("LastFed not stamped")
	}

	// Relief floors at zero and happiness caps at 100.
	o.Hunger = 10
	o.Happiness = 95
	o.Feed(fedAt)
	if o.Hunger != 0 {
		t.Errorf("hunger should floor at 0, got %d", o.Hunger)
	}
	if o.Happiness != 100 {
		t.Errorf("happiness should cap at 100, got %d", o.Happiness)
	}
}

func TestEvolutionGates(t *testing.T) {
	tmpl := testTemplate()
	now := time.Now()
	o := NewOwned("p1", 1, tmpl.ID, now)

	if o.EvolutionLevelRequired() != 10 {
		t.Errorf("stage 1 requires level %d, want 10", o.EvolutionLevelRequired())
	}
	if o.EvolutionCost() != 100 {
		t.Errorf("stage 1 costs %d, want 100", o.EvolutionCost())
	}
	if o.CanEvolve(tmpl) {
		t.Error("level 1 pet should not evolve")
	}

	o.Level = 10
	if !o.CanEvolve(tmpl) {
		t.Error("level 10 pet at stage 1 should evolve")
	}
	o.Evolve()
	if o.Evolution != 2 {
		t.Errorf("evolution = %d, want 2", o.Evolution)
	}
	if o.EvolutionLevelRequired() != 20 || o.EvolutionCost() != 200 {
		t.Errorf("stage 2 gates = level %d cost %d, want 20/200", o.EvolutionLevelRequired(), o.EvolutionCost())
	}

	// Max evolution is a hard cap regardless of level.
	o.Evolution = tmpl.MaxEvolution
	o.Level = 99
	if o.CanEvolve(tmpl) {
		t.Error("pet at max evolution should not evolve")
	}
}

func TestUnlockedAbilities(t *testing.T) {
	tmpl := testTemplate()
	o := NewOwned("p1", 1, tmpl.ID, time.Now())

	combat := o.UnlockedAbilities(tmpl, AbilityCombat)
	if len(combat) != 1 || combat[0].ID != "bite" {
		t.Fatalf("stage 1 combat abilities = %v, want [bite]", combat)
	}

	o.Evolution = 2
	combat = o.UnlockedAbilities(tmpl, AbilityCombat)
	if len(combat) != 2 {
		t.Fatalf("stage 2 should unlock flame, got %d abilities", len(combat))
	}

	passive := o.UnlockedAbilities(tmpl, AbilityPassive)
	if len(passive) != 1 || passive[0].ID != "warmth" {
		t.Fatalf("passive abilities = %v, want [warmth]", passive)
	}
}

type pickFirst struct{}

func (pickFirst) Float64() float64 { return 0 }
func (pickFirst) Intn(n int) int   { return 0 }

func TestFighterCooldowns(t *testing.T) {
	tmpl := testTemplate()
	o := NewOwned("p1", 1, tmpl.ID, time.Now())
	o.Evolution = 2 // unlock flame (cooldown 2)

	f := NewFighter(o, tmpl)
	rng := pickFirst{}

	// Abilities are sorted by ID in the registry; the test template lists
	// bite before flame, so index 0 is bite every time it is ready.
	act := f.Act(rng)
	if act == nil || act.Damage != 5 {
		t.Fatalf("first act = %+v, want bite for 5", act)
	}

	// Bite has no cooldown and stays available.
	f.TickCooldowns()
	act = f.Act(rng)
	if act == nil || act.Damage != 5 {
		t.Fatalf("second act = %+v, want bite again", act)
	}
}

func TestFighterExhaustsToNil(t *testing.T) {
	tmpl := &Template{
		ID: "slow", Name: "Slow", MaxEvolution: 1,
		Abilities: []Ability{
			{ID: "slam", Name: "Slam", Type: AbilityCombat, Damage: 9, Cooldown: 3, RequiredEvolution: 1},
		},
	}
	o := NewOwned("p1", 1, tmpl.ID, time.Now())
	f := NewFighter(o, tmpl)

	if act := f.Act(pickFirst{}); act == nil || act.Damage != 9 {
		t.Fatalf("first act = %+v, want slam", act)
	}
	if act := f.Act(pickFirst{}); act != nil {
		t.Fatalf("slam on cooldown, act = %+v, want nil", act)
	}
	f.TickCooldowns()
	f.TickCooldowns()
	f.TickCooldowns()
	if act := f.Act(pickFirst{}); act == nil {
		t.Fatal("slam should be ready after three ticks")
	}
}

func TestApplyAura(t *testing.T) {
	tmpl := testTemplate()
	o := NewOwned("p1", 1, tmpl.ID, time.Now())

	base := stats.EffectiveStats{Damage: 20, Defense: 15, Health: 100}
	got := o.ApplyAura(tmpl, base)

	// Pet stats at level 1 stage 1: damage 10, defense 8, health 50.
	// Aura grants 20% of each, plus warmth's +10 health.
	if got.Damage != 22 {
		t.Errorf("aura damage = %d, want 22", got.Damage)
	}
	if math.Abs(got.Defense-16.6) > 1e-9 {
		t.Errorf("aura defense = %v, want 16.6", got.Defense)
	}
	if got.Health != 120 {
		t.Errorf("aura health = %d, want 120", got.Health)
	}

	// Input untouched.
	if base.Damage != 20 || base.Health != 100 {
		t.Error("ApplyAura must not mutate its input")
	}
}

func TestAddExperienceLevelsPet(t *testing.T) {
	o := NewOwned("p1", 1, "ember_drake", time.Now())
	if leveled := o.AddExperience(50); leveled {
		t.Error("50 exp should not level a fresh pet")
	}
	if leveled := o.AddExperience(50); !leveled {
		t.Error("reaching 100 total exp should level the pet")
	}
	if o.Level != 2 || o.Experience != 100 {
		t.Errorf("pet at level %d exp %d, want level 2 exp 100", o.Level, o.Experience)
	}
}
