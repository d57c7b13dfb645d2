package pet

import (
	"github.com/batonquest/server/internal/combat"
	"github.com/batonquest/server/internal/stats"
)

// Fighter adapts an active pet to the combat simulator's companion hook.
// It tracks per-battle ability cooldowns; a fresh Fighter is built for
// each encounter.
type Fighter struct {
	owned     *Owned
	template  *Template
	name      string
	abilities []Ability
	cooldowns map[string]int
}

// NewFighter prepares a pet for one battle. Only evolution-unlocked
// combat abilities participate.
func NewFighter(o *Owned, t *Template) *Fighter {
	return &Fighter{
		owned:     o,
		template:  t,
		name:      o.DisplayName(t),
		abilities: o.UnlockedAbilities(t, AbilityCombat),
		cooldowns: make(map[string]int),
	}
}

// Act picks uniformly at random among off-cooldown abilities and puts the
// chosen one on cooldown. Returns nil when nothing is available.
func (f *Fighter) Act(rng combat.RNG) *combat.CompanionAction {
	var ready []Ability
	for _, a := range f.abilities {
		if f.cooldowns[a.ID] <= 0 {
			ready = append(ready, a)
		}
	}
	if len(ready) == 0 {
		return nil
	}

	chosen := ready[rng.Intn(len(ready))]
	f.cooldowns[chosen.ID] = chosen.Cooldown

	return &combat.CompanionAction{
		Name:   f.name + ": " + chosen.Name,
		Damage: chosen.Damage,
		Heal:   chosen.Heal,
	}
}

// TickCooldowns decrements every ability cooldown by one round.
func (f *Fighter) TickCooldowns() {
	for id, remaining := range f.cooldowns {
		if remaining > 0 {
			f.cooldowns[id] = remaining - 1
		}
	}
}

// ApplyAura adds the pet's passive contribution onto the owner's
// effective stats: a fixed share of the pet's own stats, plus any flat
// bonuses from unlocked passive abilities.
func (o *Owned) ApplyAura(t *Template, e stats.EffectiveStats) stats.EffectiveStats {
	s := o.Stats(t)
	e.Damage += int(float64(s.Damage) * PassiveAuraFactor)
	e.Defense += float64(s.Defense) * PassiveAuraFactor
	e.Health += int(float64(s.Health) * PassiveAuraFactor)

	// Passive abilities apply like buffs: by stat name, unknown names
	// ignored.
	for _, a := range o.UnlockedAbilities(t, AbilityPassive) {
		for name, delta := range a.StatBonuses {
			e.Add(stats.ParseStatName(name), delta)
		}
	}

	return e
}
