package stats

import (
	"time"

	"github.com/batonquest/server/internal/items"
)

// Derived stat formulas. Damage and defense grow with strength and
// vitality; crit and dodge with agility.
const (
	DamagePerStrength  = 2
	DefensePerVitality = 1.5
	CritPerAgility     = 0.5 // percent per point
	DodgePerAgility    = 0.3 // percent per point
)

// Aggregate resolves a combatant's effective stat block from base
// attributes, equipped items and active buffs. Equipment bonuses are
// summed into base attributes and derived totals first; buff bonuses are
// added afterwards by stat name. A buff counts only while now precedes
// its expiry. The function is pure: it performs no I/O and never mutates
// its inputs.
func Aggregate(base Attributes, maxHealth, maxEnergy int, equipped []*items.Item, buffs []Buff, now time.Time) EffectiveStats {
	e := EffectiveStats{
		Strength:     base.Strength,
		Agility:      base.Agility,
		Intelligence: base.Intelligence,
		Vitality:     base.Vitality,
		Health:       maxHealth,
		Energy:       maxEnergy,
	}

	e.Damage = e.Strength * DamagePerStrength
	e.Defense = float64(e.Vitality) * DefensePerVitality
	e.CriticalChance = float64(e.Agility) * CritPerAgility
	e.DodgeChance = float64(e.Agility) * DodgePerAgility

	for _, item := range equipped {
		if item == nil {
			continue
		}
		b := item.Bonuses
		e.Strength += b.Strength
		e.Agility += b.Agility
		e.Intelligence += b.Intelligence
		e.Vitality += b.Vitality
		e.Health += b.Health
		e.Energy += b.Energy
		e.Damage += b.Damage
		e.Defense += float64(b.Defense)
	}

	for _, buff := range buffs {
		if !buff.ActiveAt(now) {
			continue
		}
		for name, delta := range buff.Bonuses {
			e.Add(ParseStatName(name), delta)
		}
	}

	return e
}
