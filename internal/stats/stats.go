// Package stats aggregates base attributes, equipment bonuses and
// time-bounded buffs into the effective stat block combat runs on.
package stats

// StatName identifies a stat a buff or bonus can modify. It is a closed
// enumeration: values outside it are ignored during aggregation.
type StatName int

const (
	StatUnknown StatName = iota
	StatStrength
	StatAgility
	StatIntelligence
	StatVitality
	StatHealth
	StatEnergy
	StatDamage
	StatDefense
	StatCriticalChance
	StatDodgeChance
)

// String returns the string representation of a StatName
func (s StatName) String() string {
	switch s {
	case StatStrength:
		return "strength"
	case StatAgility:
		return "agility"
	case StatIntelligence:
		return "intelligence"
	case StatVitality:
		return "vitality"
	case StatHealth:
		return "health"
	case StatEnergy:
		return "energy"
	case StatDamage:
		return "damage"
	case StatDefense:
		return "defense"
	case StatCriticalChance:
		return "critical_chance"
	case StatDodgeChance:
		return "dodge_chance"
	default:
		return "unknown"
	}
}

// ParseStatName converts a string to a StatName. Unknown names map to
// StatUnknown, which aggregation silently skips.
func ParseStatName(name string) StatName {
	switch name {
	case "strength":
		return StatStrength
	case "agility":
		return StatAgility
	case "intelligence":
		return StatIntelligence
	case "vitality":
		return StatVitality
	case "health":
		return StatHealth
	case "energy":
		return StatEnergy
	case "damage":
		return StatDamage
	case "defense":
		return StatDefense
	case "critical_chance":
		return StatCriticalChance
	case "dodge_chance":
		return StatDodgeChance
	default:
		return StatUnknown
	}
}

// Attributes holds the four stored base attributes of a combatant.
type Attributes struct {
	Strength     int
	Agility      int
	Intelligence int
	Vitality     int
}

// NewDefaultAttributes returns the starting attributes for new players.
func NewDefaultAttributes() Attributes {
	return Attributes{
		Strength:     10,
		Agility:      10,
		Intelligence: 10,
		Vitality:     10,
	}
}

// EffectiveStats is the fully resolved stat block after equipment and
// buffs. Derived values are computed here and never stored.
type EffectiveStats struct {
	Strength       int
	Agility        int
	Intelligence   int
	Vitality       int
	Health         int
	Energy         int
	Damage         int
	Defense        float64
	CriticalChance float64 // percent
	DodgeChance    float64 // percent
}

// Add applies a named delta to the matching field. Unknown stats are a
// no-op so stale buff rows can never fail aggregation.
func (e *EffectiveStats) Add(stat StatName, delta int) {
	switch stat {
	case StatStrength:
		e.Strength += delta
	case StatAgility:
		e.Agility += delta
	case StatIntelligence:
		e.Intelligence += delta
	case StatVitality:
		e.Vitality += delta
	case StatHealth:
		e.Health += delta
	case StatEnergy:
		e.Energy += delta
	case StatDamage:
		e.Damage += delta
	case StatDefense:
		e.Defense += float64(delta)
	case StatCriticalChance:
		e.CriticalChance += float64(delta)
	case StatDodgeChance:
		e.DodgeChance += float64(delta)
	}
}
