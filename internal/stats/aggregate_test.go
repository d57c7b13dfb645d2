package stats

import (
	"testing"
	"time"

	"github.com/batonquest/server/internal/items"
)

func baseTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestAggregateDerivedFormulas(t *testing.T) {
	base := Attributes{Strength: 10, Agility: 10, Intelligence: 10, Vitality: 10}
	e := Aggregate(base, 100, 100, nil, nil, baseTime())

	if e.Damage != 20 {
		t.Errorf("Damage = %d, want 20", e.Damage)
	}
	if e.Defense != 15.0 {
		t.Errorf("Defense = %v, want 15", e.Defense)
	}
	if e.CriticalChance != 5.0 {
		t.Errorf("CriticalChance = %v, want 5", e.CriticalChance)
	}
	if e.DodgeChance != 3.0 {
		t.Errorf("DodgeChance = %v, want 3", e.DodgeChance)
	}
	if e.Health != 100 || e.Energy != 100 {
		t.Errorf("Health/Energy = %d/%d, want 100/100", e.Health, e.Energy)
	}
}

func TestAggregateEquipmentBonuses(t *testing.T) {
	base := Attributes{Strength: 10, Agility: 10, Intelligence: 10, Vitality: 10}

	sword := items.NewItem("iron_baton", "Iron Baton", "A sturdy baton.", items.Weapon, items.Uncommon, 100)
	sword.Bonuses = items.Bonuses{Strength: 5, Damage: 10}
	armor := items.NewItem("leather_vest", "Leather Vest", "Creaky but warm.", items.Armor, items.Common, 50)
	armor.Bonuses = items.Bonuses{Vitality: 3, Defense: 4, Health: 20}

	e := Aggregate(base, 100, 100, []*items.Item{sword, armor, nil}, nil, baseTime())

	if e.Strength != 15 {
		t.Errorf("Strength = %d, want 15", e.Strength)
	}
	if e.Vitality != 13 {
		t.Errorf("Vitality = %d, want 13", e.Vitality)
	}
	// Derived stats are computed from base attributes, then item bonuses
	// are added on top: damage 10*2+10, defense 10*1.5+4.
	if e.Damage != 30 {
		t.Errorf("Damage = %d, want 30", e.Damage)
	}
	if e.Defense != 19.0 {
		t.Errorf("Defense = %v, want 19", e.Defense)
	}
	if e.Health != 120 {
		t.Errorf("Health = %d, want 120", e.Health)
	}
}

func TestAggregateBuffExpiry(t *testing.T) {
	now := baseTime()
	base := Attributes{Strength: 10, Agility: 10, Intelligence: 10, Vitality: 10}

	buffs := []Buff{
		{
			Name:      "warcry",
			Bonuses:   map[string]int{"damage": 15},
			StartedAt: now.Add(-time.Minute),
			ExpiresAt: now.Add(time.Minute),
		},
		{
			Name:      "stale",
			Bonuses:   map[string]int{"damage": 100},
			StartedAt: now.Add(-2 * time.Hour),
			ExpiresAt: now.Add(-time.Hour),
		},
	}

	e := Aggregate(base, 100, 100, nil, buffs, now)
	if e.Damage != 35 {
		t.Errorf("Damage = %d, want 35 (active buff only)", e.Damage)
	}
}

func TestAggregateIgnoresUnknownBuffStats(t *testing.T) {
	now := baseTime()
	base := NewDefaultAttributes()

	buffs := []Buff{{
		Name:      "mystery",
		Bonuses:   map[string]int{"luck": 50, "agility": 2},
		StartedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}}

	e := Aggregate(base, 100, 100, nil, buffs, now)
	if e.Agility != 12 {
		t.Errorf("Agility = %d, want 12", e.Agility)
	}
}

func TestAggregateIsPure(t *testing.T) {
	now := baseTime()
	base := NewDefaultAttributes()
	item := items.NewItem("ring", "Plain Ring", "", items.Ring, items.Common, 10)
	item.Bonuses = items.Bonuses{Agility: 1}
	equipped := []*items.Item{item}
	buffs := []Buff{{Name: "focus", Bonuses: map[string]int{"intelligence": 3}, ExpiresAt: now.Add(time.Hour)}}

	first := Aggregate(base, 100, 100, equipped, buffs, now)
	second := Aggregate(base, 100, 100, equipped, buffs, now)
	if first != second {
		t.Errorf("repeated aggregation differs: %+v vs %+v", first, second)
	}
}

func TestParseStatNameRoundTrip(t *testing.T) {
	names := []StatName{
		StatStrength, StatAgility, StatIntelligence, StatVitality,
		StatHealth, StatEnergy, StatDamage, StatDefense,
		StatCriticalChance, StatDodgeChance,
	}
	for _, n := range names {
		if got := ParseStatName(n.String()); got != n {
			t.Errorf("ParseStatName(%q) = %v, want %v", n.String(), got, n)
		}
	}
	if got := ParseStatName("luck"); got != StatUnknown {
		t.Errorf("ParseStatName(luck) = %v, want StatUnknown", got)
	}
}
