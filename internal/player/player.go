// Package player holds the persistent player snapshot and the pure
// state transitions on it: experience grants, equipment, resource
// spending and time-based regeneration.
package player

import (
	"fmt"
	"time"

	"github.com/batonquest/server/internal/crafting"
	"github.com/batonquest/server/internal/items"
	"github.com/batonquest/server/internal/leveling"
	"github.com/batonquest/server/internal/pvp"
	"github.com/batonquest/server/internal/stats"
)

// Starting resources for a fresh character.
const (
	StartingHealth = 100
	StartingEnergy = 100
	StartingBatons = 100
)

// Default regeneration rates per minute. Config may override them.
const (
	DefaultEnergyRegenPerMin = 1.0
	DefaultHealthRegenPerMin = 2.0
)

// Player is one character's full persistent state. All mutation happens
// through methods so invariants (clamps, gates) hold everywhere.
type Player struct {
	ID        int64
	Name      string
	CreatedAt time.Time

	Level      int
	Experience int
	Attributes stats.Attributes

	Health    int
	MaxHealth int
	Energy    int
	MaxEnergy int
	Batons    int

	Inventory map[string]int                    // item ID -> quantity
	Equipment map[items.EquipmentSlot]string    // slot -> item ID
	Buffs     []stats.Buff

	Crafting crafting.Skill
	Arena    *pvp.Standing

	ActivePetID string // empty when no pet is active

	LastRegen time.Time
}

// New creates a level-1 character.
func New(id int64, name string, now time.Time) *Player {
	return &Player{
		ID:         id,
		Name:       name,
		CreatedAt:  now,
		Level:      1,
		Attributes: stats.NewDefaultAttributes(),
		Health:     StartingHealth,
		MaxHealth:  StartingHealth,
		Energy:     StartingEnergy,
		MaxEnergy:  StartingEnergy,
		Batons:     StartingBatons,
		Inventory:  make(map[string]int),
		Equipment:  make(map[items.EquipmentSlot]string),
		Crafting:   crafting.NewSkill(),
		Arena:      pvp.NewStanding(id),
		LastRegen:  now,
	}
}

// AddExperience grants experience and applies per-level attribute and
// resource gains. New health and energy capacity arrives filled.
func (p *Player) AddExperience(amount int) int {
	r := leveling.AddExperience(p.Level, p.Experience, amount)
	p.Level = r.Level
	p.Experience = r.Experience

	if r.LevelsUp > 0 {
		p.Attributes.Strength += leveling.AttributePerLevel * r.LevelsUp
		p.Attributes.Agility += leveling.AttributePerLevel * r.LevelsUp
		p.Attributes.Intelligence += leveling.AttributePerLevel * r.LevelsUp
		p.Attributes.Vitality += leveling.AttributePerLevel * r.LevelsUp
		p.MaxHealth += leveling.HealthPerLevel * r.LevelsUp
		p.MaxEnergy += leveling.EnergyPerLevel * r.LevelsUp
		p.Health = p.MaxHealth
		p.Energy = p.MaxEnergy
	}
	return r.LevelsUp
}

// SpendEnergy debits energy, rejecting overdrafts.
func (p *Player) SpendEnergy(amount int) error {
	if p.Energy < amount {
		return fmt.Errorf("need %d energy, have %d", amount, p.Energy)
	}
	p.Energy -= amount
	return nil
}

// SpendBatons debits currency, rejecting overdrafts.
func (p *Player) SpendBatons(amount int) error {
	if p.Batons < amount {
		return fmt.Errorf("need %d batons, have %d", amount, p.Batons)
	}
	p.Batons -= amount
	return nil
}

// AddItem puts quantity of an item into the inventory.
func (p *Player) AddItem(itemID string, quantity int) {
	if quantity <= 0 {
		return
	}
	p.Inventory[itemID] += quantity
}

// RemoveItem takes quantity of an item out of the inventory.
func (p *Player) RemoveItem(itemID string, quantity int) error {
	if p.Inventory[itemID] < quantity {
		return fmt.Errorf("need %d of %s, have %d", quantity, itemID, p.Inventory[itemID])
	}
	p.Inventory[itemID] -= quantity
	if p.Inventory[itemID] == 0 {
		delete(p.Inventory, itemID)
	}
	return nil
}

// Equip moves an item from the inventory into its slot, returning any
// previously equipped item to the inventory.
func (p *Player) Equip(item *items.Item) error {
	slot := item.Type.Slot()
	if slot == items.SlotNone {
		return fmt.Errorf("%s cannot be equipped", item.Name)
	}
	if p.Level < item.Requires.Level {
		return fmt.Errorf("%s requires level %d", item.Name, item.Requires.Level)
	}
	if p.Attributes.Strength < item.Requires.Strength ||
		p.Attributes.Agility < item.Requires.Agility ||
		p.Attributes.Intelligence < item.Requires.Intelligence {
		return fmt.Errorf("%s has unmet attribute requirements", item.Name)
	}
	if err := p.RemoveItem(item.ID, 1); err != nil {
		return err
	}

	if prev, ok := p.Equipment[slot]; ok {
		p.AddItem(prev, 1)
	}
	p.Equipment[slot] = item.ID
	return nil
}

// Unequip clears a slot, returning the item to the inventory.
func (p *Player) Unequip(slot items.EquipmentSlot) error {
	itemID, ok := p.Equipment[slot]
	if !ok {
		return fmt.Errorf("nothing equipped in %s", slot)
	}
	delete(p.Equipment, slot)
	p.AddItem(itemID, 1)
	return nil
}

// EquippedItems resolves equipped item IDs against a lookup, in stable
// slot order. Unresolvable IDs are skipped.
func (p *Player) EquippedItems(lookup func(string) (*items.Item, bool)) []*items.Item {
	var out []*items.Item
	for _, slot := range items.AllSlots {
		id, ok := p.Equipment[slot]
		if !ok {
			continue
		}
		if item, ok := lookup(id); ok {
			out = append(out, item)
		}
	}
	return out
}

// Heal restores health, clamped at max.
func (p *Player) Heal(amount int) {
	p.Health = min(p.MaxHealth, p.Health+amount)
}

// RestoreEnergy restores energy, clamped at max.
func (p *Player) RestoreEnergy(amount int) {
	p.Energy = min(p.MaxEnergy, p.Energy+amount)
}

// Regenerate applies time-based health and energy recovery since the
// last regen tick. Rates are points per minute. Fractional remainders
// carry via the timestamp: the tick only advances by whole points
// earned.
func (p *Player) Regenerate(now time.Time, healthPerMin, energyPerMin float64) {
	elapsed := now.Sub(p.LastRegen)
	if elapsed <= 0 {
		return
	}
	minutes := elapsed.Minutes()

	healthGain := int(minutes * healthPerMin)
	energyGain := int(minutes * energyPerMin)
	if healthGain == 0 && energyGain == 0 {
		return
	}

	p.Heal(healthGain)
	p.RestoreEnergy(energyGain)
	p.LastRegen = now
}

// PruneBuffs drops expired buffs.
func (p *Player) PruneBuffs(now time.Time) {
	active := p.Buffs[:0]
	for _, b := range p.Buffs {
		if b.ActiveAt(now) {
			active = append(active, b)
		}
	}
	p.Buffs = active
}
