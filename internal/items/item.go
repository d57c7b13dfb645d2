// Package items defines item templates, equipment slots and drop tables.
package items

import "fmt"

// EquipmentSlot represents where an item can be equipped.
// A character holds at most one item per slot.
type EquipmentSlot int

const (
	SlotNone EquipmentSlot = iota
	SlotWeapon
	SlotArmor
	SlotHelmet
	SlotBoots
	SlotAmulet
	SlotRing
)

// AllSlots lists every real equipment slot in display order.
var AllSlots = []EquipmentSlot{SlotWeapon, SlotArmor, SlotHelmet, SlotBoots, SlotAmulet, SlotRing}

// ParseSlot maps a slot name back to its EquipmentSlot. The second
// return is false for unknown names, "none" included: only real slots
// parse.
func ParseSlot(name string) (EquipmentSlot, bool) {
	for _, slot := range AllSlots {
		if slot.String() == name {
			return slot, true
		}
	}
	return SlotNone, false
}

// String returns the string representation of an EquipmentSlot
func (s EquipmentSlot) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotArmor:
		return "armor"
	case SlotHelmet:
		return "helmet"
	case SlotBoots:
		return "boots"
	case SlotAmulet:
		return "amulet"
	case SlotRing:
		return "ring"
	default:
		return "none"
	}
}

// Bonuses holds the additive stat bonuses an item grants while equipped.
type Bonuses struct {
	Strength     int
	Agility      int
	Intelligence int
	Vitality     int
	Health       int
	Energy       int
	Damage       int
	Defense      int
}

// Requirements gates who can equip an item.
type Requirements struct {
	Level        int
	Strength     int
	Agility      int
	Intelligence int
}

// Item represents an in-game item template. Ownership and quantity live
// in the entity store; the template itself is immutable game content.
type Item struct {
	ID          string // Unique identifier from YAML key (e.g., "rusty_baton")
	Name        string
	Description string
	Type        ItemType
	Rarity      Rarity
	Price       int // Baton value when bought
	SellPrice   int // Baton value when sold
	Stackable   bool
	MaxStack    int
	Bonuses     Bonuses
	Requires    Requirements
	// Consumable effects (optional)
	HealAmount   int
	EnergyAmount int
}

// NewItem creates a new item template with the given properties
func NewItem(id, name, description string, itemType ItemType, rarity Rarity, price int) *Item {
	return &Item{
		ID:          id,
		Name:        name,
		Description: description,
		Type:        itemType,
		Rarity:      rarity,
		Price:       price,
		SellPrice:   price / 2,
		MaxStack:    1,
	}
}

// IsEquippable returns true if the item occupies an equipment slot
func (i *Item) IsEquippable() bool {
	return i.Type.IsEquippable()
}

// Slot returns the equipment slot this item occupies, or SlotNone
func (i *Item) Slot() EquipmentSlot {
	return i.Type.Slot()
}

// String returns a formatted string representation of the item
func (i *Item) String() string {
	return fmt.Sprintf("%s (%s, %s, %d batons)", i.Name, i.Type, i.Rarity, i.Price)
}

// DropTable maps item IDs to independent drop probabilities in [0,1].
// Each entry is rolled separately, so a single kill can drop several items.
type DropTable map[string]float64

// Validate rejects probabilities outside [0,1].
func (d DropTable) Validate() error {
	for id, chance := range d {
		if chance < 0 || chance > 1 {
			return fmt.Errorf("drop chance for %q out of range: %v", id, chance)
		}
	}
	return nil
}
