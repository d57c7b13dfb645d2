package items

// ItemType represents the category of an item
type ItemType int

const (
	Misc ItemType = iota
	Weapon
	Armor
	Helmet
	Boots
	Amulet
	Ring
	Consumable
	Material
)

// String returns the string representation of an ItemType
func (t ItemType) String() string {
	switch t {
	case Weapon:
		return "weapon"
	case Armor:
		return "armor"
	case Helmet:
		return "helmet"
	case Boots:
		return "boots"
	case Amulet:
		return "amulet"
	case Ring:
		return "ring"
	case Consumable:
		return "consumable"
	case Material:
		return "material"
	case Misc:
		return "misc"
	default:
		return "unknown"
	}
}

// IsEquippable returns true if the item type occupies an equipment slot
func (t ItemType) IsEquippable() bool {
	switch t {
	case Weapon, Armor, Helmet, Boots, Amulet, Ring:
		return true
	default:
		return false
	}
}

// Slot returns the equipment slot an item type occupies, or SlotNone
func (t ItemType) Slot() EquipmentSlot {
	switch t {
	case Weapon:
		return SlotWeapon
	case Armor:
		return SlotArmor
	case Helmet:
		return SlotHelmet
	case Boots:
		return SlotBoots
	case Amulet:
		return SlotAmulet
	case Ring:
		return SlotRing
	default:
		return SlotNone
	}
}

// Rarity represents how rare an item is, driving shop price tiers
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
	Mythical
)

// String returns the string representation of a Rarity
func (r Rarity) String() string {
	switch r {
	case Uncommon:
		return "uncommon"
	case Rare:
		return "rare"
	case Epic:
		return "epic"
	case Legendary:
		return "legendary"
	case Mythical:
		return "mythical"
	default:
		return "common"
	}
}
