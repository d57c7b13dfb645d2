package items

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ItemDefinition represents an item definition from the YAML file
type ItemDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Rarity      string `yaml:"rarity,omitempty"`
	Price       int    `yaml:"price"`
	SellPrice   int    `yaml:"sell_price,omitempty"`
	Stackable   bool   `yaml:"stackable,omitempty"`
	MaxStack    int    `yaml:"max_stack,omitempty"`
	// Bonus fields (optional, equippable items only)
	Strength     int `yaml:"strength,omitempty"`
	Agility      int `yaml:"agility,omitempty"`
	Intelligence int `yaml:"intelligence,omitempty"`
	Vitality     int `yaml:"vitality,omitempty"`
	Health       int `yaml:"health,omitempty"`
	Energy       int `yaml:"energy,omitempty"`
	Damage       int `yaml:"damage,omitempty"`
	Defense      int `yaml:"defense,omitempty"`
	// Requirement fields (optional)
	LevelRequired        int `yaml:"level_required,omitempty"`
	StrengthRequired     int `yaml:"strength_required,omitempty"`
	AgilityRequired      int `yaml:"agility_required,omitempty"`
	IntelligenceRequired int `yaml:"intelligence_required,omitempty"`
	// Consumable fields (optional)
	HealAmount   int `yaml:"heal_amount,omitempty"`
	EnergyAmount int `yaml:"energy_amount,omitempty"`
}

// Registry holds every loaded item template keyed by ID.
type Registry struct {
	items map[string]*Item
}

// registryFile represents the structure of the items.yaml file
type registryFile struct {
	Items map[string]ItemDefinition `yaml:"items"`
}

// NewRegistry creates an empty item registry
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Item)}
}

// LoadFromYAML loads item definitions from a YAML file
func (r *Registry) LoadFromYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read items file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse items YAML: %w", err)
	}

	for id, def := range file.Items {
		r.items[id] = createItemFromDefinition(id, def)
	}

	return nil
}

// Add registers an item template directly (used by tests and seeds)
func (r *Registry) Add(item *Item) {
	r.items[item.ID] = item
}

// Get returns an item template by ID
func (r *Registry) Get(id string) (*Item, bool) {
	item, ok := r.items[id]
	return item, ok
}

// Count returns the number of loaded templates
func (r *Registry) Count() int {
	return len(r.items)
}

// StringToItemType converts a string to an ItemType
func StringToItemType(typeStr string) ItemType {
	switch typeStr {
	case "weapon":
		return Weapon
	case "armor":
		return Armor
	case "helmet":
		return Helmet
	case "boots":
		return Boots
	case "amulet":
		return Amulet
	case "ring":
		return Ring
	case "consumable":
		return Consumable
	case "material":
		return Material
	default:
		return Misc
	}
}

// StringToRarity converts a string to a Rarity
func StringToRarity(rarityStr string) Rarity {
	switch rarityStr {
	case "uncommon":
		return Uncommon
	case "rare":
		return Rare
	case "epic":
		return Epic
	case "legendary":
		return Legendary
	case "mythical":
		return Mythical
	default:
		return Common
	}
}

// createItemFromDefinition creates an Item from its YAML definition.
// The id parameter is the YAML key for this item (e.g., "rusty_baton").
func createItemFromDefinition(id string, def ItemDefinition) *Item {
	item := NewItem(id, def.Name, def.Description, StringToItemType(def.Type), StringToRarity(def.Rarity), def.Price)

	if def.SellPrice > 0 {
		item.SellPrice = def.SellPrice
	}
	item.Stackable = def.Stackable
	if def.MaxStack > 0 {
		item.MaxStack = def.MaxStack
	}

	item.Bonuses = Bonuses{
		Strength:     def.Strength,
		Agility:      def.Agility,
		Intelligence: def.Intelligence,
		Vitality:     def.Vitality,
		Health:       def.Health,
		Energy:       def.Energy,
		Damage:       def.Damage,
		Defense:      def.Defense,
	}
	item.Requires = Requirements{
		Level:        def.LevelRequired,
		Strength:     def.StrengthRequired,
		Agility:      def.AgilityRequired,
		Intelligence: def.IntelligenceRequired,
	}

	item.HealAmount = def.HealAmount
	item.EnergyAmount = def.EnergyAmount

	return item
}
