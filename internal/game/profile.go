package game

import (
	"fmt"

	"github.com/batonquest/server/internal/items"
	"github.com/batonquest/server/internal/leveling"
	"github.com/batonquest/server/internal/pet"
	"github.com/batonquest/server/internal/pvp"
	"github.com/batonquest/server/internal/stats"
)

// Profile is the read-only snapshot a client sees of its character.
type Profile struct {
	ID          int64
	Name        string
	Level       int
	Experience  int
	NextLevelAt int
	Health      int
	MaxHealth   int
	Energy      int
	MaxEnergy   int
	Batons      int

	Attributes stats.Attributes
	Effective  stats.EffectiveStats

	CraftingLevel int
	Rating        int
	Rank          string
	Wins          int
	Losses        int

	Points int
	Titles []string

	Inventory map[string]int
	Equipment map[string]string

	ActivePet *PetSummary
}

// PetSummary is the client view of one owned pet.
type PetSummary struct {
	ID        string
	Name      string
	Species   string
	Level     int
	Happiness int
	Hunger    int
	Evolution int
	Active    bool
}

// Profile assembles the full character sheet, including effective
// combat stats with the active pet's aura.
func (e *Engine) Profile(playerID int64) (*Profile, error) {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return nil, err
	}
	o, t, err := e.activePet(p)
	if err != nil {
		return nil, err
	}

	prog, err := e.store.GetAchievementProgress(playerID)
	if err != nil {
		return nil, fmt.Errorf("load achievements for %d: %w", playerID, err)
	}

	equipment := make(map[string]string, len(p.Equipment))
	for slot, itemID := range p.Equipment {
		equipment[slot.String()] = itemID
	}

	prof := &Profile{
		ID:            p.ID,
		Name:          p.Name,
		Level:         p.Level,
		Experience:    p.Experience,
		NextLevelAt:   leveling.XPForNextLevel(p.Level),
		Health:        p.Health,
		MaxHealth:     p.MaxHealth,
		Energy:        p.Energy,
		MaxEnergy:     p.MaxEnergy,
		Batons:        p.Batons,
		Attributes:    p.Attributes,
		Effective:     e.effectiveStats(p, o, t),
		CraftingLevel: p.Crafting.Level,
		Rating:        p.Arena.Rating,
		Rank:          pvp.RankFor(p.Arena.Rating).String(),
		Wins:          p.Arena.Wins,
		Losses:        p.Arena.Losses,
		Points:        prog.Points,
		Titles:        prog.Titles,
		Inventory:     p.Inventory,
		Equipment:     equipment,
	}
	if o != nil {
		summary := petSummary(o, t)
		prof.ActivePet = &summary
	}
	return prof, nil
}

// ListPets returns every pet the player owns, status decay applied.
func (e *Engine) ListPets(playerID int64) ([]PetSummary, error) {
	pets, err := e.store.GetPets(playerID)
	if err != nil {
		return nil, fmt.Errorf("load pets for %d: %w", playerID, err)
	}

	now := e.clock.Now()
	out := make([]PetSummary, 0, len(pets))
	for _, o := range pets {
		o.UpdateStatus(now)
		t, ok := e.content.Pets.Get(o.TemplateID)
		if !ok {
			return nil, fmt.Errorf("pet %s references unknown species %s", o.ID, o.TemplateID)
		}
		out = append(out, petSummary(o, t))
	}
	return out, nil
}

func petSummary(o *pet.Owned, t *pet.Template) PetSummary {
	return PetSummary{
		ID:        o.ID,
		Name:      o.DisplayName(t),
		Species:   t.Name,
		Level:     o.Level,
		Happiness: o.Happiness,
		Hunger:    o.Hunger,
		Evolution: o.Evolution,
		Active:    o.Active,
	}
}

// EquipItem moves an inventory item into its equipment slot.
func (e *Engine) EquipItem(playerID int64, itemID string) error {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return err
	}

	item, ok := e.content.Items.Get(itemID)
	if !ok {
		return Validationf("unknown item %q", itemID)
	}
	if err := p.Equip(item); err != nil {
		return Validationf("%v", err)
	}
	return e.store.SavePlayer(p)
}

// UnequipItem clears a named slot back into the inventory.
func (e *Engine) UnequipItem(playerID int64, slotName string) error {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return err
	}

	slot, ok := items.ParseSlot(slotName)
	if !ok {
		return Validationf("unknown equipment slot %q", slotName)
	}
	if err := p.Unequip(slot); err != nil {
		return Validationf("%v", err)
	}
	return e.store.SavePlayer(p)
}
