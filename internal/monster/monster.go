// Package monster defines monster templates and their content registry.
package monster

import (
	"github.com/batonquest/server/internal/combat"
	"github.com/batonquest/server/internal/items"
)

// Monster is an immutable monster template. Battles run on a copy of its
// stat block, never on the template itself.
type Monster struct {
	ID               string
	Name             string
	Description      string
	Level            int
	Health           int
	Damage           int
	Defense          int
	ExperienceReward int
	BatonRewardMin   int
	BatonRewardMax   int
	DropTable        items.DropTable
	Location         string
	IsBoss           bool
	RequiredLevel    int
}

// StatBlock returns a fresh combat stat block for one encounter.
// Monsters have no crit or dodge; their threat is raw damage and defense.
func (m *Monster) StatBlock() combat.StatBlock {
	return combat.StatBlock{
		Name:      m.Name,
		Health:    m.Health,
		MaxHealth: m.Health,
		Damage:    m.Damage,
		Defense:   float64(m.Defense),
	}
}
