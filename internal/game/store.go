package game

import (
	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/dungeon"
	"github.com/batonquest/server/internal/pet"
	"github.com/batonquest/server/internal/player"
	"github.com/batonquest/server/internal/quest"
)

// Store is the persistence boundary the engine works against. Loads
// return private copies the engine may mutate freely; nothing persists
// until the matching Save. Operations that reject early therefore leave
// stored state untouched.
type Store interface {
	GetPlayer(id int64) (*player.Player, error)
	GetPlayerByName(name string) (*player.Player, error)
	SavePlayer(p *player.Player) error

	GetPet(id string) (*pet.Owned, error)
	GetPets(playerID int64) ([]*pet.Owned, error)
	SavePet(o *pet.Owned) error

	GetActiveRun(playerID int64) (*dungeon.Run, error) // nil when none
	SaveRun(r *dungeon.Run) error
	// GetDungeonProgress and GetDungeonRecord return zero-valued rows,
	// not errors, when the player or dungeon has no history yet.
	GetDungeonProgress(playerID int64, dungeonID string) (*dungeon.Progress, error)
	SaveDungeonProgress(p *dungeon.Progress) error
	GetDungeonRecord(dungeonID string) (*dungeon.Record, error)
	SaveDungeonRecord(r *dungeon.Record) error

	// GetAchievementProgress returns fresh progress when none is stored.
	GetAchievementProgress(playerID int64) (*achievement.Progress, error)
	SaveAchievementProgress(p *achievement.Progress) error

	GetQuestBoard(playerID int64) (*quest.Board, error) // nil when none
	SaveQuestBoard(b *quest.Board) error
}
