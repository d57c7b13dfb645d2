package game

import (
	"fmt"

	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/dungeon"
	"github.com/batonquest/server/internal/items"
	"github.com/batonquest/server/internal/pet"
	"github.com/batonquest/server/internal/player"
	"github.com/batonquest/server/internal/quest"
	"github.com/batonquest/server/internal/stats"
)

// memStore is an in-memory Store for engine tests. Loads hand out deep
// copies so unsaved mutations never leak back, matching the contract.
type memStore struct {
	players      map[int64]*player.Player
	pets         map[string]*pet.Owned
	runs         map[int64]*dungeon.Run // active run per player
	progress     map[string]*dungeon.Progress
	records      map[string]*dungeon.Record
	achievements map[int64]*achievement.Progress
	boards       map[int64]*quest.Board
}

func newMemStore() *memStore {
	return &memStore{
		players:      make(map[int64]*player.Player),
		pets:         make(map[string]*pet.Owned),
		runs:         make(map[int64]*dungeon.Run),
		progress:     make(map[string]*dungeon.Progress),
		records:      make(map[string]*dungeon.Record),
		achievements: make(map[int64]*achievement.Progress),
		boards:       make(map[int64]*quest.Board),
	}
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyPlayer(p *player.Player) *player.Player {
	c := *p
	c.Inventory = copyIntMap(p.Inventory)
	c.Equipment = make(map[items.EquipmentSlot]string, len(p.Equipment))
	for k, v := range p.Equipment {
		c.Equipment[k] = v
	}
	c.Buffs = append([]stats.Buff(nil), p.Buffs...)
	arena := *p.Arena
	c.Arena = &arena
	return &c
}

func copyPet(o *pet.Owned) *pet.Owned {
	c := *o
	c.TrainedBonus = copyIntMap(o.TrainedBonus)
	return &c
}

func (s *memStore) GetPlayer(id int64) (*player.Player, error) {
	p, ok := s.players[id]
	if !ok {
		return nil, fmt.Errorf("player %d not found", id)
	}
	return copyPlayer(p), nil
}

func (s *memStore) GetPlayerByName(name string) (*player.Player, error) {
	for _, p := range s.players {
		if p.Name == name {
			return copyPlayer(p), nil
		}
	}
	return nil, fmt.Errorf("player %q not found", name)
}

func (s *memStore) SavePlayer(p *player.Player) error {
	s.players[p.ID] = copyPlayer(p)
	return nil
}

func (s *memStore) GetPet(id string) (*pet.Owned, error) {
	o, ok := s.pets[id]
	if !ok {
		return nil, fmt.Errorf("pet %s not found", id)
	}
	return copyPet(o), nil
}

func (s *memStore) GetPets(playerID int64) ([]*pet.Owned, error) {
	var out []*pet.Owned
	for _, o := range s.pets {
		if o.PlayerID == playerID {
			out = append(out, copyPet(o))
		}
	}
	return out, nil
}

func (s *memStore) SavePet(o *pet.Owned) error {
	s.pets[o.ID] = copyPet(o)
	return nil
}

func (s *memStore) GetActiveRun(playerID int64) (*dungeon.Run, error) {
	r, ok := s.runs[playerID]
	if !ok || r.State != dungeon.StateInProgress {
		return nil, nil
	}
	c := *r
	return &c, nil
}

func (s *memStore) SaveRun(r *dungeon.Run) error {
	c := *r
	s.runs[r.PlayerID] = &c
	return nil
}

func progressKey(playerID int64, dungeonID string) string {
	return fmt.Sprintf("%d/%s", playerID, dungeonID)
}

func (s *memStore) GetDungeonProgress(playerID int64, dungeonID string) (*dungeon.Progress, error) {
	if p, ok := s.progress[progressKey(playerID, dungeonID)]; ok {
		c := *p
		return &c, nil
	}
	return &dungeon.Progress{PlayerID: playerID, DungeonID: dungeonID}, nil
}

func (s *memStore) SaveDungeonProgress(p *dungeon.Progress) error {
	c := *p
	s.progress[progressKey(p.PlayerID, p.DungeonID)] = &c
	return nil
}

func (s *memStore) GetDungeonRecord(dungeonID string) (*dungeon.Record, error) {
	if r, ok := s.records[dungeonID]; ok {
		c := *r
		return &c, nil
	}
	return &dungeon.Record{DungeonID: dungeonID}, nil
}

func (s *memStore) SaveDungeonRecord(r *dungeon.Record) error {
	c := *r
	s.records[r.DungeonID] = &c
	return nil
}

func (s *memStore) GetAchievementProgress(playerID int64) (*achievement.Progress, error) {
	if p, ok := s.achievements[playerID]; ok {
		c := *p
		c.Counters = make(map[achievement.Metric]int, len(p.Counters))
		for k, v := range p.Counters {
			c.Counters[k] = v
		}
		c.Completed = make(map[string]bool, len(p.Completed))
		for k, v := range p.Completed {
			c.Completed[k] = v
		}
		c.Titles = append([]string(nil), p.Titles...)
		return &c, nil
	}
	return achievement.NewProgress(playerID), nil
}

func (s *memStore) SaveAchievementProgress(p *achievement.Progress) error {
	s.achievements[p.PlayerID] = p
	return nil
}

func (s *memStore) GetQuestBoard(playerID int64) (*quest.Board, error) {
	b, ok := s.boards[playerID]
	if !ok {
		return nil, nil
	}
	c := *b
	c.Quests = make([]*quest.Daily, len(b.Quests))
	for i, d := range b.Quests {
		dc := *d
		c.Quests[i] = &dc
	}
	return &c, nil
}

func (s *memStore) SaveQuestBoard(b *quest.Board) error {
	c := *b
	c.Quests = make([]*quest.Daily, len(b.Quests))
	for i, d := range b.Quests {
		dc := *d
		c.Quests[i] = &dc
	}
	s.boards[b.PlayerID] = &c
	return nil
}

// captureNotifier records events for assertions.
type captureNotifier struct {
	events []Event
}

func (n *captureNotifier) Notify(ev Event) {
	n.events = append(n.events, ev)
}

func (n *captureNotifier) ofType(t EventType) []Event {
	var out []Event
	for _, ev := range n.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
