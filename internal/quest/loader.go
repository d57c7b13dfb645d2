package quest

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/batonquest/server/internal/combat"
)

// definitionYAML is the on-disk shape of a daily quest.
type definitionYAML struct {
	Name             string         `yaml:"name"`
	Description      string         `yaml:"description"`
	Kind             string         `yaml:"kind"`
	Required         int            `yaml:"required"`
	EnergyCost       int            `yaml:"energy_cost"`
	RewardBatons     int            `yaml:"reward_batons,omitempty"`
	RewardExperience int            `yaml:"reward_experience,omitempty"`
	RewardItems      map[string]int `yaml:"reward_items,omitempty"`
}

// registryFile represents the structure of the quests.yaml file
type registryFile struct {
	Quests map[string]definitionYAML `yaml:"quests"`
}

// Registry holds every loaded daily quest definition.
type Registry struct {
	defs map[string]*Definition
	ids  []string // sorted, for deterministic assignment
}

// NewRegistry creates an empty quest registry
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// LoadFromYAML loads daily quest definitions from a YAML file
func (r *Registry) LoadFromYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read quests file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse quests YAML: %w", err)
	}

	for id, def := range file.Quests {
		if def.Required <= 0 {
			return fmt.Errorf("quest %q: required progress must be positive", id)
		}
		r.defs[id] = &Definition{
			ID:               id,
			Name:             def.Name,
			Description:      def.Description,
			Kind:             Kind(def.Kind),
			Required:         def.Required,
			EnergyCost:       def.EnergyCost,
			RewardBatons:     def.RewardBatons,
			RewardExperience: def.RewardExperience,
			RewardItems:      def.RewardItems,
		}
	}
	r.reindex()

	return nil
}

// Add registers a definition directly (used by tests and seeds)
func (r *Registry) Add(d *Definition) {
	r.defs[d.ID] = d
	r.reindex()
}

// Get returns a definition by ID
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Count returns the number of loaded definitions
func (r *Registry) Count() int {
	return len(r.defs)
}

// AssignDaily deals a fresh board of up to DailyCount distinct quests
// for the given day.
func (r *Registry) AssignDaily(playerID int64, rng combat.RNG, now time.Time) *Board {
	pool := make([]string, len(r.ids))
	copy(pool, r.ids)

	count := DailyCount
	if count > len(pool) {
		count = len(pool)
	}

	b := &Board{PlayerID: playerID, Day: DayKey(now)}
	for i := 0; i < count; i++ {
		pick := rng.Intn(len(pool))
		b.Quests = append(b.Quests, &Daily{QuestID: pool[pick]})
		pool = append(pool[:pick], pool[pick+1:]...)
	}
	return b
}

func (r *Registry) reindex() {
	r.ids = r.ids[:0]
	for id := range r.defs {
		r.ids = append(r.ids, id)
	}
	sort.Strings(r.ids)
}
