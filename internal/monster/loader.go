package monster

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/batonquest/server/internal/items"
)

// Definition represents a monster definition from the YAML file
type Definition struct {
	Name             string             `yaml:"name"`
	Description      string             `yaml:"description"`
	Level            int                `yaml:"level"`
	Health           int                `yaml:"health"`
	Damage           int                `yaml:"damage"`
	Defense          int                `yaml:"defense,omitempty"`
	ExperienceReward int                `yaml:"experience_reward"`
	BatonRewardMin   int                `yaml:"baton_reward_min"`
	BatonRewardMax   int                `yaml:"baton_reward_max"`
	DropTable        map[string]float64 `yaml:"drop_table,omitempty"`
	Location         string             `yaml:"location,omitempty"`
	IsBoss           bool               `yaml:"boss,omitempty"`
	RequiredLevel    int                `yaml:"required_level,omitempty"`
}

// registryFile represents the structure of the monsters.yaml file
type registryFile struct {
	Monsters map[string]Definition `yaml:"monsters"`
}

// Registry holds every loaded monster template keyed by ID.
type Registry struct {
	monsters map[string]*Monster
}

// NewRegistry creates an empty monster registry
func NewRegistry() *Registry {
	return &Registry{monsters: make(map[string]*Monster)}
}

// LoadFromYAML loads monster definitions from a YAML file. Drop tables
// are validated at this boundary so battles never see a bad probability.
func (r *Registry) LoadFromYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read monsters file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse monsters YAML: %w", err)
	}

	for id, def := range file.Monsters {
		m := &Monster{
			ID:               id,
			Name:             def.Name,
			Description:      def.Description,
			Level:            def.Level,
			Health:           def.Health,
			Damage:           def.Damage,
			Defense:          def.Defense,
			ExperienceReward: def.ExperienceReward,
			BatonRewardMin:   def.BatonRewardMin,
			BatonRewardMax:   def.BatonRewardMax,
			DropTable:        items.DropTable(def.DropTable),
			Location:         def.Location,
			IsBoss:           def.IsBoss,
			RequiredLevel:    def.RequiredLevel,
		}
		if err := m.DropTable.Validate(); err != nil {
			return fmt.Errorf("monster %q: %w", id, err)
		}
		r.monsters[id] = m
	}

	return nil
}

// Add registers a monster template directly (used by tests and seeds)
func (r *Registry) Add(m *Monster) {
	r.monsters[m.ID] = m
}

// Get returns a monster template by ID
func (r *Registry) Get(id string) (*Monster, bool) {
	m, ok := r.monsters[id]
	return m, ok
}

// Count returns the number of loaded templates
func (r *Registry) Count() int {
	return len(r.monsters)
}

// AvailableFor returns every monster a player of the given level may
// encounter, sorted by ID for stable selection.
func (r *Registry) AvailableFor(level int) []*Monster {
	var out []*Monster
	for _, m := range r.monsters {
		if m.RequiredLevel <= level {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
