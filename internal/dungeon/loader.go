package dungeon

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/batonquest/server/internal/items"
)

// Definition represents a dungeon definition from the YAML file
type Definition struct {
	Name          string             `yaml:"name"`
	Description   string             `yaml:"description"`
	MinLevel      int                `yaml:"min_level"`
	EnergyCost    int                `yaml:"energy_cost"`
	CooldownHours int                `yaml:"cooldown_hours"`
	TimeLimitMins int                `yaml:"time_limit_minutes"`
	Rooms         [][]string         `yaml:"rooms"`
	Boss          string             `yaml:"boss,omitempty"`
	LootTable     map[string]float64 `yaml:"loot_table,omitempty"`
	ExperienceMin int                `yaml:"experience_min,omitempty"`
	ExperienceMax int                `yaml:"experience_max,omitempty"`
	BatonMin      int                `yaml:"baton_min,omitempty"`
	BatonMax      int                `yaml:"baton_max,omitempty"`
}

// registryFile represents the structure of the dungeons.yaml file
type registryFile struct {
	Dungeons map[string]Definition `yaml:"dungeons"`
}

// Default reward ranges, multiplied by the dungeon's minimum level at
// settlement.
const (
	DefaultExperienceMin = 100
	DefaultExperienceMax = 200
	DefaultBatonMin      = 50
	DefaultBatonMax      = 100
)

// Registry holds every loaded dungeon template keyed by ID.
type Registry struct {
	dungeons map[string]*Template
}

// NewRegistry creates an empty dungeon registry
func NewRegistry() *Registry {
	return &Registry{dungeons: make(map[string]*Template)}
}

// LoadFromYAML loads dungeon definitions from a YAML file. Each dungeon
// must have at least one room, and loot tables are validated here.
func (r *Registry) LoadFromYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read dungeons file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse dungeons YAML: %w", err)
	}

	for id, def := range file.Dungeons {
		if len(def.Rooms) == 0 && def.Boss == "" {
			return fmt.Errorf("dungeon %q has no rooms", id)
		}

		t := &Template{
			ID:            id,
			Name:          def.Name,
			Description:   def.Description,
			MinLevel:      max(1, def.MinLevel),
			EnergyCost:    def.EnergyCost,
			Cooldown:      time.Duration(def.CooldownHours) * time.Hour,
			TimeLimit:     time.Duration(def.TimeLimitMins) * time.Minute,
			Rooms:         def.Rooms,
			BossID:        def.Boss,
			LootTable:     items.DropTable(def.LootTable),
			ExperienceMin: def.ExperienceMin,
			ExperienceMax: def.ExperienceMax,
			BatonMin:      def.BatonMin,
			BatonMax:      def.BatonMax,
		}
		if t.ExperienceMin == 0 {
			t.ExperienceMin = DefaultExperienceMin
		}
		if t.ExperienceMax == 0 {
			t.ExperienceMax = DefaultExperienceMax
		}
		if t.BatonMin == 0 {
			t.BatonMin = DefaultBatonMin
		}
		if t.BatonMax == 0 {
			t.BatonMax = DefaultBatonMax
		}
		if err := t.LootTable.Validate(); err != nil {
			return fmt.Errorf("dungeon %q: %w", id, err)
		}
		r.dungeons[id] = t
	}

	return nil
}

// Add registers a dungeon template directly (used by tests and seeds)
func (r *Registry) Add(t *Template) {
	r.dungeons[t.ID] = t
}

// Get returns a dungeon template by ID
func (r *Registry) Get(id string) (*Template, bool) {
	t, ok := r.dungeons[id]
	return t, ok
}

// Count returns the number of loaded templates
func (r *Registry) Count() int {
	return len(r.dungeons)
}

// AvailableFor returns every dungeon a player of the given level may
// enter, sorted by minimum level then ID.
func (r *Registry) AvailableFor(level int) []*Template {
	var out []*Template
	for _, t := range r.dungeons {
		if t.MinLevel <= level {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MinLevel != out[j].MinLevel {
			return out[i].MinLevel < out[j].MinLevel
		}
		return out[i].ID < out[j].ID
	})
	return out
}
