package pet

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/batonquest/server/internal/items"
)

// AbilityDefinition represents a pet ability in the YAML file
type AbilityDefinition struct {
	Name              string         `yaml:"name"`
	Description       string         `yaml:"description"`
	Type              string         `yaml:"type"` // combat or passive
	Damage            int            `yaml:"damage,omitempty"`
	Heal              int            `yaml:"heal,omitempty"`
	StatBonuses       map[string]int `yaml:"stat_bonuses,omitempty"`
	Cooldown          int            `yaml:"cooldown,omitempty"`
	RequiredEvolution int            `yaml:"required_evolution,omitempty"`
}

// Definition represents a pet species in the YAML file
type Definition struct {
	Name         string                       `yaml:"name"`
	Kind         string                       `yaml:"kind"`
	Rarity       string                       `yaml:"rarity"`
	BaseDamage   int                          `yaml:"base_damage"`
	BaseDefense  int                          `yaml:"base_defense"`
	BaseHealth   int                          `yaml:"base_health"`
	MaxEvolution int                          `yaml:"max_evolution"`
	Abilities    map[string]AbilityDefinition `yaml:"abilities,omitempty"`
}

// registryFile represents the structure of the pets.yaml file
type registryFile struct {
	Pets map[string]Definition `yaml:"pets"`
}

// Registry holds every loaded pet species keyed by ID.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry creates an empty pet registry
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// LoadFromYAML loads pet species definitions from a YAML file
func (r *Registry) LoadFromYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read pets file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse pets YAML: %w", err)
	}

	for id, def := range file.Pets {
		t := &Template{
			ID:           id,
			Name:         def.Name,
			Kind:         def.Kind,
			Rarity:       items.StringToRarity(def.Rarity),
			BaseDamage:   def.BaseDamage,
			BaseDefense:  def.BaseDefense,
			BaseHealth:   def.BaseHealth,
			MaxEvolution: def.MaxEvolution,
		}
		if t.MaxEvolution < 1 {
			t.MaxEvolution = 1
		}

		for abilityID, a := range def.Abilities {
			kind := AbilityCombat
			if a.Type == "passive" {
				kind = AbilityPassive
			}
			required := a.RequiredEvolution
			if required < 1 {
				required = 1
			}
			t.Abilities = append(t.Abilities, Ability{
				ID:                abilityID,
				Name:              a.Name,
				Description:       a.Description,
				Type:              kind,
				Damage:            a.Damage,
				Heal:              a.Heal,
				StatBonuses:       a.StatBonuses,
				Cooldown:          a.Cooldown,
				RequiredEvolution: required,
			})
		}
		// Stable ability order regardless of map iteration.
		sort.Slice(t.Abilities, func(i, j int) bool { return t.Abilities[i].ID < t.Abilities[j].ID })

		r.templates[id] = t
	}

	return nil
}

// Add registers a species directly (used by tests and seeds)
func (r *Registry) Add(t *Template) {
	r.templates[t.ID] = t
}

// Get returns a species by ID
func (r *Registry) Get(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// Count returns the number of loaded species
func (r *Registry) Count() int {
	return len(r.templates)
}

// Starters returns the common-rarity species offered to new players,
// sorted by ID.
func (r *Registry) Starters() []*Template {
	var out []*Template
	for _, t := range r.templates {
		if t.Rarity == items.Common {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
