// Package crafting implements recipes and the crafting skill track.
package crafting

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Recipe represents a crafting recipe
type Recipe struct {
	ID             string         `yaml:"-"`
	Name           string         `yaml:"name"`
	Description    string         `yaml:"description"`
	Materials      map[string]int `yaml:"materials"` // item ID -> quantity
	Result         string         `yaml:"result"`
	ResultCount    int            `yaml:"result_count"` // defaults to 1
	LevelRequired  int            `yaml:"level_required"`
	EnergyCost     int            `yaml:"energy_cost"`
	ExperienceGain int            `yaml:"experience_gain"`
}

// recipesFile represents the YAML structure
type recipesFile struct {
	Recipes map[string]*Recipe `yaml:"recipes"`
}

// Registry manages all crafting recipes
type Registry struct {
	recipes map[string]*Recipe
}

// NewRegistry creates an empty recipe registry
func NewRegistry() *Registry {
	return &Registry{recipes: make(map[string]*Recipe)}
}

// LoadFromYAML loads recipes from a YAML file
func (r *Registry) LoadFromYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read recipes file: %w", err)
	}

	var file recipesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse recipes YAML: %w", err)
	}

	for id, recipe := range file.Recipes {
		recipe.ID = id
		if recipe.ResultCount == 0 {
			recipe.ResultCount = 1
		}
		if recipe.Result == "" {
			return fmt.Errorf("recipe %q has no result item", id)
		}
		if len(recipe.Materials) == 0 {
			return fmt.Errorf("recipe %q has no materials", id)
		}
		r.recipes[id] = recipe
	}

	return nil
}

// Add registers a recipe directly (used by tests and seeds)
func (r *Registry) Add(recipe *Recipe) {
	if recipe.ResultCount == 0 {
		recipe.ResultCount = 1
	}
	r.recipes[recipe.ID] = recipe
}

// Get returns a recipe by ID
func (r *Registry) Get(id string) (*Recipe, bool) {
	recipe, ok := r.recipes[id]
	return recipe, ok
}

// Count returns the total number of recipes
func (r *Registry) Count() int {
	return len(r.recipes)
}

// AvailableFor returns every recipe a crafter of the given skill level
// may attempt, sorted by required level then ID.
func (r *Registry) AvailableFor(level int) []*Recipe {
	var out []*Recipe
	for _, recipe := range r.recipes {
		if recipe.LevelRequired <= level {
			out = append(out, recipe)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LevelRequired != out[j].LevelRequired {
			return out[i].LevelRequired < out[j].LevelRequired
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MissingMaterials returns what the inventory lacks for this recipe,
// sorted by item ID. Empty means the recipe is craftable.
func (recipe *Recipe) MissingMaterials(inventory map[string]int) map[string]int {
	missing := make(map[string]int)
	for id, need := range recipe.Materials {
		if have := inventory[id]; have < need {
			missing[id] = need - have
		}
	}
	return missing
}

// Craft consumes the recipe's materials from the inventory and adds the
// result. It mutates nothing on failure.
func (recipe *Recipe) Craft(inventory map[string]int) error {
	if missing := recipe.MissingMaterials(inventory); len(missing) > 0 {
		ids := make([]string, 0, len(missing))
		for id := range missing {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return fmt.Errorf("missing materials: %v", ids)
	}

	for id, need := range recipe.Materials {
		inventory[id] -= need
		if inventory[id] == 0 {
			delete(inventory, id)
		}
	}
	inventory[recipe.Result] += recipe.ResultCount
	return nil
}
