package achievement

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Definition YAML shape. Metric strings must match a known counter.
type definitionYAML struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Metric       string `yaml:"metric"`
	Target       int    `yaml:"target"`
	RewardBatons int    `yaml:"reward_batons,omitempty"`
	RewardPoints int    `yaml:"reward_points,omitempty"`
	Title        string `yaml:"title,omitempty"`
}

// registryFile represents the structure of the achievements.yaml file
type registryFile struct {
	Achievements map[string]definitionYAML `yaml:"achievements"`
}

var knownMetrics = map[Metric]bool{
	MetricMonstersKilled:    true,
	MetricBossesKilled:      true,
	MetricDungeonsCompleted: true,
	MetricItemsCrafted:      true,
	MetricPvPWins:           true,
	MetricQuestsCompleted:   true,
	MetricLevel:             true,
	MetricBatonsEarned:      true,
}

// Registry holds every loaded achievement definition.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty achievement registry
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// LoadFromYAML loads achievement definitions from a YAML file. Unknown
// metrics and non-positive targets are rejected at load time.
func (r *Registry) LoadFromYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read achievements file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse achievements YAML: %w", err)
	}

	for id, def := range file.Achievements {
		metric := Metric(def.Metric)
		if !knownMetrics[metric] {
			return fmt.Errorf("achievement %q: unknown metric %q", id, def.Metric)
		}
		if def.Target <= 0 {
			return fmt.Errorf("achievement %q: target must be positive", id)
		}
		r.defs[id] = &Definition{
			ID:           id,
			Name:         def.Name,
			Description:  def.Description,
			Metric:       metric,
			Target:       def.Target,
			RewardBatons: def.RewardBatons,
			RewardPoints: def.RewardPoints,
			Title:        def.Title,
		}
	}

	return nil
}

// Add registers a definition directly (used by tests and seeds)
func (r *Registry) Add(d *Definition) {
	r.defs[d.ID] = d
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

// All returns every definition sorted by ID.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
