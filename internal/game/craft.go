package game

import (
	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/crafting"
)

// CraftResult reports one crafting attempt.
type CraftResult struct {
	Recipe     *crafting.Recipe
	LevelsUp   int // crafting skill levels gained
	SkillLevel int
}

// Craft validates and executes a recipe: skill gate, energy, materials.
// Consumption, the result item and crafting experience land together or
// not at all.
func (e *Engine) Craft(playerID int64, recipeID string) (*CraftResult, error) {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return nil, err
	}

	recipe, ok := e.content.Recipes.Get(recipeID)
	if !ok {
		return nil, Validationf("unknown recipe %q", recipeID)
	}
	if !p.Crafting.CanAttempt(recipe) {
		return nil, Validationf("%s requires crafting level %d", recipe.Name, recipe.LevelRequired)
	}
	if p.Energy < recipe.EnergyCost {
		return nil, &InsufficientResourceError{Resource: "energy", Need: recipe.EnergyCost, Have: p.Energy}
	}
	if missing := recipe.MissingMaterials(p.Inventory); len(missing) > 0 {
		for id, qty := range missing {
			return nil, &InsufficientResourceError{Resource: id, Need: qty + p.Inventory[id], Have: p.Inventory[id]}
		}
	}

	if err := p.SpendEnergy(recipe.EnergyCost); err != nil {
		return nil, err
	}
	if err := recipe.Craft(p.Inventory); err != nil {
		return nil, Validationf("%s", err)
	}

	result := &CraftResult{Recipe: recipe}
	result.LevelsUp = p.Crafting.AddExperience(recipe.ExperienceGain)
	result.SkillLevel = p.Crafting.Level

	if err := e.bumpAchievements(p, map[achievement.Metric]int{
		achievement.MetricItemsCrafted: recipe.ResultCount,
	}); err != nil {
		return nil, err
	}
	if err := e.store.SavePlayer(p); err != nil {
		return nil, err
	}

	e.log.Info("item crafted", "player", playerID, "recipe", recipeID, "skill_level", result.SkillLevel)
	return result, nil
}
