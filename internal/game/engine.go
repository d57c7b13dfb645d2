// Package game is the orchestration core: it loads state through the
// Store, runs the domain packages, settles rewards and emits events.
// Every operation is all-or-nothing; rejections never persist anything.
package game

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/combat"
	"github.com/batonquest/server/internal/crafting"
	"github.com/batonquest/server/internal/dungeon"
	"github.com/batonquest/server/internal/gameclock"
	"github.com/batonquest/server/internal/items"
	"github.com/batonquest/server/internal/monster"
	"github.com/batonquest/server/internal/pet"
	"github.com/batonquest/server/internal/player"
	"github.com/batonquest/server/internal/quest"
	"github.com/batonquest/server/internal/reward"
	"github.com/batonquest/server/internal/stats"
)

// Tuning collects the knobs config may override.
type Tuning struct {
	FightEnergyCost   int
	HealthRegenPerMin float64
	EnergyRegenPerMin float64
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		FightEnergyCost:   10,
		HealthRegenPerMin: player.DefaultHealthRegenPerMin,
		EnergyRegenPerMin: player.DefaultEnergyRegenPerMin,
	}
}

// Content bundles every loaded registry.
type Content struct {
	Items        *items.Registry
	Monsters     *monster.Registry
	Dungeons     *dungeon.Registry
	Pets         *pet.Registry
	Recipes      *crafting.Registry
	Achievements *achievement.Registry
	Quests       *quest.Registry
}

// Engine runs the game. Clock and RNG are injected so every operation
// replays deterministically under test.
type Engine struct {
	store    Store
	content  *Content
	clock    gameclock.Clock
	rng      combat.RNG
	notifier Notifier
	tuning   Tuning
	log      *slog.Logger
}

// NewEngine wires an engine. A nil notifier discards events; a nil
// logger is replaced with slog's default.
func NewEngine(store Store, content *Content, clock gameclock.Clock, rng combat.RNG, notifier Notifier, tuning Tuning, log *slog.Logger) *Engine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		store:    store,
		content:  content,
		clock:    clock,
		rng:      &lockedRNG{src: rng},
		notifier: notifier,
		tuning:   tuning,
		log:      log,
	}
}

// lockedRNG guards the engine's shared random source. Operations for
// different players run concurrently, and *rand.Rand is not safe for
// concurrent use.
type lockedRNG struct {
	mu  sync.Mutex
	src combat.RNG
}

func (l *lockedRNG) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

func (l *lockedRNG) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

// loadPlayer fetches a player and applies pending regeneration.
func (e *Engine) loadPlayer(id int64) (*player.Player, error) {
	p, err := e.store.GetPlayer(id)
	if err != nil {
		return nil, fmt.Errorf("load player %d: %w", id, err)
	}
	p.Regenerate(e.clock.Now(), e.tuning.HealthRegenPerMin, e.tuning.EnergyRegenPerMin)
	p.PruneBuffs(e.clock.Now())
	return p, nil
}

// activePet returns the player's active pet and its template, with
// status decay applied. Both nil when no pet is active.
func (e *Engine) activePet(p *player.Player) (*pet.Owned, *pet.Template, error) {
	if p.ActivePetID == "" {
		return nil, nil, nil
	}
	o, err := e.store.GetPet(p.ActivePetID)
	if err != nil {
		return nil, nil, fmt.Errorf("load pet %s: %w", p.ActivePetID, err)
	}
	t, ok := e.content.Pets.Get(o.TemplateID)
	if !ok {
		return nil, nil, fmt.Errorf("pet %s references unknown species %s", o.ID, o.TemplateID)
	}
	o.UpdateStatus(e.clock.Now())
	return o, t, nil
}

// effectiveStats aggregates the player's combat block, including the
// active pet's aura when one is fighting alongside.
func (e *Engine) effectiveStats(p *player.Player, o *pet.Owned, t *pet.Template) stats.EffectiveStats {
	equipped := p.EquippedItems(func(id string) (*items.Item, bool) {
		return e.content.Items.Get(id)
	})
	eff := stats.Aggregate(p.Attributes, p.MaxHealth, p.MaxEnergy, equipped, p.Buffs, e.clock.Now())
	if o != nil && t != nil {
		eff = o.ApplyAura(t, eff)
	}
	return eff
}

// statBlock converts effective stats into a combat block at the
// player's current health.
func statBlock(name string, health int, eff stats.EffectiveStats) combat.StatBlock {
	return combat.StatBlock{
		Name:           name,
		Health:         health,
		MaxHealth:      eff.Health,
		Damage:         eff.Damage,
		Defense:        eff.Defense,
		CriticalChance: eff.CriticalChance,
		DodgeChance:    eff.DodgeChance,
	}
}

// settle pays a reward to the player and shares experience with the
// active pet. Emits level-up events. The pet is saved by the caller.
func (e *Engine) settle(p *player.Player, o *pet.Owned, t *pet.Template, r reward.Reward) {
	p.Batons += r.Batons
	for id, qty := range r.Items {
		p.AddItem(id, qty)
	}
	if ups := p.AddExperience(r.Experience); ups > 0 {
		e.notifier.Notify(levelUpEvent(p.ID, p.Level))
	}
	if o != nil {
		if leveled := o.AddExperience(r.PetShare()); leveled {
			e.notifier.Notify(petLevelUpEvent(p.ID, o.DisplayName(t), o.Level))
		}
		o.AddHappiness(reward.PetHappinessBonus)
	}
}

// bumpAchievements records counters, evaluates unlocks, pays their
// baton rewards and saves progress.
func (e *Engine) bumpAchievements(p *player.Player, counters map[achievement.Metric]int) error {
	prog, err := e.store.GetAchievementProgress(p.ID)
	if err != nil {
		return fmt.Errorf("load achievements for %d: %w", p.ID, err)
	}
	for metric, delta := range counters {
		prog.Record(metric, delta)
	}
	prog.SetLevel(p.Level)

	for _, unlocked := range prog.Evaluate(e.content.Achievements.All()) {
		p.Batons += unlocked.RewardBatons
		e.notifier.Notify(achievementEvent(p.ID, unlocked.Name))
		e.log.Info("achievement unlocked", "player", p.ID, "achievement", unlocked.ID)
	}
	return e.store.SaveAchievementProgress(prog)
}
