package game

import (
	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/combat"
	"github.com/batonquest/server/internal/monster"
	"github.com/batonquest/server/internal/pet"
	"github.com/batonquest/server/internal/player"
	"github.com/batonquest/server/internal/reward"
)

// FightResult reports one monster encounter.
type FightResult struct {
	Outcome combat.Outcome
	Reward  reward.Reward
	Won     bool
}

// Fight runs one battle against a monster template. Victory settles
// rewards; a draw or defeat pays nothing. Energy is spent either way.
func (e *Engine) Fight(playerID int64, monsterID string) (*FightResult, error) {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return nil, err
	}

	m, ok := e.content.Monsters.Get(monsterID)
	if !ok {
		return nil, Validationf("unknown monster %q", monsterID)
	}
	if p.Level < m.RequiredLevel {
		return nil, Validationf("%s requires level %d", m.Name, m.RequiredLevel)
	}
	if p.Energy < e.tuning.FightEnergyCost {
		return nil, &InsufficientResourceError{Resource: "energy", Need: e.tuning.FightEnergyCost, Have: p.Energy}
	}

	o, t, err := e.activePet(p)
	if err != nil {
		return nil, err
	}

	result, err := e.fightMonster(p, o, t, m)
	if err != nil {
		return nil, err
	}
	if err := p.SpendEnergy(e.tuning.FightEnergyCost); err != nil {
		return nil, err
	}

	if result.Won {
		counters := map[achievement.Metric]int{
			achievement.MetricMonstersKilled: 1,
			achievement.MetricBatonsEarned:   result.Reward.Batons,
		}
		if m.IsBoss {
			counters[achievement.MetricBossesKilled] = 1
		}
		if err := e.bumpAchievements(p, counters); err != nil {
			return nil, err
		}
	}

	if o != nil {
		if err := e.store.SavePet(o); err != nil {
			return nil, err
		}
	}
	if err := e.store.SavePlayer(p); err != nil {
		return nil, err
	}

	e.log.Info("fight resolved",
		"player", p.ID, "monster", m.ID,
		"winner", result.Outcome.Winner.String(), "rounds", result.Outcome.Rounds)
	return result, nil
}

// fightMonster resolves one battle and applies health changes and, on
// victory, reward settlement to the in-memory snapshots. Nothing is
// persisted here.
func (e *Engine) fightMonster(p *player.Player, o *pet.Owned, t *pet.Template, m *monster.Monster) (*FightResult, error) {
	eff := e.effectiveStats(p, o, t)
	attacker := statBlock(p.Name, p.Health, eff)

	var opts combat.Options
	if o != nil && t != nil {
		opts.Companion = pet.NewFighter(o, t)
	}

	outcome := combat.Resolve(attacker, m.StatBlock(), e.rng, opts)
	result := &FightResult{Outcome: outcome, Won: outcome.Winner == combat.SideAttacker}

	// Defeat leaves the player at death's door, never dead.
	p.Health = outcome.AttackerHP
	if p.Health < 1 {
		p.Health = 1
	}

	if result.Won {
		result.Reward = reward.MonsterKill(m, e.rng)
		e.settle(p, o, t, result.Reward)
	}
	return result, nil
}
