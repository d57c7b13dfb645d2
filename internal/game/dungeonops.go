package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/dungeon"
	"github.com/batonquest/server/internal/reward"
)

// EnterDungeon starts a run: cooldown and energy gates, then a fresh
// run in the first room. Entering debits energy and stamps the attempt.
func (e *Engine) EnterDungeon(playerID int64, dungeonID string) (*dungeon.Run, error) {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return nil, err
	}

	t, ok := e.content.Dungeons.Get(dungeonID)
	if !ok {
		return nil, Validationf("unknown dungeon %q", dungeonID)
	}
	if p.Level < t.MinLevel {
		return nil, Validationf("%s requires level %d", t.Name, t.MinLevel)
	}

	if active, err := e.store.GetActiveRun(playerID); err != nil {
		return nil, err
	} else if active != nil {
		return nil, Conflictf("a run of %s is already in progress", active.DungeonID)
	}

	prog, err := e.store.GetDungeonProgress(playerID, dungeonID)
	if err != nil {
		return nil, err
	}
	now := e.clock.Now()
	if !t.OffCooldown(prog.LastAttempt, now) {
		return nil, Conflictf("%s is on cooldown for %s", t.Name, t.CooldownRemaining(prog.LastAttempt, now))
	}
	if p.Energy < t.EnergyCost {
		return nil, &InsufficientResourceError{Resource: "energy", Need: t.EnergyCost, Have: p.Energy}
	}

	if err := p.SpendEnergy(t.EnergyCost); err != nil {
		return nil, err
	}
	prog.LastAttempt = now
	run := dungeon.NewRun(uuid.NewString(), playerID, t, p.Health, now)

	if err := e.store.SaveDungeonProgress(prog); err != nil {
		return nil, err
	}
	if err := e.store.SaveRun(run); err != nil {
		return nil, err
	}
	if err := e.store.SavePlayer(p); err != nil {
		return nil, err
	}

	e.log.Info("dungeon entered", "player", playerID, "dungeon", dungeonID, "run", run.ID)
	return run, nil
}

// RoomResult reports one room advance.
type RoomResult struct {
	Run    *dungeon.Run
	Fights []*FightResult
	Reward reward.Reward // settled only on completion
}

// AdvanceRoom fights through the current room of the active run,
// carrying health between monsters. Clearing the final room completes
// the run and settles the dungeon reward.
func (e *Engine) AdvanceRoom(playerID int64) (*RoomResult, error) {
	run, err := e.store.GetActiveRun(playerID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, Conflictf("no dungeon run in progress")
	}
	t, ok := e.content.Dungeons.Get(run.DungeonID)
	if !ok {
		return nil, fmt.Errorf("run %s references unknown dungeon %s", run.ID, run.DungeonID)
	}

	p, err := e.loadPlayer(playerID)
	if err != nil {
		return nil, err
	}
	o, pt, err := e.activePet(p)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if run.Expired(t, now) {
		if err := run.Expire(now); err != nil {
			return nil, err
		}
		if err := e.store.SaveRun(run); err != nil {
			return nil, err
		}
		return nil, Conflictf("the run timed out after %s", t.TimeLimit)
	}

	// Dungeon fights run on the health carried through the run, not the
	// overworld pool.
	p.Health = run.PlayerHP
	result := &RoomResult{Run: run}
	killed := 0
	for _, monsterID := range t.RoomMonsters(run.Room) {
		m, ok := e.content.Monsters.Get(monsterID)
		if !ok {
			return nil, fmt.Errorf("dungeon %s room %d references unknown monster %s", t.ID, run.Room, monsterID)
		}
		fight, err := e.fightMonster(p, o, pt, m)
		if err != nil {
			return nil, err
		}
		result.Fights = append(result.Fights, fight)
		if !fight.Won {
			if err := run.Fail(now); err != nil {
				return nil, err
			}
			break
		}
		killed++
	}

	if run.State == dungeon.StateInProgress {
		if _, err := run.ClearRoom(t, killed, p.Health, now); err != nil {
			return nil, err
		}
	}

	if run.State == dungeon.StateCompleted {
		result.Reward = reward.DungeonClear(t, e.rng)
		e.settle(p, o, pt, result.Reward)
		if err := e.recordClearTime(p.ID, t, run.Elapsed(now), now); err != nil {
			return nil, err
		}
		counters := map[achievement.Metric]int{
			achievement.MetricMonstersKilled:    run.Defeated,
			achievement.MetricDungeonsCompleted: 1,
			achievement.MetricBatonsEarned:      result.Reward.Batons,
		}
		if t.BossID != "" {
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
	if err := e.store.SaveRun(run); err != nil {
		return nil, err
	}
	if err := e.store.SavePlayer(p); err != nil {
		return nil, err
	}

	e.log.Info("room advanced",
		"player", playerID, "dungeon", t.ID, "run", run.ID,
		"state", run.State.String(), "room", run.Room)
	return result, nil
}

// AbandonRun ends the active run voluntarily. The entry energy stays
// spent; nothing else is lost.
func (e *Engine) AbandonRun(playerID int64) error {
	run, err := e.store.GetActiveRun(playerID)
	if err != nil {
		return err
	}
	if run == nil {
		return Conflictf("no dungeon run in progress")
	}
	if err := run.Abandon(e.clock.Now()); err != nil {
		return Conflictf("%s", err)
	}
	if err := e.store.SaveRun(run); err != nil {
		return err
	}
	e.log.Info("run abandoned", "player", playerID, "run", run.ID)
	return nil
}

// recordClearTime updates the player's best and, when beaten, the
// dungeon-wide fastest record.
func (e *Engine) recordClearTime(playerID int64, t *dungeon.Template, elapsed time.Duration, now time.Time) error {
	prog, err := e.store.GetDungeonProgress(playerID, t.ID)
	if err != nil {
		return err
	}
	prog.RecordBest(elapsed)
	if err := e.store.SaveDungeonProgress(prog); err != nil {
		return err
	}

	rec, err := e.store.GetDungeonRecord(t.ID)
	if err != nil {
		return err
	}
	if rec.Beats(elapsed) {
		rec.PlayerID = playerID
		rec.Time = elapsed
		rec.SetAt = now
		if err := e.store.SaveDungeonRecord(rec); err != nil {
			return err
		}
		e.notifier.Notify(recordEvent(playerID, t.Name))
	}
	return nil
}
