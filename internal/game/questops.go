package game

import (
	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/quest"
)

// DailyBoard returns the player's quest slate for today, dealing a
// fresh one when none exists or yesterday's has gone stale.
func (e *Engine) DailyBoard(playerID int64) (*quest.Board, error) {
	b, err := e.store.GetQuestBoard(playerID)
	if err != nil {
		return nil, err
	}
	now := e.clock.Now()
	if b != nil && !b.Stale(now) {
		return b, nil
	}

	b = e.content.Quests.AssignDaily(playerID, e.rng, now)
	if err := e.store.SaveQuestBoard(b); err != nil {
		return nil, err
	}
	e.log.Info("daily quests assigned", "player", playerID, "count", len(b.Quests))
	return b, nil
}

// QuestAttemptResult reports one try at a daily quest.
type QuestAttemptResult struct {
	Gained    int
	Progress  int
	Completed bool
	Batons    int // paid on completion
}

// AttemptQuest spends energy on one try at a daily quest. Roughly
// seven in ten attempts advance progress; completing the quest pays its
// rewards immediately.
func (e *Engine) AttemptQuest(playerID int64, questID string) (*QuestAttemptResult, error) {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return nil, err
	}
	b, err := e.DailyBoard(playerID)
	if err != nil {
		return nil, err
	}

	d, ok := b.Get(questID)
	if !ok {
		return nil, Validationf("%q is not on today's board", questID)
	}
	if d.Completed {
		return nil, Conflictf("that quest is already complete")
	}
	def, ok := e.content.Quests.Get(questID)
	if !ok {
		return nil, Validationf("unknown quest %q", questID)
	}
	if p.Energy < def.EnergyCost {
		return nil, &InsufficientResourceError{Resource: "energy", Need: def.EnergyCost, Have: p.Energy}
	}

	if err := p.SpendEnergy(def.EnergyCost); err != nil {
		return nil, err
	}

	result := &QuestAttemptResult{}
	result.Gained, result.Completed = d.Attempt(def, e.rng)
	result.Progress = d.Progress

	if result.Completed && d.Claim() {
		p.Batons += def.RewardBatons
		result.Batons = def.RewardBatons
		for id, qty := range def.RewardItems {
			p.AddItem(id, qty)
		}
		if ups := p.AddExperience(def.RewardExperience); ups > 0 {
			e.notifier.Notify(levelUpEvent(p.ID, p.Level))
		}
		if err := e.bumpAchievements(p, map[achievement.Metric]int{
			achievement.MetricQuestsCompleted: 1,
			achievement.MetricBatonsEarned:    def.RewardBatons,
		}); err != nil {
			return nil, err
		}
	}

	if err := e.store.SaveQuestBoard(b); err != nil {
		return nil, err
	}
	if err := e.store.SavePlayer(p); err != nil {
		return nil, err
	}

	e.log.Info("quest attempted",
		"player", playerID, "quest", questID,
		"gained", result.Gained, "completed", result.Completed)
	return result, nil
}
