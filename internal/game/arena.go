package game

import (
	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/combat"
	"github.com/batonquest/server/internal/player"
	"github.com/batonquest/server/internal/pvp"
)

// DuelResult reports one arena duel from the challenger's perspective.
type DuelResult struct {
	Outcome     combat.Outcome
	Won         bool
	Draw        bool
	RatingDelta int // challenger's rating change, negative on loss
	Batons      int // victory purse, zero otherwise
	Experience  int
}

// Duel runs an arena match between two players. The challenger pays
// energy; the winner takes rating from the loser plus a purse. Draws
// move nothing.
func (e *Engine) Duel(challengerID, opponentID int64) (*DuelResult, error) {
	if challengerID == opponentID {
		return nil, Validationf("you cannot duel yourself")
	}

	challenger, err := e.loadPlayer(challengerID)
	if err != nil {
		return nil, err
	}
	opponent, err := e.loadPlayer(opponentID)
	if err != nil {
		return nil, err
	}

	if !pvp.CanDuel(challenger.Level, opponent.Level) {
		return nil, Validationf("duels need both players at level %d+ within %d levels of each other",
			pvp.MinDuelLevel, pvp.LevelWindow)
	}
	if challenger.Energy < pvp.EnergyCost {
		return nil, &InsufficientResourceError{Resource: "energy", Need: pvp.EnergyCost, Have: challenger.Energy}
	}
	if err := challenger.SpendEnergy(pvp.EnergyCost); err != nil {
		return nil, err
	}

	// Duels are fought at full effective health; nobody gets hurt for
	// real in the arena.
	cEff := e.effectiveStats(challenger, nil, nil)
	oEff := e.effectiveStats(opponent, nil, nil)
	outcome := combat.Resolve(
		statBlock(challenger.Name, cEff.Health, cEff),
		statBlock(opponent.Name, oEff.Health, oEff),
		e.rng, combat.Options{})

	result := &DuelResult{Outcome: outcome}
	switch outcome.Winner {
	case combat.SideAttacker:
		result.Won = true
		e.settleDuel(challenger, opponent, result)
	case combat.SideDefender:
		e.settleDuel(opponent, challenger, result)
		result.RatingDelta = -result.RatingDelta
	default:
		result.Draw = true
	}

	if err := e.store.SavePlayer(challenger); err != nil {
		return nil, err
	}
	if err := e.store.SavePlayer(opponent); err != nil {
		return nil, err
	}

	e.log.Info("duel resolved",
		"challenger", challengerID, "opponent", opponentID,
		"winner", outcome.Winner.String(), "rounds", outcome.Rounds)
	return result, nil
}

// settleDuel applies rating movement and the victory purse.
func (e *Engine) settleDuel(winner, loser *player.Player, result *DuelResult) {
	prevRank := winner.Arena.Rank()
	result.RatingDelta = pvp.ApplyResult(winner.Arena, loser.Arena)
	if rank := winner.Arena.Rank(); rank != prevRank {
		e.notifier.Notify(rankChangeEvent(winner.ID, rank.String()))
	}

	batons, exp := pvp.WinReward(e.rng)
	winner.Batons += batons
	if ups := winner.AddExperience(exp); ups > 0 {
		e.notifier.Notify(levelUpEvent(winner.ID, winner.Level))
	}
	if result.Won {
		result.Batons = batons
		result.Experience = exp
	}

	if err := e.bumpAchievements(winner, map[achievement.Metric]int{
		achievement.MetricPvPWins:      1,
		achievement.MetricBatonsEarned: batons,
	}); err != nil {
		e.log.Error("achievement update failed", "player", winner.ID, "error", err)
	}
}
