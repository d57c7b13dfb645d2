// Package pvp implements the duel arena: ELO ratings, rank bands,
// matchmaking gates and victory rewards. Duels themselves run through
// the shared combat simulator.
package pvp

import (
	"math"

	"github.com/batonquest/server/internal/combat"
)

// Arena tuning.
const (
	KFactor        = 32
	StartingRating = 1000
	MinDuelLevel   = 5
	LevelWindow    = 2 // opponents within ± this many levels
	EnergyCost     = 20

	WinBatonMin      = 50
	WinBatonMax      = 100
	WinExperienceMin = 100
	WinExperienceMax = 200
)

// Standing is a player's arena record.
type Standing struct {
	PlayerID int64
	Rating   int
	Wins     int
	Losses   int
}

// NewStanding returns a fresh arena record at the starting rating.
func NewStanding(playerID int64) *Standing {
	return &Standing{PlayerID: playerID, Rating: StartingRating}
}

// Rank returns the ladder band for the standing's rating.
func (s *Standing) Rank() Rank {
	return RankFor(s.Rating)
}

// Rank is a named ladder band.
type Rank int

const (
	RankNovice Rank = iota
	RankFighter
	RankWarrior
	RankGladiator
	RankChampion
	RankMaster
	RankLegend
)

// String returns the string representation of a Rank
func (r Rank) String() string {
	switch r {
	case RankFighter:
		return "Fighter"
	case RankWarrior:
		return "Warrior"
	case RankGladiator:
		return "Gladiator"
	case RankChampion:
		return "Champion"
	case RankMaster:
		return "Master"
	case RankLegend:
		return "Legend"
	default:
		return "Novice"
	}
}

// RankFor maps a rating onto the ladder.
func RankFor(rating int) Rank {
	switch {
	case rating >= 2700:
		return RankLegend
	case rating >= 2400:
		return RankMaster
	case rating >= 2100:
		return RankChampion
	case rating >= 1800:
		return RankGladiator
	case rating >= 1500:
		return RankWarrior
	case rating >= 1200:
		return RankFighter
	default:
		return RankNovice
	}
}

// ExpectedScore returns the probability the first rating beats the
// second under the ELO model.
func ExpectedScore(rating, opponent int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponent-rating)/400.0))
}

// RatingDelta returns the winner's rating gain. The loser loses the same
// amount; total rating is conserved.
func RatingDelta(winner, loser int) int {
	return int(math.Round(KFactor * (1 - ExpectedScore(winner, loser))))
}

// ApplyResult updates both standings after a decided duel.
func ApplyResult(winner, loser *Standing) int {
	delta := RatingDelta(winner.Rating, loser.Rating)
	winner.Rating += delta
	loser.Rating -= delta
	if loser.Rating < 0 {
		loser.Rating = 0
	}
	winner.Wins++
	loser.Losses++
	return delta
}

// CanDuel reports whether two players of the given levels may fight.
func CanDuel(levelA, levelB int) bool {
	if levelA < MinDuelLevel || levelB < MinDuelLevel {
		return false
	}
	diff := levelA - levelB
	if diff < 0 {
		diff = -diff
	}
	return diff <= LevelWindow
}

// WinReward rolls the victor's batons and experience.
func WinReward(rng combat.RNG) (batons, experience int) {
	batons = WinBatonMin + rng.Intn(WinBatonMax-WinBatonMin+1)
	experience = WinExperienceMin + rng.Intn(WinExperienceMax-WinExperienceMin+1)
	return batons, experience
}
