package pvp

import (
	"math"
	"math/rand"
	"testing"
)

func TestExpectedScore(t *testing.T) {
	if got := ExpectedScore(1000, 1000); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("equal ratings expected score = %v, want 0.5", got)
	}
	// 400 points of advantage is 10:1 odds.
	if got := ExpectedScore(1400, 1000); math.Abs(got-10.0/11.0) > 1e-9 {
		t.Errorf("+400 expected score = %v, want %v", got, 10.0/11.0)
	}
	sum := ExpectedScore(1234, 1567) + ExpectedScore(1567, 1234)
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("expected scores should sum to 1, got %v", sum)
	}
}

func TestRatingDelta(t *testing.T) {
	tests := []struct {
		name   string
		winner int
		loser  int
		want   int
	}{
		{"even match", 1000, 1000, 16},
		{"favorite wins", 1400, 1000, 3},  // 32 * (1 - 10/11)
		{"underdog wins", 1000, 1400, 29}, // 32 * (1 - 1/11)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RatingDelta(tt.winner, tt.loser); got != tt.want {
				t.Errorf("RatingDelta(%d, %d) = %d, want %d", tt.winner, tt.loser, got, tt.want)
			}
		})
	}
}

func TestApplyResultConservesRating(t *testing.T) {
	w := NewStanding(1)
	l := NewStanding(2)
	l.Rating = 1300

	before := w.Rating + l.Rating
	delta := ApplyResult(w, l)

	if w.Rating+l.Rating != before {
		t.Errorf("total rating changed: %d -> %d", before, w.Rating+l.Rating)
	}
	if w.Rating != StartingRating+delta || l.Rating != 1300-delta {
		t.Errorf("standings after duel: winner %d loser %d delta %d", w.Rating, l.Rating, delta)
	}
	if w.Wins != 1 || l.Losses != 1 {
		t.Errorf("tallies: winner %d wins, loser %d losses", w.Wins, l.Losses)
	}
}

func TestApplyResultFloorsAtZero(t *testing.T) {
	w := NewStanding(1)
	w.Rating = 2000
	l := NewStanding(2)
	l.Rating = 5

	ApplyResult(w, l)
	if l.Rating < 0 {
		t.Errorf("loser rating went negative: %d", l.Rating)
	}
}

func TestRankBands(t *testing.T) {
	tests := []struct {
		rating int
		want   Rank
	}{
		{0, RankNovice},
		{1199, RankNovice},
		{1200, RankFighter},
		{1500, RankWarrior},
		{1800, RankGladiator},
		{2100, RankChampion},
		{2400, RankMaster},
		{2699, RankMaster},
		{2700, RankLegend},
		{9000, RankLegend},
	}
	for _, tt := range tests {
		if got := RankFor(tt.rating); got != tt.want {
			t.Errorf("RankFor(%d) = %v, want %v", tt.rating, got, tt.want)
		}
	}
	if RankLegend.String() != "Legend" || RankNovice.String() != "Novice" {
		t.Error("rank names wrong")
	}
}

func TestCanDuel(t *testing.T) {
	tests := []struct {
		name   string
		a, b   int
		want   bool
	}{
		{"both below gate", 4, 4, false},
		{"one below gate", 4, 6, false},
		{"at gate equal", 5, 5, true},
		{"within window", 10, 12, true},
		{"window symmetric", 12, 10, true},
		{"outside window", 10, 13, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDuel(tt.a, tt.b); got != tt.want {
				t.Errorf("CanDuel(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestWinRewardRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		batons, exp := WinReward(rng)
		if batons < WinBatonMin || batons > WinBatonMax {
			t.Fatalf("batons = %d, want within [%d,%d]", batons, WinBatonMin, WinBatonMax)
		}
		if exp < WinExperienceMin || exp > WinExperienceMax {
			t.Fatalf("experience = %d, want within [%d,%d]", exp, WinExperienceMin, WinExperienceMax)
		}
	}
}
