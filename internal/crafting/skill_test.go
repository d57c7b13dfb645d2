package crafting

import "testing"

func TestSkillLevelsOnCurve(t *testing.T) {
	s := NewSkill()

	if got := s.AddExperience(50); got != 0 {
		t.Errorf("50 exp leveled %d times, want 0", got)
	}
	if got := s.AddExperience(50); got != 1 {
		t.Errorf("reaching 100 exp leveled %d times, want 1", got)
	}
	if s.Level != 2 || s.Experience != 100 {
		t.Errorf("skill = %+v, want level 2 at 100 total exp", s)
	}
}

func TestCanAttempt(t *testing.T) {
	recipe := &Recipe{ID: "iron_sword", LevelRequired: 3}

	s := Skill{Level: 2}
	if s.CanAttempt(recipe) {
		t.Error("level 2 should not attempt a level 3 recipe")
	}
	s.Level = 3
	if !s.CanAttempt(recipe) {
		t.Error("level 3 should attempt a level 3 recipe")
	}
}
