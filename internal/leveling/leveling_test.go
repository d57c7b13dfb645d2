package leveling

import "testing"

func TestXPForNextLevel(t *testing.T) {
	tests := []struct {
		level, want int
	}{
		{1, 100},   // 100 * 1^1.5
		{2, 282},   // 100 * 2^1.5 = 282.84 -> 282
		{4, 800},   // 100 * 4^1.5
		{9, 2700},  // 100 * 9^1.5
		{16, 6400}, // 100 * 16^1.5
	}

	for _, tc := range tests {
		got := XPForNextLevel(tc.level)
		if got != tc.want {
			t.Errorf("XPForNextLevel(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestAddExperienceExactThreshold(t *testing.T) {
	// A grant of exactly the threshold triggers precisely one level-up.
	r := AddExperience(1, 0, XPForNextLevel(1))
	if r.Level != 2 || r.LevelsUp != 1 {
		t.Fatalf("got level %d (%d ups), want level 2 (1 up)", r.Level, r.LevelsUp)
	}
	if r.Experience != 100 {
		t.Errorf("running total = %d, want 100", r.Experience)
	}
}

func TestAddExperienceDoubleThreshold(t *testing.T) {
	// 2x the level-1 threshold (200) clears level 1 but not level 2's
	// threshold of 282, so only one level-up lands.
	r := AddExperience(1, 0, 2*XPForNextLevel(1))
	if r.Level != 2 || r.LevelsUp != 1 {
		t.Fatalf("got level %d (%d ups), want level 2 (1 up)", r.Level, r.LevelsUp)
	}

	// A grant reaching the level-2 threshold as well lands two level-ups
	// in one call.
	r = AddExperience(1, 0, XPForNextLevel(2))
	if r.Level != 3 || r.LevelsUp != 2 {
		t.Fatalf("got level %d (%d ups), want level 3 (2 ups)", r.Level, r.LevelsUp)
	}
}

func TestAddExperienceThresholdConsistent(t *testing.T) {
	// Level never decreases and no pending level-up remains after a call.
	grants := []int{0, 1, 99, 100, 5000, 123456}
	level, exp := 1, 0
	for _, g := range grants {
		r := AddExperience(level, exp, g)
		if r.Level < level {
			t.Fatalf("level decreased: %d -> %d", level, r.Level)
		}
		if r.Level < MaxLevel && r.Experience >= XPForNextLevel(r.Level) {
			t.Fatalf("pending level-up left: level %d exp %d >= %d",
				r.Level, r.Experience, XPForNextLevel(r.Level))
		}
		level, exp = r.Level, r.Experience
	}
}

func TestPetLevelMultiplier(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{1, 1.0},
		{2, 1.1},
		{11, 2.0},
	}
	for _, tc := range tests {
		got := PetLevelMultiplier(tc.level)
		if got != tc.want {
			t.Errorf("PetLevelMultiplier(%d) = %v, want %v", tc.level, got, tc.want)
		}
	}
}
