package quest

import (
	"math/rand"
	"testing"
	"time"
)

// scriptedRNG returns queued values in order.
type scriptedRNG struct {
	floats []float64
	ints   []int
}

func (r *scriptedRNG) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRNG) Intn(n int) int {
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func testDef() *Definition {
	return &Definition{
		ID:           "cull_goblins",
		Name:         "Cull the Goblins",
		Kind:         KindKill,
		Required:     10,
		EnergyCost:   5,
		RewardBatons: 30,
	}
}

func TestAttemptSuccessAdvances(t *testing.T) {
	def := testDef()
	d := &Daily{QuestID: def.ID}

	// Success roll, then a progress step of 0 -> gain 1.
	rng := &scriptedRNG{floats: []float64{0.5}, ints: []int{0}}
	gained, completed := d.Attempt(def, rng)
	if gained != 1 || completed {
		t.Errorf("Attempt() = (%d, %v), want (1, false)", gained, completed)
	}
	if d.Progress != 1 {
		t.Errorf("progress = %d, want 1", d.Progress)
	}
}

func TestAttemptFailureGainsNothing(t *testing.T) {
	def := testDef()
	d := &Daily{QuestID: def.ID}

	rng := &scriptedRNG{floats: []float64{0.7}} // >= chance fails
	gained, completed := d.Attempt(def, rng)
	if gained != 0 || completed || d.Progress != 0 {
		t.Errorf("failed attempt changed state: gained=%d completed=%v progress=%d", gained, completed, d.Progress)
	}
}

func TestAttemptClampsAndCompletes(t *testing.T) {
	def := testDef()
	d := &Daily{QuestID: def.ID, Progress: 8}

	// Success with the maximum step of 5 overshoots the requirement.
	rng := &scriptedRNG{floats: []float64{0.0}, ints: []int{4}}
	gained, completed := d.Attempt(def, rng)
	if gained != 5 || !completed {
		t.Errorf("Attempt() = (%d, %v), want (5, true)", gained, completed)
	}
	if d.Progress != 10 {
		t.Errorf("progress = %d, want clamped at 10", d.Progress)
	}

	// Completed quests reject further attempts.
	if gained, _ := d.Attempt(def, rng); gained != 0 {
		t.Error("completed quest should not advance")
	}
}

func TestAttemptProgressRange(t *testing.T) {
	def := testDef()
	def.Required = 100000
	d := &Daily{QuestID: def.ID}
	rng := rand.New(rand.NewSource(5))

	prev := 0
	for i := 0; i < 300; i++ {
		gained, _ := d.Attempt(def, rng)
		if gained != 0 && (gained < ProgressMin || gained > ProgressMax) {
			t.Fatalf("gained = %d, want 0 or within [%d,%d]", gained, ProgressMin, ProgressMax)
		}
		if d.Progress < prev {
			t.Fatal("progress went backwards")
		}
		prev = d.Progress
	}
}

func TestClaim(t *testing.T) {
	d := &Daily{QuestID: "cull_goblins"}
	if d.Claim() {
		t.Error("unfinished quest should not be claimable")
	}
	d.Completed = true
	if !d.Claim() {
		t.Error("completed quest should claim once")
	}
	if d.Claim() {
		t.Error("reward should not pay twice")
	}
}

func TestAssignDaily(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		r.Add(&Definition{ID: id, Required: 5})
	}

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b := r.AssignDaily(7, rand.New(rand.NewSource(2)), now)

	if len(b.Quests) != DailyCount {
		t.Fatalf("assigned %d quests, want %d", len(b.Quests), DailyCount)
	}
	seen := make(map[string]bool)
	for _, d := range b.Quests {
		if seen[d.QuestID] {
			t.Fatalf("quest %s assigned twice", d.QuestID)
		}
		seen[d.QuestID] = true
	}
	if b.Day != "2026-03-01" {
		t.Errorf("board day = %s, want 2026-03-01", b.Day)
	}
}

func TestAssignDailySmallPool(t *testing.T) {
	r := NewRegistry()
	r.Add(&Definition{ID: "only", Required: 5})

	b := r.AssignDaily(7, rand.New(rand.NewSource(1)), time.Now())
	if len(b.Quests) != 1 {
		t.Errorf("assigned %d quests from a pool of 1", len(b.Quests))
	}
}

func TestBoardStale(t *testing.T) {
	morning := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b := &Board{Day: DayKey(morning)}

	if b.Stale(morning.Add(14 * time.Hour)) {
		t.Error("same UTC day should not be stale")
	}
	if !b.Stale(morning.Add(24 * time.Hour)) {
		t.Error("next day should be stale")
	}
}

func TestBoardGet(t *testing.T) {
	b := &Board{Quests: []*Daily{{QuestID: "a"}, {QuestID: "b"}}}
	if d, ok := b.Get("b"); !ok || d.QuestID != "b" {
		t.Error("Get(b) should find the entry")
	}
	if _, ok := b.Get("zzz"); ok {
		t.Error("Get(zzz) should miss")
	}
}
