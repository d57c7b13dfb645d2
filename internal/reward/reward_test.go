package reward

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/batonquest/server/internal/dungeon"
	"github.com/batonquest/server/internal/items"
	"github.com/batonquest/server/internal/monster"
)

// fixedRNG returns the same values for every call.
type fixedRNG struct {
	f float64
	n int
}

func (r fixedRNG) Float64() float64 { return r.f }
func (r fixedRNG) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func testMonster() *monster.Monster {
	return &monster.Monster{
		ID:               "goblin",
		Name:             "Goblin",
		ExperienceReward: 40,
		BatonRewardMin:   10,
		BatonRewardMax:   20,
		DropTable:        items.DropTable{"rusty_dagger": 0.5},
	}
}

func TestMonsterKillBatonRange(t *testing.T) {
	m := testMonster()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		r := MonsterKill(m, rng)
		if r.Batons < 10 || r.Batons > 20 {
			t.Fatalf("batons = %d, want within [10,20]", r.Batons)
		}
		if r.Experience != 40 {
			t.Fatalf("experience = %d, want 40", r.Experience)
		}
	}
}

func TestMonsterKillDropTable(t *testing.T) {
	m := testMonster()

	m.DropTable = items.DropTable{"rusty_dagger": 1.0}
	r := MonsterKill(m, fixedRNG{f: 0.999})
	if r.Items["rusty_dagger"] != 1 {
		t.Errorf("certain drop missing: %v", r.Items)
	}

	m.DropTable = items.DropTable{"rusty_dagger": 0.0}
	r = MonsterKill(m, fixedRNG{f: 0.0})
	if len(r.Items) != 0 {
		t.Errorf("impossible drop appeared: %v", r.Items)
	}
}

func TestDungeonClearScalesWithMinLevel(t *testing.T) {
	d := &dungeon.Template{
		ID:            "crypt",
		MinLevel:      3,
		ExperienceMin: 100,
		ExperienceMax: 200,
		BatonMin:      50,
		BatonMax:      100,
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		r := DungeonClear(d, rng)
		if r.Experience < 300 || r.Experience > 600 {
			t.Fatalf("experience = %d, want within [300,600]", r.Experience)
		}
		if r.Batons < 150 || r.Batons > 300 {
			t.Fatalf("batons = %d, want within [150,300]", r.Batons)
		}
	}
}

func TestDungeonClearLootQuantity(t *testing.T) {
	d := &dungeon.Template{
		ID:            "crypt",
		MinLevel:      1,
		ExperienceMin: 100,
		ExperienceMax: 200,
		BatonMin:      50,
		BatonMax:      100,
		LootTable:     items.DropTable{"relic": 1.0},
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		r := DungeonClear(d, rng)
		qty := r.Items["relic"]
		if qty < 1 || qty > 3 {
			t.Fatalf("loot quantity = %d, want within [1,3]", qty)
		}
	}

	d.LootTable = items.DropTable{"relic": 0.0}
	r := DungeonClear(d, fixedRNG{f: 0.0})
	if len(r.Items) != 0 {
		t.Errorf("impossible loot appeared: %v", r.Items)
	}
}

func TestSettlementDeterministicReplay(t *testing.T) {
	m := testMonster()
	m.DropTable = items.DropTable{"a": 0.3, "b": 0.7, "c": 0.5}

	first := MonsterKill(m, rand.New(rand.NewSource(42)))
	second := MonsterKill(m, rand.New(rand.NewSource(42)))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different rewards:\n%+v\n%+v", first, second)
	}
}

func TestPetShare(t *testing.T) {
	r := Reward{Experience: 101}
	if got := r.PetShare(); got != 50 {
		t.Errorf("PetShare() = %d, want 50", got)
	}
	if (Reward{}).PetShare() != 0 {
		t.Error("empty reward shares nothing")
	}
}

func TestMerge(t *testing.T) {
	r := Reward{Experience: 10, Batons: 5, Items: map[string]int{"relic": 1}}
	r.Merge(Reward{Experience: 30, Batons: 15, Items: map[string]int{"relic": 2, "gem": 1}})

	want := Reward{Experience: 40, Batons: 20, Items: map[string]int{"relic": 3, "gem": 1}}
	if !reflect.DeepEqual(r, want) {
		t.Errorf("Merge() = %+v, want %+v", r, want)
	}

	var empty Reward
	empty.Merge(Reward{Items: map[string]int{"gem": 1}})
	if empty.Items["gem"] != 1 {
		t.Error("Merge into a zero reward should allocate the item map")
	}
}

func TestUniformDegenerateRange(t *testing.T) {
	m := testMonster()
	m.BatonRewardMin = 15
	m.BatonRewardMax = 15
	r := MonsterKill(m, rand.New(rand.NewSource(time.Now().UnixNano())))
	if r.Batons != 15 {
		t.Errorf("degenerate range batons = %d, want 15", r.Batons)
	}
}
