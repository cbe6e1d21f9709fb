package game

import (
	"reflect"
	"testing"

	"github.com/pthm-cable/colony/components"
)

func TestBasicForaging(t *testing.T) {
	opts := quietOptions()
	opts.StartingFood = 1
	g := New(10, 10, opts, 7)
	ag := g.Grid()
	team := g.AddTeam("red", red, 3)
	hive := putHive(t, ag, components.Coord{X: 0, Y: 0}, team)
	_, ok := ag.PutFood(components.Coord{X: 9, Y: 9}, components.DefaultFoodQuantity)
	mustPut(t, ok, "food", components.Coord{X: 9, Y: 9})

	const limit = 40
	round := 0
	for round = 1; round <= limit; round++ {
		g.RunRound()
		if ag.Delivered(team.ID) > 0 {
			break
		}
	}
	if round > limit {
		t.Fatalf("no delivery within %d rounds", limit)
	}

	h := ag.hiveMap.Get(hive)
	if h.Delivered != 1 {
		t.Errorf("hive delivered = %d, want 1", h.Delivered)
	}
	// The starting unit was spent on the forager in round 1.
	if h.Food != 1 {
		t.Errorf("hive food = %d, want 1", h.Food)
	}
	info, _ := g.Inspect(components.Coord{X: 9, Y: 9})
	if info.Food == nil || info.Food.Quantity != components.DefaultFoodQuantity-1 {
		t.Errorf("food pile = %+v, want one unit taken", info.Food)
	}
}

func TestCombatResolvesInOneRound(t *testing.T) {
	g := New(10, 10, quietOptions(), 1)
	ag := g.Grid()
	redTeam := g.AddTeam("red", red, 1)
	blueTeam := g.AddTeam("blue", blue, 1)
	putHive(t, ag, components.Coord{X: 0, Y: 0}, redTeam)
	putHive(t, ag, components.Coord{X: 9, Y: 9}, blueTeam)
	attacker := putAnt(t, ag, components.Coord{X: 4, Y: 4}, redTeam)
	defender := putAnt(t, ag, components.Coord{X: 5, Y: 4}, blueTeam)
	defenderID := defender.ID()

	g.RunRound()

	if !ag.world.Alive(attacker) {
		t.Fatal("first mover died")
	}
	if ag.world.Alive(defender) {
		t.Error("defender survived")
	}
	if got := ag.CountAnts(blueTeam.ID); got != 0 {
		t.Errorf("blue ants = %d, want 0", got)
	}
	if got := ag.CountAnts(redTeam.ID); got != 1 {
		t.Errorf("red ants = %d, want 1", got)
	}
	if _, ok := ag.grid.Occupant(components.Coord{X: 5, Y: 4}); ok {
		t.Errorf("dead ant %d still occupies its cell", defenderID)
	}
	if got := ag.antMap.Get(attacker).State.Base().Mode; got != components.ModeBattle {
		t.Errorf("attacker mode = %s, want battle", got)
	}
}

func TestHiveDestructionForcesBattle(t *testing.T) {
	g := New(12, 12, quietOptions(), 1)
	ag := g.Grid()
	team := g.AddTeam("red", red, 3)
	hive := putHive(t, ag, components.Coord{X: 11, Y: 11}, team)

	forager := putAnt(t, ag, components.Coord{X: 1, Y: 1}, team)
	carrier := putAnt(t, ag, components.Coord{X: 5, Y: 1}, team)
	ag.antMap.Get(carrier).State.Replace(components.CarryingFrame())
	digger := putAnt(t, ag, components.Coord{X: 1, Y: 5}, team)
	ag.antMap.Get(digger).State.Push(components.DirtFrame())

	h := ag.hiveMap.Get(hive)
	h.Attacked(h.Health)

	g.RunRound()

	tests := []struct {
		name string
		mode components.Mode
	}{
		{"forager", ag.antMap.Get(forager).State.Base().Mode},
		{"carrier", ag.antMap.Get(carrier).State.Base().Mode},
	}
	for _, tt := range tests {
		if tt.mode != components.ModeBattle {
			t.Errorf("%s mode = %s, want battle", tt.name, tt.mode)
		}
	}
	if ag.world.Alive(hive) {
		t.Error("destroyed hive was not swept")
	}

	// The dirt-wrapped ant resumes first and is forced on its next decision.
	if got := ag.antMap.Get(digger).State.Base().Mode; got == components.ModeBattle {
		t.Error("dirt-wrapped ant was forced into battle while wrapped")
	}
	g.RunRound()
	if got := ag.antMap.Get(digger).State.Base().Mode; got != components.ModeBattle {
		t.Errorf("digger mode after second round = %s, want battle", got)
	}
}

func TestDirtObstructionDetour(t *testing.T) {
	opts := quietOptions()
	opts.DirtPenalty = 1.2
	g := New(10, 10, opts, 1)
	ag := g.Grid()
	team := g.AddTeam("red", red, 3)
	putHive(t, ag, components.Coord{X: 9, Y: 9}, team)
	start := components.Coord{X: 0, Y: 0}
	ant := putAnt(t, ag, start, team)
	dirtAt := components.Coord{X: 0, Y: 1}
	dirt, ok := ag.PutDirt(dirtAt)
	mustPut(t, ok, "dirt", dirtAt)
	_, ok = ag.PutFood(components.Coord{X: 0, Y: 4}, 5)
	mustPut(t, ok, "food", components.Coord{X: 0, Y: 4})

	g.RunRound()

	if ag.world.Alive(dirt) {
		t.Error("dirt was not cleared")
	}
	if ag.IsOccupied(dirtAt) {
		t.Error("cleared dirt still occupies its cell")
	}
	if got := ag.posMap.Get(ant).Coord; got != start {
		t.Errorf("ant moved to %v while clearing dirt", got)
	}
	if got := ag.antMap.Get(ant).State.String(); got != "dirt{food}" {
		t.Errorf("state = %s, want dirt{food}", got)
	}

	g.RunRound()

	if got := ag.antMap.Get(ant).State.String(); got != "food" {
		t.Errorf("state = %s, want food", got)
	}
	if got := ag.posMap.Get(ant).Coord; got != dirtAt {
		t.Errorf("ant at %v, want %v", got, dirtAt)
	}
}

func TestSameDestinationFirstMoverWins(t *testing.T) {
	g := New(6, 6, quietOptions(), 1)
	ag := g.Grid()
	team := g.AddTeam("red", red, 3)
	a := putAnt(t, ag, components.Coord{X: 2, Y: 2}, team)
	b := putAnt(t, ag, components.Coord{X: 2, Y: 4}, team)
	contested := components.Coord{X: 2, Y: 3}

	if got := ag.moveElement(a, components.Coord{X: 2, Y: 2}, contested); got != contested {
		t.Fatalf("first mover ended at %v", got)
	}
	if got := ag.moveElement(b, components.Coord{X: 2, Y: 4}, contested); got != (components.Coord{X: 2, Y: 4}) {
		t.Errorf("late mover ended at %v, want to stay", got)
	}

	occ, ok := ag.grid.Occupant(contested)
	if !ok || occ != a {
		t.Error("contested cell does not hold the first mover")
	}
	if occ, ok := ag.grid.Occupant(components.Coord{X: 2, Y: 4}); !ok || occ != b {
		t.Error("late mover lost its cell")
	}
	if _, ok := ag.grid.Occupant(components.Coord{X: 2, Y: 2}); ok {
		t.Error("first mover's old cell is still occupied")
	}
}

// checkConsistency verifies that grid and index agree about every element.
func checkConsistency(t *testing.T, ag *AntGrid) {
	t.Helper()
	indexed := 0
	for _, key := range ag.index.Keys() {
		for _, e := range ag.index.Get(key) {
			indexed++
			pos := ag.posMap.Get(e).Coord
			occ, ok := ag.grid.Occupant(pos)
			if !ok || occ != e {
				t.Fatalf("round %d: %s %d at %v is not the occupant of its cell", ag.Round(), key, e.ID(), pos)
			}
			if got := ag.tagMap.Get(e).TeamElement; got != key {
				t.Fatalf("round %d: entity %d indexed as %s but tagged %s", ag.Round(), e.ID(), key, got)
			}
		}
	}
	occupied := 0
	for y := 0; y < ag.Rows(); y++ {
		for x := 0; x < ag.Cols(); x++ {
			if _, ok := ag.grid.Occupant(components.Coord{X: x, Y: y}); ok {
				occupied++
			}
		}
	}
	if occupied != indexed {
		t.Fatalf("round %d: %d occupied cells, %d indexed elements", ag.Round(), occupied, indexed)
	}
}

func TestGridAndIndexStayConsistent(t *testing.T) {
	opts := DefaultOptions()
	g := New(30, 40, opts, 11)
	g.Reset()
	checkConsistency(t, g.Grid())
	for i := 0; i < 300; i++ {
		g.RunRound()
		checkConsistency(t, g.Grid())
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := New(25, 25, DefaultOptions(), 42)
	b := New(25, 25, DefaultOptions(), 42)
	a.Reset()
	b.Reset()

	for i := 0; i < 100; i++ {
		sa, _ := a.Export()
		sb, _ := b.Export()
		if !reflect.DeepEqual(sa, sb) {
			t.Fatalf("snapshots diverged at round %d", i)
		}
		a.RunRound()
		b.RunRound()
	}
}
