package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
)

func newEntities(t *testing.T, n int) []ecs.Entity {
	t.Helper()
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = mapper.NewEntity(&components.Position{})
	}
	return out
}

func TestGridDoesExist(t *testing.T) {
	g := NewGrid(4, 6)
	for y := -2; y < 7; y++ {
		for x := -2; x < 9; x++ {
			c := components.Coord{X: x, Y: y}
			want := x >= 0 && x < 6 && y >= 0 && y < 4
			if got := g.DoesExist(c); got != want {
				t.Errorf("DoesExist(%v) = %v, want %v", c, got, want)
			}
			if _, ok := g.Occupant(c); ok {
				t.Errorf("empty grid has occupant at %v", c)
			}
		}
	}
}

func TestGridGetPanicsOutOfBounds(t *testing.T) {
	g := NewGrid(2, 2)
	defer func() {
		if recover() == nil {
			t.Error("Get outside the grid should panic")
		}
	}()
	g.Get(components.Coord{X: 2, Y: 0})
}

func TestCellOccupant(t *testing.T) {
	g := NewGrid(3, 3)
	e := newEntities(t, 1)[0]
	c := components.Coord{X: 1, Y: 2}

	g.Get(c).SetOccupant(e)
	if got, ok := g.Occupant(c); !ok || got != e {
		t.Fatalf("Occupant = %v, %v", got, ok)
	}
	g.Get(c).ClearOccupant()
	if _, ok := g.Occupant(c); ok {
		t.Error("cleared cell still occupied")
	}
}

func TestPheromoneDeposit(t *testing.T) {
	const decay = 5
	trail := Trail{Team: 1, Foraging: true}
	other := Trail{Team: 2, Foraging: true}

	var c Cell
	if !c.Deposit(trail, 10, 0, decay) {
		t.Fatal("first deposit rejected")
	}
	tests := []struct {
		name    string
		value   int
		round   int
		changed bool
		want    int
		wantAge int
	}{
		{"larger value ignored", 12, 1, false, 10, 0},
		{"equal value ignored", 10, 2, false, 10, 0},
		{"smaller value overwrites", 7, 3, true, 7, 3},
		{"expired record replaced by larger", 20, 9, true, 20, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Deposit(trail, tt.value, tt.round, decay); got != tt.changed {
				t.Errorf("Deposit changed = %v, want %v", got, tt.changed)
			}
			v, ok := c.Pheromone(trail, tt.round, decay)
			if !ok || v != tt.want {
				t.Errorf("Pheromone = %d, %v, want %d", v, ok, tt.want)
			}
			if age := c.Pheromones()[0].Age; age != tt.wantAge {
				t.Errorf("age = %d, want %d", age, tt.wantAge)
			}
		})
	}

	if _, ok := c.Pheromone(other, 9, decay); ok {
		t.Error("other team's trail should be absent")
	}
}

func TestPheromoneDecayBoundary(t *testing.T) {
	const decay = 3
	g := NewGrid(1, 1)
	cell := g.Get(components.Coord{})
	trail := Trail{Team: 1}
	cell.Deposit(trail, 4, 10, decay)

	// Cleared exactly when round - age > decay.
	for round := 10; round <= 13; round++ {
		if _, ok := cell.Pheromone(trail, round, decay); !ok {
			t.Errorf("record missing at round %d", round)
		}
		if n := g.DecayPheromones(round, decay); n != 0 {
			t.Errorf("sweep at round %d dropped %d", round, n)
		}
	}
	if _, ok := cell.Pheromone(trail, 14, decay); ok {
		t.Error("record still readable at round 14")
	}
	if n := g.DecayPheromones(14, decay); n != 1 {
		t.Errorf("sweep at round 14 dropped %d, want 1", n)
	}
	if len(cell.Pheromones()) != 0 {
		t.Error("record not swept")
	}
}

func TestElementIndexOrder(t *testing.T) {
	ents := newEntities(t, 5)
	ix := NewElementIndex()

	red := components.Key(components.KindAnt, 1)
	blue := components.Key(components.KindAnt, 2)
	hive := components.Key(components.KindHive, 1)

	ix.Insert(blue, ents[0])
	ix.Insert(components.FoodElement, ents[1])
	ix.Insert(red, ents[2])
	ix.Insert(blue, ents[3])
	ix.Insert(hive, ents[4])

	got := ix.Mobile(nil)
	want := []ecs.Entity{ents[0], ents[3], ents[2], ents[4]}
	if len(got) != len(want) {
		t.Fatalf("Mobile len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Mobile[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	removed := ix.Retain(func(key components.TeamElement, e ecs.Entity) bool {
		return key.Kind != components.KindFood && e != ents[0]
	})
	if len(removed) != 2 || removed[0] != ents[0] || removed[1] != ents[1] {
		t.Errorf("Retain removed %v", removed)
	}
	if ix.Len(blue) != 1 || ix.Get(blue)[0] != ents[3] {
		t.Errorf("blue after retain = %v", ix.Get(blue))
	}
	if ix.Contains(components.FoodElement, ents[1]) {
		t.Error("food still indexed")
	}

	ix.Clear()
	if len(ix.Keys()) != 0 || ix.Len(red) != 0 {
		t.Error("Clear left entries behind")
	}
}

func TestDirtFieldDeterministic(t *testing.T) {
	a := NewDirtField(7, 0.15, 0.6)
	b := NewDirtField(7, 0.15, 0.6)

	cellsA := a.Cells(20, 30)
	cellsB := b.Cells(20, 30)
	if len(cellsA) != len(cellsB) {
		t.Fatalf("same seed gave %d and %d cells", len(cellsA), len(cellsB))
	}
	for i := range cellsA {
		if cellsA[i] != cellsB[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, cellsA[i], cellsB[i])
		}
	}
	for _, c := range cellsA {
		if v := a.Value(c); v <= 0.6 || v > 1 {
			t.Errorf("dirt cell %v has value %f", c, v)
		}
	}

	none := NewDirtField(7, 0.15, 1.0)
	if n := len(none.Cells(20, 30)); n != 0 {
		t.Errorf("threshold 1 produced %d dirt cells", n)
	}
}
