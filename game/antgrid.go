package game

import (
	"math/rand"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/systems"
	"github.com/pthm-cable/colony/telemetry"
)

// AntGrid is the round driver: the element arena, the grid of cells referencing it,
// and the team index over it. Every element is an ECS entity; cells and the index
// store entity ids only.
type AntGrid struct {
	world *ecs.World

	// Creation mappers, one per element variant
	antMapper  *ecs.Map3[components.Position, components.Tag, components.Ant]
	foodMapper *ecs.Map3[components.Position, components.Tag, components.Food]
	hiveMapper *ecs.Map3[components.Position, components.Tag, components.Hive]
	dirtMapper *ecs.Map3[components.Position, components.Tag, components.Dirt]

	// Individual component mappers for lookups
	posMap  *ecs.Map[components.Position]
	tagMap  *ecs.Map[components.Tag]
	antMap  *ecs.Map[components.Ant]
	foodMap *ecs.Map[components.Food]
	hiveMap *ecs.Map[components.Hive]
	dirtMap *ecs.Map[components.Dirt]

	antFilter *ecs.Filter2[components.Tag, components.Ant]

	grid  *systems.Grid
	index *systems.ElementIndex

	teams     []components.Team
	delivered map[int]int // Lifetime deliveries per team id

	opts  Options
	rng   *rand.Rand
	round int32

	perf   *telemetry.PerfCollector
	events func(telemetry.Event)

	mobile []ecs.Entity // Scratch list reused every round
}

// NewAntGrid allocates an empty rows x cols grid.
func NewAntGrid(rows, cols int, opts Options, rng *rand.Rand) *AntGrid {
	ag := &AntGrid{
		grid:      systems.NewGrid(rows, cols),
		index:     systems.NewElementIndex(),
		delivered: make(map[int]int),
		opts:      opts.Sanitize(),
		rng:       rng,
	}
	ag.initWorld()
	return ag
}

func (ag *AntGrid) initWorld() {
	world := ecs.NewWorld()
	ag.world = world
	ag.antMapper = ecs.NewMap3[components.Position, components.Tag, components.Ant](world)
	ag.foodMapper = ecs.NewMap3[components.Position, components.Tag, components.Food](world)
	ag.hiveMapper = ecs.NewMap3[components.Position, components.Tag, components.Hive](world)
	ag.dirtMapper = ecs.NewMap3[components.Position, components.Tag, components.Dirt](world)
	ag.posMap = ecs.NewMap[components.Position](world)
	ag.tagMap = ecs.NewMap[components.Tag](world)
	ag.antMap = ecs.NewMap[components.Ant](world)
	ag.foodMap = ecs.NewMap[components.Food](world)
	ag.hiveMap = ecs.NewMap[components.Hive](world)
	ag.dirtMap = ecs.NewMap[components.Dirt](world)
	ag.antFilter = ecs.NewFilter2[components.Tag, components.Ant](world)
}

// Clear removes every element, trail and team and restarts the round counter.
func (ag *AntGrid) Clear() {
	ag.initWorld()
	ag.grid.Clear()
	ag.index.Clear()
	ag.teams = nil
	clear(ag.delivered)
	ag.round = 0
}

// Rows returns the grid height.
func (ag *AntGrid) Rows() int { return ag.grid.Rows() }

// Cols returns the grid width.
func (ag *AntGrid) Cols() int { return ag.grid.Cols() }

// Round returns the number of completed rounds.
func (ag *AntGrid) Round() int32 { return ag.round }

// Options returns the current options.
func (ag *AntGrid) Options() Options { return ag.opts }

// SetOptions replaces all options.
func (ag *AntGrid) SetOptions(o Options) { ag.opts = o.Sanitize() }

// AddTeam registers a team so its elements can be placed and coloured.
func (ag *AntGrid) AddTeam(t components.Team) {
	for i, existing := range ag.teams {
		if existing.Equal(t) {
			ag.teams[i] = t
			return
		}
	}
	ag.teams = append(ag.teams, t)
}

// Teams returns a copy of the registered teams in registration order.
func (ag *AntGrid) Teams() []components.Team { return slices.Clone(ag.teams) }

// Team looks up a registered team by id.
func (ag *AntGrid) Team(id int) (components.Team, bool) {
	for _, t := range ag.teams {
		if t.ID == id {
			return t, true
		}
	}
	return components.Team{}, false
}

// SetPerf attaches a perf collector that receives phase boundaries. Nil disables timing.
func (ag *AntGrid) SetPerf(p *telemetry.PerfCollector) { ag.perf = p }

// SetEventHandler installs the telemetry event sink. Nil disables events.
func (ag *AntGrid) SetEventHandler(fn func(telemetry.Event)) { ag.events = fn }

func (ag *AntGrid) emit(ev telemetry.Event) {
	if ag.events != nil {
		ag.events(ev)
	}
}

func (ag *AntGrid) startPhase(phase telemetry.Phase) {
	if ag.perf != nil {
		ag.perf.StartPhase(phase)
	}
}

// place inserts a new element unless the cell is occupied or out of bounds.
func (ag *AntGrid) place(at components.Coord, key components.TeamElement, create func(*components.Position, *components.Tag) ecs.Entity) (ecs.Entity, bool) {
	if ag.IsOccupied(at) {
		return ecs.Entity{}, false
	}
	pos := components.Position{Coord: at}
	tag := components.Tag{TeamElement: key}
	e := create(&pos, &tag)
	ag.grid.Get(at).SetOccupant(e)
	ag.index.Insert(key, e)
	return e, true
}

// PutAnt places a foraging ant of team at c.
func (ag *AntGrid) PutAnt(at components.Coord, team components.Team) (ecs.Entity, bool) {
	e, ok := ag.place(at, components.Key(components.KindAnt, team.ID), func(p *components.Position, t *components.Tag) ecs.Entity {
		ant := components.NewAnt(team, ag.opts.Propagation)
		return ag.antMapper.NewEntity(p, t, &ant)
	})
	if ok {
		ag.emit(telemetry.NewSpawnEvent(ag.round, e.ID(), team.ID, at))
	}
	return e, ok
}

// PutFood places a food pile holding quantity units at c.
func (ag *AntGrid) PutFood(at components.Coord, quantity int) (ecs.Entity, bool) {
	if quantity <= 0 {
		quantity = components.DefaultFoodQuantity
	}
	return ag.place(at, components.FoodElement, func(p *components.Position, t *components.Tag) ecs.Entity {
		food := components.NewFood(quantity)
		return ag.foodMapper.NewEntity(p, t, &food)
	})
}

// PutHive places a hive of team at c holding the configured starting food.
func (ag *AntGrid) PutHive(at components.Coord, team components.Team) (ecs.Entity, bool) {
	return ag.place(at, components.Key(components.KindHive, team.ID), func(p *components.Position, t *components.Tag) ecs.Entity {
		hive := components.NewHive(team, ag.opts.StartingFood)
		return ag.hiveMapper.NewEntity(p, t, &hive)
	})
}

// PutDirt places an obstruction at c.
func (ag *AntGrid) PutDirt(at components.Coord) (ecs.Entity, bool) {
	return ag.place(at, components.DirtElement, func(p *components.Position, t *components.Tag) ecs.Entity {
		dirt := components.Dirt{}
		return ag.dirtMapper.NewEntity(p, t, &dirt)
	})
}

// Put handles a placement request. Requests for occupied or out-of-bounds cells, unknown
// teams or unplaceable kinds are dropped and report false.
func (ag *AntGrid) Put(p Placement) bool {
	var ok bool
	switch p.Kind {
	case components.KindAnt, components.KindHive:
		team, known := ag.Team(p.Team)
		if !known {
			return false
		}
		if p.Kind == components.KindAnt {
			_, ok = ag.PutAnt(p.At, team)
		} else {
			_, ok = ag.PutHive(p.At, team)
		}
	case components.KindFood:
		_, ok = ag.PutFood(p.At, p.Quantity)
	case components.KindDirt:
		_, ok = ag.PutDirt(p.At)
	}
	return ok
}

// Placement is a request to insert one element at a coordinate.
type Placement struct {
	Kind     components.ElementKind
	At       components.Coord
	Team     int // Team id for ants and hives
	Quantity int // Food quantity, 0 for the default
}
