package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/config"
	"github.com/pthm-cable/colony/telemetry"
)

// Settings configures a Game beyond its engine options.
type Settings struct {
	Seed        int64    // RNG seed, 0 = time-based
	Rows, Cols  int      // Grid size, 0 = config world size
	Options     *Options // nil = config options
	LogStats    bool     // Log window stats via slog
	StatsWindow int      // Rounds per stats window, 0 = config
	OutputDir   string   // CSV output directory, empty = disabled

	// Config overrides the global config (used by the tuner to run variants in parallel).
	Config *config.Config

	// StatsCallback is called on each window flush if set.
	StatsCallback func(telemetry.WindowStats)
}

// Game is the single-threaded simulation: an AntGrid plus teams, setup and telemetry.
type Game struct {
	grid *AntGrid
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	nextTeamID int

	// Telemetry
	collector     *telemetry.Collector
	lifetime      *telemetry.LifetimeTracker
	milestones    *telemetry.MilestoneDetector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastStats     telemetry.WindowStats

	frameBudget time.Duration
}

// New creates an empty rows x cols game with no teams. Teams and elements are added with
// AddTeam and Put, or with Reset.
func New(rows, cols int, opts Options, seed int64) *Game {
	g, err := NewGameWithSettings(Settings{Seed: seed, Rows: rows, Cols: cols, Options: &opts})
	if err != nil {
		// Only output setup can fail and it is disabled here.
		panic(fmt.Sprintf("game: %v", err))
	}
	return g
}

// NewGameWithSettings creates an empty game from settings.
func NewGameWithSettings(s Settings) (*Game, error) {
	cfg := s.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rows, cols := s.Rows, s.Cols
	if rows <= 0 {
		rows = cfg.World.Rows
	}
	if cols <= 0 {
		cols = cfg.World.Cols
	}
	opts := OptionsFromConfig(cfg)
	if s.Options != nil {
		opts = s.Options.Sanitize()
	}
	window := s.StatsWindow
	if window <= 0 {
		window = cfg.Telemetry.StatsWindow
	}

	rng := rand.New(rand.NewSource(seed))
	g := &Game{
		grid:          NewAntGrid(rows, cols, opts, rng),
		cfg:           cfg,
		rng:           rng,
		seed:          seed,
		collector:     telemetry.NewCollector(window),
		lifetime:      telemetry.NewLifetimeTracker(),
		milestones:    telemetry.NewMilestoneDetector(cfg.Telemetry.HistorySize, cfg.Telemetry.SurgeMultiplier),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:      s.LogStats,
		statsCallback: s.StatsCallback,
		frameBudget:   time.Duration(cfg.Runner.FrameBudgetMS) * time.Millisecond,
	}
	g.grid.SetPerf(g.perf)
	g.grid.SetEventHandler(g.handleEvent)

	if s.OutputDir != "" {
		om, err := telemetry.NewOutputManager(s.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.output = om
	}
	return g, nil
}

// Grid exposes the round driver.
func (g *Game) Grid() *AntGrid { return g.grid }

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 { return g.seed }

// Round returns the number of completed rounds.
func (g *Game) Round() int32 { return g.grid.Round() }

// Options returns the current engine options.
func (g *Game) Options() Options { return g.grid.Options() }

// SetOptions replaces all engine options.
func (g *Game) SetOptions(o Options) { g.grid.SetOptions(o) }

// AddTeam creates a team with a fresh id and registers it.
func (g *Game) AddTeam(name string, c color.RGBA, health int) components.Team {
	t := components.Team{ID: g.nextTeamID, Name: name, Color: c, Health: health}
	g.nextTeamID++
	g.grid.AddTeam(t)
	return t
}

// Teams returns the current teams.
func (g *Game) Teams() []components.Team { return g.grid.Teams() }

// Put places an element. It reports false when the request was dropped.
func (g *Game) Put(p Placement) bool {
	return g.grid.Put(p)
}

// RunRound advances one round and flushes telemetry when a window closes.
func (g *Game) RunRound() {
	g.perf.StartRound()
	g.grid.RunRound()
	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perf.EndRound()
}

// Run advances n rounds.
func (g *Game) Run(n int) {
	for i := 0; i < n; i++ {
		g.RunRound()
	}
}

// RunDynamic advances up to Options.Speed rounds, stopping early once budget has elapsed.
// At least one round always runs. It returns the number of rounds run.
func (g *Game) RunDynamic(budget time.Duration) int {
	start := time.Now()
	speed := g.grid.Options().Speed
	n := 0
	for n < speed {
		g.RunRound()
		n++
		if budget > 0 && time.Since(start) >= budget {
			break
		}
	}
	g.perf.RecordFrame(n, n < speed)
	return n
}

// Advance runs one presentation frame worth of rounds within the configured frame budget.
func (g *Game) Advance() {
	g.RunDynamic(g.frameBudget)
}

// Export returns a render snapshot.
func (g *Game) Export() (Snapshot, bool) {
	return g.grid.Export(), true
}

// Inspect describes the cell at c.
func (g *Game) Inspect(c components.Coord) (ElementInfo, bool) {
	return g.grid.Inspect(c)
}

// Stats returns the most recently flushed window.
func (g *Game) Stats() telemetry.WindowStats { return g.lastStats }

// Perf returns the perf collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	if g.output == nil {
		return nil
	}
	err := g.output.Close()
	g.output = nil
	if err != nil {
		slog.Error("failed to close output", "error", err)
	}
	return err
}
