package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/colony/config"
	"github.com/pthm-cable/colony/game"
	"github.com/pthm-cable/colony/telemetry"
	"github.com/pthm-cable/colony/terminal"
	"github.com/pthm-cable/colony/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "gui", "Presentation: gui, tui or headless")
	rows := flag.Int("rows", 0, "Grid rows (0 = use config)")
	cols := flag.Int("cols", 0, "Grid columns (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxRounds := flag.Int("max-rounds", 0, "Stop after N rounds (0 = unlimited)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Rounds per stats window (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logFile := flag.String("log-file", "", "Write logs to this file instead of the default stream")
	threaded := flag.Bool("threaded", false, "Run the simulation on its own goroutine (gui and tui)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	closeLog, err := setupLogging(*mode, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	g, err := game.NewGameWithSettings(game.Settings{
		Seed:        *seed,
		Rows:        *rows,
		Cols:        *cols,
		LogStats:    *logStats,
		StatsWindow: *statsWindow,
		OutputDir:   *outputDir,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	g.Reset()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting simulation",
		"mode", *mode,
		"seed", g.Seed(),
		"rows", g.Grid().Rows(),
		"cols", g.Grid().Cols(),
		"max_rounds", *maxRounds,
		"threaded", *threaded,
	)

	switch *mode {
	case "headless":
		err = runHeadless(ctx, g, *maxRounds)
	case "gui", "tui":
		var sim game.Simulation = g
		if *threaded {
			r := game.NewRunner(g, cfg.Runner.ExportBuffer, cfg.Runner.PlacementBuffer)
			r.Start(ctx)
			sim = r
		}
		if *mode == "gui" {
			err = runGUI(sim, g, cfg, *maxRounds, *threaded)
		} else {
			err = runTUI(ctx, sim, cfg, *maxRounds)
		}
		if cerr := sim.Close(); cerr != nil && err == nil {
			err = cerr
		}
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}

	if err != nil {
		slog.Error("simulation ended with error", "error", err)
		os.Exit(1)
	}
}

// setupLogging installs the default logger. Headless runs log JSON to stdout; interactive
// modes log only when a file is given.
func setupLogging(mode, path string) (func(), error) {
	noop := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return noop, err
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
		return func() { f.Close() }, nil
	}

	if mode == "headless" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return noop, nil
	}
	// Interactive modes own the terminal.
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return noop, nil
}

func runHeadless(ctx context.Context, g *game.Game, maxRounds int) error {
	defer g.Close()
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "round", g.Round())
			return nil
		default:
		}

		g.RunRound()

		if maxRounds > 0 && int(g.Round()) >= maxRounds {
			slog.Info("max rounds reached", "round", g.Round())
			logFinalStandings(g.Grid().TeamStatuses())
			return nil
		}
	}
}

func logFinalStandings(teams []game.TeamStatus) {
	for _, ts := range teams {
		slog.Info("team",
			"name", ts.Team.Name,
			"ants", ts.Ants,
			"hive_alive", ts.HiveAlive,
			"hive_food", ts.HiveFood,
			"delivered", ts.Delivered,
		)
	}
}

func runGUI(sim game.Simulation, g *game.Game, cfg *config.Config, maxRounds int, threaded bool) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Colony")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape closes the inspector, not the window.
	rl.SetExitKey(0)

	appCfg := ui.AppConfig{
		Title:    "Colony",
		ScreenW:  int32(cfg.Screen.Width),
		ScreenH:  int32(cfg.Screen.Height),
		CellSize: float32(cfg.Screen.CellSize),
		Rows:     g.Grid().Rows(),
		Cols:     g.Grid().Cols(),
		Threaded: threaded,
	}
	if !threaded {
		appCfg.Perf = func() telemetry.PerfStats { return g.Perf().Stats() }
	}

	app := ui.NewApp(sim, appCfg)
	defer app.Unload()

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()

		if maxRounds > 0 && int(app.Round()) >= maxRounds {
			slog.Info("max rounds reached", "round", app.Round())
			break
		}
	}
	return nil
}

func runTUI(ctx context.Context, sim game.Simulation, cfg *config.Config, maxRounds int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	t := terminal.New(screen, sim, cfg.Screen.TargetFPS)
	t.MaxRounds = int32(maxRounds)
	return t.Run(ctx)
}
