package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/colony/camera"
	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/game"
	"github.com/pthm-cable/colony/inspector"
	"github.com/pthm-cable/colony/renderer"
	"github.com/pthm-cable/colony/telemetry"
)

const controlsLegend = "Space: pause | R: reset | LMB: place | RMB: inspect | Tab: team | Arrows/wheel: camera | Home: fit"

// AppConfig holds the window-side settings of the GUI host.
type AppConfig struct {
	Title      string
	ScreenW    int32
	ScreenH    int32
	CellSize   float32
	Rows, Cols int
	Threaded   bool

	// Perf returns round timings. Nil hides the perf overlay, which is required when
	// the simulation runs on another goroutine.
	Perf func() telemetry.PerfStats
}

// App drives a Simulation from the raylib frame loop: input in, snapshot out, panels on top.
type App struct {
	sim game.Simulation
	cfg AppConfig

	cam       *camera.Camera
	grid      *renderer.GridRenderer
	hud       *HUD
	controls  *ControlsPanel
	perfPanel *PerfPanel
	overlays  *OverlayRegistry
	inspector *inspector.Inspector

	snapshot    game.Snapshot
	hasSnapshot bool

	placing components.ElementKind
	teamIdx int
	paused  bool

	screenW, screenH float32
}

// NewApp creates the GUI host. The raylib window must already be open.
func NewApp(sim game.Simulation, cfg AppConfig) *App {
	a := &App{
		sim:       sim,
		cfg:       cfg,
		cam:       camera.New(float32(cfg.ScreenW), float32(cfg.ScreenH), cfg.Rows, cfg.Cols, cfg.CellSize),
		grid:      renderer.NewGridRenderer(),
		hud:       NewHUD(),
		controls:  NewControlsPanel(10, 100, 240),
		perfPanel: NewPerfPanel(16, cfg.ScreenH-140),
		overlays:  NewOverlayRegistry(),
		inspector: inspector.NewInspector(cfg.ScreenW),
		placing:   components.KindFood,
		screenW:   float32(cfg.ScreenW),
		screenH:   float32(cfg.ScreenH),
	}
	a.overlays.SetEnabled(OverlayTeams, true)
	a.overlays.SetEnabled(OverlayControls, true)
	a.overlays.SetEnabled(OverlayInspector, true)
	a.controls.SetVisible(true)
	return a
}

// Round returns the frame number of the newest snapshot.
func (a *App) Round() int32 {
	return a.snapshot.Frame
}

// Update handles input and pulls the next frame from the simulation.
func (a *App) Update() {
	a.handleInput()

	if a.paused {
		return
	}
	a.sim.Advance()
	if snap, ok := a.sim.Export(); ok {
		a.snapshot = snap
		a.hasSnapshot = true
		a.grid.Upload(&a.snapshot)
	}
	if a.overlays.IsEnabled(OverlayInspector) {
		a.inspector.Refresh(a.sim)
	}
}

// Draw renders one frame.
func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.Color{R: 12, G: 12, B: 16, A: 255})

	a.grid.Draw(a.cam)
	if a.overlays.IsEnabled(OverlayGridLines) {
		a.grid.DrawGridLines(a.cam, 6)
	}
	if at, ok := a.inspector.Selected(); ok && a.overlays.IsEnabled(OverlayInspector) {
		a.grid.DrawHighlight(a.cam, at)
	}

	sw, sh := int32(a.screenW), int32(a.screenH)
	a.hud.Draw(HUDData{
		Title:    a.cfg.Title,
		Round:    a.snapshot.Frame,
		Speed:    a.sim.Options().Speed,
		FPS:      rl.GetFPS(),
		Paused:   a.paused,
		Placing:  a.placing,
		Threaded: a.cfg.Threaded,
	})
	a.drawTeamCursor()

	if a.overlays.IsEnabled(OverlayTeams) && a.hasSnapshot {
		a.hud.DrawTeams(a.snapshot.Teams, sw, sh)
	}
	if a.overlays.IsEnabled(OverlayPerf) && a.cfg.Perf != nil {
		a.perfPanel.Draw(a.cfg.Perf())
	}
	if a.overlays.IsEnabled(OverlayInspector) {
		a.inspector.Draw()
	}

	a.controls.SetVisible(a.overlays.IsEnabled(OverlayControls))
	res := a.controls.Draw(a.sim.Options(), a.placing, a.overlays)
	if res.Changed {
		a.sim.SetOptions(res.Options)
	}
	a.placing = res.Kind
	if res.Reset {
		a.reset()
	}

	a.hud.DrawControls(sw, sh, controlsLegend)
}

// drawTeamCursor shows which team new ants and hives join.
func (a *App) drawTeamCursor() {
	team, ok := a.placementTeam()
	if !ok {
		return
	}
	c := team.Color
	rl.DrawRectangle(10, 98, 10, 10, rl.Color{R: c.R, G: c.G, B: c.B, A: 255})
	rl.DrawText(team.Name, 26, 95, 16, rl.LightGray)
}

func (a *App) placementTeam() (components.Team, bool) {
	if !a.hasSnapshot || len(a.snapshot.Teams) == 0 {
		return components.Team{}, false
	}
	return a.snapshot.Teams[a.teamIdx%len(a.snapshot.Teams)].Team, true
}

func (a *App) reset() {
	a.sim.Reset()
	a.inspector.Deselect()
	a.teamIdx = 0
}

// Unload frees GPU resources.
func (a *App) Unload() {
	a.grid.Unload()
}
