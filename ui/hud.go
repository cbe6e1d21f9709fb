package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/game"
	"github.com/pthm-cable/colony/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Round     int32
	Speed     int
	FPS       int32
	Paused    bool
	Placing   components.ElementKind
	Threaded  bool
	FoodPiles int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	teams    PanelDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		teams:    TeamPanel(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	mode := "inline"
	if data.Threaded {
		mode = "threaded"
	}
	rl.DrawText(
		fmt.Sprintf("Round: %d | Speed: %d | FPS: %d | %s", data.Round, data.Speed, data.FPS, mode),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("Placing: %s", data.Placing), 10, 55, 16, rl.LightGray)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawTeams renders the team stats panel from the latest snapshot.
func (h *HUD) DrawTeams(teams []game.TeamStatus, screenW, screenH int32) {
	items := make([]any, len(teams))
	for i := range teams {
		items[i] = teams[i]
	}
	h.renderer.DrawPanelDescriptor(h.teams, items, screenW, screenH)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// TeamPanel describes one block per team in the stats panel.
func TeamPanel() PanelDescriptor {
	status := func(data any) game.TeamStatus { return data.(game.TeamStatus) }
	return PanelDescriptor{
		ID:     "teams",
		Title:  "Teams",
		Width:  220,
		Anchor: AnchorBottomLeft,
		Sections: []SectionDescriptor{{
			ID: "team",
			Fields: []FieldDescriptor{
				{
					ID:          "name",
					Label:       "Team",
					Widget:      WidgetColorSwatch,
					ColorGetter: func(d any) rl.Color { c := status(d).Team.Color; return rl.Color{R: c.R, G: c.G, B: c.B, A: 255} },
				},
				{
					ID:         "label",
					Label:      "Name",
					Widget:     WidgetText,
					TextGetter: func(d any) string { return status(d).Team.Name },
				},
				{
					ID:     "ants",
					Label:  "Ants",
					Widget: WidgetText,
					Format: "%.0f",
					Getter: func(d any) float32 { return float32(status(d).Ants) },
				},
				{
					ID:      "hive_food",
					Label:   "Stored",
					Widget:  WidgetText,
					Format:  "%.0f",
					Getter:  func(d any) float32 { return float32(status(d).HiveFood) },
					Visible: func(d any) bool { return status(d).HiveAlive },
				},
				{
					ID:         "hive_lost",
					Label:      "Hive",
					Widget:     WidgetText,
					TextGetter: func(any) string { return "destroyed" },
					Visible:    func(d any) bool { return !status(d).HiveAlive },
				},
				{
					ID:     "delivered",
					Label:  "Fed",
					Widget: WidgetText,
					Format: "%.0f",
					Getter: func(d any) float32 { return float32(status(d).Delivered) },
				},
				{ID: "gap", Widget: WidgetSpacer},
			},
		}},
	}
}

// PerfPanel renders the round phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-6, y-6, 260, int32(72+int(telemetry.NumPhases)*14))

	rl.DrawText("Round Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s | %.0f rounds/s", stats.AvgRound.Round(time.Microsecond), stats.RoundsPerSecond), x, y, 14, rl.Yellow)
	y += 16

	frameColor := rl.LightGray
	if stats.BudgetCuts > 0 {
		frameColor = rl.Orange
	}
	rl.DrawText(fmt.Sprintf("%.1f rounds/frame | %d budget cuts", stats.RoundsPerFrame, stats.BudgetCuts), x, y, 12, frameColor)
	y += 16

	for _, ph := range SortedPhases(stats) {
		avg := stats.PhaseAvg[ph]
		pct := stats.PhasePct[ph]

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-9s %8s %5.1f%%", ph, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// SortedPhases orders phases by descending average duration, then by round order.
func SortedPhases(stats telemetry.PerfStats) []telemetry.Phase {
	phases := make([]telemetry.Phase, 0, telemetry.NumPhases)
	for ph := telemetry.Phase(0); ph < telemetry.NumPhases; ph++ {
		phases = append(phases, ph)
	}
	sort.SliceStable(phases, func(i, j int) bool {
		return stats.PhaseAvg[phases[i]] > stats.PhaseAvg[phases[j]]
	})
	return phases
}
