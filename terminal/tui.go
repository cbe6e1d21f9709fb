// Package terminal renders the simulation in a text terminal with tcell.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/game"
)

// cellWidth is the number of terminal columns per grid cell, so cells look roughly square.
const cellWidth = 2

type action uint8

const (
	actionNone action = iota
	actionQuit
	actionReset
	actionFaster
	actionSlower
	actionPause
	actionNextTeam
	actionPlaceFood
	actionPlaceDirt
	actionPlaceHive
	actionPlaceAnt
	actionScrollUp
	actionScrollDown
	actionScrollLeft
	actionScrollRight
)

// keyAction maps a key press to an action.
func keyAction(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyUp:
		return actionScrollUp
	case tcell.KeyDown:
		return actionScrollDown
	case tcell.KeyLeft:
		return actionScrollLeft
	case tcell.KeyRight:
		return actionScrollRight
	case tcell.KeyTab:
		return actionNextTeam
	case tcell.KeyRune:
	default:
		return actionNone
	}

	switch r {
	case 'q':
		return actionQuit
	case 'r':
		return actionReset
	case '+', '=':
		return actionFaster
	case '-':
		return actionSlower
	case ' ':
		return actionPause
	case 't':
		return actionNextTeam
	case 'f':
		return actionPlaceFood
	case 'd':
		return actionPlaceDirt
	case 'h':
		return actionPlaceHive
	case 'a':
		return actionPlaceAnt
	}
	return actionNone
}

// TUI drives a Simulation from a tcell screen. The bottom row is a status line.
type TUI struct {
	screen tcell.Screen
	sim    game.Simulation
	frame  time.Duration

	snapshot    game.Snapshot
	hasSnapshot bool

	placing components.ElementKind
	teamIdx int
	paused  bool
	status  string

	// Scroll offset in cells
	offX, offY int

	// MaxRounds stops the loop once a snapshot reaches it; 0 runs until quit.
	MaxRounds int32
}

// New creates a text host on an initialized screen. fps bounds the redraw rate.
func New(screen tcell.Screen, sim game.Simulation, fps int) *TUI {
	if fps <= 0 {
		fps = 30
	}
	screen.EnableMouse()
	return &TUI{
		screen:  screen,
		sim:     sim,
		frame:   time.Second / time.Duration(fps),
		placing: components.KindFood,
	}
}

// Run processes input and frames until the user quits, ctx ends or MaxRounds is reached.
func (t *TUI) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.step()
			t.draw()
			if t.MaxRounds > 0 && t.snapshot.Frame >= t.MaxRounds {
				return nil
			}
		}
	}
}

// step pulls the next frame unless paused.
func (t *TUI) step() {
	if t.paused {
		return
	}
	t.sim.Advance()
	if snap, ok := t.sim.Export(); ok {
		t.snapshot = snap
		t.hasSnapshot = true
	}
}

// handleEvent reports false when the loop should end.
func (t *TUI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.apply(keyAction(ev.Key(), ev.Rune()))
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *TUI) apply(a action) bool {
	switch a {
	case actionQuit:
		return false
	case actionReset:
		t.sim.Reset()
		t.teamIdx = 0
		t.status = "reset"
	case actionFaster, actionSlower:
		opts := t.sim.Options()
		delta := 1
		if a == actionSlower {
			delta = -1
		}
		t.sim.SetOptions(opts.With(game.OptSpeed, float32(opts.Speed+delta)))
	case actionPause:
		t.paused = !t.paused
	case actionNextTeam:
		t.teamIdx++
	case actionPlaceFood:
		t.placing = components.KindFood
	case actionPlaceDirt:
		t.placing = components.KindDirt
	case actionPlaceHive:
		t.placing = components.KindHive
	case actionPlaceAnt:
		t.placing = components.KindAnt
	case actionScrollUp:
		t.offY = max(t.offY-1, 0)
	case actionScrollDown:
		t.offY = min(t.offY+1, max(t.snapshot.Rows-1, 0))
	case actionScrollLeft:
		t.offX = max(t.offX-1, 0)
	case actionScrollRight:
		t.offX = min(t.offX+1, max(t.snapshot.Cols-1, 0))
	}
	return true
}

// handleMouse places on a left click and inspects on a right click.
func (t *TUI) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	cell, ok := t.screenToCell(x, y)
	if !ok {
		return
	}

	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		p := game.Placement{Kind: t.placing, At: cell}
		if t.placing.Teamed() {
			team, ok := t.placementTeam()
			if !ok {
				return
			}
			p.Team = team.ID
		}
		if !t.sim.Put(p) {
			t.status = fmt.Sprintf("%s at %s dropped", t.placing, cell)
		}
	case ev.Buttons()&tcell.Button2 != 0:
		t.status = describe(t.sim, cell)
	}
}

func describe(sim game.Simulation, c components.Coord) string {
	info, ok := sim.Inspect(c)
	if !ok {
		return fmt.Sprintf("%s: unavailable", c)
	}
	s := fmt.Sprintf("%s: %s", c, info.Kind)
	if info.TeamName != "" {
		s += " " + info.TeamName
	}
	if info.State != "" {
		s += " " + info.State
	}
	switch {
	case info.Ant != nil:
		s += fmt.Sprintf(" hp=%d", info.Ant.Health)
	case info.Hive != nil:
		s += fmt.Sprintf(" hp=%d food=%d", info.Hive.Health, info.Hive.Food)
	case info.Food != nil:
		s += fmt.Sprintf(" qty=%d", info.Food.Quantity)
	}
	if n := len(info.Pheromones); n > 0 {
		s += fmt.Sprintf(" trails=%d", n)
	}
	return s
}

// screenToCell maps a terminal position to a grid cell through the scroll offset.
func (t *TUI) screenToCell(x, y int) (components.Coord, bool) {
	_, h := t.screen.Size()
	if y >= h-1 || x < 0 || y < 0 {
		return components.Coord{}, false
	}
	c := components.Coord{X: x/cellWidth + t.offX, Y: y + t.offY}
	if c.X >= t.snapshot.Cols || c.Y >= t.snapshot.Rows {
		return components.Coord{}, false
	}
	return c, true
}

func (t *TUI) placementTeam() (components.Team, bool) {
	if !t.hasSnapshot || len(t.snapshot.Teams) == 0 {
		return components.Team{}, false
	}
	return t.snapshot.Teams[t.teamIdx%len(t.snapshot.Teams)].Team, true
}

// styleFor paints a cell by its background colour.
func styleFor(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (t *TUI) draw() {
	t.screen.Clear()
	w, h := t.screen.Size()

	if t.hasSnapshot {
		for sy := 0; sy < h-1; sy++ {
			gy := sy + t.offY
			if gy >= t.snapshot.Rows {
				break
			}
			row := t.snapshot.Colors[gy]
			for sx := 0; sx+cellWidth <= w; sx += cellWidth {
				gx := sx/cellWidth + t.offX
				if gx >= t.snapshot.Cols {
					break
				}
				style := styleFor(row[gx])
				for i := 0; i < cellWidth; i++ {
					t.screen.SetContent(sx+i, sy, ' ', nil, style)
				}
			}
		}
	}

	t.drawStatus(w, h)
	t.screen.Show()
}

func (t *TUI) drawStatus(w, h int) {
	line := t.statusLine()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	x := 0
	for _, r := range line {
		if x >= w {
			break
		}
		t.screen.SetContent(x, h-1, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		t.screen.SetContent(x, h-1, ' ', nil, style)
	}
}

func (t *TUI) statusLine() string {
	state := "run"
	if t.paused {
		state = "pause"
	}
	line := fmt.Sprintf(" round %d | speed %d | %s | place %s", t.snapshot.Frame, t.sim.Options().Speed, state, t.placing)
	if team, ok := t.placementTeam(); ok {
		line += " (" + team.Name + ")"
	}
	for _, ts := range t.snapshot.Teams {
		hive := "+"
		if !ts.HiveAlive {
			hive = "x"
		}
		line += fmt.Sprintf(" | %s %d%s %d", ts.Team.Name, ts.Ants, hive, ts.Delivered)
	}
	if t.status != "" {
		line += " | " + t.status
	}
	return line
}
