package terminal

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/config"
	"github.com/pthm-cable/colony/game"
)

func init() {
	config.MustInit("")
}

func newTestTUI(t *testing.T) (*TUI, *game.Game) {
	t.Helper()
	opts := game.DefaultOptions()
	opts.Speed = 1
	opts.StartingFood = 0
	g := game.New(6, 8, opts, 1)
	team := g.AddTeam("red", color.RGBA{R: 255, A: 255}, 5)
	g.Put(game.Placement{Kind: components.KindHive, At: components.Coord{X: 1, Y: 1}, Team: team.ID})
	g.Put(game.Placement{Kind: components.KindFood, At: components.Coord{X: 6, Y: 4}, Quantity: 3})

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(20, 8)
	t.Cleanup(screen.Fini)

	return New(screen, g, 30), g
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want action
	}{
		{"q quits", tcell.KeyRune, 'q', actionQuit},
		{"escape quits", tcell.KeyEscape, 0, actionQuit},
		{"r resets", tcell.KeyRune, 'r', actionReset},
		{"plus", tcell.KeyRune, '+', actionFaster},
		{"equals", tcell.KeyRune, '=', actionFaster},
		{"minus", tcell.KeyRune, '-', actionSlower},
		{"food", tcell.KeyRune, 'f', actionPlaceFood},
		{"dirt", tcell.KeyRune, 'd', actionPlaceDirt},
		{"hive", tcell.KeyRune, 'h', actionPlaceHive},
		{"ant", tcell.KeyRune, 'a', actionPlaceAnt},
		{"space pauses", tcell.KeyRune, ' ', actionPause},
		{"arrow scrolls", tcell.KeyLeft, 0, actionScrollLeft},
		{"unbound rune", tcell.KeyRune, 'z', actionNone},
		{"unbound key", tcell.KeyF5, 0, actionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyAction(tt.key, tt.r); got != tt.want {
				t.Errorf("keyAction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyChangesPlacementAndSpeed(t *testing.T) {
	tui, g := newTestTUI(t)

	for a, kind := range map[action]components.ElementKind{
		actionPlaceDirt: components.KindDirt,
		actionPlaceHive: components.KindHive,
		actionPlaceAnt:  components.KindAnt,
		actionPlaceFood: components.KindFood,
	} {
		tui.apply(a)
		if tui.placing != kind {
			t.Errorf("placing = %s, want %s", tui.placing, kind)
		}
	}

	tui.apply(actionFaster)
	if g.Options().Speed != 2 {
		t.Errorf("speed = %d, want 2", g.Options().Speed)
	}
	tui.apply(actionSlower)
	tui.apply(actionSlower)
	if g.Options().Speed != 1 {
		t.Errorf("speed = %d, want floor of 1", g.Options().Speed)
	}

	if tui.apply(actionQuit) {
		t.Error("quit should end the loop")
	}
}

func TestStepAndDraw(t *testing.T) {
	tui, _ := newTestTUI(t)

	tui.step()
	if !tui.hasSnapshot || tui.snapshot.Frame != 1 {
		t.Fatalf("snapshot frame = %d, want 1", tui.snapshot.Frame)
	}
	tui.draw()

	line := tui.statusLine()
	for _, want := range []string{"round 1", "place food", "(red)", "red 0+"} {
		if !strings.Contains(line, want) {
			t.Errorf("status %q missing %q", line, want)
		}
	}

	tui.apply(actionPause)
	tui.step()
	if tui.snapshot.Frame != 1 {
		t.Error("paused host should not advance")
	}
}

func TestScreenToCell(t *testing.T) {
	tui, _ := newTestTUI(t)
	tui.step()

	tests := []struct {
		x, y int
		want components.Coord
		ok   bool
	}{
		{0, 0, components.Coord{X: 0, Y: 0}, true},
		{1, 0, components.Coord{X: 0, Y: 0}, true},
		{5, 3, components.Coord{X: 2, Y: 3}, true},
		{15, 5, components.Coord{X: 7, Y: 5}, true},
		{17, 0, components.Coord{}, false}, // past the last column
		{0, 7, components.Coord{}, false},  // status line
	}
	for _, tt := range tests {
		got, ok := tui.screenToCell(tt.x, tt.y)
		if ok != tt.ok || got != tt.want {
			t.Errorf("screenToCell(%d,%d) = %v,%v want %v,%v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}

	tui.apply(actionScrollRight)
	tui.apply(actionScrollDown)
	if got, _ := tui.screenToCell(0, 0); got != (components.Coord{X: 1, Y: 1}) {
		t.Errorf("scrolled origin = %v, want (1,1)", got)
	}
}

func TestDescribe(t *testing.T) {
	tui, g := newTestTUI(t)

	got := describe(g, components.Coord{X: 6, Y: 4})
	if !strings.Contains(got, "food") || !strings.Contains(got, "qty=3") {
		t.Errorf("describe food = %q", got)
	}
	got = describe(g, components.Coord{X: 1, Y: 1})
	if !strings.Contains(got, "hive red") {
		t.Errorf("describe hive = %q", got)
	}
	if got := describe(tui.sim, components.Coord{X: 50, Y: 50}); !strings.Contains(got, "unavailable") {
		t.Errorf("describe outside = %q", got)
	}
}
