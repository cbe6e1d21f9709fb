package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayToggle(t *testing.T) {
	reg := NewOverlayRegistry()

	if reg.IsEnabled(OverlayGridLines) {
		t.Fatal("overlays start disabled")
	}
	if !reg.Toggle(OverlayGridLines) || !reg.IsEnabled(OverlayGridLines) {
		t.Error("toggle should enable grid lines")
	}
	if reg.Toggle(OverlayGridLines) {
		t.Error("second toggle should disable grid lines")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay should not toggle")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.SetEnabled(OverlayTeams, true)
	reg.SetEnabled(OverlayPerf, true)

	if reg.IsEnabled(OverlayTeams) {
		t.Error("enabling perf should hide team stats")
	}
	got := reg.EnabledOverlays()
	if len(got) != 1 || got[0] != OverlayPerf {
		t.Errorf("enabled = %v, want [perf]", got)
	}
}

func TestOverlayKeys(t *testing.T) {
	reg := NewOverlayRegistry()

	id, state, ok := reg.HandleKeyPress(rl.KeyI)
	if !ok || id != OverlayInspector || !state {
		t.Errorf("HandleKeyPress(I) = %v, %v, %v", id, state, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle")
	}
}

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()
	cats := reg.Categories()
	want := []string{"visual", "panels", "debug"}
	if len(cats) != len(want) {
		t.Fatalf("categories = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category %d = %s, want %s", i, cats[i], want[i])
		}
	}
	if n := len(reg.ByCategory("panels")); n != 3 {
		t.Errorf("panels has %d overlays, want 3", n)
	}
}

func TestPanelOrigin(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 1280 - 200 - 10, 10},
		{AnchorBottomLeft, 10, 720 - 100 - 10},
		{AnchorBottomRight, 1280 - 200 - 10, 720 - 100 - 10},
		{AnchorCenter, 540, 310},
	}
	for _, tt := range tests {
		x, y := PanelOrigin(tt.anchor, 200, 100, 1280, 720, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d: got (%d,%d), want (%d,%d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}
