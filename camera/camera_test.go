package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/colony/components"
)

// 180 x 320 cells of 8 px: a 2560 x 1440 world.
func newTestCamera() *Camera {
	return New(1280, 720, 180, 320, 8)
}

func TestNewFitsWorld(t *testing.T) {
	cam := newTestCamera()

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected camera at (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 0.5 || cam.MinZoom != 0.5 {
		t.Errorf("expected zoom and min zoom 0.5, got %f / %f", cam.Zoom, cam.MinZoom)
	}
}

func TestSmallWorldDoesNotMagnifyByDefault(t *testing.T) {
	cam := New(1280, 720, 10, 10, 8)
	if cam.MinZoom != 1 {
		t.Errorf("expected MinZoom capped at 1, got %f", cam.MinZoom)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(2)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestScreenToCell(t *testing.T) {
	cam := New(800, 800, 10, 10, 80) // World exactly fills the viewport at zoom 1

	tests := []struct {
		name   string
		sx, sy float32
		want   components.Coord
		ok     bool
	}{
		{"top-left", 1, 1, components.Coord{X: 0, Y: 0}, true},
		{"center", 400, 400, components.Coord{X: 5, Y: 5}, true},
		{"bottom-right", 799, 799, components.Coord{X: 9, Y: 9}, true},
		{"column 3 row 7", 250, 590, components.Coord{X: 3, Y: 7}, true},
		{"outside", -5, 10, components.Coord{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cam.ScreenToCell(tt.sx, tt.sy)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ScreenToCell(%v, %v) = %v, %v; want %v, %v", tt.sx, tt.sy, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCellToScreen(t *testing.T) {
	cam := New(800, 800, 10, 10, 80)
	sx, sy, size := cam.CellToScreen(components.Coord{X: 2, Y: 3})
	if sx != 160 || sy != 240 || size != 80 {
		t.Errorf("CellToScreen = (%v, %v, %v), want (160, 240, 80)", sx, sy, size)
	}
}

func TestPanStopsAtEdges(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(2) // Visible world is 640 x 360

	cam.Pan(-100000, -100000)
	if cam.X != 320 || cam.Y != 180 {
		t.Errorf("expected camera clamped to (320, 180), got (%f, %f)", cam.X, cam.Y)
	}

	cam.Pan(100000, 100000)
	if cam.X != 2560-320 || cam.Y != 1440-180 {
		t.Errorf("expected camera clamped to (2240, 1260), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := newTestCamera()

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(100.0) // Above max
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(1)
	// Visible range in world coords: (640, 360) to (1920, 1080)

	if !cam.IsVisible(1280, 720, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(2400, 1300, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(600, 720, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestResizeKeepsZoomValid(t *testing.T) {
	cam := newTestCamera()
	cam.Resize(2560, 2560)
	if cam.Zoom < cam.MinZoom {
		t.Errorf("zoom %f below min %f after resize", cam.Zoom, cam.MinZoom)
	}
	if cam.Y != 720 {
		t.Errorf("world shorter than the viewport should stay centered, got Y=%f", cam.Y)
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(2.5)
	cam.Pan(300, -200)

	cam.Reset()

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected position (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}
