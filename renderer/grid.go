// Package renderer draws exported simulation frames with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/colony/camera"
	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/game"
)

// GridRenderer uploads snapshots into a texture with one texel per cell
// and draws it through the camera.
type GridRenderer struct {
	tex        rl.Texture2D
	texW, texH int
	pixels     []color.RGBA

	initialized bool
}

// NewGridRenderer creates a grid renderer. Textures are created lazily on the first upload.
func NewGridRenderer() *GridRenderer {
	return &GridRenderer{}
}

// Init creates the grid texture (must be called after raylib window is created).
func (r *GridRenderer) Init(cols, rows int) {
	if r.initialized && r.texW == cols && r.texH == rows {
		return
	}
	r.Unload()

	r.texW = cols
	r.texH = rows
	r.pixels = make([]color.RGBA, cols*rows)

	img := rl.GenImageColor(cols, rows, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	// Cells must stay crisp when zoomed
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Upload copies a snapshot into the grid texture.
func (r *GridRenderer) Upload(s *game.Snapshot) {
	if s.Rows == 0 || s.Cols == 0 {
		return
	}
	r.Init(s.Cols, s.Rows)

	for y, row := range s.Colors {
		copy(r.pixels[y*r.texW:(y+1)*r.texW], row)
	}
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the grid texture into the camera's view.
func (r *GridRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}

	sx, sy := cam.WorldToScreen(0, 0)
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dstRect := rl.Rectangle{X: sx, Y: sy, Width: cam.WorldW * cam.Zoom, Height: cam.WorldH * cam.Zoom}
	rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// DrawGridLines outlines every cell once cells are large enough to tell apart.
func (r *GridRenderer) DrawGridLines(cam *camera.Camera, minCellPixels float32) {
	if !r.initialized {
		return
	}
	size := cam.CellSize * cam.Zoom
	if size < minCellPixels {
		return
	}

	lineColor := rl.Color{R: 40, G: 40, B: 40, A: 255}
	left, top := cam.WorldToScreen(0, 0)
	right, bottom := cam.WorldToScreen(cam.WorldW, cam.WorldH)
	for x := 0; x <= r.texW; x++ {
		px := left + float32(x)*size
		if px < 0 || px > cam.ViewportW {
			continue
		}
		rl.DrawLineV(rl.Vector2{X: px, Y: top}, rl.Vector2{X: px, Y: bottom}, lineColor)
	}
	for y := 0; y <= r.texH; y++ {
		py := top + float32(y)*size
		if py < 0 || py > cam.ViewportH {
			continue
		}
		rl.DrawLineV(rl.Vector2{X: left, Y: py}, rl.Vector2{X: right, Y: py}, lineColor)
	}
}

// DrawHighlight outlines one cell, used for the inspected element.
func (r *GridRenderer) DrawHighlight(cam *camera.Camera, at components.Coord) {
	sx, sy, size := cam.CellToScreen(at)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: sx - 1, Y: sy - 1, Width: size + 2, Height: size + 2}, 2, rl.Yellow)
}

// Unload frees GPU resources.
func (r *GridRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
