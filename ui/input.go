package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/colony/game"
)

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.teamIdx++
	}

	// Speed with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		a.adjustSpeed(-1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		a.adjustSpeed(1)
	}

	for _, desc := range a.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			a.overlays.Toggle(desc.ID)
		}
	}

	a.handleCameraInput()
	a.handleMouse()
}

func (a *App) adjustSpeed(delta int) {
	opts := a.sim.Options()
	a.sim.SetOptions(opts.With(game.OptSpeed, float32(opts.Speed+delta)))
}

// handleMouse places the selected kind on left click and inspects on right click.
// Clicks over a panel belong to the panel.
func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	if a.inspector.HandleClose(mouse.X, mouse.Y) {
		return
	}
	if a.inspector.Contains(mouse.X, mouse.Y) || a.controls.Contains(mouse.X, mouse.Y, a.overlays) {
		return
	}

	cell, ok := a.cam.ScreenToCell(mouse.X, mouse.Y)
	if !ok {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		a.inspector.Select(cell)
		a.overlays.SetEnabled(OverlayInspector, true)
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	p := game.Placement{Kind: a.placing, At: cell}
	if a.placing.Teamed() {
		team, ok := a.placementTeam()
		if !ok {
			return
		}
		p.Team = team.ID
	}
	a.sim.Put(p)
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == a.screenW && h == a.screenH {
		return
	}
	a.screenW = w
	a.screenH = h

	a.cam.Resize(w, h)
	a.inspector.Resize(int32(w))
	a.perfPanel.SetPosition(16, int32(h)-140)
}

// handleCameraInput processes camera pan/zoom controls.
func (a *App) handleCameraInput() {
	const panSpeed = float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		a.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		a.cam.Reset()
	}
}
