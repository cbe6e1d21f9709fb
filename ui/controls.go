package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/game"
)

// ControlsResult reports what the user changed during one frame.
type ControlsResult struct {
	Options game.Options
	Changed bool // Options differ from the ones passed in
	Reset   bool
	Kind    components.ElementKind // Selected placement kind
}

// ControlsPanel renders the left-side panel: option sliders, placement kind, reset and overlay toggles.
type ControlsPanel struct {
	renderer    *Renderer
	x, y        int32
	width       int32
	visible     bool
	descriptors []components.FieldDescriptor
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer:    NewRenderer(),
		x:           x,
		y:           y,
		width:       width,
		visible:     false,
		descriptors: game.OptionDescriptors(),
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies on the panel.
func (c *ControlsPanel) Contains(mouseX, mouseY float32, overlays *OverlayRegistry) bool {
	if !c.visible {
		return false
	}
	return int32(mouseX) >= c.x && int32(mouseX) <= c.x+c.width &&
		int32(mouseY) >= c.y && int32(mouseY) <= c.y+c.height(overlays)
}

const (
	sliderStride = 38
	buttonHeight = 24
)

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	lineHeight := c.renderer.Theme.LineHeight
	padding := c.renderer.Theme.Padding
	h := padding*2 + lineHeight + 4                                         // title
	h += int32(len(c.descriptors)) * sliderStride                           // sliders
	h += lineHeight + buttonHeight + 8                                      // placement
	h += buttonHeight + 8                                                   // reset
	h += int32(len(overlays.All())+len(overlays.Categories())) * lineHeight // overlay list
	return h
}

// Draw renders the controls panel and returns the user's edits.
func (c *ControlsPanel) Draw(opts game.Options, kind components.ElementKind, overlays *OverlayRegistry) ControlsResult {
	res := ControlsResult{Options: opts, Kind: kind}
	if !c.visible {
		return res
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)

	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	x := float32(c.x + padding)
	y := c.y + padding

	rl.DrawText("Options", int32(x), y, 16, rl.White)
	y += lineHeight + 4

	for _, fd := range c.descriptors {
		cur := res.Options.Value(fd.ID)
		rl.DrawText(fd.Label, int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
		value := fmt.Sprintf(fd.Format, cur)
		rl.DrawText(value, int32(x+inner)-rl.MeasureText(value, r.Theme.FontSize), y, r.Theme.FontSize, r.Theme.ValueColor)
		y += 14
		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 16},
			"", "",
			cur, fd.Min, fd.Max,
		)
		if next, changed := applySlider(res.Options, fd, v); changed {
			res.Options = next
			res.Changed = true
		}
		y += sliderStride - 14
	}

	// Placement kind
	rl.DrawText("Place", int32(x), y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lineHeight
	kinds := components.PlaceableKinds()
	names := components.PlaceableKindNames()
	bw := (inner - float32(len(kinds)-1)*4) / float32(len(kinds))
	for i, k := range kinds {
		bounds := rl.Rectangle{X: x + float32(i)*(bw+4), Y: float32(y), Width: bw, Height: buttonHeight}
		if gui.Button(bounds, names[i]) {
			res.Kind = k
		}
		if k == res.Kind {
			rl.DrawRectangleLinesEx(bounds, 2, rl.Yellow)
		}
	}
	y += buttonHeight + 8

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: buttonHeight}, "Reset [R]") {
		res.Reset = true
	}
	y += buttonHeight + 8

	// Overlays by category
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), int32(x), y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(int32(x), y, desc, overlays.IsEnabled(desc.ID), int32(inner))
			y += lineHeight
		}
	}

	return res
}

// applySlider snaps a slider value to its descriptor and folds it into opts.
func applySlider(opts game.Options, fd components.FieldDescriptor, v float32) (game.Options, bool) {
	v = fd.Clamp(v)
	if v == opts.Value(fd.ID) {
		return opts, false
	}
	next := opts.With(fd.ID, v)
	return next, next != opts
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	// Name
	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "panels":
		return "Panels"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
