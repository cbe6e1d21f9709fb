// Package inspector renders the contents of a selected grid cell.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/game"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector tracks the selected cell and draws what the simulation reports about it.
type Inspector struct {
	selected    components.Coord
	hasSelected bool
	info        game.ElementInfo
	hasInfo     bool

	panelX int32
	panelY int32
}

// NewInspector creates a new inspector anchored to the right edge of the screen.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Resize re-anchors the panel.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Select marks a cell for inspection.
func (ins *Inspector) Select(c components.Coord) {
	ins.selected = c
	ins.hasSelected = true
	ins.hasInfo = false
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.hasInfo = false
}

// Selected returns the currently selected cell.
func (ins *Inspector) Selected() (components.Coord, bool) {
	return ins.selected, ins.hasSelected
}

// Contains reports whether a screen point lies on the open panel.
func (ins *Inspector) Contains(mouseX, mouseY float32) bool {
	if !ins.hasSelected {
		return false
	}
	return int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
		int32(mouseY) >= ins.panelY && int32(mouseY) <= ins.panelY+ins.panelHeight()
}

// HandleClose deselects when the close button or Escape is pressed. Returns true if consumed.
func (ins *Inspector) HandleClose(mouseX, mouseY float32) bool {
	if !ins.hasSelected {
		return false
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return true
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
		int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
		ins.Deselect()
		return true
	}
	return false
}

// Refresh queries the simulation for the selected cell.
func (ins *Inspector) Refresh(sim game.Simulation) {
	if !ins.hasSelected {
		return
	}
	ins.info, ins.hasInfo = sim.Inspect(ins.selected)
	if !ins.hasInfo {
		ins.Deselect()
	}
}

// Info returns the last inspection result.
func (ins *Inspector) Info() (game.ElementInfo, bool) {
	return ins.info, ins.hasInfo
}

// Sections groups the fields of the inspected element for display, one section per component.
func Sections(info game.ElementInfo) []Section {
	var out []Section
	switch {
	case info.Ant != nil:
		out = append(out, Section{Title: "ANT", Fields: ExtractFields(info.Ant)})
	case info.Hive != nil:
		out = append(out, Section{Title: "HIVE", Fields: ExtractFields(info.Hive)})
	case info.Food != nil:
		out = append(out, Section{Title: "FOOD", Fields: ExtractFields(info.Food)})
	case info.Dirt != nil:
		out = append(out, Section{Title: "DIRT", Fields: ExtractFields(info.Dirt)})
	}

	if len(info.Pheromones) > 0 {
		trails := Section{Title: "PHEROMONES"}
		for _, p := range info.Pheromones {
			kind := "carry"
			if p.Trail.Foraging {
				kind = "forage"
			}
			trails.Fields = append(trails.Fields, Field{
				Name:   fmt.Sprintf("T%d %s", p.Trail.Team, kind),
				Value:  fmt.Sprintf("%d (r%d)", p.Value, p.Age),
				Widget: WidgetLabel,
			})
		}
		out = append(out, trails)
	}
	return out
}

// Section is a titled group of fields.
type Section struct {
	Title  string
	Fields []Field
}

// Draw renders the inspector panel if a cell is selected.
func (ins *Inspector) Draw() {
	if !ins.hasSelected || !ins.hasInfo {
		return
	}
	info := ins.info
	panelHeight := ins.panelHeight()

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("%s  %s", info.At, info.Kind), x, y, 14, ColorHeaderText)
	y += 22
	if info.TeamName != "" {
		y += DrawLabel(x, y, "Team", info.TeamName, nil)
	}
	if info.State != "" {
		y += DrawLabel(x, y, "State", info.State, nil)
	}

	for _, sec := range Sections(info) {
		y += 4
		rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
		y += 8
		ins.drawSectionHeader(x, y, sec.Title)
		y += 20
		for _, f := range sec.Fields {
			y += DrawField(x, y, f)
		}
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// panelHeight computes the dynamic panel height.
func (ins *Inspector) panelHeight() int32 {
	height := int32(HeaderHeight + PanelPadding) // header
	height += 22                                 // coordinate line
	if ins.info.TeamName != "" {
		height += 20
	}
	if ins.info.State != "" {
		height += 20
	}
	for _, sec := range Sections(ins.info) {
		height += 12 + 20 // separator and title
		for _, f := range sec.Fields {
			height += FieldHeight(f)
		}
	}
	return height + PanelPadding
}
