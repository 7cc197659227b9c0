package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSpeed is the highest ticks-per-frame the speed slider offers.
const MaxSpeed = 20

// ControlsState is what the user changed on the controls panel this frame.
type ControlsState struct {
	TogglePause bool
	Step        bool
	Reset       bool
	Speed       int
}

// ControlsPanel renders the simulation controls and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	drawn    int32 // height at the last Draw
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
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

// Contains reports whether a screen point lies over the panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return c.visible && x >= float32(c.x) && x <= float32(c.x+c.width) && y >= float32(c.y) && y <= float32(c.y+c.drawn)
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	lines := int32(4)
	for _, cat := range overlays.Categories() {
		lines += int32(len(overlays.ByCategory(cat))) + 1
	}
	return lines*c.renderer.Theme.LineHeight + c.renderer.Theme.Padding*4 + 60
}

// Draw renders the panel and returns what the user changed.
func (c *ControlsPanel) Draw(paused bool, speed int, overlays *OverlayRegistry) ControlsState {
	state := ControlsState{Speed: speed}
	if !c.visible {
		return state
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	c.drawn = c.height(overlays)
	r.DrawPanel(c.x, c.y, c.width, c.drawn)

	x := float32(c.x + padding)
	y := c.y + padding
	inner := float32(c.width - padding*2)

	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 6

	label := "Pause"
	if paused {
		label = "Resume"
	}
	half := (inner - 6) / 2
	state.TogglePause = gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 24}, label)
	state.Step = gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 24}, "Step")
	y += 30
	state.Reset = gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 24}, "Reset view")
	y += 32

	rl.DrawText(fmt.Sprintf("Speed: %dx", speed), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	v := gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 16}, "", "", float32(speed), 1, MaxSpeed)
	state.Speed = int(v + 0.5)
	y += 26

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return state
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "trails":
		return "Trails"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
