package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/inspector"
)

// InspectorPanel draws a cell report.
type InspectorPanel struct {
	renderer    *Renderer
	x, y        int32
	width       int32
	maxStrength float32
}

// NewInspectorPanel creates a panel whose strength bars scale against maxStrength.
func NewInspectorPanel(x, y, width int32, maxStrength uint32) *InspectorPanel {
	return &InspectorPanel{
		renderer:    NewRenderer(),
		x:           x,
		y:           y,
		width:       width,
		maxStrength: float32(maxStrength),
	}
}

// SetPosition updates the panel position.
func (p *InspectorPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the report and returns the bottom Y of the panel.
func (p *InspectorPanel) Draw(rep inspector.CellReport) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	content := p.width - padding*2

	lines := int32(3 + len(rep.Ants)*7)
	if rep.FoodTrail != nil {
		lines += 3
	}
	if rep.BaseTrail != nil {
		lines += 3
	}
	height := lines*r.Theme.LineHeight + padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding

	rl.DrawText(fmt.Sprintf("Cell (%d, %d)", rep.Cell.X, rep.Cell.Y), x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4
	kinds := rep.Kinds
	if kinds == "" {
		kinds = "empty"
	}
	y = r.DrawLabelValue(x, y, "Contents", kinds)

	for i := range rep.Ants {
		y = r.DrawSectionHeader(x, y, "Ant")
		y = r.DrawFields(x, y, inspector.ExtractFields(&rep.Ants[i]), p.maxStrength, content)
	}
	if rep.FoodTrail != nil {
		y = r.DrawSectionHeader(x, y, "Food trail")
		y = r.DrawFields(x, y, inspector.ExtractFields(rep.FoodTrail), p.maxStrength, content)
	}
	if rep.BaseTrail != nil {
		y = r.DrawSectionHeader(x, y, "Base trail")
		y = r.DrawFields(x, y, inspector.ExtractFields(rep.BaseTrail), p.maxStrength, content)
	}
	return p.y + height
}
