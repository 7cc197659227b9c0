// Package renderer draws the arena with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/camera"
	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/store"
)

// Palette
var (
	ColorBackground = rl.Color{R: 18, G: 20, B: 24, A: 255}
	ColorGridLine   = rl.Color{R: 40, G: 44, B: 52, A: 255}
	ColorWall       = rl.Color{R: 110, G: 110, B: 120, A: 255}
	ColorBase       = rl.Color{R: 150, G: 100, B: 60, A: 255}
	ColorSugar      = rl.Color{R: 240, G: 120, B: 200, A: 255}
	ColorAnt        = rl.Color{R: 230, G: 230, B: 230, A: 255}
	ColorCarrying   = rl.Color{R: 255, G: 180, B: 50, A: 255}
	ColorBuilder    = rl.Color{R: 120, G: 200, B: 255, A: 255}
	ColorFoodTrail  = rl.Color{R: 80, G: 220, B: 110, A: 255}
	ColorBaseTrail  = rl.Color{R: 80, G: 130, B: 255, A: 255}
)

// Layers selects what the grid renderer draws.
type Layers struct {
	FoodTrail bool
	BaseTrail bool
	GridLines bool
	Headings  bool
}

// DefaultLayers draws both trails and nothing else optional.
func DefaultLayers() Layers {
	return Layers{FoodTrail: true, BaseTrail: true}
}

// GridRenderer draws cells, trails and ants.
type GridRenderer struct {
	maxStrength uint32
}

// NewGridRenderer creates a renderer that scales trail opacity against maxStrength.
func NewGridRenderer(maxStrength uint32) *GridRenderer {
	if maxStrength == 0 {
		maxStrength = 1
	}
	return &GridRenderer{maxStrength: maxStrength}
}

// Draw renders the arena through the camera.
func (r *GridRenderer) Draw(st *store.Store, cam *camera.Camera, layers Layers) {
	x0, y0 := cam.WorldToScreen(0, 0)
	rl.DrawRectangle(int32(x0), int32(y0),
		int32(cam.WorldW*cam.Zoom), int32(cam.WorldH*cam.Zoom), ColorBackground)

	for _, id := range st.Pheromones() {
		pt := st.PheromoneType(id)
		if (pt == components.PheromoneFood && !layers.FoodTrail) ||
			(pt == components.PheromoneBase && !layers.BaseTrail) {
			continue
		}
		c := st.Position(id).Coarse()
		r.fillCell(cam, c, TrailColor(pt, st.Intensity(id), r.maxStrength))
	}

	for _, t := range []components.EntityType{components.TypeWall, components.TypeBase, components.TypeSugar} {
		color := ColorWall
		switch t {
		case components.TypeBase:
			color = ColorBase
		case components.TypeSugar:
			color = ColorSugar
		}
		for _, id := range st.EntitiesOfType(t) {
			r.fillCell(cam, st.Position(id).Coarse(), color)
		}
	}

	if layers.GridLines {
		r.drawGridLines(cam)
	}

	for _, id := range st.Ants() {
		r.drawAnt(st, cam, id, layers.Headings)
	}
}

// HighlightCell outlines one cell.
func (r *GridRenderer) HighlightCell(cam *camera.Camera, c components.CoarsePosition, color rl.Color) {
	sx, sy := cam.WorldToScreen(float32(c.X), float32(c.Y))
	rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: cam.Zoom, Height: cam.Zoom}, 2, color)
}

// DrawMemory outlines the cells an ant remembers, fading with age.
func (r *GridRenderer) DrawMemory(cam *camera.Camera, cells []components.CoarsePosition) {
	for i, c := range cells {
		alpha := uint8(60 + 195*(i+1)/len(cells))
		r.HighlightCell(cam, c, rl.Color{R: 255, G: 255, B: 0, A: alpha})
	}
}

func (r *GridRenderer) fillCell(cam *camera.Camera, c components.CoarsePosition, color rl.Color) {
	if !cam.IsVisible(float32(c.X)+0.5, float32(c.Y)+0.5, 0.5) {
		return
	}
	sx, sy := cam.WorldToScreen(float32(c.X), float32(c.Y))
	rl.DrawRectangleRec(rl.Rectangle{X: sx, Y: sy, Width: cam.Zoom, Height: cam.Zoom}, color)
}

func (r *GridRenderer) drawAnt(st *store.Store, cam *camera.Camera, id store.EntityIndex, heading bool) {
	p := st.Position(id)
	if !cam.IsVisible(float32(p.X), float32(p.Y), 0.5) {
		return
	}
	sx, sy := cam.WorldToScreen(float32(p.X), float32(p.Y))

	color := ColorAnt
	switch {
	case st.IsBuilder(id):
		color = ColorBuilder
	case st.IsCarryingFood(id):
		color = ColorCarrying
	}
	radius := cam.Zoom * 0.25
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)

	if heading {
		d := st.Direction(id)
		if !d.IsZero() {
			end := rl.Vector2{X: sx + float32(d.X)*cam.Zoom*0.5, Y: sy + float32(d.Y)*cam.Zoom*0.5}
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, end, color)
		}
	}
}

func (r *GridRenderer) drawGridLines(cam *camera.Camera) {
	for x := 0; x <= int(cam.WorldW); x++ {
		sx, sy0 := cam.WorldToScreen(float32(x), 0)
		_, sy1 := cam.WorldToScreen(float32(x), cam.WorldH)
		rl.DrawLineV(rl.Vector2{X: sx, Y: sy0}, rl.Vector2{X: sx, Y: sy1}, ColorGridLine)
	}
	for y := 0; y <= int(cam.WorldH); y++ {
		sx0, sy := cam.WorldToScreen(0, float32(y))
		sx1, _ := cam.WorldToScreen(cam.WorldW, float32(y))
		rl.DrawLineV(rl.Vector2{X: sx0, Y: sy}, rl.Vector2{X: sx1, Y: sy}, ColorGridLine)
	}
}

// TrailColor returns the fill color for a pheromone, its alpha scaled by strength.
func TrailColor(pt components.PheromoneType, strength, maxStrength uint32) rl.Color {
	c := ColorFoodTrail
	if pt == components.PheromoneBase {
		c = ColorBaseTrail
	}
	ratio := float32(strength) / float32(maxStrength)
	if ratio > 1 {
		ratio = 1
	}
	c.A = uint8(40 + ratio*200)
	return c
}
