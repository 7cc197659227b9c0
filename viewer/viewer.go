// Package viewer shows a running simulation in a raylib window.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/camera"
	"github.com/pthm-cable/trails/game"
	"github.com/pthm-cable/trails/inspector"
	"github.com/pthm-cable/trails/renderer"
	"github.com/pthm-cable/trails/ui"
)

const (
	controlsWidth  = 200
	inspectorWidth = 260
	hudHeight      = 100
	perfHeight     = 130
)

// Viewer owns the camera, renderers and panels for one game.
type Viewer struct {
	g *game.Game

	cam            *camera.Camera
	grid           *renderer.GridRenderer
	hud            *ui.HUD
	controls       *ui.ControlsPanel
	overlays       *ui.OverlayRegistry
	inspector      *inspector.Inspector
	inspectorPanel *ui.InspectorPanel
	perfPanel      *ui.PerfPanel

	screenWidth, screenHeight float32
}

// New creates a viewer. The raylib window must already be open.
func New(g *game.Game) *Viewer {
	cfg := g.Config()
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	ix, iy := ui.AnchorPosition(ui.AnchorTopRight, inspectorWidth, 0, int32(w), int32(h), 10)
	px, py := ui.AnchorPosition(ui.AnchorBottomRight, inspectorWidth, perfHeight, int32(w), int32(h), 30)

	cam := camera.New(w, h-hudHeight, float32(cfg.Derived.ArenaW), float32(cfg.Derived.ArenaH))
	cam.SetZoom(float32(cfg.Derived.CellPixels))

	return &Viewer{
		g:              g,
		cam:            cam,
		grid:           renderer.NewGridRenderer(cfg.Pheromone.MaxStrength),
		hud:            ui.NewHUD(),
		controls:       ui.NewControlsPanel(10, hudHeight, controlsWidth),
		overlays:       ui.NewOverlayRegistry(),
		inspector:      inspector.New(),
		inspectorPanel: ui.NewInspectorPanel(ix, iy, inspectorWidth, cfg.Pheromone.MaxStrength),
		perfPanel:      ui.NewPerfPanel(px, py),
		screenWidth:    w,
		screenHeight:   h,
	}
}

// Run draws frames until the window closes or maxTicks ticks have run
// (0 = unlimited).
func (v *Viewer) Run(maxTicks uint64) {
	for !rl.WindowShouldClose() {
		v.Frame()
		if maxTicks > 0 && v.g.TickCount() >= maxTicks {
			return
		}
	}
}

// Frame handles input, advances the game and draws once.
func (v *Viewer) Frame() {
	v.handleInput()
	v.g.Update()
	v.draw()
	v.g.RecordFrame()
}
