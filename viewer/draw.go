package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/ui"
)

const controlsLegend = "[Space] pause  [N] step  [,/.] speed  [Arrows/WASD] pan  [Wheel] zoom  [R] reset view  [Tab] controls  [LMB] inspect"

var colorSelection = rl.Color{R: 255, G: 255, B: 255, A: 220}

func (v *Viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	st := v.g.Store()

	// Arena sits below the HUD
	mode := rl.Camera2D{Offset: rl.Vector2{X: 0, Y: hudHeight}, Zoom: 1}
	rl.BeginMode2D(mode)
	v.grid.Draw(st, v.cam, v.overlays.Layers())
	if cell, ok := v.inspector.Selected(); ok {
		if v.overlays.IsEnabled(ui.OverlayMemory) {
			if ant, ok := v.inspector.FocusAnt(st); ok {
				v.grid.DrawMemory(v.cam, st.Memory(ant))
			}
		}
		v.grid.HighlightCell(v.cam, cell, colorSelection)
	}
	rl.EndMode2D()

	carrying := 0
	ants := st.Ants()
	for _, id := range ants {
		if st.IsCarryingFood(id) {
			carrying++
		}
	}
	v.hud.Draw(ui.HUDData{
		Title:      "Trails",
		Tick:       v.g.TickCount(),
		FoodInBase: v.g.FoodInBase(),
		Ants:       len(ants),
		Carrying:   carrying,
		Pheromones: st.Count(components.TypePheromone),
		Speed:      v.g.StepsPerUpdate(),
		FPS:        rl.GetFPS(),
		Paused:     v.g.Paused(),
	})
	v.hud.DrawControls(int32(v.screenHeight), controlsLegend)

	state := v.controls.Draw(v.g.Paused(), v.g.StepsPerUpdate(), v.overlays)
	if state.TogglePause {
		v.g.SetPaused(!v.g.Paused())
	}
	if state.Step && v.g.Paused() {
		v.g.Tick()
	}
	if state.Reset {
		v.cam.Reset()
	}
	if state.Speed != v.g.StepsPerUpdate() {
		v.g.SetStepsPerUpdate(state.Speed)
	}

	if rep, ok := v.inspector.Report(st); ok {
		v.inspectorPanel.Draw(rep)
	}
	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perfPanel.Draw(v.g.Perf())
	}

	rl.EndDrawing()
}
