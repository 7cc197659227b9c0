package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/ui"
)

const panSpeed = 400 // screen pixels per second

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.g.SetPaused(!v.g.Paused())
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.g.SetStepsPerUpdate(v.g.StepsPerUpdate() + 1)
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		v.g.SetStepsPerUpdate(v.g.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyN) && v.g.Paused() {
		v.g.Tick()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.cam.Reset()
	}

	v.overlays.HandleKeys()
	v.handleCameraInput()
	v.handleSelection()
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h

	v.cam.Resize(w, h-hudHeight)
	v.inspectorPanel.SetPosition(ui.AnchorPosition(ui.AnchorTopRight, inspectorWidth, 0, int32(w), int32(h), 10))
	v.perfPanel.SetPosition(ui.AnchorPosition(ui.AnchorBottomRight, inspectorWidth, perfHeight, int32(w), int32(h), 30))
}

func (v *Viewer) handleCameraInput() {
	dt := rl.GetFrameTime()
	var dx, dy float32
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		dx -= panSpeed * dt
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		dx += panSpeed * dt
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		dy -= panSpeed * dt
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		dy += panSpeed * dt
	}
	if dx != 0 || dy != 0 {
		v.cam.Pan(dx, dy)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + wheel*0.1)
	}
}

// handleSelection selects the clicked cell. Right click deselects.
func (v *Viewer) handleSelection() {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		v.inspector.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	m := rl.GetMousePosition()
	if v.controls.Contains(m.X, m.Y) {
		return
	}
	x, y, ok := v.cam.CellAt(m.X, m.Y-hudHeight)
	if !ok {
		return
	}
	v.inspector.Select(components.CoarsePosition{X: x, Y: y})
}
