package termview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/store"
)

type fakeSim struct {
	st     *store.Store
	tick   uint64
	food   int
	paused bool
	steps  int
}

func (f *fakeSim) Store() *store.Store     { return f.st }
func (f *fakeSim) TickCount() uint64       { return f.tick }
func (f *fakeSim) FoodInBase() int         { return f.food }
func (f *fakeSim) Update()                 { f.tick++ }
func (f *fakeSim) Tick()                   { f.tick++ }
func (f *fakeSim) Paused() bool            { return f.paused }
func (f *fakeSim) SetPaused(p bool)        { f.paused = p }
func (f *fakeSim) StepsPerUpdate() int     { return f.steps }
func (f *fakeSim) SetStepsPerUpdate(n int) { f.steps = max(n, 1) }

func place(st *store.Store, t components.EntityType, x, y float64) store.EntityIndex {
	id := st.CreateEntity(t)
	st.UpdatePosition(id, components.Position{X: x, Y: y})
	return id
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	ss.SetSize(80, 24)
	t.Cleanup(ss.Fini)
	return ss
}

func mainRune(ss tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := ss.GetContent(x, y)
	return r
}

// TestDrawFrameGlyphPriority verifies which glyph wins when a cell is shared.
func TestDrawFrameGlyphPriority(t *testing.T) {
	st := store.New(4)
	place(st, components.TypeBase, 0.5, 0.5)
	place(st, components.TypeAnt, 0.5, 0.5)
	place(st, components.TypeAnt, 1.5, 0.5)
	st.NewPheromone(components.CoarsePosition{X: 1, Y: 0}, components.PheromoneFood, 50, 1)
	st.NewPheromone(components.CoarsePosition{X: 2, Y: 0}, components.PheromoneFood, 100, 1)
	place(st, components.TypeWall, 3.5, 0.5)
	place(st, components.TypeSugar, 4.5, 0.5)

	ss := newScreen(t)
	r := NewRenderer(ss, 5, 1, 100)
	r.DrawFrame(&fakeSim{st: st, steps: 1}, false, 1)

	tests := []struct {
		name string
		x    int
		want string
	}{
		{"base over ant", 0, GlyphBase},
		{"ant over pheromone", 1, GlyphAnt},
		{"strong pheromone", 2, "█"},
		{"wall", 3, GlyphWall},
		{"sugar", 4, GlyphSugar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mainRune(ss, tt.x*cellWidth, 0); got != []rune(tt.want)[0] {
				t.Errorf("cell %d shows %q, want %q", tt.x, got, tt.want)
			}
		})
	}
}

// TestDrawFrameHUD verifies the status line reports tick, food and pause state.
func TestDrawFrameHUD(t *testing.T) {
	st := store.New(4)
	place(st, components.TypeAnt, 0.5, 0.5)

	ss := newScreen(t)
	r := NewRenderer(ss, 3, 3, 100)
	r.DrawFrame(&fakeSim{st: st, tick: 42, food: 7}, true, 3)

	var line strings.Builder
	for x := 0; x < 80; x++ {
		line.WriteRune(mainRune(ss, x, 4))
	}
	got := line.String()
	for _, want := range []string{"tick 42", "food_in_base 7", "ants 1", "speed 3x", "[paused]"} {
		if !strings.Contains(got, want) {
			t.Errorf("HUD %q missing %q", got, want)
		}
	}
}

// TestShadeScalesWithStrength verifies faint and saturated trails differ.
func TestShadeScalesWithStrength(t *testing.T) {
	r := NewRenderer(nil, 1, 1, 100)
	if got := r.shade(1); got != shades[0] {
		t.Errorf("shade(1) = %q, want %q", got, shades[0])
	}
	if got := r.shade(100); got != shades[len(shades)-1] {
		t.Errorf("shade(100) = %q, want %q", got, shades[len(shades)-1])
	}
}

// TestHandleEventControls verifies the key bindings.
func TestHandleEventControls(t *testing.T) {
	ss := newScreen(t)
	sim := &fakeSim{st: store.New(4), steps: 1}

	if !handleEvent(ss, sim, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) || !sim.paused {
		t.Error("space should pause")
	}
	handleEvent(ss, sim, tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	if sim.steps != 2 {
		t.Errorf("steps after + = %d, want 2", sim.steps)
	}
	handleEvent(ss, sim, tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	if sim.steps != 1 {
		t.Errorf("steps after - = %d, want 1", sim.steps)
	}
	if handleEvent(ss, sim, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if handleEvent(ss, sim, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
}

// TestRunStopsAtMaxTicks verifies the loop exits once the tick limit is reached.
func TestRunStopsAtMaxTicks(t *testing.T) {
	ss := newScreen(t)
	sim := &fakeSim{st: store.New(4), steps: 1}
	Run(ss, NewRenderer(ss, 2, 2, 100), sim, 200, 3)
	if sim.tick != 3 {
		t.Errorf("tick = %d, want 3", sim.tick)
	}
}

// TestWriteText verifies the plain listing format.
func TestWriteText(t *testing.T) {
	st := store.New(4)
	ant := place(st, components.TypeAnt, 1.5, 2.5)
	st.SetCarryingFood(ant, true)
	st.NewPheromone(components.CoarsePosition{X: 3, Y: 1}, components.PheromoneBase, 12, 4)
	place(st, components.TypeSugar, 4.5, 2.5)

	var buf bytes.Buffer
	if err := WriteText(&buf, 9, st); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	want := "Tick #9\n" +
		"ant 0 at 1.5, 2.5 carrying food\n" +
		"pheromone 1 at 3.5, 1.5 (base, strength 12, generation 4)\n" +
		"sugar 2 at 4.5, 2.5\n\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteText =\n%s\nwant\n%s", got, want)
	}
}

// TestWriteRunStartsAtSeededWorld verifies the dump shows tick 0 before the
// first tick runs.
func TestWriteRunStartsAtSeededWorld(t *testing.T) {
	st := store.New(4)
	place(st, components.TypeAnt, 0.5, 0.5)
	sim := &fakeSim{st: st, steps: 1}

	var buf bytes.Buffer
	if err := WriteRun(&buf, sim, 2); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	want := "Tick #0\nant 0 at 0.5, 0.5\n\n" +
		"Tick #1\nant 0 at 0.5, 0.5\n\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteRun =\n%s\nwant\n%s", got, want)
	}
	if sim.tick != 2 {
		t.Errorf("ticks run = %d, want 2", sim.tick)
	}
}
