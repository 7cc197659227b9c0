package systems

import (
	"testing"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/store"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.SetArena(5, 5)
	return cfg
}

func place(st *store.Store, t components.EntityType, x, y float64) store.EntityIndex {
	id := st.CreateEntity(t)
	st.UpdatePosition(id, components.Position{X: x, Y: y})
	return id
}

func cell(x, y int) components.CoarsePosition { return components.CoarsePosition{X: x, Y: y} }

func totalStrength(st *store.Store) uint64 {
	var sum uint64
	for _, id := range st.Pheromones() {
		sum += uint64(st.Intensity(id))
	}
	return sum
}

// TestDepositMerges verifies merge-and-clear sums strength and keeps the older generation.
func TestDepositMerges(t *testing.T) {
	tests := []struct {
		name     string
		first    uint32
		second   uint32
		max      uint32
		want     uint32
		firstGen uint64
		secGen   uint64
		wantGen  uint64
	}{
		{"sum", 30, 20, 255, 50, 5, 3, 3},
		{"keeps older generation", 10, 10, 255, 20, 2, 9, 2},
		{"saturates", 250, 10, 255, 255, 1, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := store.New(4)
			Deposit(st, cell(2, 2), components.PheromoneFood, tc.first, tc.firstGen, tc.max)
			id := Deposit(st, cell(2, 2), components.PheromoneFood, tc.second, tc.secGen, tc.max)

			if n := len(st.Pheromones()); n != 1 {
				t.Fatalf("expected 1 pheromone after merge, got %d", n)
			}
			if st.Intensity(id) != tc.want {
				t.Errorf("strength = %d, want %d", st.Intensity(id), tc.want)
			}
			if st.Generation(id) != tc.wantGen {
				t.Errorf("generation = %d, want %d", st.Generation(id), tc.wantGen)
			}
		})
	}
}

// TestDepositKeepsTypesApart verifies Food and Base trails share a cell without merging.
func TestDepositKeepsTypesApart(t *testing.T) {
	st := store.New(4)
	Deposit(st, cell(1, 1), components.PheromoneFood, 10, 0, 255)
	Deposit(st, cell(1, 1), components.PheromoneBase, 7, 0, 255)

	food, ok := st.PheromoneInCell(cell(1, 1), components.PheromoneFood)
	if !ok || st.Intensity(food) != 10 {
		t.Error("food pheromone should be untouched by a base deposit")
	}
	base, ok := st.PheromoneInCell(cell(1, 1), components.PheromoneBase)
	if !ok || st.Intensity(base) != 7 {
		t.Error("base pheromone missing")
	}
}

// TestEvaporationTerminates verifies a pheromone vanishes after strength/decay ticks.
func TestEvaporationTerminates(t *testing.T) {
	cfg := testConfig()
	cfg.Pheromone.DecayRate = 2
	sys := NewPheromoneSystem(cfg)
	st := store.New(4)
	id := st.NewPheromone(cell(3, 3), components.PheromoneBase, 7, 0)

	for tick := 1; tick <= 3; tick++ {
		sys.Evaporate(st)
		if !st.Alive(id) {
			t.Fatalf("destroyed too early at tick %d", tick)
		}
	}
	if st.Intensity(id) != 1 {
		t.Errorf("strength = %d, want 1", st.Intensity(id))
	}
	if n := sys.Evaporate(st); n != 1 || st.Alive(id) {
		t.Error("pheromone should be destroyed on the fourth tick")
	}
}

// TestEvaporationSparesSources verifies trails on Sugar and Base do not decay.
func TestEvaporationSparesSources(t *testing.T) {
	sys := NewPheromoneSystem(testConfig())
	st := store.New(4)
	place(st, components.TypeSugar, 4.5, 2.5)
	place(st, components.TypeBase, 0.5, 2.5)
	onSugar := st.NewPheromone(cell(4, 2), components.PheromoneFood, 3, 0)
	onBase := st.NewPheromone(cell(0, 2), components.PheromoneBase, 3, 0)
	elsewhere := st.NewPheromone(cell(2, 2), components.PheromoneFood, 3, 0)

	sys.Evaporate(st)
	if st.Intensity(onSugar) != 3 || st.Intensity(onBase) != 3 {
		t.Error("source trails should not evaporate")
	}
	if st.Intensity(elsewhere) != 2 {
		t.Errorf("open-ground trail = %d, want 2", st.Intensity(elsewhere))
	}
}

// TestDiffusionSpreadsOutward verifies conservation, shares and generation ordering.
func TestDiffusionSpreadsOutward(t *testing.T) {
	sys := NewPheromoneSystem(testConfig())
	st := store.New(4)
	src := st.NewPheromone(cell(2, 2), components.PheromoneFood, 100, 3)

	if n := sys.Diffuse(st); n != 4 {
		t.Fatalf("expected 4 spreads, got %d", n)
	}
	if got := totalStrength(st); got != 100 {
		t.Errorf("diffusion should conserve strength, total = %d", got)
	}
	if st.Intensity(src) != 80 {
		t.Errorf("source strength = %d, want 80", st.Intensity(src))
	}
	for _, off := range orthogonalOffsets {
		id, ok := st.PheromoneInCell(cell(2+off.X, 2+off.Y), components.PheromoneFood)
		if !ok {
			t.Fatalf("missing spread at offset %v", off)
		}
		if st.Intensity(id) != 5 {
			t.Errorf("share = %d, want 5", st.Intensity(id))
		}
		if st.Generation(id) != 4 {
			t.Errorf("spread generation = %d, want 4", st.Generation(id))
		}
	}

	// Neighbours are below the spread threshold; only the source spreads again
	sys.Diffuse(st)
	if got := totalStrength(st); got != 100 {
		t.Errorf("second pass total = %d, want 100", got)
	}
	if id, _ := st.PheromoneInCell(cell(3, 2), components.PheromoneFood); st.Intensity(id) != 9 {
		t.Errorf("merged neighbour = %d, want 9", st.Intensity(id))
	}
	if _, ok := st.PheromoneInCell(cell(4, 2), components.PheromoneFood); ok {
		t.Error("weak neighbours should not spread further")
	}
}

// TestDiffusionNeverFlowsIntoOlderTrail verifies spread only reaches newer generations.
func TestDiffusionNeverFlowsIntoOlderTrail(t *testing.T) {
	sys := NewPheromoneSystem(testConfig())
	st := store.New(4)
	st.NewPheromone(cell(2, 2), components.PheromoneBase, 100, 5)
	older := st.NewPheromone(cell(1, 2), components.PheromoneBase, 1, 2)
	same := st.NewPheromone(cell(3, 2), components.PheromoneBase, 1, 5)

	sys.Diffuse(st)
	if st.Intensity(older) != 1 || st.Generation(older) != 2 {
		t.Error("older trail must not receive spread")
	}
	if st.Intensity(same) != 1 {
		t.Error("equal generation must not receive spread")
	}

	for _, id := range st.Pheromones() {
		if st.Generation(id) < 2 {
			t.Errorf("generation %d below any deposited generation", st.Generation(id))
		}
	}
}

// TestDiffusionStopsAtEdgesAndWalls verifies spread skips out-of-bounds and wall cells.
func TestDiffusionStopsAtEdgesAndWalls(t *testing.T) {
	sys := NewPheromoneSystem(testConfig())
	st := store.New(4)
	place(st, components.TypeWall, 1.5, 0.5)
	corner := st.NewPheromone(cell(0, 0), components.PheromoneFood, 40, 0)

	if n := sys.Diffuse(st); n != 1 {
		t.Fatalf("expected a single spread, got %d", n)
	}
	if _, ok := st.PheromoneInCell(cell(0, 1), components.PheromoneFood); !ok {
		t.Error("expected spread below the corner")
	}
	if _, ok := st.PheromoneInCell(cell(1, 0), components.PheromoneFood); ok {
		t.Error("wall cell must not receive pheromone")
	}
	if st.Intensity(corner) != 38 {
		t.Errorf("corner strength = %d, want 38", st.Intensity(corner))
	}
}

// TestReleaseStrengthAndCountdown verifies source and trail deposits.
func TestReleaseStrengthAndCountdown(t *testing.T) {
	cfg := testConfig()
	sys := NewPheromoneSystem(cfg)
	st := store.New(4)
	place(st, components.TypeSugar, 4.5, 2.5)

	onSugar := place(st, components.TypeAnt, 4.5, 2.5)
	st.SetReleasing(onSugar, components.ReleasingPheromone{TicksLeft: cfg.Release.Ticks, Type: components.PheromoneFood})
	away := place(st, components.TypeAnt, 1.5, 1.5)
	st.SetReleasing(away, components.ReleasingPheromone{TicksLeft: 1, Type: components.PheromoneBase})

	if n := sys.Release(st, 7); n != 2 {
		t.Fatalf("expected 2 releases, got %d", n)
	}

	id, ok := st.PheromoneInCell(cell(4, 2), components.PheromoneFood)
	if !ok || st.Intensity(id) != cfg.Release.SourceStrength || st.Generation(id) != 7 {
		t.Error("source deposit should use source strength and the current tick")
	}
	id, ok = st.PheromoneInCell(cell(1, 1), components.PheromoneBase)
	want := cfg.Release.TrailStrength / cfg.Release.Ticks
	if !ok || st.Intensity(id) != want {
		t.Errorf("trail deposit = %d, want %d", st.Intensity(id), want)
	}

	if r, ok := st.Releasing(onSugar); !ok || r.TicksLeft != cfg.Release.Ticks-1 {
		t.Errorf("releasing = (%+v, %v)", r, ok)
	}
	if _, ok := st.Releasing(away); ok {
		t.Error("release should end when ticks run out")
	}
}

// TestOnePheromonePerTypePerCell verifies a full update keeps the cell invariant.
func TestOnePheromonePerTypePerCell(t *testing.T) {
	sys := NewPheromoneSystem(testConfig())
	st := store.New(4)
	for i := 0; i < 4; i++ {
		ant := place(st, components.TypeAnt, 2.5, 2.5)
		st.SetReleasing(ant, components.ReleasingPheromone{TicksLeft: 8, Type: components.PheromoneFood})
	}

	for tick := uint64(1); tick <= 20; tick++ {
		sys.Update(st, tick)
		for _, c := range st.Cells() {
			// Panics on a second pheromone of the same type
			st.PheromoneInCell(c, components.PheromoneFood)
			st.PheromoneInCell(c, components.PheromoneBase)
		}
	}
}
