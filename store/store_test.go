package store

import (
	"errors"
	"slices"
	"testing"

	"github.com/pthm-cable/trails/components"
)

func pos(x, y float64) components.Position { return components.Position{X: x, Y: y} }

// expectViolation runs fn and fails the test unless it panics with a *ContractViolation.
func expectViolation(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("%s: expected a contract violation panic", op)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("%s: panic value %v is not an error", op, r)
		}
		var cv *ContractViolation
		if !errors.As(err, &cv) {
			t.Fatalf("%s: panic %v is not a *ContractViolation", op, err)
		}
	}()
	fn()
}

// TestCreateEntityPlacesAtOrigin verifies new entities enter the origin bucket.
func TestCreateEntityPlacesAtOrigin(t *testing.T) {
	s := New(components.DefaultMemoryCapacity)
	a := s.CreateEntity(components.TypeAnt)
	b := s.CreateEntity(components.TypeSugar)

	got := s.EntitiesAt(pos(0.3, 0.9))
	if !slices.Equal(got, []EntityIndex{a, b}) {
		t.Errorf("EntitiesAt origin = %v, want [%d %d]", got, a, b)
	}
	if s.Type(b) != components.TypeSugar || !s.IsEdible(b) {
		t.Error("sugar should be created with the Edible tag")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

// TestIndicesAreMonotonic verifies destroyed indices are never reused.
func TestIndicesAreMonotonic(t *testing.T) {
	s := New(4)
	first := s.NewPheromone(components.CoarsePosition{X: 1, Y: 1}, components.PheromoneFood, 10, 0)
	s.Destroy(first)
	second := s.NewPheromone(components.CoarsePosition{X: 1, Y: 1}, components.PheromoneFood, 10, 0)

	if second <= first {
		t.Errorf("index %d reused or decreased after destroying %d", second, first)
	}
	if s.Alive(first) {
		t.Error("destroyed entity should not be alive")
	}
	expectViolation(t, "Intensity", func() { s.Intensity(first) })
}

// TestUpdatePositionMovesBuckets verifies bucket membership and cleanup.
func TestUpdatePositionMovesBuckets(t *testing.T) {
	s := New(4)
	ant := s.CreateEntity(components.TypeAnt)
	s.UpdatePosition(ant, pos(2.5, 3.5))

	if got := s.EntitiesAt(pos(0, 0)); len(got) != 0 {
		t.Errorf("origin bucket should be empty, got %v", got)
	}
	if slices.Contains(s.Cells(), components.CoarsePosition{}) {
		t.Error("emptied bucket should be deleted")
	}
	if got := s.EntitiesAt(pos(2.01, 3.99)); !slices.Equal(got, []EntityIndex{ant}) {
		t.Errorf("EntitiesAt(2,3) = %v, want [%d]", got, ant)
	}
	if s.Position(ant) != pos(2.5, 3.5) {
		t.Errorf("Position = %v", s.Position(ant))
	}
}

// TestDirectionTracksLastMove verifies the first placement leaves the heading zero.
func TestDirectionTracksLastMove(t *testing.T) {
	s := New(4)
	ant := s.CreateEntity(components.TypeAnt)
	s.UpdatePosition(ant, pos(2.5, 2.5))
	if !s.Direction(ant).IsZero() {
		t.Errorf("first placement should not set a heading, got %v", s.Direction(ant))
	}

	s.UpdatePosition(ant, pos(3.5, 2.5))
	if d := s.Direction(ant); d.X != 1 || d.Y != 0 {
		t.Errorf("Direction = %v, want (1, 0)", d)
	}
}

// TestRemovePosition verifies teardown and the missing-position violation.
func TestRemovePosition(t *testing.T) {
	s := New(4)
	wall := s.CreateEntity(components.TypeWall)
	s.UpdatePosition(wall, pos(1.5, 1.5))
	s.RemovePosition(wall)

	if len(s.Cells()) != 0 {
		t.Errorf("expected no occupied cells, got %v", s.Cells())
	}
	if s.HasPosition(wall) {
		t.Error("HasPosition should be false after RemovePosition")
	}
	expectViolation(t, "Position", func() { s.Position(wall) })
	expectViolation(t, "RemovePosition", func() { s.RemovePosition(wall) })

	s.UpdatePosition(wall, pos(4.5, 4.5))
	if !s.PosIsImpenetrable(pos(4.1, 4.9)) {
		t.Error("re-placed wall should block its cell")
	}
}

// TestEntitiesWithTypeAt verifies the boolean not-found result.
func TestEntitiesWithTypeAt(t *testing.T) {
	s := New(4)
	base := s.CreateEntity(components.TypeBase)
	s.UpdatePosition(base, pos(0.5, 2.5))
	ant := s.CreateEntity(components.TypeAnt)
	s.UpdatePosition(ant, pos(0.5, 2.5))

	tests := []struct {
		name string
		at   components.Position
		typ  components.EntityType
		want []EntityIndex
		ok   bool
	}{
		{"base present", pos(0.9, 2.1), components.TypeBase, []EntityIndex{base}, true},
		{"ant present", pos(0.5, 2.5), components.TypeAnt, []EntityIndex{ant}, true},
		{"no sugar", pos(0.5, 2.5), components.TypeSugar, nil, false},
		{"empty cell", pos(3.5, 3.5), components.TypeAnt, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.EntitiesWithTypeAt(tc.at, tc.typ)
			if ok != tc.ok || !slices.Equal(got, tc.want) {
				t.Errorf("got (%v, %v), want (%v, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}

// TestPheromoneWithTypeAt verifies lookup and the duplicate-pheromone violation.
func TestPheromoneWithTypeAt(t *testing.T) {
	s := New(4)
	cell := components.CoarsePosition{X: 2, Y: 2}
	food := s.NewPheromone(cell, components.PheromoneFood, 30, 5)

	if got, ok := s.PheromoneWithTypeAt(pos(2.2, 2.7), components.PheromoneFood); !ok || got != food {
		t.Errorf("PheromoneWithTypeAt = (%d, %v), want (%d, true)", got, ok, food)
	}
	if _, ok := s.PheromoneWithTypeAt(pos(2.2, 2.7), components.PheromoneBase); ok {
		t.Error("no base pheromone expected")
	}
	if s.Position(food) != cell.Center() {
		t.Errorf("pheromone should sit at the cell centre, got %v", s.Position(food))
	}
	if s.Intensity(food) != 30 || s.Generation(food) != 5 || s.PheromoneType(food) != components.PheromoneFood {
		t.Error("pheromone components not initialised")
	}

	s.NewPheromone(cell, components.PheromoneFood, 1, 6)
	expectViolation(t, "PheromoneWithTypeAt", func() {
		s.PheromoneWithTypeAt(cell.Center(), components.PheromoneFood)
	})
}

// TestPosIsImpenetrable verifies only walls block a cell.
func TestPosIsImpenetrable(t *testing.T) {
	s := New(4)
	wall := s.CreateEntity(components.TypeWall)
	s.UpdatePosition(wall, pos(3.5, 1.5))
	sugar := s.CreateEntity(components.TypeSugar)
	s.UpdatePosition(sugar, pos(4.5, 1.5))

	if !s.PosIsImpenetrable(pos(3.0, 1.0)) {
		t.Error("wall cell should be impenetrable")
	}
	if s.PosIsImpenetrable(pos(4.5, 1.5)) {
		t.Error("sugar cell should be passable")
	}
	if s.PosIsImpenetrable(pos(0.5, 0.5)) {
		t.Error("empty cell should be passable")
	}
}

// TestShortMemoryThroughStore verifies memory operations and non-ant violations.
func TestShortMemoryThroughStore(t *testing.T) {
	s := New(2)
	ant := s.CreateEntity(components.TypeAnt)
	a, b, c := components.CoarsePosition{X: 1}, components.CoarsePosition{X: 2}, components.CoarsePosition{X: 3}

	s.AddToShortMemory(ant, a)
	s.AddToShortMemory(ant, b)
	s.AddToShortMemory(ant, c)
	if s.InShortMemory(ant, a) || !s.InShortMemory(ant, b) || !s.InShortMemory(ant, c) {
		t.Errorf("memory after eviction = %v", s.Memory(ant))
	}

	s.ClearMemory(ant)
	if len(s.Memory(ant)) != 0 {
		t.Error("ClearMemory should forget everything")
	}

	sugar := s.CreateEntity(components.TypeSugar)
	expectViolation(t, "AddToShortMemory", func() { s.AddToShortMemory(sugar, a) })
}

// TestTagsAndReleasing verifies dynamic components come and go.
func TestTagsAndReleasing(t *testing.T) {
	s := New(4)
	ant := s.CreateEntity(components.TypeAnt)

	s.SetCarryingFood(ant, true)
	s.SetCarryingFood(ant, true)
	if !s.IsCarryingFood(ant) {
		t.Error("expected CarryingFood")
	}
	s.SetCarryingFood(ant, false)
	if s.IsCarryingFood(ant) {
		t.Error("CarryingFood should be removed")
	}

	if _, ok := s.Releasing(ant); ok {
		t.Error("new ant should not be releasing")
	}
	s.SetReleasing(ant, components.ReleasingPheromone{TicksLeft: 3, Type: components.PheromoneBase})
	s.SetReleasing(ant, components.ReleasingPheromone{TicksLeft: 8, Type: components.PheromoneFood})
	r, ok := s.Releasing(ant)
	if !ok || r.TicksLeft != 8 || r.Type != components.PheromoneFood {
		t.Errorf("Releasing = (%+v, %v)", r, ok)
	}
	s.ClearReleasing(ant)
	if _, ok := s.Releasing(ant); ok {
		t.Error("ClearReleasing should drop the component")
	}

	s.SetBuilder(ant, true)
	if !s.IsBuilder(ant) {
		t.Error("expected Builder tag")
	}
}

// TestQueriesAreSorted verifies type queries come back in index order.
func TestQueriesAreSorted(t *testing.T) {
	s := New(4)
	var ants []EntityIndex
	for i := 0; i < 5; i++ {
		ants = append(ants, s.CreateEntity(components.TypeAnt))
		s.NewPheromone(components.CoarsePosition{X: i}, components.PheromoneBase, 1, 0)
	}

	if got := s.Ants(); !slices.Equal(got, ants) {
		t.Errorf("Ants() = %v, want %v", got, ants)
	}
	ph := s.Pheromones()
	if len(ph) != 5 || !slices.IsSorted(ph) {
		t.Errorf("Pheromones() = %v", ph)
	}
	if s.Count(components.TypePheromone) != 5 || s.Count(components.TypeWall) != 0 {
		t.Error("unexpected Count results")
	}
	cells := s.Cells()
	for i := 1; i < len(cells); i++ {
		if !cells[i-1].Less(cells[i]) {
			t.Fatalf("Cells() not row-major: %v", cells)
		}
	}
}
