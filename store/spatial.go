package store

import (
	"slices"

	"github.com/pthm-cable/trails/components"
)

// UpdatePosition moves an entity. Direction becomes the displacement from the
// previous position; the first placement after creation leaves it zero.
// This is the only path that writes Position.
func (s *Store) UpdatePosition(id EntityIndex, pos components.Position) {
	e := s.entity("UpdatePosition", id)

	if s.positions.Has(e) {
		old := *s.positions.Get(e)
		if _, fresh := s.unplaced[id]; !fresh {
			*s.directions.Get(e) = components.Direction{X: pos.X - old.X, Y: pos.Y - old.Y}
		}
		s.removeCell(id, old.Coarse())
		*s.positions.Get(e) = pos
	} else {
		s.positions.Add(e, &pos)
	}

	delete(s.unplaced, id)
	s.insertCell(id, pos.Coarse())
}

// RemovePosition takes the entity out of the arena. Its other components stay.
func (s *Store) RemovePosition(id EntityIndex) {
	e := s.entity("RemovePosition", id)
	if !s.positions.Has(e) {
		violate("RemovePosition", id, "entity has no position")
	}
	s.removeCell(id, s.positions.Get(e).Coarse())
	s.positions.Remove(e)
}

// Position returns the entity's position.
func (s *Store) Position(id EntityIndex) components.Position {
	e := s.entity("Position", id)
	if !s.positions.Has(e) {
		violate("Position", id, "entity has no position")
	}
	return *s.positions.Get(e)
}

// HasPosition reports whether the entity is placed in the arena.
func (s *Store) HasPosition(id EntityIndex) bool {
	return s.positions.Has(s.entity("HasPosition", id))
}

// Direction returns the displacement of the entity's last move.
func (s *Store) Direction(id EntityIndex) components.Direction {
	return *s.directions.Get(s.entity("Direction", id))
}

// EntitiesAt returns the entities in the cell containing pos, in ascending
// index order. The slice is empty when the cell is unoccupied.
func (s *Store) EntitiesAt(pos components.Position) []EntityIndex {
	return s.EntitiesInCell(pos.Coarse())
}

// EntitiesInCell is EntitiesAt keyed by cell.
func (s *Store) EntitiesInCell(c components.CoarsePosition) []EntityIndex {
	bucket := s.cells[c]
	out := make([]EntityIndex, 0, len(bucket))
	for id := range bucket {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// EntitiesWithTypeAt returns the entities of type t in the cell containing
// pos. It reports false rather than returning an empty slice.
func (s *Store) EntitiesWithTypeAt(pos components.Position, t components.EntityType) ([]EntityIndex, bool) {
	var out []EntityIndex
	for _, id := range s.EntitiesAt(pos) {
		if s.identities.Get(s.entities[id]).Type == t {
			out = append(out, id)
		}
	}
	return out, len(out) > 0
}

// CellHas reports whether any entity of type t stands in the cell.
func (s *Store) CellHas(c components.CoarsePosition, t components.EntityType) bool {
	for id := range s.cells[c] {
		if s.identities.Get(s.entities[id]).Type == t {
			return true
		}
	}
	return false
}

// PheromoneWithTypeAt returns the pheromone of type pt in the cell containing
// pos. More than one match breaks the one-per-type-per-cell invariant and
// panics.
func (s *Store) PheromoneWithTypeAt(pos components.Position, pt components.PheromoneType) (EntityIndex, bool) {
	return s.PheromoneInCell(pos.Coarse(), pt)
}

// PheromoneInCell is PheromoneWithTypeAt keyed by cell.
func (s *Store) PheromoneInCell(c components.CoarsePosition, pt components.PheromoneType) (EntityIndex, bool) {
	var (
		found EntityIndex
		n     int
	)
	for _, id := range s.EntitiesInCell(c) {
		e := s.entities[id]
		if !s.scents.Has(e) || s.scents.Get(e).Type != pt {
			continue
		}
		if n > 0 {
			violate("PheromoneWithTypeAt", id, "second %s pheromone in cell (%d,%d), first is %d", pt, c.X, c.Y, found)
		}
		found = id
		n++
	}
	return found, n > 0
}

// PosIsImpenetrable reports whether the cell containing pos holds a wall.
func (s *Store) PosIsImpenetrable(pos components.Position) bool {
	return s.CellIsImpenetrable(pos.Coarse())
}

// CellIsImpenetrable is PosIsImpenetrable keyed by cell.
func (s *Store) CellIsImpenetrable(c components.CoarsePosition) bool {
	for id := range s.cells[c] {
		if s.impenetrable.Has(s.entities[id]) {
			return true
		}
	}
	return false
}

// Cells returns every occupied cell in row-major order.
func (s *Store) Cells() []components.CoarsePosition {
	out := make([]components.CoarsePosition, 0, len(s.cells))
	for c := range s.cells {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b components.CoarsePosition) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return out
}

func (s *Store) insertCell(id EntityIndex, c components.CoarsePosition) {
	bucket, ok := s.cells[c]
	if !ok {
		bucket = make(map[EntityIndex]struct{})
		s.cells[c] = bucket
	}
	bucket[id] = struct{}{}
}

func (s *Store) removeCell(id EntityIndex, c components.CoarsePosition) {
	bucket, ok := s.cells[c]
	if !ok {
		violate("removeCell", id, "no bucket for cell (%d,%d)", c.X, c.Y)
	}
	if _, ok := bucket[id]; !ok {
		violate("removeCell", id, "entity missing from cell (%d,%d)", c.X, c.Y)
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(s.cells, c)
	}
}
