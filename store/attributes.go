package store

import "github.com/pthm-cable/trails/components"

// NewPheromone creates a pheromone at the centre of the cell.
func (s *Store) NewPheromone(c components.CoarsePosition, pt components.PheromoneType, strength uint32, generation uint64) EntityIndex {
	id := s.CreateEntity(components.TypePheromone)
	e := s.entities[id]
	s.intensities.Get(e).Strength = strength
	s.scents.Get(e).Type = pt
	s.generations.Get(e).Tick = generation
	s.UpdatePosition(id, c.Center())
	return id
}

// Intensity returns a pheromone's strength.
func (s *Store) Intensity(id EntityIndex) uint32 {
	e := s.entity("Intensity", id)
	if !s.intensities.Has(e) {
		violate("Intensity", id, "entity has no intensity")
	}
	return s.intensities.Get(e).Strength
}

// SetIntensity overwrites a pheromone's strength.
func (s *Store) SetIntensity(id EntityIndex, strength uint32) {
	e := s.entity("SetIntensity", id)
	if !s.intensities.Has(e) {
		violate("SetIntensity", id, "entity has no intensity")
	}
	s.intensities.Get(e).Strength = strength
}

// PheromoneType returns which trail a pheromone belongs to.
func (s *Store) PheromoneType(id EntityIndex) components.PheromoneType {
	e := s.entity("PheromoneType", id)
	if !s.scents.Has(e) {
		violate("PheromoneType", id, "entity has no pheromone type")
	}
	return s.scents.Get(e).Type
}

// Generation returns the tick stamp of a pheromone.
func (s *Store) Generation(id EntityIndex) uint64 {
	e := s.entity("Generation", id)
	if !s.generations.Has(e) {
		violate("Generation", id, "entity has no generation")
	}
	return s.generations.Get(e).Tick
}

// IsCarryingFood reports whether the entity carries the CarryingFood tag.
func (s *Store) IsCarryingFood(id EntityIndex) bool {
	return s.carrying.Has(s.entity("IsCarryingFood", id))
}

// SetCarryingFood adds or removes the CarryingFood tag.
func (s *Store) SetCarryingFood(id EntityIndex, carrying bool) {
	e := s.entity("SetCarryingFood", id)
	switch has := s.carrying.Has(e); {
	case carrying && !has:
		s.carrying.Add(e, &components.CarryingFood{})
	case !carrying && has:
		s.carrying.Remove(e)
	}
}

// Releasing returns the entity's release state, if any.
func (s *Store) Releasing(id EntityIndex) (components.ReleasingPheromone, bool) {
	e := s.entity("Releasing", id)
	if !s.releasing.Has(e) {
		return components.ReleasingPheromone{}, false
	}
	return *s.releasing.Get(e), true
}

// SetReleasing starts or replaces the entity's release state.
func (s *Store) SetReleasing(id EntityIndex, r components.ReleasingPheromone) {
	e := s.entity("SetReleasing", id)
	if s.releasing.Has(e) {
		*s.releasing.Get(e) = r
		return
	}
	s.releasing.Add(e, &r)
}

// ClearReleasing stops the entity from releasing.
func (s *Store) ClearReleasing(id EntityIndex) {
	e := s.entity("ClearReleasing", id)
	if s.releasing.Has(e) {
		s.releasing.Remove(e)
	}
}

// IsBuilder reports whether the entity is a stationary builder.
func (s *Store) IsBuilder(id EntityIndex) bool {
	return s.builders.Has(s.entity("IsBuilder", id))
}

// SetBuilder adds or removes the Builder tag.
func (s *Store) SetBuilder(id EntityIndex, builder bool) {
	e := s.entity("SetBuilder", id)
	switch has := s.builders.Has(e); {
	case builder && !has:
		s.builders.Add(e, &components.Builder{})
	case !builder && has:
		s.builders.Remove(e)
	}
}

// IsEdible reports whether the entity is a food source.
func (s *Store) IsEdible(id EntityIndex) bool {
	return s.edible.Has(s.entity("IsEdible", id))
}

// IsImpenetrable reports whether the entity blocks its cell.
func (s *Store) IsImpenetrable(id EntityIndex) bool {
	return s.impenetrable.Has(s.entity("IsImpenetrable", id))
}

func (s *Store) memory(op string, id EntityIndex) *components.ShortMemory {
	e := s.entity(op, id)
	if !s.memories.Has(e) {
		violate(op, id, "entity has no short memory")
	}
	return s.memories.Get(e)
}

// AddToShortMemory records a visited cell, evicting the oldest when full.
func (s *Store) AddToShortMemory(id EntityIndex, c components.CoarsePosition) {
	s.memory("AddToShortMemory", id).Add(c)
}

// InShortMemory reports whether the ant visited the cell recently.
func (s *Store) InShortMemory(id EntityIndex, c components.CoarsePosition) bool {
	return s.memory("InShortMemory", id).Contains(c)
}

// ClearMemory forgets every remembered cell.
func (s *Store) ClearMemory(id EntityIndex) {
	s.memory("ClearMemory", id).Clear()
}

// Memory returns the remembered cells, oldest first.
func (s *Store) Memory(id EntityIndex) []components.CoarsePosition {
	return s.memory("Memory", id).Cells()
}
