// Package store is the single source of truth for entity and component data.
//
// Component tables live in an ark ECS world; "has component" is table
// membership. Entities are addressed by an EntityIndex that is allocated
// monotonically and never reused, unlike ark's own entity ids which are
// recycled. The store also keeps a reverse index from unit cells to the
// entities standing in them, and it is the only code that writes Position.
package store

import (
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/trails/components"
)

// EntityIndex identifies an entity for its whole lifetime.
type EntityIndex uint64

// ContractViolation is the panic value for broken invariants and for
// queries about entities or components that do not exist.
type ContractViolation struct {
	Op     string
	Index  EntityIndex
	Detail string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("store: %s(%d): %s", e.Op, e.Index, e.Detail)
}

func violate(op string, id EntityIndex, format string, args ...any) {
	panic(&ContractViolation{Op: op, Index: id, Detail: fmt.Sprintf(format, args...)})
}

// Store owns the ECS world, the index allocator and the spatial index.
type Store struct {
	world *ecs.World

	nextIndex      EntityIndex
	entities       map[EntityIndex]ecs.Entity
	unplaced       map[EntityIndex]struct{} // created but never positioned
	memoryCapacity int

	// Component tables
	identities   *ecs.Map[components.Identity]
	positions    *ecs.Map[components.Position]
	directions   *ecs.Map[components.Direction]
	intensities  *ecs.Map[components.Intensity]
	scents       *ecs.Map[components.Scent]
	generations  *ecs.Map[components.Generation]
	releasing    *ecs.Map[components.ReleasingPheromone]
	carrying     *ecs.Map[components.CarryingFood]
	edible       *ecs.Map[components.Edible]
	impenetrable *ecs.Map[components.Impenetrable]
	builders     *ecs.Map[components.Builder]
	memories     *ecs.Map[components.ShortMemory]

	identityFilter  *ecs.Filter1[components.Identity]
	pheromoneFilter *ecs.Filter2[components.Identity, components.Scent]

	// Spatial reverse index: cell -> entities whose position floors to it
	cells map[components.CoarsePosition]map[EntityIndex]struct{}
}

// New creates an empty store. Ants get a short memory of memoryCapacity cells.
func New(memoryCapacity int) *Store {
	world := ecs.NewWorld()

	return &Store{
		world:          world,
		entities:       make(map[EntityIndex]ecs.Entity),
		unplaced:       make(map[EntityIndex]struct{}),
		memoryCapacity: memoryCapacity,

		identities:   ecs.NewMap[components.Identity](world),
		positions:    ecs.NewMap[components.Position](world),
		directions:   ecs.NewMap[components.Direction](world),
		intensities:  ecs.NewMap[components.Intensity](world),
		scents:       ecs.NewMap[components.Scent](world),
		generations:  ecs.NewMap[components.Generation](world),
		releasing:    ecs.NewMap[components.ReleasingPheromone](world),
		carrying:     ecs.NewMap[components.CarryingFood](world),
		edible:       ecs.NewMap[components.Edible](world),
		impenetrable: ecs.NewMap[components.Impenetrable](world),
		builders:     ecs.NewMap[components.Builder](world),
		memories:     ecs.NewMap[components.ShortMemory](world),

		identityFilter:  ecs.NewFilter1[components.Identity](world),
		pheromoneFilter: ecs.NewFilter2[components.Identity, components.Scent](world),

		cells: make(map[components.CoarsePosition]map[EntityIndex]struct{}),
	}
}

// CreateEntity allocates a new entity of the given type, attaches the
// type's mandatory components and a default position at the origin.
func (s *Store) CreateEntity(t components.EntityType) EntityIndex {
	id := s.nextIndex
	s.nextIndex++

	e := s.identities.NewEntity(&components.Identity{Index: uint64(id), Type: t})
	s.positions.Add(e, &components.Position{})
	s.directions.Add(e, &components.Direction{})

	switch t {
	case components.TypeAnt:
		mem := components.NewShortMemory(s.memoryCapacity)
		s.memories.Add(e, &mem)
	case components.TypePheromone:
		s.intensities.Add(e, &components.Intensity{})
		s.scents.Add(e, &components.Scent{})
		s.generations.Add(e, &components.Generation{})
	case components.TypeSugar:
		s.edible.Add(e, &components.Edible{})
	case components.TypeWall:
		s.impenetrable.Add(e, &components.Impenetrable{})
	}

	s.entities[id] = e
	s.unplaced[id] = struct{}{}
	s.insertCell(id, components.CoarsePosition{})

	return id
}

// Destroy removes the entity's position and every component it holds.
// Only pheromones are ever destroyed.
func (s *Store) Destroy(id EntityIndex) {
	e := s.entity("Destroy", id)
	if s.positions.Has(e) {
		s.removeCell(id, s.positions.Get(e).Coarse())
	}
	s.world.RemoveEntity(e)
	delete(s.entities, id)
	delete(s.unplaced, id)
}

// Alive reports whether the index refers to an existing entity.
func (s *Store) Alive(id EntityIndex) bool {
	_, ok := s.entities[id]
	return ok
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// Type returns the entity's type.
func (s *Store) Type(id EntityIndex) components.EntityType {
	return s.identities.Get(s.entity("Type", id)).Type
}

// EntitiesOfType returns every live entity of the type in ascending index order.
func (s *Store) EntitiesOfType(t components.EntityType) []EntityIndex {
	var out []EntityIndex
	query := s.identityFilter.Query()
	for query.Next() {
		ident := query.Get()
		if ident.Type == t {
			out = append(out, EntityIndex(ident.Index))
		}
	}
	slices.Sort(out)
	return out
}

// Ants returns every ant in ascending index order.
func (s *Store) Ants() []EntityIndex {
	return s.EntitiesOfType(components.TypeAnt)
}

// Pheromones returns every pheromone in ascending index order.
func (s *Store) Pheromones() []EntityIndex {
	var out []EntityIndex
	query := s.pheromoneFilter.Query()
	for query.Next() {
		ident, _ := query.Get()
		out = append(out, EntityIndex(ident.Index))
	}
	slices.Sort(out)
	return out
}

// Count returns the number of live entities of the type.
func (s *Store) Count(t components.EntityType) int {
	n := 0
	query := s.identityFilter.Query()
	for query.Next() {
		if query.Get().Type == t {
			n++
		}
	}
	return n
}

// entity resolves an index, panicking if it is not alive.
func (s *Store) entity(op string, id EntityIndex) ecs.Entity {
	e, ok := s.entities[id]
	if !ok {
		violate(op, id, "entity is not alive")
	}
	return e
}
