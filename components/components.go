// Package components defines ECS components for the simulation.
package components

// EntityType tags what an entity is. Assigned at creation, never changed.
type EntityType uint8

const (
	TypeAnt EntityType = iota
	TypePheromone
	TypeSugar
	TypeBase
	TypeWall
)

// String returns the lower-case name of the type.
func (t EntityType) String() string {
	switch t {
	case TypeAnt:
		return "ant"
	case TypePheromone:
		return "pheromone"
	case TypeSugar:
		return "sugar"
	case TypeBase:
		return "base"
	case TypeWall:
		return "wall"
	default:
		return "unknown"
	}
}

// PheromoneType identifies which trail a pheromone belongs to.
type PheromoneType uint8

const (
	PheromoneFood PheromoneType = iota // leads to Sugar
	PheromoneBase                      // leads to Base
)

// String returns the lower-case name of the pheromone type.
func (p PheromoneType) String() string {
	if p == PheromoneFood {
		return "food"
	}
	return "base"
}

// Source returns the entity type a trail of this pheromone type leads to.
func (p PheromoneType) Source() EntityType {
	if p == PheromoneFood {
		return TypeSugar
	}
	return TypeBase
}

// Identity links a backing ECS entity to its store index and type.
type Identity struct {
	Index uint64
	Type  EntityType
}

// Intensity is the strength of a pheromone.
type Intensity struct {
	Strength uint32
}

// Scent marks which trail a pheromone belongs to.
type Scent struct {
	Type PheromoneType
}

// Generation is the tick at which a trail cell was first laid.
// Lower values sit closer to the trail's origin.
type Generation struct {
	Tick uint64
}

// ReleasingPheromone makes an ant lay a trail for a limited number of ticks.
type ReleasingPheromone struct {
	TicksLeft uint32
	Type      PheromoneType
}

// CarryingFood tag component for ants returning to base.
type CarryingFood struct{}

// Edible tag component for food sources.
type Edible struct{}

// Impenetrable tag component for cells no entity may enter.
type Impenetrable struct{}

// Builder tag component for stationary ants.
type Builder struct{}
