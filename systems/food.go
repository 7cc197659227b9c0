package systems

import (
	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/store"
)

// Transition is the outcome of an ant arriving in a cell.
type Transition uint8

const (
	NoTransition Transition = iota
	PickedUp                // seeking ant reached Sugar
	Delivered               // returning ant reached Base
)

func (t Transition) String() string {
	switch t {
	case PickedUp:
		return "picked_up"
	case Delivered:
		return "delivered"
	default:
		return "none"
	}
}

// FoodSystem switches ants between seeking and returning.
type FoodSystem struct {
	cfg *config.Config
}

// NewFoodSystem creates a food system.
func NewFoodSystem(cfg *config.Config) *FoodSystem {
	return &FoodSystem{cfg: cfg}
}

// Arrive applies the state change for an ant now standing in cell. Either
// transition clears the ant's short memory and starts a release of the
// trail leading back to where it came from.
func (s *FoodSystem) Arrive(st *store.Store, ant store.EntityIndex, cell components.CoarsePosition) Transition {
	carrying := st.IsCarryingFood(ant)

	switch {
	case !carrying && st.CellHas(cell, components.TypeSugar):
		st.SetCarryingFood(ant, true)
		s.startRelease(st, ant, components.PheromoneFood)
		return PickedUp
	case carrying && st.CellHas(cell, components.TypeBase):
		st.SetCarryingFood(ant, false)
		s.startRelease(st, ant, components.PheromoneBase)
		return Delivered
	}
	return NoTransition
}

func (s *FoodSystem) startRelease(st *store.Store, ant store.EntityIndex, pt components.PheromoneType) {
	st.ClearMemory(ant)
	st.SetReleasing(ant, components.ReleasingPheromone{TicksLeft: s.cfg.Release.Ticks, Type: pt})
}
