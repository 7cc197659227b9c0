package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/store"
)

// CheckInvariants verifies the world state between ticks: ants stay inside
// the arena and off walls, and no cell holds two pheromones of one type.
func (g *Game) CheckInvariants() (err error) {
	defer func() {
		if r := recover(); r != nil {
			cv, ok := r.(*store.ContractViolation)
			if !ok {
				panic(r)
			}
			err = cv
		}
	}()

	var errs []error
	w, h := g.cfg.Derived.ArenaW, g.cfg.Derived.ArenaH
	for _, ant := range g.st.Ants() {
		p := g.st.Position(ant)
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
			errs = append(errs, fmt.Errorf("ant %d out of bounds at (%v, %v)", ant, p.X, p.Y))
		}
		if g.st.PosIsImpenetrable(p) {
			errs = append(errs, fmt.Errorf("ant %d inside a wall at (%v, %v)", ant, p.X, p.Y))
		}
	}

	for _, c := range g.st.Cells() {
		g.st.PheromoneInCell(c, components.PheromoneFood)
		g.st.PheromoneInCell(c, components.PheromoneBase)
	}
	return errors.Join(errs...)
}
