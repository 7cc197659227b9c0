package termview

import (
	"fmt"
	"io"
	"slices"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/store"
)

// WriteText writes a plain listing of every live entity, one per line, in
// index order, preceded by a tick header.
func WriteText(w io.Writer, tick uint64, st *store.Store) error {
	if _, err := fmt.Fprintf(w, "Tick #%d\n", tick); err != nil {
		return err
	}

	types := []components.EntityType{
		components.TypeAnt, components.TypePheromone,
		components.TypeBase, components.TypeSugar, components.TypeWall,
	}
	var ids []store.EntityIndex
	for _, t := range types {
		ids = append(ids, st.EntitiesOfType(t)...)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := writeEntity(w, st, id); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeEntity(w io.Writer, st *store.Store, id store.EntityIndex) error {
	t := st.Type(id)
	if !st.HasPosition(id) {
		_, err := fmt.Fprintf(w, "%s %d has no position!\n", t, id)
		return err
	}
	p := st.Position(id)

	var err error
	switch t {
	case components.TypeAnt:
		carrying := ""
		if st.IsCarryingFood(id) {
			carrying = " carrying food"
		}
		_, err = fmt.Fprintf(w, "ant %d at %g, %g%s\n", id, p.X, p.Y, carrying)
	case components.TypePheromone:
		_, err = fmt.Fprintf(w, "pheromone %d at %g, %g (%s, strength %d, generation %d)\n",
			id, p.X, p.Y, st.PheromoneType(id), st.Intensity(id), st.Generation(id))
	default:
		_, err = fmt.Fprintf(w, "%s %d at %g, %g\n", t, id, p.X, p.Y)
	}
	return err
}

// Stepper is a Source that advances one tick at a time.
type Stepper interface {
	Source
	Tick()
}

// WriteRun dumps the world and then ticks it, until the tick count reaches
// ticks. The first dump is the seeded world at tick 0.
func WriteRun(w io.Writer, sim Stepper, ticks uint64) error {
	for sim.TickCount() < ticks {
		if err := WriteText(w, sim.TickCount(), sim.Store()); err != nil {
			return err
		}
		sim.Tick()
	}
	return nil
}
