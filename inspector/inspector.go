// Package inspector tracks the selected arena cell and reports what is in it.
package inspector

import (
	"fmt"
	"math"
	"strings"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/store"
)

// AntView is the displayable state of one ant.
type AntView struct {
	Index     store.EntityIndex `inspect:"label,name:Ant"`
	Carrying  bool              `inspect:"bool,name:Carrying"`
	Builder   bool              `inspect:"bool,name:Builder"`
	Releasing string            `inspect:"label,name:Releasing"`
	Heading   float64           `inspect:"label,name:Heading,fmt:%.0f deg"`
	Memory    int               `inspect:"label,name:Memory"`
}

// TrailView is the displayable state of one pheromone.
type TrailView struct {
	Index      store.EntityIndex `inspect:"skip"`
	Strength   uint32            `inspect:"bar,name:Strength"`
	Generation uint64            `inspect:"label,name:Laid at"`
}

// CellReport describes everything standing in one cell.
type CellReport struct {
	Cell      components.CoarsePosition
	Kinds     string // comma separated entity types, e.g. "base, ant"
	Wall      bool
	Ants      []AntView
	FoodTrail *TrailView
	BaseTrail *TrailView
}

// Inspector manages cell selection.
type Inspector struct {
	selected    components.CoarsePosition
	hasSelected bool
}

// New creates an inspector with nothing selected.
func New() *Inspector {
	return &Inspector{}
}

// Select focuses a cell.
func (ins *Inspector) Select(c components.CoarsePosition) {
	ins.selected = c
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected cell.
func (ins *Inspector) Selected() (components.CoarsePosition, bool) {
	return ins.selected, ins.hasSelected
}

// Report describes the selected cell. It returns false when nothing is selected.
func (ins *Inspector) Report(st *store.Store) (CellReport, bool) {
	if !ins.hasSelected {
		return CellReport{}, false
	}
	return Inspect(st, ins.selected), true
}

// FocusAnt returns the lowest-index ant in the selected cell, if any.
func (ins *Inspector) FocusAnt(st *store.Store) (store.EntityIndex, bool) {
	if !ins.hasSelected {
		return 0, false
	}
	ants, ok := st.EntitiesWithTypeAt(ins.selected.Center(), components.TypeAnt)
	if !ok {
		return 0, false
	}
	return ants[0], true
}

// Inspect builds a report for any cell.
func Inspect(st *store.Store, c components.CoarsePosition) CellReport {
	r := CellReport{Cell: c}

	var kinds []string
	for _, id := range st.EntitiesInCell(c) {
		t := st.Type(id)
		kinds = append(kinds, t.String())

		switch t {
		case components.TypeWall:
			r.Wall = true
		case components.TypeAnt:
			r.Ants = append(r.Ants, antView(st, id))
		case components.TypePheromone:
			tv := &TrailView{Index: id, Strength: st.Intensity(id), Generation: st.Generation(id)}
			if st.PheromoneType(id) == components.PheromoneFood {
				r.FoodTrail = tv
			} else {
				r.BaseTrail = tv
			}
		}
	}
	r.Kinds = strings.Join(kinds, ", ")
	return r
}

func antView(st *store.Store, id store.EntityIndex) AntView {
	v := AntView{
		Index:     id,
		Carrying:  st.IsCarryingFood(id),
		Builder:   st.IsBuilder(id),
		Releasing: "-",
		Memory:    len(st.Memory(id)),
	}
	if d := st.Direction(id); !d.IsZero() {
		v.Heading = d.Angle() * 180 / math.Pi
	}
	if rel, ok := st.Releasing(id); ok {
		v.Releasing = fmt.Sprintf("%s trail, %d ticks left", rel.Type, rel.TicksLeft)
	}
	return v
}
