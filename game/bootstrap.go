package game

import (
	"math"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/store"
)

// PlaceEntity creates an entity of type t at pos.
func (g *Game) PlaceEntity(t components.EntityType, pos components.Position) store.EntityIndex {
	id := g.st.CreateEntity(t)
	g.st.UpdatePosition(id, pos)
	return id
}

// BasePosition is where the colony's base sits: the left end of the middle row.
func (g *Game) BasePosition() components.Position {
	return components.Position{X: 0.5, Y: g.cfg.Derived.ArenaCenterY}
}

// SugarPosition is where the food source sits: the right end of the middle row.
func (g *Game) SugarPosition() components.Position {
	return components.Position{X: g.cfg.Derived.ArenaW - 0.5, Y: g.cfg.Derived.ArenaCenterY}
}

// SeedColony places the base, the sugar and ants ants along the middle row,
// wrapping around when there are more ants than columns. Ants that would
// start inside a wall start on the base instead, so add walls first.
func (g *Game) SeedColony(ants int) {
	y := g.cfg.Derived.ArenaCenterY
	w := g.cfg.Derived.ArenaW

	for i := 0; i < ants; i++ {
		pos := components.Position{X: math.Mod(0.5+float64(i), w), Y: y}
		if g.st.PosIsImpenetrable(pos) {
			pos = g.BasePosition()
		}
		g.PlaceEntity(components.TypeAnt, pos)
	}

	g.PlaceEntity(components.TypeBase, g.BasePosition())
	g.PlaceEntity(components.TypeSugar, g.SugarPosition())

	g.logger.Debug("colony seeded", "ants", ants, "entities", g.st.Len())
}

// AddDeneubourgWalls blocks the direct route between base and sugar with a
// wall island spanning the middle third of the arena, leaving a bridge above
// and one below it.
func (g *Game) AddDeneubourgWalls() {
	w, h := g.cfg.Arena.Width, g.cfg.Arena.Height
	x0, x1 := w/3, w-w/3
	y0, y1 := h/3, h/2

	walls := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x < x1; x++ {
			c := components.CoarsePosition{X: x, Y: y}
			if g.st.CellIsImpenetrable(c) {
				continue
			}
			g.PlaceEntity(components.TypeWall, c.Center())
			walls++
		}
	}

	g.logger.Debug("walls added", "cells", walls)
}

// AddBuilders places n stationary ants on random free cells.
func (g *Game) AddBuilders(n int) {
	w, h := g.cfg.Arena.Width, g.cfg.Arena.Height
	placed := 0
	for attempt := 0; placed < n && attempt < 100*n; attempt++ {
		c := components.CoarsePosition{X: g.rng.IntN(w), Y: g.rng.IntN(h)}
		if g.st.CellIsImpenetrable(c) {
			continue
		}
		id := g.PlaceEntity(components.TypeAnt, c.Center())
		g.st.SetBuilder(id, true)
		placed++
	}
	if placed < n {
		g.logger.Warn("arena too crowded for builders", "wanted", n, "placed", placed)
	}
}

// Bootstrap builds the configured default scenario.
func (g *Game) Bootstrap() {
	if g.cfg.Colony.Walls {
		g.AddDeneubourgWalls()
	}
	g.SeedColony(g.cfg.Colony.Ants)
	g.AddBuilders(g.cfg.Colony.Builders)
}
