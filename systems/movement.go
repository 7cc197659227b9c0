package systems

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/store"
)

// Move is one ant's decision for the tick.
type Move struct {
	Ant      store.EntityIndex
	From, To components.Position
	Followed bool // chosen by gradient rather than random walk
}

// MovementSystem decides where ants go. It only reads the store; the caller
// applies all moves after every ant has decided.
type MovementSystem struct {
	cfg    *config.Config
	bounds Bounds
	turn   distuv.Normal
}

// NewMovementSystem creates a movement system drawing turns from rng.
func NewMovementSystem(cfg *config.Config, rng *rand.Rand) *MovementSystem {
	return &MovementSystem{
		cfg:    cfg,
		bounds: Bounds{Width: cfg.Derived.ArenaW, Height: cfg.Derived.ArenaH},
		turn:   distuv.Normal{Mu: 0, Sigma: cfg.Movement.TurnSigma, Src: rng},
	}
}

// Decide picks the ant's destination against the current world. A seeking ant
// follows Food pheromone, a returning ant follows Base pheromone, and either
// falls back to a biased random walk when no neighbour qualifies.
func (s *MovementSystem) Decide(st *store.Store, ant store.EntityIndex) Move {
	from := st.Position(ant)

	target := components.PheromoneFood
	if st.IsCarryingFood(ant) {
		target = components.PheromoneBase
	}

	if to, ok := s.followGradient(st, ant, from, target); ok {
		return Move{Ant: ant, From: from, To: to, Followed: true}
	}
	return Move{Ant: ant, From: from, To: s.randomWalk(st, ant, from)}
}

type candidate struct {
	to       components.Position
	angle    float64
	strength uint32
}

// followGradient steps toward the strongest neighbouring pheromone of the
// target type that is within the turn limit and not recently visited.
func (s *MovementSystem) followGradient(st *store.Store, ant store.EntityIndex, from components.Position, target components.PheromoneType) (components.Position, bool) {
	here := from.Coarse()

	var candidates []candidate
	for _, off := range neighbourOffsets {
		angle := math.Atan2(float64(off.Y), float64(off.X))
		to := step(from, angle)
		if !s.bounds.Contains(to) {
			continue
		}
		cell := to.Coarse()
		if cell == here || st.CellIsImpenetrable(cell) {
			continue
		}
		id, ok := st.PheromoneInCell(cell, target)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{to: to, angle: angle, strength: st.Intensity(id)})
	}
	if len(candidates) == 0 {
		return components.Position{}, false
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Compare(b.strength, a.strength)
	})

	heading := st.Direction(ant)
	unlimited := heading.IsZero() ||
		st.CellHas(here, components.TypeSugar) ||
		st.CellHas(here, components.TypeBase)

	for _, c := range candidates {
		if !unlimited && turnBetween(heading.Angle(), c.angle) > s.cfg.Derived.MaxTurnRad {
			continue
		}
		if st.InShortMemory(ant, c.to.Coarse()) {
			continue
		}
		return c.to, true
	}
	return components.Position{}, false
}

// randomWalk samples turns around the current heading until a destination is
// in bounds, passable and not recently visited. The heading flips every
// EscapeAfter rejections; after MaxAttempts rejections memory is ignored, and
// after twice that the ant stays where it is.
func (s *MovementSystem) randomWalk(st *store.Store, ant store.EntityIndex, from components.Position) components.Position {
	mc := s.cfg.Movement
	heading := st.Direction(ant).Angle()

	for attempt := 0; attempt < 2*mc.MaxAttempts; attempt++ {
		if attempt > 0 && attempt%mc.EscapeAfter == 0 {
			heading = normalizeAngle(heading + math.Pi)
		}
		z := clamp(s.turn.Rand(), -1, 1)
		to := step(from, heading+z*math.Pi)

		if !s.bounds.Contains(to) || st.PosIsImpenetrable(to) {
			continue
		}
		if attempt < mc.MaxAttempts && st.InShortMemory(ant, to.Coarse()) {
			continue
		}
		return to
	}
	return from
}
