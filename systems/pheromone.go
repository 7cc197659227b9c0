package systems

import (
	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/store"
)

// PheromoneStats counts what one pheromone pass did.
type PheromoneStats struct {
	Evaporated int // pheromones destroyed by decay
	Spread     int // neighbour deposits made by diffusion
	Released   int // deposits made by releasing ants
}

// PheromoneSystem ages, spreads and lays trails.
type PheromoneSystem struct {
	cfg    *config.Config
	bounds Bounds
}

// NewPheromoneSystem creates a pheromone system for the configured arena.
func NewPheromoneSystem(cfg *config.Config) *PheromoneSystem {
	return &PheromoneSystem{
		cfg:    cfg,
		bounds: Bounds{Width: cfg.Derived.ArenaW, Height: cfg.Derived.ArenaH},
	}
}

// Update runs evaporation, then diffusion, then release.
func (s *PheromoneSystem) Update(st *store.Store, tick uint64) PheromoneStats {
	var stats PheromoneStats
	stats.Evaporated = s.Evaporate(st)
	stats.Spread = s.Diffuse(st)
	stats.Released = s.Release(st, tick)
	return stats
}

// Deposit merges strength into the cell's pheromone of type pt. Any existing
// pheromone is destroyed and replaced by one carrying the summed strength
// (capped at maxStrength) and the older generation.
func Deposit(st *store.Store, c components.CoarsePosition, pt components.PheromoneType, strength uint32, generation uint64, maxStrength uint32) store.EntityIndex {
	total := uint64(strength)
	if old, ok := st.PheromoneInCell(c, pt); ok {
		total += uint64(st.Intensity(old))
		generation = min(generation, st.Generation(old))
		st.Destroy(old)
	}
	if total > uint64(maxStrength) {
		total = uint64(maxStrength)
	}
	return st.NewPheromone(c, pt, uint32(total), generation)
}

// Evaporate weakens every pheromone not lying on Sugar or Base and destroys
// those that reach zero.
func (s *PheromoneSystem) Evaporate(st *store.Store) int {
	decay := s.cfg.Pheromone.DecayRate
	destroyed := 0

	for _, id := range st.Pheromones() {
		c := st.Position(id).Coarse()
		if st.CellHas(c, components.TypeSugar) || st.CellHas(c, components.TypeBase) {
			continue
		}
		strength := st.Intensity(id)
		if strength <= decay {
			st.Destroy(id)
			destroyed++
			continue
		}
		st.SetIntensity(id, strength-decay)
	}
	return destroyed
}

type spread struct {
	cell       components.CoarsePosition
	pt         components.PheromoneType
	strength   uint32
	generation uint64
}

type drain struct {
	id     store.EntityIndex
	amount uint32
}

// Diffuse spreads a fraction of each strong pheromone to its orthogonal
// neighbours. Spread only flows into cells without the same trail or with a
// strictly newer generation, so trails grow outward from where they were
// first laid. All shares are computed before any is applied.
func (s *PheromoneSystem) Diffuse(st *store.Store) int {
	pc := s.cfg.Pheromone
	var (
		spreads []spread
		drains  []drain
	)

	for _, id := range st.Pheromones() {
		strength := st.Intensity(id)
		if strength < pc.MinSpreadStrength {
			continue
		}
		share := uint32(float64(strength) * pc.DiffusionFraction / 4)
		if share == 0 {
			continue
		}

		src := st.Position(id).Coarse()
		pt := st.PheromoneType(id)
		gen := st.Generation(id)

		var given uint32
		for _, off := range orthogonalOffsets {
			dst := src.Offset(off.X, off.Y)
			if !s.bounds.ContainsCell(dst) || st.CellIsImpenetrable(dst) {
				continue
			}
			if other, ok := st.PheromoneInCell(dst, pt); ok && st.Generation(other) <= gen {
				continue
			}
			spreads = append(spreads, spread{cell: dst, pt: pt, strength: share, generation: gen + 1})
			given += share
		}
		if given > 0 {
			drains = append(drains, drain{id: id, amount: given})
		}
	}

	// Sources pay before receivers merge, so every drained id is still alive
	for _, d := range drains {
		left := st.Intensity(d.id) - d.amount
		if left == 0 {
			st.Destroy(d.id)
			continue
		}
		st.SetIntensity(d.id, left)
	}
	for _, sp := range spreads {
		Deposit(st, sp.cell, sp.pt, sp.strength, sp.generation, pc.MaxStrength)
	}
	return len(spreads)
}

// Release makes every releasing ant deposit its trail at its cell, stamped
// with the current tick, and counts down its remaining release ticks.
func (s *PheromoneSystem) Release(st *store.Store, tick uint64) int {
	released := 0
	for _, ant := range st.Ants() {
		r, ok := st.Releasing(ant)
		if !ok {
			continue
		}
		if r.TicksLeft == 0 {
			st.ClearReleasing(ant)
			continue
		}

		c := st.Position(ant).Coarse()
		Deposit(st, c, r.Type, s.releaseStrength(st, c, r), tick, s.cfg.Pheromone.MaxStrength)
		released++

		r.TicksLeft--
		if r.TicksLeft == 0 {
			st.ClearReleasing(ant)
		} else {
			st.SetReleasing(ant, r)
		}
	}
	return released
}

// releaseStrength is strongest on the trail's own source and fades with the
// ticks an ant has been away from it.
func (s *PheromoneSystem) releaseStrength(st *store.Store, c components.CoarsePosition, r components.ReleasingPheromone) uint32 {
	rc := s.cfg.Release
	if st.CellHas(c, r.Type.Source()) {
		return rc.SourceStrength
	}
	strength := uint64(rc.TrailStrength) * uint64(r.TicksLeft) / uint64(rc.Ticks)
	if strength < 1 {
		strength = 1
	}
	return uint32(strength)
}
