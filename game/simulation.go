package game

import (
	"fmt"

	"github.com/pthm-cable/trails/systems"
	"github.com/pthm-cable/trails/telemetry"
)

// Tick advances the simulation by one step: the pheromone pass, then the
// ant pass. Every ant decides against the same world before any moves.
func (g *Game) Tick() {
	g.tick++
	g.perfCollector.StartTick()

	g.pheromonePass()
	g.antPass()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()

	if g.checkWorld && g.err == nil {
		g.verifyWorld()
	}
}

// verifyWorld records the first invariant violation and pauses the game.
func (g *Game) verifyWorld() {
	if err := g.CheckInvariants(); err != nil {
		g.err = fmt.Errorf("tick %d: %w", g.tick, err)
		g.paused = true
		g.logger.Error("invariant violated", "tick", g.tick, "error", err)
	}
}

// pheromonePass ages existing trails, spreads them, then lays fresh ones.
func (g *Game) pheromonePass() {
	g.perfCollector.StartPhase(telemetry.PhaseEvaporation)
	evaporated := g.pheromones.Evaporate(g.st)

	g.perfCollector.StartPhase(telemetry.PhaseDiffusion)
	spread := g.pheromones.Diffuse(g.st)

	g.perfCollector.StartPhase(telemetry.PhaseRelease)
	released := g.pheromones.Release(g.st, g.tick)

	g.collector.RecordPheromonePass(evaporated, spread, released)
}

// antPass collects every ant's move, then applies them in index order.
func (g *Game) antPass() {
	g.perfCollector.StartPhase(telemetry.PhaseDecide)
	g.moves = g.moves[:0]
	for _, ant := range g.st.Ants() {
		if g.st.IsBuilder(ant) {
			continue
		}
		g.moves = append(g.moves, g.movement.Decide(g.st, ant))
	}

	g.perfCollector.StartPhase(telemetry.PhaseApply)
	for _, m := range g.moves {
		g.applyMove(m)
	}
}

// applyMove writes the new position, records both cells in short memory and
// runs the food state machine on the destination cell.
func (g *Game) applyMove(m systems.Move) {
	stalled := m.To == m.From
	if !stalled {
		g.st.UpdatePosition(m.Ant, m.To)
	}

	from, to := m.From.Coarse(), m.To.Coarse()
	g.st.AddToShortMemory(m.Ant, from)
	g.st.AddToShortMemory(m.Ant, to)
	g.collector.RecordMove(m.Followed, stalled)

	switch g.food.Arrive(g.st, m.Ant, to) {
	case systems.PickedUp:
		g.recordEvent(telemetry.NewPickupEvent(g.tick, uint64(m.Ant), to))
	case systems.Delivered:
		g.foodInBase++
		g.recordEvent(telemetry.NewDeliveryEvent(g.tick, uint64(m.Ant), to))
	}
}

func (g *Game) recordEvent(e telemetry.Event) {
	g.collector.RecordEvent(e)
	g.logger.Debug("food", "event", e, "food_in_base", g.foodInBase)
}
