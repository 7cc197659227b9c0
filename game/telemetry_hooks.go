package game

import (
	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/telemetry"
)

// flushTelemetry closes the stats window when due and fans the result out to
// the callback, the log and the CSV output.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.snapshot())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		g.logger.Info("stats", "window", stats)
		g.logger.Info("perf", "timing", perfStats)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		g.logger.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			g.logger.Info("bookmark", "type", string(bm.Type), "tick", bm.Tick, "description", bm.Description)
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			g.logger.Error("failed to write bookmark", "error", err)
		}
	}
}

// snapshot samples the colony for the telemetry window.
func (g *Game) snapshot() telemetry.Snapshot {
	snap := telemetry.Snapshot{
		FoodInBase:    g.foodInBase,
		OccupiedCells: len(g.st.Cells()),
	}

	for _, ant := range g.st.Ants() {
		snap.Ants++
		if g.st.IsCarryingFood(ant) {
			snap.Carrying++
		}
		if _, ok := g.st.Releasing(ant); ok {
			snap.Releasing++
		}
	}

	for _, id := range g.st.Pheromones() {
		strength := float64(g.st.Intensity(id))
		if g.st.PheromoneType(id) == components.PheromoneFood {
			snap.FoodStrengths = append(snap.FoodStrengths, strength)
		} else {
			snap.BaseStrengths = append(snap.BaseStrengths, strength)
		}
	}
	return snap
}
