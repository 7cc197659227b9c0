// Package game runs the colony simulation tick by tick.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/store"
	"github.com/pthm-cable/trails/systems"
	"github.com/pthm-cable/trails/telemetry"
)

// Game holds the complete simulation state.
type Game struct {
	cfg    *config.Config
	st     *store.Store
	rng    *rand.Rand
	logger *slog.Logger

	// Systems
	pheromones *systems.PheromoneSystem
	movement   *systems.MovementSystem
	food       *systems.FoodSystem

	// State
	tick           uint64
	foodInBase     int
	paused         bool
	stepsPerUpdate int
	moves          []systems.Move // scratch, reused every tick
	checkWorld     bool
	err            error // first invariant violation

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
	lastStats        telemetry.WindowStats
}

// NewGame creates an empty arena. Use the bootstrap helpers to populate it.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.config()
	rng := rand.New(rand.NewPCG(opts.Seed, 0))

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:    cfg,
		st:     store.New(cfg.Movement.MemoryCapacity),
		rng:    rng,
		logger: opts.logger(),

		pheromones: systems.NewPheromoneSystem(cfg),
		movement:   systems.NewMovementSystem(cfg, rng),
		food:       systems.NewFoodSystem(cfg),

		stepsPerUpdate: steps,
		checkWorld:     opts.CheckInvariants,

		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.outputManager = om

	return g, nil
}

// Update advances the simulation by the configured number of ticks unless paused.
func (g *Game) Update() {
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate && !g.paused; i++ {
		g.Tick()
	}
}

// Run ticks until maxTicks ticks have completed in total, or until an
// invariant check fails.
func (g *Game) Run(maxTicks uint64) {
	for g.tick < maxTicks && g.err == nil {
		g.Tick()
	}
}

// Err returns the first invariant violation seen with Options.CheckInvariants.
func (g *Game) Err() error {
	return g.err
}

// Close flushes and closes experiment output.
func (g *Game) Close() error {
	return g.outputManager.Close()
}

// Store exposes the entity store for renderers and bootstrap code.
func (g *Game) Store() *store.Store {
	return g.st
}

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// FoodInBase returns the number of deliveries so far.
func (g *Game) FoodInBase() int {
	return g.foodInBase
}

// TickCount returns the number of completed ticks.
func (g *Game) TickCount() uint64 {
	return g.tick
}

// Paused reports whether Update is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes Update.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// StepsPerUpdate returns how many ticks one Update runs.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate changes the simulation speed, clamped to [1, 100].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, 100))
}

// LastStats returns the most recent flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Perf returns timing statistics over the recent ticks.
func (g *Game) Perf() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame marks a rendered frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}
