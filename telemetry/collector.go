package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     uint64
	windowStartTick uint64

	// Event counters for current window
	pickups       int
	deliveries    int
	gradientMoves int
	randomMoves   int
	stalledMoves  int
	evaporated    int
	spread        int
	released      int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: uint64(windowTicks)}
}

// RecordEvent records a pickup or delivery.
func (c *Collector) RecordEvent(e Event) {
	switch e.Type {
	case EventPickup:
		c.pickups++
	case EventDelivery:
		c.deliveries++
	}
}

// RecordMove records one ant decision.
func (c *Collector) RecordMove(followed, stalled bool) {
	switch {
	case stalled:
		c.stalledMoves++
	case followed:
		c.gradientMoves++
	default:
		c.randomMoves++
	}
}

// RecordPheromonePass adds the counts from one pheromone pass.
func (c *Collector) RecordPheromonePass(evaporated, spread, released int) {
	c.evaporated += evaporated
	c.spread += spread
	c.released += released
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Snapshot is the colony state sampled by the caller at flush time.
type Snapshot struct {
	Ants, Carrying, Releasing int
	FoodInBase                int
	OccupiedCells             int
	FoodStrengths             []float64
	BaseStrengths             []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick uint64, snap Snapshot) WindowStats {
	food := ComputeStrengthStats(snap.FoodStrengths)
	base := ComputeStrengthStats(snap.BaseStrengths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Ants:       snap.Ants,
		Carrying:   snap.Carrying,
		Releasing:  snap.Releasing,
		FoodInBase: snap.FoodInBase,

		Pickups:    c.pickups,
		Deliveries: c.deliveries,

		GradientMoves: c.gradientMoves,
		RandomMoves:   c.randomMoves,
		StalledMoves:  c.stalledMoves,

		Evaporated: c.evaporated,
		Spread:     c.spread,
		Released:   c.released,

		FoodPheromones:   len(snap.FoodStrengths),
		FoodStrengthMean: food.Mean,
		FoodStrengthStd:  food.Std,
		FoodStrengthP50:  food.P50,
		FoodStrengthP90:  food.P90,
		BasePheromones:   len(snap.BaseStrengths),
		BaseStrengthMean: base.Mean,
		BaseStrengthStd:  base.Std,
		BaseStrengthP50:  base.P50,
		BaseStrengthP90:  base.P90,
		OccupiedCells:    snap.OccupiedCells,
	}

	c.windowStartTick = currentTick
	c.pickups, c.deliveries = 0, 0
	c.gradientMoves, c.randomMoves, c.stalledMoves = 0, 0, 0
	c.evaporated, c.spread, c.released = 0, 0, 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() uint64 {
	return c.windowTicks
}
