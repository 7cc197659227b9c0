package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`

	// Colony state at window end
	Ants       int `csv:"ants"`
	Carrying   int `csv:"carrying"`
	Releasing  int `csv:"releasing"`
	FoodInBase int `csv:"food_in_base"`

	// Events during window
	Pickups    int `csv:"pickups"`
	Deliveries int `csv:"deliveries"`

	// Movement during window
	GradientMoves int `csv:"gradient_moves"`
	RandomMoves   int `csv:"random_moves"`
	StalledMoves  int `csv:"stalled_moves"`

	// Pheromone pass totals during window
	Evaporated int `csv:"evaporated"`
	Spread     int `csv:"spread"`
	Released   int `csv:"released"`

	// Trail state at window end
	FoodPheromones   int     `csv:"food_pheromones"`
	FoodStrengthMean float64 `csv:"food_strength_mean"`
	FoodStrengthStd  float64 `csv:"food_strength_std"`
	FoodStrengthP50  float64 `csv:"food_strength_p50"`
	FoodStrengthP90  float64 `csv:"food_strength_p90"`
	BasePheromones   int     `csv:"base_pheromones"`
	BaseStrengthMean float64 `csv:"base_strength_mean"`
	BaseStrengthStd  float64 `csv:"base_strength_std"`
	BaseStrengthP50  float64 `csv:"base_strength_p50"`
	BaseStrengthP90  float64 `csv:"base_strength_p90"`
	OccupiedCells    int     `csv:"occupied_cells"`
}

// StrengthStats summarises a set of pheromone strengths.
type StrengthStats struct {
	Mean, Std, P50, P90 float64
}

// ComputeStrengthStats returns mean, sample standard deviation and empirical
// quantiles. Fewer than two values give a zero deviation.
func ComputeStrengthStats(values []float64) StrengthStats {
	if len(values) == 0 {
		return StrengthStats{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var s StrengthStats
	if len(sorted) < 2 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Int("ants", s.Ants),
		slog.Int("carrying", s.Carrying),
		slog.Int("food_in_base", s.FoodInBase),
		slog.Int("pickups", s.Pickups),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("gradient_moves", s.GradientMoves),
		slog.Int("random_moves", s.RandomMoves),
		slog.Int("stalled_moves", s.StalledMoves),
		slog.Int("food_pheromones", s.FoodPheromones),
		slog.Float64("food_strength_mean", s.FoodStrengthMean),
		slog.Int("base_pheromones", s.BasePheromones),
		slog.Float64("base_strength_mean", s.BaseStrengthMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
