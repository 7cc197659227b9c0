package main

import (
	"log/slog"
	"sync"

	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/game"
	"github.com/pthm-cable/trails/telemetry"
)

// FitnessEvaluator runs headless simulations and scores a parameter vector.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      uint64
	seeds      []uint64
	baseConfig *config.Config
	logger     *slog.Logger

	mu   sync.Mutex
	last Score
}

// Score summarises one evaluation across all seeds.
type Score struct {
	Fitness     float64 // lower is better
	MeanFood    float64 // mean food_in_base at the end of the run
	MeanFirst   float64 // mean tick of the first delivery; ticks when none
	FailedSeeds int     // seeds that delivered nothing
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks uint64, seeds []uint64, baseCfg *config.Config, logger *slog.Logger) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		ticks:      ticks,
		seeds:      seeds,
		baseConfig: baseCfg,
		logger:     logger,
	}
}

// Last returns the score of the most recent evaluation.
func (fe *FitnessEvaluator) Last() Score {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// runResult holds the outcome of a single seed.
type runResult struct {
	food      int
	firstTick uint64 // 0 = no delivery
}

// Evaluate computes fitness for a raw parameter vector. Fitness is the
// negated mean delivery count plus a small bonus for delivering early, so
// minimizing it maximizes throughput.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		fe.logger.Debug("rejected parameters", "error", err)
		return 0
	}

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg.Clone(), s)
		}(i, seed)
	}
	wg.Wait()

	score := fe.score(results)

	fe.mu.Lock()
	fe.last = score
	fe.mu.Unlock()

	return score.Fitness
}

func (fe *FitnessEvaluator) score(results []runResult) Score {
	var s Score
	var earliness float64
	for _, r := range results {
		s.MeanFood += float64(r.food)
		first := float64(fe.ticks)
		if r.firstTick > 0 {
			first = float64(r.firstTick)
			earliness += 1 - first/float64(fe.ticks)
		} else {
			s.FailedSeeds++
		}
		s.MeanFirst += first
	}
	n := float64(len(results))
	s.MeanFood /= n
	s.MeanFirst /= n
	s.Fitness = -(s.MeanFood + earliness/n)
	return s
}

// runSimulation runs one seed headless and returns its outcome.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed uint64) runResult {
	var res runResult
	g, err := game.NewGame(game.Options{
		Config: cfg,
		Seed:   seed,
		Logger: fe.logger,
		StatsCallback: func(ws telemetry.WindowStats) {
			if res.firstTick == 0 && ws.FoodInBase > 0 {
				res.firstTick = ws.WindowEndTick
			}
		},
	})
	if err != nil {
		fe.logger.Error("creating game", "error", err)
		return res
	}
	defer g.Close()

	g.Bootstrap()
	g.Run(fe.ticks)
	res.food = g.FoodInBase()
	if res.firstTick == 0 && res.food > 0 {
		res.firstTick = fe.ticks
	}
	return res
}
