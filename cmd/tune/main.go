// Command tune searches pheromone and movement parameters that maximise
// food delivered to the base, using CMA-ES over headless runs.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/trails/config"
)

// LogRow is one evaluation in tune_log.csv.
type LogRow struct {
	Eval              int     `csv:"eval"`
	Fitness           float64 `csv:"fitness"`
	MeanFood          float64 `csv:"mean_food_in_base"`
	MeanFirstDelivery float64 `csv:"mean_first_delivery"`
	FailedSeeds       int     `csv:"failed_seeds"`

	DecayRate         uint32  `csv:"decay_rate"`
	DiffusionFraction float64 `csv:"diffusion_fraction"`
	MinSpreadStrength uint32  `csv:"min_spread_strength"`
	ReleaseTicks      uint32  `csv:"release_ticks"`
	SourceStrength    uint32  `csv:"source_strength"`
	TrailStrength     uint32  `csv:"trail_strength"`
	TurnSigma         float64 `csv:"turn_sigma"`
	MaxTurnDegrees    float64 `csv:"max_turn_degrees"`
	MemoryCapacity    int     `csv:"memory_capacity"`
}

func newLogRow(eval int, s Score, cfg *config.Config) LogRow {
	return LogRow{
		Eval:              eval,
		Fitness:           s.Fitness,
		MeanFood:          s.MeanFood,
		MeanFirstDelivery: s.MeanFirst,
		FailedSeeds:       s.FailedSeeds,
		DecayRate:         cfg.Pheromone.DecayRate,
		DiffusionFraction: cfg.Pheromone.DiffusionFraction,
		MinSpreadStrength: cfg.Pheromone.MinSpreadStrength,
		ReleaseTicks:      cfg.Release.Ticks,
		SourceStrength:    cfg.Release.SourceStrength,
		TrailStrength:     cfg.Release.TrailStrength,
		TurnSigma:         cfg.Movement.TurnSigma,
		MaxTurnDegrees:    cfg.Movement.MaxTurnDegrees,
		MemoryCapacity:    cfg.Movement.MemoryCapacity,
	}
}

// formatDuration formats a duration as HhMMmSSs or MmSSs for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Uint64("ticks", 300, "Ticks per simulation run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	walls := flag.Bool("walls", false, "Tune on the walled scenario")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if *outputDir == "" {
		fmt.Fprintln(os.Stderr, "--output is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	if err := config.Init(*configPath); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	baseCfg := config.Cfg().Clone()
	baseCfg.Colony.Walls = *walls
	baseCfg.Refresh()

	params := NewParamVector()

	evalSeeds := make([]uint64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *ticks, evalSeeds, baseCfg, logger)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3*math.Log(float64(dim)))
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		logger.Error("failed to create log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			cfg := baseCfg.Clone()
			params.ApplyToConfig(cfg, clamped)
			score := evaluator.Last()
			rows := []LogRow{newLogRow(evalCount, score, cfg)}
			var werr error
			if evalCount == 1 {
				werr = gocsv.Marshal(rows, logFile)
			} else {
				werr = gocsv.MarshalWithoutHeaders(rows, logFile)
			}
			if werr != nil {
				logger.Error("failed to write log row", "error", werr)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: food=%.2f first=%.0f failed=%d (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, score.MeanFood, score.MeanFirst, score.FailedSeeds, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d, walls: %v\n", *seeds, *ticks, *walls)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		logger.Warn("optimization ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.3f\n", bestFitness)
	if bestParams == nil {
		return
	}

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %g\n", spec.Path, bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		logger.Error("failed to write best config", "error", err)
		os.Exit(1)
	}
	fmt.Printf("\nBest config saved to: %s\n", configOutPath)
}
