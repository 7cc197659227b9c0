package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/game"
	"github.com/pthm-cable/trails/termview"
	"github.com/pthm-cable/trails/viewer"
)

// defaultPrintTicks is the run length of -print when -max-ticks is not set.
const defaultPrintTicks = 300

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	tui := flag.Bool("tui", false, "Render in the terminal instead of a window")
	printMode := flag.Bool("print", false, "Print every entity after each tick (default 300 ticks)")
	walls := flag.Bool("walls", false, "Add the double-bridge wall island")
	flag.BoolVar(walls, "w", false, "Shorthand for -walls")
	ants := flag.Int("ants", -1, "Number of ants (-1 = use config)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	checkInvariants := flag.Bool("check-invariants", false, "Validate the world after every tick and stop on the first violation")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var logOut io.Writer = os.Stdout
	switch {
	case *tui:
		logOut = io.Discard
	case *printMode:
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *walls {
		cfg.Colony.Walls = true
	}
	if *ants >= 0 {
		cfg.Colony.Ants = *ants
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	cfg.Refresh()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	g, err := game.NewGame(game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		Logger:         logger,
		OutputDir:      *outputDir,
		LogStats:       *logStats,
		StepsPerUpdate: *stepsPerUpdate,

		CheckInvariants: *checkInvariants,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("closing output", "error", err)
		}
	}()
	g.Bootstrap()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"arena", fmt.Sprintf("%dx%d", cfg.Arena.Width, cfg.Arena.Height),
		"ants", cfg.Colony.Ants,
		"walls", cfg.Colony.Walls,
		"max_ticks", *maxTicks,
	)

	switch {
	case *printMode:
		ticks := *maxTicks
		if ticks == 0 {
			ticks = defaultPrintTicks
		}
		if err := runPrint(g, ticks); err != nil {
			slog.Error("printing world", "error", err)
			os.Exit(1)
		}
	case *headless:
		runHeadless(g, *maxTicks)
	case *tui:
		if err := runTUI(g, *maxTicks); err != nil {
			fmt.Fprintln(os.Stderr, "terminal:", err)
			os.Exit(1)
		}
	default:
		rl.SetConfigFlags(rl.FlagWindowResizable)
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Trails")
		defer rl.CloseWindow()
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		viewer.New(g).Run(*maxTicks)
	}

	slog.Info("simulation finished", "tick", g.TickCount(), "food_in_base", g.FoodInBase())
}

func runPrint(g *game.Game, ticks uint64) error {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	return termview.WriteRun(w, g, ticks)
}

func runHeadless(g *game.Game, maxTicks uint64) {
	for {
		g.Update()

		if err := g.Err(); err != nil {
			slog.Error("stopping on invariant violation", "error", err)
			return
		}
		if maxTicks > 0 && g.TickCount() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.TickCount())
			return
		}
	}
}

func runTUI(g *game.Game, maxTicks uint64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	cfg := g.Config()
	r := termview.NewRenderer(screen, cfg.Arena.Width, cfg.Arena.Height, cfg.Pheromone.MaxStrength)
	termview.Run(screen, r, g, cfg.Screen.TargetFPS, maxTicks)
	return nil
}
