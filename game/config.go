package game

import (
	"log/slog"

	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/telemetry"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           uint64
	Logger         *slog.Logger // nil uses slog.Default()
	OutputDir      string       // empty disables CSV output
	LogStats       bool
	StepsPerUpdate int
	StatsCallback  func(telemetry.WindowStats)

	// CheckInvariants validates the world after every tick and pauses the
	// game on the first violation. See Game.Err.
	CheckInvariants bool
}

func (o Options) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.Cfg()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
