// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Colony    ColonyConfig    `yaml:"colony"`
	Movement  MovementConfig  `yaml:"movement"`
	Pheromone PheromoneConfig `yaml:"pheromone"`
	Release   ReleaseConfig   `yaml:"release"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical mode.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	CellPixels int `yaml:"cell_pixels"` // 0 = fit arena to window
}

// ArenaConfig holds the dimensions of the rectangular arena in cells.
type ArenaConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ColonyConfig holds bootstrap parameters for the default scenario.
type ColonyConfig struct {
	Ants     int  `yaml:"ants"`
	Builders int  `yaml:"builders"` // stationary ants, excluded from movement
	Walls    bool `yaml:"walls"`    // add the double-bridge wall island
}

// MovementConfig holds the ant decision procedure parameters.
type MovementConfig struct {
	TurnSigma      float64 `yaml:"turn_sigma"`       // std-dev of the random turn, in units of pi
	MaxTurnDegrees float64 `yaml:"max_turn_degrees"` // widest turn allowed when following a gradient
	EscapeAfter    int     `yaml:"escape_after"`     // rejected samples before flipping the heading
	MaxAttempts    int     `yaml:"max_attempts"`     // rejected samples before short memory is ignored
	MemoryCapacity int     `yaml:"memory_capacity"`  // cells remembered per ant
}

// PheromoneConfig holds evaporation and diffusion parameters.
type PheromoneConfig struct {
	DecayRate         uint32  `yaml:"decay_rate"`          // strength lost per tick
	MaxStrength       uint32  `yaml:"max_strength"`        // saturation ceiling for merges
	DiffusionFraction float64 `yaml:"diffusion_fraction"`  // share of strength spread per tick, split over 4 neighbours
	MinSpreadStrength uint32  `yaml:"min_spread_strength"` // pheromones weaker than this do not spread
}

// ReleaseConfig holds trail-laying parameters for ants that just picked up or delivered food.
type ReleaseConfig struct {
	Ticks          uint32 `yaml:"ticks"`           // ticks an ant keeps releasing after a transition
	SourceStrength uint32 `yaml:"source_strength"` // deposit on the matching Sugar/Base cell
	TrailStrength  uint32 `yaml:"trail_strength"`  // deposit elsewhere, scaled by ticks left
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // ticks averaged for perf stats
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ArenaW       float64 // Arena.Width as float64
	ArenaH       float64 // Arena.Height as float64
	MaxTurnRad   float64 // Movement.MaxTurnDegrees in radians
	CellPixels   int32   // effective cell size in the graphical renderer
	ArenaCenterY float64 // y coordinate of the base/sugar row
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse merges the given YAML document over the embedded defaults.
// A nil or empty overlay yields the defaults.
func Parse(overlay []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in the overlay
	if len(overlay) > 0 {
		if err := yaml.Unmarshal(overlay, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports parameter combinations the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Arena.Width < 1 || c.Arena.Height < 1 {
		errs = append(errs, fmt.Errorf("arena must be at least 1x1, got %dx%d", c.Arena.Width, c.Arena.Height))
	}
	if c.Colony.Ants < 0 || c.Colony.Builders < 0 {
		errs = append(errs, errors.New("colony counts must not be negative"))
	}
	if c.Movement.TurnSigma <= 0 {
		errs = append(errs, errors.New("movement.turn_sigma must be positive"))
	}
	if c.Movement.MaxTurnDegrees <= 0 || c.Movement.MaxTurnDegrees > 180 {
		errs = append(errs, fmt.Errorf("movement.max_turn_degrees must be in (0, 180], got %v", c.Movement.MaxTurnDegrees))
	}
	if c.Movement.EscapeAfter < 1 {
		errs = append(errs, errors.New("movement.escape_after must be at least 1"))
	}
	if c.Movement.MaxAttempts < c.Movement.EscapeAfter {
		errs = append(errs, errors.New("movement.max_attempts must not be below escape_after"))
	}
	if c.Movement.MemoryCapacity < 0 {
		errs = append(errs, errors.New("movement.memory_capacity must not be negative"))
	}
	if c.Pheromone.DecayRate == 0 {
		errs = append(errs, errors.New("pheromone.decay_rate must be positive"))
	}
	if c.Pheromone.MaxStrength == 0 {
		errs = append(errs, errors.New("pheromone.max_strength must be positive"))
	}
	if c.Pheromone.DiffusionFraction < 0 || c.Pheromone.DiffusionFraction > 1 {
		errs = append(errs, fmt.Errorf("pheromone.diffusion_fraction must be in [0, 1], got %v", c.Pheromone.DiffusionFraction))
	}
	if c.Release.Ticks == 0 {
		errs = append(errs, errors.New("release.ticks must be positive"))
	}
	if c.Release.SourceStrength == 0 {
		errs = append(errs, errors.New("release.source_strength must be positive"))
	}
	if c.Release.SourceStrength < c.Release.TrailStrength {
		errs = append(errs, fmt.Errorf("release.source_strength %d must not be below trail_strength %d", c.Release.SourceStrength, c.Release.TrailStrength))
	}
	if c.Telemetry.StatsWindow < 1 {
		errs = append(errs, errors.New("telemetry.stats_window must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ArenaW = float64(c.Arena.Width)
	c.Derived.ArenaH = float64(c.Arena.Height)
	c.Derived.MaxTurnRad = c.Movement.MaxTurnDegrees * math.Pi / 180
	c.Derived.ArenaCenterY = float64(c.Arena.Height) / 2

	cell := c.Screen.CellPixels
	if cell <= 0 {
		// Fit the arena inside the window, leaving room for the HUD strip
		cw := c.Screen.Width / c.Arena.Width
		ch := (c.Screen.Height - 80) / c.Arena.Height
		cell = min(cw, ch)
		if cell < 1 {
			cell = 1
		}
	}
	c.Derived.CellPixels = int32(cell)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// SetArena changes the arena size and refreshes derived values.
func (c *Config) SetArena(width, height int) {
	c.Arena.Width = width
	c.Arena.Height = height
	c.computeDerived()
}

// Refresh recomputes derived values after fields were edited in place.
func (c *Config) Refresh() {
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
