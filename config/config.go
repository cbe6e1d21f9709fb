// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Options   OptionsConfig   `yaml:"options"`
	Setup     SetupConfig     `yaml:"setup"`
	Runner    RunnerConfig    `yaml:"runner"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	CellSize  int `yaml:"cell_size"` // Pixels per grid cell at zoom 1
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// OptionsConfig holds the runtime-tunable engine options.
type OptionsConfig struct {
	Smell        float64 `yaml:"smell"`         // Distance noise spread, in (0, 1]
	StartingFood int     `yaml:"starting_food"` // Food stored in a new hive
	SignalRadius float64 `yaml:"signal_radius"` // Broadcast reach in cells
	DirtPenalty  float64 `yaml:"dirt_penalty"`  // Distance multiplier from a dirt cell, >= 1
	Speed        int     `yaml:"speed"`         // Max rounds per presentation frame
	Propagation  int     `yaml:"propagation"`   // Initial signal hop budget
	Decay        int     `yaml:"decay"`         // Pheromone max age in rounds
	Rage         int     `yaml:"rage"`          // Battle patience in rounds
}

// TeamConfig describes one faction created on reset.
type TeamConfig struct {
	Name   string `yaml:"name"`
	Color  string `yaml:"color"` // Hex "#rrggbb"
	Health int    `yaml:"health"`
}

// SetupConfig controls what reset places on the grid.
type SetupConfig struct {
	Teams         []TeamConfig `yaml:"teams"`
	InitialAnts   int          `yaml:"initial_ants"`
	FoodPiles     int          `yaml:"food_piles"`
	FoodQuantity  int          `yaml:"food_quantity"`
	DirtScale     float64      `yaml:"dirt_scale"`     // Noise frequency per cell
	DirtThreshold float64      `yaml:"dirt_threshold"` // Normalized noise above which a cell is dirt (>= 1 disables)
}

// RunnerConfig holds concurrency runner settings.
type RunnerConfig struct {
	FrameBudgetMS   int `yaml:"frame_budget_ms"`  // Wall-clock budget of rounds per published frame
	ExportBuffer    int `yaml:"export_buffer"`    // Snapshot channel capacity
	PlacementBuffer int `yaml:"placement_buffer"` // Placement channel capacity
}

// TelemetryConfig holds telemetry and stats settings.
type TelemetryConfig struct {
	StatsWindow     int     `yaml:"stats_window"`     // Rounds per stats window
	PerfWindow      int     `yaml:"perf_window"`      // Rounds averaged by the perf collector
	HistorySize     int     `yaml:"history_size"`     // Windows kept by the milestone detector
	SurgeMultiplier float64 `yaml:"surge_multiplier"` // Deliveries above this times the rolling mean mark a surge
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TeamColors []color.RGBA // Parsed Setup.Teams colours
	WorldW32   float32      // Grid width in pixels at zoom 1
	WorldH32   float32      // Grid height in pixels at zoom 1
	ScreenW32  float32
	ScreenH32  float32
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

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.TeamColors = make([]color.RGBA, len(c.Setup.Teams))
	for i, t := range c.Setup.Teams {
		col, err := ParseColor(t.Color)
		if err != nil {
			return fmt.Errorf("team %q: %w", t.Name, err)
		}
		c.Derived.TeamColors[i] = col
	}
	c.Derived.WorldW32 = float32(c.World.Cols * c.Screen.CellSize)
	c.Derived.WorldH32 = float32(c.World.Rows * c.Screen.CellSize)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	return nil
}

// Validate checks ranges the engine relies on.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Rows <= 0 || c.World.Cols <= 0 {
		errs = append(errs, fmt.Errorf("world: rows and cols must be positive, got %dx%d", c.World.Rows, c.World.Cols))
	}
	o := c.Options
	if o.Smell <= 0 || o.Smell > 1 {
		errs = append(errs, fmt.Errorf("options.smell must be in (0, 1], got %g", o.Smell))
	}
	if o.DirtPenalty < 1 {
		errs = append(errs, fmt.Errorf("options.dirt_penalty must be >= 1, got %g", o.DirtPenalty))
	}
	if o.StartingFood < 0 || o.Propagation < 0 || o.Decay < 0 || o.Rage < 0 || o.SignalRadius < 0 {
		errs = append(errs, errors.New("options: counts and radius must not be negative"))
	}
	if o.Speed < 1 {
		errs = append(errs, fmt.Errorf("options.speed must be >= 1, got %d", o.Speed))
	}
	if len(c.Setup.Teams) == 0 {
		errs = append(errs, errors.New("setup: at least one team is required"))
	}
	for _, t := range c.Setup.Teams {
		if t.Health < 1 {
			errs = append(errs, fmt.Errorf("setup: team %q health must be >= 1", t.Name))
		}
	}
	if c.Setup.FoodQuantity < 1 {
		errs = append(errs, errors.New("setup.food_quantity must be >= 1"))
	}
	if c.Telemetry.StatsWindow < 1 {
		errs = append(errs, errors.New("telemetry.stats_window must be >= 1"))
	}
	return errors.Join(errs...)
}

// ParseColor parses "#rrggbb" into an opaque colour.
func ParseColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid colour %q, want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
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
