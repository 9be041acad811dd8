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
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Footprints FootprintsConfig `yaml:"footprints"`
	Noise      NoiseConfig      `yaml:"noise"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the dimensions of the area creatures wander in.
// Wanderers that leave it steer back toward its centre.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// PopulationConfig controls how regenerate builds creatures.
type PopulationConfig struct {
	Count          int       `yaml:"count"`           // Total creatures, the last follows the cursor
	TailLength     int       `yaml:"tail_length"`     // Segments per creature
	HeadSizes      []float64 `yaml:"head_sizes"`      // Weighted choice (repeats raise the weight)
	OutsizedChance float64   `yaml:"outsized_chance"` // Probability of OutsizedSize instead
	OutsizedSize   float64   `yaml:"outsized_size"`
	MaxSizeRatio   float64   `yaml:"max_size_ratio"`  // Widest segment = head size * this
	SegmentSpacing float64   `yaml:"segment_spacing"` // Initial x spacing of segments
	TailAmplitude  float64   `yaml:"tail_amplitude"`  // Initial sine offset of segments
	TailWavelength float64   `yaml:"tail_wavelength"` // Segment index divisor inside the sine
}

// LocomotionConfig holds steering, chain and foot placement parameters.
type LocomotionConfig struct {
	FollowRate            float64 `yaml:"follow_rate"`              // Lerp fraction per tick for head and segments
	MaxFootDistMultiplier float64 `yaml:"max_foot_dist_multiplier"` // Leg length in segment sizes
	FootAngle             float64 `yaml:"foot_angle"`               // Radians either side of the segment facing
	TurnAmount            float64 `yaml:"turn_amount"`              // Max steering deflection per tick (radians)
	NoisePhaseScale       float64 `yaml:"noise_phase_scale"`
	NoiseTimeScale        float64 `yaml:"noise_time_scale"` // Ticks per unit of noise input
	NoiseLow              float64 `yaml:"noise_low"`        // Noise value mapped to -TurnAmount
	NoiseHigh             float64 `yaml:"noise_high"`       // Noise value mapped to +TurnAmount
	PushFromFeet          bool    `yaml:"push_from_feet"`
}

// FootprintsConfig holds footprint lifecycle parameters.
type FootprintsConfig struct {
	MaxAge        int `yaml:"max_age"`        // Ticks before a footprint expires
	PruneInterval int `yaml:"prune_interval"` // Ticks between expiry passes
}

// NoiseConfig selects the steering noise source.
type NoiseConfig struct {
	Kind string `yaml:"kind"` // simplex | perlin
}

// RenderConfig holds the initial render flags.
type RenderConfig struct {
	UseSquares      bool `yaml:"use_squares"`
	ContinuousShape bool `yaml:"continuous_shape"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW float64 // Effective world width
	WorldH float64 // Effective world height
}

// Default returns the embedded defaults. It panics if they do not parse,
// which can only happen if defaults.yaml itself is broken.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)
}

// Validate rejects configurations that would produce degenerate geometry.
func (c *Config) Validate() error {
	var errs []error
	if !positive(c.Derived.WorldW) || !positive(c.Derived.WorldH) {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.Derived.WorldW, c.Derived.WorldH))
	}
	p := c.Population
	if p.Count < 1 {
		errs = append(errs, fmt.Errorf("population.count must be at least 1, got %d", p.Count))
	}
	if p.TailLength < 1 {
		errs = append(errs, fmt.Errorf("population.tail_length must be at least 1, got %d", p.TailLength))
	}
	if len(p.HeadSizes) == 0 {
		errs = append(errs, errors.New("population.head_sizes must not be empty"))
	}
	for _, s := range p.HeadSizes {
		if !positive(s) {
			errs = append(errs, fmt.Errorf("population.head_sizes must be positive, got %v", s))
			break
		}
	}
	if !(p.OutsizedChance >= 0 && p.OutsizedChance <= 1) {
		errs = append(errs, fmt.Errorf("population.outsized_chance must be in [0, 1], got %v", p.OutsizedChance))
	}
	if p.OutsizedChance > 0 && !positive(p.OutsizedSize) {
		errs = append(errs, fmt.Errorf("population.outsized_size must be positive, got %v", p.OutsizedSize))
	}
	if !positive(p.MaxSizeRatio) {
		errs = append(errs, fmt.Errorf("population.max_size_ratio must be positive, got %v", p.MaxSizeRatio))
	}
	if !positive(p.TailWavelength) {
		errs = append(errs, fmt.Errorf("population.tail_wavelength must be positive, got %v", p.TailWavelength))
	}
	if !finite(p.SegmentSpacing) || !finite(p.TailAmplitude) {
		errs = append(errs, fmt.Errorf("population.segment_spacing (%v) and tail_amplitude (%v) must be finite", p.SegmentSpacing, p.TailAmplitude))
	}
	l := c.Locomotion
	if !(l.FollowRate > 0 && l.FollowRate <= 1) {
		errs = append(errs, fmt.Errorf("locomotion.follow_rate must be in (0, 1], got %v", l.FollowRate))
	}
	if !positive(l.MaxFootDistMultiplier) {
		errs = append(errs, fmt.Errorf("locomotion.max_foot_dist_multiplier must be positive, got %v", l.MaxFootDistMultiplier))
	}
	if !positive(l.NoiseTimeScale) {
		errs = append(errs, fmt.Errorf("locomotion.noise_time_scale must be positive, got %v", l.NoiseTimeScale))
	}
	if !(l.NoiseHigh > l.NoiseLow) {
		errs = append(errs, fmt.Errorf("locomotion.noise_high (%v) must exceed noise_low (%v)", l.NoiseHigh, l.NoiseLow))
	}
	if !(l.TurnAmount >= 0) || math.IsInf(l.TurnAmount, 1) {
		errs = append(errs, fmt.Errorf("locomotion.turn_amount must be non-negative, got %v", l.TurnAmount))
	}
	if !finite(l.FootAngle) || !finite(l.NoisePhaseScale) {
		errs = append(errs, fmt.Errorf("locomotion.foot_angle (%v) and noise_phase_scale (%v) must be finite", l.FootAngle, l.NoisePhaseScale))
	}
	if c.Footprints.MaxAge < 1 {
		errs = append(errs, fmt.Errorf("footprints.max_age must be at least 1, got %d", c.Footprints.MaxAge))
	}
	if c.Footprints.PruneInterval < 1 {
		errs = append(errs, fmt.Errorf("footprints.prune_interval must be at least 1, got %d", c.Footprints.PruneInterval))
	}
	return errors.Join(errs...)
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
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
