// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Arena       ArenaConfig       `yaml:"arena"`
	Sim         SimConfig         `yaml:"sim"`
	Snake       SnakeConfig       `yaml:"snake"`
	Shadow      ShadowConfig      `yaml:"shadow"`
	Nibbles     NibblesConfig     `yaml:"nibbles"`
	Collision   CollisionConfig   `yaml:"collision"`
	Camera      CameraConfig      `yaml:"camera"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Highlights  HighlightsConfig  `yaml:"highlights"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Tune        TuneConfig        `yaml:"tune"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds the playfield cube dimensions.
type ArenaConfig struct {
	Half     float64 `yaml:"half"`      // Half-extent; inside means |x|,|y|,|z| <= half
	CellSize float64 `yaml:"cell_size"` // Spatial hash cell edge length
}

// SimConfig holds fixed-timestep parameters.
type SimConfig struct {
	DT float64 `yaml:"dt"` // Seconds per tick (0 = 1/60)
}

// SnakeConfig holds player snake parameters.
type SnakeConfig struct {
	Speed           float64 `yaml:"speed"`            // Head advance per tick is speed*dt*60
	YawRate         float64 `yaml:"yaw_rate"`         // Input yaw rate, radians per second
	PitchRate       float64 `yaml:"pitch_rate"`       // Input pitch rate, radians per second
	SegmentSpacing  float64 `yaml:"segment_spacing"`  // Arc-length gap between segments
	InitialSegments int     `yaml:"initial_segments"` // Body length at spawn
	TrailLength     int     `yaml:"trail_length"`     // Trail sample capacity (FIFO)
	CurveSamples    int     `yaml:"curve_samples"`    // Spline samples per trail segment (0 = 8)
	WiggleAmp       float64 `yaml:"wiggle_amp"`       // Cosmetic vertical bob amplitude
	WiggleFreq      float64 `yaml:"wiggle_freq"`      // Cosmetic vertical bob frequency
}

// ShadowConfig holds AI snake parameters.
type ShadowConfig struct {
	Speed           float64 `yaml:"speed"`
	InitialSegments int     `yaml:"initial_segments"`
	SeekGain        float64 `yaml:"seek_gain"`         // Proportional yaw gain toward a nibble
	PitchGainFactor float64 `yaml:"pitch_gain_factor"` // Pitch gain as a fraction of seek_gain
	WallAvoidGain   float64 `yaml:"wall_avoid_gain"`   // Yaw/pitch gain toward the inward normal
	WallBuffer      float64 `yaml:"wall_buffer"`       // Safe band inset from each arena face
	EatSlowRadius   float64 `yaml:"eat_slow_radius"`   // Nibble closer than this halves speed
	JitterScale     float64 `yaml:"jitter_scale"`      // Yaw jitter amplitude while seeking
	WanderAmp       float64 `yaml:"wander_amp"`        // Idle yaw oscillation amplitude
	WanderRate      float64 `yaml:"wander_rate"`       // Idle yaw oscillation frequency
	SpawnDelayMs    float64 `yaml:"spawn_delay_ms"`    // Minimum sim-time between spawns
	InvulnMs        float64 `yaml:"invuln_ms"`         // Post-spawn invulnerability window
	ReflectMs       float64 `yaml:"reflect_ms"`        // Post-spawn reflected-course phase
	MaxShadows      int     `yaml:"max_shadows"`       // Concurrent shadow cap
	UpdateStride    int     `yaml:"update_stride"`     // Each shadow moves every Nth tick
	PickupStride    int     `yaml:"pickup_stride"`     // Shadows check pickups every Nth tick
}

// NibblesConfig holds nibble field parameters.
type NibblesConfig struct {
	InitialCount       int     `yaml:"initial_count"`
	SpawnIntervalMs    float64 `yaml:"spawn_interval_ms"`
	SafeWallDistance   float64 `yaml:"safe_wall_distance"`   // Sampling keeps this far from faces
	SafeObjectDistance float64 `yaml:"safe_object_distance"` // Sampling keeps this far from entities
	MaxAttempts        int     `yaml:"max_attempts"`         // Rejection-sampling bound (0 = 100)
	PickupRadiusSq     float64 `yaml:"pickup_radius_sq"`     // Squared pickup distance
	DropJitter         float64 `yaml:"drop_jitter"`          // Uniform offset for shadow drops
}

// CollisionConfig holds collision classification parameters.
type CollisionConfig struct {
	Distance          float64 `yaml:"distance"`            // Hit when strictly closer than this
	SelfSkip          int     `yaml:"self_skip"`           // Own segments below this index are exempt
	QueryRadiusFactor float64 `yaml:"query_radius_factor"` // Broad-phase radius = distance * this
}

// CameraConfig holds chase camera parameters.
type CameraConfig struct {
	Distance      float64 `yaml:"distance"`       // Follow distance behind the head
	Height        float64 `yaml:"height"`         // Height above the head
	Stiffness     float64 `yaml:"stiffness"`      // Smoothing rate per second
	LookAhead     float64 `yaml:"look_ahead"`     // Target point this far ahead of the head
	FOV           float64 `yaml:"fov"`            // Vertical field of view, degrees
	ShakeStrength float64 `yaml:"shake_strength"` // Shake magnitude on dissolution
	ShakeDecay    float64 `yaml:"shake_decay"`    // Shake falloff per second
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow          float64 `yaml:"stats_window"` // Window length in sim seconds
	PerfCollectorWindow  int     `yaml:"perf_collector_window"`
	HighlightHistorySize int     `yaml:"highlight_history_size"`
	SnapshotOnHighlight  bool    `yaml:"snapshot_on_highlight"`
}

// HighlightsConfig holds highlight detection thresholds.
type HighlightsConfig struct {
	PickupFrenzy  PickupFrenzyConfig  `yaml:"pickup_frenzy"`
	ShadowWipeout ShadowWipeoutConfig `yaml:"shadow_wipeout"`
	CrowdingPeak  CrowdingPeakConfig  `yaml:"crowding_peak"`
	QuietSpell    QuietSpellConfig    `yaml:"quiet_spell"`
}

// PickupFrenzyConfig holds pickup frenzy detection parameters.
type PickupFrenzyConfig struct {
	Multiplier float64 `yaml:"multiplier"` // Window pickups vs rolling mean
	MinPickups int     `yaml:"min_pickups"`
}

// ShadowWipeoutConfig holds shadow wipeout detection parameters.
type ShadowWipeoutConfig struct {
	MinDissolved int `yaml:"min_dissolved"`
}

// CrowdingPeakConfig holds crowding peak detection parameters.
type CrowdingPeakConfig struct {
	MinShadows int `yaml:"min_shadows"`
}

// QuietSpellConfig holds quiet spell detection parameters.
type QuietSpellConfig struct {
	StillWindows int `yaml:"still_windows"` // Consecutive windows with no pickups or hits
}

// LeaderboardConfig holds leaderboard settings.
type LeaderboardConfig struct {
	Enabled bool                     `yaml:"enabled"`
	Size    int                      `yaml:"size"`
	Fitness LeaderboardFitnessConfig `yaml:"fitness"`
	Entry   LeaderboardEntryConfig   `yaml:"entry"`
}

// LeaderboardFitnessConfig holds score calculation weights.
type LeaderboardFitnessConfig struct {
	NibblesWeight  float64 `yaml:"nibbles_weight"`
	SurvivalWeight float64 `yaml:"survival_weight"`
	LengthWeight   float64 `yaml:"length_weight"`
}

// LeaderboardEntryConfig holds entry criteria thresholds.
type LeaderboardEntryConfig struct {
	MinLifeSec float64 `yaml:"min_life_sec"`
	MinNibbles int     `yaml:"min_nibbles"`
}

// TuneConfig holds target difficulty bands for the tuner.
type TuneConfig struct {
	TargetPickupsPerMin float64 `yaml:"target_pickups_per_min"`
	TargetMeanShadows   float64 `yaml:"target_mean_shadows"`
	TargetLifeSec       float64 `yaml:"target_life_sec"` // Autopilot player survival target
	WeightPickups       float64 `yaml:"weight_pickups"`
	WeightShadows       float64 `yaml:"weight_shadows"`
	WeightLife          float64 `yaml:"weight_life"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Sim.DT as float32
	MsPerTick float64 // Sim.DT * 1000
	Half32    float32 // Arena.Half as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config and fills
// zero values that have no sensible zero meaning.
func (c *Config) computeDerived() {
	if c.Sim.DT == 0 {
		c.Sim.DT = 1.0 / 60.0
	}
	if c.Screen.TargetFPS == 0 {
		c.Screen.TargetFPS = 60
	}
	if c.Snake.CurveSamples == 0 {
		c.Snake.CurveSamples = 8
	}
	if c.Nibbles.MaxAttempts == 0 {
		c.Nibbles.MaxAttempts = 100
	}
	if c.Shadow.UpdateStride == 0 {
		c.Shadow.UpdateStride = 2
	}
	if c.Shadow.PickupStride == 0 {
		c.Shadow.PickupStride = 3
	}

	c.Derived.DT32 = float32(c.Sim.DT)
	c.Derived.MsPerTick = c.Sim.DT * 1000
	c.Derived.Half32 = float32(c.Arena.Half)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// Dump returns the effective configuration as YAML.
func (c *Config) Dump() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.Dump()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
