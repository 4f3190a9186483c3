package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"arena.half", cfg.Arena.Half, 50},
		{"arena.cell_size", cfg.Arena.CellSize, 10},
		{"snake.speed", cfg.Snake.Speed, 0.35},
		{"snake.segment_spacing", cfg.Snake.SegmentSpacing, 1.8},
		{"shadow.speed", cfg.Shadow.Speed, 0.30},
		{"shadow.seek_gain", cfg.Shadow.SeekGain, 0.08},
		{"shadow.wall_avoid_gain", cfg.Shadow.WallAvoidGain, 0.12},
		{"shadow.spawn_delay_ms", cfg.Shadow.SpawnDelayMs, 3000},
		{"shadow.invuln_ms", cfg.Shadow.InvulnMs, 3000},
		{"nibbles.pickup_radius_sq", cfg.Nibbles.PickupRadiusSq, 2.25},
		{"nibbles.safe_wall_distance", cfg.Nibbles.SafeWallDistance, 2},
		{"collision.distance", cfg.Collision.Distance, 1.8},
		{"collision.self_skip", float64(cfg.Collision.SelfSkip), 10},
		{"snake.trail_length", float64(cfg.Snake.TrailLength), 300},
		{"shadow.max_shadows", float64(cfg.Shadow.MaxShadows), 6},
		{"nibbles.initial_count", float64(cfg.Nibbles.InitialCount), 12},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if math.Abs(cfg.Sim.DT-1.0/60.0) > 1e-6 {
		t.Errorf("sim.dt = %v, want ~1/60", cfg.Sim.DT)
	}
	if math.Abs(cfg.Derived.MsPerTick-cfg.Sim.DT*1000) > 1e-12 {
		t.Errorf("Derived.MsPerTick = %v, want %v", cfg.Derived.MsPerTick, cfg.Sim.DT*1000)
	}
	if cfg.Derived.Half32 != 50 {
		t.Errorf("Derived.Half32 = %v, want 50", cfg.Derived.Half32)
	}
	if !cfg.Leaderboard.Enabled {
		t.Error("leaderboard.enabled = false, want true")
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	body := "arena:\n  half: 30\nshadow:\n  max_shadows: 2\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Arena.Half != 30 {
		t.Errorf("arena.half = %v, want 30 (overridden)", cfg.Arena.Half)
	}
	if cfg.Shadow.MaxShadows != 2 {
		t.Errorf("shadow.max_shadows = %v, want 2 (overridden)", cfg.Shadow.MaxShadows)
	}
	// Fields absent from the user file keep embedded defaults.
	if cfg.Arena.CellSize != 10 {
		t.Errorf("arena.cell_size = %v, want 10 (default)", cfg.Arena.CellSize)
	}
	if cfg.Shadow.Speed != 0.30 {
		t.Errorf("shadow.speed = %v, want 0.30 (default)", cfg.Shadow.Speed)
	}
	if cfg.Derived.Half32 != 30 {
		t.Errorf("Derived.Half32 = %v, want 30 (recomputed)", cfg.Derived.Half32)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string // written to a temp file unless missing
		miss bool
	}{
		{name: "missing file", miss: true},
		{name: "malformed yaml", body: "arena: [not a map\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if !tc.miss {
				if err := os.WriteFile(path, []byte(tc.body), 0644); err != nil {
					t.Fatalf("writing temp config: %v", err)
				}
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() error = nil, want non-nil")
			}
		})
	}
}

func TestComputeDerivedFillsZeros(t *testing.T) {
	cfg := &Config{}
	cfg.computeDerived()

	if math.Abs(cfg.Sim.DT-1.0/60.0) > 1e-12 {
		t.Errorf("zero dt filled to %v, want 1/60", cfg.Sim.DT)
	}
	if cfg.Snake.CurveSamples != 8 {
		t.Errorf("zero curve_samples filled to %d, want 8", cfg.Snake.CurveSamples)
	}
	if cfg.Nibbles.MaxAttempts != 100 {
		t.Errorf("zero max_attempts filled to %d, want 100", cfg.Nibbles.MaxAttempts)
	}
	if cfg.Shadow.UpdateStride != 2 || cfg.Shadow.PickupStride != 3 {
		t.Errorf("strides filled to %d/%d, want 2/3",
			cfg.Shadow.UpdateStride, cfg.Shadow.PickupStride)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	cfg.Snake.Speed = 0.5
	cfg.Shadow.MaxShadows = 3

	path := filepath.Join(t.TempDir(), "dump.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load(dump) error: %v", err)
	}
	if back.Snake.Speed != 0.5 {
		t.Errorf("snake.speed after round trip = %v, want 0.5", back.Snake.Speed)
	}
	if back.Shadow.MaxShadows != 3 {
		t.Errorf("shadow.max_shadows after round trip = %v, want 3", back.Shadow.MaxShadows)
	}
	if back.Collision.Distance != cfg.Collision.Distance {
		t.Errorf("collision.distance after round trip = %v, want %v",
			back.Collision.Distance, cfg.Collision.Distance)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	if global != nil {
		t.Skip("global config already initialized by another test")
	}
	defer func() {
		if recover() == nil {
			t.Error("Cfg() before Init() did not panic")
		}
	}()
	Cfg()
}
