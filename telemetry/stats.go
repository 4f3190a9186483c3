package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Gauges sampled at window end
	PlayerLength int `csv:"player_len"`
	ShadowCount  int `csv:"shadows"`
	NibbleCount  int `csv:"nibbles"`

	// Events during window
	Pickups       int `csv:"pickups"`
	PlayerPickups int `csv:"player_pickups"`
	ShadowPickups int `csv:"shadow_pickups"`
	Drops         int `csv:"drops"`
	Spawns        int `csv:"shadow_spawns"`
	Dissolves     int `csv:"dissolves"`
	PlayerDeaths  int `csv:"player_deaths"`
	Collisions    int `csv:"collisions"`
	Crossings     int `csv:"boundary_crossings"`
	WallClamps    int `csv:"wall_clamps"`

	// Rates
	PickupsPerSec float64 `csv:"pickups_per_sec"`

	// Movement
	Distance float64 `csv:"distance"` // summed head travel, all snakes

	// Shadow length distribution (sampled at window end)
	ShadowLenMean float64 `csv:"shadow_len_mean"`
	ShadowLenStd  float64 `csv:"shadow_len_std"`
	ShadowLenP10  float64 `csv:"shadow_len_p10"`
	ShadowLenP50  float64 `csv:"shadow_len_p50"`
	ShadowLenP90  float64 `csv:"shadow_len_p90"`
}

// ComputeLengthStats calculates mean, standard deviation, and percentiles
// from a set of snake body lengths. Returns all zeros for an empty set.
func ComputeLengthStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("player_len", s.PlayerLength),
		slog.Int("shadows", s.ShadowCount),
		slog.Int("nibbles", s.NibbleCount),
		slog.Int("pickups", s.Pickups),
		slog.Int("player_pickups", s.PlayerPickups),
		slog.Int("shadow_pickups", s.ShadowPickups),
		slog.Int("drops", s.Drops),
		slog.Int("shadow_spawns", s.Spawns),
		slog.Int("dissolves", s.Dissolves),
		slog.Int("player_deaths", s.PlayerDeaths),
		slog.Int("collisions", s.Collisions),
		slog.Int("boundary_crossings", s.Crossings),
		slog.Int("wall_clamps", s.WallClamps),
		slog.Float64("pickups_per_sec", s.PickupsPerSec),
		slog.Float64("distance", s.Distance),
		slog.Float64("shadow_len_mean", s.ShadowLenMean),
		slog.Float64("shadow_len_std", s.ShadowLenStd),
		slog.Float64("shadow_len_p10", s.ShadowLenP10),
		slog.Float64("shadow_len_p50", s.ShadowLenP50),
		slog.Float64("shadow_len_p90", s.ShadowLenP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"player_len", s.PlayerLength,
		"shadows", s.ShadowCount,
		"nibbles", s.NibbleCount,
		"pickups", s.Pickups,
		"player_pickups", s.PlayerPickups,
		"shadow_pickups", s.ShadowPickups,
		"drops", s.Drops,
		"shadow_spawns", s.Spawns,
		"dissolves", s.Dissolves,
		"player_deaths", s.PlayerDeaths,
		"collisions", s.Collisions,
		"boundary_crossings", s.Crossings,
		"wall_clamps", s.WallClamps,
		"pickups_per_sec", s.PickupsPerSec,
		"distance", s.Distance,
		"shadow_len_mean", s.ShadowLenMean,
		"shadow_len_p50", s.ShadowLenP50,
	)
}
