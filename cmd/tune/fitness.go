package main

import (
	"math"
	"sync"

	"github.com/AdrianBisson/YEN/config"
	"github.com/AdrianBisson/YEN/game"
	"github.com/AdrianBisson/YEN/telemetry"
)

// FitnessEvaluator runs headless autopilot games and scores a parameter
// vector against the tune targets.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	configPath  string
	targets     config.TuneConfig
	statsWindow float64

	// Best run tracking
	mu              sync.Mutex
	bestFitness     float64
	bestLeaderboard *telemetry.Leaderboard
	lastMetrics     RunMetrics
}

// RunMetrics summarizes one evaluation in the tuned quantities.
type RunMetrics struct {
	PickupsPerMin float64
	MeanShadows   float64
	LifeSec       float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, configPath string, targets config.TuneConfig) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		configPath:  configPath,
		targets:     targets,
		statsWindow: 10.0, // 10 seconds per window
		bestFitness: math.Inf(1),
	}
}

// BestLeaderboard returns the leaderboard from the best evaluation.
func (fe *FitnessEvaluator) BestLeaderboard() *telemetry.Leaderboard {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestLeaderboard
}

// LastMetrics returns the metrics from the most recent evaluation.
func (fe *FitnessEvaluator) LastMetrics() RunMetrics {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMetrics
}

// warmupWindows skips the opening stats windows, where the arena is
// still filling in and pickup rates are inflated by the initial seed.
const warmupWindows = 2

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalSec float64
	windowStats []telemetry.WindowStats
	leaderboard *telemetry.Leaderboard
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness     float64
	metrics     RunMetrics
	leaderboard *telemetry.Leaderboard
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the weighted squared relative error against the targets;
// zero means every target was hit exactly.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			metrics := fe.computeMetrics(result)
			results[idx] = seedResult{
				fitness:     fe.computeFitness(metrics),
				metrics:     metrics,
				leaderboard: result.leaderboard,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness float64
	var sum RunMetrics
	bestSeedFitness := math.Inf(1)
	var bestSeedBoard *telemetry.Leaderboard

	for _, r := range results {
		totalFitness += r.fitness
		sum.PickupsPerMin += r.metrics.PickupsPerMin
		sum.MeanShadows += r.metrics.MeanShadows
		sum.LifeSec += r.metrics.LifeSec
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedBoard = r.leaderboard
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	// Update best tracking
	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestLeaderboard = bestSeedBoard
	}
	fe.lastMetrics = RunMetrics{
		PickupsPerMin: sum.PickupsPerMin / n,
		MeanShadows:   sum.MeanShadows / n,
		LifeSec:       sum.LifeSec / n,
	}
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation plays one headless autopilot run to game over or the
// tick cap, collecting window stats via callback.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.newConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})

	for g.Tick() < fe.maxTicks && !g.GameOver() {
		g.UpdateHeadless()
	}

	result.survivalSec = float64(g.Tick()) * cfg.Sim.DT
	result.leaderboard = g.Leaderboard()
	g.Unload()
	return result
}

// newConfig loads a fresh config for one run. Every run gets its own
// copy because ApplyToConfig mutates it and seeds run concurrently.
func (fe *FitnessEvaluator) newConfig() *config.Config {
	cfg, _ := config.Load(fe.configPath)
	return cfg
}

// computeMetrics reduces a run to the tuned quantities.
func (fe *FitnessEvaluator) computeMetrics(r *runResult) RunMetrics {
	m := RunMetrics{LifeSec: r.survivalSec}

	if len(r.windowStats) <= warmupWindows {
		return m
	}
	valid := r.windowStats[warmupWindows:]

	var ppsSum, shadowSum float64
	for _, w := range valid {
		ppsSum += w.PickupsPerSec
		shadowSum += float64(w.ShadowCount)
	}
	n := float64(len(valid))
	m.PickupsPerMin = ppsSum / n * 60
	m.MeanShadows = shadowSum / n
	return m
}

// computeFitness scores metrics against the targets. Each term is the
// squared relative error times its weight.
func (fe *FitnessEvaluator) computeFitness(m RunMetrics) float64 {
	t := fe.targets
	fitness := 0.0

	if t.TargetPickupsPerMin > 0 {
		e := m.PickupsPerMin/t.TargetPickupsPerMin - 1
		fitness += t.WeightPickups * e * e
	}
	if t.TargetMeanShadows > 0 {
		e := m.MeanShadows/t.TargetMeanShadows - 1
		fitness += t.WeightShadows * e * e
	}
	if t.TargetLifeSec > 0 {
		e := m.LifeSec/t.TargetLifeSec - 1
		fitness += t.WeightLife * e * e
	}
	return fitness
}
