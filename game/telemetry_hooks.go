package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/telemetry"
)

// flushTelemetry closes the current stats window when due and fans the
// result out to the configured sinks: callback, slog, CSV files, and
// the highlight detector.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	g.shadowLenBuf = g.shadowLenBuf[:0]
	for _, s := range g.shadows {
		g.shadowLenBuf = append(g.shadowLenBuf, float64(s.Length()))
	}

	stats := g.collector.Flush(g.tick, g.player.Length(), len(g.shadows), g.nibbles.Count(), g.shadowLenBuf)

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	perfStats := g.perfCollector.Stats()
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}

	for _, h := range g.detector.Check(stats) {
		if g.logStats {
			h.LogHighlight()
		}
		if g.output != nil {
			if err := g.output.WriteHighlight(h); err != nil {
				slog.Error("failed to write highlight", "error", err)
			}
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(h)
		}
	}
}

// saveSnapshot writes the full scene state for a highlight.
func (g *Game) saveSnapshot(h telemetry.Highlight) {
	snap := g.buildSnapshot()
	snap.Highlight = &h

	path, err := telemetry.SaveSnapshot(snap, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "type", h.Type, "error", err)
		return
	}
	slog.Info("snapshot saved", "type", h.Type, "path", path)
}

// buildSnapshot captures every snake and nibble in serializable form.
func (g *Game) buildSnapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		RNGSeed:   g.seed,
		ArenaHalf: g.cfg.Arena.Half,
		Tick:      g.tick,
	}

	if !g.gameOver {
		snap.Snakes = append(snap.Snakes, g.snakeState(g.player))
	}
	for _, s := range g.shadows {
		snap.Snakes = append(snap.Snakes, g.snakeState(s))
	}

	g.nibbles.Each(func(pos r3.Vec, _ float32, fromDrop bool) {
		snap.Nibbles = append(snap.Nibbles, telemetry.NibbleState{Pos: pos, FromDrop: fromDrop})
	})

	return snap
}

// snakeState copies one snake into its snapshot form.
func (g *Game) snakeState(s *Snake) telemetry.SnakeState {
	st := telemetry.SnakeState{
		ID:           s.ID,
		Player:       s.IsPlayer,
		Head:         s.HeadPos(),
		Yaw:          s.Yaw,
		Pitch:        s.Pitch,
		Speed:        s.Speed,
		Trail:        append([]r3.Vec(nil), s.Trail...),
		NibblesEaten: s.NibblesEaten,
		Traits:       s.Traits,
		BornTick:     s.BornTick,
		InvulnUntil:  s.InvulnUntil,
		ReflectUntil: s.ReflectUntil,
		TargetDir:    s.TargetDir,
	}
	for _, e := range s.Segments {
		st.Segments = append(st.Segments, g.posMap.Get(e).Vec)
	}
	if ls := g.lifeTracker.Get(s.ID); ls != nil {
		st.Life = ls.ToJSON()
	}
	return st
}
