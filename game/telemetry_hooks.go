package game

import (
	"log/slog"

	"github.com/pthm-cable/mine/telemetry"
)

// flushTelemetry publishes perf stats once per perf window.
func (g *Game) flushTelemetry() {
	window := int64(max(g.cfg.Screen.TargetFPS, 1))
	if g.tick == 0 || g.tick%window != 0 {
		return
	}

	perfStats := g.perfCollector.Stats()
	g.lastPerf = perfStats

	if g.statsCallback != nil {
		g.statsCallback(perfStats)
	}

	if g.logStats {
		perfStats.LogStats()
		slog.Info("game",
			"tick", g.tick,
			"scene", g.scene,
			"ore", g.ore,
			"hits", g.hits,
			"regions", g.numRegions,
		)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WritePerf(perfStats, g.tick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// LastPerf returns the most recently flushed perf stats.
func (g *Game) LastPerf() telemetry.PerfStats {
	return g.lastPerf
}
