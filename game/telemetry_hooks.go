package game

import "log/slog"

// flushTelemetry closes the stats window when it is due and reports it.
func (g *Game) flushTelemetry() {
	tick := g.engine.Ticks()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	g.heightBuf = g.engine.Snapshot(g.heightBuf)
	g.vxBuf, g.vyBuf = g.engine.VelocitySnapshot(g.vxBuf, g.vyBuf)

	stats := g.collector.Flush(tick, g.heightBuf, g.vxBuf, g.vyBuf, g.engine.Size(), g.touches.Count())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats
	g.lastPerf = perfStats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write field stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
