package morphtree

import "time"

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	gestureTime     time.Duration
	timelineTime    time.Duration
	stepTime        time.Duration
	particleCount   int
	decorationCount int
}

// debugLog writes timing stats through the scene logger at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.gestureTime + stats.timelineTime + stats.stepTime
	s.logger.Debug("frame",
		"gesture", stats.gestureTime,
		"timeline", stats.timelineTime,
		"step", stats.stepTime,
		"total", total,
		"particles", stats.particleCount,
		"decorations", stats.decorationCount,
		"morph", s.morph.Value(),
		"mode", s.mode,
	)
}
