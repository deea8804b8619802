package starfield

import "time"

// debugLogEvery is how many frames are aggregated per debug log line.
const debugLogEvery = 120

// debugStats holds per-session timing and draw-call metrics.
// Only populated when the Controller runs with WithDebug.
type debugStats struct {
	frames    int
	stepTime  time.Duration
	maxStep   time.Duration
	drawCalls int
}

func (s *debugStats) add(step time.Duration, drawCalls int) {
	s.frames++
	s.stepTime += step
	if step > s.maxStep {
		s.maxStep = step
	}
	s.drawCalls += drawCalls
}

// avgStep returns the mean step duration.
func (s *debugStats) avgStep() time.Duration {
	if s.frames == 0 {
		return 0
	}
	return s.stepTime / time.Duration(s.frames)
}

// avgDrawCalls returns the mean number of draw calls per frame, excluding
// the clear.
func (s *debugStats) avgDrawCalls() int {
	if s.frames == 0 {
		return 0
	}
	return s.drawCalls / s.frames
}

// debugLog emits the aggregated stats and resets them. Caller holds c.mu.
func (c *Controller) debugLog() {
	c.log.Debug("frame stats",
		"frames", c.frames,
		"avg_step", c.stats.avgStep(),
		"max_step", c.stats.maxStep,
		"draw_calls", c.stats.avgDrawCalls(),
	)
	c.stats = debugStats{}
}
