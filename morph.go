package morphtree

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// finishSlack is the remaining time, in seconds, below which a transition
// counts as complete. gween sums frame steps in float32.
const finishSlack = 1e-4

// MorphController owns the blend value between the tree (0) and sphere (1)
// clouds. The value only moves through timed, eased transitions; it starts at
// 0 and is never snapped afterwards.
type MorphController struct {
	value     float64
	target    float64
	tween     *gween.Tween
	remaining float64
}

// NewMorphController returns a controller resting at 0.
func NewMorphController() *MorphController {
	return &MorphController{}
}

// SetTarget starts a transition from the current live value to target over
// duration seconds. Any transition in flight is replaced; the new one starts
// wherever the old one had got to. Targets outside [0, 1] are clamped. A nil
// easing function selects ease.InOutCubic.
func (c *MorphController) SetTarget(target float64, duration float32, fn ease.TweenFunc) {
	target = clamp01(target)
	c.target = target
	c.tween = gween.New(float32(c.value), float32(target), duration, easeOrDefault(fn))
	c.remaining = float64(duration)
	if duration <= 0 {
		c.Update(0)
	}
}

// Update advances the active transition by dt seconds. When it completes the
// value lands exactly on the target and the transition is released.
func (c *MorphController) Update(dt float32) {
	if c.tween == nil {
		return
	}
	val, finished := c.tween.Update(dt)
	c.remaining -= float64(dt)
	if finished || c.remaining <= finishSlack {
		c.value = c.target
		c.tween = nil
		return
	}
	c.value = clamp01(float64(val))
}

// Value returns the current blend value in [0, 1].
func (c *MorphController) Value() float64 {
	return c.value
}

// Target returns the value the controller is heading to (or resting at).
func (c *MorphController) Target() float64 {
	return c.target
}

// Active reports whether a transition is in flight.
func (c *MorphController) Active() bool {
	return c.tween != nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
