package morphtree

import (
	"fmt"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// EngineConfig gathers everything the per-frame animation needs besides the
// two clouds.
type EngineConfig struct {
	Breathe     BreatheConfig             `yaml:"breathe"`
	Orbit       OrbitConfig               `yaml:"orbit"`
	Entities    [EntityCount]EntityConfig `yaml:"entities"`
	Decorations DecorationConfig          `yaml:"decorations"`
	Star        StarConfig                `yaml:"star"`
	Mirror      MirrorConfig              `yaml:"mirror"`
	// TransitionDuration is the length in seconds of the one-shot star and
	// decoration timelines started by SetMode.
	TransitionDuration float32 `yaml:"transition_duration"`
}

// DefaultEngineConfig returns the reference scene.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Breathe:            DefaultBreatheConfig(),
		Orbit:              DefaultOrbitConfig(),
		Entities:           DefaultEntityConfigs(),
		Decorations:        DefaultDecorationConfig(),
		Star:               DefaultStarConfig(),
		Mirror:             DefaultMirrorConfig(),
		TransitionDuration: 2.2,
	}
}

// Validate reports the first invalid field.
func (c EngineConfig) Validate() error {
	if err := c.Decorations.Validate(); err != nil {
		return err
	}
	if err := c.Mirror.Validate(); err != nil {
		return err
	}
	if c.Orbit.Radius <= 0 {
		return configErr("orbit.radius", "must be positive")
	}
	if c.TransitionDuration < 0 {
		return configErr("transition_duration", "must not be negative")
	}
	return nil
}

// Frame is everything a renderer needs for one tick. The engine owns it and
// overwrites every field on each Step; callers that keep data across frames
// must copy it.
type Frame struct {
	// T is the elapsed time the frame was computed for; M the morph value.
	T, M float64
	// Mode is the engine's mode when the frame was computed.
	Mode Mode

	// Positions is the blended particle buffer.
	Positions   []Vec3
	Entities    [EntityCount]EntityTransform
	Decorations []DecorationState
	Star        StarState

	// Mirror holds the reflected copies.
	Mirror MirrorFrame
}

// MirrorFrame is the reflected half of a Frame. Positions is the very same
// slice as Frame.Positions; renderers draw it through a transform that flips
// Y about FloorY (y' = 2*FloorY - y) instead of reading a second buffer.
type MirrorFrame struct {
	Positions   []Vec3
	FloorY      float64
	Entities    [EntityCount]EntityTransform
	Decorations []DecorationState
	Star        StarState
}

// EngineOption customizes an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	flicker    *rand.Rand
	decoration *rand.Rand
}

// WithFlickerSource sets the random source of the star flicker. The default
// is the global source.
func WithFlickerSource(rng *rand.Rand) EngineOption {
	return func(o *engineOptions) { o.flicker = rng }
}

// WithDecorationSource sets the random source used to place decorations.
func WithDecorationSource(rng *rand.Rand) EngineOption {
	return func(o *engineOptions) { o.decoration = rng }
}

// Engine is the per-frame orchestrator. It blends the clouds, poses the
// choreographed bodies, twinkles decorations, pulses the star and mirrors all
// of it. Step is a closed-form function of (t, m) and the transition state;
// only the star flicker is random.
type Engine struct {
	config      EngineConfig
	particles   *particleField
	choreo      *Choreography
	decorations *DecorationSet
	star        *Star
	mirror      Mirror

	mode     Mode
	timeline Timeline
	frame    Frame
}

// NewEngine validates the clouds and config and preallocates all frame
// buffers. Malformed input is fatal: no engine is returned.
func NewEngine(cfg EngineConfig, tree, sphere PointCloud, opts ...EngineOption) (*Engine, error) {
	if err := ValidateClouds(tree, sphere); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		config:      cfg,
		particles:   newParticleField(tree, sphere, cfg.Breathe),
		choreo:      NewChoreography(cfg.Orbit, cfg.Entities),
		decorations: NewDecorationSet(cfg.Decorations, o.decoration),
		star:        newStar(cfg.Star, o.flicker),
		mirror:      NewMirror(cfg.Mirror),
	}
	n := e.decorations.Len()
	e.frame.Decorations = make([]DecorationState, n)
	e.frame.Mirror.Decorations = make([]DecorationState, n)
	e.frame.Mirror.FloorY = e.mirror.FloorY()
	return e, nil
}

// Count returns the number of particles.
func (e *Engine) Count() int {
	return len(e.particles.buf)
}

// Mode returns the mode most recently set.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Decorations returns the fixed ornament set.
func (e *Engine) Decorations() *DecorationSet {
	return e.decorations
}

// Star returns the focal element.
func (e *Engine) Star() *Star {
	return e.star
}

// Mirror returns the reflection mapping.
func (e *Engine) Mirror() Mirror {
	return e.mirror
}

// Transitioning reports whether one-shot mode timelines are still running.
func (e *Engine) Transitioning() bool {
	return e.timeline.Len() > 0
}

// SetMode starts the one-shot transition timelines for a mode change: the
// star moves to the mode's pose and the decoration group collapses (sphere)
// or pops back with an overshoot (tree). Setting the current mode again does
// nothing. Running timelines are dropped and the new ones start from the live
// values.
func (e *Engine) SetMode(mode Mode) {
	if mode == e.mode {
		return
	}
	e.mode = mode
	e.timeline.Clear()

	d := e.config.TransitionDuration
	e.star.transition(&e.timeline, mode, d)
	if mode == ModeSphere {
		e.timeline.Add(TweenFloat(&e.decorations.scale, 0, d*0.5, ease.InBack))
	} else {
		e.timeline.Add(TweenFloat(&e.decorations.scale, 1, d*0.6, ease.OutBack))
	}
}

// Advance moves the one-shot timelines forward by dt seconds.
func (e *Engine) Advance(dt float32) {
	e.timeline.Update(dt)
}

// Step computes the frame for elapsed time t and morph value m. Every buffer
// in the returned Frame is fully overwritten; calling Step twice with the
// same inputs yields identical frames apart from Star.Intensity and
// Mirror.Star.Intensity.
func (e *Engine) Step(t, m float64) *Frame {
	f := &e.frame
	f.T, f.M, f.Mode = t, m, e.mode

	f.Positions = e.particles.update(t, m)
	f.Mirror.Positions = f.Positions

	e.choreo.update(&f.Entities, t)
	for i := range f.Entities {
		f.Mirror.Entities[i] = e.mirror.Entity(f.Entities[i])
	}

	e.decorations.update(f.Decorations, t)
	for i := range f.Decorations {
		f.Mirror.Decorations[i] = e.mirror.Decoration(f.Decorations[i])
	}

	f.Star = e.star.update(t)
	f.Mirror.Star = e.mirror.Star(f.Star)
	return f
}
