package morphtree

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

// EventStore is the interface for optional event forwarding (for example
// into an ECS world). When set on a Scene, mode and gesture changes are
// emitted to it.
type EventStore interface {
	EmitEvent(event Event)
}

// Event carries a discrete scene change.
type Event struct {
	Type EventType
	// Mode is the active mode after the event; Previous the one before a
	// mode change.
	Mode     Mode
	Previous Mode
	// Gesture is the stabilized label for EventGesture.
	Gesture Gesture
	// Time is the scene's elapsed time in seconds.
	Time float64
}

// SceneConfig configures a full session.
type SceneConfig struct {
	Tree    TreeConfig    `yaml:"tree"`
	Sphere  SphereConfig  `yaml:"sphere"`
	Gesture GestureConfig `yaml:"gesture"`
	Engine  EngineConfig  `yaml:"engine"`
	// Seed makes shape generation and decoration placement reproducible.
	// Zero draws from the global source.
	Seed uint64 `yaml:"seed"`
	// MorphDuration is the length in seconds of each morph transition.
	MorphDuration float32 `yaml:"morph_duration"`
}

// DefaultParticleCount is the reference cloud size.
const DefaultParticleCount = 2500

// DefaultSceneConfig returns the reference session.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Tree:          DefaultTreeConfig(DefaultParticleCount),
		Sphere:        DefaultSphereConfig(DefaultParticleCount),
		Gesture:       DefaultGestureConfig(),
		Engine:        DefaultEngineConfig(),
		MorphDuration: 2.2,
	}
}

// Validate reports the first invalid field.
func (c SceneConfig) Validate() error {
	if err := c.Tree.Validate(); err != nil {
		return err
	}
	if err := c.Sphere.Validate(); err != nil {
		return err
	}
	if c.Tree.Count != c.Sphere.Count {
		return configErr("sphere.count", fmt.Sprintf("must equal tree.count (%d), got %d", c.Tree.Count, c.Sphere.Count))
	}
	if err := c.Gesture.Validate(); err != nil {
		return err
	}
	if c.MorphDuration < 0 {
		return configErr("morph_duration", "must not be negative")
	}
	return c.Engine.Validate()
}

// Scene is the top-level object that owns the clouds, classifier, morph
// controller and engine, and runs them in a fixed order each frame.
type Scene struct {
	config SceneConfig
	tree   PointCloud
	sphere PointCloud

	classifier *Classifier
	stabilizer *Stabilizer
	morph      *MorphController
	engine     *Engine

	source  GestureSource
	lastSeq uint64
	last    Result

	mode    Mode
	elapsed float64
	frame   *Frame

	store  EventStore
	debug  bool
	logger *slog.Logger

	injectQueue []HandSample
	injectTS    int64
	script      *GestureScript
}

// NewScene generates both clouds and builds every component. Any invalid
// configuration or malformed cloud fails here, before a frame exists.
func NewScene(cfg SceneConfig, opts ...EngineOption) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = NewSeededRand(cfg.Seed)
	}

	tree, err := GenerateTree(cfg.Tree, rng)
	if err != nil {
		return nil, fmt.Errorf("generate tree: %w", err)
	}
	sphere, err := GenerateSphere(cfg.Sphere, rng)
	if err != nil {
		return nil, fmt.Errorf("generate sphere: %w", err)
	}

	opts = append([]EngineOption{WithDecorationSource(rng)}, opts...)
	engine, err := NewEngine(cfg.Engine, tree, sphere, opts...)
	if err != nil {
		return nil, err
	}

	return &Scene{
		config:     cfg,
		tree:       tree,
		sphere:     sphere,
		classifier: NewClassifier(cfg.Gesture),
		stabilizer: NewStabilizer(cfg.Gesture.StableFrames),
		morph:      NewMorphController(),
		engine:     engine,
		logger:     slog.Default(),
	}, nil
}

// Tree returns the generated tree cloud. The returned slice MUST NOT be mutated.
func (s *Scene) Tree() PointCloud {
	return s.tree
}

// Sphere returns the generated sphere cloud. The returned slice MUST NOT be mutated.
func (s *Scene) Sphere() PointCloud {
	return s.sphere
}

// Engine returns the animation engine.
func (s *Scene) Engine() *Engine {
	return s.engine
}

// Morph returns the morph controller.
func (s *Scene) Morph() *MorphController {
	return s.morph
}

// Mode returns the active mode.
func (s *Scene) Mode() Mode {
	return s.mode
}

// Elapsed returns the scene time in seconds.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// LastResult returns the most recent fresh classification.
func (s *Scene) LastResult() Result {
	return s.last
}

// Frame returns the frame computed by the last Update, or nil before the
// first one.
func (s *Scene) Frame() *Frame {
	return s.frame
}

// SetEventStore sets the optional event bridge.
func (s *Scene) SetEventStore(store EventStore) {
	s.store = store
}

// SetGestureSource makes Update read classifications from src (for example
// a GestureSlot filled by a ClassifyWorker) instead of SubmitHands.
func (s *Scene) SetGestureSource(src GestureSource) {
	s.source = src
	s.lastSeq = 0
}

// SetLogger replaces the logger used in debug mode. nil restores slog.Default.
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
}

// SetDebugMode enables or disables debug mode. When enabled, mode changes and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SubmitHands classifies one landmark frame synchronously and applies the
// result. Call it before Update within the same tick.
func (s *Scene) SubmitHands(hands []Hand, timestamp int64) Result {
	r := s.classifier.Classify(hands, timestamp)
	s.applyGesture(r)
	return r
}

// SetMode switches the active mode: the morph controller starts a transition
// toward the mode's target and the engine starts its one-shot timelines.
// Setting the active mode again does nothing.
func (s *Scene) SetMode(mode Mode) {
	if mode == s.mode {
		return
	}
	prev := s.mode
	s.mode = mode
	s.morph.SetTarget(mode.Target(), s.config.MorphDuration, ease.InOutCubic)
	s.engine.SetMode(mode)

	if s.debug {
		s.logger.Debug("mode change", "from", prev, "to", mode, "t", s.elapsed)
	}
	s.emit(Event{Type: EventModeChange, Mode: mode, Previous: prev, Time: s.elapsed})
}

// Update advances the scene by dt seconds and returns the new frame. Order:
// scripted and injected input, gesture source, morph timeline, engine
// timelines, then the engine step at the new elapsed time. The returned
// Frame is owned by the engine and overwritten by the next Update.
func (s *Scene) Update(dt float64) *Frame {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.script != nil {
		s.script.play(s)
	}
	s.processInjectedHands()
	if s.source != nil {
		if r, seq := s.source.Latest(); seq != s.lastSeq {
			s.lastSeq = seq
			s.applyGesture(r)
		}
	}

	if s.debug {
		stats.gestureTime = time.Since(t0)
		t0 = time.Now()
	}

	s.morph.Update(float32(dt))
	s.engine.Advance(float32(dt))
	s.elapsed += dt

	if s.debug {
		stats.timelineTime = time.Since(t0)
		t0 = time.Now()
	}

	s.frame = s.engine.Step(s.elapsed, s.morph.Value())

	if s.debug {
		stats.stepTime = time.Since(t0)
		stats.particleCount = len(s.frame.Positions)
		stats.decorationCount = len(s.frame.Decorations)
		s.debugLog(stats)
	}
	return s.frame
}

// applyGesture feeds a fresh classification through the stabilizer and maps
// the stable label to a mode. A held label wins over an earlier SetMode from
// elsewhere; GestureNone never changes the mode. Gesture events are only
// emitted when the stable label itself changes.
func (s *Scene) applyGesture(r Result) {
	s.last = r
	label, changed := s.stabilizer.Push(r)
	if changed {
		s.emit(Event{Type: EventGesture, Mode: s.mode, Gesture: label, Time: s.elapsed})
	}
	if !r.Present || r.Gesture != label {
		return
	}
	if mode, ok := label.Mode(); ok {
		s.SetMode(mode)
	}
}

func (s *Scene) emit(e Event) {
	if s.store != nil {
		s.store.EmitEvent(e)
	}
}
