package morphtree

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// StarPose is where the focal element rests in one mode.
type StarPose struct {
	Position Vec3    `yaml:"position"`
	Rotation Vec3    `yaml:"rotation"`
	Scale    float64 `yaml:"scale"`
}

// StarConfig controls the focal element.
type StarConfig struct {
	// TreePose sits on top of the tree; SpherePose fills the hollow center.
	TreePose   StarPose `yaml:"tree_pose"`
	SpherePose StarPose `yaml:"sphere_pose"`
	// Flicker is the peak-to-peak width of the per-frame random term.
	Flicker float64 `yaml:"flicker"`
}

// DefaultStarConfig returns the reference star.
func DefaultStarConfig() StarConfig {
	return StarConfig{
		TreePose: StarPose{
			Position: Vec3{0, 8.6, 0},
			Scale:    1,
		},
		SpherePose: StarPose{
			Position: Vec3{0, 0, 0},
			Rotation: Vec3{0, 2 * math.Pi, 0},
			Scale:    1.6,
		},
		Flicker: 0.3,
	}
}

// StarState is the per-frame output for the focal element.
type StarState struct {
	Position Vec3
	// Rotation is the tweened base rotation plus the idle wobble (radians,
	// per axis).
	Rotation Vec3
	Scale    float64
	// Intensity is the emissive pulse. It includes a random flicker term
	// redrawn on every Step, so it is the one output that is intentionally
	// not reproducible.
	Intensity float64
}

// Star is the focal element. Its pose is driven by one-shot mode transitions;
// wobble and pulse are recomputed from time every frame.
type Star struct {
	config  StarConfig
	pose    StarPose
	flicker *rand.Rand
}

// newStar creates a star resting in the tree pose.
func newStar(cfg StarConfig, flicker *rand.Rand) *Star {
	return &Star{config: cfg, pose: cfg.TreePose, flicker: flicker}
}

// Pose returns the current (possibly mid-transition) base pose.
func (s *Star) Pose() StarPose {
	return s.pose
}

// transition schedules the move to the pose for mode. Position, rotation and
// scale use distinct curves.
func (s *Star) transition(tl *Timeline, mode Mode, duration float32) {
	to := s.config.TreePose
	if mode == ModeSphere {
		to = s.config.SpherePose
	}
	tl.Add(TweenVec3(&s.pose.Position, to.Position, duration, ease.InOutCubic))
	tl.Add(TweenVec3(&s.pose.Rotation, to.Rotation, duration, ease.OutQuad))
	tl.Add(TweenFloat(&s.pose.Scale, to.Scale, duration, ease.OutBack))
}

// Pulse returns the deterministic part of the emissive intensity at t.
func Pulse(t float64) float64 {
	return math.Sin(2.5*t)*0.2 + 1.5
}

// update computes the star state at t.
func (s *Star) update(t float64) StarState {
	rot := s.pose.Rotation
	rot.X += math.Sin(2*t) * 0.1
	rot.Z += math.Cos(1.5*t) * 0.1
	return StarState{
		Position:  s.pose.Position,
		Rotation:  rot,
		Scale:     s.pose.Scale,
		Intensity: Pulse(t) + (float01(s.flicker)-0.5)*s.config.Flicker,
	}
}
