package morphtree

import (
	"fmt"
	"math"
)

// EntityRole identifies one of the three choreographed bodies.
type EntityRole uint8

const (
	RoleLeader    EntityRole = iota // runs ahead of the shared orbit angle
	RoleFollower1                   // sits on the shared orbit angle
	RoleFollower2                   // trails behind
)

// EntityCount is the number of choreographed bodies.
const EntityCount = 3

// String returns the role name.
func (r EntityRole) String() string {
	switch r {
	case RoleLeader:
		return "leader"
	case RoleFollower1:
		return "follower1"
	case RoleFollower2:
		return "follower2"
	default:
		return fmt.Sprintf("EntityRole(%d)", uint8(r))
	}
}

// EntityConfig holds the fixed constants of one choreographed body.
type EntityConfig struct {
	Role EntityRole `yaml:"-"`
	// PhaseOffset is added to the shared orbit angle.
	PhaseOffset float64 `yaml:"phase_offset"`
	// BaseY is the resting height.
	BaseY float64 `yaml:"base_y"`
	// BobFrequency and BobAmplitude shape the |sin| gait bounce. They are
	// independent of the orbit radius.
	BobFrequency float64 `yaml:"bob_frequency"`
	BobAmplitude float64 `yaml:"bob_amplitude"`
}

// OrbitConfig is the circle all bodies share.
type OrbitConfig struct {
	Radius float64 `yaml:"radius"`
	// Speed is the shared angle gained per second.
	Speed float64 `yaml:"speed"`
	// LookAhead is the angular distance to the point each body faces.
	LookAhead float64 `yaml:"look_ahead"`
}

// DefaultOrbitConfig returns the reference orbit.
func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{Radius: 11, Speed: 0.4, LookAhead: 0.1}
}

// DefaultEntityConfigs returns leader, follower1, follower2 in that order.
func DefaultEntityConfigs() [EntityCount]EntityConfig {
	return [EntityCount]EntityConfig{
		{Role: RoleLeader, PhaseOffset: 0.8, BaseY: -7.6, BobFrequency: 8, BobAmplitude: 0.25},
		{Role: RoleFollower1, PhaseOffset: 0, BaseY: -7.8, BobFrequency: 10, BobAmplitude: 0.18},
		{Role: RoleFollower2, PhaseOffset: -0.8, BaseY: -7.8, BobFrequency: 11.5, BobAmplitude: 0.18},
	}
}

// EntityTransform is the live pose of a choreographed body.
type EntityTransform struct {
	Role     EntityRole
	Position Vec3
	// Forward is the unit heading, tangent to the orbit.
	Forward Vec3
	// Angle is the orbit phase the body sits at.
	Angle float64
	// Yaw is the heading around the vertical axis, atan2(Forward.X, Forward.Z).
	Yaw float64
}

// Choreography computes the bodies' poses as a pure function of time. No
// velocity or previous pose is stored.
type Choreography struct {
	orbit    OrbitConfig
	entities [EntityCount]EntityConfig
}

// NewChoreography creates a choreography over the given orbit and bodies.
func NewChoreography(orbit OrbitConfig, entities [EntityCount]EntityConfig) *Choreography {
	return &Choreography{orbit: orbit, entities: entities}
}

// Pose computes body i at time t.
func (c *Choreography) Pose(i int, t float64) EntityTransform {
	e := c.entities[i]
	phase := t*c.orbit.Speed + e.PhaseOffset
	r := c.orbit.Radius

	pos := Vec3{
		X: r * math.Cos(phase),
		Y: e.BaseY + math.Abs(math.Sin(t*e.BobFrequency))*e.BobAmplitude,
		Z: r * math.Sin(phase),
	}
	ahead := phase + c.orbit.LookAhead
	look := Vec3{X: r * math.Cos(ahead), Y: pos.Y, Z: r * math.Sin(ahead)}
	fwd := look.Sub(pos).Normalize()

	return EntityTransform{
		Role:     e.Role,
		Position: pos,
		Forward:  fwd,
		Angle:    phase,
		Yaw:      math.Atan2(fwd.X, fwd.Z),
	}
}

// update writes all poses for time t into dst.
func (c *Choreography) update(dst *[EntityCount]EntityTransform, t float64) {
	for i := range dst {
		dst[i] = c.Pose(i, t)
	}
}
