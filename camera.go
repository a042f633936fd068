package morphtree

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Rect is an axis-aligned screen rectangle. The origin is at the top-left,
// with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edges are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Camera is a perspective view for rendering collaborators. It orbits Target
// at Distance, turned by Yaw around the vertical axis and tilted by Pitch.
// The engine never reads it.
type Camera struct {
	Target   Vec3
	Distance float64
	// Yaw and Pitch are in radians. Positive pitch looks down on the scene.
	Yaw, Pitch float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// Near clips points closer than this to the eye.
	Near float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// AutoRotate is a yaw speed in radians per second applied by Update
	// while no OrbitTo is running.
	AutoRotate float64

	orbit *gween.Tween
}

// NewCamera creates a camera framing the default scene in viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Distance: 30,
		Pitch:    0.18,
		FOV:      50 * math.Pi / 180,
		Near:     0.1,
		Viewport: viewport,
	}
}

// OrbitTo animates the yaw to the given angle over duration seconds.
func (c *Camera) OrbitTo(yaw float64, duration float32, easeFn ease.TweenFunc) {
	c.orbit = gween.New(float32(c.Yaw), float32(yaw), duration, easeOrDefault(easeFn))
}

// Update advances OrbitTo or AutoRotate by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.orbit != nil {
		val, done := c.orbit.Update(dt)
		c.Yaw = float64(val)
		if done {
			c.orbit = nil
		}
		return
	}
	c.Yaw += c.AutoRotate * float64(dt)
}

// focal returns the projection scale in pixels at unit depth.
func (c *Camera) focal() float64 {
	return (c.Viewport.Height / 2) / math.Tan(c.FOV/2)
}

// Project maps a world point to screen coordinates. depth is the distance
// along the view axis; ok is false when the point is behind the near plane.
func (c *Camera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	rel := p.Sub(c.Target)

	cy, sny := math.Cos(c.Yaw), math.Sin(c.Yaw)
	x1 := rel.X*cy - rel.Z*sny
	z1 := rel.X*sny + rel.Z*cy

	cp, snp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	y2 := rel.Y*cp - z1*snp
	z2 := rel.Y*snp + z1*cp

	depth = c.Distance - z2
	if depth <= c.Near {
		return 0, 0, depth, false
	}
	f := c.focal() / depth
	sx = c.Viewport.X + c.Viewport.Width/2 + x1*f
	sy = c.Viewport.Y + c.Viewport.Height/2 - y2*f
	return sx, sy, depth, true
}

// ScaleAt returns how many pixels one world unit spans at the given depth.
func (c *Camera) ScaleAt(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.focal() / depth
}
