package morphtree

import "math"

// BreatheConfig controls the organic drift added on top of the blended
// particle positions. Each axis is a sine or cosine of a spatial term plus a
// time term, so the drift is a closed-form function of (base, t).
type BreatheConfig struct {
	// Frequency scales the base coordinate feeding each wave.
	Frequency float64 `yaml:"frequency"`
	// SpeedX, SpeedY, SpeedZ scale elapsed time per axis.
	SpeedX float64 `yaml:"speed_x"`
	SpeedY float64 `yaml:"speed_y"`
	SpeedZ float64 `yaml:"speed_z"`
	// Amplitude is the X/Z displacement; Y uses half of it.
	Amplitude float64 `yaml:"amplitude"`
}

// DefaultBreatheConfig returns the reference drift.
func DefaultBreatheConfig() BreatheConfig {
	return BreatheConfig{
		Frequency: 0.5,
		SpeedX:    1.5,
		SpeedY:    1.2,
		SpeedZ:    1.8,
		Amplitude: 0.15,
	}
}

// Breathe returns the drift for a particle whose blended base position is b.
func (c BreatheConfig) Breathe(b Vec3, t float64) Vec3 {
	return Vec3{
		X: math.Sin(b.Y*c.Frequency+t*c.SpeedX) * c.Amplitude,
		Y: math.Cos(b.X*c.Frequency+t*c.SpeedY) * c.Amplitude / 2,
		Z: math.Sin(b.Y*c.Frequency+t*c.SpeedZ) * c.Amplitude,
	}
}

// particleField blends two clouds into a preallocated scratch buffer.
// Unexported; managed by Engine.
type particleField struct {
	tree    PointCloud
	sphere  PointCloud
	breathe BreatheConfig
	buf     []Vec3
}

// newParticleField creates a field with a scratch buffer sized to the clouds.
// The clouds must already be validated.
func newParticleField(tree, sphere PointCloud, breathe BreatheConfig) *particleField {
	return &particleField{
		tree:    tree,
		sphere:  sphere,
		breathe: breathe,
		buf:     make([]Vec3, len(tree)),
	}
}

// update overwrites every slot of the scratch buffer with the blended,
// drifting position for time t and morph value m. Nothing carries over from
// the previous call.
func (f *particleField) update(t, m float64) []Vec3 {
	for i := range f.buf {
		base := f.tree[i].Lerp(f.sphere[i], m)
		f.buf[i] = base.Add(f.breathe.Breathe(base, t))
	}
	return f.buf
}

// lerp linearly interpolates between a and b by t. The endpoints are exact:
// lerp(a, b, 0) == a and lerp(a, b, 1) == b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
