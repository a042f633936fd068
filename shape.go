package morphtree

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// PointCloud is an ordered, fixed-size set of 3D points describing one target
// shape. Index i in two clouds of the same size refers to the same particle.
type PointCloud []Vec3

// TreeConfig controls the stochastic cone-shaped tree generator.
type TreeConfig struct {
	// Count is the number of points to generate.
	Count int `yaml:"count"`
	// Height is the total tree height; points span [-Height/2, Height/2].
	Height float64 `yaml:"height"`
	// MaxRadius is the envelope radius at the base.
	MaxRadius float64 `yaml:"max_radius"`
	// DensityExponent biases height draws toward the base (u^DensityExponent).
	DensityExponent float64 `yaml:"density_exponent"`
	// TaperExponent shapes how fast the envelope narrows with height.
	TaperExponent float64 `yaml:"taper_exponent"`
	// SpiralTwist is the spiral angle gained per unit of height.
	SpiralTwist float64 `yaml:"spiral_twist"`
	// LayerFrequency is the angular frequency of the branch-tier modulation
	// over normalized height.
	LayerFrequency float64 `yaml:"layer_frequency"`
	// Scatter multiplies the envelope radius per point.
	Scatter Range `yaml:"scatter"`
	// LayerScatter multiplies the tier modulation per point.
	LayerScatter Range `yaml:"layer_scatter"`
}

// DefaultTreeConfig returns the reference tree for n points.
func DefaultTreeConfig(n int) TreeConfig {
	return TreeConfig{
		Count:           n,
		Height:          16,
		MaxRadius:       7.5,
		DensityExponent: 1.5,
		TaperExponent:   0.8,
		SpiralTwist:     2.5,
		LayerFrequency:  10 * math.Pi,
		Scatter:         Range{0.6, 1.0},
		LayerScatter:    Range{0, 1.5},
	}
}

// Validate reports the first invalid field.
func (c TreeConfig) Validate() error {
	switch {
	case c.Count <= 0:
		return configErr("tree.count", fmt.Sprintf("must be positive, got %d", c.Count))
	case !(c.Height > 0):
		return configErr("tree.height", "must be positive")
	case !(c.MaxRadius > 0):
		return configErr("tree.max_radius", "must be positive")
	case !(c.DensityExponent > 0):
		return configErr("tree.density_exponent", "must be positive")
	case !(c.TaperExponent > 0):
		return configErr("tree.taper_exponent", "must be positive")
	case c.Scatter.Min > c.Scatter.Max:
		return configErr("tree.scatter", "min exceeds max")
	case c.LayerScatter.Min > c.LayerScatter.Max:
		return configErr("tree.layer_scatter", "min exceeds max")
	}
	return nil
}

// GenerateTree builds a spiral cone of cfg.Count points. Density is biased
// toward the base and a periodic tier modulation pushes points outward in
// bands. A nil rng draws from the global source.
func GenerateTree(cfg TreeConfig, rng *rand.Rand) (PointCloud, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	half := cfg.Height / 2
	cloud := make(PointCloud, cfg.Count)
	for i := range cloud {
		h := math.Pow(float01(rng), cfg.DensityExponent)*cfg.Height - half
		norm := (h + half) / cfg.Height

		envelope := cfg.MaxRadius * math.Pow(1-norm, cfg.TaperExponent)
		layer := (math.Sin(norm*cfg.LayerFrequency) + 1) / 2

		angle := h*cfg.SpiralTwist + float01(rng)*2*math.Pi
		r := envelope*cfg.Scatter.Random(rng) + layer*cfg.LayerScatter.Random(rng)
		if r < 0 {
			r = 0
		}
		cloud[i] = Vec3{X: r * math.Cos(angle), Y: h, Z: r * math.Sin(angle)}
	}
	return cloud, nil
}

// SphereConfig controls the hollow, volume-filled sphere generator.
type SphereConfig struct {
	// Count is the number of points to generate.
	Count int `yaml:"count"`
	// MinRadius keeps the center free for the focal element.
	MinRadius float64 `yaml:"min_radius"`
	// MaxRadius is the outer shell.
	MaxRadius float64 `yaml:"max_radius"`
	// InnerShare is the probability a point lands in the dense inner band.
	InnerShare float64 `yaml:"inner_share"`
	// InnerSplit is the radius fraction separating inner band and outer volume.
	InnerSplit float64 `yaml:"inner_split"`
}

// DefaultSphereConfig returns the reference sphere for n points.
func DefaultSphereConfig(n int) SphereConfig {
	return SphereConfig{
		Count:      n,
		MinRadius:  1.5,
		MaxRadius:  8.0,
		InnerShare: 0.4,
		InnerSplit: 0.3,
	}
}

// Validate reports the first invalid field.
func (c SphereConfig) Validate() error {
	switch {
	case c.Count <= 0:
		return configErr("sphere.count", fmt.Sprintf("must be positive, got %d", c.Count))
	case !(c.MinRadius >= 0):
		return configErr("sphere.min_radius", "must not be negative")
	case !(c.MaxRadius > c.MinRadius):
		return configErr("sphere.max_radius", "must exceed min_radius")
	case !(c.InnerShare >= 0 && c.InnerShare <= 1):
		return configErr("sphere.inner_share", "must be within [0, 1]")
	case !(c.InnerSplit > 0 && c.InnerSplit < 1):
		return configErr("sphere.inner_split", "must be within (0, 1)")
	}
	return nil
}

// GenerateSphere builds a hollow sphere of cfg.Count points with uniformly
// distributed directions. Radii mix a dense inner band with a sparser outer
// volume. A nil rng draws from the global source.
func GenerateSphere(cfg SphereConfig, rng *rand.Rand) (PointCloud, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	span := cfg.MaxRadius - cfg.MinRadius
	inner := Range{0, cfg.InnerSplit}
	outer := Range{cfg.InnerSplit, 1}

	cloud := make(PointCloud, cfg.Count)
	for i := range cloud {
		theta := float01(rng) * 2 * math.Pi
		phi := math.Acos(2*float01(rng) - 1)

		var frac float64
		if float01(rng) < cfg.InnerShare {
			frac = inner.Random(rng)
		} else {
			frac = outer.Random(rng)
		}
		r := cfg.MinRadius + frac*span

		sinPhi := math.Sin(phi)
		cloud[i] = Vec3{
			X: r * sinPhi * math.Cos(theta),
			Y: r * sinPhi * math.Sin(theta),
			Z: r * math.Cos(phi),
		}
	}
	return cloud, nil
}

// ValidateClouds checks that two clouds can be blended index by index.
func ValidateClouds(a, b PointCloud) error {
	if len(a) == 0 || len(b) == 0 {
		return fmt.Errorf("%w: empty cloud", ErrMalformedCloud)
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: length mismatch %d != %d", ErrMalformedCloud, len(a), len(b))
	}
	for i := range a {
		if !a[i].isFinite() || !b[i].isFinite() {
			return fmt.Errorf("%w: non-finite point at index %d", ErrMalformedCloud, i)
		}
	}
	return nil
}

// NewSeededRand returns a deterministic source for reproducible shapes.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Random returns a random float64 in [Min, Max). A nil rng uses the global
// source.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + float01(rng)*(r.Max-r.Min)
}

// float01 draws from [0, 1).
func float01(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}
