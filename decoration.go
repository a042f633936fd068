package morphtree

import (
	"math"
	"math/rand/v2"
)

// DecorationConfig controls the emissive ornaments.
type DecorationConfig struct {
	// Count is the fixed number of decorations created at startup.
	Count int `yaml:"count"`
	// Radius bounds the distance from the origin of each base position.
	Radius Range `yaml:"radius"`
	// PhaseStride spreads the twinkle phase by index.
	PhaseStride float64 `yaml:"phase_stride"`
}

// DefaultDecorationConfig returns the reference ornament set.
func DefaultDecorationConfig() DecorationConfig {
	return DecorationConfig{
		Count:       40,
		Radius:      Range{3, 7.5},
		PhaseStride: 13,
	}
}

// Validate reports the first invalid field.
func (c DecorationConfig) Validate() error {
	switch {
	case c.Count < 0:
		return configErr("decorations.count", "must not be negative")
	case c.Radius.Min < 0 || c.Radius.Min > c.Radius.Max:
		return configErr("decorations.radius", "must be a non-negative, ordered range")
	}
	return nil
}

// Decoration is one fixed ornament.
type Decoration struct {
	Index int
	Base  Vec3
	// Phase desynchronizes the twinkle: PhaseStride*Index + Base.X.
	Phase float64
}

// DecorationState is the per-frame output for one ornament.
type DecorationState struct {
	Position Vec3
	// Emissive is the ornament's glow intensity.
	Emissive float64
	// Opacity is the alpha of the attached halo.
	Opacity float64
	// Scale is the group visibility scale (0 hidden, 1 full).
	Scale float64
}

// DecorationSet is the fixed ornament list plus the group visibility scale
// animated on mode changes.
type DecorationSet struct {
	items []Decoration
	// scale is written by the engine's transition timeline.
	scale float64
}

// NewDecorationSet places cfg.Count ornaments at uniformly random directions
// with radii drawn from cfg.Radius. A nil rng uses the global source.
func NewDecorationSet(cfg DecorationConfig, rng *rand.Rand) *DecorationSet {
	items := make([]Decoration, cfg.Count)
	for i := range items {
		theta := float01(rng) * 2 * math.Pi
		phi := math.Acos(2*float01(rng) - 1)
		r := cfg.Radius.Random(rng)
		base := Vec3{
			X: r * math.Sin(phi) * math.Cos(theta),
			Y: r * math.Cos(phi),
			Z: r * math.Sin(phi) * math.Sin(theta),
		}
		items[i] = Decoration{
			Index: i,
			Base:  base,
			Phase: cfg.PhaseStride*float64(i) + base.X,
		}
	}
	return &DecorationSet{items: items, scale: 1}
}

// Items returns the ornaments. The returned slice MUST NOT be mutated.
func (d *DecorationSet) Items() []Decoration {
	return d.items
}

// Len returns the number of ornaments.
func (d *DecorationSet) Len() int {
	return len(d.items)
}

// Scale returns the current group visibility scale.
func (d *DecorationSet) Scale() float64 {
	return d.scale
}

// Twinkle returns the emissive intensity and halo opacity for phase p at t.
// Two incommensurate frequencies keep neighbours from flickering in sync.
func Twinkle(t, p float64) (emissive, opacity float64) {
	emissive = 0.7 + math.Sin(2*t+p)*0.15 + math.Cos(5.3*t+p)*0.05
	opacity = 0.4 + math.Sin(2.5*t+p)*0.1
	return emissive, opacity
}

// update writes the state of every ornament for time t into dst, which must
// have Len() entries.
func (d *DecorationSet) update(dst []DecorationState, t float64) {
	for i, it := range d.items {
		e, o := Twinkle(t, it.Phase)
		dst[i] = DecorationState{
			Position: it.Base,
			Emissive: e,
			Opacity:  o,
			Scale:    d.scale,
		}
	}
}
