package morphtree

// MirrorConfig describes the reflective floor.
type MirrorConfig struct {
	// FloorY is the height of the reflecting plane.
	FloorY float64 `yaml:"floor_y"`
	// Damping scales emissive intensity and opacity of mirrored copies.
	Damping float64 `yaml:"damping"`
}

// DefaultMirrorConfig returns the reference floor.
func DefaultMirrorConfig() MirrorConfig {
	return MirrorConfig{FloorY: -8.5, Damping: 0.3}
}

// Validate reports the first invalid field.
func (c MirrorConfig) Validate() error {
	if c.Damping < 0 || c.Damping > 1 {
		return configErr("mirror.damping", "must be within [0, 1]")
	}
	return nil
}

// Mirror maps primary outputs to their reflected counterparts: positions flip
// about the floor plane, rotation is copied 1:1 and light is damped.
type Mirror struct {
	config MirrorConfig
}

// NewMirror creates a Mirror for the given floor.
func NewMirror(cfg MirrorConfig) Mirror {
	return Mirror{config: cfg}
}

// Point reflects p about the floor plane: y' = 2*FloorY - y.
func (m Mirror) Point(p Vec3) Vec3 {
	p.Y = 2*m.config.FloorY - p.Y
	return p
}

// Direction reflects a direction vector (no floor offset).
func (m Mirror) Direction(d Vec3) Vec3 {
	d.Y = -d.Y
	return d
}

// Intensity damps a primary emissive or opacity value.
func (m Mirror) Intensity(v float64) float64 {
	return v * m.config.Damping
}

// Star returns the mirrored focal element.
func (m Mirror) Star(s StarState) StarState {
	s.Position = m.Point(s.Position)
	s.Intensity = m.Intensity(s.Intensity)
	return s
}

// Entity returns the mirrored pose of a choreographed body.
func (m Mirror) Entity(e EntityTransform) EntityTransform {
	e.Position = m.Point(e.Position)
	e.Forward = m.Direction(e.Forward)
	return e
}

// Decoration returns the mirrored ornament state.
func (m Mirror) Decoration(d DecorationState) DecorationState {
	d.Position = m.Point(d.Position)
	d.Emissive = m.Intensity(d.Emissive)
	d.Opacity = m.Intensity(d.Opacity)
	return d
}

// FloorY returns the floor height used by renderers that flip the shared
// particle buffer themselves.
func (m Mirror) FloorY() float64 {
	return m.config.FloorY
}
