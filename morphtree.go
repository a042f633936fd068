package morphtree

import (
	"errors"
	"fmt"
	"math"
)

// Vec3 is a 3D vector used for particle positions, entity transforms, and
// directions throughout the API. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp interpolates per axis between v (t=0) and o (t=1).
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{lerp(v.X, o.X, t), lerp(v.Y, o.Y, t), lerp(v.Z, o.Z, t)}
}

// isFinite reports whether every component is a real number.
func (v Vec3) isFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Range is a general-purpose min/max range.
// Used by the shape generators and decoration placement.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Mode selects which target shape the particle cloud morphs toward.
type Mode uint8

const (
	ModeTree   Mode = iota // morph value 0
	ModeSphere             // morph value 1
)

// Target returns the morph value that fully expresses the mode.
func (m Mode) Target() float64 {
	if m == ModeSphere {
		return 1
	}
	return 0
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModeSphere:
		return "sphere"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode converts "tree" or "sphere" to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "tree":
		return ModeTree, nil
	case "sphere":
		return ModeSphere, nil
	default:
		return ModeTree, fmt.Errorf("unknown mode %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Gesture is the discrete label produced by the Classifier.
type Gesture uint8

const (
	GestureNone       Gesture = iota // no usable hand this tick
	GestureOpenPalm                  // fingers extended
	GestureClosedFist                // at least MinCurled fingers curled
)

// String returns the gesture name.
func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureOpenPalm:
		return "open_palm"
	case GestureClosedFist:
		return "closed_fist"
	default:
		return fmt.Sprintf("Gesture(%d)", uint8(g))
	}
}

// Mode maps a gesture to the mode it requests. ok is false for GestureNone,
// which leaves the current mode in place.
func (g Gesture) Mode() (m Mode, ok bool) {
	switch g {
	case GestureClosedFist:
		return ModeTree, true
	case GestureOpenPalm:
		return ModeSphere, true
	default:
		return ModeTree, false
	}
}

// EventType identifies a kind of scene event.
type EventType uint8

const (
	EventModeChange EventType = iota // fires once when the active mode changes
	EventGesture                     // fires when the stabilized gesture label changes
)

// ErrInvalidConfig is wrapped by every *ConfigError.
var ErrInvalidConfig = errors.New("morphtree: invalid config")

// ErrMalformedCloud reports point clouds the engine cannot blend.
var ErrMalformedCloud = errors.New("morphtree: malformed point cloud")

// ConfigError describes a rejected configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("morphtree: invalid config: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configErr(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}
