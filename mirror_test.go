package morphtree

import (
	"math"
	"testing"
)

func TestMirrorPoint(t *testing.T) {
	m := NewMirror(MirrorConfig{FloorY: -8.5, Damping: 0.3})
	tests := []struct {
		in, want Vec3
	}{
		{Vec3{1, -8.5, 2}, Vec3{1, -8.5, 2}},
		{Vec3{0, 0, 0}, Vec3{0, -17, 0}},
		{Vec3{3, 8, -1}, Vec3{3, -25, -1}},
	}
	for _, tt := range tests {
		if got := m.Point(tt.in); got != tt.want {
			t.Errorf("Point(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got := m.Point(m.Point(tt.in)); got != tt.in {
			t.Errorf("double reflection of %v = %v", tt.in, got)
		}
	}
}

func TestMirrorStarDamped(t *testing.T) {
	m := NewMirror(DefaultMirrorConfig())
	s := StarState{Position: Vec3{0, 8.6, 0}, Rotation: Vec3{0.1, 2, -0.05}, Scale: 1.2, Intensity: 1.5}
	got := m.Star(s)
	if math.Abs(got.Intensity-0.45) > 1e-12 {
		t.Errorf("intensity = %f, want 0.45", got.Intensity)
	}
	if got.Rotation != s.Rotation {
		t.Errorf("rotation = %v, want copied %v", got.Rotation, s.Rotation)
	}
	if got.Scale != s.Scale {
		t.Errorf("scale = %f, want %f", got.Scale, s.Scale)
	}
	if math.Abs(got.Position.Y-(-25.6)) > 1e-12 {
		t.Errorf("position Y = %f, want -25.6", got.Position.Y)
	}
}

func TestMirrorDecorationDamped(t *testing.T) {
	m := NewMirror(DefaultMirrorConfig())
	d := DecorationState{Position: Vec3{1, 2, 3}, Emissive: 0.8, Opacity: 0.4, Scale: 1}
	got := m.Decoration(d)
	if math.Abs(got.Emissive-0.24) > 1e-12 || math.Abs(got.Opacity-0.12) > 1e-12 {
		t.Errorf("emissive/opacity = %f/%f, want damped", got.Emissive, got.Opacity)
	}
	if got.Scale != 1 {
		t.Errorf("scale = %f, want 1", got.Scale)
	}
}

func TestMirrorEntity(t *testing.T) {
	m := NewMirror(DefaultMirrorConfig())
	e := EntityTransform{Role: RoleLeader, Position: Vec3{5, -7, 1}, Forward: Vec3{0, 0.2, 1}, Yaw: 0.3}
	got := m.Entity(e)
	if got.Position != (Vec3{5, -10, 1}) {
		t.Errorf("position = %v, want {5 -10 1}", got.Position)
	}
	if got.Forward != (Vec3{0, -0.2, 1}) {
		t.Errorf("forward = %v, want {0 -0.2 1}", got.Forward)
	}
	if got.Yaw != e.Yaw || got.Role != e.Role {
		t.Error("yaw and role should be copied")
	}
}

func TestMirrorConfigValidate(t *testing.T) {
	if err := (MirrorConfig{Damping: 1.5}).Validate(); err == nil {
		t.Error("expected error for damping above 1")
	}
	if err := DefaultMirrorConfig().Validate(); err != nil {
		t.Error(err)
	}
}
