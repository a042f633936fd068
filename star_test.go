package morphtree

import (
	"math"
	"testing"
)

func TestStarWobble(t *testing.T) {
	s := newStar(DefaultStarConfig(), NewSeededRand(1))
	for _, tm := range []float64{0, 0.4, 3.9} {
		st := s.update(tm)
		if math.Abs(st.Rotation.X-math.Sin(2*tm)*0.1) > 1e-12 {
			t.Errorf("t=%f: rot X = %f, want %f", tm, st.Rotation.X, math.Sin(2*tm)*0.1)
		}
		if math.Abs(st.Rotation.Z-math.Cos(1.5*tm)*0.1) > 1e-12 {
			t.Errorf("t=%f: rot Z = %f, want %f", tm, st.Rotation.Z, math.Cos(1.5*tm)*0.1)
		}
		if st.Rotation.Y != 0 {
			t.Errorf("t=%f: rot Y = %f, want 0 in tree pose", tm, st.Rotation.Y)
		}
	}
}

func TestStarIntensityRange(t *testing.T) {
	s := newStar(DefaultStarConfig(), NewSeededRand(2))
	for i := 0; i < 500; i++ {
		tm := float64(i) * 0.013
		st := s.update(tm)
		pulse := Pulse(tm)
		if st.Intensity < pulse-0.15-1e-12 || st.Intensity > pulse+0.15+1e-12 {
			t.Fatalf("t=%f: intensity %f outside pulse %f ± 0.15", tm, st.Intensity, pulse)
		}
	}
}

func TestStarFlickerRedrawnEachUpdate(t *testing.T) {
	s := newStar(DefaultStarConfig(), NewSeededRand(3))
	a := s.update(1).Intensity
	b := s.update(1).Intensity
	if a == b {
		t.Error("flicker should be redrawn on every update")
	}
}

func TestStarNoFlicker(t *testing.T) {
	cfg := DefaultStarConfig()
	cfg.Flicker = 0
	s := newStar(cfg, nil)
	if got := s.update(0.8).Intensity; got != Pulse(0.8) {
		t.Errorf("intensity = %f, want pure pulse %f", got, Pulse(0.8))
	}
}

func TestStarTransition(t *testing.T) {
	cfg := DefaultStarConfig()
	s := newStar(cfg, nil)
	var tl Timeline
	s.transition(&tl, ModeSphere, 1)
	if tl.Len() != 3 {
		t.Fatalf("timeline groups = %d, want 3 (position, rotation, scale)", tl.Len())
	}
	tl.Update(0.5)
	mid := s.Pose()
	if mid.Position.Y >= cfg.TreePose.Position.Y || mid.Position.Y <= cfg.SpherePose.Position.Y {
		t.Errorf("mid position Y = %f, want between poses", mid.Position.Y)
	}
	tl.Update(0.5)
	end := s.Pose()
	if math.Abs(end.Position.Y-cfg.SpherePose.Position.Y) > 1e-5 {
		t.Errorf("end position = %v, want %v", end.Position, cfg.SpherePose.Position)
	}
	if math.Abs(end.Scale-cfg.SpherePose.Scale) > 1e-5 {
		t.Errorf("end scale = %f, want %f", end.Scale, cfg.SpherePose.Scale)
	}
	if math.Abs(end.Rotation.Y-cfg.SpherePose.Rotation.Y) > 1e-5 {
		t.Errorf("end rotation Y = %f, want %f", end.Rotation.Y, cfg.SpherePose.Rotation.Y)
	}
	if tl.Len() != 0 {
		t.Errorf("timeline should be empty after completion, has %d", tl.Len())
	}
}
