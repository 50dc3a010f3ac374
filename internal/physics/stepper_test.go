package physics

import "testing"

func TestStepperFixedTicks(t *testing.T) {
	s := NewStepper(0.1, 5)

	if n := s.Advance(0.05); n != 0 {
		t.Errorf("Expected 0 ticks for half a step, got %d", n)
	}
	if n := s.Advance(0.06); n != 1 {
		t.Errorf("Expected 1 tick once a full step accumulated, got %d", n)
	}
	if a := s.Alpha(); !approx(a, 0.1) {
		t.Errorf("Expected alpha 0.1, got %v", a)
	}
	if n := s.Advance(0.25); n != 2 {
		t.Errorf("Expected 2 ticks, got %d", n)
	}
}

func TestStepperCatchUpCap(t *testing.T) {
	s := NewStepper(0.1, 3)

	if n := s.Advance(1.05); n != 3 {
		t.Errorf("Expected the cap of 3 ticks, got %d", n)
	}
	if s.Dropped() != 7 {
		t.Errorf("Expected 7 dropped ticks, got %d", s.Dropped())
	}
	if n := s.Advance(0.01); n != 0 {
		t.Errorf("Expected the backlog to be discarded, got %d ticks", n)
	}
}

func TestStepperIgnoresNegativeFrameTime(t *testing.T) {
	s := NewStepper(0.1, 3)
	if n := s.Advance(-5); n != 0 || s.Alpha() != 0 {
		t.Errorf("Expected negative frame time to be ignored, got %d ticks alpha %v", n, s.Alpha())
	}
}
