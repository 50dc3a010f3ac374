package physics

// Stepper turns variable frame times into a whole number of fixed ticks.
// Time beyond MaxSteps ticks per frame is dropped so a stalled frame cannot
// trigger an unbounded catch-up.
type Stepper struct {
	Delta    float32
	MaxSteps int

	accumulator float32
	dropped     int
}

func NewStepper(delta float32, maxSteps int) *Stepper {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Stepper{Delta: delta, MaxSteps: maxSteps}
}

// Advance adds frameTime and returns how many ticks to run now.
func (s *Stepper) Advance(frameTime float32) int {
	if frameTime > 0 {
		s.accumulator += frameTime
	}

	steps := 0
	for s.accumulator >= s.Delta && steps < s.MaxSteps {
		s.accumulator -= s.Delta
		steps++
	}
	if s.accumulator >= s.Delta {
		s.dropped += int(s.accumulator / s.Delta)
		s.accumulator = 0
	}
	return steps
}

// Alpha is the fraction of a tick left in the accumulator, for interpolation.
func (s *Stepper) Alpha() float32 {
	return s.accumulator / s.Delta
}

// Dropped is the total number of ticks skipped by the catch-up cap.
func (s *Stepper) Dropped() int {
	return s.dropped
}
