package hop

import "math"

// Smoother low-pass filters raw loudness into a stable control signal.
type Smoother struct {
	ease   float64
	volume float64
}

// NewSmoother creates a smoother with the given ease factor in (0, 1].
func NewSmoother(ease float64) *Smoother {
	return &Smoother{ease: ease}
}

// Update folds one raw sample into the signal and returns the new value.
// Samples are clamped to [0, 1]; NaN reads as silence.
func (s *Smoother) Update(raw float64) float64 {
	if math.IsNaN(raw) || raw < 0 {
		raw = 0
	} else if raw > 1 {
		raw = 1
	}
	s.volume += (raw - s.volume) * s.ease
	return s.volume
}

// Value returns the current signal without updating it.
func (s *Smoother) Value() float64 {
	return s.volume
}

// Reset returns the signal to silence.
func (s *Smoother) Reset() {
	s.volume = 0
}
