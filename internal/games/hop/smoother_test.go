package hop

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestSmootherFirstSample(t *testing.T) {
	s := NewSmoother(0.08)
	if got := s.Update(1); !approx(got, 0.08) {
		t.Errorf("Update(1) = %v, want 0.08", got)
	}
	if got := s.Value(); !approx(got, 0.08) {
		t.Errorf("Value() = %v, want 0.08", got)
	}
}

func TestSmootherConvergesWithinBounds(t *testing.T) {
	s := NewSmoother(0.08)
	prev := 0.0
	for i := 0; i < 500; i++ {
		v := s.Update(1)
		if v < prev || v > 1 {
			t.Fatalf("tick %d: value %v not in [%v, 1]", i, v, prev)
		}
		prev = v
	}
	if prev < 0.999 {
		t.Errorf("after 500 loud ticks value = %v, want ~1", prev)
	}

	for i := 0; i < 500; i++ {
		v := s.Update(0)
		if v < 0 || v > prev {
			t.Fatalf("decay tick %d: value %v not in [0, %v]", i, v, prev)
		}
		prev = v
	}
	if prev > 0.001 {
		t.Errorf("after 500 silent ticks value = %v, want ~0", prev)
	}
}

func TestSmootherClampsRawSamples(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"above one", 5, 0.08},
		{"negative", -3, 0},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 0.08},
		{"in range", 0.5, 0.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSmoother(0.08)
			if got := s.Update(tt.raw); !approx(got, tt.want) {
				t.Errorf("Update(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSmootherReset(t *testing.T) {
	s := NewSmoother(0.5)
	s.Update(1)
	s.Reset()
	if s.Value() != 0 {
		t.Errorf("Value() after Reset = %v, want 0", s.Value())
	}
}
