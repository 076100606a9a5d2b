package hop

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/voicehop/internal/config"
)

// constSource always returns the same draw.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func newTestField(seed int64, mutate func(*config.HopField)) *Field {
	cfg := config.DefaultHopConfig().Field
	if mutate != nil {
		mutate(&cfg)
	}
	f := NewField(cfg, rand.New(rand.NewSource(seed)))
	f.Initialize(cfg.ViewWidth)
	return f
}

func TestFieldInitialize(t *testing.T) {
	f := newTestField(1, nil)
	ps := f.Platforms()

	start := ps[0]
	want := Platform{X: -14, Width: 15, Height: 4, Scored: true}
	if start != want {
		t.Errorf("start platform = %+v, want %+v", start, want)
	}
	if len(ps) < 2 {
		t.Fatalf("Len() = %d, want at least 2", len(ps))
	}
	if !approx(ps[1].X, start.Right()) {
		t.Errorf("first generated X = %v, want %v (abutting start)", ps[1].X, start.Right())
	}
	if f.last().Right() < 40 {
		t.Errorf("coverage ends at %v, want >= view width 40", f.last().Right())
	}
}

func TestFieldGenerationRanges(t *testing.T) {
	cfg := config.DefaultHopConfig().Field
	for seed := int64(0); seed < 20; seed++ {
		f := newTestField(seed, nil)
		f.Advance(500, cfg.ViewWidth)
		ps := f.Platforms()

		for i := 1; i < len(ps); i++ {
			p := ps[i]
			if p.Width < cfg.MinWidth || p.Width >= cfg.MaxWidth {
				t.Fatalf("seed %d: width %v outside [%v, %v)", seed, p.Width, cfg.MinWidth, cfg.MaxWidth)
			}
			minH := cfg.BaseHeight + cfg.HeightJitterMin
			maxH := cfg.BaseHeight + cfg.HeightJitterMax
			if p.Height < minH || p.Height >= maxH {
				t.Fatalf("seed %d: height %v outside [%v, %v)", seed, p.Height, minH, maxH)
			}
			if p.Scored {
				t.Fatalf("seed %d: generated platform %d already scored", seed, i)
			}
			if p.HasHazard && (p.HazardOffset < hazardInset || p.HazardOffset > p.Width-hazardInset) {
				t.Fatalf("seed %d: hazard offset %v outside platform of width %v", seed, p.HazardOffset, p.Width)
			}

			prev := ps[i-1]
			gap := p.X - prev.Right()
			if gap < 0 {
				t.Fatalf("seed %d: platform %d overlaps previous (gap %v)", seed, i, gap)
			}
			if gap > cfg.MaxGap {
				t.Fatalf("seed %d: gap %v exceeds max %v", seed, gap, cfg.MaxGap)
			}
		}
	}
}

func TestFieldHazardProbability(t *testing.T) {
	tests := []struct {
		name string
		prob float64
		want bool
	}{
		{"never", 0, false},
		{"always", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(7, func(c *config.HopField) { c.HazardProbability = tt.prob })
			f.Advance(300, 40)
			for i, p := range f.Platforms() {
				if p.Scored {
					continue // start platform
				}
				if p.HasHazard != tt.want {
					t.Fatalf("platform %d HasHazard = %v, want %v", i, p.HasHazard, tt.want)
				}
			}
		})
	}
}

func TestFieldDeterministicWithSeed(t *testing.T) {
	a := newTestField(99, nil)
	b := newTestField(99, nil)
	a.Advance(200, 40)
	b.Advance(200, 40)

	if !reflect.DeepEqual(a.Platforms(), b.Platforms()) {
		t.Error("fields with the same seed differ")
	}

	c := newTestField(100, nil)
	c.Advance(200, 40)
	if reflect.DeepEqual(a.Platforms(), c.Platforms()) {
		t.Error("fields with different seeds are identical")
	}
}

func TestFieldAdvanceKeepsCoverageAndBoundsMemory(t *testing.T) {
	cfg := config.DefaultHopConfig().Field
	f := newTestField(3, nil)
	margin := cfg.EffectiveEvictMargin()
	maxLen := 0

	for x := -8.0; x < 2000; x += 0.25 {
		f.Advance(x, cfg.ViewWidth)
		ps := f.Platforms()

		if f.last().Right() < x+cfg.ViewWidth {
			t.Fatalf("x=%v: coverage ends at %v", x, f.last().Right())
		}
		if len(ps) > 1 && ps[0].Right() < x-margin {
			t.Fatalf("x=%v: stale platform ending at %v kept", x, ps[0].Right())
		}
		for i := 1; i < len(ps); i++ {
			if ps[i].X < ps[i-1].X {
				t.Fatalf("x=%v: platforms out of order at %d", x, i)
			}
		}
		if len(ps) > maxLen {
			maxLen = len(ps)
		}
	}

	// Window is evict margin + view width wide; platforms are at least MinWidth+MinGap apart.
	bound := int((margin+cfg.ViewWidth)/(cfg.MinWidth+cfg.MinGap)) + 5
	if maxLen > bound {
		t.Errorf("max platforms held = %d, want <= %d", maxLen, bound)
	}
}

func TestFieldAdvanceReportsCounts(t *testing.T) {
	f := newTestField(5, nil)
	before := f.Len()

	added, evicted := f.Advance(100, 40)
	if added == 0 {
		t.Error("Advance far ahead added nothing")
	}
	if evicted == 0 {
		t.Error("Advance far ahead evicted nothing")
	}
	if f.Len() != before+added-evicted {
		t.Errorf("Len() = %d, want %d", f.Len(), before+added-evicted)
	}
}

func TestFieldKeepsOnePlatform(t *testing.T) {
	f := newTestField(5, func(c *config.HopField) { c.EvictMargin = 1 })
	f.Advance(1000, -500)
	if f.Len() < 1 {
		t.Fatal("field evicted every platform")
	}
}

func TestFieldNoDegenerateExtents(t *testing.T) {
	cfg := config.DefaultHopConfig().Field
	cfg.MinWidth, cfg.MaxWidth = 0, 0
	cfg.BaseHeight, cfg.HeightJitterMin, cfg.HeightJitterMax = 0, -1, -1
	cfg.MinGap, cfg.MaxGap = 0, 0

	f := NewField(cfg, constSource(0))
	f.Initialize(10)
	for i, p := range f.Platforms() {
		if p.Width < minExtent || p.Height < minExtent {
			t.Fatalf("platform %d has degenerate extent %+v", i, p)
		}
		if i > 1 && p.X-f.Platforms()[i-1].Right() < minExtent-eps {
			t.Fatalf("platform %d has degenerate gap", i)
		}
	}
}

func TestFieldVisible(t *testing.T) {
	f := newTestField(11, nil)
	vis := f.Visible(-5, 5)
	if len(vis) == 0 {
		t.Fatal("Visible returned nothing around the start")
	}
	for _, p := range vis {
		if p.Right() < -5 || p.X > 5 {
			t.Errorf("platform [%v, %v] outside [-5, 5]", p.X, p.Right())
		}
	}

	vis[0].Scored = false
	if !f.Platforms()[0].Scored {
		t.Error("mutating a Visible copy changed the field")
	}
}

func TestFieldResetRestoresStart(t *testing.T) {
	f := newTestField(13, nil)
	f.Advance(400, 40)
	f.Reset(40)

	if f.Platforms()[0].X != -14 || !f.Platforms()[0].Scored {
		t.Errorf("after Reset first platform = %+v, want start platform", f.Platforms()[0])
	}
}
