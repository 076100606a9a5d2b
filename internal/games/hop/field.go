package hop

import (
	"math"

	"github.com/vovakirdan/voicehop/internal/config"
)

// minExtent is the smallest width, height or gap the generator produces.
const minExtent = 0.1

// hazardInset keeps a hazard centre this far from the platform's left edge.
const hazardInset = 0.1

// Source is the random number source used for generation.
// *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Field owns the platforms, sorted by X, in a sliding window around the avatar.
type Field struct {
	cfg       config.HopField
	rng       Source
	platforms []Platform
}

// NewField creates an empty field. Call Initialize before use.
func NewField(cfg config.HopField, rng Source) *Field {
	return &Field{
		cfg:       cfg,
		rng:       rng,
		platforms: make([]Platform, 0, 32),
	}
}

// Initialize seeds the start platform and fills coverage up to viewWidth.
// The start platform is pre-scored so spawning on it awards nothing.
func (f *Field) Initialize(viewWidth float64) {
	f.platforms = f.platforms[:0]
	start := f.cfg.Start
	f.platforms = append(f.platforms, Platform{
		X:      start.X,
		Width:  math.Max(start.Width, minExtent),
		Height: math.Max(start.Height, minExtent),
		Scored: true,
	})

	// First generated platform abuts the start platform.
	f.platforms = append(f.platforms, f.generate(f.last().Right()))
	for f.last().Right() < viewWidth {
		f.appendNext()
	}
}

// Reset clears all platforms and re-initializes the field.
func (f *Field) Reset(viewWidth float64) {
	f.Initialize(viewWidth)
}

// Advance streams platforms in ahead of avatarX and evicts those left behind.
// It returns how many platforms were added and removed.
func (f *Field) Advance(avatarX, viewWidth float64) (added, evicted int) {
	for f.last().Right() < avatarX+viewWidth {
		f.appendNext()
		added++
	}

	cutoff := avatarX - f.cfg.EffectiveEvictMargin()
	for evicted < len(f.platforms)-1 && f.platforms[evicted].Right() < cutoff {
		evicted++
	}
	if evicted > 0 {
		f.platforms = append(f.platforms[:0], f.platforms[evicted:]...)
	}
	return added, evicted
}

// Platforms returns the live platform slice in ascending X order.
// Callers other than the session tick must not modify it.
func (f *Field) Platforms() []Platform {
	return f.platforms
}

// Len returns the number of platforms currently held.
func (f *Field) Len() int {
	return len(f.platforms)
}

// Visible returns copies of the platforms whose span touches [lo, hi].
func (f *Field) Visible(lo, hi float64) []Platform {
	out := make([]Platform, 0, len(f.platforms))
	for _, p := range f.platforms {
		if p.Right() < lo {
			continue
		}
		if p.X > hi {
			break
		}
		out = append(out, p)
	}
	return out
}

func (f *Field) last() Platform {
	return f.platforms[len(f.platforms)-1]
}

// appendNext chains a new platform off the last one's right edge.
func (f *Field) appendNext() {
	gap := math.Max(f.between(f.cfg.MinGap, f.cfg.MaxGap), minExtent)
	f.platforms = append(f.platforms, f.generate(f.last().Right()+gap))
}

// generate creates a random platform with its left edge at x.
func (f *Field) generate(x float64) Platform {
	width := math.Max(f.between(f.cfg.MinWidth, f.cfg.MaxWidth), minExtent)
	height := f.cfg.BaseHeight + f.between(f.cfg.HeightJitterMin, f.cfg.HeightJitterMax)
	height = math.Max(height, minExtent)

	p := Platform{X: x, Width: width, Height: height}
	if f.rng.Float64() < f.cfg.HazardProbability {
		p.HasHazard = true
		p.HazardOffset = f.between(hazardInset, math.Max(width-hazardInset, hazardInset))
	}
	return p
}

// between draws uniformly from [lo, hi); swapped bounds are tolerated.
func (f *Field) between(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + f.rng.Float64()*(hi-lo)
}
