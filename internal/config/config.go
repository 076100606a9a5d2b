// Package config provides YAML-based game configuration loading and the
// variant presets for voicehop.
package config

import (
	"errors"
	"fmt"
)

// HopConfig contains all configuration for the voice-controlled platformer.
type HopConfig struct {
	Input     HopInput     `yaml:"input"`
	Physics   HopPhysics   `yaml:"physics"`
	Field     HopField     `yaml:"field"`
	Collision HopCollision `yaml:"collision"`
	Player    HopPlayer    `yaml:"player"`
	Scoring   HopScoring   `yaml:"scoring"`
}

// HopInput defines how raw loudness is smoothed.
type HopInput struct {
	Ease float64 `yaml:"ease"` // Low-pass factor per tick, (0, 1]
}

// HopPhysics defines the thrust and drag rules.
type HopPhysics struct {
	ActivationThreshold float64 `yaml:"activation_threshold"`
	AccelX              float64 `yaml:"accel_x"`
	GroundDrag          float64 `yaml:"ground_drag"`
	AirDrag             float64 `yaml:"air_drag"`
	MaxSpeedX           float64 `yaml:"max_speed_x"`
	LiftK               float64 `yaml:"lift_k"`
	MaxLift             float64 `yaml:"max_lift"`
	DescentRate         float64 `yaml:"descent_rate"` // Positive; applied downward
	MinY                float64 `yaml:"min_y"`
	MaxY                float64 `yaml:"max_y"`
}

// HopPlatform describes one fixed platform.
type HopPlatform struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// HopField defines platform generation and streaming.
type HopField struct {
	GroundLevel       float64     `yaml:"ground_level"`
	ViewWidth         float64     `yaml:"view_width"`
	EvictMargin       float64     `yaml:"evict_margin"` // 0 means same as view_width
	RenderMargin      float64     `yaml:"render_margin"`
	Start             HopPlatform `yaml:"start"`
	MinWidth          float64     `yaml:"min_width"`
	MaxWidth          float64     `yaml:"max_width"`
	BaseHeight        float64     `yaml:"base_height"`
	HeightJitterMin   float64     `yaml:"height_jitter_min"`
	HeightJitterMax   float64     `yaml:"height_jitter_max"`
	MinGap            float64     `yaml:"min_gap"`
	MaxGap            float64     `yaml:"max_gap"`
	HazardProbability float64     `yaml:"hazard_probability"`
}

// HopCollision defines contact tolerances and lethal zones.
type HopCollision struct {
	Tolerance  float64 `yaml:"tolerance"`
	HazardSize float64 `yaml:"hazard_size"`
	FallY      float64 `yaml:"fall_y"`
}

// HopPlayer defines the avatar box and respawn point.
type HopPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
}

// HopScoring selects the scoring rule.
type HopScoring struct {
	Mode ScoringMode `yaml:"mode"`
}

// ScoringMode names a scoring rule.
type ScoringMode string

const (
	// ScoreLandings awards one point per platform on its first landing.
	ScoreLandings ScoringMode = "landing"
	// ScoreDistance sets the score to the furthest distance travelled.
	ScoreDistance ScoringMode = "distance"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports settings the simulation cannot run with.
// Generation ranges are not checked here; the field clamps them.
func (c HopConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Input.Ease > 0 && c.Input.Ease <= 1, "input.ease must be in (0, 1], got %v", c.Input.Ease)
	check(c.Physics.MaxSpeedX > 0, "physics.max_speed_x must be positive, got %v", c.Physics.MaxSpeedX)
	check(c.Physics.MinY < c.Physics.MaxY, "physics.min_y (%v) must be below max_y (%v)", c.Physics.MinY, c.Physics.MaxY)
	check(c.Field.ViewWidth > 0, "field.view_width must be positive, got %v", c.Field.ViewWidth)
	check(c.Field.EffectiveEvictMargin() >= c.Field.ViewWidth,
		"field.evict_margin (%v) must not be below view_width (%v)", c.Field.EvictMargin, c.Field.ViewWidth)
	check(c.Field.Start.Width > 0, "field.start.width must be positive, got %v", c.Field.Start.Width)
	check(c.Field.HazardProbability >= 0 && c.Field.HazardProbability <= 1,
		"field.hazard_probability must be in [0, 1], got %v", c.Field.HazardProbability)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive, got %vx%v", c.Player.Width, c.Player.Height)
	check(c.Scoring.Mode == ScoreLandings || c.Scoring.Mode == ScoreDistance,
		"scoring.mode must be %q or %q, got %q", ScoreLandings, ScoreDistance, c.Scoring.Mode)

	return errors.Join(errs...)
}

// EffectiveEvictMargin returns the eviction distance behind the avatar.
func (f HopField) EffectiveEvictMargin() float64 {
	if f.EvictMargin > 0 {
		return f.EvictMargin
	}
	return f.ViewWidth
}
