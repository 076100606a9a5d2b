package config

import (
	_ "embed"
)

//go:embed defaults/hop.yaml
var defaultHopYAML []byte

// DefaultHopConfig returns the default configuration.
// It mirrors defaults/hop.yaml and is used when the embedded file cannot be parsed.
func DefaultHopConfig() HopConfig {
	return HopConfig{
		Input: HopInput{
			Ease: 0.08,
		},
		Physics: HopPhysics{
			ActivationThreshold: 0.01,
			AccelX:              0.03,
			GroundDrag:          0.65,
			AirDrag:             0.98,
			MaxSpeedX:           0.25,
			LiftK:               5,
			MaxLift:             0.35,
			DescentRate:         0.10,
			MinY:                -13,
			MaxY:                4,
		},
		Field: HopField{
			GroundLevel:  -4.5,
			ViewWidth:    40,
			EvictMargin:  40,
			RenderMargin: 20,
			Start: HopPlatform{
				X:      -14,
				Width:  15,
				Height: 4,
			},
			MinWidth:          3,
			MaxWidth:          6,
			BaseHeight:        3,
			HeightJitterMin:   -1,
			HeightJitterMax:   2,
			MinGap:            2,
			MaxGap:            3,
			HazardProbability: 0.4,
		},
		Collision: HopCollision{
			Tolerance:  0.5,
			HazardSize: 0.3,
			FallY:      -10,
		},
		Player: HopPlayer{
			Width:  1,
			Height: 1,
			SpawnX: -8,
			SpawnY: 5,
		},
		Scoring: HopScoring{
			Mode: ScoreLandings,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultHopYAML
}
