package config

import "fmt"

// Variant is a named rule set layered over the loaded configuration.
type Variant string

const (
	// VariantSpiky is the default: hazards on, gentle thrust, one point per landing.
	VariantSpiky Variant = "spiky"
	// VariantCalm has no hazards, narrower platforms, stronger lift and faster descent.
	VariantCalm Variant = "calm"
	// VariantMarathon keeps hazards but scores by distance travelled.
	VariantMarathon Variant = "marathon"
)

// Variants lists every preset in display order.
func Variants() []Variant {
	return []Variant{VariantSpiky, VariantCalm, VariantMarathon}
}

// ParseVariant converts a CLI or registry name to a Variant.
// The empty string selects VariantSpiky.
func ParseVariant(name string) (Variant, error) {
	switch Variant(name) {
	case "", VariantSpiky:
		return VariantSpiky, nil
	case VariantCalm:
		return VariantCalm, nil
	case VariantMarathon:
		return VariantMarathon, nil
	default:
		return "", fmt.Errorf("config: unknown variant %q", name)
	}
}

// ApplyVariant modifies the config based on a variant preset.
// VariantSpiky leaves the loaded values untouched. VariantCalm only touches
// field and physics values, so a configured scoring.mode survives it.
// VariantMarathon always scores by distance.
func ApplyVariant(cfg *HopConfig, v Variant) {
	switch v {
	case VariantCalm:
		cfg.Field.HazardProbability = 0
		cfg.Field.MinWidth = 2
		cfg.Field.MaxWidth = 5
		cfg.Physics.AccelX = 0.05
		cfg.Physics.LiftK = 10
		cfg.Physics.DescentRate = 0.15
	case VariantMarathon:
		cfg.Physics.AccelX = 0.05
		cfg.Scoring.Mode = ScoreDistance
	}
}
