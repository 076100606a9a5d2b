package hop

import "github.com/vovakirdan/voicehop/internal/core"

// Platform is a solid block resting on the shared ground level.
// Only Scored changes after creation.
type Platform struct {
	X            float64 // Left edge
	Width        float64
	Height       float64 // Top surface is at groundLevel + Height
	HasHazard    bool
	HazardOffset float64 // Distance from the left edge to the hazard centre
	Scored       bool    // Set on the first landing
}

// Right returns the x-coordinate of the right edge.
func (p Platform) Right() float64 {
	return p.X + p.Width
}

// CenterX returns the horizontal centre.
func (p Platform) CenterX() float64 {
	return p.X + p.Width/2
}

// Top returns the height of the top surface.
func (p Platform) Top(groundLevel float64) float64 {
	return groundLevel + p.Height
}

// Box returns the platform's collision box.
func (p Platform) Box(groundLevel float64) core.Box {
	return core.NewBox(p.X, groundLevel, p.Width, p.Height)
}

// HazardX returns the horizontal centre of the hazard.
func (p Platform) HazardX() float64 {
	return p.CenterX() + p.HazardOffset - p.Width/2
}

// HazardBox returns the hazard's lethal box sitting on the top surface.
func (p Platform) HazardBox(groundLevel, size float64) core.Box {
	return core.NewBox(p.HazardX()-size/2, p.Top(groundLevel), size, size)
}

// Avatar is the single moving body. Its box is centred on (X, Y).
type Avatar struct {
	X, Y      float64
	VelocityX float64
	VelocityY float64
	OnGround  bool
}

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseSplash Phase = iota
	PhasePlaying
	PhaseDead
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSplash:
		return "splash"
	case PhasePlaying:
		return "playing"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// DeathCause explains why a run ended.
type DeathCause int

const (
	DeathNone DeathCause = iota
	DeathHazard
	DeathFallen
)

// String returns a human-readable name for the cause.
func (c DeathCause) String() string {
	switch c {
	case DeathHazard:
		return "hazard"
	case DeathFallen:
		return "fallen"
	default:
		return "none"
	}
}

// WorldState is everything the tick pipeline mutates.
// It is owned by a Session; components receive it by pointer.
type WorldState struct {
	Avatar   Avatar
	Field    *Field
	Smoother *Smoother
}
