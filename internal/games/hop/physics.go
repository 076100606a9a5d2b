package hop

import (
	"math"

	"github.com/vovakirdan/voicehop/internal/config"
	"github.com/vovakirdan/voicehop/internal/core"
)

// Delta is the displacement proposed by one physics step.
type Delta struct {
	DX, DY float64
}

// Physics integrates the avatar from the control signal.
// Vertical speed is set directly from loudness rather than integrated from gravity.
type Physics struct {
	cfg config.HopPhysics
}

// NewPhysics creates a physics body with the given tuning.
func NewPhysics(cfg config.HopPhysics) *Physics {
	return &Physics{cfg: cfg}
}

// Step moves the avatar for one tick and returns the applied displacement.
// av.OnGround is read as last tick's contact and cleared for collision to set again.
func (p *Physics) Step(av *Avatar, control float64) Delta {
	startX, startY := av.X, av.Y
	active := control > p.cfg.ActivationThreshold

	// Horizontal
	if active {
		av.VelocityX += control * p.cfg.AccelX
	} else if av.OnGround {
		av.VelocityX *= p.cfg.GroundDrag
	} else {
		av.VelocityX *= p.cfg.AirDrag
	}
	av.VelocityX = core.ClampF(av.VelocityX, -p.cfg.MaxSpeedX, p.cfg.MaxSpeedX)
	av.X += av.VelocityX

	// Vertical
	if active {
		av.VelocityY = math.Min(control*p.cfg.LiftK, p.cfg.MaxLift)
	} else {
		av.VelocityY = -p.cfg.DescentRate
	}
	av.Y = core.ClampF(av.Y+av.VelocityY, p.cfg.MinY, p.cfg.MaxY)

	av.OnGround = false

	return Delta{DX: av.X - startX, DY: av.Y - startY}
}
