package hop

import (
	"github.com/vovakirdan/voicehop/internal/config"
	"github.com/vovakirdan/voicehop/internal/core"
)

// Contact is the outcome of resolving the avatar against the field for one tick.
type Contact struct {
	Grounded bool
	Scored   *Platform // Copy of the platform landed on for the first time, or nil
	Died     DeathCause
}

// Resolver corrects the avatar against platforms and detects deaths.
// Contacts use a fixed tolerance band instead of swept volumes, so a body
// moving further than the tolerance in one tick can pass through an edge.
type Resolver struct {
	coll        config.HopCollision
	groundLevel float64
	width       float64
	height      float64
}

// NewResolver creates a resolver for an avatar of the given size.
func NewResolver(coll config.HopCollision, groundLevel float64, player config.HopPlayer) *Resolver {
	return &Resolver{
		coll:        coll,
		groundLevel: groundLevel,
		width:       player.Width,
		height:      player.Height,
	}
}

// body returns the avatar's box at its current position.
func (r *Resolver) body(av *Avatar) core.Box {
	return core.CenteredBox(av.X, av.Y, r.width, r.height)
}

// Resolve walks platforms in order, snapping and scoring the avatar in place.
// A landing flips that platform's Scored flag and ends the walk after its hazard check.
func (r *Resolver) Resolve(av *Avatar, platforms []Platform) Contact {
	var c Contact
	hitHazard := false
	tol := r.coll.Tolerance

	for i := range platforms {
		p := &platforms[i]
		pb := p.Box(r.groundLevel)
		top := pb.Top()
		landed := false

		if body := r.body(av); body.Intersects(pb) {
			switch {
			case av.VelocityY < 0 && body.Bottom() <= top && body.Bottom() >= top-tol:
				av.Y = top + r.height/2
				av.VelocityY = 0
				av.OnGround = true
				c.Grounded = true
				landed = true
				if !p.Scored {
					p.Scored = true
					scored := *p
					c.Scored = &scored
				}
			case av.VelocityX > 0 && body.Right() >= pb.Left() && body.Right() <= pb.Left()+tol:
				av.X = pb.Left() - r.width/2
				av.VelocityX = 0
			case av.VelocityX < 0 && body.Left() <= pb.Right() && body.Left() >= pb.Right()-tol:
				av.X = pb.Right() + r.width/2
				av.VelocityX = 0
			}
		}

		if p.HasHazard && r.body(av).Intersects(p.HazardBox(r.groundLevel, r.coll.HazardSize)) {
			hitHazard = true
		}

		if landed {
			break
		}
	}

	switch {
	case hitHazard:
		c.Died = DeathHazard
	case av.Y < r.coll.FallY:
		c.Died = DeathFallen
	}
	return c
}
