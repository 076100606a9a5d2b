package hop

import (
	"testing"

	"github.com/vovakirdan/voicehop/internal/config"
)

func defaultResolver() *Resolver {
	cfg := config.DefaultHopConfig()
	return NewResolver(cfg.Collision, cfg.Field.GroundLevel, cfg.Player)
}

// Top surface at -0.5 with the default ground level of -4.5.
func wideBlock() Platform {
	return Platform{X: -2, Width: 10, Height: 4}
}

func TestResolveLanding(t *testing.T) {
	r := defaultResolver()
	platforms := []Platform{wideBlock()}
	av := Avatar{X: 0, Y: -0.1, VelocityY: -0.2}

	c := r.Resolve(&av, platforms)

	if !approx(av.Y, 0) {
		t.Errorf("Y = %v, want 0 (bottom resting on top -0.5)", av.Y)
	}
	if av.VelocityY != 0 {
		t.Errorf("VelocityY = %v, want 0", av.VelocityY)
	}
	if !c.Grounded || !av.OnGround {
		t.Errorf("Grounded = %v, OnGround = %v, want both true", c.Grounded, av.OnGround)
	}
	if c.Scored == nil {
		t.Fatal("Scored = nil on first landing")
	}
	if !platforms[0].Scored {
		t.Error("platform Scored flag not set in place")
	}
	if c.Died != DeathNone {
		t.Errorf("Died = %v, want none", c.Died)
	}
}

func TestResolveScoresOnce(t *testing.T) {
	r := defaultResolver()
	platforms := []Platform{wideBlock()}
	scored := 0

	for i := 0; i < 10; i++ {
		av := Avatar{X: float64(i) * 0.3, Y: -0.1, VelocityY: -0.1}
		c := r.Resolve(&av, platforms)
		if !c.Grounded {
			t.Fatalf("landing %d not grounded", i)
		}
		if c.Scored != nil {
			scored++
		}
	}
	if scored != 1 {
		t.Errorf("scored %d times, want 1", scored)
	}
}

func TestResolveNoLanding(t *testing.T) {
	tests := []struct {
		name string
		av   Avatar
	}{
		{"deep overlap outside tolerance", Avatar{X: 0, Y: -3.4, VelocityY: -0.2}},
		{"moving up", Avatar{X: 0, Y: -0.1, VelocityY: 0.2}},
		{"hovering above", Avatar{X: 0, Y: 0.2, VelocityY: -0.1}},
		{"beside the block", Avatar{X: -3, Y: -0.1, VelocityY: -0.1}},
	}

	r := defaultResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platforms := []Platform{wideBlock()}
			av := tt.av
			c := r.Resolve(&av, platforms)

			if c.Grounded || c.Scored != nil || platforms[0].Scored {
				t.Errorf("unexpected landing: %+v", c)
			}
			if av.Y != tt.av.Y {
				t.Errorf("Y moved from %v to %v", tt.av.Y, av.Y)
			}
		})
	}
}

func TestResolveSideContacts(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		av       Avatar
		wantX    float64
	}{
		{
			name:     "moving right into left face",
			platform: Platform{X: 2, Width: 4, Height: 4},
			av:       Avatar{X: 1.6, Y: -2, VelocityX: 0.2, VelocityY: -0.1},
			wantX:    1.5,
		},
		{
			name:     "moving left into right face",
			platform: Platform{X: -6, Width: 4, Height: 4},
			av:       Avatar{X: -1.6, Y: -2, VelocityX: -0.2, VelocityY: -0.1},
			wantX:    -1.5,
		},
	}

	r := defaultResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av := tt.av
			c := r.Resolve(&av, []Platform{tt.platform})

			if !approx(av.X, tt.wantX) {
				t.Errorf("X = %v, want %v", av.X, tt.wantX)
			}
			if av.VelocityX != 0 {
				t.Errorf("VelocityX = %v, want 0", av.VelocityX)
			}
			if c.Grounded {
				t.Error("side contact reported grounded")
			}
		})
	}
}

func TestResolveHazard(t *testing.T) {
	r := defaultResolver()
	p := wideBlock()
	p.HasHazard = true
	p.HazardOffset = 2 // centre at x=0

	av := Avatar{X: 0, Y: -0.1, VelocityY: -0.2}
	c := r.Resolve(&av, []Platform{p})
	if c.Died != DeathHazard {
		t.Errorf("Died = %v, want hazard", c.Died)
	}

	// Same platform, avatar well clear of the spike
	av = Avatar{X: 5, Y: -0.1, VelocityY: -0.2}
	c = r.Resolve(&av, []Platform{p})
	if c.Died != DeathNone {
		t.Errorf("Died = %v away from the spike, want none", c.Died)
	}
}

func TestResolveFall(t *testing.T) {
	r := defaultResolver()
	av := Avatar{X: 0, Y: -10.5, VelocityY: -0.1}

	c := r.Resolve(&av, []Platform{wideBlock()})
	if c.Died != DeathFallen {
		t.Errorf("Died = %v, want fallen", c.Died)
	}

	av = Avatar{X: 0, Y: -10, VelocityY: -0.1}
	c = r.Resolve(&av, nil)
	if c.Died != DeathNone {
		t.Errorf("Died = %v exactly at the fall line, want none", c.Died)
	}
}

func TestResolveHazardBeatsFall(t *testing.T) {
	cfg := config.DefaultHopConfig()
	cfg.Collision.FallY = 1
	r := NewResolver(cfg.Collision, cfg.Field.GroundLevel, cfg.Player)

	p := wideBlock()
	p.HasHazard = true
	p.HazardOffset = 2

	av := Avatar{X: 0, Y: -0.1, VelocityY: -0.2}
	c := r.Resolve(&av, []Platform{p})
	if c.Died != DeathHazard {
		t.Errorf("Died = %v, want hazard", c.Died)
	}
}

func TestResolveLandingEndsScan(t *testing.T) {
	r := defaultResolver()
	platforms := []Platform{
		{X: -2, Width: 2.3, Height: 4},
		{X: 0.3, Width: 3, Height: 4},
	}
	av := Avatar{X: 0, Y: -0.1, VelocityY: -0.2}

	r.Resolve(&av, platforms)
	if !platforms[0].Scored {
		t.Error("first platform not scored")
	}
	if platforms[1].Scored {
		t.Error("second platform scored after the first landing")
	}
}
