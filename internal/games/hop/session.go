package hop

import (
	"math"

	"github.com/vovakirdan/voicehop/internal/config"
)

// RunSummary describes a run that just ended in death.
type RunSummary struct {
	Score    int
	Distance float64
	Ticks    int
	Cause    DeathCause
}

// TickResult is what one Session.Tick observed.
type TickResult struct {
	Phase    Phase
	Grounded bool
	Scored   bool // A platform was landed on for the first time
	Score    int  // Score after the tick (0 after a respawn)
	Died     DeathCause
	Run      *RunSummary // Set when Died != DeathNone
	Added    int         // Platforms streamed in
	Evicted  int         // Platforms dropped behind the avatar
}

// Session is the top-level state machine: Splash -> Playing, with deaths
// respawning inside the tick that detected them.
type Session struct {
	cfg      config.HopConfig
	world    WorldState
	physics  *Physics
	resolver *Resolver
	phase    Phase
	score    int
	best     int
	maxX     float64
	ticks    int
	runTicks int
	deaths   int
}

// NewSession creates a session in the Splash phase with a freshly seeded field.
func NewSession(cfg config.HopConfig, rng Source) *Session {
	s := &Session{
		cfg:      cfg,
		physics:  NewPhysics(cfg.Physics),
		resolver: NewResolver(cfg.Collision, cfg.Field.GroundLevel, cfg.Player),
		world: WorldState{
			Field:    NewField(cfg.Field, rng),
			Smoother: NewSmoother(cfg.Input.Ease),
		},
	}
	s.Reset()
	return s
}

// Reset returns the session to the Splash phase with a new field and a silent signal.
// The best score survives.
func (s *Session) Reset() {
	s.phase = PhaseSplash
	s.ticks = 0
	s.deaths = 0
	s.world.Smoother.Reset()
	s.respawn()
}

// Start handles the start trigger. It returns true if the session left Splash.
func (s *Session) Start() bool {
	if s.phase != PhaseSplash {
		return false
	}
	s.phase = PhasePlaying
	return true
}

// Tick runs one simulation step with a raw loudness sample.
// Outside the Playing phase it does nothing.
func (s *Session) Tick(raw float64) TickResult {
	if s.phase != PhasePlaying {
		return TickResult{Phase: s.phase, Score: s.score}
	}
	s.ticks++
	s.runTicks++

	av := &s.world.Avatar
	control := s.world.Smoother.Update(raw)
	s.physics.Step(av, control)
	contact := s.resolver.Resolve(av, s.world.Field.Platforms())

	res := TickResult{Grounded: contact.Grounded, Scored: contact.Scored != nil}

	if contact.Died != DeathNone {
		s.phase = PhaseDead
		res.Died = contact.Died
		res.Run = &RunSummary{
			Score:    s.score,
			Distance: s.distance(),
			Ticks:    s.runTicks,
			Cause:    contact.Died,
		}
		if s.score > s.best {
			s.best = s.score
		}
		s.deaths++
		s.respawn()
		s.phase = PhasePlaying
		res.Phase = s.phase
		res.Score = s.score
		return res
	}

	if av.X > s.maxX {
		s.maxX = av.X
	}
	switch s.cfg.Scoring.Mode {
	case config.ScoreDistance:
		if d := int(math.Floor(s.distance())); d > s.score {
			s.score = d
		}
	default:
		if contact.Scored != nil {
			s.score++
		}
	}
	if s.score > s.best {
		s.best = s.score
	}

	res.Added, res.Evicted = s.world.Field.Advance(av.X, s.cfg.Field.ViewWidth)
	res.Phase = s.phase
	res.Score = s.score
	return res
}

// respawn puts the avatar back at the spawn point and rebuilds the field.
func (s *Session) respawn() {
	s.world.Avatar = Avatar{X: s.cfg.Player.SpawnX, Y: s.cfg.Player.SpawnY}
	s.score = 0
	s.maxX = s.cfg.Player.SpawnX
	s.runTicks = 0
	s.world.Field.Reset(s.cfg.Field.ViewWidth)
}

// distance returns how far right of the spawn point the run has reached.
func (s *Session) distance() float64 {
	return math.Max(s.maxX-s.cfg.Player.SpawnX, 0)
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current run's score.
func (s *Session) Score() int { return s.score }

// Best returns the best score reached in this process.
func (s *Session) Best() int { return s.best }

// SetBest seeds the best score, e.g. from the host's run log.
func (s *Session) SetBest(best int) {
	if best > s.best {
		s.best = best
	}
}

// Deaths returns how many runs have ended since the last Reset.
func (s *Session) Deaths() int { return s.deaths }

// Ticks returns the number of Playing ticks since the last Reset.
func (s *Session) Ticks() int { return s.ticks }

// Avatar returns a copy of the avatar state.
func (s *Session) Avatar() Avatar { return s.world.Avatar }

// Level returns the current smoothed control signal.
func (s *Session) Level() float64 { return s.world.Smoother.Value() }

// Field returns the platform field. Callers must treat it as read-only.
func (s *Session) Field() *Field { return s.world.Field }
