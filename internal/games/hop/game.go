// Package hop implements a voice-controlled endless side-scroller.
// Loudness pushes the avatar right and lifts it, silence lets it sink, and
// platforms are streamed in ahead of it and evicted behind it.
package hop

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/voicehop/internal/config"
	"github.com/vovakirdan/voicehop/internal/core"
	"github.com/vovakirdan/voicehop/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Session to the registry.Game interface.
type Game struct {
	id      string
	title   string
	variant config.Variant
	cfg     config.HopConfig
	runtime core.RuntimeConfig
	session *Session
	cam     camera
	paused  bool
	best    int
}

// New creates a game instance for the given variant.
func New(variant config.Variant) *Game {
	g := &Game{
		id:      gameID(variant),
		title:   gameTitle(variant),
		variant: variant,
	}
	g.Reset(core.DefaultConfig())
	return g
}

// gameID returns the registry ID for a variant.
func gameID(v config.Variant) string {
	if v == config.VariantSpiky {
		return "hop"
	}
	return "hop_" + string(v)
}

func gameDescription(v config.Variant) string {
	switch v {
	case config.VariantCalm:
		return "No spikes, stronger lift, faster sink"
	case config.VariantMarathon:
		return "Spikes on, scored by distance travelled"
	default:
		return "Spikes on, one point per new platform"
	}
}

func gameTitle(v config.Variant) string {
	switch v {
	case config.VariantCalm:
		return "Voice Hop (calm)"
	case config.VariantMarathon:
		return "Voice Hop (marathon)"
	default:
		return "Voice Hop"
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Config returns the configuration the current session runs with.
func (g *Game) Config() config.HopConfig {
	return g.cfg
}

// Reset initializes or restarts the game at the splash screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadHop(configPath)
	if err != nil {
		cfg = config.DefaultHopConfig()
	}
	config.ApplyVariant(&cfg, g.variant)

	g.cam = newCamera(runtime.ScreenW, runtime.ScreenH, cfg)

	// Stream and draw at least as far as the screen shows
	half := g.cam.halfWidthUnits()
	cfg.Field.RenderMargin = math.Max(cfg.Field.RenderMargin, half+1)
	cfg.Field.ViewWidth = math.Max(cfg.Field.ViewWidth, half+cfg.Field.MaxGap+1)
	cfg.Field.EvictMargin = math.Max(cfg.Field.EffectiveEvictMargin(), cfg.Field.ViewWidth)
	g.cfg = cfg

	g.paused = false
	g.session = NewSession(cfg, rand.New(rand.NewSource(runtime.Seed)))
	g.session.SetBest(g.best)
}

// SetBest seeds the best score shown in the HUD.
func (g *Game) SetBest(best int) {
	if best > g.best {
		g.best = best
	}
	g.session.SetBest(best)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []core.Event

	if g.session.Phase() == PhaseSplash {
		if (in.Has(core.ActionConfirm) || in.Has(core.ActionShout)) && g.session.Start() {
			events = append(events, core.Event{Kind: core.EventStarted})
		}
		return core.StepResult{State: g.State(), Events: events}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	res := g.session.Tick(in.Level)
	if res.Scored && g.cfg.Scoring.Mode == config.ScoreLandings && res.Run == nil {
		events = append(events, core.Event{Kind: core.EventScored, Score: res.Score})
	}
	if res.Run != nil {
		events = append(events, core.Event{
			Kind:     core.EventDied,
			Score:    res.Run.Score,
			Distance: res.Run.Distance,
			Ticks:    res.Run.Ticks,
			Cause:    res.Run.Cause.String(),
		})
	}
	g.best = g.session.Best()

	return core.StepResult{State: g.State(), Events: events}
}

// Frame returns the renderer feed for the current state.
func (g *Game) Frame() Frame {
	return g.session.Frame()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:   g.session.Score(),
		Best:    g.session.Best(),
		Phase:   g.session.Phase().String(),
		Playing: g.session.Phase() == PhasePlaying,
		Paused:  g.paused,
	}
}

// Register the variants with the registry
func init() {
	for _, v := range config.Variants() {
		info := registry.GameInfo{
			ID:          gameID(v),
			Title:       gameTitle(v),
			Description: gameDescription(v),
		}
		registry.Register(info, func() registry.Game {
			return New(v)
		})
	}
}
