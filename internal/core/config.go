package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score   int    // Current score
	Best    int    // Best score seen this process
	Phase   string // Lifecycle phase name ("splash", "playing")
	Playing bool   // Whether ticks are being simulated
	Paused  bool   // Whether the game is paused
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventNone EventKind = iota
	EventStarted
	EventScored
	EventDied
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventScored:
		return "scored"
	case EventDied:
		return "died"
	default:
		return "none"
	}
}

// Event is a single tick event reported to the platform.
type Event struct {
	Kind     EventKind
	Score    int     // Score after a landing, or the final score of a finished run
	Distance float64 // Horizontal distance of a finished run
	Ticks    int     // Ticks the finished run lasted
	Cause    string  // Death cause for EventDied
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
