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

// GameState represents the current state of a game as seen by the platform.
type GameState struct {
	Level    int  // Current level (1-indexed)
	Started  bool // Whether the current level has been started by the player
	Frozen   bool // Whether a timed message is holding the simulation
	GameOver bool // Whether the game has ended for good
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventLevelStart EventKind = iota
	EventBorderHit
	EventFinishRebound
	EventCrash
	EventLevelComplete
	EventWin
	EventRestart
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLevelStart:
		return "level_start"
	case EventBorderHit:
		return "border_hit"
	case EventFinishRebound:
		return "finish_rebound"
	case EventCrash:
		return "crash"
	case EventLevelComplete:
		return "level_complete"
	case EventWin:
		return "win"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is emitted by a game step. Level is the level the event refers to.
type Event struct {
	Kind  EventKind
	Level int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// RunStats summarises a play session.
type RunStats struct {
	Ticks       uint64
	BestLevel   int
	Completions int // Levels completed
	Crashes     int
	Wins        int
}
