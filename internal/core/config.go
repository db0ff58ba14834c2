package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Events lists notable things that happened during the tick, oldest first.
	Events []Event
}

// EventKind classifies a StepResult event.
type EventKind int

const (
	EventSpawn EventKind = iota
	EventLock
	EventGameOver
)

// Event is a notable simulation occurrence the host may log or react to.
type Event struct {
	Kind  EventKind
	Piece string // Piece name for spawn/lock events
	Lines int    // Rows cleared by a lock
	Score int    // Points awarded by a lock
}

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventLock:
		return "lock"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
