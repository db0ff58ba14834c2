package blocks

// StateType names the simulation phase.
type StateType string

const (
	StateSpawning StateType = "spawning"
	StateFalling  StateType = "falling"
	StatePaused   StateType = "paused"
	StateGameOver StateType = "game_over"
)

// ActiveSnapshot describes the falling piece.
type ActiveSnapshot struct {
	Kind     int
	Name     string
	Rotation int
	X, Y     float64
}

// Snapshot is a read-only copy of the simulation state for rendering,
// determinism tests and replay checks.
type Snapshot struct {
	Grid      []uint8 // Width*Height fill values in Index order
	Score     int
	Paused    bool
	GameOver  bool
	Tick      uint64
	Lines     int
	Pieces    int
	FallTimer int
	Active    *ActiveSnapshot // nil between lock and the next spawn
	State     StateType
}

// Snapshot returns the current simulation state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Grid:      s.grid.Cells(),
		Score:     s.score,
		Paused:    s.paused,
		GameOver:  s.gameOver,
		Tick:      s.tick,
		Lines:     s.lines,
		Pieces:    s.pieces,
		FallTimer: s.fallTimer,
	}

	if p := s.active; p != nil {
		snap.Active = &ActiveSnapshot{
			Kind:     p.kind,
			Name:     s.catalog.Piece(p.kind).Name,
			Rotation: p.rot,
			X:        p.x,
			Y:        p.y,
		}
	}

	switch {
	case s.gameOver:
		snap.State = StateGameOver
	case s.paused:
		snap.State = StatePaused
	case s.active == nil:
		snap.State = StateSpawning
	default:
		snap.State = StateFalling
	}
	return snap
}

// Cell returns the fill value at (x, y) from the snapshot grid.
func (s Snapshot) Cell(x, y int) uint8 {
	return s.Grid[Index(x, y)]
}
