package blocks

import (
	"math/rand"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Rule constants.
const (
	SpawnX       = 3
	SpawnY       = 17
	FallInterval = 30   // ticks between forced downward steps
	MaxClearRows = 4    // rows a single lock can clear
	NudgeStep    = 0.25 // horizontal cells moved per held tick
)

// activePiece is the falling piece. Position is fractional so horizontal
// nudges accumulate before crossing a cell boundary.
type activePiece struct {
	kind   int
	frames []Frame
	rot    int
	x, y   float64
}

func (p *activePiece) frame() Frame {
	return p.frames[p.rot]
}

func (p *activePiece) fill() uint8 {
	return uint8(p.kind + 1)
}

// Simulation owns the playfield and advances it one tick at a time.
// It is not safe for concurrent use; the host loop is its only caller.
type Simulation struct {
	grid    Grid
	catalog *Catalog
	rng     *rand.Rand

	active    *activePiece
	fallTimer int

	score    int
	paused   bool
	gameOver bool
	redraw   bool

	tick   uint64
	lines  int
	pieces int

	events []core.Event
}

// NewSimulation creates a simulation over the given catalog.
// A nil catalog selects DefaultCatalog.
func NewSimulation(catalog *Catalog, seed int64) *Simulation {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Simulation{
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Catalog returns the piece catalog in use.
func (s *Simulation) Catalog() *Catalog {
	return s.catalog
}

// Reset clears the playfield, score and flags. The RNG stream continues.
func (s *Simulation) Reset() {
	s.grid.Clear()
	s.active = nil
	s.fallTimer = 0
	s.score = 0
	s.paused = false
	s.gameOver = false
	s.redraw = true
	s.tick = 0
	s.lines = 0
	s.pieces = 0
	s.events = nil
}

// Reseed replaces the piece selection RNG.
func (s *Simulation) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Tick advances the simulation by one fixed step.
func (s *Simulation) Tick(in core.InputFrame) {
	s.events = s.events[:0]

	if in.JustPressed(core.ActionPause) && !s.gameOver {
		s.paused = !s.paused
		s.redraw = true
	}
	if s.paused || s.gameOver {
		return
	}
	s.tick++

	if s.active == nil {
		if !s.Spawn(s.rng.Intn(s.catalog.TypeCount())) {
			return
		}
	}

	s.applyInput(in)

	s.fallTimer--
	if s.fallTimer > 0 {
		return
	}
	if s.Move(0, -1) {
		s.fallTimer = FallInterval
		return
	}
	s.lock()
}

// inputHandlers dispatches held actions in enum order.
var inputHandlers = []struct {
	action core.Action
	handle func(s *Simulation, st core.KeyState)
}{
	{core.ActionRotateLeft, func(s *Simulation, st core.KeyState) {
		if st.JustPressed {
			s.Rotate(false)
		}
	}},
	{core.ActionRotateRight, func(s *Simulation, st core.KeyState) {
		if st.JustPressed {
			s.Rotate(true)
		}
	}},
	{core.ActionMoveLeft, func(s *Simulation, _ core.KeyState) {
		s.Move(-NudgeStep, 0)
	}},
	{core.ActionMoveRight, func(s *Simulation, _ core.KeyState) {
		s.Move(NudgeStep, 0)
	}},
	{core.ActionSoftDrop, func(s *Simulation, _ core.KeyState) {
		if s.Move(0, -1) {
			s.fallTimer = FallInterval
		}
	}},
	{core.ActionHardDrop, func(s *Simulation, _ core.KeyState) {
		if s.Move(0, -1) {
			for s.Move(0, -1) {
			}
			s.fallTimer = FallInterval
		}
	}},
}

func (s *Simulation) applyInput(in core.InputFrame) {
	for _, h := range inputHandlers {
		if s.active == nil {
			return
		}
		if st := in.State(h.action); st.Held {
			h.handle(s, st)
		}
	}
}

// Spawn places a new piece of the given kind at the spawn point.
// If the spawn cells are blocked the piece is painted anyway, the game ends
// and Spawn returns false.
func (s *Simulation) Spawn(kind int) bool {
	p := &activePiece{
		kind:   kind,
		frames: s.catalog.Frames(kind),
		x:      SpawnX,
		y:      SpawnY,
	}
	s.fallTimer = FallInterval
	s.redraw = true

	if !s.paint(p.frame(), p.x, p.y, p.fill()) {
		s.forcePaint(p.frame(), p.x, p.y, p.fill())
		s.active = nil
		s.gameOver = true
		s.emit(core.Event{Kind: core.EventGameOver, Piece: s.catalog.Piece(kind).Name, Score: s.score})
		return false
	}

	s.active = p
	s.emit(core.Event{Kind: core.EventSpawn, Piece: s.catalog.Piece(kind).Name})
	return true
}

// Move shifts the active piece by (dx, dy) cells. Movement inside the same
// integer cell only updates the position. Returns false if the piece could
// not move.
func (s *Simulation) Move(dx, dy float64) bool {
	p := s.active
	if p == nil {
		return false
	}
	nx, ny := p.x+dx, p.y+dy
	if int(nx) == int(p.x) && int(ny) == int(p.y) {
		p.x, p.y = nx, ny
		return true
	}

	s.forcePaint(p.frame(), p.x, p.y, 0)
	if s.paint(p.frame(), nx, ny, p.fill()) {
		p.x, p.y = nx, ny
		s.redraw = true
		return true
	}
	s.forcePaint(p.frame(), p.x, p.y, p.fill())
	return false
}

// Rotate turns the active piece one frame clockwise or counter-clockwise in
// place. A blocked rotation leaves the piece unchanged and returns false.
func (s *Simulation) Rotate(clockwise bool) bool {
	p := s.active
	if p == nil {
		return false
	}
	n := len(p.frames)
	next := (p.rot + n - 1) % n
	if clockwise {
		next = (p.rot + 1) % n
	}

	s.forcePaint(p.frame(), p.x, p.y, 0)
	if s.paint(p.frames[next], p.x, p.y, p.fill()) {
		p.rot = next
		s.redraw = true
		return true
	}
	s.forcePaint(p.frame(), p.x, p.y, p.fill())
	return false
}

// paint writes the frame at the truncated position if every target cell is
// on the playfield and empty. Nothing is written otherwise.
func (s *Simulation) paint(f Frame, x, y float64, fill uint8) bool {
	var staged [FrameSize * FrameSize]int
	n := 0
	ax, ay := int(x), int(y)
	for row := 0; row < FrameSize; row++ {
		for col := 0; col < FrameSize; col++ {
			if !f.At(col, row) {
				continue
			}
			cx, cy := ax+col, ay-row
			if !InBounds(cx, cy) {
				return false
			}
			idx := Index(cx, cy)
			if s.grid.cells[idx] != 0 {
				return false
			}
			staged[n] = idx
			n++
		}
	}
	for _, idx := range staged[:n] {
		s.grid.cells[idx] = fill
	}
	return true
}

// forcePaint writes the frame without collision checks. Off-field cells are
// skipped.
func (s *Simulation) forcePaint(f Frame, x, y float64, fill uint8) {
	ax, ay := int(x), int(y)
	for row := 0; row < FrameSize; row++ {
		for col := 0; col < FrameSize; col++ {
			if !f.At(col, row) {
				continue
			}
			if cx, cy := ax+col, ay-row; InBounds(cx, cy) {
				s.grid.Set(cx, cy, fill)
			}
		}
	}
}

// lock ends the active piece, clears rows and scores the placement.
func (s *Simulation) lock() {
	name := s.catalog.Piece(s.active.kind).Name
	s.active = nil
	s.pieces++

	cleared := s.clearLines()
	points := LockScore(cleared)
	s.lines += cleared
	s.score += points
	s.redraw = true
	s.emit(core.Event{Kind: core.EventLock, Piece: name, Lines: cleared, Score: points})
}

// clearLines collapses runs of full rows, scanning bottom to top, and stops
// once MaxClearRows rows have been removed. Returns the number removed.
func (s *Simulation) clearLines() int {
	cleared := 0
	first, run := -1, 0

	for y := 0; y < Height; y++ {
		if s.grid.RowIsFull(y) {
			if first < 0 {
				first, run = y, 0
			}
			run++
			continue
		}
		if first < 0 {
			continue
		}
		s.grid.ShiftRowsDown(first, run)
		cleared += run
		y = first
		first = -1
		if cleared >= MaxClearRows {
			return cleared
		}
	}

	if first >= 0 {
		s.grid.ShiftRowsDown(first, run)
		cleared += run
	}
	return cleared
}

// LockScore returns the points for a lock that cleared the given rows.
func LockScore(lines int) int {
	switch {
	case lines <= 0:
		return 100
	case lines == 1:
		return 1000
	default:
		return 2000 * lines
	}
}

func (s *Simulation) emit(e core.Event) {
	s.events = append(s.events, e)
}

// Events returns the events raised by the last Tick or Spawn call.
func (s *Simulation) Events() []core.Event {
	return s.events
}

// TakeRedraw reports whether the playfield changed since the last call.
func (s *Simulation) TakeRedraw() bool {
	r := s.redraw
	s.redraw = false
	return r
}

// Score returns the current score.
func (s *Simulation) Score() int {
	return s.score
}

// Paused reports whether the simulation is paused.
func (s *Simulation) Paused() bool {
	return s.paused
}

// GameOver reports whether the last spawn failed.
func (s *Simulation) GameOver() bool {
	return s.gameOver
}

// Grid returns the playfield for read access.
func (s *Simulation) Grid() *Grid {
	return &s.grid
}
