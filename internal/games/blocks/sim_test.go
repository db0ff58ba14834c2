package blocks

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Piece kinds in DefaultCatalog order.
const (
	kindI = iota
	kindO
	kindT
)

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	s := NewSimulation(nil, 42)
	s.Reset()
	return s
}

func held(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.SetState(a, core.KeyState{Held: true})
	}
	return f
}

func pressed(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

// tickUntilLock ticks with no input until the active piece locks.
func tickUntilLock(t *testing.T, s *Simulation) {
	t.Helper()
	start := s.Snapshot().Pieces
	for i := 0; i < 10*FallInterval*Height; i++ {
		s.Tick(idle())
		if s.Snapshot().Pieces > start {
			return
		}
	}
	t.Fatal("piece never locked")
}

func TestSpawnPlacesPieceAtSpawnPoint(t *testing.T) {
	s := newTestSim(t)
	if !s.Spawn(kindI) {
		t.Fatal("spawn on an empty grid should succeed")
	}

	snap := s.Snapshot()
	for x := SpawnX; x < SpawnX+4; x++ {
		if snap.Cell(x, SpawnY) != kindI+1 {
			t.Errorf("cell (%d, %d) = %d, expected %d", x, SpawnY, snap.Cell(x, SpawnY), kindI+1)
		}
	}
	if snap.Active == nil || snap.Active.X != SpawnX || snap.Active.Y != SpawnY || snap.Active.Rotation != 0 {
		t.Errorf("active = %+v, expected rotation 0 at spawn point", snap.Active)
	}
	if snap.FallTimer != FallInterval {
		t.Errorf("FallTimer = %d, expected %d", snap.FallTimer, FallInterval)
	}
	if snap.State != StateFalling {
		t.Errorf("State = %s, expected falling", snap.State)
	}
}

func TestGravityFallsOneRowPerInterval(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindI)

	for i := 0; i < FallInterval-1; i++ {
		s.Tick(idle())
	}
	if y := s.Snapshot().Active.Y; y != SpawnY {
		t.Fatalf("piece moved early, y = %v", y)
	}

	s.Tick(idle())
	snap := s.Snapshot()
	if snap.Active.Y != SpawnY-1 {
		t.Errorf("after %d ticks y = %v, expected %d", FallInterval, snap.Active.Y, SpawnY-1)
	}
	if snap.FallTimer != FallInterval {
		t.Errorf("FallTimer = %d, expected reset to %d", snap.FallTimer, FallInterval)
	}
	for x := SpawnX; x < SpawnX+4; x++ {
		if snap.Cell(x, SpawnY) != 0 || snap.Cell(x, SpawnY-1) != kindI+1 {
			t.Fatalf("piece footprint did not move down at column %d", x)
		}
	}
}

func TestMoveAccumulatesSubCellNudges(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindO)
	before := s.Snapshot().Grid

	for i := 1; i <= 3; i++ {
		if !s.Move(NudgeStep, 0) {
			t.Fatalf("nudge %d failed", i)
		}
		snap := s.Snapshot()
		if !reflect.DeepEqual(snap.Grid, before) {
			t.Fatalf("nudge %d inside the same cell changed the grid", i)
		}
		if want := SpawnX + float64(i)*NudgeStep; snap.Active.X != want {
			t.Fatalf("x = %v, expected %v", snap.Active.X, want)
		}
	}

	s.Move(NudgeStep, 0)
	snap := s.Snapshot()
	if snap.Active.X != SpawnX+1 {
		t.Fatalf("x = %v, expected %d", snap.Active.X, SpawnX+1)
	}
	if snap.Cell(SpawnX, SpawnY) != 0 || snap.Cell(SpawnX+2, SpawnY) != kindO+1 {
		t.Error("crossing a cell boundary should move the footprint")
	}
}

func TestMoveBlockedByWallLeavesStateUnchanged(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindO)

	for s.Move(-1, 0) {
	}
	snap := s.Snapshot()
	if snap.Active.X != 0 {
		t.Fatalf("piece should stop at the left wall, x = %v", snap.Active.X)
	}

	if s.Move(-1, 0) {
		t.Fatal("move through the wall should fail")
	}
	after := s.Snapshot()
	if !reflect.DeepEqual(after.Grid, snap.Grid) || after.Active.X != snap.Active.X {
		t.Error("failed move must not change grid or position")
	}
}

func TestMoveBlockedByStackHasNoPartialWrite(t *testing.T) {
	s := newTestSim(t)
	// One blocker under the right half of the O piece.
	s.grid.Set(SpawnX+1, SpawnY-2, 7)
	s.Spawn(kindO)
	before := s.Snapshot()

	if s.Move(0, -1) {
		t.Fatal("move into an occupied cell should fail")
	}
	after := s.Snapshot()
	if !reflect.DeepEqual(after.Grid, before.Grid) {
		t.Error("failed move left a partial write")
	}
	if after.Active.Y != before.Active.Y {
		t.Error("failed move changed the position")
	}
}

func TestRotateWrapsBothDirections(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindT)

	if !s.Rotate(false) {
		t.Fatal("counter-clockwise rotation should succeed in open space")
	}
	if r := s.Snapshot().Active.Rotation; r != 3 {
		t.Errorf("rotation = %d, expected 3", r)
	}
	if !s.Rotate(true) {
		t.Fatal("clockwise rotation should succeed")
	}
	if r := s.Snapshot().Active.Rotation; r != 0 {
		t.Errorf("rotation = %d, expected 0", r)
	}
}

func TestRotateBlockedIsNoop(t *testing.T) {
	s := newTestSim(t)
	// The vertical I frame occupies column SpawnX+1, rows 17..14.
	s.grid.Set(SpawnX+1, SpawnY-2, 7)
	s.Spawn(kindI)
	before := s.Snapshot()

	if s.Rotate(true) {
		t.Fatal("rotation into an occupied cell should fail")
	}
	after := s.Snapshot()
	if !reflect.DeepEqual(after.Grid, before.Grid) {
		t.Error("rejected rotation changed the grid")
	}
	if after.Active.Rotation != 0 || after.Active.X != before.Active.X || after.Active.Y != before.Active.Y {
		t.Errorf("rejected rotation changed the piece: %+v", after.Active)
	}
}

func TestRotateOutOfBoundsIsNoop(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindI)
	for s.Move(0, -1) {
	}
	before := s.Snapshot()
	if before.Active.Y != 0 {
		t.Fatalf("horizontal I should rest on row 0, y = %v", before.Active.Y)
	}

	if s.Rotate(true) {
		t.Fatal("vertical frame below the floor should be rejected")
	}
	if !reflect.DeepEqual(s.Snapshot().Grid, before.Grid) {
		t.Error("rejected rotation changed the grid")
	}
}

func TestRotateKeysAreEdgeTriggered(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindT)

	s.Tick(held(core.ActionRotateRight))
	if r := s.Snapshot().Active.Rotation; r != 0 {
		t.Fatalf("held rotate without a press edge rotated to %d", r)
	}

	s.Tick(pressed(core.ActionRotateRight))
	if r := s.Snapshot().Active.Rotation; r != 1 {
		t.Fatalf("press edge should rotate once, rotation = %d", r)
	}

	s.Tick(pressed(core.ActionRotateLeft))
	if r := s.Snapshot().Active.Rotation; r != 0 {
		t.Fatalf("rotate left should undo, rotation = %d", r)
	}
}

func TestHeldMoveNudgesEveryTick(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindO)

	for i := 0; i < 4; i++ {
		s.Tick(held(core.ActionMoveRight))
	}
	if x := s.Snapshot().Active.X; x != SpawnX+1 {
		t.Errorf("four held ticks should move one cell, x = %v", x)
	}
}

func TestSoftDropResetsTimer(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindO)
	for i := 0; i < 10; i++ {
		s.Tick(idle())
	}

	s.Tick(held(core.ActionSoftDrop))
	snap := s.Snapshot()
	if snap.Active.Y != SpawnY-1 {
		t.Errorf("soft drop should step once, y = %v", snap.Active.Y)
	}
	// Reset to FallInterval, then the same tick's gravity decrement.
	if snap.FallTimer != FallInterval-1 {
		t.Errorf("FallTimer = %d, expected %d", snap.FallTimer, FallInterval-1)
	}
	if snap.Score != 0 {
		t.Error("soft drop must not score by itself")
	}
}

func TestHardDropFallsToFloorInOneTick(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindO)

	s.Tick(held(core.ActionHardDrop))
	snap := s.Snapshot()
	// O occupies mask rows 0 and 1, so it rests with its anchor on row 1.
	if snap.Active == nil || snap.Active.Y != 1 {
		t.Fatalf("hard drop should reach the floor, active = %+v", snap.Active)
	}
	if snap.Pieces != 0 {
		t.Error("hard drop waits for the fall timer before locking")
	}

	tickUntilLock(t, s)
	if got := s.Snapshot().Score; got != LockScore(0) {
		t.Errorf("score = %d, expected %d", got, LockScore(0))
	}
}

func TestLockClearsSingleLine(t *testing.T) {
	s := newTestSim(t)
	for x := 0; x < Width; x++ {
		if x != SpawnX+1 {
			s.grid.Set(x, 0, 7)
		}
	}
	s.grid.Set(0, 1, 6) // marker that must shift down after the clear

	s.Spawn(kindI)
	if !s.Rotate(true) {
		t.Fatal("I should turn vertical at spawn")
	}
	s.Tick(held(core.ActionHardDrop))
	tickUntilLock(t, s)

	snap := s.Snapshot()
	if snap.Score != 1000 {
		t.Errorf("score = %d, expected 1000", snap.Score)
	}
	if snap.Lines != 1 {
		t.Errorf("lines = %d, expected 1", snap.Lines)
	}
	if snap.Cell(0, 0) != 6 {
		t.Error("row above the cleared line should shift down")
	}
	for y := 0; y < 3; y++ {
		if snap.Cell(SpawnX+1, y) != kindI+1 {
			t.Errorf("remaining I cell missing at row %d", y)
		}
	}
	if snap.Cell(SpawnX+1, 3) != 0 {
		t.Error("row 3 should be empty after the shift")
	}
	if snap.Active != nil || snap.State != StateSpawning {
		t.Errorf("no piece should be active right after a lock, state = %s", snap.State)
	}
}

func TestClearLinesStopsAtMax(t *testing.T) {
	s := newTestSim(t)
	for _, y := range []int{0, 1, 3, 4, 6} {
		fillRow(&s.grid, y, 2)
	}
	s.grid.Set(0, 2, 5)
	s.grid.Set(0, 5, 5)

	if got := s.clearLines(); got != MaxClearRows {
		t.Fatalf("clearLines() = %d, expected %d", got, MaxClearRows)
	}
	// Old rows 2, 5 and 6 are now rows 0, 1 and 2; row 6 stays full.
	if s.grid.Get(0, 0) != 5 || s.grid.Get(0, 1) != 5 {
		t.Error("partial rows should compact to the bottom")
	}
	if !s.grid.RowIsFull(2) {
		t.Error("full row past the limit should survive")
	}
}

func TestClearLinesTopRow(t *testing.T) {
	s := newTestSim(t)
	fillRow(&s.grid, Height-1, 3)

	if got := s.clearLines(); got != 1 {
		t.Fatalf("clearLines() = %d, expected 1", got)
	}
	if s.grid.Occupied() != 0 {
		t.Error("full top row should be removed")
	}
}

func TestLockScore(t *testing.T) {
	tests := []struct {
		lines, points int
	}{
		{0, 100},
		{1, 1000},
		{2, 4000},
		{3, 6000},
		{4, 8000},
	}
	for _, tc := range tests {
		if got := LockScore(tc.lines); got != tc.points {
			t.Errorf("LockScore(%d) = %d, expected %d", tc.lines, got, tc.points)
		}
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	s := newTestSim(t)
	s.grid.Set(SpawnX, SpawnY, 5)

	if s.Spawn(kindI) {
		t.Fatal("spawn onto an occupied cell should fail")
	}
	snap := s.Snapshot()
	if !snap.GameOver || snap.State != StateGameOver {
		t.Fatal("failed spawn should end the game")
	}
	for x := SpawnX; x < SpawnX+4; x++ {
		if snap.Cell(x, SpawnY) != kindI+1 {
			t.Errorf("piece should be force-painted at column %d", x)
		}
	}

	events := s.Events()
	if len(events) == 0 || events[len(events)-1].Kind != core.EventGameOver {
		t.Errorf("expected a game over event, got %+v", events)
	}
}

func TestTickIsNoopAfterGameOver(t *testing.T) {
	s := newTestSim(t)
	s.grid.Set(SpawnX, SpawnY, 5)
	s.Spawn(kindI)
	before := s.Snapshot()

	for i := 0; i < 3*FallInterval; i++ {
		s.Tick(pressed(core.ActionHardDrop, core.ActionPause))
	}
	if !reflect.DeepEqual(s.Snapshot(), before) {
		t.Error("ticks after game over must not change state")
	}
}

func TestPauseFreezesEverything(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindT)
	for i := 0; i < 5; i++ {
		s.Tick(idle())
	}

	s.Tick(pressed(core.ActionPause))
	paused := s.Snapshot()
	if !paused.Paused || paused.State != StatePaused {
		t.Fatal("pause press should pause")
	}

	for i := 0; i < 3*FallInterval; i++ {
		s.Tick(held(core.ActionHardDrop, core.ActionMoveLeft, core.ActionPause))
	}
	if !reflect.DeepEqual(s.Snapshot(), paused) {
		t.Error("paused ticks must not change score, grid or timer")
	}

	s.Tick(pressed(core.ActionPause))
	if s.Snapshot().Paused {
		t.Error("second pause press should resume")
	}
}

func TestTickSpawnsUniformKinds(t *testing.T) {
	s := NewSimulation(nil, 7)
	seen := make(map[int]int)
	for i := 0; i < 700; i++ {
		s.Reset()
		s.Tick(idle())
		seen[s.Snapshot().Active.Kind]++
	}
	for kind := 0; kind < s.Catalog().TypeCount(); kind++ {
		if seen[kind] == 0 {
			t.Errorf("kind %d never spawned", kind)
		}
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindO)
	s.Tick(held(core.ActionHardDrop))
	tickUntilLock(t, s)
	s.Tick(pressed(core.ActionPause))

	s.Reset()
	snap := s.Snapshot()
	if snap.Score != 0 || snap.Paused || snap.GameOver || snap.Lines != 0 || snap.Pieces != 0 || snap.Tick != 0 {
		t.Errorf("Reset left status behind: %+v", snap)
	}
	if snap.Active != nil {
		t.Error("Reset should drop the active piece")
	}
	if s.Grid().Occupied() != 0 {
		t.Error("Reset should clear the grid")
	}
}

func TestDeterminism(t *testing.T) {
	script := func(i int) core.InputFrame {
		switch {
		case i%97 == 0:
			return pressed(core.ActionRotateRight)
		case i%41 < 6:
			return held(core.ActionMoveLeft)
		case i%53 < 5:
			return held(core.ActionMoveRight)
		case i%150 == 149:
			return held(core.ActionHardDrop)
		}
		return idle()
	}

	s1 := NewSimulation(nil, 12345)
	s2 := NewSimulation(nil, 12345)
	for i := 0; i < 3000; i++ {
		s1.Tick(script(i))
		s2.Tick(script(i))
	}

	if !reflect.DeepEqual(s1.Snapshot(), s2.Snapshot()) {
		t.Error("same seed and inputs should produce identical snapshots")
	}
	if s1.Snapshot().Pieces == 0 {
		t.Error("script should lock at least one piece")
	}
}

func TestLockEvent(t *testing.T) {
	s := newTestSim(t)
	s.Spawn(kindO)
	s.Tick(held(core.ActionHardDrop))

	for i := 0; i < 2*FallInterval; i++ {
		s.Tick(idle())
		for _, e := range s.Events() {
			if e.Kind == core.EventLock {
				if e.Piece != "O" || e.Lines != 0 || e.Score != 100 {
					t.Errorf("lock event = %+v", e)
				}
				return
			}
		}
	}
	t.Fatal("no lock event")
}

func TestTakeRedraw(t *testing.T) {
	s := newTestSim(t)
	s.TakeRedraw()
	if s.TakeRedraw() {
		t.Fatal("redraw flag should clear after being taken")
	}

	s.Spawn(kindO)
	s.Move(NudgeStep, 0)
	if !s.TakeRedraw() {
		t.Error("spawn should request a redraw")
	}
	s.Move(NudgeStep, 0)
	if s.TakeRedraw() {
		t.Error("sub-cell nudge should not request a redraw")
	}
}
