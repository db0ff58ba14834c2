package blocks

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Layout sizes in terminal cells.
const (
	cellCols     = 2
	boardW       = Width*cellCols + 2 // playfield plus border
	boardH       = Height + 2
	sidebarW     = 20
	sidebarGap   = 2
	layoutW      = boardW + sidebarGap + sidebarW
	layoutH      = boardH
	overlayWidth = 16
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < boardW || dst.Height() < layoutH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	snap := g.sim.Snapshot()
	screen := core.NewRect(0, 0, dst.Width(), dst.Height())

	// Drop the sidebar on narrow terminals.
	area := screen.Centered(boardW, layoutH)
	showSidebar := dst.Width() >= layoutW
	if showSidebar {
		area = screen.Centered(layoutW, layoutH)
	}

	board := core.NewRect(area.X, area.Y, boardW, boardH)
	g.renderBoard(dst, board, snap)

	if showSidebar {
		g.renderSidebar(dst, core.NewRect(board.Right()+sidebarGap, area.Y, sidebarW, layoutH), snap)
	}

	switch {
	case snap.GameOver:
		renderOverlay(dst, board, "GAME OVER", "R to restart")
	case snap.Paused:
		renderOverlay(dst, board, "PAUSED", "P to resume")
	}
}

// renderBoard draws the border and every playfield cell. Row 0 of the grid
// is drawn at the bottom.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect, snap Snapshot) {
	dst.DrawBox(r, g.display.BorderColor())

	cell := []rune(g.display.Cell)
	empty := []rune(g.display.Empty)
	names := g.sim.Catalog().Names()

	for y := 0; y < Height; y++ {
		sy := r.Y + 1 + (Height - 1 - y)
		for x := 0; x < Width; x++ {
			sx := r.X + 1 + x*cellCols
			v := snap.Cell(x, y)
			if v == 0 {
				dst.SetColor(sx, sy, empty[0], core.ColorGray)
				dst.SetColor(sx+1, sy, empty[1], core.ColorGray)
				continue
			}
			color := core.ColorWhite
			if int(v) <= len(names) {
				color = g.display.PieceColor(names[v-1])
			}
			dst.SetColor(sx, sy, cell[0], color)
			dst.SetColor(sx+1, sy, cell[1], color)
		}
	}
}

// renderSidebar draws the score panel.
func (g *Game) renderSidebar(dst *core.Screen, r core.Rect, snap Snapshot) {
	lines := []struct {
		text  string
		color core.Color
	}{
		{"FALLING BLOCKS", core.ColorBrightWhite},
		{"", core.ColorDefault},
		{fmt.Sprintf("Score  %d", snap.Score), core.ColorBrightYellow},
		{fmt.Sprintf("Best   %d", max(g.best, snap.Score)), core.ColorYellow},
		{fmt.Sprintf("Lines  %d", snap.Lines), core.ColorDefault},
		{fmt.Sprintf("Pieces %d", snap.Pieces), core.ColorDefault},
		{"", core.ColorDefault},
		{activeLabel(snap), core.ColorGray},
	}

	for i, l := range lines {
		if i >= r.H {
			break
		}
		dst.DrawTextColor(r.X, r.Y+1+i, l.text, l.color)
	}
}

// renderOverlay draws a boxed two-line message centered on the board.
func renderOverlay(dst *core.Screen, board core.Rect, line1, line2 string) {
	box := board.Centered(overlayWidth, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	drawCentered(dst, box, box.Y+1, line1, core.ColorBrightRed)
	drawCentered(dst, box, box.Y+3, line2, core.ColorDefault)
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string, c core.Color) {
	x := box.X + (box.W-len(text))/2
	dst.DrawTextColor(x, y, text, c)
}

func activeLabel(snap Snapshot) string {
	if snap.Active == nil {
		return ""
	}
	return "Piece  " + snap.Active.Name
}
