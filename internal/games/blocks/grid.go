package blocks

import "fmt"

// Playfield dimensions.
const (
	Width  = 10
	Height = 18
)

// Grid is the playfield cell store. Row 0 is the bottom row.
// A cell holds 0 when empty, otherwise the occupying piece's fill value.
type Grid struct {
	cells [Width * Height]uint8
}

// Index returns the linear offset of (x, y).
// It panics on coordinates outside the playfield: callers validate first.
func Index(x, y int) int {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		panic(fmt.Sprintf("blocks: cell (%d, %d) outside %dx%d playfield", x, y, Width, Height))
	}
	return y*Width + x
}

// InBounds reports whether (x, y) lies on the playfield.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Get returns the fill value at (x, y).
func (g *Grid) Get(x, y int) uint8 {
	return g.cells[Index(x, y)]
}

// Set stores a fill value at (x, y).
func (g *Grid) Set(x, y int, v uint8) {
	g.cells[Index(x, y)] = v
}

// RowIsFull reports whether every cell in row y is occupied.
func (g *Grid) RowIsFull(y int) bool {
	row := g.cells[Index(0, y) : Index(0, y)+Width]
	for _, v := range row {
		if v == 0 {
			return false
		}
	}
	return true
}

// ShiftRowsDown removes count rows starting at from. Every row above the
// removed block moves down by count and the top count rows become empty.
func (g *Grid) ShiftRowsDown(from, count int) {
	if count <= 0 {
		return
	}
	for y := from; y < Height-count; y++ {
		src := (y + count) * Width
		copy(g.cells[y*Width:(y+1)*Width], g.cells[src:src+Width])
	}
	top := max(from, Height-count)
	clear(g.cells[top*Width:])
}

// Clear empties every cell.
func (g *Grid) Clear() {
	clear(g.cells[:])
}

// Cells returns a copy of the cells in Index order.
func (g *Grid) Cells() []uint8 {
	out := make([]uint8, len(g.cells))
	copy(out, g.cells[:])
	return out
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}
