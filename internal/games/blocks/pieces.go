package blocks

import (
	"fmt"
	"strings"
)

// FrameSize is the side length of a rotation frame mask.
const FrameSize = 4

// Frame is a 4x4 occupancy mask in row-major order.
// Mask row r is painted r rows below the piece anchor, column c is painted
// c columns right of it.
type Frame [FrameSize * FrameSize]bool

// At reports whether mask cell (col, row) is occupied.
func (f Frame) At(col, row int) bool {
	return f[row*FrameSize+col]
}

// Piece is a named shape with its rotation frames listed clockwise.
type Piece struct {
	Name   string
	Frames []Frame
}

// Catalog is the immutable set of playable pieces.
type Catalog struct {
	pieces []Piece
}

// TypeCount returns the number of piece types.
func (c *Catalog) TypeCount() int {
	return len(c.pieces)
}

// Piece returns the piece for a type index in [0, TypeCount).
func (c *Catalog) Piece(kind int) Piece {
	return c.pieces[kind]
}

// Frames returns the rotation frames for a type index.
func (c *Catalog) Frames(kind int) []Frame {
	return c.pieces[kind].Frames
}

// Names returns the piece names in type order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.pieces))
	for i, p := range c.pieces {
		names[i] = p.Name
	}
	return names
}

// DefaultCatalog returns the shared standard tetromino catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

var defaultCatalog = &Catalog{pieces: []Piece{
	piece("I",
		"####",
		".#..\n.#..\n.#..\n.#..",
	),
	piece("O",
		"##\n##",
	),
	piece("T",
		"###\n.#.",
		".#\n##\n.#",
		".#.\n###",
		"#.\n##\n#.",
	),
	piece("S",
		".##\n##.",
		"#.\n##\n.#",
	),
	piece("Z",
		"##.\n.##",
		".#\n##\n#.",
	),
	piece("J",
		"#..\n###",
		"##\n#.\n#.",
		"###\n..#",
		".#\n.#\n##",
	),
	piece("L",
		"..#\n###",
		"#.\n#.\n##",
		"###\n#..",
		"##\n.#\n.#",
	),
}}

func piece(name string, frames ...string) Piece {
	p := Piece{Name: name}
	for _, f := range frames {
		p.Frames = append(p.Frames, mustFrame(f))
	}
	return p
}

// mustFrame parses a mask drawn with '#' (occupied) and '.' (empty), one
// line per mask row. Missing rows and columns are empty.
func mustFrame(art string) Frame {
	var f Frame
	lines := strings.Split(art, "\n")
	if len(lines) > FrameSize {
		panic(fmt.Sprintf("blocks: frame %q has more than %d rows", art, FrameSize))
	}
	for row, line := range lines {
		if len(line) > FrameSize {
			panic(fmt.Sprintf("blocks: frame row %q wider than %d", line, FrameSize))
		}
		for col, ch := range line {
			switch ch {
			case '#':
				f[row*FrameSize+col] = true
			case '.':
			default:
				panic(fmt.Sprintf("blocks: frame %q has invalid cell %q", art, ch))
			}
		}
	}
	return f
}
