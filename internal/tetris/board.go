// Package tetris implements the falling-block game engine: the bordered board,
// the piece catalog, the active piece geometry and the tick/command state machine.
// It has no terminal dependencies; the platform layer drives it through Game.
package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Pos is a board coordinate in row/column units.
type Pos struct {
	Row, Col int
}

// Add returns p shifted by the given deltas.
func (p Pos) Add(dRow, dCol int) Pos {
	return Pos{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Cell is one board location. The zero value is an empty cell.
type Cell struct {
	Occupied bool
	Border   bool // permanent wall cell, never cleared or moved
	Color    core.Color
}

// BorderColor is the color of the permanent wall cells.
const BorderColor = core.ColorPurple

// Board is the fixed-size occupancy grid. The outer margin is filled with
// border cells at construction and never changes afterwards.
type Board struct {
	rows   int
	cols   int
	margin int
	cells  [][]Cell
}

// NewBoard creates a rows×cols board with a border of the given width on every edge.
func NewBoard(rows, cols, margin int) *Board {
	if margin < 1 || rows <= 2*margin || cols <= 2*margin {
		panic(fmt.Sprintf("tetris: invalid board geometry %dx%d margin %d", rows, cols, margin))
	}

	b := &Board{rows: rows, cols: cols, margin: margin}
	b.cells = make([][]Cell, rows)
	for r := range b.cells {
		b.cells[r] = make([]Cell, cols)
		for c := range b.cells[r] {
			if !b.IsPlayable(Pos{Row: r, Col: c}) {
				b.cells[r][c] = Cell{Occupied: true, Border: true, Color: BorderColor}
			}
		}
	}
	return b
}

// Rows returns the board height including the border.
func (b *Board) Rows() int { return b.rows }

// Cols returns the board width including the border.
func (b *Board) Cols() int { return b.cols }

// Margin returns the border width.
func (b *Board) Margin() int { return b.margin }

// InBounds reports whether p lies on the grid.
func (b *Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.rows && p.Col >= 0 && p.Col < b.cols
}

// IsPlayable reports whether p lies inside the border.
func (b *Board) IsPlayable(p Pos) bool {
	return p.Row >= b.margin && p.Row < b.rows-b.margin &&
		p.Col >= b.margin && p.Col < b.cols-b.margin
}

// IsEmpty reports whether p is on the grid and unoccupied.
func (b *Board) IsEmpty(p Pos) bool {
	return b.InBounds(p) && !b.cells[p.Row][p.Col].Occupied
}

// Cell returns the cell at p. Out-of-bounds access panics.
func (b *Board) Cell(p Pos) Cell {
	b.mustBeInBounds(p)
	return b.cells[p.Row][p.Col]
}

// Commit makes the given cells part of the static landscape.
func (b *Board) Commit(cells [4]Pos, color core.Color) {
	for _, p := range cells {
		b.mustBeInBounds(p)
		if b.cells[p.Row][p.Col].Occupied {
			panic(fmt.Sprintf("tetris: commit onto occupied cell %v", p))
		}
	}
	for _, p := range cells {
		b.cells[p.Row][p.Col] = Cell{Occupied: true, Color: color}
	}
}

// ClearFullLines scans the playable rows top to bottom. Every full row is
// emptied and the playable rows above it move down one row before the scan
// continues. Returns the number of rows cleared.
func (b *Board) ClearFullLines() int {
	top, bottom := b.margin, b.rows-b.margin
	cleared := 0

	for row := top; row < bottom; row++ {
		if !b.rowFull(row) {
			continue
		}
		cleared++
		b.clearRow(row)
		for r := row; r > top; r-- {
			b.copyRow(r-1, r)
		}
		b.clearRow(top)
	}
	return cleared
}

// Reset empties every playable cell. Border cells are left untouched.
func (b *Board) Reset() {
	for r := b.margin; r < b.rows-b.margin; r++ {
		b.clearRow(r)
	}
}

// BorderCount returns the number of border cells on the board.
func (b *Board) BorderCount() int {
	n := 0
	for r := range b.cells {
		for _, c := range b.cells[r] {
			if c.Border {
				n++
			}
		}
	}
	return n
}

// rowFull reports whether every playable column in row is occupied.
func (b *Board) rowFull(row int) bool {
	for c := b.margin; c < b.cols-b.margin; c++ {
		if !b.cells[row][c].Occupied {
			return false
		}
	}
	return true
}

func (b *Board) clearRow(row int) {
	for c := b.margin; c < b.cols-b.margin; c++ {
		b.cells[row][c] = Cell{}
	}
}

// copyRow copies the playable part of row src into row dst.
func (b *Board) copyRow(src, dst int) {
	copy(b.cells[dst][b.margin:b.cols-b.margin], b.cells[src][b.margin:b.cols-b.margin])
}

func (b *Board) mustBeInBounds(p Pos) {
	if !b.InBounds(p) {
		panic(fmt.Sprintf("tetris: cell %v outside %dx%d board", p, b.rows, b.cols))
	}
}
