package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// pivotIndex is the cell rotations are computed about.
const pivotIndex = 1

// Piece is the falling piece under player control.
// It performs no validity checks; the Engine checks targets before mutating.
type Piece struct {
	kind  Kind
	cells [4]Pos
}

// Spawn creates a piece of the given kind at the fixed spawn anchor.
func Spawn(kind Kind, anchor Pos) *Piece {
	return &Piece{kind: kind, cells: kind.SpawnCells(anchor)}
}

// Kind returns the piece kind.
func (p *Piece) Kind() Kind { return p.kind }

// Color returns the piece color.
func (p *Piece) Color() core.Color { return p.kind.Shape().Color }

// CanRotate reports whether the kind allows rotation.
func (p *Piece) CanRotate() bool { return p.kind.Shape().CanRotate }

// Cells returns the four occupied cells.
func (p *Piece) Cells() [4]Pos { return p.cells }

// Translated returns the cells shifted rigidly, without moving the piece.
func (p *Piece) Translated(dRow, dCol int) [4]Pos {
	var out [4]Pos
	for i, c := range p.cells {
		out[i] = c.Add(dRow, dCol)
	}
	return out
}

// Translate shifts all four cells rigidly.
func (p *Piece) Translate(dRow, dCol int) {
	p.cells = p.Translated(dRow, dCol)
}

// Rotated returns the cells turned 90° counter-clockwise about the pivot cell.
// Non-rotatable kinds return their current cells.
func (p *Piece) Rotated() [4]Pos {
	if !p.CanRotate() {
		return p.cells
	}
	pivot := p.cells[pivotIndex]
	var out [4]Pos
	for i, c := range p.cells {
		out[i] = Pos{
			Row: pivot.Row + pivot.Col - c.Col,
			Col: pivot.Col - pivot.Row + c.Row,
		}
	}
	return out
}

// Rotate turns the piece counter-clockwise about the pivot cell.
func (p *Piece) Rotate() {
	p.cells = p.Rotated()
}
