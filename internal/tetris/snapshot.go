package tetris

import (
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// PieceView is the renderer's read-only view of the active piece.
type PieceView struct {
	Kind  Kind
	Color core.Color
	Cells [4]Pos
}

// Snapshot is a deep copy of everything a renderer needs to draw one frame.
type Snapshot struct {
	Rows   int
	Cols   int
	Margin int
	Cells  [][]Cell
	Piece  *PieceView // nil when no piece is active
	Score  int
	Lines  int
	Ticks  uint64
	Status Status
}

// Snapshot captures the current board, piece, score and status.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Rows:   e.board.rows,
		Cols:   e.board.cols,
		Margin: e.board.margin,
		Cells:  make([][]Cell, e.board.rows),
		Score:  e.score,
		Lines:  e.lines,
		Ticks:  e.ticks,
		Status: e.status,
	}
	for r := range e.board.cells {
		s.Cells[r] = append([]Cell(nil), e.board.cells[r]...)
	}
	if e.piece != nil {
		s.Piece = &PieceView{
			Kind:  e.piece.Kind(),
			Color: e.piece.Color(),
			Cells: e.piece.Cells(),
		}
	}
	return s
}

// CellAt returns the board cell at p with the active piece drawn over it.
// The second result reports whether the cell belongs to the active piece.
func (s Snapshot) CellAt(p Pos) (Cell, bool) {
	if s.Piece != nil {
		for _, c := range s.Piece.Cells {
			if c == p {
				return Cell{Occupied: true, Color: s.Piece.Color}, true
			}
		}
	}
	if p.Row < 0 || p.Row >= s.Rows || p.Col < 0 || p.Col >= s.Cols {
		return Cell{}, false
	}
	return s.Cells[p.Row][p.Col], false
}

// String renders the board as ASCII: '#' border, 'x' settled, '@' active piece, '.' empty.
func (s Snapshot) String() string {
	var sb strings.Builder
	sb.Grow((s.Cols + 1) * s.Rows)
	for r := 0; r < s.Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < s.Cols; c++ {
			cell, active := s.CellAt(Pos{Row: r, Col: c})
			switch {
			case active:
				sb.WriteByte('@')
			case cell.Border:
				sb.WriteByte('#')
			case cell.Occupied:
				sb.WriteByte('x')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
