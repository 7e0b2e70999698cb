package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	hudHeight = 2 // status line and separator
	cellWidth = 2 // screen columns per board cell
)

// visibleArea returns the board region drawn on screen: the playable area
// plus one ring of border cells.
func visibleArea(s Snapshot) (top, bottom, left, right int) {
	return s.Margin - 1, s.Rows - s.Margin + 1, s.Margin - 1, s.Cols - s.Margin + 1
}

// Render draws the board, the active piece, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}
	s := g.engine.Snapshot()

	g.renderHUD(dst, s)

	top, bottom, left, right := visibleArea(s)
	boardW := (right - left) * cellWidth
	boardH := bottom - top
	if dst.Width() < boardW || dst.Height() < boardH+hudHeight {
		renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", boardW, boardH+hudHeight))
		return
	}

	offsetX := (dst.Width() - boardW) / 2
	offsetY := hudHeight
	for r := top; r < bottom; r++ {
		for c := left; c < right; c++ {
			cell, active := s.CellAt(Pos{Row: r, Col: c})
			x := offsetX + (c-left)*cellWidth
			y := offsetY + (r - top)
			drawCell(dst, x, y, cell, active)
		}
	}

	switch s.Status {
	case StatusGameOver:
		renderOverlay(dst, "Game Over", "Press R to restart")
	case StatusPaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func drawCell(dst *core.Screen, x, y int, cell Cell, active bool) {
	switch {
	case cell.Border:
		dst.SetColored(x, y, '▒', cell.Color)
		dst.SetColored(x+1, y, '▒', cell.Color)
	case cell.Occupied || active:
		dst.SetColored(x, y, '█', cell.Color)
		dst.SetColored(x+1, y, '█', cell.Color)
	default:
		dst.SetColored(x, y, '·', core.ColorGray)
		dst.Set(x+1, y, ' ')
	}
}

func (g *Game) renderHUD(dst *core.Screen, s Snapshot) {
	hud := fmt.Sprintf(" %s — Score: %d  Lines: %d", g.Title(), s.Score, s.Lines)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 1, '─')
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(w, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	drawCenteredIn(dst, box, box.Y+1, line1)
	drawCenteredIn(dst, box, box.Y+3, line2)
}

func drawCenteredIn(dst *core.Screen, box core.Rect, y int, text string) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawText(x, y, text)
}
