package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, rules Rules, kinds ...Kind) *Engine {
	t.Helper()
	if len(kinds) == 0 {
		kinds = []Kind{KindI}
	}
	e := NewEngine(rules, 1, WithPicker(FixedPicker(kinds...)))
	require.Equal(t, StatusRunning, e.Status())
	return e
}

func settledCells(e *Engine) []Pos {
	var out []Pos
	for r := range e.board.cells {
		for c, cell := range e.board.cells[r] {
			if cell.Occupied && !cell.Border {
				out = append(out, Pos{r, c})
			}
		}
	}
	return out
}

func TestNewEngineSpawnsFirstPiece(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	s := e.Snapshot()

	require.NotNil(t, s.Piece)
	assert.Equal(t, KindI, s.Piece.Kind)
	assert.Equal(t, [4]Pos{{2, 10}, {3, 10}, {4, 10}, {5, 10}}, s.Piece.Cells)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, StatusRunning, s.Status)
	assert.Empty(t, settledCells(e))
}

func TestVerticalLineLandsOnFloor(t *testing.T) {
	e := newTestEngine(t, DefaultRules())

	for i := 1; i <= 26; i++ {
		out := e.Tick()
		require.True(t, out.Moved, "tick %d should move the piece", i)
		require.False(t, out.Landed)
	}
	assert.Equal(t, 31, e.piece.Cells()[3].Row, "lowest cell should rest on row 31")
	assert.False(t, e.CanShift(1, 0))

	out := e.Tick()
	assert.True(t, out.Landed, "tick 27 should land the piece")
	assert.Equal(t, 0, out.Cleared)

	for i := 28; i <= 30; i++ {
		e.Tick()
	}

	assert.ElementsMatch(t, []Pos{{28, 10}, {29, 10}, {30, 10}, {31, 10}}, settledCells(e))
	assert.Equal(t, StatusRunning, e.Status())
	assert.Equal(t, 0, e.Score())
	// The replacement piece spawned at the anchor and fell three rows.
	assert.Equal(t, [4]Pos{{5, 10}, {6, 10}, {7, 10}, {8, 10}}, e.piece.Cells())
}

func TestLateralMoves(t *testing.T) {
	e := newTestEngine(t, DefaultRules())

	out := e.Apply(CmdMoveLeft)
	assert.True(t, out.Moved)
	assert.Equal(t, 9, e.piece.Cells()[0].Col)

	out = e.Apply(CmdMoveRight)
	assert.True(t, out.Moved)
	assert.Equal(t, 10, e.piece.Cells()[0].Col)

	// Slide into the left wall
	for i := 0; i < 20; i++ {
		e.Apply(CmdMoveLeft)
	}
	assert.Equal(t, 2, e.piece.Cells()[0].Col)
	assert.False(t, e.Apply(CmdMoveLeft).Moved)
}

func TestLateralMoveIsAtomic(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	occupy(e.board, Pos{4, 9})
	before := e.piece.Cells()

	out := e.Apply(CmdMoveLeft)

	assert.False(t, out.Moved)
	assert.Equal(t, before, e.piece.Cells(), "no cell may move when one target is blocked")
}

func TestDownwardMoveIsAtomic(t *testing.T) {
	e := newTestEngine(t, DefaultRules(), KindS)
	// S cells: (2,10) (3,10) (3,11) (4,11); block below only the (3,10) cell.
	occupy(e.board, Pos{4, 10})
	before := e.piece.Cells()

	assert.False(t, e.Apply(CmdMoveDown).Moved)
	assert.Equal(t, before, e.piece.Cells())
}

func TestLateralClearanceRule(t *testing.T) {
	modern := newTestEngine(t, DefaultRules())
	modern.Apply(CmdDrop)
	assert.True(t, modern.Apply(CmdMoveLeft).Moved, "resting pieces may slide by default")

	rules := DefaultRules()
	rules.LateralNeedsClearance = true
	classic := newTestEngine(t, rules)
	assert.True(t, classic.Apply(CmdMoveLeft).Moved, "falling pieces slide in classic mode")
	classic.Apply(CmdDrop)
	assert.False(t, classic.Apply(CmdMoveLeft).Moved, "resting pieces cannot slide in classic mode")
	assert.False(t, classic.Apply(CmdMoveRight).Moved)
}

func TestMoveDownDoesNotLand(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	e.Apply(CmdDrop)

	out := e.Apply(CmdMoveDown)
	assert.False(t, out.Moved)
	assert.False(t, out.Landed)
	assert.Empty(t, settledCells(e))

	assert.True(t, e.Tick().Landed, "landing is detected on the next tick")
}

func TestDrop(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	occupy(e.board, Pos{20, 10})

	out := e.Apply(CmdDrop)

	assert.True(t, out.Moved)
	assert.Equal(t, 14, out.Rows)
	assert.Equal(t, 19, e.piece.Cells()[3].Row)
	assert.False(t, out.Landed)
	assert.Len(t, settledCells(e), 1)
}

func TestRotate(t *testing.T) {
	e := newTestEngine(t, DefaultRules())

	out := e.Apply(CmdRotate)
	assert.True(t, out.Moved)
	assert.Equal(t, [4]Pos{{3, 9}, {3, 10}, {3, 11}, {3, 12}}, e.piece.Cells())
}

func TestRotateBlocked(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	occupy(e.board, Pos{3, 12})
	before := e.piece.Cells()

	assert.False(t, e.CanRotate())
	assert.False(t, e.Apply(CmdRotate).Moved)
	assert.Equal(t, before, e.piece.Cells())
}

func TestRotateSquareRejected(t *testing.T) {
	e := newTestEngine(t, DefaultRules(), KindO)
	before := e.piece.Cells()

	assert.False(t, e.Apply(CmdRotate).Moved)
	assert.Equal(t, before, e.piece.Cells())
}

func TestLineClearScoring(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	// Row 31 full except the column the line piece falls down.
	occupy(e.board, rowCells(e.board, 31, 10)...)
	occupy(e.board, Pos{30, 2})

	e.Apply(CmdDrop)
	out := e.Tick()

	assert.True(t, out.Landed)
	assert.Equal(t, 1, out.Cleared)
	assert.Equal(t, 10, e.Score())
	assert.Equal(t, 1, e.Lines())
	// Row 30 (marker plus the piece's next cell) shifted into row 31.
	assert.ElementsMatch(t,
		[]Pos{{31, 2}, {31, 10}, {30, 10}, {29, 10}},
		settledCells(e))
}

func TestScoreOnlyChangesOnClears(t *testing.T) {
	rules := DefaultRules()
	rules.LineScore = 25
	e := newTestEngine(t, rules)
	occupy(e.board, rowCells(e.board, 31, 10)...)
	occupy(e.board, rowCells(e.board, 30, 10)...)

	e.Apply(CmdMoveLeft)
	e.Apply(CmdMoveRight)
	e.Apply(CmdRotate)
	e.Apply(CmdRotate)
	e.Apply(CmdRotate)
	e.Apply(CmdRotate)
	assert.Equal(t, 0, e.Score())

	e.Apply(CmdDrop)
	out := e.Tick()
	assert.Equal(t, 2, out.Cleared)
	assert.Equal(t, 50, e.Score())

	// A landing with no clears adds nothing
	e.Apply(CmdDrop)
	out = e.Tick()
	assert.True(t, out.Landed)
	assert.Equal(t, 0, out.Cleared)
	assert.Equal(t, 50, e.Score())
}

func TestBlockedSpawnEndsGame(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	e.Apply(CmdDrop)

	anchor := e.Rules().Anchor()
	e.board.Commit(KindI.SpawnCells(anchor), KindI.Shape().Color)
	require.False(t, e.CanSpawn(KindI))

	out := e.Tick()

	assert.True(t, out.Landed)
	assert.True(t, out.GameOver)
	assert.Equal(t, StatusGameOver, e.Status())
	assert.Nil(t, e.Snapshot().Piece, "no piece is spawned into occupied cells")
}

func TestTopOutWhenSpawnCannotDescend(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	e.Apply(CmdDrop)
	occupy(e.board, Pos{6, 10})

	out := e.Tick()

	assert.True(t, out.GameOver)
	assert.NotNil(t, e.Snapshot().Piece, "the blocked piece stays visible")

	rules := DefaultRules()
	rules.TopOutOnBlockedDescent = false
	lenient := newTestEngine(t, rules)
	lenient.Apply(CmdDrop)
	occupy(lenient.board, Pos{6, 10})
	assert.False(t, lenient.Tick().GameOver)
	assert.Equal(t, StatusRunning, lenient.Status())
}

func TestGameOverIsTerminal(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	e.Apply(CmdDrop)
	e.board.Commit(KindI.SpawnCells(e.Rules().Anchor()), KindI.Shape().Color)
	e.Tick()
	require.Equal(t, StatusGameOver, e.Status())

	before := e.Snapshot()
	for _, cmd := range []Command{CmdMoveLeft, CmdMoveRight, CmdMoveDown, CmdRotate, CmdDrop, CmdPause, CmdResume} {
		assert.False(t, e.Apply(cmd).Moved, cmd.String())
	}
	e.Tick()
	assert.Equal(t, before, e.Snapshot())
}

func TestRestartFromGameOver(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	occupy(e.board, rowCells(e.board, 31, 10)...)
	e.Apply(CmdDrop)
	e.Tick()
	require.Equal(t, 10, e.Score())
	e.Apply(CmdDrop)
	e.board.Commit(KindI.SpawnCells(e.Rules().Anchor()), KindI.Shape().Color)
	e.Tick()
	require.Equal(t, StatusGameOver, e.Status())

	out := e.Apply(CmdRestart)

	assert.Equal(t, StatusRunning, out.Status)
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 0, e.Lines())
	assert.Empty(t, settledCells(e))
	assert.Equal(t, 200, e.board.BorderCount())
	s := e.Snapshot()
	require.NotNil(t, s.Piece)
	assert.Equal(t, KindI.SpawnCells(e.Rules().Anchor()), s.Piece.Cells)
}

func TestRestartWhileRunningAndPaused(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	e.Tick()
	e.Apply(CmdPause)

	e.Apply(CmdRestart)
	assert.Equal(t, StatusRunning, e.Status())
	assert.Equal(t, uint64(0), e.Snapshot().Ticks)
}

func TestPauseAndResume(t *testing.T) {
	e := newTestEngine(t, DefaultRules())

	assert.Equal(t, StatusPaused, e.Apply(CmdPause).Status)
	before := e.piece.Cells()

	assert.False(t, e.Tick().Moved, "ticks are ignored while paused")
	for _, cmd := range []Command{CmdMoveLeft, CmdMoveRight, CmdMoveDown, CmdRotate, CmdDrop} {
		assert.False(t, e.Apply(cmd).Moved, cmd.String())
	}
	assert.Equal(t, before, e.piece.Cells())
	assert.Equal(t, StatusPaused, e.Apply(CmdPause).Status, "pause while paused is a no-op")

	assert.Equal(t, StatusRunning, e.Apply(CmdResume).Status)
	assert.Equal(t, StatusRunning, e.Apply(CmdResume).Status, "resume while running is a no-op")
	assert.True(t, e.Tick().Moved)
}

func TestBorderSurvivesPlay(t *testing.T) {
	e := NewEngine(DefaultRules(), 42)
	for i := 0; i < 5000 && e.Status() == StatusRunning; i++ {
		switch i % 7 {
		case 0:
			e.Apply(CmdMoveLeft)
		case 2:
			e.Apply(CmdRotate)
		case 4:
			e.Apply(CmdMoveRight)
		case 5:
			e.Apply(CmdDrop)
		}
		e.Tick()
		require.Equal(t, 200, e.board.BorderCount(), "iteration %d", i)
	}
	assert.Equal(t, StatusGameOver, e.Status(), "stacking at the center eventually tops out")
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() Snapshot {
		e := NewEngine(DefaultRules(), 2024)
		for i := 0; i < 400; i++ {
			if i%3 == 0 {
				e.Apply(CmdMoveLeft)
			}
			if i%11 == 0 {
				e.Apply(CmdRotate)
			}
			e.Tick()
		}
		return e.Snapshot()
	}
	assert.Equal(t, play(), play())
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	s := e.Snapshot()
	s.Cells[10][10] = Cell{Occupied: true}
	s.Piece.Cells[0] = Pos{0, 0}

	assert.True(t, e.board.IsEmpty(Pos{10, 10}))
	assert.Equal(t, Pos{2, 10}, e.piece.Cells()[0])
}

func TestSnapshotString(t *testing.T) {
	rules := Rules{Rows: 10, Cols: 8, Margin: 1, LineScore: 10}
	e := newTestEngine(t, rules, KindO)
	lines := []rune(e.Snapshot().String())

	// Anchor is (1, 4): the square covers columns 4 and 5 of rows 1 and 2.
	row1 := string(lines[1*9 : 1*9+8])
	assert.Equal(t, "#...@@.#", row1)
	assert.Equal(t, "########", string(lines[0:8]))
}
