package tetris

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Status is the engine's position in the Running/Paused/GameOver state machine.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Command is a discrete player request.
type Command int

const (
	CmdMoveLeft Command = iota
	CmdMoveRight
	CmdMoveDown
	CmdRotate
	CmdDrop
	CmdPause
	CmdResume
	CmdRestart
)

// String returns a human-readable command name.
func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "move_left"
	case CmdMoveRight:
		return "move_right"
	case CmdMoveDown:
		return "move_down"
	case CmdRotate:
		return "rotate"
	case CmdDrop:
		return "drop"
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Rules fixes the geometry and rule switches of one game session.
type Rules struct {
	Rows   int
	Cols   int
	Margin int

	// LineScore is awarded per cleared row.
	LineScore int

	// LateralNeedsClearance only allows sideways moves while the piece can
	// also move down, as the classic variant does.
	LateralNeedsClearance bool

	// TopOutOnBlockedDescent ends the game when a freshly spawned piece
	// cannot move down.
	TopOutOnBlockedDescent bool
}

// DefaultRules returns the reference 34×20 board with a 2-cell border.
func DefaultRules() Rules {
	return Rules{
		Rows:                   34,
		Cols:                   20,
		Margin:                 2,
		LineScore:              10,
		TopOutOnBlockedDescent: true,
	}
}

// Anchor returns the fixed spawn position shared by every kind.
func (r Rules) Anchor() Pos {
	return Pos{Row: r.Margin, Col: r.Cols / 2}
}

// Outcome describes what a tick or command did.
type Outcome struct {
	Moved    bool // piece translated or rotated
	Rows     int  // rows descended
	Landed   bool // piece committed to the board
	Cleared  int  // rows cleared by the landing
	GameOver bool // this transition ended the game
	Status   Status
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine debug events to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPicker replaces the seeded uniform piece selection.
func WithPicker(p Picker) Option {
	return func(e *Engine) {
		if p != nil {
			e.picker = p
		}
	}
}

// Engine owns the board, the active piece, the score and the status.
// All mutation goes through Tick and Apply; it is not safe for concurrent use.
type Engine struct {
	rules  Rules
	board  *Board
	piece  *Piece // nil only after a blocked spawn
	picker Picker
	anchor Pos
	logger *log.Logger

	score  int
	lines  int
	ticks  uint64
	status Status
}

// NewEngine creates a running game with its first piece already spawned.
func NewEngine(rules Rules, seed int64, opts ...Option) *Engine {
	e := &Engine{
		rules:  rules,
		board:  NewBoard(rules.Rows, rules.Cols, rules.Margin),
		picker: RandomPicker(rand.New(rand.NewSource(seed))),
		anchor: rules.Anchor(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, k := range Kinds() {
		for _, p := range k.SpawnCells(e.anchor) {
			if !e.board.IsPlayable(p) {
				panic(fmt.Sprintf("tetris: %s piece does not fit at spawn anchor %v", k, e.anchor))
			}
		}
	}

	e.start(&Outcome{})
	return e
}

// Status returns the current state.
func (e *Engine) Status() Status { return e.status }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lines returns the number of rows cleared this session.
func (e *Engine) Lines() int { return e.lines }

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules { return e.rules }

// Tick applies gravity: the piece moves down one row, or lands if it cannot.
// Ticks outside the running state are ignored.
func (e *Engine) Tick() Outcome {
	out := Outcome{Status: e.status}
	if e.status != StatusRunning {
		return out
	}
	e.ticks++

	if e.CanShift(1, 0) {
		e.piece.Translate(1, 0)
		out.Moved = true
		out.Rows = 1
	} else {
		e.land(&out)
	}
	out.Status = e.status
	return out
}

// Apply executes a player command. Commands that are invalid in the current
// state or blocked by the board are ignored and report no movement.
func (e *Engine) Apply(cmd Command) Outcome {
	out := Outcome{Status: e.status}

	switch cmd {
	case CmdRestart:
		e.Restart()
		out.Status = e.status
		return out
	case CmdPause:
		if e.status == StatusRunning {
			e.status = StatusPaused
			e.logger.Debug("paused", "score", e.score)
		}
		out.Status = e.status
		return out
	case CmdResume:
		if e.status == StatusPaused {
			e.status = StatusRunning
			e.logger.Debug("resumed")
		}
		out.Status = e.status
		return out
	}

	if e.status != StatusRunning {
		return out
	}

	switch cmd {
	case CmdMoveLeft:
		out.Moved = e.shiftLateral(-1)
	case CmdMoveRight:
		out.Moved = e.shiftLateral(1)
	case CmdMoveDown:
		if e.CanShift(1, 0) {
			e.piece.Translate(1, 0)
			out.Moved = true
			out.Rows = 1
		}
	case CmdRotate:
		if e.CanRotate() {
			e.piece.Rotate()
			out.Moved = true
		}
	case CmdDrop:
		for e.CanShift(1, 0) {
			e.piece.Translate(1, 0)
			out.Rows++
		}
		out.Moved = out.Rows > 0
	default:
		panic(fmt.Sprintf("tetris: unknown command %d", int(cmd)))
	}
	return out
}

// Restart clears the board, zeroes the score and spawns a fresh piece.
// It is accepted in every state.
func (e *Engine) Restart() {
	e.board.Reset()
	e.start(&Outcome{})
	e.logger.Debug("restarted")
}

// CanShift reports whether every cell of the active piece can move by the
// given offset onto an empty in-bounds cell.
func (e *Engine) CanShift(dRow, dCol int) bool {
	if e.piece == nil {
		return false
	}
	return e.allEmpty(e.piece.Translated(dRow, dCol))
}

// CanRotate reports whether the active piece may rotate and every rotated
// cell is empty.
func (e *Engine) CanRotate() bool {
	if e.piece == nil || !e.piece.CanRotate() {
		return false
	}
	return e.allEmpty(e.piece.Rotated())
}

// CanSpawn reports whether a piece of kind k fits at the spawn anchor.
func (e *Engine) CanSpawn(k Kind) bool {
	return e.allEmpty(k.SpawnCells(e.anchor))
}

// allEmpty short-circuits on the first blocked cell.
func (e *Engine) allEmpty(cells [4]Pos) bool {
	for _, p := range cells {
		if !e.board.IsEmpty(p) {
			return false
		}
	}
	return true
}

func (e *Engine) shiftLateral(dCol int) bool {
	if !e.CanShift(0, dCol) {
		return false
	}
	if e.rules.LateralNeedsClearance && !e.CanShift(1, 0) {
		return false
	}
	e.piece.Translate(0, dCol)
	return true
}

func (e *Engine) start(out *Outcome) {
	e.score = 0
	e.lines = 0
	e.ticks = 0
	e.piece = nil
	e.status = StatusRunning
	e.spawnNext(out)
}

// land commits the piece, clears full rows, scores them and spawns the next piece.
func (e *Engine) land(out *Outcome) {
	if e.piece == nil {
		panic("tetris: landing without an active piece")
	}
	kind := e.piece.Kind()
	e.board.Commit(e.piece.Cells(), e.piece.Color())
	e.piece = nil
	out.Landed = true

	cleared := e.board.ClearFullLines()
	out.Cleared = cleared
	e.lines += cleared
	e.score += cleared * e.rules.LineScore

	e.logger.Debug("piece landed", "kind", kind, "cleared", cleared, "score", e.score)
	e.spawnNext(out)
}

func (e *Engine) spawnNext(out *Outcome) {
	kind := e.picker()
	if !e.CanSpawn(kind) {
		e.endGame(out, "spawn blocked", kind)
		return
	}

	e.piece = Spawn(kind, e.anchor)
	e.logger.Debug("spawned", "kind", kind)

	if e.rules.TopOutOnBlockedDescent && !e.CanShift(1, 0) {
		e.endGame(out, "no room to descend", kind)
	}
}

func (e *Engine) endGame(out *Outcome, reason string, kind Kind) {
	e.status = StatusGameOver
	out.GameOver = true
	e.logger.Info("game over", "reason", reason, "kind", kind, "score", e.score, "lines", e.lines)
}
