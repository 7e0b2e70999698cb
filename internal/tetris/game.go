package tetris

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Variant selects the rule set a Game is registered under.
type Variant string

const (
	VariantModern  Variant = "tetris"
	VariantClassic Variant = "tetris_classic"
)

// Package-level settings applied by the CLI before a game is created.
var (
	sessionConfig = config.DefaultTetrisConfig()
	sessionLogger = log.New(io.Discard)
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.TetrisConfig) {
	sessionConfig = cfg
}

// SetLogger sets the logger handed to engines created afterwards.
func SetLogger(l *log.Logger) {
	if l != nil {
		sessionLogger = l
	}
}

// Game adapts the Engine to the platform frame loop. Gravity ticks are
// derived from platform frames; key actions become engine commands.
type Game struct {
	variant Variant
	engine  *Engine
	logger  *log.Logger

	frame         uint64
	gravity       int // frames since the last gravity tick
	framesPerTick int
}

// New creates a game of the given variant. Reset must be called before Step.
func New(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	registry.Register(string(VariantModern), func() registry.Game {
		return New(VariantModern)
	})
	registry.Register(string(VariantClassic), func() registry.Game {
		return New(VariantClassic)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Tetris (Classic rules)"
	}
	return "Tetris"
}

// RulesFromConfig converts the YAML configuration into engine rules.
func RulesFromConfig(cfg config.TetrisConfig) Rules {
	return Rules{
		Rows:                   cfg.Board.Rows,
		Cols:                   cfg.Board.Cols,
		Margin:                 cfg.Board.Margin,
		LineScore:              cfg.Scoring.LineClear,
		LateralNeedsClearance:  cfg.Rules.LateralNeedsClearance,
		TopOutOnBlockedDescent: cfg.Rules.TopOutOnBlockedDescent,
	}
}

// Reset builds a fresh engine from the session configuration and the seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tc := sessionConfig
	if g.variant == VariantClassic {
		tc.Rules.LateralNeedsClearance = true
	}
	if cfg.TickRate > 0 {
		tc.Timing.FrameRate = cfg.TickRate
	}

	g.logger = sessionLogger.With("game", g.ID())
	g.engine = NewEngine(RulesFromConfig(tc), cfg.Seed, WithLogger(g.logger))
	g.frame = 0
	g.gravity = 0
	g.framesPerTick = tc.FramesPerTick()

	g.logger.Debug("reset", "seed", cfg.Seed, "frames_per_tick", g.framesPerTick,
		"tick", tc.Timing.TickInterval.Round(time.Millisecond))
}

// Step applies this frame's actions and advances gravity.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frame++

	for _, a := range in.Ordered() {
		g.applyAction(a)
	}

	if g.engine.Status() == StatusRunning {
		g.gravity++
		if g.gravity >= g.framesPerTick {
			g.gravity = 0
			g.logOutcome("tick", g.engine.Tick())
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) applyAction(a core.Action) {
	var cmd Command
	switch a {
	case core.ActionRestart:
		g.gravity = 0
		cmd = CmdRestart
	case core.ActionPause:
		cmd = CmdPause
		if g.engine.Status() == StatusPaused {
			cmd = CmdResume
		}
	case core.ActionRotate:
		cmd = CmdRotate
	case core.ActionLeft:
		cmd = CmdMoveLeft
	case core.ActionRight:
		cmd = CmdMoveRight
	case core.ActionDown:
		cmd = CmdMoveDown
	case core.ActionDrop:
		cmd = CmdDrop
	default:
		return
	}
	g.logOutcome(cmd.String(), g.engine.Apply(cmd))
}

func (g *Game) logOutcome(what string, out Outcome) {
	if out.Landed || out.GameOver {
		g.logger.Debug(what, "frame", g.frame, "cleared", out.Cleared,
			"game_over", out.GameOver, "score", g.engine.Score())
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		Lines:    g.engine.Lines(),
		GameOver: g.engine.Status() == StatusGameOver,
		Paused:   g.engine.Status() == StatusPaused,
	}
}

// Snapshot returns the engine snapshot for rendering and replay checks.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// DebugState returns a one-line summary of the game.
func (g *Game) DebugState() string {
	s := g.engine.Snapshot()
	kind := "-"
	if s.Piece != nil {
		kind = s.Piece.Kind.String()
	}
	return fmt.Sprintf("frame=%d ticks=%d status=%s piece=%s score=%d lines=%d",
		g.frame, s.Ticks, s.Status, kind, s.Score, s.Lines)
}

// Board returns the ASCII picture of the board with the active piece.
func (g *Game) Board() string {
	return g.engine.Snapshot().String()
}
