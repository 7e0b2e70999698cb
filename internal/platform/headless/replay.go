// Package headless drives a game without a terminal, for replays and checks.
package headless

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Result is the state a replay ended in.
type Result struct {
	Game  registry.Game
	State core.GameState

	// Matches reports whether the replayed score and lines equal the recorded ones.
	Matches bool
}

// Replay rebuilds the recorded variant from its seed and feeds it the
// recorded inputs frame by frame, for as many frames as were played.
func Replay(sess storage.Session) (Result, error) {
	g, err := registry.Create(sess.Variant)
	if err != nil {
		return Result{}, fmt.Errorf("replay: session %d: %w", sess.ID, err)
	}

	cfg := core.DefaultConfig()
	cfg.Seed = sess.Seed
	if sess.FrameRate > 0 {
		cfg.TickRate = sess.FrameRate
	}
	g.Reset(cfg)

	state := Run(g, sess.Frames, sess.InputFrames())
	return Result{
		Game:    g,
		State:   state,
		Matches: state.Score == sess.Score && state.Lines == sess.Lines,
	}, nil
}

// Run steps g for frames frames, applying inputs keyed by 1-based frame number.
func Run(g registry.Game, frames uint64, inputs map[uint64]core.InputFrame) core.GameState {
	empty := core.NewInputFrame()
	state := g.State()
	for f := uint64(1); f <= frames; f++ {
		in, ok := inputs[f]
		if !ok {
			in = empty
		}
		state = g.Step(in).State
	}
	return state
}
