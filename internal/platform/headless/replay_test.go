package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	_ "github.com/vovakirdan/tui-tetris/internal/tetris"
)

// record plays a scripted session and returns what the journal would hold.
func record(t *testing.T, variant string, seed int64, frames uint64) (storage.Session, string) {
	t.Helper()
	g, err := registry.Create(variant)
	require.NoError(t, err)
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)

	rec := storage.NewRecorder(variant, seed, cfg.TickRate)
	var state core.GameState
	for f := uint64(1); f <= frames; f++ {
		in := core.NewInputFrame()
		switch f % 50 {
		case 5:
			in.Set(core.ActionLeft)
			in.Set(core.ActionLeft)
		case 12:
			in.Set(core.ActionRotate)
		case 30:
			in.Set(core.ActionRight)
		case 45:
			in.Set(core.ActionDrop)
		}
		rec.Record(f, in)
		state = g.Step(in).State
	}

	return rec.Finish(frames, state), g.(registry.Inspector).Board()
}

func TestReplayReproducesSession(t *testing.T) {
	sess, board := record(t, "tetris", 1234, 4000)

	res, err := Replay(sess)
	require.NoError(t, err)

	assert.True(t, res.Matches)
	assert.Equal(t, sess.Score, res.State.Score)
	assert.Equal(t, board, res.Game.(registry.Inspector).Board())
}

func TestReplayClassicVariant(t *testing.T) {
	sess, board := record(t, "tetris_classic", 7, 2000)

	res, err := Replay(sess)
	require.NoError(t, err)
	assert.True(t, res.Matches)
	assert.Equal(t, board, res.Game.(registry.Inspector).Board())
}

func TestReplayDetectsMismatch(t *testing.T) {
	sess, _ := record(t, "tetris", 1234, 600)
	sess.Score += 10

	res, err := Replay(sess)
	require.NoError(t, err)
	assert.False(t, res.Matches)
}

func TestReplayUnknownVariant(t *testing.T) {
	_, err := Replay(storage.Session{Variant: "pong"})
	assert.ErrorContains(t, err, "pong")
}
