package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	_ "github.com/vovakirdan/tui-tetris/internal/tetris"
)

func newGame(t *testing.T) registry.Game {
	t.Helper()
	g, err := registry.Create("tetris")
	require.NoError(t, err)
	return g
}

func testConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func frames(m *Model, n int) {
	for i := 0; i < n; i++ {
		m.Update(FrameMsg(time.Time{}))
	}
}

func board(m *Model) string {
	return m.game.(registry.Inspector).Board()
}

func TestKeysApplyOnNextFrame(t *testing.T) {
	m := NewModel(newGame(t), testConfig(1), Options{})
	before := board(m)

	m.Update(runeKey('h'))
	assert.Equal(t, before, board(m), "keys are buffered until the frame")

	frames(m, 1)
	assert.NotEqual(t, before, board(m))
	assert.Equal(t, uint64(1), m.Frame())
}

func TestResizeKeepsGame(t *testing.T) {
	m := NewModel(newGame(t), testConfig(2), Options{})
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	frames(m, 40)
	before := board(m)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Equal(t, before, board(m))
	assert.Equal(t, uint64(40), m.Frame())
	assert.Equal(t, 120, m.screen.Width())
	assert.Equal(t, 50-footerHeight, m.screen.Height())
}

func TestQuitSavesSession(t *testing.T) {
	store := openStore(t)
	m := NewModel(newGame(t), testConfig(3), Options{Store: store, ConfigYAML: []byte("board: {}\n")})

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	frames(m, 10)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	frames(m, 50)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())

	sessions, err := store.Sessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	sess, err := store.Session(sessions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "tetris", sess.Variant)
	assert.Equal(t, int64(3), sess.Seed)
	assert.Equal(t, uint64(60), sess.Frames)
	assert.Equal(t, "board: {}\n", sess.Config)
	assert.Equal(t, []storage.Input{
		{Frame: 1, Action: core.ActionLeft},
		{Frame: 11, Action: core.ActionDrop},
	}, sess.Inputs)

	// A second quit does not save twice
	m.Update(runeKey('q'))
	sessions, err = store.Sessions(10)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestWatchReproducesRecording(t *testing.T) {
	store := openStore(t)
	m := NewModel(newGame(t), testConfig(9), Options{Store: store})
	for i := 0; i < 20; i++ {
		m.Update(runeKey('h'))
		frames(m, 7)
		m.Update(tea.KeyMsg{Type: tea.KeyUp})
		frames(m, 5)
		m.Update(tea.KeyMsg{Type: tea.KeySpace})
		frames(m, 31)
	}
	want := board(m)
	m.Update(runeKey('q'))

	sessions, err := store.Sessions(1)
	require.NoError(t, err)
	sess, err := store.Session(sessions[0].ID)
	require.NoError(t, err)

	w := NewWatchModel(newGame(t), *sess, core.DefaultConfig(), Options{})
	w.Update(runeKey('h')) // ignored while watching
	frames(w, int(sess.Frames)+25)

	assert.Equal(t, sess.Frames, w.Frame(), "playback stops at the last recorded frame")
	assert.Equal(t, want, board(w))
	assert.Equal(t, sess.Score, w.State().Score)
	assert.Contains(t, w.footer(), "replay finished")
}

func TestViewShowsHelpAndDebug(t *testing.T) {
	m := NewModel(newGame(t), testConfig(1), Options{})
	assert.Contains(t, m.View(), "rotate")

	d := NewModel(newGame(t), testConfig(1), Options{Debug: true})
	footer := d.footer()
	assert.True(t, strings.HasPrefix(footer, "frame=0"), footer)
}
