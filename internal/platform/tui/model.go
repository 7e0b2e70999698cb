package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// footerHeight is the number of terminal rows kept for the help line.
const footerHeight = 1

// Options configures a Model.
type Options struct {
	// Store receives the session journal on quit. Nil disables recording.
	Store *storage.Store

	// ConfigYAML is the effective game configuration saved with the session.
	ConfigYAML []byte

	Logger *log.Logger

	// Debug shows the game's debug line in the footer.
	Debug bool
}

// Model is the Bubble Tea model for one game session. In play mode key
// presses drive the game; in watch mode a recorded session is fed back in.
type Model struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model
	logger *log.Logger
	debug  bool

	input core.InputFrame
	state core.GameState
	frame uint64

	store    *storage.Store
	recorder *storage.Recorder
	saved    bool

	// watch mode
	playback  map[uint64]core.InputFrame
	lastFrame uint64

	quitting bool
}

// NewModel creates a play-mode model and resets the game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) *Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := newModel(game, cfg, opts)
	if opts.Store != nil {
		m.store = opts.Store
		m.recorder = storage.NewRecorder(game.ID(), cfg.Seed, cfg.TickRate)
		m.recorder.SetConfig(opts.ConfigYAML)
	}
	m.logger.Info("session started", "game", game.ID(), "seed", cfg.Seed, "fps", cfg.TickRate)
	return m
}

// NewWatchModel creates a model that plays back a recorded session.
func NewWatchModel(game registry.Game, sess storage.Session, cfg core.RuntimeConfig, opts Options) *Model {
	cfg.Seed = sess.Seed
	if sess.FrameRate > 0 {
		cfg.TickRate = sess.FrameRate
	}

	m := newModel(game, cfg, opts)
	m.playback = sess.InputFrames()
	m.lastFrame = sess.Frames
	m.logger.Info("watching session", "id", sess.ID, "game", game.ID(), "frames", sess.Frames)
	return m
}

func newModel(game registry.Game, cfg core.RuntimeConfig, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	game.Reset(cfg)

	return &Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 1)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		logger: logger,
		debug:  opts.Debug,
		input:  core.NewInputFrame(),
		state:  game.State(),
	}
}

// Init starts the frame clock.
func (m *Model) Init() tea.Cmd {
	return frameCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case FrameMsg:
		return m, m.handleFrame()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	if m.watching() {
		return m, nil
	}
	if a := m.keys.Action(msg); a != core.ActionNone {
		m.input.Set(a)
	}
	return m, nil
}

// handleResize only changes the drawing area. The simulation does not
// depend on the terminal size, so the game keeps running.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 1))
	m.help.Width = msg.Width
}

func (m *Model) handleFrame() tea.Cmd {
	if m.watching() {
		if m.frame >= m.lastFrame {
			return frameCmd(m.config.TickRate)
		}
		if in, ok := m.playback[m.frame+1]; ok {
			m.input = in.Clone()
		}
	}

	m.frame++
	if m.recorder != nil {
		m.recorder.Record(m.frame, m.input)
	}

	wasOver := m.state.GameOver
	m.state = m.game.Step(m.input).State
	m.input.Clear()

	if m.state.GameOver && !wasOver {
		m.logger.Info("game over", "score", m.state.Score, "lines", m.state.Lines, "frame", m.frame)
	}

	return frameCmd(m.config.TickRate)
}

func (m *Model) watching() bool {
	return m.playback != nil
}

// quit saves the session journal once.
func (m *Model) quit() {
	m.quitting = true
	if m.recorder == nil || m.saved || m.frame == 0 {
		return
	}
	m.saved = true

	sess := m.recorder.Finish(m.frame, m.state)
	id, err := m.store.SaveSession(sess)
	if err != nil {
		m.logger.Error("could not save session", "error", err)
		return
	}
	m.logger.Info("session saved", "id", id, "score", sess.Score, "lines", sess.Lines,
		"frames", sess.Frames, "inputs", len(sess.Inputs))
}

// saveScreenshot writes the current screen as plain text under ~/.arcade/screenshots.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return err
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the game screen and the footer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.footer()))
	return b.String()
}

func (m *Model) footer() string {
	if m.debug {
		if insp, ok := m.game.(registry.Inspector); ok {
			return insp.DebugState()
		}
	}
	if m.watching() {
		status := "replaying"
		if m.frame >= m.lastFrame {
			status = "replay finished"
		}
		return fmt.Sprintf("%s  frame %d/%d  •  q quit", status, m.frame, m.lastFrame)
	}
	return m.help.View(m.keys)
}

// Frame returns the number of frames simulated so far.
func (m *Model) Frame() uint64 { return m.frame }

// State returns the game state after the last frame.
func (m *Model) State() core.GameState { return m.state }

// Run plays game in the terminal until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	return runProgram(NewModel(game, cfg, opts))
}

// Watch plays back a recorded session in the terminal.
func Watch(game registry.Game, sess storage.Session, cfg core.RuntimeConfig, opts Options) error {
	opts.Store = nil
	return runProgram(NewWatchModel(game, sess, cfg, opts))
}

func runProgram(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
