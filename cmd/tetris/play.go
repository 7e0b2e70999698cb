package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// menuDefaultPreset is the picker entry that keeps the configured timing.
const menuDefaultPreset = "config"

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start a game of the given variant. Without a variant a picker
for variant and difficulty is shown; with --difficulty or outside a
terminal the default variant (tetris) starts directly.

Controls:
  Left/Right, h/l   - Move sideways
  Down, j           - Move down one row
  Up, k             - Rotate
  Space             - Drop
  P/Esc             - Pause / resume
  R                 - Restart
  ?                 - More help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy     - Gravity every 800ms
  normal   - Gravity every 500ms
  hard     - Gravity every 250ms
  classic  - 500ms, sideways moves need room below

Examples:
  tetris play
  tetris play tetris_classic
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, classic")
}

func runPlay(cmd *cobra.Command, args []string) {
	variant := string(tetris.VariantModern)
	difficulty := flagDifficulty
	switch {
	case len(args) > 0:
		variant = args[0]
	case difficulty == "" && term.IsTerminal(int(os.Stdout.Fd())):
		width, _, _ := term.GetSize(int(os.Stdout.Fd()))
		choice, err := tui.RunMenu(append([]string{menuDefaultPreset}, config.PresetNames()...), width)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if choice.Quit {
			return
		}
		variant = choice.Variant
		if choice.Difficulty != menuDefaultPreset {
			difficulty = choice.Difficulty
		}
	}

	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		os.Exit(1)
	}

	cfg, err := loadGameConfig(flagConfig, difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfgYAML, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	tetris.SetConfig(cfg)
	tetris.SetLogger(logger)

	game, err := registry.Create(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session journal: %v\n", err)
		logger.Warn("session journal disabled", "error", err)
		// Continue without recording
		store = nil
	}

	runErr := tui.Run(game, runtimeConfig(cfg), tui.Options{
		Store:      store,
		ConfigYAML: cfgYAML,
		Logger:     logger,
		Debug:      flagDebug,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game exited", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadGameConfig loads the YAML configuration and applies a difficulty preset.
func loadGameConfig(path, difficulty string) (config.TetrisConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.TetrisConfig{}, err
	}
	cfg, err := config.LoadTetris(path)
	if err != nil {
		return config.TetrisConfig{}, err
	}
	config.ApplyTetrisPreset(&cfg, preset)
	if flagFPS > 0 {
		cfg.Timing.FrameRate = flagFPS
	}
	return cfg, cfg.Validate()
}

// runtimeConfig sizes the screen from the terminal and carries the frame
// rate and seed to the game.
func runtimeConfig(cfg config.TetrisConfig) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Timing.FrameRate,
		Seed:     flagSeed,
	}
}
