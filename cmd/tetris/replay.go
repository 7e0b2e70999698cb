package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/headless"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded session",
	Long: `Rebuild a recorded session from its seed and key presses.

Without --watch the session runs headless as fast as possible, the final
board is printed and the result is compared with the recorded score.
The command exits with status 1 if they differ.

Examples:
  tetris replay 3
  tetris replay 3 --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the session back on screen")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid session id %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagWatch {
		if err := watchSession(store, id); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	sess, err := loadSession(store, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	tetris.SetLogger(logger)

	res, err := headless.Replay(*sess)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if insp, ok := res.Game.(registry.Inspector); ok {
		fmt.Println(insp.Board())
		fmt.Println()
	}
	fmt.Printf("Session %d (%s, seed %d, %d frames, %d inputs)\n",
		sess.ID, sess.Variant, sess.Seed, sess.Frames, len(sess.Inputs))
	fmt.Printf("  recorded: score %d, lines %d\n", sess.Score, sess.Lines)
	fmt.Printf("  replayed: score %d, lines %d\n", res.State.Score, res.State.Lines)

	if !res.Matches {
		logger.Error("replay diverged", "id", sess.ID)
		fmt.Println("MISMATCH")
		os.Exit(1)
	}
	fmt.Println("OK")
}

// loadSession reads a session with its inputs and installs its recorded
// game configuration.
func loadSession(store *storage.Store, id int64) (*storage.Session, error) {
	sess, err := store.Session(id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("no session with id %d", id)
	}

	cfg := config.DefaultTetrisConfig()
	if sess.Config != "" {
		cfg, err = config.Parse([]byte(sess.Config))
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", id, err)
		}
	}
	tetris.SetConfig(cfg)
	return sess, nil
}

func watchSession(store *storage.Store, id int64) error {
	sess, err := loadSession(store, id)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()
	tetris.SetLogger(logger)

	game, err := registry.Create(sess.Variant)
	if err != nil {
		return err
	}

	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}

	return tui.Watch(game, *sess, cfg, tui.Options{Logger: logger, Debug: flagDebug})
}
