// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris list              - List available variants
//	tetris play [variant]    - Play (default variant: tetris)
//	tetris replays           - Browse recorded sessions
//	tetris replay <id>       - Re-run a recorded session and check its score
//	tetris config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>       - Override the configured frame rate
//	--seed <value>     - Set RNG seed for a reproducible piece sequence
//	--db <path>        - Session journal (default: ~/.arcade/tetris.db)
//	--log-file <path>  - Log file (default: ~/.arcade/tetris.log)
//	--debug            - Debug logging and the debug footer
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its variants
	_ "github.com/vovakirdan/tui-tetris/internal/tetris"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Falling-block puzzle in your terminal",
	Long: `Stack falling pieces, complete rows to clear them, and keep the
stack below the top of the board.

Every session is recorded (seed plus key presses) so it can be replayed
exactly, either headless to verify the score or on screen to watch it.

Examples:
  tetris play
  tetris play tetris_classic --difficulty hard
  tetris play --seed 42
  tetris replays
  tetris replay 7 --watch`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = timing.frame_rate from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/tetris.db", "Path to the session journal")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/tetris.log", "Log file (empty = no logging while playing)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and the debug footer")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
