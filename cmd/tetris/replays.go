package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagReplaysPlain bool
	flagReplaysLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded sessions",
	Long: `List recorded sessions. In a terminal this opens a browser where
Enter watches the selected session and x deletes it; with --plain, or
when output is not a terminal, it prints a table.

Examples:
  tetris replays
  tetris replays --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagReplaysPlain, "plain", false, "Print a plain table instead of the browser")
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Number of sessions to print with --plain")
}

func runReplays(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if flagReplaysPlain || !term.IsTerminal(fd) {
		if err := printSessions(store, flagReplaysLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(fd); err == nil {
		width, height = w, h
	}

	selected, err := tui.BrowseSessions(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if selected == nil {
		return
	}

	if err := watchSession(store, selected.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSessions(store *storage.Store, limit int) error {
	sessions, err := store.Sessions(limit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to record one.")
		return nil
	}

	fmt.Printf("  %-6s  %-16s  %-8s  %-6s  %-8s  %s\n", "ID", "Variant", "Score", "Lines", "Time", "Date")
	fmt.Printf("  %-6s  %-16s  %-8s  %-6s  %-8s  %s\n", "--", "-------", "-----", "-----", "----", "----")
	for _, s := range sessions {
		row := tui.SessionRow(s)
		fmt.Printf("  %-6s  %-16s  %-8s  %-6s  %-8s  %s\n", row[0], row[1], row[2], row[3], row[4],
			s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
