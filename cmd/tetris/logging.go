package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// newLogger builds the program logger. While a TUI owns the terminal the
// logger writes to the --log-file; headless commands log to stderr.
// The returned close function is never nil.
func newLogger(toStderr bool) (*log.Logger, func(), error) {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           level,
	}

	if toStderr {
		if !flagDebug {
			opts.Level = log.WarnLevel
		}
		return log.NewWithOptions(os.Stderr, opts), func() {}, nil
	}

	if flagLogFile == "" {
		return log.NewWithOptions(io.Discard, opts), func() {}, nil
	}

	path, err := expandHome(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
