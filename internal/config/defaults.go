package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the reference configuration: a 34×20 board with a
// 2-cell border, one row of gravity every 500ms and 10 points per line.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Rows:   34,
			Cols:   20,
			Margin: 2,
		},
		Timing: TimingConfig{
			TickInterval: 500 * time.Millisecond,
			FrameRate:    60,
		},
		Scoring: ScoringConfig{
			LineClear: 10,
		},
		Rules: RulesConfig{
			LateralNeedsClearance:  false,
			TopOutOnBlockedDescent: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
