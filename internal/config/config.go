// Package config provides YAML-based game configuration loading and
// difficulty presets for the falling-block game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TetrisConfig contains all configuration for one game session.
// It is fixed when the session starts.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Rules   RulesConfig   `yaml:"rules"`
}

// BoardConfig defines the grid geometry.
type BoardConfig struct {
	Rows   int `yaml:"rows"`
	Cols   int `yaml:"cols"`
	Margin int `yaml:"margin"`
}

// TimingConfig defines gravity and the platform frame rate.
type TimingConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	FrameRate    int           `yaml:"frame_rate"`
}

// ScoringConfig defines points awarded.
type ScoringConfig struct {
	LineClear int `yaml:"line_clear"`
}

// RulesConfig toggles rule variants.
type RulesConfig struct {
	LateralNeedsClearance  bool `yaml:"lateral_needs_clearance"`
	TopOutOnBlockedDescent bool `yaml:"top_out_on_blocked_descent"`
}

// tallestPiece is the spawn height of the vertical line piece.
const tallestPiece = 4

// Validate rejects geometry and timing the engine cannot run with.
func (c TetrisConfig) Validate() error {
	var errs []error
	b := c.Board
	if b.Margin < 1 {
		errs = append(errs, fmt.Errorf("board.margin must be at least 1, got %d", b.Margin))
	}
	if b.Rows-2*b.Margin < tallestPiece+1 {
		errs = append(errs, fmt.Errorf("board.rows %d leaves no room below the spawn point", b.Rows))
	}
	// Pieces reach one column either side of the anchor at cols/2.
	if anchor := b.Cols / 2; anchor-1 < b.Margin || anchor+1 >= b.Cols-b.Margin {
		errs = append(errs, fmt.Errorf("board.cols %d too narrow for margin %d", b.Cols, b.Margin))
	}
	if c.Timing.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_interval must be positive, got %s", c.Timing.TickInterval))
	}
	if c.Timing.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.frame_rate must be positive, got %d", c.Timing.FrameRate))
	}
	if c.Scoring.LineClear < 0 {
		errs = append(errs, fmt.Errorf("scoring.line_clear must not be negative, got %d", c.Scoring.LineClear))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// FramesPerTick converts the gravity interval into platform frames (at least 1).
func (c TetrisConfig) FramesPerTick() int {
	frame := time.Second / time.Duration(max(c.Timing.FrameRate, 1))
	return max(int(c.Timing.TickInterval/frame), 1)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic"
)

// PresetNames lists the presets in menu order, the default first.
func PresetNames() []string {
	return []string{
		string(DifficultyNormal),
		string(DifficultyEasy),
		string(DifficultyHard),
		string(DifficultyClassic),
	}
}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyClassic:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or classic)", s)
	}
}

// TickIntervalForPreset returns the gravity interval for a preset.
// Zero means keep the configured interval.
func TickIntervalForPreset(preset DifficultyPreset) time.Duration {
	switch preset {
	case DifficultyEasy:
		return 800 * time.Millisecond
	case DifficultyNormal, DifficultyClassic:
		return 500 * time.Millisecond
	case DifficultyHard:
		return 250 * time.Millisecond
	default:
		return 0
	}
}
