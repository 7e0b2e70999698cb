// Package tui runs a game in the terminal with Bubble Tea: the frame clock,
// key bindings, the help footer and colour rendering.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg asks the model to advance the simulation by one frame.
type FrameMsg time.Time

// frameCmd schedules the next frame at the given rate.
func frameCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 60
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
