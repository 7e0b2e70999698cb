package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressMenu(m MenuModel, msgs ...tea.KeyMsg) (MenuModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(MenuModel)
	}
	return m, cmd
}

func TestMenuSelectsVariantAndDifficulty(t *testing.T) {
	m := NewMenuModel([]string{"normal", "easy", "hard"}, 80)
	if len(m.items) < 2 {
		t.Fatalf("expected both variants registered, got %v", m.items)
	}

	m, cmd := pressMenu(m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if cmd == nil {
		t.Fatal("enter should quit the menu")
	}

	r := m.Result()
	if r.Quit || r.Variant != "tetris_classic" || r.Difficulty != "hard" {
		t.Errorf("Result() = %+v", r)
	}
}

func TestMenuQuit(t *testing.T) {
	m, _ := pressMenu(NewMenuModel(nil, 80), runeKey('q'))
	if r := m.Result(); !r.Quit {
		t.Errorf("Result() = %+v, expected quit", r)
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	m, _ := pressMenu(NewMenuModel(nil, 80),
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
	)
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}
}
