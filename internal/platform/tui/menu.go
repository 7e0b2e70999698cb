package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// MenuKeyMap defines the key bindings for the variant picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "a")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "d", "tab")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// MenuModel picks a variant and a difficulty before a game starts.
type MenuModel struct {
	items        []registry.GameInfo
	difficulties []string
	cursor       int
	difficulty   int
	width        int
	keys         MenuKeyMap
	selected     bool
	quitting     bool
}

// NewMenuModel lists the registered variants. difficulties are the preset
// names cycled with left/right; the first one is preselected.
func NewMenuModel(difficulties []string, width int) MenuModel {
	return MenuModel{
		items:        registry.List(),
		difficulties: difficulties,
		width:        width,
		keys:         DefaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Prev):
			if n := len(m.difficulties); n > 0 {
				m.difficulty = (m.difficulty + n - 1) % n
			}
		case key.Matches(msg, m.keys.Next):
			if n := len(m.difficulties); n > 0 {
				m.difficulty = (m.difficulty + 1) % n
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				m.selected = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("93"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.selected {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("T E T R I S"), m.width, 11))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuActiveStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width, len(item.Title)+2))
		b.WriteString("\n")
	}

	if len(m.difficulties) > 0 {
		d := fmt.Sprintf("< difficulty: %s >", m.difficulties[m.difficulty])
		b.WriteString("\n")
		b.WriteString(centerText(d, m.width, len(d)))
		b.WriteString("\n")
	}

	hint := "Up/Down: Variant  |  Left/Right: Difficulty  |  Enter: Play  |  Q: Quit"
	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render(hint), m.width, len(hint)))
	b.WriteString("\n")

	return b.String()
}

// centerText pads text so that its visible part, visible columns wide, is centered.
func centerText(text string, width, visible int) string {
	if visible >= width {
		return text
	}
	return strings.Repeat(" ", (width-visible)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Variant    string
	Difficulty string
	Quit       bool
}

// Result reports the selection. Quit is set when nothing was chosen.
func (m MenuModel) Result() MenuResult {
	if !m.selected || len(m.items) == 0 {
		return MenuResult{Quit: true}
	}
	r := MenuResult{Variant: m.items[m.cursor].ID}
	if len(m.difficulties) > 0 {
		r.Difficulty = m.difficulties[m.difficulty]
	}
	return r
}

// RunMenu runs the variant picker.
func RunMenu(difficulties []string, width int) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(difficulties, width), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Quit: true}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}
	return m.Result(), nil
}
