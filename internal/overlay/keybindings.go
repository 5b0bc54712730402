package overlay

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/gpuoverlay/internal/prefs"
)

// keyMap lists the overlay's bindings. It satisfies help.KeyMap.
type keyMap struct {
	Quit     key.Binding
	Collapse key.Binding
	Close    key.Binding
	Reopen   key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Help     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Collapse: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse")),
		Close:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close")),
		Reopen:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "reopen")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Collapse, k.Close, k.Reopen, k.Up, k.Down, k.Left, k.Right, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Collapse, k.Close, k.Reopen},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input. Returns true if the key was handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return true, nil

	case key.Matches(msg, m.keys.Reopen):
		if m.closed {
			m.Reopen()
		}
		return true, nil
	}

	// Everything below acts on the visible panel.
	if m.closed {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Collapse):
		m.ToggleCollapse()
		return true, nil

	case key.Matches(msg, m.keys.Close):
		m.Close()
		return true, nil

	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -1)
		return true, nil

	case key.Matches(msg, m.keys.Down):
		m.nudge(0, 1)
		return true, nil

	case key.Matches(msg, m.keys.Left):
		m.nudge(-1, 0)
		return true, nil

	case key.Matches(msg, m.keys.Right):
		m.nudge(1, 0)
		return true, nil
	}

	return false, nil
}

// nudge moves the panel by one step, clamped, and saves the new position.
func (m *Model) nudge(dx, dy int) {
	if m.width == 0 || m.height == 0 {
		return
	}
	p := m.Position()
	m.moveTo(prefs.Point{X: p.X + dx, Y: p.Y + dy})
	m.savePosition()
}
