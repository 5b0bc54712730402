package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/gpuoverlay/internal/prefs"
)

// reopenLabel is the always-available control shown while the panel is closed.
const reopenLabel = "[ Show GPU Monitor ]"

// HandleMouseMsg handles clicks on the title bar controls, title bar drags and
// the reopen control.
func (m *Model) HandleMouseMsg(msg tea.MouseMsg) {
	if m.closed {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.onReopenControl(msg.X, msg.Y) {
			m.Reopen()
		}
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.press(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if m.dragging {
			m.moveTo(prefs.Point{X: msg.X - m.dragOffset.X, Y: msg.Y - m.dragOffset.Y})
		}

	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.savePosition()
		}
	}
}

// press handles a left-button press. Presses on the collapse or close glyph
// activate them; anywhere else on the top border or title row starts a drag.
func (m *Model) press(x, y int) {
	p := m.Position()
	relX, relY := x-p.X, y-p.Y

	if relX < 0 || relX >= boxWidth || relY < 0 || relY > titleRow {
		return
	}

	if relY == titleRow {
		switch relX {
		case collapseCol:
			m.ToggleCollapse()
			return
		case closeCol:
			m.Close()
			return
		}
	}

	// Pin the current (possibly default) placement so the drag starts from
	// where the panel is actually drawn.
	m.pos = p
	m.hasPos = true
	m.dragging = true
	m.dragOffset = prefs.Point{X: relX, Y: relY}
}

// reopenBounds returns the first column and width of the reopen control on row 0.
func (m Model) reopenBounds() (int, int) {
	w := len([]rune(reopenLabel))
	x := m.width - w - defaultRightMargin
	if x < 0 {
		x = 0
	}
	return x, w
}

func (m Model) onReopenControl(x, y int) bool {
	if y != 0 {
		return false
	}
	start, w := m.reopenBounds()
	return x >= start && x < start+w
}
