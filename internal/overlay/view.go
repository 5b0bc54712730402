package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Meter layout: a label row (name left, value right) and a bar row.
const (
	meterCount = 3
	meterRows  = 2
)

const panelTitle = "GPU Monitor"

// Control glyphs on the title bar.
const (
	glyphCollapse = "−"
	glyphExpand   = "+"
	glyphClose    = "×"
)

// View renders the overlay over the whole terminal.
func (m Model) View() string {
	if m.quitting || m.width == 0 || m.height == 0 {
		return ""
	}

	var canvas string
	if m.closed {
		canvas = m.renderReopenControl()
	} else {
		p := m.Position()
		canvas = lipgloss.NewStyle().
			MarginLeft(p.X).
			MarginTop(p.Y).
			Render(m.renderPanel())
	}

	if m.showHelp {
		return m.withHelpLine(canvas)
	}
	return canvas
}

// renderPanel renders the box: title bar, then the meters unless collapsed.
func (m Model) renderPanel() string {
	lines := []string{m.renderTitleBar()}

	if !m.collapsed {
		lines = append(lines,
			m.renderMeter("GPU Utilization:", m.readings.Utilization),
			m.renderMeter("VRAM Usage:", m.readings.VRAM),
			m.renderMeter("GPU Temperature:", m.readings.Temperature),
		)
	}

	style := PanelStyle
	if m.dragging {
		style = PanelDraggingStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderTitleBar lays out "GPU Monitor ... − ×" so the glyphs land on
// collapseCol and closeCol.
func (m Model) renderTitleBar() string {
	toggle := glyphCollapse
	if m.collapsed {
		toggle = glyphExpand
	}
	controls := ControlStyle.Render(toggle + " " + glyphClose)
	title := TitleStyle.Render(panelTitle)

	gap := contentWidth - lipgloss.Width(title) - lipgloss.Width(controls)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + controls
}

// renderMeter renders the label row and the bar row for one meter.
func (m Model) renderMeter(label string, r Reading) string {
	name := LabelStyle.Render(label)
	// Keep the box boxWidth wide; clamp and the glyph columns depend on it.
	text := ansi.Truncate(r.Text, contentWidth-lipgloss.Width(name)-1, "…")
	value := lipgloss.NewStyle().Foreground(TierColor(r.Tier)).Render(text)

	gap := contentWidth - lipgloss.Width(name) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	header := name + strings.Repeat(" ", gap) + value

	bar := m.bar
	bar.FullColor = string(TierColor(r.Tier))
	return header + "\n" + bar.ViewAs(r.Fill/100)
}

// renderReopenControl draws the reopen control on the top row, right-aligned.
func (m Model) renderReopenControl() string {
	x, _ := m.reopenBounds()
	return strings.Repeat(" ", x) + ReopenStyle.Render(reopenLabel)
}

// withHelpLine pins the key help to the bottom row.
func (m Model) withHelpLine(canvas string) string {
	used := lipgloss.Height(canvas)
	pad := m.height - used - 1
	if pad < 0 {
		pad = 0
	}
	return canvas + strings.Repeat("\n", pad+1) + HelpLineStyle.Render(m.help.View(m.keys))
}
