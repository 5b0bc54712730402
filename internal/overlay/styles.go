package overlay

import (
	"github.com/charmbracelet/lipgloss"
)

// Panel palette.
const (
	ColorPanelBg   = lipgloss.Color("#1a1a1a")
	ColorBorder    = lipgloss.Color("#444444")
	ColorTitle     = lipgloss.Color("#ff5555")
	ColorText      = lipgloss.Color("#ffffff")
	ColorMuted     = lipgloss.Color("#888888")
	ColorBarEmpty  = lipgloss.Color("#333333")
	ColorButtonBg  = lipgloss.Color("#333333")
	ColorTierLow   = lipgloss.Color("#47a0ff")
	ColorTierMed   = lipgloss.Color("#ffad33")
	ColorTierHigh  = lipgloss.Color("#ff4d4d")
	ColorDragFrame = lipgloss.Color("#47a0ff")
)

// Panel geometry in cells. The box adds a border and one cell of padding on
// each side of the content.
const (
	contentWidth = 36
	boxPadding   = 1
	boxFrame     = 1 + boxPadding // border + padding, per side
	boxWidth     = contentWidth + 2*boxFrame
	titleRow     = 1 // first content row, just below the top border
)

// Columns of the title bar controls, relative to the panel's left edge.
const (
	collapseCol = boxFrame + contentWidth - 3
	closeCol    = boxFrame + contentWidth - 1
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, boxPadding)

	PanelDraggingStyle = PanelStyle.
				BorderForeground(ColorDragFrame)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorTitle).
			Bold(true)

	ControlStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ReopenStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorButtonBg)

	HelpLineStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// TierColor maps a tier to its bar colour.
func TierColor(t Tier) lipgloss.Color {
	switch t {
	case TierHigh:
		return ColorTierHigh
	case TierMedium:
		return ColorTierMed
	default:
		return ColorTierLow
	}
}
