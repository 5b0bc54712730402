package overlay

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/gpuoverlay/internal/logger"
	"github.com/rileyhilliard/gpuoverlay/internal/prefs"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
)

// Default placement: one cell in from the right edge, one row down from the top.
const (
	defaultRightMargin = 1
	defaultTop         = 1
)

// Options configure a new overlay.
type Options struct {
	// Store persists position and the closed flag. Nil uses an in-memory store.
	Store prefs.Store
	// Subscription delivers telemetry payloads. Nil leaves the meters at zero.
	Subscription *telemetry.Subscription
	Logger       logger.Logger
}

// Model is the Bubble Tea model for the overlay.
type Model struct {
	width  int
	height int

	// pos is the user-chosen position; hasPos is false until the panel has
	// been dragged, nudged or restored from prefs.
	pos    prefs.Point
	hasPos bool

	collapsed bool
	closed    bool

	dragging   bool
	dragOffset prefs.Point

	readings Readings
	bar      progress.Model

	keys     keyMap
	help     help.Model
	showHelp bool

	store      prefs.Store
	sub        *telemetry.Subscription
	log        logger.Logger
	feedClosed bool
	quitting   bool
}

// eventMsg carries one telemetry payload from the bus.
type eventMsg struct {
	payload telemetry.Payload
}

// feedClosedMsg signals the subscription was closed.
type feedClosedMsg struct{}

// New builds the overlay and restores saved preferences. A malformed saved
// position is ignored and default placement is used.
func New(opts Options) Model {
	store := opts.Store
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	bar := progress.New(
		progress.WithWidth(contentWidth),
		progress.WithoutPercentage(),
		progress.WithSolidFill(string(ColorTierLow)),
	)
	bar.EmptyColor = string(ColorBarEmpty)

	m := Model{
		readings: ReadingsFor(telemetry.Record{}),
		bar:      bar,
		keys:     defaultKeyMap(),
		help:     help.New(),
		store:    store,
		sub:      opts.Subscription,
		log:      log,
	}

	if p, ok := prefs.LoadPosition(store); ok {
		m.pos = p
		m.hasPos = true
	} else if _, saved := store.Get(prefs.KeyPosition); saved {
		log.Debug("ignoring malformed saved position")
	}
	m.closed = prefs.IsClosed(store)

	return m
}

// Init starts listening for telemetry.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.MouseMsg:
		m.HandleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case eventMsg:
		m.Apply(msg.payload)
		return m, m.waitForEvent()

	case feedClosedMsg:
		m.feedClosed = true
		m.log.Info("telemetry feed closed")
	}

	return m, nil
}

// waitForEvent blocks on the next payload. Update re-arms it after each event.
func (m Model) waitForEvent() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		payload, ok := <-sub.C()
		if !ok {
			return feedClosedMsg{}
		}
		return eventMsg{payload: payload}
	}
}

// Apply updates the meters from the first GPU in payload. An empty GPU list
// leaves the current readings untouched.
func (m *Model) Apply(payload telemetry.Payload) {
	rec, ok := payload.First()
	if !ok {
		return
	}
	m.readings = ReadingsFor(rec)
}

// ToggleCollapse hides or shows the meters. Not persisted.
func (m *Model) ToggleCollapse() {
	m.collapsed = !m.collapsed
}

// Close hides the panel and remembers that it was dismissed.
func (m *Model) Close() {
	m.closed = true
	m.dragging = false
	if err := prefs.SetClosed(m.store); err != nil {
		m.log.Error("saving closed state: %v", err)
	}
}

// Reopen shows the panel and forgets the dismissed flag.
func (m *Model) Reopen() {
	m.closed = false
	if err := prefs.ClearClosed(m.store); err != nil {
		m.log.Error("clearing closed state: %v", err)
	}
}

// Readings returns what the meters currently show.
func (m Model) Readings() Readings {
	return m.readings
}

// Closed reports whether the panel is dismissed.
func (m Model) Closed() bool {
	return m.closed
}

// Collapsed reports whether the meters are hidden.
func (m Model) Collapsed() bool {
	return m.collapsed
}

// Dragging reports whether a title-bar drag is in progress.
func (m Model) Dragging() bool {
	return m.dragging
}

// FeedClosed reports whether the telemetry subscription has ended.
func (m Model) FeedClosed() bool {
	return m.feedClosed
}

// panelHeight is the rendered height of the box in rows.
func (m Model) panelHeight() int {
	rows := 2 + 1 // borders + title
	if !m.collapsed {
		rows += meterCount * meterRows
	}
	return rows
}

// Position returns where the panel is drawn: the saved position, or the
// default top-right placement, clamped to the terminal.
func (m Model) Position() prefs.Point {
	p := m.pos
	if !m.hasPos {
		p = prefs.Point{
			X: m.width - boxWidth - defaultRightMargin,
			Y: defaultTop,
		}
	}
	return m.clamp(p)
}

// clamp keeps the whole panel inside the terminal where possible; a terminal
// smaller than the panel pins it to the top-left corner.
func (m Model) clamp(p prefs.Point) prefs.Point {
	maxX := m.width - boxWidth
	maxY := m.height - m.panelHeight()
	p.X = max(0, min(p.X, maxX))
	p.Y = max(0, min(p.Y, maxY))
	return p
}

func (m *Model) moveTo(p prefs.Point) {
	m.pos = m.clamp(p)
	m.hasPos = true
}

func (m *Model) savePosition() {
	if !m.hasPos {
		return
	}
	if err := prefs.SavePosition(m.store, m.pos); err != nil {
		m.log.Error("saving position: %v", err)
	}
}
