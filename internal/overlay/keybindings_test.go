package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/gpuoverlay/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestHandleKeyMsg_Quit(t *testing.T) {
	for _, k := range []tea.KeyMsg{keyPress("q"), {Type: tea.KeyCtrlC}} {
		m := sized(t, Options{})
		m, cmd := update(t, m, k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestHandleKeyMsg_CollapseAndClose(t *testing.T) {
	store := prefs.NewMemoryStore()
	m := sized(t, Options{Store: store})

	m, _ = update(t, m, keyPress("c"))
	assert.True(t, m.Collapsed())

	m, _ = update(t, m, keyPress("x"))
	assert.True(t, m.Closed())
	assert.True(t, prefs.IsClosed(store))

	// Panel keys do nothing while closed.
	m, _ = update(t, m, keyPress("c"))
	assert.True(t, m.Collapsed())

	m, _ = update(t, m, keyPress("o"))
	assert.False(t, m.Closed())
	assert.False(t, prefs.IsClosed(store))
}

func TestHandleKeyMsg_ReopenWhileOpenIsNoop(t *testing.T) {
	store := prefs.NewMemoryStore()
	m := sized(t, Options{Store: store})

	m, _ = update(t, m, keyPress("o"))
	assert.False(t, m.Closed())
	assert.Empty(t, store.Keys())
}

func TestHandleKeyMsg_Nudge(t *testing.T) {
	tests := []struct {
		key  string
		want prefs.Point
	}{
		{key: "up", want: prefs.Point{X: 79, Y: 0}},
		{key: "k", want: prefs.Point{X: 79, Y: 0}},
		{key: "down", want: prefs.Point{X: 79, Y: 2}},
		{key: "j", want: prefs.Point{X: 79, Y: 2}},
		{key: "left", want: prefs.Point{X: 78, Y: 1}},
		{key: "h", want: prefs.Point{X: 78, Y: 1}},
		{key: "right", want: prefs.Point{X: 80, Y: 1}},
		{key: "l", want: prefs.Point{X: 80, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := prefs.NewMemoryStore()
			m := sized(t, Options{Store: store})

			m, _ = update(t, m, keyPress(tt.key))
			assert.Equal(t, tt.want, m.Position())

			saved, ok := prefs.LoadPosition(store)
			require.True(t, ok)
			assert.Equal(t, tt.want, saved)
		})
	}
}

func TestHandleKeyMsg_NudgeStopsAtEdge(t *testing.T) {
	m := sized(t, Options{})

	// Default placement is one cell from the right edge.
	m, _ = update(t, m, keyPress("right"))
	m, _ = update(t, m, keyPress("right"))
	assert.Equal(t, testWidth-boxWidth, m.Position().X)
}

func TestHandleKeyMsg_NudgeBeforeWindowSize(t *testing.T) {
	store := prefs.NewMemoryStore()
	m := New(Options{Store: store})

	m, _ = update(t, m, keyPress("left"))
	_, saved := store.Get(prefs.KeyPosition)
	assert.False(t, saved)
}

func TestHandleKeyMsg_UnknownKey(t *testing.T) {
	m := sized(t, Options{})
	handled, cmd := m.HandleKeyMsg(keyPress("z"))
	assert.False(t, handled)
	assert.Nil(t, cmd)
}
