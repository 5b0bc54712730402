// Package overlay implements the floating GPU telemetry panel.
//
// The panel is a Bubble Tea model drawn over the whole terminal. It holds
// three meters (utilization, VRAM, temperature) fed from a telemetry.Bus
// subscription, and can be dragged by its title bar, collapsed, closed and
// reopened.
//
// # Message Flow
//
//  1. Init() starts waiting on the bus subscription
//  2. each payload arrives as an eventMsg and is applied inside Update
//  3. Update re-arms the wait, so events apply strictly one after another
//  4. View() renders the panel at its current position
//
// An event whose GPU list is empty changes nothing. Only the first GPU of a
// payload is displayed.
//
// # Persistence
//
// The panel position is saved when a drag is released (or after a keyboard
// nudge) and the closed flag is saved when the panel is closed. Both are read
// once by New. Collapse state is not saved.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C        - Quit
//	c                - Collapse / expand
//	x                - Close
//	o                - Reopen
//	arrows, h/j/k/l  - Move the panel one cell
//	?                - Toggle help line
package overlay
