// Package ui provides styled one-line output for gpuoverlay's non-TUI
// commands (sample, prefs).
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess (green) - Completed actions
//	ColorError   (red)   - Failures
//	ColorWarning (yellow) - Cancelled or skipped actions
//	ColorMuted   (gray)  - Secondary text such as file paths
//
// Use DisableColors() for monochrome output (the --no-color flag).
package ui
