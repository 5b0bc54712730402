package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "⚠"
)

// Success renders "✓ msg" in green.
func Success(msg string) string {
	return successStyle.Render(SymbolSuccess) + " " + msg
}

// Fail renders "✗ msg" in red.
func Fail(msg string) string {
	return errorStyle.Render(SymbolFail) + " " + msg
}

// Warning renders "⚠ msg" in yellow.
func Warning(msg string) string {
	return warningStyle.Render(SymbolWarning) + " " + msg
}

// Muted renders secondary text.
func Muted(msg string) string {
	return mutedStyle.Render(msg)
}
