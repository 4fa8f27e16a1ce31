package tui

// Surface is the character-grid driver the frame pipeline draws on.
// Implementations wrap a real terminal (see pkg/tcellsurface) or, in tests,
// an in-memory grid (MockSurface).
type Surface interface {
	// Clear blanks the back buffer.
	Clear()

	// Present makes everything written since the last Clear visible.
	Present()

	// WriteCell writes text starting at (row, col) using the colors in t.
	// The token's attributes apply to this write only; implementations must
	// not let them bleed into later writes.
	WriteCell(row, col int, text string, t Token)

	// PollInput returns the next pending input event without blocking.
	// Returns (nil, false) when no input is waiting.
	PollInput() (Event, bool)

	// Size returns the surface dimensions in cells.
	Size() (width, height int)
}
