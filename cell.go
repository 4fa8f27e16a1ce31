package tui

import "github.com/mattn/go-runewidth"

// Cell is one character cell of a painted grid.
// Wide characters occupy two cells; the second is a continuation with Width 0.
type Cell struct {
	Rune  rune
	Token Token
	Width uint8
}

// blankCell is a space with the default color pair.
var blankCell = Cell{Rune: ' ', Width: 1}

// IsContinuation returns true if this cell is the trailing half of a wide character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// RuneWidth returns the display width of r in cells (0 for combining marks).
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}
