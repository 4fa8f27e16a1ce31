package tui

import (
	"strings"
)

// CellWrite records one WriteCell call.
type CellWrite struct {
	Row, Col int
	Text     string
	Token    Token
}

// MockSurface is an in-memory Surface for testing.
// It records every operation and keeps a cell grid for verification.
type MockSurface struct {
	width, height int
	cells         []Cell
	presented     []Cell
	input         []Event

	writes       []CellWrite
	clearCount   int
	presentCount int
}

// Ensure MockSurface implements Surface.
var _ Surface = (*MockSurface)(nil)

// NewMockSurface creates a blank mock surface with the given dimensions.
func NewMockSurface(width, height int) *MockSurface {
	m := &MockSurface{width: width, height: height}
	m.cells = blankCells(width * height)
	m.presented = blankCells(width * height)
	return m
}

func blankCells(n int) []Cell {
	cells := make([]Cell, max(n, 0))
	for i := range cells {
		cells[i] = blankCell
	}
	return cells
}

// Size returns the surface dimensions.
func (m *MockSurface) Size() (width, height int) {
	return m.width, m.height
}

// Clear blanks the grid and forgets the writes of the previous frame.
func (m *MockSurface) Clear() {
	for i := range m.cells {
		m.cells[i] = blankCell
	}
	m.writes = m.writes[:0]
	m.clearCount++
}

// Present snapshots the grid as the visible frame.
func (m *MockSurface) Present() {
	copy(m.presented, m.cells)
	m.presentCount++
}

// WriteCell writes text at (row, col), clipping at the grid edges.
func (m *MockSurface) WriteCell(row, col int, text string, t Token) {
	m.writes = append(m.writes, CellWrite{Row: row, Col: col, Text: text, Token: t})
	if row < 0 || row >= m.height {
		return
	}
	x := col
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > m.width {
			break
		}
		if x >= 0 {
			m.cells[row*m.width+x] = Cell{Rune: r, Token: t, Width: uint8(w)}
			if w == 2 {
				m.cells[row*m.width+x+1] = Cell{Token: t}
			}
		}
		x += w
	}
}

// PollInput pops the next queued event. Never blocks.
func (m *MockSurface) PollInput() (Event, bool) {
	if len(m.input) == 0 {
		return nil, false
	}
	ev := m.input[0]
	m.input = m.input[1:]
	return ev, true
}

// --- Test helper methods ---

// Queue appends events to be returned by PollInput.
func (m *MockSurface) Queue(events ...Event) {
	m.input = append(m.input, events...)
}

// Click queues a pointer click at (x, y).
func (m *MockSurface) Click(x, y int) {
	m.Queue(PointerClickEvent{X: x, Y: y})
}

// Resize changes the dimensions and queues a ResizeEvent. Content is cleared.
func (m *MockSurface) Resize(width, height int) {
	m.width, m.height = width, height
	m.cells = blankCells(width * height)
	m.presented = blankCells(width * height)
	m.Queue(ResizeEvent{Width: width, Height: height})
}

// Pending returns the number of queued input events.
func (m *MockSurface) Pending() int {
	return len(m.input)
}

// CellAt returns the presented cell at (x, y), or an empty Cell out of bounds.
func (m *MockSurface) CellAt(x, y int) Cell {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Cell{}
	}
	return m.presented[y*m.width+x]
}

// Writes returns the WriteCell calls made since the last Clear.
func (m *MockSurface) Writes() []CellWrite {
	return append([]CellWrite(nil), m.writes...)
}

// ClearCount returns how many times Clear was called.
func (m *MockSurface) ClearCount() int {
	return m.clearCount
}

// PresentCount returns how many times Present was called.
func (m *MockSurface) PresentCount() int {
	return m.presentCount
}

// String renders the presented frame, one line per row.
func (m *MockSurface) String() string {
	return m.render(false)
}

// StringTrimmed is String with trailing spaces removed from each line.
func (m *MockSurface) StringTrimmed() string {
	return m.render(true)
}

func (m *MockSurface) render(trim bool) string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		var line strings.Builder
		for x := 0; x < m.width; x++ {
			cell := m.presented[y*m.width+x]
			if cell.IsContinuation() {
				continue
			}
			if cell.Rune == 0 {
				line.WriteRune(' ')
			} else {
				line.WriteRune(cell.Rune)
			}
		}
		if trim {
			sb.WriteString(strings.TrimRight(line.String(), " "))
		} else {
			sb.WriteString(line.String())
		}
		if y < m.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
