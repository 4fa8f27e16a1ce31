package tui

import "strconv"

// WidgetID identifies a widget within a Store. IDs are never reused.
type WidgetID uint64

// NoWidget is the zero WidgetID; Create never returns it.
const NoWidget WidgetID = 0

func (id WidgetID) String() string {
	return "widget#" + strconv.FormatUint(uint64(id), 10)
}

// Text is the string a widget paints. Labels size themselves from it.
type Text struct {
	Value string
}

// Position is a widget's absolute cell coordinate.
// It is derived by the layout resolver for any widget with a Parent;
// root widgets author it directly.
type Position struct {
	X, Y uint16
}

// LocalPosition is an authored offset relative to the parent's content cursor.
type LocalPosition struct {
	X, Y uint16
}

// Size is a widget's extent in cells.
type Size struct {
	W, H uint16
}

// Color holds the packed color token used when painting.
type Color struct {
	Token Token
}

// Clickable marks a widget as a hit-test target.
type Clickable struct{}

// Container marks a widget that stacks its children vertically.
type Container struct {
	Padding uint16
	Spacing uint16
}

// Parent is a weak reference to the widget's container.
// The Store owns every widget; a Parent never keeps its target alive.
type Parent struct {
	ID WidgetID
}
