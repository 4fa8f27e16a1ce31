package tui

// Event is an input event read from a Surface.
// Use a type switch to handle specific event types.
type Event interface {
	// isEvent is a marker method to prevent external implementations.
	isEvent()
}

// ResizeEvent is emitted when the surface dimensions change.
// The pipeline re-queries Surface.Size rather than trusting the payload.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// PointerClickEvent is a primary-button click at cell (X, Y).
// PositionLost is set when the driver saw a click but could not read where
// it happened; such clicks are dropped for the frame.
type PointerClickEvent struct {
	X, Y         int
	PositionLost bool
}

func (PointerClickEvent) isEvent() {}

// OtherEvent carries any input the pipeline does not act on (keys, wheel,
// driver-specific events). It is forwarded to OnInput handlers untouched.
type OtherEvent struct {
	Payload any
}

func (OtherEvent) isEvent() {}
