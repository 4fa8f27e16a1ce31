package tui

// ClickEvent is delivered to the observers of a clicked widget.
type ClickEvent struct {
	Widget WidgetID
}

// HitTest returns the first clickable widget, in store order, whose
// rectangle contains (x, y). Bounds are half-open on both axes.
//
// There is no z-order: when clickable widgets overlap, whichever was
// created first wins. Avoid overlapping click targets if that matters.
func HitTest(s *Store, x, y int) (WidgetID, bool) {
	for _, id := range s.Widgets() {
		if !Has[Clickable](s, id) {
			continue
		}
		pos, ok := Get[Position](s, id)
		if !ok {
			continue
		}
		size, ok := Get[Size](s, id)
		if !ok {
			continue
		}
		if contains(pos, size, x, y) {
			return id, true
		}
	}
	return NoWidget, false
}

func contains(pos Position, size Size, x, y int) bool {
	return x >= int(pos.X) && x < int(pos.X)+int(size.W) &&
		y >= int(pos.Y) && y < int(pos.Y)+int(size.H)
}

// Dispatcher routes click notifications to observers registered per widget.
type Dispatcher struct {
	observers map[WidgetID][]func(ClickEvent)
}

// NewDispatcher creates a Dispatcher with no observers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{observers: make(map[WidgetID][]func(ClickEvent))}
}

// Observe registers fn to run whenever id is clicked.
func (d *Dispatcher) Observe(id WidgetID, fn func(ClickEvent)) {
	d.observers[id] = append(d.observers[id], fn)
}

// Forget drops every observer of id.
func (d *Dispatcher) Forget(id WidgetID) {
	delete(d.observers, id)
}

// DispatchClick hit-tests (x, y) and notifies the observers of the first
// match. Returns the widget that was hit, if any.
func (d *Dispatcher) DispatchClick(s *Store, x, y int) (WidgetID, bool) {
	id, ok := HitTest(s, x, y)
	if !ok {
		return NoWidget, false
	}
	ev := ClickEvent{Widget: id}
	for _, fn := range d.observers[id] {
		fn(ev)
	}
	return id, true
}

// Prune drops observers of widgets that no longer exist.
func (d *Dispatcher) Prune(s *Store) {
	for id := range d.observers {
		if !s.Alive(id) {
			delete(d.observers, id)
		}
	}
}
