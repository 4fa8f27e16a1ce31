package tui

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// Option configures a widget while it is being built.
type Option func(s *Store, id WidgetID)

// TextWidth returns the number of cells text occupies when painted.
func TextWidth(text string) uint16 {
	return saturate(ansi.StringWidth(text))
}

// NewLabel creates a text widget sized to its text.
func (s *Store) NewLabel(text string, opts ...Option) WidgetID {
	id := s.Create()
	mustAttach(s, id, Text{Value: text})
	mustAttach(s, id, Position{})
	mustAttach(s, id, LocalPosition{})
	mustAttach(s, id, Color{})
	mustAttach(s, id, Size{W: TextWidth(text), H: 1})
	s.apply(id, opts)
	return id
}

// NewButton creates a clickable label.
func (s *Store) NewButton(text string, opts ...Option) WidgetID {
	id := s.NewLabel(text)
	mustAttach(s, id, Clickable{})
	s.apply(id, opts)
	return id
}

// NewVBox creates a container that stacks its children top to bottom.
func (s *Store) NewVBox(opts ...Option) WidgetID {
	id := s.Create()
	mustAttach(s, id, Container{})
	mustAttach(s, id, Position{})
	mustAttach(s, id, LocalPosition{})
	mustAttach(s, id, Size{})
	s.apply(id, opts)
	return id
}

// SetText replaces a widget's text. The label is re-measured on the next frame.
func (s *Store) SetText(id WidgetID, text string) bool {
	if Mutate(s, id, func(t *Text) { t.Value = text }) {
		return true
	}
	return Attach(s, id, Text{Value: text}) == nil
}

func (s *Store) apply(id WidgetID, opts []Option) {
	for _, opt := range opts {
		opt(s, id)
	}
}

// mustAttach panics on failure; builders only attach to widgets they just created.
func mustAttach[T any](s *Store, id WidgetID, v T) {
	if err := Attach(s, id, v); err != nil {
		panic(fmt.Sprintf("tui: build %s: %v", id, err))
	}
}

// WithPosition sets the absolute position of a root widget.
func WithPosition(x, y uint16) Option {
	return func(s *Store, id WidgetID) {
		mustAttach(s, id, Position{X: x, Y: y})
	}
}

// WithLocalPosition sets the offset from the parent's content cursor.
func WithLocalPosition(x, y uint16) Option {
	return func(s *Store, id WidgetID) {
		mustAttach(s, id, LocalPosition{X: x, Y: y})
	}
}

// WithSize sets an explicit size. Labels and containers recompute theirs.
func WithSize(w, h uint16) Option {
	return func(s *Store, id WidgetID) {
		mustAttach(s, id, Size{W: w, H: h})
	}
}

// WithColor sets the foreground and background channels.
// An emphasis bit already on the widget is kept.
func WithColor(fg, bg Channel) Option {
	return WithToken(Encode(fg, bg))
}

// WithToken sets a pre-packed color token, keeping any emphasis already
// applied so WithEmphasis works in either order.
func WithToken(t Token) Option {
	return func(s *Store, id WidgetID) {
		tok := t
		if c, ok := Get[Color](s, id); ok && c.Token.IsEmphasized() {
			tok = tok.WithEmphasis()
		}
		mustAttach(s, id, Color{Token: tok})
	}
}

// WithEmphasis sets the emphasis bit on the widget's color token.
func WithEmphasis() Option {
	return func(s *Store, id WidgetID) {
		c, _ := Get[Color](s, id)
		mustAttach(s, id, Color{Token: c.Token.WithEmphasis()})
	}
}

// WithClickable marks the widget as a click target.
func WithClickable() Option {
	return func(s *Store, id WidgetID) {
		mustAttach(s, id, Clickable{})
	}
}

// WithPadding sets a container's padding on all sides.
func WithPadding(p uint16) Option {
	return func(s *Store, id WidgetID) {
		Mutate(s, id, func(c *Container) { c.Padding = p })
	}
}

// WithSpacing sets the gap between a container's children.
func WithSpacing(sp uint16) Option {
	return func(s *Store, id WidgetID) {
		Mutate(s, id, func(c *Container) { c.Spacing = sp })
	}
}

// WithChildren appends children in order. Panics if a child is dead.
func WithChildren(children ...WidgetID) Option {
	return func(s *Store, id WidgetID) {
		for _, child := range children {
			if err := s.AddChild(id, child); err != nil {
				panic(fmt.Sprintf("tui: build %s: %v", id, err))
			}
		}
	}
}
