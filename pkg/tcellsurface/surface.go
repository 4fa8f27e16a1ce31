// Package tcellsurface implements tui.Surface on top of a tcell screen.
package tcellsurface

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	tui "github.com/grindlemire/grid-tui"
)

// eventBufferSize bounds how many raw tcell events wait between frames.
const eventBufferSize = 128

// ErrNoColors is returned when the terminal reports fewer than 8 colors.
var ErrNoColors = errors.New("terminal does not support colors")

// Surface is a tui.Surface backed by a tcell.Screen.
// A background goroutine pumps tcell's blocking PollEvent into a buffered
// channel so PollInput never blocks.
type Surface struct {
	screen tcell.Screen
	styles map[tui.Token]tcell.Style
	events chan tcell.Event
	done   chan struct{}
	log    zerolog.Logger

	buttons tcell.ButtonMask
}

var _ tui.Surface = (*Surface)(nil)

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger for driver diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Surface) {
		s.log = l.With().Str("component", "tcellsurface").Logger()
	}
}

// New opens the controlling terminal.
func New(opts ...Option) (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	return NewWithScreen(screen, opts...)
}

// NewWithScreen initializes screen and wraps it. Tests pass a
// tcell.SimulationScreen here.
func NewWithScreen(screen tcell.Screen, opts ...Option) (*Surface, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	if screen.Colors() < 8 {
		screen.Fini()
		return nil, ErrNoColors
	}

	s := &Surface{
		screen: screen,
		styles: make(map[tui.Token]tcell.Style, 128),
		events: make(chan tcell.Event, eventBufferSize),
		done:   make(chan struct{}),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	screen.HideCursor()
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.Clear()
	screen.Show()
	s.registerStyles()

	go s.pump()
	return s, nil
}

// registerStyles precomputes a style for every color pair, with and
// without emphasis.
func (s *Surface) registerStyles() {
	for _, t := range tui.AllTokens() {
		s.styles[t] = styleFor(t)
		s.styles[t.WithEmphasis()] = styleFor(t.WithEmphasis())
	}
}

func styleFor(t tui.Token) tcell.Style {
	style := tcell.StyleDefault
	if t.IsSet() {
		fg, bg := t.Decode()
		style = style.Foreground(tcell.PaletteColor(int(fg))).Background(tcell.PaletteColor(int(bg)))
	}
	if t.IsEmphasized() {
		style = style.Bold(true)
	}
	return style
}

func (s *Surface) style(t tui.Token) tcell.Style {
	if style, ok := s.styles[t]; ok {
		return style
	}
	return styleFor(t)
}

func (s *Surface) pump() {
	defer close(s.done)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		default:
			s.log.Warn().Msg("input buffer full; event dropped")
		}
	}
}

// Clear blanks the back buffer.
func (s *Surface) Clear() {
	s.screen.Clear()
}

// Present flushes the back buffer to the terminal.
func (s *Surface) Present() {
	s.screen.Show()
}

// Size returns the terminal dimensions.
func (s *Surface) Size() (width, height int) {
	return s.screen.Size()
}

// WriteCell writes text at (row, col). tcell styles are per cell, so the
// token's attributes cannot leak into later writes.
func (s *Surface) WriteCell(row, col int, text string, t tui.Token) {
	style := s.style(t)
	x := col
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.screen.SetContent(x, row, r, nil, style)
		x += w
	}
}

// PollInput translates the next buffered tcell event. Mouse events other
// than a primary-button press are consumed without producing an event.
func (s *Surface) PollInput() (tui.Event, bool) {
	for {
		var ev tcell.Event
		select {
		case ev = <-s.events:
		default:
			return nil, false
		}
		if out, ok := s.translate(ev); ok {
			return out, true
		}
	}
}

func (s *Surface) translate(ev tcell.Event) (tui.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		w, h := e.Size()
		return tui.ResizeEvent{Width: w, Height: h}, true
	case *tcell.EventMouse:
		buttons := e.Buttons()
		pressed := buttons&tcell.Button1 != 0 && s.buttons&tcell.Button1 == 0
		s.buttons = buttons
		if !pressed {
			return nil, false
		}
		x, y := e.Position()
		return tui.PointerClickEvent{X: x, Y: y, PositionLost: x < 0 || y < 0}, true
	default:
		return tui.OtherEvent{Payload: ev}, true
	}
}

// Close restores the terminal and stops the input pump.
func (s *Surface) Close() {
	s.screen.Fini()
	<-s.done
}
