package tui

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	defaultFrameDuration   = time.Second / 30
	defaultUpdateQueueSize = 256
	defaultEventsPerFrame  = 64
)

// App drives the frame pipeline over a Surface and a Store.
//
// Each Tick runs, in order: queued updates, Clear, input polling (resize,
// click dispatch, forwarding), label auto-sizing, layout, paint, Present.
// App is single-threaded; only QueueUpdate and Stop may be called from
// other goroutines.
type App struct {
	surface  Surface
	store    *Store
	clicks   *Dispatcher
	log      zerolog.Logger
	handlers []func(Event)

	width, height int
	frame         uint64

	// Event loop fields
	updateQueue chan func()
	stopCh      chan struct{}
	stopOnce    sync.Once

	// Configuration (set via options)
	frameDuration   time.Duration
	updateQueueSize int
	eventsPerFrame  int
}

// NewApp creates an App that paints onto surface.
func NewApp(surface Surface, opts ...AppOption) (*App, error) {
	if surface == nil {
		return nil, errors.New("tui: nil surface")
	}
	app := &App{
		surface:         surface,
		clicks:          NewDispatcher(),
		log:             zerolog.Nop(),
		stopCh:          make(chan struct{}),
		frameDuration:   defaultFrameDuration,
		updateQueueSize: defaultUpdateQueueSize,
		eventsPerFrame:  defaultEventsPerFrame,
	}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, errors.Wrap(err, "tui: apply option")
		}
	}
	if app.store == nil {
		app.store = NewStore()
	}
	app.updateQueue = make(chan func(), app.updateQueueSize)
	app.width, app.height = surface.Size()
	return app, nil
}

// Store returns the widget store the app lays out and paints.
func (a *App) Store() *Store {
	return a.store
}

// Size returns the surface dimensions observed at the last resize.
func (a *App) Size() (width, height int) {
	return a.width, a.height
}

// Frame returns the number of completed ticks.
func (a *App) Frame() uint64 {
	return a.frame
}

// OnClick registers fn to run when id is clicked.
func (a *App) OnClick(id WidgetID, fn func(ClickEvent)) {
	a.clicks.Observe(id, fn)
}

// OnInput registers fn to receive every OtherEvent polled from the surface.
func (a *App) OnInput(fn func(Event)) {
	a.handlers = append(a.handlers, fn)
}

// Tick runs one full frame. A ConsistencyError aborts the frame before
// anything is painted and is returned to the caller.
func (a *App) Tick() error {
	a.drainUpdates()

	a.surface.Clear()
	a.pollInput()

	if resized := AutoSizeLabels(a.store); len(resized) > 0 {
		a.log.Debug().Int("count", len(resized)).Msg("labels resized")
	}

	if err := ResolveLayout(a.store); err != nil {
		a.log.Error().Err(err).Uint64("frame", a.frame).Msg("layout failed")
		return errors.WithMessagef(err, "frame %d", a.frame)
	}

	Paint(a.store, a.surface)
	a.surface.Present()

	a.store.ClearChanged()
	a.clicks.Prune(a.store)
	a.frame++
	return nil
}

// pollInput drains pending input, up to the per-frame cap.
func (a *App) pollInput() {
	for i := 0; i < a.eventsPerFrame; i++ {
		ev, ok := a.surface.PollInput()
		if !ok {
			return
		}
		a.handleEvent(ev)
	}
}

func (a *App) handleEvent(ev Event) {
	switch e := ev.(type) {
	case ResizeEvent:
		a.width, a.height = a.surface.Size()
		a.log.Info().Int("width", a.width).Int("height", a.height).Msg("surface resized")
	case PointerClickEvent:
		if e.PositionLost {
			a.log.Debug().Msg("click dropped: pointer position unavailable")
			return
		}
		id, hit := a.clicks.DispatchClick(a.store, e.X, e.Y)
		a.log.Debug().Int("x", e.X).Int("y", e.Y).Bool("hit", hit).Stringer("widget", id).Msg("click")
	default:
		for _, fn := range a.handlers {
			fn(ev)
		}
	}
}
