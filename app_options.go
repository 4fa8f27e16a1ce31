package tui

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// AppOption is a functional option for configuring an App.
type AppOption func(*App) error

// WithFrameRate sets the target frame rate for Run.
// Default is 30 fps. Valid range is 1-240 fps.
func WithFrameRate(fps int) AppOption {
	return func(a *App) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		a.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithLogger sets the logger used by the pipeline. Default discards everything.
func WithLogger(l zerolog.Logger) AppOption {
	return func(a *App) error {
		a.log = l.With().Str("component", "tui").Logger()
		return nil
	}
}

// WithStore makes the app lay out and paint an existing Store.
func WithStore(s *Store) AppOption {
	return func(a *App) error {
		if s == nil {
			return fmt.Errorf("store must not be nil")
		}
		a.store = s
		return nil
	}
}

// WithUpdateQueueSize sets the capacity of the QueueUpdate buffer.
// Default is 256. Must be at least 1.
func WithUpdateQueueSize(size int) AppOption {
	return func(a *App) error {
		if size < 1 {
			return fmt.Errorf("update queue size must be at least 1")
		}
		a.updateQueueSize = size
		return nil
	}
}

// WithMaxEventsPerFrame caps how many input events one Tick consumes.
// Default is 64. Must be at least 1.
func WithMaxEventsPerFrame(n int) AppOption {
	return func(a *App) error {
		if n < 1 {
			return fmt.Errorf("events per frame must be at least 1")
		}
		a.eventsPerFrame = n
		return nil
	}
}
