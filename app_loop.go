package tui

import (
	"context"
	"time"
)

// Run ticks at the configured frame rate until Stop is called, ctx is
// done, or a tick fails. Stop and cancellation return nil; a failed tick
// returns its error.
func (a *App) Run(ctx context.Context) error {
	a.log.Info().Dur("frame", a.frameDuration).Msg("frame loop started")
	defer a.log.Info().Uint64("frames", a.frame).Msg("frame loop stopped")

	for {
		frameStart := time.Now()

		if err := a.Tick(); err != nil {
			return err
		}

		// Sleep for remaining frame time to maintain consistent framerate
		wait := a.frameDuration - time.Since(frameStart)
		if wait < 0 {
			wait = 0
		}
		select {
		case <-time.After(wait):
		case <-a.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop signals Run to exit after the current frame.
// Stop is idempotent - multiple calls are safe.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.stopCh)
	})
}

// Stopped reports whether Stop has been called.
func (a *App) Stopped() bool {
	select {
	case <-a.stopCh:
		return true
	default:
		return false
	}
}

// QueueUpdate enqueues fn to run on the loop goroutine at the start of the
// next Tick. Safe to call from any goroutine. Returns false if the app is
// stopping or the queue is full.
func (a *App) QueueUpdate(fn func()) bool {
	select {
	case <-a.stopCh:
		return false
	default:
	}
	select {
	case a.updateQueue <- fn:
		return true
	default:
		a.log.Warn().Msg("update queue full; update dropped")
		return false
	}
}

func (a *App) drainUpdates() {
	for {
		select {
		case fn := <-a.updateQueue:
			fn()
		default:
			return
		}
	}
}
