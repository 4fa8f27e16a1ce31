package tui

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingParent is reported when a widget's Parent no longer exists in the Store.
	ErrMissingParent = errors.New("parent widget does not exist")
	// ErrCycle is reported when an edge would make a container its own descendant.
	ErrCycle = errors.New("container cycle")
	// ErrDeadWidget is returned when an operation names a widget that was never created or was destroyed.
	ErrDeadWidget = errors.New("widget does not exist")
)

// ConsistencyError is a fatal widget-tree error. Layout state is not
// trustworthy after one is raised, so the frame that hit it is abandoned.
type ConsistencyError struct {
	Widget WidgetID
	Parent WidgetID
	Err    error
}

func (e *ConsistencyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("consistency error: %s (parent %s): %v", e.Widget, e.Parent, e.Err)
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *ConsistencyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsConsistencyError reports whether err is (or wraps) a ConsistencyError.
func IsConsistencyError(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}
