package scene

import "fmt"

// ParseError reports a scene file that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

func newParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", path, e.Message)
}

// Unwrap exposes the underlying decoder error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a decoded scene that does not describe a valid
// widget tree. Field is a path such as "widgets[0].children[2].kind".
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func newValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
