package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnprocessable = errors.New("unprocessable")
	ErrRender        = errors.New("render failed")
)

// Error carries the operation that failed, the API kind used to pick the
// response status, and the underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Kind != nil && e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewKind returns an error of the given kind for op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap annotates err with op. It returns nil for a nil err.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapKind annotates err with op and kind. It returns nil for a nil err.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// status maps an error to its HTTP status and response code.
func status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return statusNotFound, "not_found"
	case errors.Is(err, ErrUnprocessable):
		return statusUnprocessable, "unprocessable"
	case errors.Is(err, ErrRender):
		return statusInternalError, "render_error"
	default:
		return statusInternalError, "internal_error"
	}
}
