package pagination

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchInFlight is returned when a fetch is attempted while another one on
	// the same collection has not completed yet.
	ErrFetchInFlight = errors.New("fetch already in flight")

	errNegative = errors.New("must not be negative")
)

// RangeError is returned when a previous page is requested at or below the first
// page in page-number mode. No request is sent.
type RangeError struct {
	Page int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("cannot fetch previous page with index %d", e.Page)
}

// ParamError reports a parameter that could not be interpreted.
type ParamError struct {
	Name  string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%q: %v", e.Name, e.Value, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ParamError) Unwrap() error {
	return e.Err
}
