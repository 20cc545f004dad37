package asset

import (
	"errors"
	"fmt"

	"github.com/Sternrassler/chute-client/pkg/receipt"
)

var (
	// ErrAlreadyHearted is returned by Heart when a receipt already exists.
	ErrAlreadyHearted = errors.New("asset already hearted")

	// ErrNotHearted is returned by Unheart when there is no receipt.
	ErrNotHearted = errors.New("asset not hearted")
)

// PreconditionError reports a heart operation rejected by local state. No
// request was made.
type PreconditionError struct {
	Key receipt.Key
	Err error
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Key.Album, e.Key.Asset, e.Err)
}

// Unwrap returns ErrAlreadyHearted or ErrNotHearted.
func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// IsPrecondition reports whether err is a rejected heart change.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
