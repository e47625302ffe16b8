package layout

import (
	"errors"
	"fmt"
)

// Domain errors for keymap construction.
var (
	// ErrMissingHomeRow indicates no row in the description is marked "home".
	ErrMissingHomeRow = errors.New("layout: no row marked as the home row")

	// ErrDuplicateKey indicates a produced character is claimed by more than one key.
	ErrDuplicateKey = errors.New("layout: character produced by more than one key")

	// ErrMissingLower indicates a key element without the required 'lower' attribute.
	ErrMissingLower = errors.New("layout: key missing required 'lower' attribute")

	// ErrBadPosition indicates a missing or non-numeric key position.
	ErrBadPosition = errors.New("layout: key position missing or not numeric")

	// ErrBadCharacter indicates a 'lower' value that is neither a single
	// character nor a known special key name.
	ErrBadCharacter = errors.New("layout: not a single character or known special key")

	// ErrShiftedShift indicates a shift key declared with its own shifted form.
	ErrShiftedShift = errors.New("layout: shift keys cannot carry a shifted mapping")
)

// Error wraps a construction error with the row and key it occurred on.
type Error struct {
	Row     string
	Key     string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("row %q key %q: %v", e.Row, e.Key, e.Wrapped)
	}
	if e.Row != "" {
		return fmt.Sprintf("row %q: %v", e.Row, e.Wrapped)
	}
	return e.Wrapped.Error()
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
