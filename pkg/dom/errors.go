package dom

import "errors"

var (
	// ErrInvalidSelector wraps selector compilation failures.
	ErrInvalidSelector = errors.New("dom: invalid selector")
	// ErrNilReader is returned when Parse receives no input.
	ErrNilReader = errors.New("dom: reader is required")
)
