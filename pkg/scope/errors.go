package scope

import "errors"

var (
	// ErrAlreadyBound is returned when BindView runs a second time on a scope.
	ErrAlreadyBound = errors.New("scope: view already bound")
	// ErrNilRoot is returned when BindView receives no root element.
	ErrNilRoot = errors.New("scope: root element is required")
)
