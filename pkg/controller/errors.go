package controller

import "errors"

var (
	// ErrControllerNotFound signals that no element declares the requested
	// controller name.
	ErrControllerNotFound = errors.New("controller: root element not found")
	// ErrAlreadyAttached signals that the root element already owns a scope.
	ErrAlreadyAttached = errors.New("controller: root element already has a scope")
	// ErrControllerRegistered is returned when a name is registered twice.
	ErrControllerRegistered = errors.New("controller: controller already registered")
	// ErrInitializerRequired is returned for a nil initializer.
	ErrInitializerRequired = errors.New("controller: initializer is required")
	// ErrNameRequired is returned for a blank controller name.
	ErrNameRequired = errors.New("controller: name is required")
)
