package controller

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-nivo/pkg/scope"
)

// Initializer populates a fresh scope before its view is bound.
type Initializer func(s *scope.Scope)

// Registry stores controller initializers by name so an App can bootstrap
// every controller found in a document.
type Registry struct {
	mu           sync.RWMutex
	initializers map[string]Initializer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		initializers: make(map[string]Initializer),
	}
}

// Register adds init under name. Duplicate names return an error.
func (r *Registry) Register(name string, init Initializer) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if init == nil {
		return fmt.Errorf("%w: %q", ErrInitializerRequired, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.initializers[name]; exists {
		return fmt.Errorf("%w: %q", ErrControllerRegistered, name)
	}
	r.initializers[name] = init
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, init Initializer) {
	if err := r.Register(name, init); err != nil {
		panic(err)
	}
}

// Get retrieves the initializer registered under name.
func (r *Registry) Get(name string) (Initializer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	init, ok := r.initializers[name]
	return init, ok
}

// List returns a sorted list of controller names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.initializers))
	for name := range r.initializers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
