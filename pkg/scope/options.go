package scope

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultModelAttribute is the attribute that declares an input binding.
const DefaultModelAttribute = "nv-model"

// Option customises a Scope.
type Option func(*Scope)

// WithID overrides the generated scope identifier.
func WithID(id string) Option {
	return func(s *Scope) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			s.id = trimmed
		}
	}
}

// WithLogger sets the logger used for discovery diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scope) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithModelAttribute changes the attribute BindView looks for on inputs.
func WithModelAttribute(name string) Option {
	return func(s *Scope) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.modelAttr = trimmed
		}
	}
}

// WithValues seeds the model before any binding exists.
func WithValues(values map[string]any) Option {
	return func(s *Scope) {
		for key, value := range values {
			s.values[key] = value
		}
	}
}
