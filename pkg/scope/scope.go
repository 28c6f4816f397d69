package scope

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-nivo/pkg/dom"
	"github.com/goliatone/go-nivo/pkg/keypath"
)

// Scope holds the live model of one controller and the bindings that
// render it.
type Scope struct {
	id        string
	values    map[string]any
	registry  *Registry
	root      *dom.Node
	modelAttr string
	logger    *zap.Logger
}

// New constructs an unbound Scope.
func New(options ...Option) *Scope {
	s := &Scope{
		id:        uuid.NewString(),
		values:    make(map[string]any),
		registry:  NewRegistry(),
		modelAttr: DefaultModelAttribute,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// ID identifies the scope in logs.
func (s *Scope) ID() string { return s.id }

// Root returns the element passed to BindView, or nil before binding.
func (s *Scope) Root() *dom.Node { return s.root }

// Registry exposes the binding registry.
func (s *Scope) Registry() *Registry { return s.registry }

// ModelAttribute returns the input binding attribute name.
func (s *Scope) ModelAttribute() string { return s.modelAttr }

// Get returns the value stored under key, without path traversal.
func (s *Scope) Get(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Resolve looks key up as a flat key first and then as a dot path,
// returning "" when nothing is found.
func (s *Scope) Resolve(key string) any {
	return keypath.Resolve(s.values, key)
}

// Values returns a shallow copy of the model.
func (s *Scope) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// Set stores value under key and re-renders every location registered
// under key. Keys without bindings only update the model.
func (s *Scope) Set(key string, value any) {
	s.values[key] = value
	for _, binding := range s.registry.entries[key] {
		s.render(binding, value)
	}
}

// Refresh re-renders key with the value already stored for it.
func (s *Scope) Refresh(key string) {
	s.Set(key, s.values[key])
}

func (s *Scope) render(binding Binding, value any) {
	switch b := binding.(type) {
	case *TextBinding:
		// every placeholder of the node is resolved again, not only key
		content := RenderTemplate(b.template, func(key string) string {
			return keypath.String(s.Resolve(key))
		})
		b.node.SetText(content)
	case *InputBinding:
		writeValue(b.node, keypath.String(value))
	}
}

func writeValue(node *dom.Node, value string) {
	if node.Value() == value {
		return
	}
	node.SetValue(value)
}

// BindView discovers bindings under root. Text nodes carrying placeholders
// are registered first, each unique key rendering immediately from the
// current model; inputs declaring the model attribute follow. A scope binds
// once; later calls return ErrAlreadyBound.
func (s *Scope) BindView(root *dom.Node) error {
	if root == nil {
		return ErrNilRoot
	}
	if s.root != nil {
		return fmt.Errorf("%w: scope %s", ErrAlreadyBound, s.id)
	}
	s.root = root

	textNodes := root.TextNodes(func(node *dom.Node) bool {
		return HasPlaceholder(node.Text())
	})
	textBindings := 0
	for _, node := range textNodes {
		template := node.Text()
		keys := PlaceholderKeys(template)
		if len(keys) == 0 {
			continue
		}
		binding := &TextBinding{node: node, template: template, keys: keys}
		for _, key := range uniqueKeys(keys) {
			s.registry.Add(key, binding)
			textBindings++
			s.Set(key, s.Resolve(key))
		}
	}

	inputs, err := root.QuerySelectorAll("[" + s.modelAttr + "]")
	if err != nil {
		return fmt.Errorf("scope: query inputs: %w", err)
	}
	inputBindings := 0
	for _, node := range inputs {
		key, _ := node.Attr(s.modelAttr)
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		writeValue(node, keypath.String(s.Resolve(key)))
		s.registry.Add(key, &InputBinding{node: node, key: key})
		inputBindings++
	}

	s.logger.Debug("scope bound",
		zap.String("scope", s.id),
		zap.Int("text_bindings", textBindings),
		zap.Int("input_bindings", inputBindings),
	)
	return nil
}
