package scope

import "github.com/goliatone/go-nivo/pkg/dom"

// BindingKind distinguishes the two view-location forms.
type BindingKind int

const (
	// BindingText is a text node rendered from a placeholder template.
	BindingText BindingKind = iota + 1
	// BindingInput is an editable element mirroring one key.
	BindingInput
)

func (k BindingKind) String() string {
	switch k {
	case BindingText:
		return "text"
	case BindingInput:
		return "input"
	default:
		return "unknown"
	}
}

// Binding is a view location registered under a model key.
type Binding interface {
	Kind() BindingKind
	Node() *dom.Node
}

// TextBinding ties a text node to the template it was discovered with. One
// TextBinding is shared by every key the template references.
type TextBinding struct {
	node     *dom.Node
	template string
	keys     []string
}

func (b *TextBinding) Kind() BindingKind { return BindingText }
func (b *TextBinding) Node() *dom.Node   { return b.node }

// Template returns the content captured at discovery.
func (b *TextBinding) Template() string { return b.template }

// Keys returns the placeholder keys in template order, repeats included.
func (b *TextBinding) Keys() []string {
	return append([]string(nil), b.keys...)
}

// InputBinding ties an editable element to a key.
type InputBinding struct {
	node *dom.Node
	key  string
}

func (b *InputBinding) Kind() BindingKind { return BindingInput }
func (b *InputBinding) Node() *dom.Node   { return b.node }

// Key returns the declared model key.
func (b *InputBinding) Key() string { return b.key }

// Registry maps model keys to their view locations, preserving insertion
// order per key and first-registration order across keys.
type Registry struct {
	entries map[string][]Binding
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]Binding)}
}

// Add appends binding to the list registered under key.
func (r *Registry) Add(key string, binding Binding) {
	if binding == nil {
		return
	}
	if _, exists := r.entries[key]; !exists {
		r.order = append(r.order, key)
	}
	r.entries[key] = append(r.entries[key], binding)
}

// Bindings returns a copy of the locations registered under key.
func (r *Registry) Bindings(key string) []Binding {
	return append([]Binding(nil), r.entries[key]...)
}

// Keys returns every registered key in first-registration order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.order...)
}

// Len counts registered locations across all keys.
func (r *Registry) Len() int {
	total := 0
	for _, bindings := range r.entries {
		total += len(bindings)
	}
	return total
}
