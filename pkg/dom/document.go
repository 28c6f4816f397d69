package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// MutationType identifies the kind of view write a Mutation records.
type MutationType int

const (
	// MutationText records a text node content write.
	MutationText MutationType = iota + 1
	// MutationValue records an editable value write.
	MutationValue
	// MutationAttribute records an attribute write.
	MutationAttribute
)

func (t MutationType) String() string {
	switch t {
	case MutationText:
		return "text"
	case MutationValue:
		return "value"
	case MutationAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Mutation describes one write applied to the tree.
type Mutation struct {
	Type     MutationType
	Target   *Node
	Name     string
	OldValue string
	NewValue string
}

// MutationObserver receives every write applied through the Node API.
type MutationObserver func(Mutation)

// Option configures a Document before the markup is parsed.
type Option func(*Document)

// WithMutationObserver registers an observer notified on every write.
func WithMutationObserver(observer MutationObserver) Option {
	return func(d *Document) {
		if observer != nil {
			d.observers = append(d.observers, observer)
		}
	}
}

// WithSanitizer runs the raw markup through policy before parsing.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(d *Document) {
		d.sanitizer = policy
	}
}

// Document owns a parsed tree together with the listener table and the
// node identity map.
type Document struct {
	root      *html.Node
	nodes     map[*html.Node]*Node
	listeners map[*Node]map[string][]Listener
	observers []MutationObserver
	sanitizer *bluemonday.Policy
}

// Parse reads HTML markup into a Document.
func Parse(r io.Reader, options ...Option) (*Document, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	doc := &Document{
		nodes:     make(map[*html.Node]*Node),
		listeners: make(map[*Node]map[string][]Listener),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(doc)
	}

	if doc.sanitizer != nil {
		r = doc.sanitizer.SanitizeReader(r)
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	doc.root = root
	return doc, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(markup string, options ...Option) (*Document, error) {
	return Parse(strings.NewReader(markup), options...)
}

// Root returns the document node, the top of every ancestor walk.
func (d *Document) Root() *Node {
	return d.wrap(d.root)
}

// Body returns the body element, or nil when the tree has none.
func (d *Document) Body() *Node {
	body, _ := d.Root().QuerySelector("body")
	return body
}

// Node returns the stable wrapper for raw. Nil maps to nil.
func (d *Document) Node(raw *html.Node) *Node {
	return d.wrap(raw)
}

// QuerySelector returns the first element under the document matching sel.
func (d *Document) QuerySelector(sel string) (*Node, error) {
	return d.Root().QuerySelector(sel)
}

// QuerySelectorAll returns every element under the document matching sel,
// in document order.
func (d *Document) QuerySelectorAll(sel string) ([]*Node, error) {
	return d.Root().QuerySelectorAll(sel)
}

// Observe registers an additional mutation observer.
func (d *Document) Observe(observer MutationObserver) {
	if observer == nil {
		return
	}
	d.observers = append(d.observers, observer)
}

// Render writes the current tree as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the tree, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) wrap(raw *html.Node) *Node {
	if raw == nil {
		return nil
	}
	if n, ok := d.nodes[raw]; ok {
		return n
	}
	n := &Node{doc: d, raw: raw}
	d.nodes[raw] = n
	return n
}

func (d *Document) notify(m Mutation) {
	for _, observer := range d.observers {
		observer(m)
	}
}
