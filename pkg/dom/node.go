package dom

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Kind tags a node so callers never have to probe the underlying type.
type Kind int

const (
	// KindOther covers comments, doctypes and anything else without a role
	// in binding.
	KindOther Kind = iota
	// KindElement is an element node such as <div> or <input>.
	KindElement
	// KindText is a character data node; placeholders live here.
	KindText
	// KindDocument is the document root above <html>.
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindDocument:
		return "document"
	default:
		return "other"
	}
}

// Node is a handle onto one html.Node of a Document.
type Node struct {
	doc *Document
	raw *html.Node
}

// Kind reports the node kind.
func (n *Node) Kind() Kind {
	if n == nil || n.raw == nil {
		return KindOther
	}
	switch n.raw.Type {
	case html.ElementNode:
		return KindElement
	case html.TextNode:
		return KindText
	case html.DocumentNode:
		return KindDocument
	default:
		return KindOther
	}
}

// Raw exposes the underlying html.Node.
func (n *Node) Raw() *html.Node {
	return n.raw
}

// Document returns the owning document.
func (n *Node) Document() *Document {
	return n.doc
}

// Parent returns the parent node, or nil at the top of the tree.
func (n *Node) Parent() *Node {
	if n == nil || n.raw == nil {
		return nil
	}
	return n.doc.wrap(n.raw.Parent)
}

// Children returns the direct children in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for child := n.raw.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, n.doc.wrap(child))
	}
	return out
}

// TagName returns the lower-case element name, or "" for non-elements.
func (n *Node) TagName() string {
	if n.Kind() != KindElement {
		return ""
	}
	return strings.ToLower(n.raw.Data)
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if n.Kind() != KindElement {
		return "", false
	}
	for _, attr := range n.raw.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr writes the named attribute, appending it when absent.
func (n *Node) SetAttr(name, value string) {
	if n.Kind() != KindElement {
		return
	}
	old, _ := n.Attr(name)
	n.setAttr(name, value)
	n.doc.notify(Mutation{Type: MutationAttribute, Target: n, Name: name, OldValue: old, NewValue: value})
}

// RemoveAttr drops the named attribute.
func (n *Node) RemoveAttr(name string) {
	if n.Kind() != KindElement {
		return
	}
	old, ok := n.Attr(name)
	if !ok {
		return
	}
	n.removeAttr(name)
	n.doc.notify(Mutation{Type: MutationAttribute, Target: n, Name: name, OldValue: old})
}

func (n *Node) setAttr(name, value string) {
	for i, attr := range n.raw.Attr {
		if attr.Namespace == "" && attr.Key == name {
			n.raw.Attr[i].Val = value
			return
		}
	}
	n.raw.Attr = append(n.raw.Attr, html.Attribute{Key: name, Val: value})
}

func (n *Node) removeAttr(name string) {
	kept := n.raw.Attr[:0]
	for _, attr := range n.raw.Attr {
		if attr.Namespace == "" && attr.Key == name {
			continue
		}
		kept = append(kept, attr)
	}
	n.raw.Attr = kept
}

// Text returns a text node's content, or the concatenated text content of
// an element's subtree.
func (n *Node) Text() string {
	if n == nil || n.raw == nil {
		return ""
	}
	if n.raw.Type == html.TextNode {
		return n.raw.Data
	}
	var b strings.Builder
	collectText(n.raw, &b)
	return b.String()
}

func collectText(raw *html.Node, b *strings.Builder) {
	for child := raw.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
			continue
		}
		collectText(child, b)
	}
}

// SetText replaces a text node's content. On elements it replaces all
// children with a single text node.
func (n *Node) SetText(content string) {
	if n == nil || n.raw == nil {
		return
	}
	old := n.Text()
	switch n.raw.Type {
	case html.TextNode:
		n.raw.Data = content
	case html.ElementNode:
		n.replaceChildrenWithText(content)
	default:
		return
	}
	n.doc.notify(Mutation{Type: MutationText, Target: n, OldValue: old, NewValue: content})
}

// replaceChildrenWithText keeps a lone text child and rewrites it in place
// so wrappers held for it stay attached.
func (n *Node) replaceChildrenWithText(content string) {
	if child := n.raw.FirstChild; child != nil && child.NextSibling == nil && child.Type == html.TextNode {
		child.Data = content
		return
	}
	for child := n.raw.FirstChild; child != nil; {
		next := child.NextSibling
		n.raw.RemoveChild(child)
		delete(n.doc.nodes, child)
		child = next
	}
	n.raw.AppendChild(&html.Node{Type: html.TextNode, Data: content})
}

// QuerySelector returns the first descendant element matching sel, or nil.
func (n *Node) QuerySelector(sel string) (*Node, error) {
	matcher, err := compile(sel)
	if err != nil {
		return nil, err
	}
	return n.doc.wrap(cascadia.Query(n.raw, matcher)), nil
}

// QuerySelectorAll returns every descendant element matching sel in
// document order. The node itself is never included.
func (n *Node) QuerySelectorAll(sel string) ([]*Node, error) {
	matcher, err := compile(sel)
	if err != nil {
		return nil, err
	}
	found := cascadia.QueryAll(n.raw, matcher)
	out := make([]*Node, 0, len(found))
	for _, raw := range found {
		out = append(out, n.doc.wrap(raw))
	}
	return out, nil
}

// TextNodes enumerates the descendant text nodes accepted by filter, in
// document order. A nil filter accepts every text node.
func (n *Node) TextNodes(filter func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*html.Node)
	walk = func(raw *html.Node) {
		for child := raw.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				wrapped := n.doc.wrap(child)
				if filter == nil || filter(wrapped) {
					out = append(out, wrapped)
				}
				continue
			}
			walk(child)
		}
	}
	walk(n.raw)
	return out
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent() {
		if cur == n {
			return true
		}
	}
	return false
}

// OuterHTML renders the node and its subtree.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n.raw); err != nil {
		return ""
	}
	return buf.String()
}
