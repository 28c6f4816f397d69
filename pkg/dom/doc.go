// Package dom is the host tree the binding layer runs against. It wraps a
// golang.org/x/net/html document with the handful of primitives bindings
// need: node kinds, attribute access, editable values, text-node
// enumeration, selector queries, ancestor walks and bubbling event dispatch.
//
// Node identity is stable: a Document hands out exactly one *Node per
// underlying html.Node, so nodes can key side tables.
package dom
