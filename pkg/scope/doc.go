// Package scope owns the model side of a binding: the live values of one
// controller and the registry of view locations that depend on each key.
//
// A Scope discovers its bindings once, through BindView, and from then on
// every Set re-renders the registered locations synchronously and in
// registration order. Text locations are always re-rendered from the
// template captured at discovery time, never from the node's current
// content. A Scope is not safe for concurrent use; the view it drives is
// single-threaded.
package scope
