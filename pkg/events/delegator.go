// Package events implements event delegation on top of the dom listener
// table: one listener on a root node dispatches to the nearest ancestor of
// the event target that matches a selector.
package events

import (
	"strings"

	"github.com/goliatone/go-nivo/pkg/dom"
)

// Callback receives the node the event was delegated to and the event.
type Callback func(node *dom.Node, evt *dom.Event)

// On fires cb for every eventType event reaching root, passing the raw
// event target.
func On(root *dom.Node, eventType string, cb Callback) {
	if root == nil || cb == nil {
		return
	}
	root.AddEventListener(eventType, func(evt *dom.Event) {
		cb(evt.Target, evt)
	})
}

// Delegate installs a listener on root that walks from the event target up
// through its ancestors, target included, and fires cb once on the first
// node matching selector. No match means no callback. An empty selector
// behaves like On. Every call installs an independent listener.
func Delegate(root *dom.Node, eventType, selector string, cb Callback) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		On(root, eventType, cb)
		return
	}
	if root == nil || cb == nil {
		return
	}
	root.AddEventListener(eventType, func(evt *dom.Event) {
		if matched := Closest(evt.Target, selector); matched != nil {
			cb(matched, evt)
		}
	})
}

// Closest returns node or its nearest ancestor matching selector.
func Closest(node *dom.Node, selector string) *dom.Node {
	for cur := node; cur != nil; cur = cur.Parent() {
		if dom.Matches(cur, selector) {
			return cur
		}
	}
	return nil
}
