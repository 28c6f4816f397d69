package dom

import (
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
)

var selectorCache = struct {
	mu      sync.RWMutex
	entries map[string]cascadia.Matcher
}{entries: make(map[string]cascadia.Matcher)}

func compile(sel string) (cascadia.Matcher, error) {
	sel = strings.TrimSpace(sel)

	selectorCache.mu.RLock()
	matcher, ok := selectorCache.entries[sel]
	selectorCache.mu.RUnlock()
	if ok {
		return matcher, nil
	}

	group, err := cascadia.ParseGroup(sel)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, sel, err)
	}

	selectorCache.mu.Lock()
	selectorCache.entries[sel] = group
	selectorCache.mu.Unlock()
	return group, nil
}

// Matches reports whether n matches the CSS selector sel. Only elements can
// match; text, document and other nodes always report false, as does an
// invalid selector.
func Matches(n *Node, sel string) bool {
	if n.Kind() != KindElement {
		return false
	}
	matcher, err := compile(sel)
	if err != nil {
		return false
	}
	return matcher.Match(n.raw)
}

// Matches is the method form of the package-level Matches.
func (n *Node) Matches(sel string) bool {
	return Matches(n, sel)
}

// Compile validates sel without matching anything.
func Compile(sel string) error {
	_, err := compile(sel)
	return err
}
