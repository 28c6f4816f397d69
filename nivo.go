// Package nivo is a two-way binding layer between an in-memory model and an
// HTML document tree. Elements declaring nv-controller get a Scope; text
// placeholders such as {{ user.name }} and nv-model inputs under them stay
// in sync with the scope's values, and edits on bound inputs flow back into
// the owning scope.
//
//	doc, _ := nivo.ParseString(`<div nv-controller="demo"><input nv-model="name"><p>Hello {{name}}</p></div>`)
//	nivo.Controller(doc, "demo", func(s *nivo.Scope) {
//		s.Set("name", "World")
//	})
package nivo

import (
	"io"
	"sync"

	"github.com/goliatone/go-nivo/pkg/controller"
	"github.com/goliatone/go-nivo/pkg/dom"
	"github.com/goliatone/go-nivo/pkg/scope"
)

// Scope aliases scope.Scope for callers importing only the root package.
type Scope = scope.Scope

// App aliases controller.App.
type App = controller.App

// Initializer aliases controller.Initializer.
type Initializer = controller.Initializer

// Document aliases dom.Document.
type Document = dom.Document

var apps = struct {
	mu    sync.Mutex
	byDoc map[*dom.Document]*controller.App
}{byDoc: make(map[*dom.Document]*controller.App)}

// Parse reads HTML markup into a Document.
func Parse(r io.Reader, options ...dom.Option) (*Document, error) {
	return dom.Parse(r, options...)
}

// ParseString is Parse over an in-memory string.
func ParseString(markup string, options ...dom.Option) (*Document, error) {
	return dom.ParseString(markup, options...)
}

// AppFor returns the shared App of doc, creating it on first use. Options
// only apply to that first call.
func AppFor(doc *Document, options ...controller.Option) *App {
	apps.mu.Lock()
	defer apps.mu.Unlock()

	if app, ok := apps.byDoc[doc]; ok {
		return app
	}
	app := controller.New(doc, options...)
	apps.byDoc[doc] = app
	return app
}

// Controller attaches a scope to the element of doc declaring name, runs
// init and binds the element, using the document's shared App so the edit
// listener is installed once however many controllers are created.
func Controller(doc *Document, name string, init Initializer) (*Scope, error) {
	return AppFor(doc).Controller(name, init)
}
