package controller

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-nivo/pkg/config"
	"github.com/goliatone/go-nivo/pkg/dom"
	"github.com/goliatone/go-nivo/pkg/events"
	"github.com/goliatone/go-nivo/pkg/scope"
)

// Option customises an App.
type Option func(*App)

// WithConfig replaces the default configuration. The value is normalized.
func WithConfig(cfg config.Config) Option {
	return func(a *App) {
		a.cfg = cfg.Normalize()
	}
}

// WithLogger sets the logger shared by the app and the scopes it creates.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRegistry supplies the named controllers Bootstrap attaches.
func WithRegistry(registry *Registry) Option {
	return func(a *App) {
		if registry != nil {
			a.registry = registry
		}
	}
}

// WithScopeOptions appends options applied to every scope the app creates,
// after the app's own defaults.
func WithScopeOptions(options ...scope.Option) Option {
	return func(a *App) {
		a.scopeOptions = append(a.scopeOptions, options...)
	}
}

// App is the binding runtime of one document: it owns the side table from
// root elements to their scopes and the edit listener.
type App struct {
	doc          *dom.Document
	cfg          config.Config
	logger       *zap.Logger
	registry     *Registry
	scopeOptions []scope.Option

	installOnce sync.Once
	installed   bool
	scopes      map[*dom.Node]*scope.Scope
	attached    []*scope.Scope
}

// New constructs an App for doc. Nothing is installed until the first
// controller attaches.
func New(doc *dom.Document, options ...Option) *App {
	a := &App{
		doc:      doc,
		cfg:      config.Default(),
		logger:   zap.NewNop(),
		registry: NewRegistry(),
		scopes:   make(map[*dom.Node]*scope.Scope),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// Document returns the document the app drives.
func (a *App) Document() *dom.Document { return a.doc }

// Config returns the effective configuration.
func (a *App) Config() config.Config { return a.cfg }

// Registry returns the named controller registry used by Bootstrap.
func (a *App) Registry() *Registry { return a.registry }

// Installed reports whether the edit listener is in place.
func (a *App) Installed() bool { return a.installed }

// Scopes returns the attached scopes in attachment order.
func (a *App) Scopes() []*scope.Scope {
	return append([]*scope.Scope(nil), a.attached...)
}

// Register adds a named controller for Bootstrap.
func (a *App) Register(name string, init Initializer) error {
	return a.registry.Register(name, init)
}

// Controller finds the element declaring name, attaches a new scope to it,
// runs init against the scope and binds the element's subtree. A missing
// element is a startup precondition failure and returns
// ErrControllerNotFound.
func (a *App) Controller(name string, init Initializer) (*scope.Scope, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if init == nil {
		return nil, fmt.Errorf("%w: %q", ErrInitializerRequired, name)
	}

	sel := fmt.Sprintf("[%s=%s]", a.cfg.ControllerAttribute, cssString(name))
	root, err := a.doc.QuerySelector(sel)
	if err != nil {
		return nil, fmt.Errorf("controller: lookup %q: %w", name, err)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: %q", ErrControllerNotFound, name)
	}
	return a.attach(root, name, init)
}

// Bootstrap attaches every registered controller whose root element is in
// the document, in document order. Roots without a registered controller
// and roots that already own a scope are skipped.
func (a *App) Bootstrap() ([]*scope.Scope, error) {
	roots, err := a.doc.QuerySelectorAll("[" + a.cfg.ControllerAttribute + "]")
	if err != nil {
		return nil, fmt.Errorf("controller: bootstrap: %w", err)
	}

	var out []*scope.Scope
	for _, root := range roots {
		name, _ := root.Attr(a.cfg.ControllerAttribute)
		name = strings.TrimSpace(name)
		init, ok := a.registry.Get(name)
		if !ok {
			a.logger.Debug("controller not registered", zap.String("controller", name))
			continue
		}
		s, err := a.attach(root, name, init)
		if errors.Is(err, ErrAlreadyAttached) {
			continue
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (a *App) attach(root *dom.Node, name string, init Initializer) (*scope.Scope, error) {
	if _, exists := a.scopes[root]; exists {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyAttached, name)
	}

	options := append([]scope.Option{
		scope.WithModelAttribute(a.cfg.ModelAttribute),
		scope.WithLogger(a.logger),
	}, a.scopeOptions...)
	s := scope.New(options...)

	a.ensureInstalled()
	a.scopes[root] = s
	a.attached = append(a.attached, s)

	init(s)
	if err := s.BindView(root); err != nil {
		return nil, fmt.Errorf("controller: bind %q: %w", name, err)
	}

	a.logger.Debug("controller attached",
		zap.String("controller", name),
		zap.String("scope", s.ID()),
	)
	return s, nil
}

// ScopeOf walks from node up through its ancestors and returns the first
// scope attached along the way.
func (a *App) ScopeOf(node *dom.Node) (*scope.Scope, bool) {
	for cur := node; cur != nil; cur = cur.Parent() {
		if s, ok := a.scopes[cur]; ok {
			return s, true
		}
	}
	return nil, false
}

func (a *App) ensureInstalled() {
	a.installOnce.Do(func() {
		sel := "[" + a.cfg.ModelAttribute + "]"
		for _, eventType := range a.cfg.EditEvents {
			events.Delegate(a.doc.Root(), eventType, sel, a.handleEdit)
		}
		a.installed = true
		a.logger.Debug("edit listener installed", zap.Strings("events", a.cfg.EditEvents))
	})
}

func (a *App) handleEdit(node *dom.Node, evt *dom.Event) {
	key, _ := node.Attr(a.cfg.ModelAttribute)
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}

	owner, ok := a.ScopeOf(node)
	if !ok {
		a.logger.Debug("edit outside any controller", zap.String("key", key), zap.String("event", evt.Type))
		return
	}

	value := node.Value()
	if stored, ok := owner.Get(key); ok {
		if current, isString := stored.(string); isString && current == value {
			return
		}
	}
	owner.Set(key, value)
	a.logger.Debug("edit propagated",
		zap.String("scope", owner.ID()),
		zap.String("key", key),
	)
}

func cssString(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + replacer.Replace(value) + `"`
}
