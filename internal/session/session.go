// Package session wires a page, a model file and an App together for the
// command line: bind every controller the model names, render the page,
// prompt for edits and re-apply the model when its file changes.
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-nivo/internal/modelfile"
	"github.com/goliatone/go-nivo/internal/prompt"
	"github.com/goliatone/go-nivo/internal/watch"
	"github.com/goliatone/go-nivo/pkg/config"
	"github.com/goliatone/go-nivo/pkg/controller"
	"github.com/goliatone/go-nivo/pkg/dom"
	"github.com/goliatone/go-nivo/pkg/keypath"
	"github.com/goliatone/go-nivo/pkg/scope"
)

// Option customises a Session.
type Option func(*Session)

// WithConfig sets the binding configuration.
func WithConfig(cfg config.Config) Option {
	return func(s *Session) {
		s.cfg = cfg.Normalize()
	}
}

// WithLogger sets the logger passed down to the app and watcher.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDriver sets the prompt driver used by Edit.
func WithDriver(driver prompt.Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where rendered pages are written.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// Session is one CLI run over a page.
type Session struct {
	cfg    config.Config
	logger *zap.Logger
	driver prompt.Driver
	out    io.Writer

	doc    *dom.Document
	app    *controller.App
	model  modelfile.Model
	scopes map[string]*scope.Scope
}

// Open parses page and registers one controller per model entry.
func Open(page io.Reader, model modelfile.Model, options ...Option) (*Session, error) {
	s := &Session{
		cfg:    config.Default(),
		logger: zap.NewNop(),
		out:    os.Stdout,
		model:  model,
		scopes: make(map[string]*scope.Scope),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = prompt.NewSurveyDriver(s.out)
	}

	var parseOpts []dom.Option
	if s.cfg.Sanitize {
		parseOpts = append(parseOpts, dom.WithSanitizer(dom.NewSanitizer(s.cfg.ModelAttribute, s.cfg.ControllerAttribute)))
	}
	doc, err := dom.Parse(page, parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.doc = doc
	s.app = controller.New(doc, controller.WithConfig(s.cfg), controller.WithLogger(s.logger))

	for _, name := range model.Controllers() {
		if err := s.app.Register(name, s.initializer(name)); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}
	return s, nil
}

func (s *Session) initializer(name string) controller.Initializer {
	return func(sc *scope.Scope) {
		s.scopes[name] = sc
		values := s.model.Values(name)
		for _, key := range modelfile.SortedKeys(values) {
			sc.Set(key, values[key])
		}
	}
}

// Document returns the bound document.
func (s *Session) Document() *dom.Document { return s.doc }

// Scope returns the scope attached for the named controller.
func (s *Session) Scope(name string) (*scope.Scope, bool) {
	sc, ok := s.scopes[name]
	return sc, ok
}

// Bind attaches every registered controller present in the page. Model
// entries without a root element are reported and skipped.
func (s *Session) Bind() (int, error) {
	scopes, err := s.app.Bootstrap()
	if err != nil {
		return len(scopes), fmt.Errorf("session: %w", err)
	}
	for _, name := range s.model.Controllers() {
		if _, ok := s.scopes[name]; !ok {
			s.logger.Warn("controller has no root element", zap.String("controller", name))
		}
	}
	return len(scopes), nil
}

// Render writes the current page.
func (s *Session) Render(w io.Writer) error {
	if w == nil {
		w = s.out
	}
	if err := s.doc.Render(w); err != nil {
		return fmt.Errorf("session: render: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Edit prompts once for every bound input owned by a scope, in document
// order, and fires the first configured edit event for each changed value.
// It returns the number of inputs changed.
func (s *Session) Edit(ctx context.Context) (int, error) {
	inputs, err := s.doc.QuerySelectorAll("[" + s.cfg.ModelAttribute + "]")
	if err != nil {
		return 0, fmt.Errorf("session: %w", err)
	}

	eventType := s.cfg.EditEvents[0]
	changed := 0
	for _, node := range inputs {
		owner, ok := s.app.ScopeOf(node)
		if !ok {
			continue
		}
		key, _ := node.Attr(s.cfg.ModelAttribute)
		key = strings.TrimSpace(key)

		current := node.Value()
		answer, err := s.driver.Input(ctx, prompt.InputConfig{
			Message: key,
			Default: current,
			Help:    "scope " + owner.ID(),
		})
		if err != nil {
			return changed, err
		}
		if answer == current {
			continue
		}
		node.SetValue(answer)
		s.doc.Fire(eventType, node)
		changed++
	}
	return changed, nil
}

// Apply sets every key whose value differs between the current model and
// next, on the scope of its controller. Nested values refresh every bound
// path beneath the changed key. Keys removed from next render as empty. It
// returns the number of top-level keys that changed.
func (s *Session) Apply(next modelfile.Model) int {
	applied := 0
	for _, name := range next.Controllers() {
		sc, ok := s.scopes[name]
		if !ok {
			continue
		}
		after := next.Values(name)
		for _, key := range modelfile.Changed(s.model.Values(name), after) {
			value, present := after[key]
			if !present {
				value = ""
			}
			sc.Set(key, value)
			// Placeholders under key were registered by full path and
			// seeded flat, so each one is reset from the new model.
			prefix := key + "."
			for _, bound := range sc.Registry().Keys() {
				if strings.HasPrefix(bound, prefix) {
					sc.Set(bound, keypath.Resolve(after, bound))
				}
			}
			applied++
		}
	}
	s.model = next
	return applied
}

// Watch re-reads the model file at path whenever it changes, applies the
// difference and renders the page, until ctx is done.
func (s *Session) Watch(ctx context.Context, path string) error {
	w, err := watch.New(path, watch.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	defer w.Stop()
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	fsys := os.DirFS(filepath.Dir(path))
	name := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
			next, err := modelfile.Load(fsys, name)
			if err != nil {
				s.logger.Warn("model reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			applied := s.Apply(next)
			s.logger.Info("model reloaded", zap.String("path", path), zap.Int("keys", applied))
			if applied == 0 {
				continue
			}
			if err := s.Render(nil); err != nil {
				return err
			}
		}
	}
}

// Summary describes each attached scope as "controller: key=value" lines,
// sorted by controller.
func (s *Session) Summary() []string {
	var lines []string
	for _, name := range s.model.Controllers() {
		sc, ok := s.scopes[name]
		if !ok {
			continue
		}
		values := sc.Values()
		parts := make([]string, 0, len(values))
		for _, key := range modelfile.SortedKeys(values) {
			parts = append(parts, key+"="+keypath.String(values[key]))
		}
		lines = append(lines, name+": "+strings.Join(parts, " "))
	}
	return lines
}
