package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-nivo/internal/modelfile"
	"github.com/goliatone/go-nivo/internal/prompt"
	"github.com/goliatone/go-nivo/pkg/config"
)

const page = `<div nv-controller="demo"><input nv-model="name"><p>Hello {{name}}</p></div>` +
	`<div nv-controller="stats"><p id="count">{{count}} items</p></div>` +
	`<input id="stray" nv-model="name">`

type fakeDriver struct {
	answers map[string]string
	asked   []string
	err     error
}

func (f *fakeDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	f.asked = append(f.asked, cfg.Message+"="+cfg.Default)
	if f.err != nil {
		return "", f.err
	}
	if answer, ok := f.answers[cfg.Message]; ok {
		return answer, nil
	}
	return cfg.Default, nil
}

func (f *fakeDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) { return true, nil }
func (f *fakeDriver) Info(context.Context, string) error                        { return nil }

func open(t *testing.T, driver prompt.Driver, options ...Option) *Session {
	t.Helper()

	model := modelfile.Model{
		"demo":    {"name": "World"},
		"stats":   {"count": 2},
		"missing": {"x": 1},
	}
	options = append(options, WithDriver(driver), WithOutput(&bytes.Buffer{}))
	s, err := Open(strings.NewReader(page), model, options...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n, err := s.Bind()
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 bound controllers, got %d", n)
	}
	return s
}

func textOf(t *testing.T, s *Session, sel string) string {
	t.Helper()
	node, err := s.Document().QuerySelector(sel)
	if err != nil || node == nil {
		t.Fatalf("query %q: %v", sel, err)
	}
	return node.Text()
}

func TestBindRendersModel(t *testing.T) {
	s := open(t, &fakeDriver{})

	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`value="World"`, "Hello World", "2 items"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered page missing %q:\n%s", want, out)
		}
	}
	if _, ok := s.Scope("missing"); ok {
		t.Fatalf("controller without a root should not be bound")
	}

	want := []string{"demo: name=World", "stats: count=2"}
	if diff := cmp.Diff(want, s.Summary()); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestEditPropagatesAnswers(t *testing.T) {
	driver := &fakeDriver{answers: map[string]string{"name": "Moon"}}
	s := open(t, driver)

	changed, err := s.Edit(context.Background())
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if changed != 1 {
		t.Fatalf("expected 1 change, got %d", changed)
	}
	if diff := cmp.Diff([]string{"name=World"}, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if got := textOf(t, s, `[nv-controller="demo"] p`); got != "Hello Moon" {
		t.Fatalf("text = %q", got)
	}
}

func TestEditAbort(t *testing.T) {
	s := open(t, &fakeDriver{err: prompt.ErrAborted})

	if _, err := s.Edit(context.Background()); !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestApplyChangedKeys(t *testing.T) {
	s := open(t, &fakeDriver{})

	applied := s.Apply(modelfile.Model{
		"demo":  {"name": "World"},
		"stats": {"count": 5},
	})
	if applied != 1 {
		t.Fatalf("expected 1 key applied, got %d", applied)
	}
	if got := textOf(t, s, "#count"); got != "5 items" {
		t.Fatalf("count text = %q", got)
	}

	applied = s.Apply(modelfile.Model{
		"demo":  {},
		"stats": {"count": 5},
	})
	if applied != 1 {
		t.Fatalf("expected removed key to be applied, got %d", applied)
	}
	if got := textOf(t, s, `[nv-controller="demo"] p`); got != "Hello " {
		t.Fatalf("text = %q", got)
	}
}

func TestApplyNestedKeys(t *testing.T) {
	model := modelfile.Model{"profile": {"user": map[string]any{"email": "ann@example.com", "name": "Ann"}}}
	s, err := Open(strings.NewReader(`<div nv-controller="profile"><p id="mail">{{ user.email }}</p><p id="name">{{user.name}}</p></div>`),
		model, WithDriver(&fakeDriver{}), WithOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Bind(); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got := textOf(t, s, "#mail"); got != "ann@example.com" {
		t.Fatalf("mail text = %q", got)
	}

	applied := s.Apply(modelfile.Model{"profile": {"user": map[string]any{"email": "bob@example.com", "name": "Ann"}}})
	if applied != 1 {
		t.Fatalf("expected 1 key applied, got %d", applied)
	}
	if got := textOf(t, s, "#mail"); got != "bob@example.com" {
		t.Fatalf("mail text = %q", got)
	}
	if got := textOf(t, s, "#name"); got != "Ann" {
		t.Fatalf("name text = %q", got)
	}

	s.Apply(modelfile.Model{"profile": {}})
	if got := textOf(t, s, "#mail"); got != "" {
		t.Fatalf("removed nested key should render empty, got %q", got)
	}
}

func TestSanitizedPage(t *testing.T) {
	cfg := config.Default()
	cfg.Sanitize = true

	model := modelfile.Model{"demo": {"name": "Ann"}}
	s, err := Open(strings.NewReader(`<div nv-controller="demo"><script>x()</script><p>{{name}}</p></div>`), model,
		WithConfig(cfg), WithDriver(&fakeDriver{}), WithOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Bind(); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "script") {
		t.Fatalf("expected script to be stripped:\n%s", buf.String())
	}
	if got := textOf(t, s, "p"); got != "Ann" {
		t.Fatalf("text = %q", got)
	}
}
