package nivo_test

import (
	"errors"
	"testing"

	nivo "github.com/goliatone/go-nivo"
	"github.com/goliatone/go-nivo/pkg/controller"
)

func TestControllerSharesAppPerDocument(t *testing.T) {
	doc, err := nivo.ParseString(`<div nv-controller="a"><p>{{x}}</p></div><div nv-controller="b"><input nv-model="y"><p id="y">{{y}}</p></div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if _, err := nivo.Controller(doc, "a", func(s *nivo.Scope) { s.Set("x", "1") }); err != nil {
		t.Fatalf("controller a: %v", err)
	}
	b, err := nivo.Controller(doc, "b", func(s *nivo.Scope) { s.Set("y", "2") })
	if err != nil {
		t.Fatalf("controller b: %v", err)
	}

	if nivo.AppFor(doc) != nivo.AppFor(doc) {
		t.Fatalf("expected one app per document")
	}
	if n := doc.ListenerCount(doc.Root(), "keyup"); n != 1 {
		t.Fatalf("expected one edit listener, got %d", n)
	}

	input, _ := doc.QuerySelector("input")
	input.SetValue("3")
	doc.Fire("keyup", input)

	if got, _ := b.Get("y"); got != "3" {
		t.Fatalf("expected edit to reach scope b, got %v", got)
	}
	p, _ := doc.QuerySelector("#y")
	if p.Text() != "3" {
		t.Fatalf("text = %q", p.Text())
	}
}

func TestControllerMissingRoot(t *testing.T) {
	doc, err := nivo.ParseString(`<p>no controllers</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := nivo.Controller(doc, "demo", func(*nivo.Scope) {}); !errors.Is(err, controller.ErrControllerNotFound) {
		t.Fatalf("expected ErrControllerNotFound, got %v", err)
	}
}
