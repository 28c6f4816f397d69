package controller_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-nivo/pkg/controller"
	"github.com/goliatone/go-nivo/pkg/scope"
	"github.com/goliatone/go-nivo/pkg/testsupport"
)

func TestProfilePageGolden(t *testing.T) {
	doc := testsupport.MustLoadPage(t, filepath.Join("testdata", "profile.html"))
	app := controller.New(doc)

	_, err := app.Controller("profile", func(s *scope.Scope) {
		s.Set("user", map[string]any{"name": "Ann", "age": 36})
		s.Set("bio", "hi")
	})
	if err != nil {
		t.Fatalf("Controller: %v", err)
	}

	edit(doc, query(t, doc, "input"), "Bea")

	output := []byte(doc.String())
	goldenPath := filepath.Join("testdata", "profile.golden.html")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}

	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, string(output)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
