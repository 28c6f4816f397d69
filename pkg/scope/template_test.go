package scope

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlaceholderKeys(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		template string
		want     []string
	}{
		{name: "single", template: "Hello {{name}}", want: []string{"name"}},
		{name: "whitespace", template: "Hello {{  user.name }}!", want: []string{"user.name"}},
		{name: "several", template: "{{a}} and {{b}}", want: []string{"a", "b"}},
		{name: "repeats kept", template: "{{a}} - {{a}}", want: []string{"a", "a"}},
		{name: "adjacent", template: "{{a}}{{b}}", want: []string{"a", "b"}},
		{name: "blank braces", template: "{{ }}", want: nil},
		{name: "none", template: "plain text", want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, PlaceholderKeys(tc.template)); diff != "" {
				t.Fatalf("keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHasPlaceholder(t *testing.T) {
	t.Parallel()

	if !HasPlaceholder("x {{ y }} z") {
		t.Fatalf("expected placeholder to be detected")
	}
	if HasPlaceholder("x { y } z") || HasPlaceholder("{{}}") {
		t.Fatalf("expected no placeholder")
	}
}

func TestRenderTemplate(t *testing.T) {
	t.Parallel()

	values := map[string]string{"a": "$1 {{b}}", "b": "B"}
	calls := 0
	got := RenderTemplate("{{a}}/{{ b }}/{{a}}", func(key string) string {
		calls++
		return values[key]
	})
	if got != "$1 {{b}}/B/$1 {{b}}" {
		t.Fatalf("unexpected render %q", got)
	}
	if calls != 2 {
		t.Fatalf("expected each key resolved once, got %d calls", calls)
	}

	upper := RenderTemplate("{{x}}", strings.ToUpper)
	if upper != "X" {
		t.Fatalf("unexpected render %q", upper)
	}
}

func TestUniqueKeysKeepsFirstOccurrence(t *testing.T) {
	t.Parallel()

	got := uniqueKeys([]string{"b", "a", "b", "c", "a"})
	if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
		t.Fatalf("unique keys mismatch (-want +got):\n%s", diff)
	}
}
