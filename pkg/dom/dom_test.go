package dom_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-nivo/pkg/dom"
)

const page = `<div id="root" nv-controller="demo">` +
	`<input nv-model="name" value="start">` +
	`<textarea nv-model="bio">about me</textarea>` +
	`<select nv-model="color"><option value="r">Red</option><option selected>Green</option></select>` +
	`<p class="greeting">Hello {{name}}</p>` +
	`</div>`

func mustParse(t *testing.T, markup string, opts ...dom.Option) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(markup, opts...)
	require.NoError(t, err)
	return doc
}

func TestParseAndQuery(t *testing.T) {
	doc := mustParse(t, page)

	root, err := doc.QuerySelector(`[nv-controller="demo"]`)
	require.NoError(t, err)
	require.NotNil(t, root)
	require.Equal(t, dom.KindElement, root.Kind())
	require.Equal(t, "div", root.TagName())

	id, ok := root.Attr("id")
	require.True(t, ok)
	require.Equal(t, "root", id)

	bound, err := root.QuerySelectorAll("[nv-model]")
	require.NoError(t, err)
	var tags []string
	for _, n := range bound {
		tags = append(tags, n.TagName())
	}
	if diff := cmp.Diff([]string{"input", "textarea", "select"}, tags); diff != "" {
		t.Fatalf("bound elements mismatch (-want +got):\n%s", diff)
	}

	missing, err := doc.QuerySelector(`[nv-controller="other"]`)
	require.NoError(t, err)
	require.Nil(t, missing)

	require.Equal(t, dom.KindDocument, doc.Root().Kind())
	require.Nil(t, doc.Root().Parent())
}

func TestQuerySelectorInvalid(t *testing.T) {
	doc := mustParse(t, page)

	_, err := doc.QuerySelectorAll("[[[")
	require.ErrorIs(t, err, dom.ErrInvalidSelector)
}

func TestNodeIdentityIsStable(t *testing.T) {
	doc := mustParse(t, page)

	first, err := doc.QuerySelector("input")
	require.NoError(t, err)
	second, err := doc.QuerySelector("input")
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Same(t, first, doc.Node(first.Raw()))
}

func TestEditableValues(t *testing.T) {
	doc := mustParse(t, page)

	input, _ := doc.QuerySelector("input")
	require.Equal(t, "start", input.Value())
	input.SetValue("World")
	require.Equal(t, "World", input.Value())

	area, _ := doc.QuerySelector("textarea")
	require.Equal(t, "about me", area.Value())
	area.SetValue("changed")
	require.Equal(t, "changed", area.Value())

	sel, _ := doc.QuerySelector("select")
	require.Equal(t, "Green", sel.Value())
	sel.SetValue("r")
	require.Equal(t, "r", sel.Value())

	p, _ := doc.QuerySelector("p")
	require.Equal(t, "", p.Value())
}

func TestSetValueKeepsTextChild(t *testing.T) {
	doc := mustParse(t, `<textarea>{{bio}}</textarea>`)

	area, _ := doc.QuerySelector("textarea")
	child := area.Children()[0]
	area.SetValue("typed")

	require.Equal(t, "typed", area.Value())
	require.Len(t, area.Children(), 1)
	require.Same(t, child, area.Children()[0])
	require.Same(t, area, child.Parent())
}

func TestTextNodes(t *testing.T) {
	doc := mustParse(t, `<div><p>plain</p><p>Hi {{a}}</p><span>{{b}} and {{c}}</span></div>`)

	root, _ := doc.QuerySelector("div")
	nodes := root.TextNodes(func(n *dom.Node) bool {
		return strings.Contains(n.Text(), "{{")
	})

	var got []string
	for _, n := range nodes {
		require.Equal(t, dom.KindText, n.Kind())
		got = append(got, n.Text())
	}
	if diff := cmp.Diff([]string{"Hi {{a}}", "{{b}} and {{c}}"}, got); diff != "" {
		t.Fatalf("text nodes mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, root.TextNodes(nil), 3)
}

func TestSetTextAndRender(t *testing.T) {
	doc := mustParse(t, `<p>Hello {{name}}</p>`)

	p, _ := doc.QuerySelector("p")
	text := p.Children()[0]
	text.SetText("Hello World")

	require.Equal(t, "<p>Hello World</p>", p.OuterHTML())
	require.Equal(t, "<html><head></head><body><p>Hello World</p></body></html>", doc.String())
}

func TestMutationObserver(t *testing.T) {
	var seen []dom.Mutation
	doc := mustParse(t, page, dom.WithMutationObserver(func(m dom.Mutation) {
		seen = append(seen, m)
	}))

	input, _ := doc.QuerySelector("input")
	input.SetValue("a")
	input.SetAttr("placeholder", "name")
	input.RemoveAttr("missing")

	p, _ := doc.QuerySelector("p")
	p.Children()[0].SetText("Hello a")

	require.Len(t, seen, 3)
	require.Equal(t, dom.MutationValue, seen[0].Type)
	require.Equal(t, "start", seen[0].OldValue)
	require.Equal(t, "a", seen[0].NewValue)
	require.Equal(t, dom.MutationAttribute, seen[1].Type)
	require.Equal(t, "placeholder", seen[1].Name)
	require.Equal(t, dom.MutationText, seen[2].Type)
}

func TestMatches(t *testing.T) {
	doc := mustParse(t, page)

	input, _ := doc.QuerySelector("input")
	require.True(t, dom.Matches(input, "[nv-model]"))
	require.True(t, input.Matches(`input[nv-model="name"]`))
	require.False(t, input.Matches("textarea"))
	require.False(t, input.Matches("[[["))

	p, _ := doc.QuerySelector("p")
	text := p.Children()[0]
	require.Equal(t, dom.KindText, text.Kind())
	require.False(t, dom.Matches(text, "*"))
	require.False(t, dom.Matches(doc.Root(), "*"))
	require.False(t, dom.Matches(nil, "*"))

	require.NoError(t, dom.Compile("div > p.greeting"))
	require.ErrorIs(t, dom.Compile("[[["), dom.ErrInvalidSelector)
}

func TestDispatchBubbles(t *testing.T) {
	doc := mustParse(t, page)

	input, _ := doc.QuerySelector("input")
	root, _ := doc.QuerySelector("#root")

	var order []string
	input.AddEventListener("keyup", func(evt *dom.Event) {
		order = append(order, "input")
		require.Same(t, input, evt.CurrentTarget)
	})
	root.AddEventListener("keyup", func(evt *dom.Event) {
		order = append(order, "root")
		require.Same(t, input, evt.Target)
	})
	doc.Root().AddEventListener("keyup", func(*dom.Event) {
		order = append(order, "document")
	})
	doc.Root().AddEventListener("change", func(*dom.Event) {
		order = append(order, "change")
	})

	doc.Fire("keyup", input)
	if diff := cmp.Diff([]string{"input", "root", "document"}, order); diff != "" {
		t.Fatalf("dispatch order mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 1, doc.ListenerCount(doc.Root(), "keyup"))
}

func TestDispatchStopPropagation(t *testing.T) {
	doc := mustParse(t, page)

	input, _ := doc.QuerySelector("input")
	calls := 0
	input.AddEventListener("keyup", func(evt *dom.Event) {
		calls++
		evt.StopPropagation()
	})
	doc.Root().AddEventListener("keyup", func(*dom.Event) {
		calls++
	})

	evt := doc.Fire("keyup", input)
	require.True(t, evt.Stopped())
	require.Equal(t, 1, calls)
}

func TestSanitizerKeepsBindings(t *testing.T) {
	markup := `<div nv-controller="demo"><script>alert(1)</script>` +
		`<input nv-model="name" onclick="steal()"><p>Hello {{name}}</p></div>`

	doc := mustParse(t, markup, dom.WithSanitizer(dom.NewSanitizer("nv-model", "nv-controller")))

	scripts, err := doc.QuerySelectorAll("script")
	require.NoError(t, err)
	require.Empty(t, scripts)

	input, err := doc.QuerySelector(`[nv-controller="demo"] input[nv-model="name"]`)
	require.NoError(t, err)
	require.NotNil(t, input)
	require.False(t, input.HasAttr("onclick"))

	p, _ := doc.QuerySelector("p")
	require.Equal(t, "Hello {{name}}", p.Text())
}

func TestParseNilReader(t *testing.T) {
	_, err := dom.Parse(nil)
	require.ErrorIs(t, err, dom.ErrNilReader)
}
