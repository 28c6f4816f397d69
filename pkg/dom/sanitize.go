package dom

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var formControls = []string{"form", "input", "textarea", "select", "option", "optgroup", "label", "button", "fieldset", "legend"}

// NewSanitizer returns a bluemonday policy for untrusted page markup. It
// starts from the UGC policy, keeps form controls with their value-bearing
// attributes, and allows the supplied binding attributes on every element.
func NewSanitizer(bindingAttributes ...string) *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements(formControls...)

	policy.AllowAttrs(
		"type", "name", "value", "placeholder", "checked", "disabled",
		"readonly", "required", "maxlength", "size",
	).OnElements("input")
	policy.AllowAttrs("name", "rows", "cols", "placeholder", "disabled", "readonly").OnElements("textarea")
	policy.AllowAttrs("name", "multiple", "disabled").OnElements("select")
	policy.AllowAttrs("value", "selected", "disabled", "label").OnElements("option")
	policy.AllowAttrs("for").OnElements("label")
	policy.AllowAttrs("type", "name", "value").OnElements("button")
	policy.AllowAttrs("class", "id").Globally()

	var attrs []string
	for _, attr := range bindingAttributes {
		if trimmed := strings.TrimSpace(attr); trimmed != "" {
			attrs = append(attrs, trimmed)
		}
	}
	if len(attrs) > 0 {
		policy.AllowAttrs(attrs...).Globally()
	}
	return policy
}
