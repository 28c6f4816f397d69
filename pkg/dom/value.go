package dom

import "strings"

// Value returns the editable value of an interactive element: the value
// attribute for inputs, the text content for textareas and the selected
// option for selects. Non-elements have no value.
func (n *Node) Value() string {
	if n.Kind() != KindElement {
		return ""
	}
	switch n.TagName() {
	case "textarea":
		return n.Text()
	case "select":
		option := n.selectedOption()
		if option == nil {
			return ""
		}
		return optionValue(option)
	default:
		value, _ := n.Attr("value")
		return value
	}
}

// SetValue writes the editable value. Writes are reported to observers as
// MutationValue regardless of the element type.
func (n *Node) SetValue(value string) {
	if n.Kind() != KindElement {
		return
	}
	old := n.Value()
	switch n.TagName() {
	case "textarea":
		n.replaceChildrenWithText(value)
	case "select":
		n.selectOption(value)
	default:
		n.setAttr("value", value)
	}
	n.doc.notify(Mutation{Type: MutationValue, Target: n, OldValue: old, NewValue: value})
}

func (n *Node) options() []*Node {
	options, err := n.QuerySelectorAll("option")
	if err != nil {
		return nil
	}
	return options
}

func (n *Node) selectedOption() *Node {
	options := n.options()
	if len(options) == 0 {
		return nil
	}
	for _, option := range options {
		if option.HasAttr("selected") {
			return option
		}
	}
	return options[0]
}

func (n *Node) selectOption(value string) {
	for _, option := range n.options() {
		if optionValue(option) == value {
			option.setAttr("selected", "")
			continue
		}
		option.removeAttr("selected")
	}
}

func optionValue(option *Node) string {
	if value, ok := option.Attr("value"); ok {
		return value
	}
	return strings.TrimSpace(option.Text())
}
