package model

// Accordion builds the root node of a panel.
func Accordion(items ...*Field) *Field {
	return &Field{Type: FieldTypeItems, Component: ComponentAccordion, Items: items}
}

// Section builds an items node grouping children under a label.
func Section(key, label string, items ...*Field) *Field {
	return &Field{Key: key, Type: FieldTypeItems, Label: label, Items: items}
}

// Uses builds a node that extends one of the host's stock sections such as
// "settings".
func Uses(key, uses string, items ...*Field) *Field {
	return &Field{Key: key, Uses: uses, Items: items}
}

// Clone returns a deep copy of the tree. Option sources and title functions
// are shared.
func Clone(root *Field) *Field {
	if root == nil {
		return nil
	}
	out := *root
	out.Options = cloneOptions(root.Options)
	if root.Items != nil {
		out.Items = make([]*Field, 0, len(root.Items))
		for _, child := range root.Items {
			if child == nil {
				continue
			}
			out.Items = append(out.Items, Clone(child))
		}
	}
	return &out
}
