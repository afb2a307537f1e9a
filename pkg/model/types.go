package model

import "context"

// FieldType mirrors the property definition types understood by the host's
// property panel renderer.
type FieldType string

const (
	FieldTypeItems   FieldType = "items"
	FieldTypeArray   FieldType = "array"
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeText    FieldType = "text"
)

// Component selects the widget the host uses for a field. An empty component
// lets the host pick its default for the field type.
type Component string

const (
	ComponentDropdown    Component = "dropdown"
	ComponentButtonGroup Component = "buttongroup"
	ComponentText        Component = "text"
	ComponentAccordion   Component = "accordion"
)

// ExpressionOptional marks string inputs that accept either a literal or an
// expression.
const ExpressionOptional = "optional"

// Option is a single dropdown or button group entry. Value is a string for
// dropdowns and a bool for boolean button groups.
type Option struct {
	Value   any    `json:"value" yaml:"value"`
	Label   string `json:"label" yaml:"label"`
	Group   string `json:"group,omitempty" yaml:"group,omitempty"`
	Tooltip string `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

// OptionSource produces options on demand, typically by asking the host app
// for its sheets, stories, bookmarks or fields.
type OptionSource func(ctx context.Context) ([]Option, error)

// Field is a node in the property panel tree. Section nodes (Type items) and
// array nodes carry ordered children in Items; leaf nodes carry a Ref that
// addresses their value in the layout document.
type Field struct {
	Key          string
	Type         FieldType
	Component    Component
	Uses         string
	Ref          string
	Label        string
	DefaultValue any
	Expression   string
	Options      []Option
	OptionSource OptionSource
	// Show is a visibility rule evaluated by pkg/visibility/expr. Empty means
	// always shown.
	Show  string
	Items []*Field

	AllowAdd       bool
	AllowRemove    bool
	AddTranslation string
	Grouped        bool
	ItemTitleRef   string
	ItemTitle      func(item map[string]any) string
}

// IsArray reports whether the field is a repeatable item list.
func (f *Field) IsArray() bool {
	return f != nil && f.Type == FieldTypeArray
}

// Child returns the direct child with the supplied key.
func (f *Field) Child(key string) (*Field, bool) {
	if f == nil {
		return nil, false
	}
	for _, item := range f.Items {
		if item != nil && item.Key == key {
			return item, true
		}
	}
	return nil, false
}

// Title returns the display title of an array item. ItemTitle wins over
// ItemTitleRef; an unknown item falls back to an empty string.
func (f *Field) Title(item map[string]any) string {
	if f == nil || item == nil {
		return ""
	}
	if f.ItemTitle != nil {
		return f.ItemTitle(item)
	}
	if f.ItemTitleRef == "" {
		return ""
	}
	if v, ok := item[f.ItemTitleRef].(string); ok {
		return v
	}
	return ""
}
