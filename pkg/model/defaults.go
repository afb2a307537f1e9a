package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CIDKey is the layout key the host uses to identify array items.
const CIDKey = "cId"

// Defaults builds the layout document a freshly created extension starts
// with: every field with a default value is written at its Ref and every
// array starts empty. Array item defaults are applied by NewItem.
func Defaults(root *Field) (map[string]any, error) {
	if root == nil {
		return nil, ErrNilField
	}
	layout := map[string]any{}
	err := Walk(root, func(_ string, field *Field) error {
		if field.IsArray() {
			if field.Ref != "" {
				if err := SetValue(layout, field.Ref, []any{}); err != nil {
					return err
				}
			}
			return SkipChildren
		}
		if field.Ref == "" || field.DefaultValue == nil {
			return nil
		}
		return SetValue(layout, field.Ref, field.DefaultValue)
	})
	if err != nil {
		return nil, err
	}
	return layout, nil
}

// NewItem builds a new array item populated with the item field defaults and
// a fresh cId.
func NewItem(array *Field) (map[string]any, error) {
	if array == nil {
		return nil, ErrNilField
	}
	if !array.IsArray() {
		return nil, fmt.Errorf("%w: %q", ErrNotArray, array.Key)
	}
	item := map[string]any{CIDKey: newCID()}
	for _, child := range array.Items {
		if child == nil || child.Ref == "" || child.DefaultValue == nil {
			continue
		}
		if err := SetValue(item, child.Ref, child.DefaultValue); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func newCID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}

// ItemByCID finds the array item with the supplied cId in the array stored at
// arrayRef.
func ItemByCID(layout map[string]any, arrayRef, cid string) (map[string]any, bool) {
	if cid == "" {
		return nil, false
	}
	for _, item := range arrayItems(layout, arrayRef) {
		if id, _ := item[CIDKey].(string); id == cid {
			return item, true
		}
	}
	return nil, false
}

// Value reads the value stored at ref.
func Value(layout map[string]any, ref string) (any, bool) {
	return lookupIndexed(layout, ref)
}

// SetValue writes value at the dotted ref, creating intermediate objects.
func SetValue(layout map[string]any, ref string, value any) error {
	if layout == nil {
		return fmt.Errorf("model: set %q: nil layout", ref)
	}
	parts := strings.Split(strings.TrimSpace(ref), ".")
	current := layout
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("model: set %q: empty path segment", ref)
		}
		if i == len(parts)-1 {
			current[part] = value
			return nil
		}
		next, ok := current[part]
		if !ok {
			child := map[string]any{}
			current[part] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("model: set %q: segment %q holds %T", ref, part, next)
		}
		current = child
	}
	return nil
}
