package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-sensenav/pkg/model"
)

// LayoutSchema derives an OpenAPI schema for the layout document described
// by the panel. Static dropdown options become enums, boolean fields become
// booleans and arrays become lists of item objects. Unknown properties are
// allowed because the host stores its own settings alongside.
func LayoutSchema(root *model.Field) (*openapi3.Schema, error) {
	if root == nil {
		return nil, model.ErrNilField
	}
	schema := openapi3.NewObjectSchema()
	if err := addFields(schema, root.Items); err != nil {
		return nil, err
	}
	return schema, nil
}

func addFields(target *openapi3.Schema, fields []*model.Field) error {
	for _, field := range fields {
		if field == nil {
			continue
		}
		if field.Ref == "" {
			if err := addFields(target, field.Items); err != nil {
				return err
			}
			continue
		}
		value, ok, err := fieldSchema(field)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := setProperty(target, field.Ref, value); err != nil {
			return err
		}
	}
	return nil
}

func fieldSchema(field *model.Field) (*openapi3.Schema, bool, error) {
	switch {
	case field.IsArray():
		item := openapi3.NewObjectSchema()
		item.WithProperty(model.CIDKey, openapi3.NewStringSchema())
		if err := addFields(item, field.Items); err != nil {
			return nil, false, err
		}
		return openapi3.NewArraySchema().WithItems(item), true, nil
	case field.Type == model.FieldTypeText:
		// Text components display a label and hold no value.
		return nil, false, nil
	case field.Type == model.FieldTypeBoolean:
		return openapi3.NewBoolSchema(), true, nil
	case field.Type == model.FieldTypeString:
		s := openapi3.NewStringSchema()
		if field.OptionSource == nil && len(field.Options) > 0 && field.Expression == "" {
			s.WithEnum(allowedValues(field)...)
		}
		return s, true, nil
	case field.Type == "":
		switch field.DefaultValue.(type) {
		case bool:
			return openapi3.NewBoolSchema(), true, nil
		case string:
			return openapi3.NewStringSchema(), true, nil
		}
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("validation: field %q has unsupported type %q", field.Key, field.Type)
	}
}

// allowedValues lists the option values plus the default, which is not
// always offered (a new action item starts as "none").
func allowedValues(field *model.Field) []any {
	out := make([]any, 0, len(field.Options)+1)
	hasDefault := field.DefaultValue == nil
	for _, option := range field.Options {
		out = append(out, option.Value)
		if option.Value == field.DefaultValue {
			hasDefault = true
		}
	}
	if !hasDefault {
		out = append(out, field.DefaultValue)
	}
	return out
}

func setProperty(target *openapi3.Schema, ref string, value *openapi3.Schema) error {
	parts := strings.Split(ref, ".")
	current := target
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("validation: ref %q has an empty segment", ref)
		}
		if current.Properties == nil {
			current.Properties = openapi3.Schemas{}
		}
		if i == len(parts)-1 {
			if _, exists := current.Properties[part]; exists {
				return fmt.Errorf("validation: ref %q is declared twice", ref)
			}
			current.Properties[part] = &openapi3.SchemaRef{Value: value}
			return nil
		}
		next, ok := current.Properties[part]
		if !ok || next == nil || next.Value == nil {
			obj := openapi3.NewObjectSchema()
			current.Properties[part] = &openapi3.SchemaRef{Value: obj}
			current = obj
			continue
		}
		current = next.Value
	}
	return nil
}

// ValidateLayout checks a layout document against the panel's schema.
func ValidateLayout(ctx context.Context, root *model.Field, layout map[string]any) Result {
	result := Result{Valid: true}
	if err := ctx.Err(); err != nil {
		result.add(Issue{Message: err.Error()})
		return result
	}
	schema, err := LayoutSchema(root)
	if err != nil {
		result.add(Issue{Message: err.Error()})
		return result
	}

	doc, err := normalise(layout)
	if err != nil {
		result.add(Issue{Message: err.Error()})
		return result
	}

	if err := schema.VisitJSON(doc, openapi3.MultiErrors()); err != nil {
		for _, issue := range issuesFromError(err) {
			result.add(issue)
		}
	}
	sort.SliceStable(result.Issues, func(i, j int) bool {
		return result.Issues[i].Path < result.Issues[j].Path
	})
	return result
}

// normalise converts the layout into plain JSON types so the schema visitor
// sees float64/[]any/map[string]any regardless of how it was built.
func normalise(layout map[string]any) (map[string]any, error) {
	if layout == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(layout)
	if err != nil {
		return nil, fmt.Errorf("validation: encode layout: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("validation: decode layout: %w", err)
	}
	return out, nil
}

func issuesFromError(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, inner := range multi {
			out = append(out, issuesFromError(inner)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		segments := schemaErr.JSONPointer()
		return []Issue{{
			Path:    pointerFromSegments(segments),
			Field:   fieldFromSegments(segments),
			Message: strings.TrimSpace(schemaErr.Reason),
		}}
	}
	return []Issue{{Message: strings.TrimSpace(err.Error())}}
}
