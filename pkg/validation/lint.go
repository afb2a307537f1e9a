package validation

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-sensenav/pkg/model"
	"github.com/goliatone/go-sensenav/pkg/visibility/expr"
)

// LintPanel reports structural problems in a panel tree: duplicate refs in
// the same scope, show rules that do not parse, dropdowns with nothing to
// offer and arrays without item fields. Issues carry the field path in Field.
func LintPanel(root *model.Field) Result {
	result := Result{Valid: true}
	if root == nil {
		result.add(Issue{Message: model.ErrNilField.Error()})
		return result
	}
	lintScope(root.Items, "", &result)
	sort.SliceStable(result.Issues, func(i, j int) bool {
		return result.Issues[i].Field < result.Issues[j].Field
	})
	return result
}

func lintScope(fields []*model.Field, prefix string, result *Result) {
	seen := map[string]string{}
	var visit func(fields []*model.Field, prefix string)
	visit = func(fields []*model.Field, prefix string) {
		for _, field := range fields {
			if field == nil {
				continue
			}
			path := field.Key
			if prefix != "" {
				path = prefix + "." + field.Key
			}
			lintField(path, field, result)

			if field.Ref != "" {
				if first, ok := seen[field.Ref]; ok {
					result.add(Issue{Field: path, Message: fmt.Sprintf("ref %q already declared by %s", field.Ref, first)})
				} else {
					seen[field.Ref] = path
				}
			}
			if field.IsArray() {
				// Item refs are relative to the item and form their own scope.
				lintScope(field.Items, path, result)
				continue
			}
			visit(field.Items, path)
		}
	}
	visit(fields, prefix)
}

func lintField(path string, field *model.Field, result *Result) {
	if field.Show != "" {
		if _, err := expr.Parse(field.Show); err != nil {
			result.add(Issue{Field: path, Message: fmt.Sprintf("show rule %q: %v", field.Show, err)})
		}
	}
	if field.Component == model.ComponentDropdown || field.Component == model.ComponentButtonGroup {
		if field.OptionSource == nil && len(field.Options) == 0 {
			result.add(Issue{Field: path, Message: "no options and no option source"})
		}
	}
	if field.IsArray() && len(field.Items) == 0 {
		result.add(Issue{Field: path, Message: "array declares no item fields"})
	}
	if field.IsArray() && field.Ref == "" {
		result.add(Issue{Field: path, Message: "array has no ref"})
	}
}
