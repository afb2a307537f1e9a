package visibility

import (
	"strconv"
	"strings"
)

// Evaluator determines whether a panel field should be shown based on a rule
// string and the current settings state.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the layout document
// the host persists for the extension. Item is the enclosing array item when
// the field belongs to a repeatable list, and Extras allows callers to inject
// arbitrary context such as feature flags.
type Context struct {
	Values map[string]any
	Item   map[string]any
	Extras map[string]any
}

// WithItem returns a copy of the context scoped to the supplied array item.
func (c Context) WithItem(item map[string]any) Context {
	c.Item = item
	return c
}

// Lookup resolves a dotted path against values. An exact match on the full
// dotted key wins over nested traversal.
func Lookup(values map[string]any, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if len(values) == 0 || path == "" {
		return nil, false
	}
	if v, ok := values[path]; ok {
		return v, true
	}

	var current any = values
	for _, part := range strings.Split(path, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

// Equals builds a rule comparing ident against a string literal.
func Equals(ident, value string) string {
	return ident + " == " + strconv.Quote(value)
}

// In builds a membership rule: the field is shown when ident holds one of
// values. An empty list yields a rule that never matches.
func In(ident string, values ...string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return ident + " in (" + strings.Join(quoted, ", ") + ")"
}

// And joins rules with a logical conjunction, skipping empty ones.
func And(rules ...string) string {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		if r = strings.TrimSpace(r); r != "" {
			parts = append(parts, "("+r+")")
		}
	}
	return strings.Join(parts, " && ")
}
