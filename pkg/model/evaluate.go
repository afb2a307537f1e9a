package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-sensenav/pkg/visibility"
	"github.com/goliatone/go-sensenav/pkg/visibility/expr"
)

// FieldState is the visibility of a single field for a given layout. Array
// item fields produce one state per item with an indexed Path and Ref, e.g.
// "settings.actionsList[1].bookmarkList" and "props.actionItems[1].selectedBookmark".
type FieldState struct {
	Path    string `json:"path"`
	Ref     string `json:"ref,omitempty"`
	CID     string `json:"cId,omitempty"`
	Visible bool   `json:"visible"`
}

// EvalOption configures Evaluate.
type EvalOption func(*evalConfig)

type evalConfig struct {
	evaluator visibility.Evaluator
	extras    map[string]any
}

// WithExtras exposes additional values to rules under the `extras.` prefix.
func WithExtras(extras map[string]any) EvalOption {
	return func(cfg *evalConfig) {
		cfg.extras = extras
	}
}

func newEvalConfig(opts []EvalOption) evalConfig {
	cfg := evalConfig{evaluator: expr.New()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Visible evaluates the field's own rule. It does not consider ancestors.
func (f *Field) Visible(ctx visibility.Context, opts ...EvalOption) (bool, error) {
	if f == nil {
		return false, ErrNilField
	}
	if strings.TrimSpace(f.Show) == "" {
		return true, nil
	}
	cfg := newEvalConfig(opts)
	if cfg.extras != nil {
		ctx.Extras = cfg.extras
	}
	ok, err := cfg.evaluator.Eval(f.Ref, f.Show, ctx)
	if err != nil {
		return false, fmt.Errorf("model: field %q rule %q: %w", f.Key, f.Show, err)
	}
	return ok, nil
}

// Evaluate computes the visibility of every field in the tree against layout.
// A hidden section or array hides all of its descendants. Array item fields
// are evaluated once per item found at the array's Ref, with the item in
// scope for `item.` identifiers.
func Evaluate(root *Field, layout map[string]any, opts ...EvalOption) ([]FieldState, error) {
	if root == nil {
		return nil, ErrNilField
	}
	cfg := newEvalConfig(opts)
	ctx := visibility.Context{Values: layout, Extras: cfg.extras}

	var states []FieldState
	var visit func(path, refPrefix, cid string, field *Field, ctx visibility.Context, parentVisible bool) error
	visit = func(path, refPrefix, cid string, field *Field, ctx visibility.Context, parentVisible bool) error {
		visible := parentVisible
		if visible && strings.TrimSpace(field.Show) != "" {
			ok, err := cfg.evaluator.Eval(field.Ref, field.Show, ctx)
			if err != nil {
				return fmt.Errorf("model: field %q rule %q: %w", path, field.Show, err)
			}
			visible = ok
		}
		if field.Ref != "" {
			states = append(states, FieldState{
				Path:    path,
				Ref:     joinRef(refPrefix, field.Ref),
				CID:     cid,
				Visible: visible,
			})
		}

		if field.IsArray() {
			items := arrayItems(layout, joinRef(refPrefix, field.Ref))
			for idx, item := range items {
				itemPath := path + "[" + strconv.Itoa(idx) + "]"
				itemRef := joinRef(refPrefix, field.Ref) + "[" + strconv.Itoa(idx) + "]"
				itemCID, _ := item["cId"].(string)
				itemCtx := ctx.WithItem(item)
				for _, child := range field.Items {
					if child == nil {
						continue
					}
					if err := visit(joinPath(itemPath, child.Key), itemRef, itemCID, child, itemCtx, visible); err != nil {
						return err
					}
				}
			}
			return nil
		}

		for _, child := range field.Items {
			if child == nil {
				continue
			}
			if err := visit(joinPath(path, child.Key), refPrefix, cid, child, ctx, visible); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit("", "", "", root, ctx, true); err != nil {
		return nil, err
	}
	return states, nil
}

// VisibleRefs returns the layout refs of all visible fields in tree order.
func VisibleRefs(root *Field, layout map[string]any, opts ...EvalOption) ([]string, error) {
	states, err := Evaluate(root, layout, opts...)
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(states))
	for _, st := range states {
		if st.Visible {
			refs = append(refs, st.Ref)
		}
	}
	return refs, nil
}

func joinRef(prefix, ref string) string {
	if prefix == "" {
		return ref
	}
	if ref == "" {
		return prefix
	}
	return prefix + "." + ref
}

// arrayItems reads the array stored at ref. Indexed refs produced for nested
// arrays ("a[0].b") are resolved segment by segment.
func arrayItems(layout map[string]any, ref string) []map[string]any {
	value, ok := lookupIndexed(layout, ref)
	if !ok {
		return nil
	}
	return toItems(value)
}

func toItems(value any) []map[string]any {
	switch typed := value.(type) {
	case []map[string]any:
		return typed
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, entry := range typed {
			if m, ok := entry.(map[string]any); ok {
				out = append(out, m)
			} else {
				out = append(out, map[string]any{})
			}
		}
		return out
	default:
		return nil
	}
}

func lookupIndexed(layout map[string]any, ref string) (any, bool) {
	if !strings.Contains(ref, "[") {
		return visibility.Lookup(layout, ref)
	}
	var current any = layout
	for _, segment := range strings.Split(ref, ".") {
		name, index, hasIndex := splitIndex(segment)
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := m[name]
		if !ok {
			return nil, false
		}
		current = next
		if hasIndex {
			items := toItems(current)
			if index < 0 || index >= len(items) {
				return nil, false
			}
			current = items[index]
		}
	}
	return current, true
}

func splitIndex(segment string) (string, int, bool) {
	open := strings.IndexByte(segment, '[')
	if open < 0 || !strings.HasSuffix(segment, "]") {
		return segment, 0, false
	}
	idx, err := strconv.Atoi(segment[open+1 : len(segment)-1])
	if err != nil {
		return segment, 0, false
	}
	return segment[:open], idx, true
}
