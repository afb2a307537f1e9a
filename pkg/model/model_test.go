package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sensenav/pkg/visibility"
)

func samplePanel() *Field {
	return Accordion(
		Uses("settings", "settings",
			Section("layout", "Layout",
				&Field{Key: "wide", Type: FieldTypeBoolean, Ref: "props.wide", DefaultValue: false},
				&Field{
					Key:          "align",
					Type:         FieldTypeString,
					Component:    ComponentDropdown,
					Ref:          "props.align",
					DefaultValue: "left",
					Options:      []Option{{Value: "left", Label: "Left"}, {Value: "right", Label: "Right"}},
					Show:         "props.wide",
				},
			),
			&Field{
				Key:  "rows",
				Type: FieldTypeArray,
				Ref:  "props.rows",
				Show: `props.mode != "off"`,
				Items: []*Field{
					{Key: "kind", Type: FieldTypeString, Ref: "kind", DefaultValue: "a"},
					{Key: "extra", Type: FieldTypeString, Ref: "extra", Show: `item.kind in ("b", "c")`},
				},
			},
		),
	)
}

func TestWalkVisitsInDeclarationOrder(t *testing.T) {
	var paths []string
	err := Walk(samplePanel(), func(path string, _ *Field) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	want := []string{
		"",
		"settings",
		"settings.layout",
		"settings.layout.wide",
		"settings.layout.align",
		"settings.rows",
		"settings.rows.kind",
		"settings.rows.extra",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkSkipChildrenAndErrors(t *testing.T) {
	var visited int
	err := Walk(samplePanel(), func(path string, f *Field) error {
		visited++
		if f.IsArray() {
			return SkipChildren
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if visited != 6 {
		t.Fatalf("expected 6 visits when skipping array children, got %d", visited)
	}

	boom := errors.New("boom")
	if err := Walk(samplePanel(), func(string, *Field) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected walk error to propagate, got %v", err)
	}
	if err := Walk(nil, nil); !errors.Is(err, ErrNilField) {
		t.Fatalf("expected ErrNilField, got %v", err)
	}
}

func TestFindAndFindRef(t *testing.T) {
	root := samplePanel()
	if f, ok := Find(root, "settings.layout.align"); !ok || f.Ref != "props.align" {
		t.Fatalf("Find returned %#v, %v", f, ok)
	}
	if _, ok := Find(root, "settings.missing"); ok {
		t.Fatalf("expected missing path to fail")
	}
	if f, ok := FindRef(root, "props.rows"); !ok || f.Key != "rows" {
		t.Fatalf("FindRef returned %#v, %v", f, ok)
	}
	if _, ok := FindRef(root, "kind"); ok {
		t.Fatalf("expected item refs to be ignored outside their array")
	}
}

func TestEvaluateScopesItemsAndHidesDescendants(t *testing.T) {
	layout := map[string]any{
		"props": map[string]any{
			"wide": true,
			"rows": []any{
				map[string]any{"cId": "r1", "kind": "a"},
				map[string]any{"cId": "r2", "kind": "c"},
			},
		},
	}
	states, err := Evaluate(samplePanel(), layout)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	want := []FieldState{
		{Path: "settings.layout.wide", Ref: "props.wide", Visible: true},
		{Path: "settings.layout.align", Ref: "props.align", Visible: true},
		{Path: "settings.rows", Ref: "props.rows", Visible: true},
		{Path: "settings.rows[0].kind", Ref: "props.rows[0].kind", CID: "r1", Visible: true},
		{Path: "settings.rows[0].extra", Ref: "props.rows[0].extra", CID: "r1", Visible: false},
		{Path: "settings.rows[1].kind", Ref: "props.rows[1].kind", CID: "r2", Visible: true},
		{Path: "settings.rows[1].extra", Ref: "props.rows[1].extra", CID: "r2", Visible: true},
	}
	if diff := cmp.Diff(want, states); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}

	layout["props"].(map[string]any)["mode"] = "off"
	refs, err := VisibleRefs(samplePanel(), layout)
	if err != nil {
		t.Fatalf("VisibleRefs returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"props.wide", "props.align"}, refs); diff != "" {
		t.Fatalf("hidden array should hide its items (-want +got):\n%s", diff)
	}
}

func TestEvaluateReportsRuleErrors(t *testing.T) {
	root := Accordion(&Field{Key: "broken", Ref: "props.broken", Show: "props.a =="})
	if _, err := Evaluate(root, nil); err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("expected rule error naming the field, got %v", err)
	}
}

func TestFieldVisibleWithExtras(t *testing.T) {
	f := &Field{Key: "beta", Ref: "props.beta", Show: "extras.preview"}
	ok, err := f.Visible(visibility.Context{}, WithExtras(map[string]any{"preview": true}))
	if err != nil {
		t.Fatalf("Visible returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected extras to be visible to rules")
	}
}

func TestDefaultsAndSetValue(t *testing.T) {
	layout, err := Defaults(samplePanel())
	if err != nil {
		t.Fatalf("Defaults returned error: %v", err)
	}
	want := map[string]any{
		"props": map[string]any{
			"wide":  false,
			"align": "left",
			"rows":  []any{},
		},
	}
	if diff := cmp.Diff(want, layout); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	if err := SetValue(layout, "props.wide.deeper", true); err == nil {
		t.Fatalf("expected error when writing through a scalar")
	}
	if err := SetValue(layout, "props..x", true); err == nil {
		t.Fatalf("expected error for empty segment")
	}
}

func TestNewItemAndItemByCID(t *testing.T) {
	rows, _ := Find(samplePanel(), "settings.rows")
	item, err := NewItem(rows)
	if err != nil {
		t.Fatalf("NewItem returned error: %v", err)
	}
	cid, _ := item[CIDKey].(string)
	if cid == "" {
		t.Fatalf("expected cId on new item")
	}
	if item["kind"] != "a" {
		t.Fatalf("expected item defaults, got %#v", item)
	}

	layout := map[string]any{"props": map[string]any{"rows": []any{item}}}
	found, ok := ItemByCID(layout, "props.rows", cid)
	if !ok || found["kind"] != "a" {
		t.Fatalf("ItemByCID returned %#v, %v", found, ok)
	}
	if _, ok := ItemByCID(layout, "props.rows", "nope"); ok {
		t.Fatalf("expected unknown cId to miss")
	}

	if _, err := NewItem(&Field{Key: "plain"}); !errors.Is(err, ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
}

func TestValueReadsIndexedRefs(t *testing.T) {
	layout := map[string]any{"props": map[string]any{"rows": []any{
		map[string]any{"kind": "a"},
		map[string]any{"kind": "b"},
	}}}
	if v, ok := Value(layout, "props.rows[1].kind"); !ok || v != "b" {
		t.Fatalf("Value returned %#v, %v", v, ok)
	}
	if _, ok := Value(layout, "props.rows[5].kind"); ok {
		t.Fatalf("expected out of range index to miss")
	}
}

func TestResolverInlinesSourcesAndSwallowsErrors(t *testing.T) {
	var logs bytes.Buffer
	resolver := NewResolver(WithLogger(zerolog.New(&logs)))

	root := Accordion(
		&Field{Key: "ok", Ref: "props.ok", OptionSource: func(context.Context) ([]Option, error) {
			return []Option{{Value: "x", Label: "X"}}, nil
		}},
		&Field{Key: "bad", Ref: "props.bad", OptionSource: func(context.Context) ([]Option, error) {
			return nil, errors.New("host offline")
		}},
	)

	resolved, err := resolver.Resolve(context.Background(), root)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	okField, _ := resolved.Child("ok")
	badField, _ := resolved.Child("bad")
	if diff := cmp.Diff([]Option{{Value: "x", Label: "X"}}, okField.Options); diff != "" {
		t.Fatalf("resolved options mismatch (-want +got):\n%s", diff)
	}
	if badField.Options == nil || len(badField.Options) != 0 || badField.OptionSource != nil {
		t.Fatalf("expected failing source to resolve to an empty list, got %#v", badField)
	}
	if !strings.Contains(logs.String(), "host offline") {
		t.Fatalf("expected failure to be logged, got %q", logs.String())
	}
	if original, _ := root.Child("bad"); original.OptionSource == nil {
		t.Fatalf("Resolve must not mutate the input tree")
	}
}

func TestExportJSONAndYAMLKeepOrder(t *testing.T) {
	root := samplePanel()

	raw, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("json.Marshal returned error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("exported JSON is invalid: %v", err)
	}
	doc := string(raw)
	if strings.Index(doc, `"layout"`) > strings.Index(doc, `"rows"`) {
		t.Fatalf("expected layout before rows in %s", doc)
	}
	if !strings.Contains(doc, `"show":"props.wide"`) {
		t.Fatalf("expected show rule in %s", doc)
	}
	if !strings.Contains(doc, `"defaultValue":false`) {
		t.Fatalf("expected false defaults to be exported in %s", doc)
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		t.Fatalf("yaml.Marshal returned error: %v", err)
	}
	text := string(out)
	if strings.Index(text, "wide:") > strings.Index(text, "align:") {
		t.Fatalf("expected wide before align in YAML:\n%s", text)
	}
	if !strings.Contains(text, "component: accordion") {
		t.Fatalf("expected accordion root in YAML:\n%s", text)
	}
}

func TestCloneIsDeep(t *testing.T) {
	root := samplePanel()
	copied := Clone(root)
	align, _ := Find(copied, "settings.layout.align")
	align.Options[0].Label = "changed"
	align.Label = "changed"

	original, _ := Find(root, "settings.layout.align")
	if original.Options[0].Label != "Left" || original.Label != "" {
		t.Fatalf("expected clone to be independent, got %#v", original)
	}
}
