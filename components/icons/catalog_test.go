package icons

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sensenav/pkg/model"
)

func TestBuildOptions_SortsByLabelAndKeepsSentinel(t *testing.T) {
	catalog := Catalog{Icons: []Icon{
		{ID: "fa-star", Name: "Star"},
		{ID: "fa-500px", Name: "500px"},
		{ID: "fa-arrow-left", Name: "Arrow Left"},
		{ID: "fa-bookmark", Name: "Bookmark"},
	}}

	got := BuildOptions(catalog)
	want := []model.Option{
		{Value: "fa-500px", Label: "500px"},
		{Value: "", Label: NoIconLabel},
		{Value: "fa-arrow-left", Label: "Arrow Left"},
		{Value: "fa-bookmark", Label: "Bookmark"},
		{Value: "fa-star", Label: "Star"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOptions_EmptyCatalogYieldsSentinelOnly(t *testing.T) {
	got := BuildOptions(Catalog{})
	want := []model.Option{{Value: "", Label: NoIconLabel}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOptions_StableForEqualLabels(t *testing.T) {
	got := BuildOptions(Catalog{Icons: []Icon{
		{ID: "fa-b", Name: "Same"},
		{ID: "fa-a", Name: "Same"},
	}})
	if got[1].Value != "fa-b" || got[2].Value != "fa-a" {
		t.Fatalf("expected catalog order for equal labels, got %#v", got)
	}
}

func TestBuildOptions_StripsMarkupFromLabels(t *testing.T) {
	got := BuildOptions(Catalog{Icons: []Icon{
		{ID: "fa-x", Name: `<b>Bold</b> & <script>alert(1)</script>Icon`},
	}})
	for _, option := range got {
		if option.Value != "fa-x" {
			continue
		}
		if strings.ContainsAny(option.Label, "<>") {
			t.Fatalf("expected markup to be stripped, got %q", option.Label)
		}
		if !strings.HasPrefix(option.Label, "Bold &") {
			t.Fatalf("expected text to survive sanitising, got %q", option.Label)
		}
		return
	}
	t.Fatalf("icon option missing from %#v", got)
}

func TestCatalogOptions_SortedWithSentinel(t *testing.T) {
	options, err := CatalogOptions()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(options) < 50 {
		t.Fatalf("expected a reasonably sized list, got %d", len(options))
	}
	if !sort.SliceIsSorted(options, func(i, j int) bool { return options[i].Label < options[j].Label }) {
		t.Fatalf("expected options sorted by label")
	}
	sentinels := 0
	for _, option := range options {
		if option.Value == "" && option.Label == NoIconLabel {
			sentinels++
		}
	}
	if sentinels != 1 {
		t.Fatalf("expected exactly one sentinel, got %d", sentinels)
	}
}

func TestParseCatalog_AcceptsYAML(t *testing.T) {
	catalog, err := ParseCatalog([]byte("icons:\n  - id: fa-home\n    name: Home\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff(Catalog{Icons: []Icon{{ID: "fa-home", Name: "Home"}}}, catalog); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCatalog_Malformed(t *testing.T) {
	cases := map[string]struct {
		input string
		want  error
	}{
		"empty":        {input: "  ", want: ErrEmptyCatalog},
		"missing list": {input: `{"glyphs": []}`, want: ErrMissingIcons},
		"broken json":  {input: `{"icons": [`},
		"empty id":     {input: `{"icons": [{"id": "", "name": "Nothing"}]}`},
		"wrong shape":  {input: `{"icons": "fa-home"}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tc.input))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseCatalog_KeepsNamesUntilOptionsAreBuilt(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`{"icons": [{"id": " fa-home ", "name": " <b>Home</b> "}]}`))
	if err != nil {
		t.Fatalf("ParseCatalog returned error: %v", err)
	}
	want := []Icon{{ID: "fa-home", Name: " <b>Home</b> "}}
	if diff := cmp.Diff(want, catalog.Icons); diff != "" {
		t.Fatalf("icons mismatch (-want +got):\n%s", diff)
	}

	options := BuildOptions(catalog)
	if options[1].Value != "fa-home" || options[1].Label != "Home" {
		t.Fatalf("unexpected built option: %#v", options[1])
	}
}

func TestSearch_PrefixBeforeContains(t *testing.T) {
	options := BuildOptions(Catalog{Icons: []Icon{
		{ID: "fa-fast-backward", Name: "Fast Backward"},
		{ID: "fa-backward", Name: "Backward"},
		{ID: "fa-step-backward", Name: "Step Backward"},
		{ID: "fa-home", Name: "Home"},
	}})

	got := Search(options, "backward", 10)
	var labels []string
	for _, option := range got {
		labels = append(labels, option.Label)
	}
	want := []string{"Backward", "Fast Backward", "Step Backward"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_MatchesID(t *testing.T) {
	options := BuildOptions(Catalog{Icons: []Icon{{ID: "fa-tachometer", Name: "Dashboard Gauge"}}})
	got := Search(options, "tachometer", 10)
	if len(got) != 1 || got[0].Value != "fa-tachometer" {
		t.Fatalf("unexpected results: %#v", got)
	}
}

func TestSearch_EmptyQueryAndLimit(t *testing.T) {
	options := BuildOptions(Catalog{Icons: []Icon{{ID: "fa-a", Name: "A"}, {ID: "fa-b", Name: "B"}}})

	if got := Search(options, "", 0); len(got) != 3 {
		t.Fatalf("expected every option for an empty query, got %#v", got)
	}
	if got := Search(options, "  ", 2); len(got) != 2 {
		t.Fatalf("expected the first 2 options, got %#v", got)
	}
	if got := Search(options, "fa-", -1); len(got) != 2 {
		t.Fatalf("expected id matches without a cap, got %#v", got)
	}
}
