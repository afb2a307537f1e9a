package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-sensenav/components/icons"
)

// Normalises an icon catalog (JSON or YAML) into the embedded JSON form:
// ids trimmed, duplicates dropped (first wins), entries sorted by id.
func main() {
	var (
		inputPath  = flag.String("input", "", "source catalog (JSON or YAML)")
		outputPath = flag.String("output", "components/icons/data/icons-fa.json", "embedded catalog path")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "missing -input")
		os.Exit(2)
	}
	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read catalog: %v\n", err)
		os.Exit(1)
	}
	catalog, err := icons.ParseCatalog(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse catalog: %v\n", err)
		os.Exit(1)
	}

	seen := make(map[string]struct{}, len(catalog.Icons))
	out := icons.Catalog{Icons: make([]icons.Icon, 0, len(catalog.Icons))}
	for _, icon := range catalog.Icons {
		icon.ID = strings.TrimSpace(icon.ID)
		icon.Name = strings.TrimSpace(icon.Name)
		if _, ok := seen[icon.ID]; ok {
			continue
		}
		seen[icon.ID] = struct{}{}
		out.Icons = append(out.Icons, icon)
	}
	sort.Slice(out.Icons, func(i, j int) bool { return out.Icons[i].ID < out.Icons[j].ID })

	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode catalog: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, append(payload, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d icons written to %s\n", len(out.Icons), *outputPath)
}
