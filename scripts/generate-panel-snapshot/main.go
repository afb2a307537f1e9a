package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sensenav/pkg/helper"
	"github.com/goliatone/go-sensenav/pkg/model"
	"github.com/goliatone/go-sensenav/pkg/navpanel"
)

func main() {
	var (
		listsPath  = flag.String("lists", "", "host list fixture (JSON or YAML); empty lists when unset")
		outputPath = flag.String("output", "pkg/navpanel/testdata/panel.yaml", "output path for the resolved panel")
	)
	flag.Parse()

	lister := &helper.Static{}
	if *listsPath != "" {
		loaded, err := helper.LoadFile(*listsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load lists: %v\n", err)
			os.Exit(1)
		}
		lister = loaded
	}

	panel, err := navpanel.New(lister)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build panel: %v\n", err)
		os.Exit(1)
	}
	resolved, err := model.NewResolver().Resolve(context.Background(), panel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve panel: %v\n", err)
		os.Exit(1)
	}

	payload, err := yaml.Marshal(resolved)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode panel: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output dir: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Panel snapshot written to %s\n", *outputPath)
}
