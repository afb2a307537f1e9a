// Package helper declares the host lookups the property panel draws its
// dynamic option lists from: apps, sheets, stories, bookmarks and fields of
// the current app. Fetching them from a live host is left to implementations
// outside this module; Static serves fixed lists.
package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sensenav/pkg/model"
)

// Lister returns {value, label} lists from the host app. Results may be
// computed asynchronously; callers pass a context and treat an error as an
// empty list.
type Lister interface {
	AppList(ctx context.Context) ([]model.Option, error)
	SheetList(ctx context.Context) ([]model.Option, error)
	StoryList(ctx context.Context) ([]model.Option, error)
	BookmarkList(ctx context.Context) ([]model.Option, error)
	FieldList(ctx context.Context) ([]model.Option, error)
}

// Static is a Lister over fixed lists. Nil lists are returned as empty.
type Static struct {
	Apps      []model.Option `json:"apps" yaml:"apps"`
	Sheets    []model.Option `json:"sheets" yaml:"sheets"`
	Stories   []model.Option `json:"stories" yaml:"stories"`
	Bookmarks []model.Option `json:"bookmarks" yaml:"bookmarks"`
	Fields    []model.Option `json:"fields" yaml:"fields"`
}

var _ Lister = (*Static)(nil)

func (s *Static) AppList(ctx context.Context) ([]model.Option, error) {
	return s.list(ctx, func(s *Static) []model.Option { return s.Apps })
}

func (s *Static) SheetList(ctx context.Context) ([]model.Option, error) {
	return s.list(ctx, func(s *Static) []model.Option { return s.Sheets })
}

func (s *Static) StoryList(ctx context.Context) ([]model.Option, error) {
	return s.list(ctx, func(s *Static) []model.Option { return s.Stories })
}

func (s *Static) BookmarkList(ctx context.Context) ([]model.Option, error) {
	return s.list(ctx, func(s *Static) []model.Option { return s.Bookmarks })
}

func (s *Static) FieldList(ctx context.Context) ([]model.Option, error) {
	return s.list(ctx, func(s *Static) []model.Option { return s.Fields })
}

func (s *Static) list(ctx context.Context, pick func(*Static) []model.Option) ([]model.Option, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if s == nil {
		return []model.Option{}, nil
	}
	// Callers may mutate the result (the field list gets an entry prepended).
	return append([]model.Option{}, pick(s)...), nil
}

// LoadFile reads a Static fixture from a JSON or YAML file.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("helper: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a Static fixture. JSON is used for .json sources and YAML
// otherwise.
func Parse(data []byte, source string) (*Static, error) {
	out := &Static{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, nil
	}
	var err error
	if strings.EqualFold(filepath.Ext(source), ".json") {
		err = json.Unmarshal(data, out)
	} else {
		err = yaml.Unmarshal(data, out)
	}
	if err != nil {
		return nil, fmt.Errorf("helper: parse %s: %w", source, err)
	}
	return out, nil
}
