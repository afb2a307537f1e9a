package navpanel

import (
	"fmt"

	"github.com/goliatone/go-sensenav/components/icons"
	"github.com/goliatone/go-sensenav/pkg/helper"
	"github.com/goliatone/go-sensenav/pkg/model"
)

// Option configures New.
type Option func(*config)

type config struct {
	iconOptions []model.Option
	catalog     *icons.Catalog
	catalogData []byte
}

// WithCatalog builds the icon dropdown from catalog instead of the embedded
// one.
func WithCatalog(catalog icons.Catalog) Option {
	return func(cfg *config) {
		cfg.catalog = &catalog
	}
}

// WithCatalogData parses raw catalog bytes (JSON or YAML) during New. A parse
// failure is returned by New.
func WithCatalogData(data []byte) Option {
	return func(cfg *config) {
		cfg.catalogData = append([]byte{}, data...)
	}
}

// WithIconOptions uses a prebuilt icon option list as is.
func WithIconOptions(options []model.Option) Option {
	return func(cfg *config) {
		cfg.iconOptions = append([]model.Option{}, options...)
	}
}

// New builds the navigation button property panel. Dynamic lists (sheets,
// stories, apps, bookmarks, fields) are read from lister when the host asks
// for options; a nil lister serves empty lists. An icon catalog that cannot
// be parsed fails construction.
func New(lister helper.Lister, opts ...Option) (*model.Field, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if lister == nil {
		lister = &helper.Static{}
	}

	iconOptions := cfg.iconOptions
	switch {
	case iconOptions != nil:
	case cfg.catalog != nil:
		iconOptions = icons.BuildOptions(*cfg.catalog)
	case cfg.catalogData != nil:
		catalog, err := icons.ParseCatalog(cfg.catalogData)
		if err != nil {
			return nil, fmt.Errorf("navpanel: icon catalog: %w", err)
		}
		iconOptions = icons.BuildOptions(catalog)
	default:
		built, err := icons.CatalogOptions()
		if err != nil {
			return nil, fmt.Errorf("navpanel: icon catalog: %w", err)
		}
		iconOptions = built
	}

	settings := model.Uses("settings", "settings",
		&model.Field{
			Key: "general",
			Items: []*model.Field{
				{Key: "showTitles", Ref: "showTitles", DefaultValue: false},
			},
		},
		layoutSection(iconOptions),
		actionsList(lister),
		behaviorSection(lister),
	)
	return model.Accordion(settings), nil
}

// MustNew is like New but panics on error.
func MustNew(lister helper.Lister, opts ...Option) *model.Field {
	panel, err := New(lister, opts...)
	if err != nil {
		panic(err)
	}
	return panel
}
