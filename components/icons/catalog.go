package icons

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sensenav/pkg/model"
)

//go:embed data/icons-fa.json
var dataFS embed.FS

const defaultCatalogPath = "data/icons-fa.json"

// NoIconLabel is the label of the sentinel option that clears the icon.
const NoIconLabel = ">> No icon <<"

var (
	// ErrEmptyCatalog is returned for an empty catalog document.
	ErrEmptyCatalog = errors.New("icons: empty catalog")
	// ErrMissingIcons is returned when the document has no icons list.
	ErrMissingIcons = errors.New("icons: catalog has no icons list")
)

// Icon is a single catalog entry.
type Icon struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Catalog is the parsed icon catalog resource.
type Catalog struct {
	Icons []Icon `json:"icons" yaml:"icons"`
}

type catalogFile struct {
	Icons *[]Icon `json:"icons" yaml:"icons"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
	defaultErr     error
)

// DefaultCatalog parses the embedded catalog once and returns a copy.
func DefaultCatalog() (Catalog, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		catalog, err := LoadCatalog(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog = catalog
	})

	if defaultErr != nil {
		return Catalog{}, defaultErr
	}
	return Catalog{Icons: append([]Icon{}, defaultCatalog.Icons...)}, nil
}

// LoadCatalog parses a JSON or YAML catalog document.
func LoadCatalog(r io.Reader) (Catalog, error) {
	if r == nil {
		return Catalog{}, fmt.Errorf("icons: missing reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("icons: read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses raw catalog bytes.
func ParseCatalog(data []byte) (Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}

	var doc catalogFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = catalogFile{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return Catalog{}, fmt.Errorf("icons: parse catalog: invalid JSON or YAML: %w", err)
		}
	}
	if doc.Icons == nil {
		return Catalog{}, ErrMissingIcons
	}

	icons := make([]Icon, 0, len(*doc.Icons))
	for idx, icon := range *doc.Icons {
		id := strings.TrimSpace(icon.ID)
		if id == "" {
			return Catalog{}, fmt.Errorf("icons: parse catalog: entry %d has an empty id", idx)
		}
		icons = append(icons, Icon{ID: id, Name: icon.Name})
	}
	return Catalog{Icons: icons}, nil
}

// BuildOptions converts the catalog into dropdown options: the "no icon"
// sentinel is prepended, every icon maps to {id, name} and the result is
// stably sorted by label. Because sorting is by label the sentinel does not
// necessarily stay first.
func BuildOptions(catalog Catalog) []model.Option {
	options := make([]model.Option, 0, len(catalog.Icons)+1)
	options = append(options, model.Option{Value: "", Label: NoIconLabel})
	for _, icon := range catalog.Icons {
		options = append(options, model.Option{
			Value: icon.ID,
			Label: sanitizeLabel(icon.Name),
		})
	}
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Label < options[j].Label
	})
	return options
}

// CatalogOptions builds the options for the embedded catalog.
func CatalogOptions() ([]model.Option, error) {
	catalog, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	return BuildOptions(catalog), nil
}
