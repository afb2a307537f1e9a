package icons

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sensenav/pkg/model"
)

// Search filters options by a case-insensitive match on label or id. Label
// prefix matches rank first; ties keep the input order, which for built
// options is label order. An empty query keeps every option. A limit of zero
// or less does not cap the result.
func Search(options []model.Option, query string, limit int) []model.Option {
	q := strings.ToLower(strings.TrimSpace(query))

	var prefixed, contained []model.Option
	for _, option := range options {
		if q == "" {
			prefixed = append(prefixed, option)
			continue
		}
		label := strings.ToLower(option.Label)
		switch {
		case strings.HasPrefix(label, q):
			prefixed = append(prefixed, option)
		case strings.Contains(label, q) || strings.Contains(strings.ToLower(fmt.Sprint(option.Value)), q):
			contained = append(contained, option)
		}
	}

	out := append(prefixed, contained...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
