package icons

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/goliatone/go-sensenav/pkg/model"
)

const (
	// DefaultLimit caps a response when the request names no limit.
	DefaultLimit = 100
	// MaxLimit is the largest limit a request may ask for.
	MaxLimit = 500
)

type optionsResponse struct {
	Data []model.Option `json:"data"`
}

// Handler serves the button icon options as {"data": [...]}. The q parameter
// filters with Search and limit caps the result at no more than MaxLimit. A
// missing, unparsable or non-positive limit means DefaultLimit.
//
// options is usually the built dropdown of the panel's buttonIcon field, so
// a custom catalog is served as loaded.
func Handler(options []model.Option) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		results := Search(options, query.Get("q"), requestLimit(query.Get("limit")))
		if results == nil {
			results = []model.Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(optionsResponse{Data: results})
	})
}

func requestLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	switch {
	case err != nil || limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}
