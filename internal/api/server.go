// Package api exposes the navigation panel over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sensenav/components/icons"
	"github.com/goliatone/go-sensenav/internal/log"
	"github.com/goliatone/go-sensenav/pkg/model"
	"github.com/goliatone/go-sensenav/pkg/navpanel"
	"github.com/goliatone/go-sensenav/pkg/validation"
)

// MaxBodyBytes bounds layout documents posted to the API.
const MaxBodyBytes = 1 << 20

// Option configures NewRouter.
type Option func(*server)

type server struct {
	panel    *model.Field
	icons    []model.Option
	logger   zerolog.Logger
	resolver *model.Resolver
}

// WithLogger sets the request and error logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *server) {
		s.logger = logger
	}
}

// WithIconOptions serves icons from options instead of the options of the
// panel's buttonIcons dropdown.
func WithIconOptions(options []model.Option) Option {
	return func(s *server) {
		s.icons = options
	}
}

// NewRouter builds the API:
//
//	GET  /healthz
//	GET  /api/panel      ?format=json|yaml&resolve=true
//	GET  /api/defaults
//	GET  /api/icons      ?q=&limit=
//	POST /api/visibility
//	POST /api/validate
func NewRouter(panel *model.Field, opts ...Option) (http.Handler, error) {
	if panel == nil {
		return nil, model.ErrNilField
	}
	s := &server{panel: panel, logger: log.WithComponent("api")}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.icons == nil {
		if field, ok := model.FindRef(panel, navpanel.RefButtonIcon); ok {
			s.icons = field.Options
		}
	}
	s.resolver = model.NewResolver(model.WithLogger(s.logger))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Get("/api/panel", s.handlePanel)
	r.Get("/api/defaults", s.handleDefaults)
	r.Post("/api/visibility", s.handleVisibility)
	r.Post("/api/validate", s.handleValidate)

	iconHandler := icons.Handler(s.icons)
	r.Method(http.MethodGet, "/api/icons", iconHandler)
	r.Method(http.MethodHead, "/api/icons", iconHandler)
	return r, nil
}

func (s *server) handlePanel(w http.ResponseWriter, r *http.Request) {
	panel := s.panel
	if resolve, _ := strconv.ParseBool(r.URL.Query().Get("resolve")); resolve {
		resolved, err := s.resolver.Resolve(r.Context(), panel)
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
		panel = resolved
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, panel)
	case "yaml":
		out, err := yaml.Marshal(panel)
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	default:
		s.fail(w, r, http.StatusBadRequest, errors.New("format must be json or yaml"))
	}
}

func (s *server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	layout, err := model.Defaults(s.panel)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

type visibilityResponse struct {
	Visible []string           `json:"visible"`
	Fields  []model.FieldState `json:"fields"`
}

func (s *server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.decodeLayout(w, r)
	if !ok {
		return
	}
	states, err := model.Evaluate(s.panel, layout)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	visible := []string{}
	for _, state := range states {
		if state.Visible {
			visible = append(visible, state.Ref)
		}
	}
	writeJSON(w, http.StatusOK, visibilityResponse{Visible: visible, Fields: states})
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.decodeLayout(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, validation.ValidateLayout(r.Context(), s.panel, layout))
}

func (s *server) decodeLayout(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var layout map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&layout); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("decode layout: %w", err))
		return nil, false
	}
	if layout == nil {
		layout = map[string]any{}
	}
	return layout, true
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	event := hlog.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = hlog.FromRequest(r).Error()
	}
	event.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
