package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sensenav/pkg/helper"
	"github.com/goliatone/go-sensenav/pkg/model"
	"github.com/goliatone/go-sensenav/pkg/navpanel"
	"github.com/goliatone/go-sensenav/pkg/validation"
)

type brokenSheets struct {
	helper.Static
}

func (*brokenSheets) SheetList(context.Context) ([]model.Option, error) {
	return nil, errors.New("engine unavailable")
}

func newTestRouter(t *testing.T, lister helper.Lister, logs *bytes.Buffer) http.Handler {
	t.Helper()
	panel, err := navpanel.New(lister)
	require.NoError(t, err)
	h, err := NewRouter(panel,
		WithLogger(zerolog.New(logs)),
		WithIconOptions([]model.Option{{Value: "", Label: ">> No icon <<"}, {Value: "fa-home", Label: "Home"}}),
	)
	require.NoError(t, err)
	return h
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, &bytes.Buffer{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestPanelFormats(t *testing.T) {
	h := newTestRouter(t, nil, &bytes.Buffer{})

	rec := do(t, h, http.MethodGet, "/api/panel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "accordion", doc["component"])

	rec = do(t, h, http.MethodGet, "/api/panel?format=yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "yaml")
	assert.Contains(t, rec.Body.String(), "component: accordion")

	rec = do(t, h, http.MethodGet, "/api/panel?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPanelResolveInlinesHostLists(t *testing.T) {
	var logs bytes.Buffer
	lister := &brokenSheets{Static: helper.Static{
		Stories: []model.Option{{Value: "st1", Label: "Story One"}},
	}}
	h := newTestRouter(t, lister, &logs)

	rec := do(t, h, http.MethodGet, "/api/panel?resolve=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"Story One"`)
	assert.Contains(t, logs.String(), "engine unavailable")
}

func TestDefaults(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, &bytes.Buffer{}), http.MethodGet, "/api/defaults", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var layout map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layout))
	props := layout["props"].(map[string]any)
	assert.Equal(t, "My Button", props["buttonLabel"])
	assert.Equal(t, navpanel.NavNextSheet, props["navigationAction"])
}

func TestVisibility(t *testing.T) {
	h := newTestRouter(t, nil, &bytes.Buffer{})
	body := `{"props":{"navigationAction":"gotoSheetById","fullWidth":true,
		"actionItems":[{"cId":"a1","actionType":"applyBookmark"}]}}`
	rec := do(t, h, http.MethodPost, "/api/visibility", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp visibilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Visible, navpanel.RefSheetID)
	assert.Contains(t, resp.Visible, navpanel.RefButtonTextAlign)
	assert.Contains(t, resp.Visible, "props.actionItems[0].selectedBookmark")
	assert.NotContains(t, resp.Visible, "props.actionItems[0].selectedField")
	assert.NotContains(t, resp.Visible, navpanel.RefSelectedSheet)
}

func TestValidate(t *testing.T) {
	h := newTestRouter(t, nil, &bytes.Buffer{})

	rec := do(t, h, http.MethodPost, "/api/validate", `{"props":{"buttonStyle":"neon"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var result validation.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, navpanel.RefButtonStyle, result.Issues[0].Field)

	rec = do(t, h, http.MethodPost, "/api/validate", `{"props":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIconsMounted(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, &bytes.Buffer{}), http.MethodGet, "/api/icons?q=ho", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fa-home")
}

func TestIconsFollowPanelCatalog(t *testing.T) {
	panel, err := navpanel.New(nil, navpanel.WithCatalogData([]byte(`{"icons":[{"id":"custom-only","name":"Custom Only"}]}`)))
	require.NoError(t, err)
	h, err := NewRouter(panel, WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	rec := do(t, h, http.MethodGet, "/api/icons", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data []model.Option `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, []model.Option{
		{Value: "", Label: ">> No icon <<"},
		{Value: "custom-only", Label: "Custom Only"},
	}, payload.Data)

	rec = do(t, h, http.MethodGet, "/api/icons?q=home", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/icons", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewRouterRequiresPanel(t *testing.T) {
	_, err := NewRouter(nil)
	assert.ErrorIs(t, err, model.ErrNilField)
}
