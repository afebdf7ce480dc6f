package profile

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/nkp491/surehelp/internal/dto"
	"gorm.io/datatypes"
)

type staticRoles []string

func (r staticRoles) RoleNames(ctx context.Context, userID string) ([]string, error) {
	return r, nil
}

func newTestProfileHandler(t *testing.T) (*Handler, *Store) {
	store := newTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, staticRoles{"agent"}, logger), store
}

func newProfileContext(method, target, body string, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		auth.SetClaimsForTest(c, &auth.Claims{UserID: userID})
	}
	return c, rec
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, _ := newTestProfileHandler(t)
	e := echo.New()
	h.RegisterRoutes(e.Group("/v1"))

	expected := map[string]bool{
		"GET /v1/me":         false,
		"PATCH /v1/me":       false,
		"GET /v1/me/privacy": false,
		"PUT /v1/me/privacy": false,
	}
	for _, r := range e.Routes() {
		if _, ok := expected[r.Method+" "+r.Path]; ok {
			expected[r.Method+" "+r.Path] = true
		}
	}
	for route, found := range expected {
		if !found {
			t.Errorf("expected route %s to be registered", route)
		}
	}
}

func TestHandler_Me(t *testing.T) {
	h, store := newTestProfileHandler(t)

	c, _ := newProfileContext(http.MethodGet, "/v1/me", "", "")
	err := h.Me(c)
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}

	c, _ = newProfileContext(http.MethodGet, "/v1/me", "", testUserID)
	err = h.Me(c)
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}

	store.SyncFromJWT(context.Background(), testUserID, "jane@example.com", "Jane Doe", "")
	c, rec := newProfileContext(http.MethodGet, "/v1/me", "", testUserID)
	if err := h.Me(c); err != nil {
		t.Fatalf("me failed: %v", err)
	}

	var resp dto.MeResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Email != "jane@example.com" || resp.FirstName != "Jane" || len(resp.Roles) != 1 || resp.Roles[0] != "agent" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHandler_UpdateMe(t *testing.T) {
	h, store := newTestProfileHandler(t)
	store.SyncFromJWT(context.Background(), testUserID, "jane@example.com", "Jane Doe", "")

	c, rec := newProfileContext(http.MethodPatch, "/v1/me", `{"phone":" +15555550100 ","last_name":"Smith"}`, testUserID)
	if err := h.UpdateMe(c); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var resp dto.MeResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Phone != "+15555550100" || resp.LastName != "Smith" || resp.FirstName != "Jane" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHandler_Privacy(t *testing.T) {
	h, store := newTestProfileHandler(t)
	ctx := context.Background()
	store.SyncFromJWT(ctx, testUserID, "jane@example.com", "Jane Doe", "")

	c, rec := newProfileContext(http.MethodGet, "/v1/me/privacy", "", testUserID)
	if err := h.GetPrivacy(c); err != nil {
		t.Fatalf("get privacy failed: %v", err)
	}
	var resp dto.PrivacySettings
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Visibility != "team" || !resp.ShowEmail {
		t.Errorf("expected defaults, got %+v", resp)
	}

	c, _ = newProfileContext(http.MethodPut, "/v1/me/privacy", `{"visibility":"everyone"}`, testUserID)
	err := h.UpdatePrivacy(c)
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}

	c, _ = newProfileContext(http.MethodPut, "/v1/me/privacy", `{"visibility":"private","show_phone":true}`, testUserID)
	if err := h.UpdatePrivacy(c); err != nil {
		t.Fatalf("update privacy failed: %v", err)
	}

	store.SetPrivacy(ctx, testUserID, datatypes.JSON(`not json`))
	c, rec = newProfileContext(http.MethodGet, "/v1/me/privacy", "", testUserID)
	if err := h.GetPrivacy(c); err != nil {
		t.Fatalf("corrupt settings should fall back to defaults, got %v", err)
	}
	resp = dto.PrivacySettings{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Visibility != "team" {
		t.Errorf("expected default visibility, got %+v", resp)
	}
}
