package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shiftwise/internal/compliance/ruleset"
	"shiftwise/internal/tenant/service"
	"shiftwise/internal/tenant/store"
	"shiftwise/pkg/platform/middleware/admin"
)

const adminToken = "secret-token"

func TestAdminTokenRequired(t *testing.T) {
	router := newTenantRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/tenants/"+uuid.New().String(), nil)
	// No admin token header set
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when admin token missing, got %d", rec.Code)
	}
}

func TestTenantLifecycleViaHandlers(t *testing.T) {
	router := newTenantRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/admin/tenants", map[string]string{"name": "Acme", "rule_set": "eu"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating tenant, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID        string `json:"id"`
		RuleSet   string `json:"rule_set"`
		Status    string `json:"status"`
		APISecret string `json:"api_secret"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.ID == "" || created.APISecret == "" {
		t.Fatalf("expected tenant id and api secret in response")
	}
	if created.RuleSet != "eu" || created.Status != "active" {
		t.Fatalf("unexpected tenant state: rule_set=%q status=%q", created.RuleSet, created.Status)
	}

	rec = doJSON(t, router, http.MethodPut, "/admin/tenants/"+created.ID+"/ruleset", map[string]string{"rule_set": "de"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 assigning rule set, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/admin/tenants/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching tenant, got %d", rec.Code)
	}
	var fetched struct {
		RuleSet   string `json:"rule_set"`
		APISecret string `json:"api_secret"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&fetched); err != nil {
		t.Fatalf("failed to decode tenant response: %v", err)
	}
	if fetched.RuleSet != "de" {
		t.Fatalf("expected rule_set de after assignment, got %q", fetched.RuleSet)
	}
	if fetched.APISecret != "" {
		t.Fatalf("expected api secret to be absent from fetch responses")
	}

	rec = doJSON(t, router, http.MethodPost, "/admin/tenants/"+created.ID+"/deactivate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deactivating tenant, got %d", rec.Code)
	}
	var deactivated struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&deactivated); err != nil {
		t.Fatalf("failed to decode deactivate response: %v", err)
	}
	if deactivated.Status != "inactive" {
		t.Fatalf("expected status inactive, got %q", deactivated.Status)
	}
}

func TestCreateTenantRejectsUnknownRuleSet(t *testing.T) {
	router := newTenantRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/admin/tenants", map[string]string{"name": "Acme", "rule_set": "mars"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown rule set, got %d", rec.Code)
	}
}

func TestRotateSecretReturnsNewSecret(t *testing.T) {
	router := newTenantRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/admin/tenants", map[string]string{"name": "Acme"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating tenant, got %d", rec.Code)
	}
	var created struct {
		ID        string `json:"id"`
		APISecret string `json:"api_secret"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}

	rec = doJSON(t, router, http.MethodPost, "/admin/tenants/"+created.ID+"/secret", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 rotating secret, got %d", rec.Code)
	}
	var rotated struct {
		APISecret string `json:"api_secret"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&rotated); err != nil {
		t.Fatalf("failed to decode rotate response: %v", err)
	}
	if rotated.APISecret == "" || rotated.APISecret == created.APISecret {
		t.Fatalf("expected a fresh api secret after rotation")
	}
}

func TestGetTenantInvalidID(t *testing.T) {
	router := newTenantRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/admin/tenants/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed tenant id, got %d", rec.Code)
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func newTenantRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(store.NewInMemory(), ruleset.NewDefaultRegistry(), service.WithLogger(logger))

	h := New(svc, logger)
	r := chi.NewRouter()
	r.Use(admin.RequireAdminToken(adminToken, logger))
	h.Register(r)
	return r
}
