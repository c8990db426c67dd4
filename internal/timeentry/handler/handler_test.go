package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"shiftwise/internal/timeentry/service"
	"shiftwise/internal/timeentry/store"
	id "shiftwise/pkg/domain"
	"shiftwise/pkg/requestcontext"
)

func newEntryRouter(t *testing.T, tenantID id.TenantID, userID id.UserID, now time.Time) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc, err := service.New(store.NewInMemory(), service.WithLogger(logger))
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	h := New(svc, logger)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if !tenantID.IsNil() {
				ctx = requestcontext.WithTenantID(ctx, tenantID)
				ctx = requestcontext.WithUserID(ctx, userID)
			}
			ctx = requestcontext.WithTime(ctx, now)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.Register(r)
	return r
}

func TestStartRequiresAuth(t *testing.T) {
	router := newEntryRouter(t, id.TenantID{}, id.UserID{}, time.Now().UTC())

	req := httptest.NewRequest(http.MethodPost, "/entries/start", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %d", rec.Code)
	}
}

func TestClockInAndOutViaHandlers(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	router := newEntryRouter(t, id.NewTenantID(), id.NewUserID(), now)

	req := httptest.NewRequest(http.MethodPost, "/entries/start", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 clocking in, got %d: %s", rec.Code, rec.Body.String())
	}

	var started struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&started); err != nil {
		t.Fatalf("failed to decode start response: %v", err)
	}
	if started.ID == "" || started.Status != "open" {
		t.Fatalf("expected an open entry, got id=%q status=%q", started.ID, started.Status)
	}

	// Second clock-in while open must conflict.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/entries/start", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for double clock-in, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/entries/"+started.ID+"/stop", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 clocking out, got %d: %s", rec.Code, rec.Body.String())
	}
	var stopped struct {
		Status          string `json:"status"`
		DurationMinutes *int   `json:"duration_minutes"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&stopped); err != nil {
		t.Fatalf("failed to decode stop response: %v", err)
	}
	if stopped.Status != "closed" || stopped.DurationMinutes == nil {
		t.Fatalf("expected a closed entry with duration, got %+v", stopped)
	}
}

func TestListValidatesWindow(t *testing.T) {
	router := newEntryRouter(t, id.NewTenantID(), id.NewUserID(), time.Now().UTC())

	req := httptest.NewRequest(http.MethodGet, "/entries?from=2025-06-08T00:00:00Z&to=2025-06-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted window, got %d", rec.Code)
	}
}

func TestListReturnsEntries(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	router := newEntryRouter(t, id.NewTenantID(), id.NewUserID(), now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/entries/start", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 clocking in, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/entries?from=2025-06-01T00:00:00Z&to=2025-06-08T00:00:00Z", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing entries, got %d", rec.Code)
	}

	var resp struct {
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(resp.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(resp.Entries))
	}
}

func TestStopUnknownEntry(t *testing.T) {
	router := newEntryRouter(t, id.NewTenantID(), id.NewUserID(), time.Now().UTC())

	req := httptest.NewRequest(http.MethodPost, "/entries/"+id.NewEntryID().String()+"/stop", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown entry, got %d", rec.Code)
	}
}
