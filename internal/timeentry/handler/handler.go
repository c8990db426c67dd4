package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shiftwise/internal/timeentry/models"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
	"shiftwise/pkg/platform/httputil"
	"shiftwise/pkg/requestcontext"
)

// Service defines the interface for time tracking operations.
type Service interface {
	Start(ctx context.Context, tenantID id.TenantID, userID id.UserID) (*models.TimeEntry, error)
	Stop(ctx context.Context, tenantID id.TenantID, entryID id.EntryID) (*models.TimeEntry, error)
	List(ctx context.Context, tenantID id.TenantID, userID id.UserID, from, to time.Time) ([]*models.TimeEntry, error)
}

// Handler wires time tracking endpoints to the time entry service. Tenant
// and user identity come from the request context set by the auth middleware.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts time tracking endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/entries/start", h.HandleStart)
	r.Post("/entries/{entryID}/stop", h.HandleStop)
	r.Get("/entries", h.HandleList)
}

func identity(ctx context.Context) (id.TenantID, id.UserID, error) {
	tenantID := requestcontext.TenantID(ctx)
	userID := requestcontext.UserID(ctx)
	if tenantID.IsNil() || userID.IsNil() {
		return id.TenantID{}, id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return tenantID, userID, nil
}

// HandleStart handles POST /entries/start requests.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tenantID, userID, err := identity(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entry, err := h.service.Start(ctx, tenantID, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "clock-in failed",
			"request_id", requestID,
			"tenant_id", tenantID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// HandleStop handles POST /entries/{entryID}/stop requests.
func (h *Handler) HandleStop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tenantID, _, err := identity(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entryID, err := id.ParseEntryID(chi.URLParam(r, "entryID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entry, err := h.service.Stop(ctx, tenantID, entryID)
	if err != nil {
		h.logger.ErrorContext(ctx, "clock-out failed",
			"request_id", requestID,
			"tenant_id", tenantID,
			"entry_id", entryID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

// HandleList handles GET /entries requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, userID, err := identity(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query, err := parseListQuery(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entries, err := h.service.List(ctx, tenantID, userID, query.From, query.To)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
