package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shiftwise/internal/tenant/models"
	"shiftwise/internal/tenant/service"
	id "shiftwise/pkg/domain"
	"shiftwise/pkg/platform/httputil"
	"shiftwise/pkg/requestcontext"
)

// Service defines the interface for tenant administration operations.
type Service interface {
	Create(ctx context.Context, name, ruleSet string) (*service.CreatedTenant, error)
	Get(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
	AssignRuleSet(ctx context.Context, tenantID id.TenantID, ruleSet string) (*models.Tenant, error)
	Deactivate(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	Reactivate(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	RotateSecret(ctx context.Context, tenantID id.TenantID) (*service.CreatedTenant, error)
}

// Handler wires tenant administration endpoints to the tenant service.
// All routes are expected to be mounted behind the admin token middleware.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts tenant admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/tenants", h.HandleCreate)
	r.Get("/admin/tenants", h.HandleList)
	r.Get("/admin/tenants/{tenantID}", h.HandleGet)
	r.Put("/admin/tenants/{tenantID}/ruleset", h.HandleAssignRuleSet)
	r.Post("/admin/tenants/{tenantID}/deactivate", h.HandleDeactivate)
	r.Post("/admin/tenants/{tenantID}/reactivate", h.HandleReactivate)
	r.Post("/admin/tenants/{tenantID}/secret", h.HandleRotateSecret)
}

// HandleCreate handles POST /admin/tenants requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateTenantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, req.Name, req.RuleSet)
	if err != nil {
		h.logger.ErrorContext(ctx, "tenant creation failed",
			"request_id", requestID,
			"name", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tenant created",
		"request_id", requestID,
		"tenant_id", created.Tenant.ID,
		"rule_set", created.Tenant.RuleSet,
	)
	httputil.WriteJSON(w, http.StatusCreated, fromCreated(created))
}

// HandleList handles GET /admin/tenants requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenants, err := h.service.List(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, fromTenant(t))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tenants": out})
}

// HandleGet handles GET /admin/tenants/{tenantID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tenant, err := h.service.Get(ctx, tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromTenant(tenant))
}

// HandleAssignRuleSet handles PUT /admin/tenants/{tenantID}/ruleset requests.
func (h *Handler) HandleAssignRuleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[AssignRuleSetRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tenant, err := h.service.AssignRuleSet(ctx, tenantID, req.RuleSet)
	if err != nil {
		h.logger.ErrorContext(ctx, "rule set assignment failed",
			"request_id", requestID,
			"tenant_id", tenantID,
			"rule_set", req.RuleSet,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "rule set assigned",
		"request_id", requestID,
		"tenant_id", tenantID,
		"rule_set", tenant.RuleSet,
	)
	httputil.WriteJSON(w, http.StatusOK, fromTenant(tenant))
}

// HandleDeactivate handles POST /admin/tenants/{tenantID}/deactivate requests.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Deactivate)
}

// HandleReactivate handles POST /admin/tenants/{tenantID}/reactivate requests.
func (h *Handler) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Reactivate)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, id.TenantID) (*models.Tenant, error)) {
	ctx := r.Context()

	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tenant, err := op(ctx, tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromTenant(tenant))
}

// HandleRotateSecret handles POST /admin/tenants/{tenantID}/secret requests.
func (h *Handler) HandleRotateSecret(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rotated, err := h.service.RotateSecret(ctx, tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tenant secret rotated",
		"request_id", requestID,
		"tenant_id", tenantID,
	)
	httputil.WriteJSON(w, http.StatusOK, fromCreated(rotated))
}
