package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shiftwise/internal/compliance/ruleset"
	"shiftwise/internal/compliance/service"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
	"shiftwise/pkg/platform/httputil"
	"shiftwise/pkg/requestcontext"
)

// Service defines the interface for compliance operations.
type Service interface {
	Evaluate(ctx context.Context, req service.EvaluateRequest) (*service.EvaluateResult, error)
	RuleSets() []ruleset.Config
}

// Handler wires compliance endpoints to the compliance service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a compliance handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compliance/evaluate", h.HandleEvaluate)
	r.Get("/compliance/rulesets", h.HandleRuleSets)
}

// HandleEvaluate handles POST /compliance/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	tenantID := requestcontext.TenantID(ctx)
	if tenantID == (id.TenantID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	from, to := req.ParsedWindow()
	result, err := h.service.Evaluate(ctx, service.EvaluateRequest{
		TenantID: tenantID,
		UserID:   req.ParsedUserID(),
		From:     from,
		To:       to,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "compliance evaluation failed",
			"request_id", requestID,
			"tenant_id", tenantID,
			"user_id", req.UserID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "compliance evaluated",
		"request_id", requestID,
		"tenant_id", tenantID,
		"user_id", req.UserID,
		"violations", len(result.Violations),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleRuleSets handles GET /compliance/rulesets requests.
func (h *Handler) HandleRuleSets(w http.ResponseWriter, r *http.Request) {
	configs := h.service.RuleSets()
	out := make([]RuleSetResponse, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, fromConfig(cfg))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"rule_sets": out})
}
