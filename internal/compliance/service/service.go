package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shiftwise/internal/compliance/engine"
	"shiftwise/internal/compliance/metrics"
	"shiftwise/internal/compliance/models"
	"shiftwise/internal/compliance/ports"
	"shiftwise/internal/compliance/ruleset"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
	"shiftwise/pkg/platform/audit"
	"shiftwise/pkg/requestcontext"
)

// MaxEvaluationWindow bounds a single evaluation request. Longer ranges
// should be split by the caller; the engine cost grows with interval count.
const MaxEvaluationWindow = 366 * 24 * time.Hour

// EvaluateRequest identifies whose entries to evaluate and over which window.
type EvaluateRequest struct {
	TenantID id.TenantID
	UserID   id.UserID
	From     time.Time
	To       time.Time
}

// EvaluateResult carries the findings plus the context they were produced
// under, so callers can render a self-contained report.
type EvaluateResult struct {
	RuleSet     string
	From        time.Time
	To          time.Time
	EvaluatedAt time.Time
	Intervals   int
	Violations  []models.Violation
}

// Service orchestrates a compliance evaluation: resolve the tenant's rule
// set, load the user's work intervals, run the engine, and record the
// outcome. The engine itself stays pure; all I/O lives here.
type Service struct {
	intervals ports.IntervalSource
	names     ruleset.NameSource
	ruleSets  *ruleset.Registry
	auditPub  ports.AuditPort
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithAuditPublisher(pub ports.AuditPort) Option {
	return func(s *Service) {
		s.auditPub = pub
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(intervals ports.IntervalSource, names ruleset.NameSource, ruleSets *ruleset.Registry, opts ...Option) *Service {
	s := &Service{
		intervals: intervals,
		names:     names,
		ruleSets:  ruleSets,
		logger:    slog.Default(),
		tracer:    otel.Tracer("shiftwise/compliance"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate runs the rule engine for one user over one time window.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResult, error) {
	ctx, span := s.tracer.Start(ctx, "compliance.Evaluate")
	defer span.End()
	start := time.Now()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	name, err := s.names.RuleSetFor(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.ruleSets.Lookup(name)
	if err != nil {
		// A tenant pointing at an unregistered rule set is a data problem,
		// not a caller problem.
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("tenant assigned unregistered rule set %q", name))
	}

	intervals, err := s.intervals.IntervalsForUser(ctx, req.TenantID, req.UserID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	violations := engine.Evaluate(intervals, cfg)

	span.SetAttributes(
		attribute.String("compliance.rule_set", cfg.Name),
		attribute.Int("compliance.intervals", len(intervals)),
		attribute.Int("compliance.violations", len(violations)),
	)

	result := &EvaluateResult{
		RuleSet:     cfg.Name,
		From:        req.From,
		To:          req.To,
		EvaluatedAt: requestcontext.Now(ctx),
		Intervals:   len(intervals),
		Violations:  violations,
	}
	s.record(ctx, req, result)
	s.metrics.ObserveEvaluateLatency(time.Since(start))
	return result, nil
}

// RuleSets lists the registered rule configurations.
func (s *Service) RuleSets() []ruleset.Config {
	configs := make([]ruleset.Config, 0)
	for _, name := range s.ruleSets.Names() {
		if cfg, err := s.ruleSets.Lookup(name); err == nil {
			configs = append(configs, cfg)
		}
	}
	return configs
}

func validateRequest(req EvaluateRequest) error {
	if req.TenantID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	if req.UserID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	if req.From.IsZero() || req.To.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "evaluation window is required")
	}
	if !req.To.After(req.From) {
		return dErrors.New(dErrors.CodeValidation, "evaluation window end must be after start")
	}
	if req.To.Sub(req.From) > MaxEvaluationWindow {
		return dErrors.New(dErrors.CodeValidation, "evaluation window must not exceed one year")
	}
	return nil
}

func (s *Service) record(ctx context.Context, req EvaluateRequest, result *EvaluateResult) {
	outcome := "clean"
	if len(result.Violations) > 0 {
		outcome = "violations"
	}
	s.metrics.IncrementEvaluation(outcome)

	s.logger.InfoContext(ctx, "compliance evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", req.TenantID,
		"user_id", req.UserID,
		"rule_set", result.RuleSet,
		"intervals", result.Intervals,
		"violations", len(result.Violations),
	)

	s.emit(ctx, audit.Event{
		Category:    audit.CategoryOperations,
		Timestamp:   result.EvaluatedAt,
		TenantID:    req.TenantID,
		UserID:      req.UserID,
		Action:      string(audit.EventComplianceEvaluated),
		Subject:     result.RuleSet,
		Detail:      fmt.Sprintf("%d intervals evaluated, %d violations", result.Intervals, len(result.Violations)),
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
		ClientAgent: requestcontext.UserAgent(ctx),
	})

	for _, v := range result.Violations {
		s.metrics.IncrementViolation(string(v.Type), string(v.Severity))
		// Violation findings are the legally significant records; they get
		// their own compliance-category event each.
		s.emit(ctx, audit.Event{
			Category:    audit.CategoryCompliance,
			Timestamp:   result.EvaluatedAt,
			TenantID:    req.TenantID,
			UserID:      req.UserID,
			Action:      string(audit.EventViolationDetected),
			Subject:     string(v.Type),
			Detail:      fmt.Sprintf("%s: expected %s, actual %s", v.Severity, v.Details.Expected, v.Details.Actual),
			RequestID:   requestcontext.RequestID(ctx),
			ClientIP:    requestcontext.ClientIP(ctx),
			ClientAgent: requestcontext.UserAgent(ctx),
		})
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPub == nil {
		return
	}
	if err := s.auditPub.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
	}
}
