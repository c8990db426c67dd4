package service

import (
	"context"
	"fmt"
	"log/slog"

	"shiftwise/internal/compliance/ruleset"
	"shiftwise/internal/tenant/models"
	"shiftwise/internal/tenant/secrets"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
	"shiftwise/pkg/platform/audit"
	"shiftwise/pkg/requestcontext"
)

// Store abstracts tenant persistence.
type Store interface {
	CreateIfNameAvailable(ctx context.Context, tenant *models.Tenant) error
	Update(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
}

// AuditPublisher records tenant lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// CacheInvalidator drops cached derived state for a tenant after a change.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tenantID id.TenantID) error
}

// Service manages tenant registration and rule-set assignment.
type Service struct {
	store       Store
	rulesets    *ruleset.Registry
	auditPub    AuditPublisher
	invalidator CacheInvalidator
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithAuditPublisher(pub AuditPublisher) Option {
	return func(s *Service) {
		s.auditPub = pub
	}
}

// WithCacheInvalidator wires the rule-set cache so assignments and status
// changes take effect before the cache TTL would expire them.
func WithCacheInvalidator(invalidator CacheInvalidator) Option {
	return func(s *Service) {
		s.invalidator = invalidator
	}
}

func New(store Store, rulesets *ruleset.Registry, opts ...Option) *Service {
	s := &Service{
		store:    store,
		rulesets: rulesets,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatedTenant pairs a new tenant with its plaintext API secret. The
// secret is only available here; the store keeps the bcrypt hash.
type CreatedTenant struct {
	Tenant    *models.Tenant
	APISecret string
}

func (s *Service) Create(ctx context.Context, name, ruleSet string) (*CreatedTenant, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant name is required")
	}
	if ruleSet == "" {
		ruleSet = ruleset.DefaultRuleSet
	}
	if _, err := s.rulesets.Lookup(ruleSet); err != nil {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown rule set %q", ruleSet)
	}

	secret, err := secrets.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate api secret: %w", err)
	}
	hash, err := secrets.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("hash api secret: %w", err)
	}

	tenant, err := models.NewTenant(id.NewTenantID(), name, ruleSet, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	tenant.APISecretHash = hash
	if err := s.store.CreateIfNameAvailable(ctx, tenant); err != nil {
		return nil, err
	}

	s.emitAudit(ctx, tenant, audit.EventTenantCreated, fmt.Sprintf("tenant %s created with rule set %s", tenant.Name, tenant.RuleSet))
	return &CreatedTenant{Tenant: tenant, APISecret: secret}, nil
}

func (s *Service) Get(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	return s.store.FindByID(ctx, tenantID)
}

func (s *Service) List(ctx context.Context) ([]*models.Tenant, error) {
	return s.store.List(ctx)
}

func (s *Service) AssignRuleSet(ctx context.Context, tenantID id.TenantID, ruleSet string) (*models.Tenant, error) {
	if _, err := s.rulesets.Lookup(ruleSet); err != nil {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown rule set %q", ruleSet)
	}
	tenant, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "cannot assign rule set to inactive tenant")
	}
	if err := tenant.AssignRuleSet(ruleSet, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, tenant.ID)
	s.emitAudit(ctx, tenant, audit.EventRuleSetAssigned, fmt.Sprintf("rule set %s assigned to tenant %s", ruleSet, tenant.Name))
	return tenant, nil
}

func (s *Service) Deactivate(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	tenant, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := tenant.Deactivate(requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, tenant.ID)
	s.emitAudit(ctx, tenant, audit.EventTenantDeactivated, fmt.Sprintf("tenant %s deactivated", tenant.Name))
	return tenant, nil
}

func (s *Service) Reactivate(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	tenant, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := tenant.Reactivate(requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, tenant.ID)
	s.emitAudit(ctx, tenant, audit.EventTenantReactivated, fmt.Sprintf("tenant %s reactivated", tenant.Name))
	return tenant, nil
}

// RotateSecret replaces the tenant API secret and returns the new
// plaintext value. The old secret stops verifying immediately.
func (s *Service) RotateSecret(ctx context.Context, tenantID id.TenantID) (*CreatedTenant, error) {
	tenant, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "cannot rotate secret for inactive tenant")
	}

	secret, err := secrets.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate api secret: %w", err)
	}
	hash, err := secrets.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("hash api secret: %w", err)
	}
	tenant.APISecretHash = hash
	tenant.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.emitAudit(ctx, tenant, audit.EventTenantSecretRotated, fmt.Sprintf("api secret rotated for tenant %s", tenant.Name))
	return &CreatedTenant{Tenant: tenant, APISecret: secret}, nil
}

// RuleSetSource resolves rule-set assignments straight from the store. It is
// the uncached source behind the compliance module's resolver.
type RuleSetSource struct {
	store Store
}

func NewRuleSetSource(store Store) *RuleSetSource {
	return &RuleSetSource{store: store}
}

// RuleSetFor returns the rule-set name assigned to a tenant. Inactive
// tenants are rejected so paused customers stop accruing evaluations.
func (r *RuleSetSource) RuleSetFor(ctx context.Context, tenantID id.TenantID) (string, error) {
	tenant, err := r.store.FindByID(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if !tenant.IsActive() {
		return "", dErrors.New(dErrors.CodeForbidden, "tenant is not active")
	}
	return tenant.RuleSet, nil
}

// VerifySecret checks a presented API secret against the tenant's hash.
func (s *Service) VerifySecret(ctx context.Context, tenantID id.TenantID, secret string) error {
	tenant, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if !tenant.IsActive() {
		return dErrors.New(dErrors.CodeForbidden, "tenant is not active")
	}
	if !secrets.Verify(secret, tenant.APISecretHash) {
		return dErrors.New(dErrors.CodeUnauthorized, "invalid api secret")
	}
	return nil
}

func (s *Service) invalidateCache(ctx context.Context, tenantID id.TenantID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, tenantID); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate rule set cache",
			"tenant_id", tenantID, "error", err)
	}
}

func (s *Service) emitAudit(ctx context.Context, tenant *models.Tenant, action audit.AuditEvent, detail string) {
	s.logger.InfoContext(ctx, string(action),
		slog.String("tenant_id", tenant.ID.String()),
		slog.String("rule_set", tenant.RuleSet),
	)
	if s.auditPub == nil {
		return
	}
	event := audit.Event{
		Category:    audit.CategorySecurity,
		Timestamp:   requestcontext.Now(ctx),
		TenantID:    tenant.ID,
		Action:      string(action),
		Subject:     tenant.ID.String(),
		Detail:      detail,
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
		ClientAgent: requestcontext.UserAgent(ctx),
	}
	if err := s.auditPub.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}
