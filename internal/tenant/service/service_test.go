package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"shiftwise/internal/compliance/ruleset"
	"shiftwise/internal/tenant/store"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
	"shiftwise/pkg/platform/audit"
	"shiftwise/pkg/platform/audit/publisher"
	auditmemory "shiftwise/pkg/platform/audit/store/memory"
	"shiftwise/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	svc      *Service
	auditLog *auditmemory.InMemoryStore
	ctx      context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.auditLog = auditmemory.NewInMemoryStore()
	pub := publisher.NewPublisher(s.auditLog)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = New(store.NewInMemory(), ruleset.NewDefaultRegistry(),
		WithLogger(logger), WithAuditPublisher(pub))
	s.ctx = requestcontext.WithTime(context.Background(),
		time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
}

func (s *ServiceSuite) TestCreateReturnsSecretOnce() {
	created, err := s.svc.Create(s.ctx, "acme", "eu")
	s.Require().NoError(err)
	s.NotEmpty(created.APISecret)
	s.NotEqual(created.APISecret, created.Tenant.APISecretHash)

	s.Require().NoError(s.svc.VerifySecret(s.ctx, created.Tenant.ID, created.APISecret))
}

func (s *ServiceSuite) TestCreateDefaultsRuleSet() {
	created, err := s.svc.Create(s.ctx, "acme", "")
	s.Require().NoError(err)
	s.Equal(ruleset.DefaultRuleSet, created.Tenant.RuleSet)
}

func (s *ServiceSuite) TestCreateRejectsUnknownRuleSet() {
	_, err := s.svc.Create(s.ctx, "acme", "mars")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestCreateDuplicateName() {
	_, err := s.svc.Create(s.ctx, "acme", "eu")
	s.Require().NoError(err)

	_, err = s.svc.Create(s.ctx, "ACME", "eu")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestAssignRuleSet() {
	created, err := s.svc.Create(s.ctx, "acme", "eu")
	s.Require().NoError(err)

	updated, err := s.svc.AssignRuleSet(s.ctx, created.Tenant.ID, "de")
	s.Require().NoError(err)
	s.Equal("de", updated.RuleSet)

	events, err := s.auditLog.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(string(audit.EventRuleSetAssigned), events[1].Action)
	s.Equal(audit.CategorySecurity, events[1].Category)
}

func (s *ServiceSuite) TestAssignRuleSetInactiveTenant() {
	created, err := s.svc.Create(s.ctx, "acme", "eu")
	s.Require().NoError(err)
	_, err = s.svc.Deactivate(s.ctx, created.Tenant.ID)
	s.Require().NoError(err)

	_, err = s.svc.AssignRuleSet(s.ctx, created.Tenant.ID, "de")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *ServiceSuite) TestDeactivateAndReactivate() {
	created, err := s.svc.Create(s.ctx, "acme", "eu")
	s.Require().NoError(err)

	tenant, err := s.svc.Deactivate(s.ctx, created.Tenant.ID)
	s.Require().NoError(err)
	s.False(tenant.IsActive())

	_, err = s.svc.Deactivate(s.ctx, created.Tenant.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	tenant, err = s.svc.Reactivate(s.ctx, created.Tenant.ID)
	s.Require().NoError(err)
	s.True(tenant.IsActive())
}

func (s *ServiceSuite) TestRotateSecretInvalidatesOld() {
	created, err := s.svc.Create(s.ctx, "acme", "eu")
	s.Require().NoError(err)

	rotated, err := s.svc.RotateSecret(s.ctx, created.Tenant.ID)
	s.Require().NoError(err)
	s.NotEqual(created.APISecret, rotated.APISecret)

	s.Require().NoError(s.svc.VerifySecret(s.ctx, created.Tenant.ID, rotated.APISecret))
	s.Error(s.svc.VerifySecret(s.ctx, created.Tenant.ID, created.APISecret))
}

func (s *ServiceSuite) TestVerifySecretInactiveTenant() {
	created, err := s.svc.Create(s.ctx, "acme", "eu")
	s.Require().NoError(err)
	_, err = s.svc.Deactivate(s.ctx, created.Tenant.ID)
	s.Require().NoError(err)

	err = s.svc.VerifySecret(s.ctx, created.Tenant.ID, created.APISecret)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func TestGetUnknownTenant(t *testing.T) {
	svc := New(store.NewInMemory(), ruleset.NewDefaultRegistry())
	_, err := svc.Get(context.Background(), id.NewTenantID())
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
