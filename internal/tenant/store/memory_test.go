package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"shiftwise/internal/tenant/models"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) newTenant(name string) *models.Tenant {
	tenant, err := models.NewTenant(id.NewTenantID(), name, "eu", time.Now().UTC())
	s.Require().NoError(err)
	tenant.APISecretHash = "hash"
	return tenant
}

func (s *MemoryStoreSuite) TestCreateAndFind() {
	tenant := s.newTenant("acme")
	s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, tenant))

	found, err := s.store.FindByID(s.ctx, tenant.ID)
	s.Require().NoError(err)
	s.Equal(tenant.Name, found.Name)
	s.Equal("eu", found.RuleSet)
	s.Equal(models.TenantStatusActive, found.Status)
}

func (s *MemoryStoreSuite) TestCreateDuplicateNameCaseInsensitive() {
	s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newTenant("Acme")))

	err := s.store.CreateIfNameAvailable(s.ctx, s.newTenant("acme"))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *MemoryStoreSuite) TestFindUnknownTenant() {
	_, err := s.store.FindByID(s.ctx, id.NewTenantID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *MemoryStoreSuite) TestUpdatePersistsChanges() {
	tenant := s.newTenant("acme")
	s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, tenant))

	s.Require().NoError(tenant.AssignRuleSet("de", time.Now().UTC()))
	s.Require().NoError(s.store.Update(s.ctx, tenant))

	found, err := s.store.FindByID(s.ctx, tenant.ID)
	s.Require().NoError(err)
	s.Equal("de", found.RuleSet)
}

func (s *MemoryStoreSuite) TestUpdateUnknownTenant() {
	err := s.store.Update(s.ctx, s.newTenant("ghost"))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *MemoryStoreSuite) TestReturnedTenantIsACopy() {
	tenant := s.newTenant("acme")
	s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, tenant))

	found, err := s.store.FindByID(s.ctx, tenant.ID)
	s.Require().NoError(err)
	found.RuleSet = "mutated"

	again, err := s.store.FindByID(s.ctx, tenant.ID)
	s.Require().NoError(err)
	s.Equal("eu", again.RuleSet)
}

func (s *MemoryStoreSuite) TestListSortedByName() {
	for _, name := range []string{"zeta", "alpha", "mid"} {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newTenant(name)))
	}

	tenants, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tenants, 3)
	s.Equal("alpha", tenants[0].Name)
	s.Equal("mid", tenants[1].Name)
	s.Equal("zeta", tenants[2].Name)
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}
