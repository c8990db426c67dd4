// Package store provides tenant persistence backends.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"shiftwise/internal/tenant/models"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

// InMemoryStore keeps tenants in memory for tests and local development.
type InMemoryStore struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]*models.Tenant
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{tenants: make(map[id.TenantID]*models.Tenant)}
}

// CreateIfNameAvailable inserts the tenant unless the name is already taken
// (case-insensitive), mirroring the unique index the Postgres store relies on.
func (s *InMemoryStore) CreateIfNameAvailable(_ context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return dErrors.New(dErrors.CodeInternal, "tenant is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tenants {
		if strings.EqualFold(existing.Name, tenant.Name) {
			return dErrors.New(dErrors.CodeConflict, "tenant name already exists")
		}
	}
	cp := *tenant
	s.tenants[tenant.ID] = &cp
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, tenant *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tenants[tenant.ID]; !exists {
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	}
	cp := *tenant
	s.tenants[tenant.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tenant, ok := s.tenants[tenantID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
	}
	cp := *tenant
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Tenant, 0, len(s.tenants))
	for _, tenant := range s.tenants {
		cp := *tenant
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
