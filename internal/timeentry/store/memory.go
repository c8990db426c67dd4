// Package store provides time entry persistence backends.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"shiftwise/internal/timeentry/models"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

// InMemoryStore keeps time entries in memory. It backs unit tests and local
// development; production uses PostgresStore.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[id.EntryID]*models.TimeEntry
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{entries: make(map[id.EntryID]*models.TimeEntry)}
}

func (s *InMemoryStore) Create(_ context.Context, entry *models.TimeEntry) error {
	if entry == nil {
		return dErrors.New(dErrors.CodeInternal, "time entry is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[entry.ID]; exists {
		return dErrors.New(dErrors.CodeConflict, "time entry already exists")
	}
	cp := *entry
	s.entries[entry.ID] = &cp
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, entry *models.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[entry.ID]; !exists {
		return dErrors.New(dErrors.CodeNotFound, "time entry not found")
	}
	cp := *entry
	s.entries[entry.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, entryID id.EntryID) (*models.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[entryID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "time entry not found")
	}
	cp := *entry
	return &cp, nil
}

// FindOpenByUser returns the user's currently open entry, or NotFound.
func (s *InMemoryStore) FindOpenByUser(_ context.Context, tenantID id.TenantID, userID id.UserID) (*models.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.TenantID == tenantID && entry.UserID == userID && entry.Status == models.StatusOpen {
			cp := *entry
			return &cp, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "no open time entry")
}

// ListByUser returns the user's entries whose start falls inside [from, to),
// ordered by start time ascending.
func (s *InMemoryStore) ListByUser(_ context.Context, tenantID id.TenantID, userID id.UserID, from, to time.Time) ([]*models.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.TimeEntry
	for _, entry := range s.entries {
		if entry.TenantID != tenantID || entry.UserID != userID {
			continue
		}
		if entry.Start.Before(from) || !entry.Start.Before(to) {
			continue
		}
		cp := *entry
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
