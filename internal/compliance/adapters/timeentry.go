// Package adapters bridges the compliance ports to concrete providers.
package adapters

import (
	"context"
	"time"

	compliancemodels "shiftwise/internal/compliance/models"
	"shiftwise/internal/timeentry/models"
	id "shiftwise/pkg/domain"
)

// EntryStore is the slice of the time-entry store the adapter needs.
type EntryStore interface {
	ListByUser(ctx context.Context, tenantID id.TenantID, userID id.UserID, from, to time.Time) ([]*models.TimeEntry, error)
}

// TimeEntrySource adapts the time-entry store to the compliance
// IntervalSource port, mapping entries into engine work intervals.
type TimeEntrySource struct {
	store EntryStore
}

func NewTimeEntrySource(store EntryStore) *TimeEntrySource {
	return &TimeEntrySource{store: store}
}

func (a *TimeEntrySource) IntervalsForUser(ctx context.Context, tenantID id.TenantID, userID id.UserID, from, to time.Time) ([]compliancemodels.WorkInterval, error) {
	entries, err := a.store.ListByUser(ctx, tenantID, userID, from, to)
	if err != nil {
		return nil, err
	}
	intervals := make([]compliancemodels.WorkInterval, 0, len(entries))
	for _, entry := range entries {
		intervals = append(intervals, entry.ToWorkInterval())
	}
	return intervals, nil
}
