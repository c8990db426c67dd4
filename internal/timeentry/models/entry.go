// Package models defines recorded tracked-time entries.
package models

import (
	"time"

	compliance "shiftwise/internal/compliance/models"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

// Status tracks an entry's lifecycle.
type Status string

const (
	// StatusOpen: clocked in, no end time yet.
	StatusOpen Status = "open"
	// StatusClosed: clocked out, duration fixed.
	StatusClosed Status = "closed"
)

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

// TimeEntry is one recorded span of work for a user.
//
// DurationMinutes is fixed once at clock-out and treated as authoritative
// afterwards; the compliance engine never recomputes it.
type TimeEntry struct {
	ID              id.EntryID  `json:"id"`
	TenantID        id.TenantID `json:"tenant_id"`
	UserID          id.UserID   `json:"user_id"`
	Start           time.Time   `json:"start_time"`
	End             *time.Time  `json:"end_time,omitempty"`
	DurationMinutes *int        `json:"duration_minutes,omitempty"`
	Status          Status      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewTimeEntry opens an entry at the given start time, validating invariants.
func NewTimeEntry(tenantID id.TenantID, userID id.UserID, start time.Time) (*TimeEntry, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant_id is required")
	}
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user_id is required")
	}
	if start.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "start time is required")
	}
	return &TimeEntry{
		ID:        id.NewEntryID(),
		TenantID:  tenantID,
		UserID:    userID,
		Start:     start,
		Status:    StatusOpen,
		CreatedAt: start,
		UpdatedAt: start,
	}, nil
}

// Stop closes the entry at the given time and fixes its duration in whole
// minutes. Closing an already closed entry is a conflict.
func (e *TimeEntry) Stop(at time.Time) error {
	if e.Status == StatusClosed {
		return dErrors.New(dErrors.CodeConflict, "time entry is already closed")
	}
	if at.Before(e.Start) {
		return dErrors.New(dErrors.CodeValidation, "end time must not be before start time")
	}
	duration := int(at.Sub(e.Start).Minutes())
	end := at
	e.End = &end
	e.DurationMinutes = &duration
	e.Status = StatusClosed
	e.UpdatedAt = at
	return nil
}

// ToWorkInterval maps the entry into the shape the compliance engine
// consumes. The engine's open-interval exclusion rules rely on End and
// DurationMinutes staying nil together until Stop runs.
func (e *TimeEntry) ToWorkInterval() compliance.WorkInterval {
	return compliance.WorkInterval{
		ID:              e.ID,
		UserID:          e.UserID,
		Start:           e.Start,
		End:             e.End,
		DurationMinutes: e.DurationMinutes,
	}
}
