// Package service implements time tracking operations: clock-in, clock-out,
// and listing recorded entries for an evaluation window.
package service

import (
	"context"
	"log/slog"
	"time"

	"shiftwise/internal/timeentry/models"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
	audit "shiftwise/pkg/platform/audit"
	"shiftwise/pkg/requestcontext"
)

// Store persists time entries.
type Store interface {
	Create(ctx context.Context, entry *models.TimeEntry) error
	Update(ctx context.Context, entry *models.TimeEntry) error
	FindByID(ctx context.Context, entryID id.EntryID) (*models.TimeEntry, error)
	FindOpenByUser(ctx context.Context, tenantID id.TenantID, userID id.UserID) (*models.TimeEntry, error)
	ListByUser(ctx context.Context, tenantID id.TenantID, userID id.UserID, from, to time.Time) ([]*models.TimeEntry, error)
}

// AuditPublisher emits audit events for recorded time changes.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "time entry store is required")
	}
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start clocks a user in. A user has at most one open entry at a time.
func (s *Service) Start(ctx context.Context, tenantID id.TenantID, userID id.UserID) (*models.TimeEntry, error) {
	if _, err := s.store.FindOpenByUser(ctx, tenantID, userID); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "user already has an open time entry")
	} else if !dErrors.HasCode(err, dErrors.CodeNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check open entries")
	}

	entry, err := models.NewTimeEntry(tenantID, userID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, entry); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create time entry")
	}

	s.emitAudit(ctx, audit.EventEntryStarted, entry, "")
	return entry, nil
}

// Stop clocks an entry out at the request time and fixes its duration.
func (s *Service) Stop(ctx context.Context, tenantID id.TenantID, entryID id.EntryID) (*models.TimeEntry, error) {
	entry, err := s.store.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.TenantID != tenantID {
		// Do not reveal the entry's existence to another tenant.
		return nil, dErrors.New(dErrors.CodeNotFound, "time entry not found")
	}

	if err := entry.Stop(requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, entry); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update time entry")
	}

	s.emitAudit(ctx, audit.EventEntryStopped, entry, formatDuration(entry))
	return entry, nil
}

// List returns the user's entries with starts inside [from, to).
func (s *Service) List(ctx context.Context, tenantID id.TenantID, userID id.UserID, from, to time.Time) ([]*models.TimeEntry, error) {
	if !to.After(from) {
		return nil, dErrors.New(dErrors.CodeValidation, "window end must be after window start")
	}
	entries, err := s.store.ListByUser(ctx, tenantID, userID, from, to)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list time entries")
	}
	return entries, nil
}

func (s *Service) emitAudit(ctx context.Context, action audit.AuditEvent, entry *models.TimeEntry, detail string) {
	s.logger.InfoContext(ctx, string(action),
		"entry_id", entry.ID.String(),
		"user_id", entry.UserID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditPublisher == nil {
		return
	}
	event := audit.Event{
		Category:    audit.CategoryOperations,
		Timestamp:   requestcontext.Now(ctx),
		TenantID:    entry.TenantID,
		UserID:      entry.UserID,
		Action:      string(action),
		Subject:     entry.ID.String(),
		Detail:      detail,
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
		ClientAgent: requestcontext.UserAgent(ctx),
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}

func formatDuration(entry *models.TimeEntry) string {
	if entry.DurationMinutes == nil {
		return ""
	}
	return (time.Duration(*entry.DurationMinutes) * time.Minute).String()
}
