// Package audit defines the audit event model shared by publishers, stores,
// and sinks. Events are transport-agnostic so storage and delivery can fan out.
package audit

import (
	"context"
	"time"

	id "shiftwise/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose. It drives
// retention policy and routing downstream.
type EventCategory string

const (
	// CategoryCompliance covers events with legal or regulatory significance.
	// Labor-time violation findings land here; they back audit and legal
	// defense and require long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring, such as
	// rejected admin tokens or invalid bearer tokens.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging with shorter
	// retention, such as routine evaluations that found nothing.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	TenantID  id.TenantID
	UserID    id.UserID
	Action    string
	// Subject names what was acted on, e.g. a rule-set name or entry ID.
	Subject string
	// Detail carries a short human-readable summary of the outcome.
	Detail string
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
	// ClientIP and ClientAgent describe the caller for forensics.
	ClientIP    string
	ClientAgent string
}

// AuditEvent enumerates well-known action names.
type AuditEvent string

const (
	// Compliance events
	EventComplianceEvaluated  AuditEvent = "compliance_evaluated"
	EventViolationDetected    AuditEvent = "compliance_violation_detected"
	EventRuleSetAssigned      AuditEvent = "ruleset_assigned"
	EventRuleSetCacheBypassed AuditEvent = "ruleset_cache_bypassed"

	// Tenant events
	EventTenantCreated       AuditEvent = "tenant_created"
	EventTenantDeactivated   AuditEvent = "tenant_deactivated"
	EventTenantReactivated   AuditEvent = "tenant_reactivated"
	EventTenantSecretRotated AuditEvent = "tenant_secret_rotated"

	// Time entry events
	EventEntryStarted AuditEvent = "time_entry_started"
	EventEntryStopped AuditEvent = "time_entry_stopped"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
