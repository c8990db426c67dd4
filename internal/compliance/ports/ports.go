// Package ports defines the interfaces the compliance module needs from the
// rest of the system. They are declared here rather than in the providing
// modules so evaluation stays decoupled from storage and transport.
package ports

import (
	"context"
	"time"

	"shiftwise/internal/compliance/models"
	id "shiftwise/pkg/domain"
	"shiftwise/pkg/platform/audit"
)

// IntervalSource supplies the work intervals to evaluate. Implementations
// decide which entries qualify; the engine itself skips open intervals per
// checker.
type IntervalSource interface {
	IntervalsForUser(ctx context.Context, tenantID id.TenantID, userID id.UserID, from, to time.Time) ([]models.WorkInterval, error)
}

// AuditPort emits audit events from evaluation outcomes.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
