// Package observability bridges structured logging and the audit pipeline
// for security-relevant rejections.
package observability

import (
	"context"
	"log/slog"

	"shiftwise/pkg/attrs"
	"shiftwise/pkg/platform/audit"
	"shiftwise/pkg/requestcontext"
)

// Emitter is the slice of the audit publisher this package needs.
type Emitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// LogAudit logs a security event to both the structured logger and the audit
// publisher. The subject and reason are extracted from the attribute list so
// call sites only state things once.
func LogAudit(ctx context.Context, logger *slog.Logger, emitter Emitter, event string, attrList ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attrList = append(attrList, "request_id", requestID)
	}

	if logger != nil {
		args := append(attrList, "log_type", "audit")
		logger.WarnContext(ctx, event, args...)
	}

	if emitter == nil {
		return
	}
	evt := audit.Event{
		Category:    audit.CategorySecurity,
		Timestamp:   requestcontext.Now(ctx),
		TenantID:    requestcontext.TenantID(ctx),
		UserID:      requestcontext.UserID(ctx),
		Action:      event,
		Subject:     extractSubject(attrList),
		Detail:      extractReason(attrList),
		RequestID:   requestID,
		ClientIP:    requestcontext.ClientIP(ctx),
		ClientAgent: requestcontext.UserAgent(ctx),
	}
	if err := emitter.Emit(ctx, evt); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", event, "error", err)
	}
}

func extractSubject(attrList []any) string {
	for _, key := range []string{"tenant_id", "user_id", "path", "ip"} {
		if val := attrs.ExtractStringer(attrList, key); val != "" {
			return val
		}
	}
	return ""
}

func extractReason(attrList []any) string {
	return attrs.ExtractString(attrList, "reason")
}
