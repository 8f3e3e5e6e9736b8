package ports

import (
	"context"

	"github.com/datapulse/identity-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}

// AuditRecorder accepts audit events off the request path. Implementations
// must never block the caller.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
