package ports

import (
	"context"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// AuditSink receives gateway audit events for asynchronous persistence.
// Emit never blocks the calling request beyond channel capacity.
type AuditSink interface {
	Emit(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event domain.AuditEvent) error
}
