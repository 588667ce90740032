package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dbaops/inventory-api/internal/api/metrics"
	"github.com/dbaops/inventory-api/internal/core/domain"
	"github.com/dbaops/inventory-api/internal/core/ports"
)

// record finishes one gateway-backed operation: it observes the metrics
// and emits the audit event. A nil sink disables auditing (tests) but
// never the metrics.
func record(sink ports.AuditSink, ctx context.Context, kind domain.OperationKind, table string, err error, existed bool, started time.Time) {
	metrics.QueryDuration.WithLabelValues(string(kind)).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.GatewayErrorsTotal.WithLabelValues(errorReason(err)).Inc()
	} else {
		metrics.GatewayOperationsTotal.WithLabelValues(string(kind), table).Inc()
	}

	if sink == nil {
		return
	}
	sink.Emit(domain.AuditEvent{
		ID:        uuid.NewString(),
		Username:  domain.UsernameFromContext(ctx),
		Operation: kind,
		Table:     table,
		Outcome:   outcomeOf(err, existed),
		Duration:  time.Since(started),
		CreatedAt: time.Now().UTC(),
	})
}

// outcomeOf maps an operation result to its audit outcome label.
func outcomeOf(err error, existed bool) string {
	switch {
	case err != nil:
		return domain.AuditOutcomeError
	case existed:
		return domain.AuditOutcomeExists
	default:
		return domain.AuditOutcomeSuccess
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownTable), errors.Is(err, domain.ErrUnknownProcedure):
		return "unknown_table"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "database"
	}
}
