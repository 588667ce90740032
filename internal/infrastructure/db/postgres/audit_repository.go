package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// AuditRepository persists gateway audit events. Writes go straight to
// the pool rather than through the gateway: the audit trail must not
// recurse into the machinery it records.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event domain.AuditEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO gateway_audit (id, username, operation, table_name, outcome, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.Username, string(event.Operation), event.Table,
		event.Outcome, event.Duration.Milliseconds(), event.CreatedAt)
	if err != nil {
		return domain.NewDatabaseError("audit insert", err)
	}
	return nil
}
