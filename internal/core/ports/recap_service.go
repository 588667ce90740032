package ports

import (
	"context"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// RecapService manages server recap rows and their monitored values.
// A recap row is keyed by server name; values reference it by a resolved
// row id, not a stored foreign key on insert.
type RecapService interface {
	// RegisterServer creates the recap row; a duplicate server name
	// yields domain.ErrAlreadyRegistered.
	RegisterServer(ctx context.Context, serverName string) (int64, error)
	// AddValues resolves the recap row for serverName and inserts one
	// row per (name, value) pair. Unknown server yields
	// domain.ErrServerNotFound.
	AddValues(ctx context.Context, serverName string, values map[string]string) error
	// Values returns the full recap via the reporting stored procedure.
	Values(ctx context.Context) ([]domain.Row, error)
}
