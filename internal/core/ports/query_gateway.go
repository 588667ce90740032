package ports

import (
	"context"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// QueryGateway executes Operation descriptors against the relational
// backend. Every call acquires and releases its own connection; no
// connection or cursor outlives the call on any exit path.
type QueryGateway interface {
	// Insert runs a parameterized INSERT and returns the new row id.
	Insert(ctx context.Context, op domain.Operation) (int64, error)

	// ConditionalInsert first looks up the predicate; when a row exists
	// its id is returned with existed=true and nothing is mutated.
	// A unique-constraint violation raced in by a concurrent identical
	// insert is folded into the same existed outcome.
	ConditionalInsert(ctx context.Context, op domain.Operation) (id int64, existed bool, err error)

	// Select returns all matching rows in statement order.
	Select(ctx context.Context, op domain.Operation) ([]domain.Row, error)

	// Delete returns the number of rows removed; zero is not an error.
	Delete(ctx context.Context, op domain.Operation) (int64, error)

	// CallProcedure invokes a stored procedure and drains every result
	// set it yields, flattened into one ordered sequence.
	CallProcedure(ctx context.Context, procedure string, args ...any) ([]domain.Row, error)
}
