package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// uniqueViolation is the PostgreSQL error code for a unique-constraint
// breach, used to fold a raced duplicate insert into the exists outcome.
const uniqueViolation = "23505"

// querier is the subset of pgxpool.Pool the gateway uses. Narrowed so
// the error-translation and cursor-draining paths can be tested without
// a live database.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Gateway executes Operation descriptors against PostgreSQL. Each call
// checks out a pooled connection for its own duration and bounds itself
// with the configured timeout; no connection, row set, or transaction
// survives the call on any exit path.
type Gateway struct {
	pool    querier
	timeout time.Duration
	log     zerolog.Logger
}

// NewGateway creates a Gateway over pool. timeout bounds every call; a
// non-positive value falls back to defaultTimeout.
func NewGateway(pool *pgxpool.Pool, timeout time.Duration, log zerolog.Logger) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{pool: pool, timeout: timeout, log: log}
}

// Insert runs a parameterized INSERT and returns the new row id.
func (g *Gateway) Insert(ctx context.Context, op domain.Operation) (int64, error) {
	sql, args, err := buildInsert(op)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var id int64
	if err := g.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, domain.NewDatabaseError("insert", err)
	}
	return id, nil
}

// ConditionalInsert looks the predicate up first and only inserts when
// no row matches. The check and the insert are two statements, so a
// concurrent identical insert can slip between them; when the table
// carries a unique constraint on the predicate columns the loser's
// constraint violation is translated back into the exists outcome.
func (g *Gateway) ConditionalInsert(ctx context.Context, op domain.Operation) (int64, bool, error) {
	existsSQL, existsArgs, err := buildExists(op)
	if err != nil {
		return 0, false, err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var id int64
	err = g.pool.QueryRow(lookupCtx, existsSQL, existsArgs...).Scan(&id)
	switch {
	case err == nil:
		return id, true, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return 0, false, domain.NewDatabaseError("conditional insert lookup", err)
	}

	id, err = g.Insert(ctx, op)
	if err == nil {
		return id, false, nil
	}

	if isUniqueViolation(err) {
		// Lost the race: the row exists now, resolve its id.
		g.log.Debug().
			Str("table", op.Table).
			Msg("conditional insert raced, returning existing row")
		raceCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		if scanErr := g.pool.QueryRow(raceCtx, existsSQL, existsArgs...).Scan(&id); scanErr != nil {
			return 0, false, domain.NewDatabaseError("conditional insert", scanErr)
		}
		return id, true, nil
	}
	return 0, false, err
}

// Select returns all matching rows in statement order.
func (g *Gateway) Select(ctx context.Context, op domain.Operation) ([]domain.Row, error) {
	sql, args, err := buildSelect(op)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	rows, err := g.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, domain.NewDatabaseError("select", err)
	}

	out, err := collectRows(rows)
	if err != nil {
		return nil, domain.NewDatabaseError("select", err)
	}
	return out, nil
}

// Delete removes rows matching the predicate and returns the count.
func (g *Gateway) Delete(ctx context.Context, op domain.Operation) (int64, error) {
	sql, args, err := buildDelete(op)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	tag, err := g.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, domain.NewDatabaseError("delete", err)
	}
	return tag.RowsAffected(), nil
}

// CallProcedure invokes a reporting function that returns refcursors and
// drains every result set in order, flattened into one sequence. The
// whole exchange runs inside a single transaction: cursors only live as
// long as it, and an undrained cursor must never leak past the call.
func (g *Gateway) CallProcedure(ctx context.Context, procedure string, args ...any) ([]domain.Row, error) {
	callSQL, err := buildProcedureCall(procedure, args)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return nil, domain.NewDatabaseError("procedure call", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cursors, err := fetchCursorNames(ctx, tx, callSQL, args)
	if err != nil {
		return nil, domain.NewDatabaseError("procedure call", err)
	}

	var out []domain.Row
	for _, cursor := range cursors {
		rows, err := tx.Query(ctx, "FETCH ALL IN "+quoteCursor(cursor))
		if err != nil {
			return nil, domain.NewDatabaseError("procedure fetch", err)
		}
		batch, err := collectRows(rows)
		if err != nil {
			return nil, domain.NewDatabaseError("procedure fetch", err)
		}
		out = append(out, batch...)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewDatabaseError("procedure call", err)
	}
	return out, nil
}

// isUniqueViolation reports whether err carries a 23505 unique-constraint
// breach anywhere in its chain.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// fetchCursorNames runs the call statement and scans the cursor name
// each returned row carries in its first column.
func fetchCursorNames(ctx context.Context, tx pgx.Tx, callSQL string, args []any) ([]string, error) {
	rows, err := tx.Query(ctx, callSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cursors []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cursors = append(cursors, name)
	}
	return cursors, rows.Err()
}

// collectRows drains a row set into column→value maps. Always closes the
// rows, success or failure.
func collectRows(rows pgx.Rows) ([]domain.Row, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []domain.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(domain.Row, len(fields))
		for i, f := range fields {
			row[f.Name] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// quoteCursor double-quotes a server-assigned cursor name (they contain
// spaces, e.g. `<unnamed portal 1>`).
func quoteCursor(name string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(name, `"`, `""`))
}
