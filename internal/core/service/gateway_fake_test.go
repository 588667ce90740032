package service

import (
	"context"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// fakeGateway keeps rows in memory per table, enough to exercise the
// services' descriptor construction and outcome mapping without a
// database.
type fakeGateway struct {
	nextID   int64
	tables   map[string][]domain.Row
	procRows []domain.Row
	procName string
	procErr  error
	lastOp   domain.Operation
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{tables: make(map[string][]domain.Row)}
}

func (g *fakeGateway) Insert(_ context.Context, op domain.Operation) (int64, error) {
	g.lastOp = op
	g.nextID++
	row := domain.Row{"id": g.nextID}
	for _, b := range op.Columns {
		row[b.Column] = b.Value
	}
	g.tables[op.Table] = append(g.tables[op.Table], row)
	return g.nextID, nil
}

func (g *fakeGateway) ConditionalInsert(ctx context.Context, op domain.Operation) (int64, bool, error) {
	g.lastOp = op
	for _, row := range g.tables[op.Table] {
		if matches(row, op.Predicate) {
			return row["id"].(int64), true, nil
		}
	}
	id, err := g.Insert(ctx, op)
	return id, false, err
}

func (g *fakeGateway) Select(_ context.Context, op domain.Operation) ([]domain.Row, error) {
	g.lastOp = op
	var out []domain.Row
	for _, row := range g.tables[op.Table] {
		if matches(row, op.Predicate) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (g *fakeGateway) Delete(_ context.Context, op domain.Operation) (int64, error) {
	g.lastOp = op
	var kept []domain.Row
	var removed int64
	for _, row := range g.tables[op.Table] {
		if matches(row, op.Predicate) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	g.tables[op.Table] = kept
	return removed, nil
}

func (g *fakeGateway) CallProcedure(_ context.Context, procedure string, _ ...any) ([]domain.Row, error) {
	g.procName = procedure
	if g.procErr != nil {
		return nil, g.procErr
	}
	return g.procRows, nil
}

func (g *fakeGateway) count(table string) int {
	return len(g.tables[table])
}

func matches(row domain.Row, predicate []domain.Binding) bool {
	for _, b := range predicate {
		if row[b.Column] != b.Value {
			return false
		}
	}
	return true
}
