package service

import (
	"context"
	"time"

	"github.com/dbaops/inventory-api/internal/core/domain"
	"github.com/dbaops/inventory-api/internal/core/ports"
)

// Recap tables are fixed: the recap row keyed by server name, and the
// value rows that reference it by looked-up id.
const (
	recapTable       = "server_recap"
	recapValuesTable = "recap_values"
	recapProcedure   = "get_recap_values"
)

// RecapService manages server recap rows and their monitored values.
type RecapService struct {
	gateway ports.QueryGateway
	audit   ports.AuditSink
}

func NewRecapService(gateway ports.QueryGateway, audit ports.AuditSink) *RecapService {
	return &RecapService{gateway: gateway, audit: audit}
}

// RegisterServer creates the recap row for serverName. A server already
// present yields domain.ErrAlreadyRegistered and leaves the table
// untouched.
func (s *RecapService) RegisterServer(ctx context.Context, serverName string) (int64, error) {
	op := domain.Operation{
		Table:     recapTable,
		Kind:      domain.OpConditionalInsert,
		Columns:   []domain.Binding{{Column: "server_name", Value: serverName}},
		Predicate: []domain.Binding{{Column: "server_name", Value: serverName}},
	}
	started := time.Now()
	id, existed, err := s.gateway.ConditionalInsert(ctx, op)
	record(s.audit, ctx, domain.OpConditionalInsert, recapTable, err, existed, started)
	if err != nil {
		return 0, err
	}
	if existed {
		return id, domain.ErrAlreadyRegistered
	}
	return id, nil
}

// AddValues inserts one row per (name, value) pair under serverName's
// recap row. The owning row id is resolved first; an unregistered server
// yields domain.ErrServerNotFound before anything is written.
func (s *RecapService) AddValues(ctx context.Context, serverName string, values map[string]string) error {
	recapID, err := s.lookupRecapID(ctx, serverName)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for name, data := range values {
		op := domain.Operation{
			Table: recapValuesTable,
			Kind:  domain.OpInsert,
			Columns: []domain.Binding{
				{Column: "id_recap", Value: recapID},
				{Column: "value_name", Value: name},
				{Column: "value_data", Value: data},
				{Column: "created_at", Value: now},
			},
		}
		started := time.Now()
		_, err := s.gateway.Insert(ctx, op)
		record(s.audit, ctx, domain.OpInsert, recapValuesTable, err, false, started)
		if err != nil {
			return err
		}
	}
	return nil
}

// Values returns the full recap report, drained from every result set
// the stored procedure yields.
func (s *RecapService) Values(ctx context.Context) ([]domain.Row, error) {
	started := time.Now()
	rows, err := s.gateway.CallProcedure(ctx, recapProcedure)
	record(s.audit, ctx, domain.OpProcedureCall, recapTable, err, false, started)
	return rows, err
}

func (s *RecapService) lookupRecapID(ctx context.Context, serverName string) (int64, error) {
	op := domain.Operation{
		Table:     recapTable,
		Kind:      domain.OpSelect,
		Predicate: []domain.Binding{{Column: "server_name", Value: serverName}},
	}
	rows, err := s.gateway.Select(ctx, op)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, domain.ErrServerNotFound
	}

	id, ok := asInt64(rows[0]["id"])
	if !ok {
		return 0, domain.NewDatabaseError("recap lookup", domain.ErrNotFound)
	}
	return id, nil
}

// asInt64 normalises the driver's integer representations.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
