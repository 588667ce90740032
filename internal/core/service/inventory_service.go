package service

import (
	"context"
	"time"

	"github.com/dbaops/inventory-api/internal/core/domain"
	"github.com/dbaops/inventory-api/internal/core/ports"
)

// InventoryService maps the dynamic inventory endpoints onto Operation
// descriptors. The table identifier always comes from the caller; the
// gateway validates it against the allow-list before any SQL exists.
type InventoryService struct {
	gateway ports.QueryGateway
	audit   ports.AuditSink
}

func NewInventoryService(gateway ports.QueryGateway, audit ports.AuditSink) *InventoryService {
	return &InventoryService{gateway: gateway, audit: audit}
}

// InsertServer registers a monitored server with its engine type.
func (s *InventoryService) InsertServer(ctx context.Context, in ports.ServerInput) (int64, error) {
	op := domain.Operation{
		Table: in.Table,
		Kind:  domain.OpInsert,
		Columns: []domain.Binding{
			{Column: "server_name", Value: in.ServerName},
			{Column: "server_ip", Value: in.ServerIP},
			{Column: "sgbd_type", Value: in.SGBDType},
		},
	}
	started := time.Now()
	id, err := s.gateway.Insert(ctx, op)
	record(s.audit, ctx, domain.OpInsert, in.Table, err, false, started)
	return id, err
}

// SetServer records a server row linked to an installed software id.
func (s *InventoryService) SetServer(ctx context.Context, in ports.ServerInput) (int64, error) {
	op := domain.Operation{
		Table: in.Table,
		Kind:  domain.OpInsert,
		Columns: []domain.Binding{
			{Column: "server_name", Value: in.ServerName},
			{Column: "server_ip", Value: in.ServerIP},
			{Column: "server_env", Value: in.ServerEnv},
			{Column: "id_software", Value: in.IDSoftware},
		},
	}
	started := time.Now()
	id, err := s.gateway.Insert(ctx, op)
	record(s.audit, ctx, domain.OpInsert, in.Table, err, false, started)
	return id, err
}

// SetVersion records a software/version pair and returns its id.
func (s *InventoryService) SetVersion(ctx context.Context, in ports.VersionInput) (int64, error) {
	op := domain.Operation{
		Table: in.Table,
		Kind:  domain.OpInsert,
		Columns: []domain.Binding{
			{Column: "software", Value: in.Software},
			{Column: "version", Value: in.Version},
		},
	}
	started := time.Now()
	id, err := s.gateway.Insert(ctx, op)
	record(s.audit, ctx, domain.OpInsert, in.Table, err, false, started)
	return id, err
}

// VersionInfo lists rows matching a software version.
func (s *InventoryService) VersionInfo(ctx context.Context, table, version string) ([]domain.Row, error) {
	op := domain.Operation{
		Table:     table,
		Kind:      domain.OpSelect,
		Predicate: []domain.Binding{{Column: "version", Value: version}},
	}
	started := time.Now()
	rows, err := s.gateway.Select(ctx, op)
	record(s.audit, ctx, domain.OpSelect, table, err, false, started)
	return rows, err
}

// ServerInfo lists rows matching a server name.
func (s *InventoryService) ServerInfo(ctx context.Context, table, serverName string) ([]domain.Row, error) {
	op := domain.Operation{
		Table:     table,
		Kind:      domain.OpSelect,
		Predicate: []domain.Binding{{Column: "server_name", Value: serverName}},
	}
	started := time.Now()
	rows, err := s.gateway.Select(ctx, op)
	record(s.audit, ctx, domain.OpSelect, table, err, false, started)
	return rows, err
}

// DeleteByIP removes rows matching a server IP. Zero matches reports
// domain.ErrNotFound rather than a silent success.
func (s *InventoryService) DeleteByIP(ctx context.Context, table, serverIP string) error {
	op := domain.Operation{
		Table:     table,
		Kind:      domain.OpDelete,
		Predicate: []domain.Binding{{Column: "server_ip", Value: serverIP}},
	}
	started := time.Now()
	affected, err := s.gateway.Delete(ctx, op)
	if err == nil && affected == 0 {
		err = domain.ErrNotFound
	}
	record(s.audit, ctx, domain.OpDelete, table, err, false, started)
	return err
}

// SetDBServer links a database name to a reference server, inserting
// only when the (id_ref_server, db_name) pair is absent.
func (s *InventoryService) SetDBServer(ctx context.Context, in ports.DBServerInput) (ports.DedupResult, error) {
	op := domain.Operation{
		Table: in.Table,
		Kind:  domain.OpConditionalInsert,
		Columns: []domain.Binding{
			{Column: "id_ref_server", Value: in.IDRefServer},
			{Column: "db_name", Value: in.DBName},
		},
		Predicate: []domain.Binding{
			{Column: "id_ref_server", Value: in.IDRefServer},
			{Column: "db_name", Value: in.DBName},
		},
	}
	return s.dedupInsert(ctx, op)
}

// SetUserDB links a database account (user@host) to a reference server,
// inserting only when the triple is absent.
func (s *InventoryService) SetUserDB(ctx context.Context, in ports.DBUserInput) (ports.DedupResult, error) {
	op := domain.Operation{
		Table: in.Table,
		Kind:  domain.OpConditionalInsert,
		Columns: []domain.Binding{
			{Column: "id_ref_servers", Value: in.IDRefServers},
			{Column: "dbuser", Value: in.DBUser},
			{Column: "dbhost", Value: in.DBHost},
		},
		Predicate: []domain.Binding{
			{Column: "id_ref_servers", Value: in.IDRefServers},
			{Column: "dbuser", Value: in.DBUser},
			{Column: "dbhost", Value: in.DBHost},
		},
	}
	return s.dedupInsert(ctx, op)
}

func (s *InventoryService) dedupInsert(ctx context.Context, op domain.Operation) (ports.DedupResult, error) {
	started := time.Now()
	id, existed, err := s.gateway.ConditionalInsert(ctx, op)
	record(s.audit, ctx, domain.OpConditionalInsert, op.Table, err, existed, started)
	if err != nil {
		return ports.DedupResult{}, err
	}
	return ports.DedupResult{ID: id, Existed: existed}, nil
}
