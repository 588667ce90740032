package service

import (
	"context"
	"time"

	"github.com/dbaops/inventory-api/internal/core/domain"
	"github.com/dbaops/inventory-api/internal/core/ports"
)

// Collector feed tables are fixed; only the inventory endpoints take a
// caller-supplied table name.
const (
	dbaiTable         = "dbai_feed"
	snifferTable      = "sniffer_queries"
	snifferHostsTable = "sniffer_hosts"
)

// MonitorService ingests collector feeds: dbai metrics and mysql
// sniffer captures.
type MonitorService struct {
	gateway ports.QueryGateway
	audit   ports.AuditSink
}

func NewMonitorService(gateway ports.QueryGateway, audit ports.AuditSink) *MonitorService {
	return &MonitorService{gateway: gateway, audit: audit}
}

// FeedDBAI records one metric row from the dbai collector.
func (s *MonitorService) FeedDBAI(ctx context.Context, in ports.DBAIInput) (int64, error) {
	op := domain.Operation{
		Table: dbaiTable,
		Kind:  domain.OpInsert,
		Columns: []domain.Binding{
			{Column: "server_name", Value: in.ServerName},
			{Column: "metric_name", Value: in.MetricName},
			{Column: "metric_data", Value: in.MetricData},
			{Column: "created_at", Value: time.Now().UTC()},
		},
	}
	started := time.Now()
	id, err := s.gateway.Insert(ctx, op)
	record(s.audit, ctx, domain.OpInsert, dbaiTable, err, false, started)
	return id, err
}

// RecordSamples persists a batch of sniffer captures. The batch stops at
// the first failure; rows already written stay.
func (s *MonitorService) RecordSamples(ctx context.Context, samples []ports.SnifferSample) error {
	for _, sample := range samples {
		op := domain.Operation{
			Table: snifferTable,
			Kind:  domain.OpInsert,
			Columns: []domain.Binding{
				{Column: "host", Value: sample.Host},
				{Column: "db_user", Value: sample.User},
				{Column: "query_text", Value: sample.QueryText},
				{Column: "query_count", Value: sample.Count},
			},
		}
		started := time.Now()
		_, err := s.gateway.Insert(ctx, op)
		record(s.audit, ctx, domain.OpInsert, snifferTable, err, false, started)
		if err != nil {
			return err
		}
	}
	return nil
}

// RegisterHost upserts a sniffer host; re-registering an existing host
// reports the existing row.
func (s *MonitorService) RegisterHost(ctx context.Context, in ports.SnifferHost) (ports.DedupResult, error) {
	op := domain.Operation{
		Table: snifferHostsTable,
		Kind:  domain.OpConditionalInsert,
		Columns: []domain.Binding{
			{Column: "host", Value: in.Host},
			{Column: "host_ip", Value: in.IP},
		},
		Predicate: []domain.Binding{
			{Column: "host", Value: in.Host},
		},
	}
	started := time.Now()
	id, existed, err := s.gateway.ConditionalInsert(ctx, op)
	record(s.audit, ctx, domain.OpConditionalInsert, snifferHostsTable, err, existed, started)
	if err != nil {
		return ports.DedupResult{}, err
	}
	return ports.DedupResult{ID: id, Existed: existed}, nil
}
