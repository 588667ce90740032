package ports

import (
	"context"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// ServerInput carries the fields of one monitored server row.
type ServerInput struct {
	Table      string
	ServerName string
	ServerIP   string
	SGBDType   string
	ServerEnv  string
	IDSoftware int64
}

// VersionInput identifies one software version row.
type VersionInput struct {
	Table    string
	Software string
	Version  string
}

// DBServerInput links a database name to a reference server.
type DBServerInput struct {
	Table       string
	IDRefServer int64
	DBName      string
}

// DBUserInput links a database account (user@host) to a reference server.
type DBUserInput struct {
	Table        string
	IDRefServers int64
	DBUser       string
	DBHost       string
}

// DedupResult reports a conditional insert: the row id plus whether the
// row pre-existed.
type DedupResult struct {
	ID      int64
	Existed bool
}

// InventoryService exposes the typed operations behind the dynamic
// inventory endpoints. Each builds an Operation descriptor and hands it
// to the query gateway.
type InventoryService interface {
	InsertServer(ctx context.Context, in ServerInput) (int64, error)
	SetServer(ctx context.Context, in ServerInput) (int64, error)
	SetVersion(ctx context.Context, in VersionInput) (int64, error)
	VersionInfo(ctx context.Context, table, version string) ([]domain.Row, error)
	ServerInfo(ctx context.Context, table, serverName string) ([]domain.Row, error)
	DeleteByIP(ctx context.Context, table, serverIP string) error
	SetDBServer(ctx context.Context, in DBServerInput) (DedupResult, error)
	SetUserDB(ctx context.Context, in DBUserInput) (DedupResult, error)
}
