package postgres

import (
	"errors"
	"testing"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

func TestBuildInsert(t *testing.T) {
	op := domain.Operation{
		Table: "servers",
		Kind:  domain.OpInsert,
		Columns: []domain.Binding{
			{Column: "server_name", Value: "db-prod-01"},
			{Column: "server_ip", Value: "10.0.0.5"},
		},
	}

	sql, args, err := buildInsert(op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := "INSERT INTO servers (server_name, server_ip) VALUES ($1, $2) RETURNING id"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 || args[0] != "db-prod-01" || args[1] != "10.0.0.5" {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildSelect_WithPredicate(t *testing.T) {
	op := domain.Operation{
		Table: "software_versions",
		Kind:  domain.OpSelect,
		Predicate: []domain.Binding{
			{Column: "version", Value: "8.0.36"},
		},
	}

	sql, args, err := buildSelect(op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := "SELECT * FROM software_versions WHERE version = $1"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildSelect_NoPredicate(t *testing.T) {
	sql, args, err := buildSelect(domain.Operation{Table: "server_recap"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sql != "SELECT * FROM server_recap" {
		t.Fatalf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildDelete_RequiresPredicate(t *testing.T) {
	if _, _, err := buildDelete(domain.Operation{Table: "servers"}); err == nil {
		t.Fatal("unpredicated delete accepted")
	}

	sql, args, err := buildDelete(domain.Operation{
		Table:     "servers",
		Predicate: []domain.Binding{{Column: "server_ip", Value: "10.0.0.5"}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sql != "DELETE FROM servers WHERE server_ip = $1" {
		t.Fatalf("sql = %q", sql)
	}
	if len(args) != 1 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildExists_MultiColumnPredicate(t *testing.T) {
	sql, args, err := buildExists(domain.Operation{
		Table: "db_users",
		Predicate: []domain.Binding{
			{Column: "id_ref_servers", Value: int64(7)},
			{Column: "dbuser", Value: "app"},
			{Column: "dbhost", Value: "10.0.0.9"},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := "SELECT id FROM db_users WHERE id_ref_servers = $1 AND dbuser = $2 AND dbhost = $3"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildProcedureCall(t *testing.T) {
	sql, err := buildProcedureCall("get_recap_values", nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sql != "SELECT * FROM get_recap_values()" {
		t.Fatalf("sql = %q", sql)
	}

	if _, err := buildProcedureCall("pg_sleep", nil); !errors.Is(err, domain.ErrUnknownProcedure) {
		t.Fatalf("off-list procedure err = %v, want ErrUnknownProcedure", err)
	}
}

func TestTableAllowList(t *testing.T) {
	// Interpolated identifiers must be on the allow-list and inside the
	// [A-Za-z0-9_] charset; everything else dies before SQL is built.
	rejected := []string{
		"",
		"utilisateurs",
		"servers; DROP TABLE servers--",
		"servers`",
		"pg_catalog.pg_tables",
		"servers sniffer_hosts",
		"Servers ",
	}
	for _, name := range rejected {
		op := domain.Operation{
			Table:   name,
			Columns: []domain.Binding{{Column: "a", Value: 1}},
		}
		if _, _, err := buildInsert(op); !errors.Is(err, domain.ErrUnknownTable) {
			t.Fatalf("table %q: err = %v, want ErrUnknownTable", name, err)
		}
	}

	for name := range allowedTables {
		op := domain.Operation{
			Table:   name,
			Columns: []domain.Binding{{Column: "a", Value: 1}},
		}
		if _, _, err := buildInsert(op); err != nil {
			t.Fatalf("allow-listed table %q rejected: %v", name, err)
		}
	}
}

func TestQuoteCursor(t *testing.T) {
	if got := quoteCursor("<unnamed portal 1>"); got != `"<unnamed portal 1>"` {
		t.Fatalf("quoted = %q", got)
	}
	// Embedded quotes are doubled, never terminate the identifier.
	if got := quoteCursor(`evil"cursor`); got != `"evil""cursor"` {
		t.Fatalf("quoted = %q", got)
	}
}
