package postgres

import (
	"regexp"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// Table names arrive from the request body and cannot travel as bound
// parameters, so every identifier is checked against this closed set
// before any string formatting. Quoting alone is not a defence.
var allowedTables = map[string]struct{}{
	"servers":           {},
	"software_versions": {},
	"db_servers":        {},
	"db_users":          {},
	"server_recap":      {},
	"recap_values":      {},
	"dbai_feed":         {},
	"sniffer_queries":   {},
	"sniffer_hosts":     {},
	"gateway_audit":     {},
}

var allowedProcedures = map[string]struct{}{
	"get_recap_values": {},
}

var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// validTable reports whether name may be interpolated as a table
// identifier: on the allow-list and within the [A-Za-z0-9_] charset.
func validTable(name string) error {
	if !identPattern.MatchString(name) {
		return domain.ErrUnknownTable
	}
	if _, ok := allowedTables[name]; !ok {
		return domain.ErrUnknownTable
	}
	return nil
}

// validProcedure is the procedure-name counterpart of validTable.
func validProcedure(name string) error {
	if !identPattern.MatchString(name) {
		return domain.ErrUnknownProcedure
	}
	if _, ok := allowedProcedures[name]; !ok {
		return domain.ErrUnknownProcedure
	}
	return nil
}
