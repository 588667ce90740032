package postgres

import (
	"fmt"
	"strings"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// Statement builders. Pure functions: identifier validation plus text
// assembly, with every value left to parameter binding. Kept separate
// from pool access so they are testable without a database.

func buildInsert(op domain.Operation) (string, []any, error) {
	if err := validTable(op.Table); err != nil {
		return "", nil, err
	}
	if len(op.Columns) == 0 {
		return "", nil, fmt.Errorf("insert into %s: no columns", op.Table)
	}

	cols := make([]string, 0, len(op.Columns))
	places := make([]string, 0, len(op.Columns))
	args := make([]any, 0, len(op.Columns))
	for i, b := range op.Columns {
		cols = append(cols, b.Column)
		places = append(places, fmt.Sprintf("$%d", i+1))
		args = append(args, b.Value)
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		op.Table, strings.Join(cols, ", "), strings.Join(places, ", "))
	return sql, args, nil
}

func buildSelect(op domain.Operation) (string, []any, error) {
	if err := validTable(op.Table); err != nil {
		return "", nil, err
	}

	sql := "SELECT * FROM " + op.Table
	where, args := buildWhere(op.Predicate, 0)
	return sql + where, args, nil
}

// buildExists is the lookup half of a conditional insert: it resolves
// the predicate to the existing row id, if any.
func buildExists(op domain.Operation) (string, []any, error) {
	if err := validTable(op.Table); err != nil {
		return "", nil, err
	}
	if len(op.Predicate) == 0 {
		return "", nil, fmt.Errorf("conditional insert into %s: no predicate", op.Table)
	}

	where, args := buildWhere(op.Predicate, 0)
	return "SELECT id FROM " + op.Table + where, args, nil
}

func buildDelete(op domain.Operation) (string, []any, error) {
	if err := validTable(op.Table); err != nil {
		return "", nil, err
	}
	if len(op.Predicate) == 0 {
		// An unpredicated DELETE would empty the table; never emit one.
		return "", nil, fmt.Errorf("delete from %s: no predicate", op.Table)
	}

	where, args := buildWhere(op.Predicate, 0)
	return "DELETE FROM " + op.Table + where, args, nil
}

func buildProcedureCall(procedure string, args []any) (string, error) {
	if err := validProcedure(procedure); err != nil {
		return "", err
	}

	places := make([]string, 0, len(args))
	for i := range args {
		places = append(places, fmt.Sprintf("$%d", i+1))
	}
	return fmt.Sprintf("SELECT * FROM %s(%s)", procedure, strings.Join(places, ", ")), nil
}

// buildWhere renders equality predicates as ANDed bound parameters,
// numbering placeholders from offset+1.
func buildWhere(predicate []domain.Binding, offset int) (string, []any) {
	if len(predicate) == 0 {
		return "", nil
	}

	terms := make([]string, 0, len(predicate))
	args := make([]any, 0, len(predicate))
	for i, b := range predicate {
		terms = append(terms, fmt.Sprintf("%s = $%d", b.Column, offset+i+1))
		args = append(args, b.Value)
	}
	return " WHERE " + strings.Join(terms, " AND "), args
}
