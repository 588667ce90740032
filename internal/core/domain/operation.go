package domain

// OperationKind enumerates what the query gateway can be asked to do.
type OperationKind string

const (
	OpInsert            OperationKind = "insert"
	OpConditionalInsert OperationKind = "conditional_insert"
	OpSelect            OperationKind = "select"
	OpDelete            OperationKind = "delete"
	OpProcedureCall     OperationKind = "procedure_call"
)

// Binding is one (column, value) pair. Order matters: columns appear in
// the generated statement in the order the service listed them.
type Binding struct {
	Column string
	Value  any
}

// Operation describes one gateway call before any SQL is generated.
// It is built per request from the JSON body and discarded after
// execution; values travel as bound parameters, only the table name is
// ever interpolated — after allow-list validation.
type Operation struct {
	Table     string
	Kind      OperationKind
	Columns   []Binding
	Predicate []Binding
	Procedure string
	ProcArgs  []any
}

// Row is one result row as a column→value mapping. Result sets preserve
// row order; procedure calls flatten every result set into one sequence.
type Row map[string]any
