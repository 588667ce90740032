package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped with the field name by NewMissingField.
	ErrMissingField = errors.New("missing required field")

	// ErrAuthRequired means no usable Bearer token was presented.
	ErrAuthRequired = errors.New("authentication required")
	// ErrInvalidToken means the token was presented but is unknown or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidCredentials covers a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownTable means the caller-supplied identifier is not on the
	// allow-list; it is rejected before any SQL is built.
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnknownProcedure is the procedure-name counterpart of ErrUnknownTable.
	ErrUnknownProcedure = errors.New("unknown procedure")

	ErrNotFound          = errors.New("no matching rows")
	ErrServerNotFound    = errors.New("server not registered")
	ErrAlreadyRegistered = errors.New("server already registered")
)

// NewMissingField returns an error identifying the absent request field.
// It matches ErrMissingField under errors.Is.
func NewMissingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// DatabaseError wraps any driver-level failure: constraint violations,
// connectivity loss, statement errors. The gateway never retries; the
// underlying message is carried through to the error envelope.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// NewDatabaseError wraps err with the operation that failed.
func NewDatabaseError(op string, err error) *DatabaseError {
	return &DatabaseError{Op: op, Err: err}
}
