package domain

import "time"

// AuditEvent records one gateway-backed operation for the audit trail.
// Events are persisted asynchronously; a failed audit write is logged and
// never surfaced to the caller.
type AuditEvent struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Operation OperationKind `json:"operation"`
	Table     string        `json:"table"`
	Outcome   string        `json:"outcome"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Audit outcomes.
const (
	AuditOutcomeSuccess = "success"
	AuditOutcomeExists  = "exists"
	AuditOutcomeError   = "error"
)
