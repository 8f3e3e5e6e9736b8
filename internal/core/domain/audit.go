package domain

import "time"

// Audit actions recorded by the auth pipeline.
const (
	AuditLogin          = "login"
	AuditLoginFailed    = "login_failed"
	AuditRefresh        = "token_refresh"
	AuditPasswordSet    = "password_set"
	AuditPasswordUpdate = "password_update"
)

// AuditEvent is a single append-only record of an authentication decision.
// Events are persisted off the request path by the audit dispatcher.
type AuditEvent struct {
	Subject    string    `json:"subject"`
	Kind       string    `json:"kind,omitempty"`
	Action     string    `json:"action"`
	Success    bool      `json:"success"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
