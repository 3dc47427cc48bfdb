// Package audit records form lifecycle events. Events flow through a
// channel into a background worker which persists them and fans them
// out to the configured sink.
package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	FormID    string    `json:"formId,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
}

// Actions recorded by the persistence service.
const (
	ActionFormCreated   = "form.created"
	ActionFormUpdated   = "form.updated"
	ActionFormDeleted   = "form.deleted"
	ActionFormsViewed   = "forms.viewed"
	ActionFormsExported = "forms.exported"
	ActionAdminLogin    = "admin.login"
)
