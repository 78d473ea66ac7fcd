package events

import (
	"time"

	"github.com/ebolarium/baplikasyon/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCaseCreated       EventType = "case_created"
	EventCaseUpdated       EventType = "case_updated"
	EventCaseStatusChanged EventType = "case_status_changed"
	EventCaseDeleted       EventType = "case_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CaseID    string      `json:"case_id"`
	OwnerID   string      `json:"owner_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CaseCreatedPayload payload.
type CaseCreatedPayload struct {
	CompanyName   string               `json:"company_name"`
	Topic         string               `json:"topic"`
	Status        domain.CaseStatus    `json:"status"`
	ContactMethod domain.ContactMethod `json:"contact_method"`
}

// CaseStatusChangedPayload payload.
type CaseStatusChangedPayload struct {
	OldStatus domain.CaseStatus `json:"old_status"`
	NewStatus domain.CaseStatus `json:"new_status"`
}
