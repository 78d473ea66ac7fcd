package domain

import "time"

// CaseStatus enumerates lifecycle states for support cases.
type CaseStatus string

const (
	CaseStatusOpen   CaseStatus = "open"
	CaseStatusClosed CaseStatus = "closed"
)

// Valid reports whether the status is one of the known states.
func (s CaseStatus) Valid() bool {
	return s == CaseStatusOpen || s == CaseStatusClosed
}

// ContactMethod enumerates how the contact person reached out.
type ContactMethod string

const (
	ContactMethodPhone  ContactMethod = "phone"
	ContactMethodOnline ContactMethod = "online"
)

// Valid reports whether the contact method is one of the known values.
func (m ContactMethod) Valid() bool {
	return m == ContactMethodPhone || m == ContactMethodOnline
}

// SupportCase is the aggregate for a tracked support request. Each case
// belongs to exactly one owner; ownership never changes after creation.
type SupportCase struct {
	ID            string
	OwnerID       string
	CompanyName   string
	Person        string
	Topic         string
	Details       string
	Status        CaseStatus
	ContactMethod ContactMethod
	OpenedAt      time.Time
	ClosedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsClosed reports whether the case is in the closed state.
func (c *SupportCase) IsClosed() bool {
	return c.Status == CaseStatusClosed
}
