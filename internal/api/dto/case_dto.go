package dto

import (
	"time"

	"github.com/ebolarium/baplikasyon/internal/domain"
)

// CreateCaseRequest payload.
type CreateCaseRequest struct {
	CompanyName   string                `json:"companyName"`
	Person        string                `json:"person"`
	Topic         string                `json:"topic"`
	Details       string                `json:"details"`
	Status        *domain.CaseStatus    `json:"status"`
	ContactMethod *domain.ContactMethod `json:"contactMethod"`
}

// UpdateCaseRequest payload; absent fields stay unchanged.
type UpdateCaseRequest struct {
	CompanyName   *string               `json:"companyName"`
	Person        *string               `json:"person"`
	Topic         *string               `json:"topic"`
	Details       *string               `json:"details"`
	Status        *domain.CaseStatus    `json:"status"`
	ContactMethod *domain.ContactMethod `json:"contactMethod"`
}

// CaseResponse represents one support case.
type CaseResponse struct {
	ID            string               `json:"id"`
	CompanyName   string               `json:"companyName"`
	Person        string               `json:"person"`
	Topic         string               `json:"topic"`
	Details       string               `json:"details"`
	Status        domain.CaseStatus    `json:"status"`
	ContactMethod domain.ContactMethod `json:"contactMethod"`
	OpenedAt      time.Time            `json:"openedAt"`
	ClosedAt      *time.Time           `json:"closedAt"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// FromCase maps a domain case to its response shape.
func FromCase(sc *domain.SupportCase) CaseResponse {
	return CaseResponse{
		ID:            sc.ID,
		CompanyName:   sc.CompanyName,
		Person:        sc.Person,
		Topic:         sc.Topic,
		Details:       sc.Details,
		Status:        sc.Status,
		ContactMethod: sc.ContactMethod,
		OpenedAt:      sc.OpenedAt,
		ClosedAt:      sc.ClosedAt,
		CreatedAt:     sc.CreatedAt,
		UpdatedAt:     sc.UpdatedAt,
	}
}

// FromCases maps a case list.
func FromCases(cases []domain.SupportCase) []CaseResponse {
	result := make([]CaseResponse, 0, len(cases))
	for i := range cases {
		result = append(result, FromCase(&cases[i]))
	}
	return result
}
