package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ebolarium/baplikasyon/internal/domain"
	"github.com/ebolarium/baplikasyon/internal/events"
	"github.com/ebolarium/baplikasyon/internal/repository"
	apperrors "github.com/ebolarium/baplikasyon/pkg/util"
)

// CaseService coordinates the support case lifecycle. Every operation is
// scoped to the owning user.
type CaseService struct {
	cases      repository.CaseRepository
	dispatcher events.Dispatcher
}

// NewCaseService constructs the service.
func NewCaseService(cases repository.CaseRepository, dispatcher events.Dispatcher) *CaseService {
	return &CaseService{cases: cases, dispatcher: dispatcher}
}

// CaseCreateInput describes case creation payload. Status and
// ContactMethod fall back to their defaults when nil.
type CaseCreateInput struct {
	CompanyName   string
	Person        string
	Topic         string
	Details       string
	Status        *domain.CaseStatus
	ContactMethod *domain.ContactMethod
}

// CaseUpdateInput carries a partial update; nil fields stay untouched.
type CaseUpdateInput struct {
	CompanyName   *string
	Person        *string
	Topic         *string
	Details       *string
	Status        *domain.CaseStatus
	ContactMethod *domain.ContactMethod
}

// List returns all cases owned by the caller, newest opened first.
func (s *CaseService) List(ctx context.Context, ownerID string) ([]domain.SupportCase, error) {
	return s.cases.ListByOwner(ctx, ownerID, nil)
}

// Get fetches a single case. A case that exists but belongs to someone
// else fails with Forbidden, not NotFound.
func (s *CaseService) Get(ctx context.Context, ownerID, caseID string) (*domain.SupportCase, error) {
	sc, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("support case", nil)
		}
		return nil, err
	}
	if sc.OwnerID != ownerID {
		return nil, apperrors.NewForbidden("support case belongs to another user")
	}
	return sc, nil
}

// Create persists a new case owned by the caller.
func (s *CaseService) Create(ctx context.Context, ownerID string, input CaseCreateInput) (*domain.SupportCase, error) {
	sc := &domain.SupportCase{
		OwnerID:       ownerID,
		CompanyName:   strings.TrimSpace(input.CompanyName),
		Person:        strings.TrimSpace(input.Person),
		Topic:         strings.TrimSpace(input.Topic),
		Details:       strings.TrimSpace(input.Details),
		Status:        domain.CaseStatusOpen,
		ContactMethod: domain.ContactMethodOnline,
	}

	details := map[string]any{}
	if sc.CompanyName == "" {
		details["companyName"] = "required"
	}
	if sc.Person == "" {
		details["person"] = "required"
	}
	if sc.Topic == "" {
		details["topic"] = "required"
	}
	if sc.Details == "" {
		details["details"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid case payload", details)
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", nil)
		}
		sc.Status = *input.Status
	}
	if input.ContactMethod != nil {
		if !input.ContactMethod.Valid() {
			return nil, apperrors.NewValidationError("invalid contact method", nil)
		}
		sc.ContactMethod = *input.ContactMethod
	}

	now := time.Now()
	sc.OpenedAt = now
	if sc.Status == domain.CaseStatusClosed {
		sc.ClosedAt = &now
	}

	if err := s.cases.Create(ctx, sc); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventCaseCreated,
		CaseID:  sc.ID,
		OwnerID: sc.OwnerID,
		Payload: events.CaseCreatedPayload{
			CompanyName:   sc.CompanyName,
			Topic:         sc.Topic,
			Status:        sc.Status,
			ContactMethod: sc.ContactMethod,
		},
	})
	return sc, nil
}

// Update applies a partial change. Status transitions stamp or clear
// ClosedAt; re-asserting the current status leaves ClosedAt alone.
func (s *CaseService) Update(ctx context.Context, ownerID, caseID string, input CaseUpdateInput) (*domain.SupportCase, error) {
	sc, err := s.Get(ctx, ownerID, caseID)
	if err != nil {
		return nil, err
	}

	if err := applyTextField(&sc.CompanyName, input.CompanyName, "companyName"); err != nil {
		return nil, err
	}
	if err := applyTextField(&sc.Person, input.Person, "person"); err != nil {
		return nil, err
	}
	if err := applyTextField(&sc.Topic, input.Topic, "topic"); err != nil {
		return nil, err
	}
	if err := applyTextField(&sc.Details, input.Details, "details"); err != nil {
		return nil, err
	}

	if input.ContactMethod != nil {
		if !input.ContactMethod.Valid() {
			return nil, apperrors.NewValidationError("invalid contact method", nil)
		}
		sc.ContactMethod = *input.ContactMethod
	}

	var oldStatus domain.CaseStatus
	statusChanged := false
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", nil)
		}
		// Only a real transition touches ClosedAt; setting the current
		// status again must not re-stamp or clear it.
		if *input.Status != sc.Status {
			oldStatus = sc.Status
			statusChanged = true
			switch *input.Status {
			case domain.CaseStatusClosed:
				now := time.Now()
				sc.ClosedAt = &now
			case domain.CaseStatusOpen:
				sc.ClosedAt = nil
			}
			sc.Status = *input.Status
		}
	}

	if err := s.cases.Update(ctx, sc); err != nil {
		return nil, err
	}

	if statusChanged {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventCaseStatusChanged,
			CaseID:  sc.ID,
			OwnerID: sc.OwnerID,
			Payload: events.CaseStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: sc.Status,
			},
		})
	} else {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventCaseUpdated,
			CaseID:  sc.ID,
			OwnerID: sc.OwnerID,
		})
	}
	return sc, nil
}

// Delete removes a case permanently.
func (s *CaseService) Delete(ctx context.Context, ownerID, caseID string) error {
	sc, err := s.Get(ctx, ownerID, caseID)
	if err != nil {
		return err
	}
	if err := s.cases.Delete(ctx, sc.ID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventCaseDeleted,
		CaseID:  sc.ID,
		OwnerID: sc.OwnerID,
	})
	return nil
}

func applyTextField(dst *string, src *string, field string) error {
	if src == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*src)
	if trimmed == "" {
		return apperrors.NewValidationError(field+" must not be empty", nil)
	}
	*dst = trimmed
	return nil
}

func (s *CaseService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
