package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ebolarium/baplikasyon/internal/domain"
	"github.com/ebolarium/baplikasyon/internal/events"
	"github.com/ebolarium/baplikasyon/internal/service"
)

func validCaseInput() service.CaseCreateInput {
	return service.CaseCreateInput{
		CompanyName: "Acme Corp",
		Person:      "Jane Doe",
		Topic:       "Printer offline",
		Details:     "Device does not respond to ping.",
	}
}

func statusPtr(s domain.CaseStatus) *domain.CaseStatus       { return &s }
func methodPtr(m domain.ContactMethod) *domain.ContactMethod { return &m }
func strPtr(s string) *string                                { return &s }

func TestCreateCaseDefaults(t *testing.T) {
	svc := service.NewCaseService(newFakeCaseRepo(), nil)

	before := time.Now()
	sc, err := svc.Create(context.Background(), "owner-1", validCaseInput())
	require.NoError(t, err)

	require.NotEmpty(t, sc.ID)
	require.Equal(t, domain.CaseStatusOpen, sc.Status)
	require.Equal(t, domain.ContactMethodOnline, sc.ContactMethod)
	require.Nil(t, sc.ClosedAt, "an open case has no closed timestamp")
	require.False(t, sc.OpenedAt.Before(before))
	require.False(t, sc.OpenedAt.After(time.Now()))
}

func TestCreateCaseClosedStampsClosedAt(t *testing.T) {
	svc := service.NewCaseService(newFakeCaseRepo(), nil)

	input := validCaseInput()
	input.Status = statusPtr(domain.CaseStatusClosed)
	input.ContactMethod = methodPtr(domain.ContactMethodPhone)

	sc, err := svc.Create(context.Background(), "owner-1", input)
	require.NoError(t, err)
	require.Equal(t, domain.CaseStatusClosed, sc.Status)
	require.Equal(t, domain.ContactMethodPhone, sc.ContactMethod)
	require.NotNil(t, sc.ClosedAt)
	require.Equal(t, sc.OpenedAt, *sc.ClosedAt, "a case created closed resolves instantly")
}

func TestCreateCaseValidation(t *testing.T) {
	svc := service.NewCaseService(newFakeCaseRepo(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "owner-1", service.CaseCreateInput{
		CompanyName: "  ",
		Person:      "Jane",
		Topic:       "",
		Details:     "x",
	})
	de := requireDomainError(t, err, "VALIDATION_FAILED")
	require.Contains(t, de.Details, "companyName")
	require.Contains(t, de.Details, "topic")

	bad := domain.CaseStatus("paused")
	input := validCaseInput()
	input.Status = &bad
	_, err = svc.Create(ctx, "owner-1", input)
	requireDomainError(t, err, "VALIDATION_FAILED")

	badMethod := domain.ContactMethod("fax")
	input = validCaseInput()
	input.ContactMethod = &badMethod
	_, err = svc.Create(ctx, "owner-1", input)
	requireDomainError(t, err, "VALIDATION_FAILED")
}

func TestStatusTransitionsDriveClosedAt(t *testing.T) {
	svc := service.NewCaseService(newFakeCaseRepo(), nil)
	ctx := context.Background()

	sc, err := svc.Create(ctx, "owner-1", validCaseInput())
	require.NoError(t, err)
	openedAt := sc.OpenedAt

	closed, err := svc.Update(ctx, "owner-1", sc.ID, service.CaseUpdateInput{
		Status: statusPtr(domain.CaseStatusClosed),
	})
	require.NoError(t, err)
	require.Equal(t, domain.CaseStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	require.Equal(t, openedAt, closed.OpenedAt, "closing must not move the opened timestamp")

	reopened, err := svc.Update(ctx, "owner-1", sc.ID, service.CaseUpdateInput{
		Status: statusPtr(domain.CaseStatusOpen),
	})
	require.NoError(t, err)
	require.Equal(t, domain.CaseStatusOpen, reopened.Status)
	require.Nil(t, reopened.ClosedAt, "reopening clears the closed timestamp")
}

func TestReassertingStatusKeepsClosedAt(t *testing.T) {
	svc := service.NewCaseService(newFakeCaseRepo(), nil)
	ctx := context.Background()

	sc, err := svc.Create(ctx, "owner-1", validCaseInput())
	require.NoError(t, err)

	closed, err := svc.Update(ctx, "owner-1", sc.ID, service.CaseUpdateInput{
		Status: statusPtr(domain.CaseStatusClosed),
	})
	require.NoError(t, err)
	firstClosedAt := *closed.ClosedAt

	time.Sleep(5 * time.Millisecond)
	again, err := svc.Update(ctx, "owner-1", sc.ID, service.CaseUpdateInput{
		Status: statusPtr(domain.CaseStatusClosed),
	})
	require.NoError(t, err)
	require.NotNil(t, again.ClosedAt)
	require.Equal(t, firstClosedAt, *again.ClosedAt, "setting the current status again must not re-stamp ClosedAt")
}

func TestUpdateRejectsEmptyTextField(t *testing.T) {
	svc := service.NewCaseService(newFakeCaseRepo(), nil)
	ctx := context.Background()

	sc, err := svc.Create(ctx, "owner-1", validCaseInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, "owner-1", sc.ID, service.CaseUpdateInput{Topic: strPtr("   ")})
	requireDomainError(t, err, "VALIDATION_FAILED")

	updated, err := svc.Update(ctx, "owner-1", sc.ID, service.CaseUpdateInput{Topic: strPtr(" Router down ")})
	require.NoError(t, err)
	require.Equal(t, "Router down", updated.Topic)
	require.Equal(t, sc.CompanyName, updated.CompanyName, "omitted fields stay untouched")
}

func TestOwnershipIsolation(t *testing.T) {
	svc := service.NewCaseService(newFakeCaseRepo(), nil)
	ctx := context.Background()

	sc, err := svc.Create(ctx, "owner-a", validCaseInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, "owner-b", sc.ID)
	requireDomainError(t, err, "FORBIDDEN")

	_, err = svc.Update(ctx, "owner-b", sc.ID, service.CaseUpdateInput{Topic: strPtr("hijack")})
	requireDomainError(t, err, "FORBIDDEN")

	err = svc.Delete(ctx, "owner-b", sc.ID)
	requireDomainError(t, err, "FORBIDDEN")

	_, err = svc.Get(ctx, "owner-a", "no-such-case")
	requireDomainError(t, err, "NOT_FOUND")

	// owner-a is unaffected by the rejected attempts
	got, err := svc.Get(ctx, "owner-a", sc.ID)
	require.NoError(t, err)
	require.Equal(t, sc.Topic, got.Topic)
}

func TestListReturnsOwnCasesNewestFirst(t *testing.T) {
	repo := newFakeCaseRepo()
	svc := service.NewCaseService(repo, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, "owner-a", validCaseInput())
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := svc.Create(ctx, "owner-a", validCaseInput())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-b", validCaseInput())
	require.NoError(t, err)

	cases, err := svc.List(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	require.Equal(t, second.ID, cases[0].ID)
	require.Equal(t, first.ID, cases[1].ID)
}

func TestDeleteRemovesCase(t *testing.T) {
	svc := service.NewCaseService(newFakeCaseRepo(), nil)
	ctx := context.Background()

	sc, err := svc.Create(ctx, "owner-a", validCaseInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "owner-a", sc.ID))

	_, err = svc.Get(ctx, "owner-a", sc.ID)
	requireDomainError(t, err, "NOT_FOUND")

	err = svc.Delete(ctx, "owner-a", sc.ID)
	requireDomainError(t, err, "NOT_FOUND")
}

func TestCaseLifecycleEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var mu sync.Mutex
	var seen []events.EventType
	record := func(_ context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, event.Type)
		return nil
	}
	dispatcher.Subscribe(events.EventCaseCreated, record)
	dispatcher.Subscribe(events.EventCaseUpdated, record)
	dispatcher.Subscribe(events.EventCaseStatusChanged, record)
	dispatcher.Subscribe(events.EventCaseDeleted, record)

	svc := service.NewCaseService(newFakeCaseRepo(), dispatcher)
	ctx := context.Background()

	sc, err := svc.Create(ctx, "owner-a", validCaseInput())
	require.NoError(t, err)
	_, err = svc.Update(ctx, "owner-a", sc.ID, service.CaseUpdateInput{Topic: strPtr("Renamed")})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "owner-a", sc.ID, service.CaseUpdateInput{Status: statusPtr(domain.CaseStatusClosed)})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "owner-a", sc.ID))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []events.EventType{
		events.EventCaseCreated,
		events.EventCaseUpdated,
		events.EventCaseStatusChanged,
		events.EventCaseDeleted,
	}, seen)
}
