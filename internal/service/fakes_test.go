package service_test

import (
	"context"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ebolarium/baplikasyon/internal/domain"
	"github.com/ebolarium/baplikasyon/internal/mail"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByResetTokenHash(_ context.Context, digest string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ResetTokenHash != nil && *user.ResetTokenHash == digest &&
			user.ResetTokenExpiresAt != nil && user.ResetTokenExpiresAt.After(now) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListReportSubscribers(_ context.Context, kind domain.ReportKind) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		if user.WantsReport(kind) {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// fakeCaseRepo is an in-memory repository.CaseRepository.
type fakeCaseRepo struct {
	mu    sync.Mutex
	cases map[string]*domain.SupportCase
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: make(map[string]*domain.SupportCase)}
}

func (r *fakeCaseRepo) Create(_ context.Context, sc *domain.SupportCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc.ID = uuid.NewString()
	sc.CreatedAt = time.Now()
	sc.UpdatedAt = sc.CreatedAt
	clone := *sc
	r.cases[sc.ID] = &clone
	return nil
}

func (r *fakeCaseRepo) Update(_ context.Context, sc *domain.SupportCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cases[sc.ID]; !ok {
		return pgx.ErrNoRows
	}
	sc.UpdatedAt = time.Now()
	clone := *sc
	r.cases[sc.ID] = &clone
	return nil
}

func (r *fakeCaseRepo) GetByID(_ context.Context, id string) (*domain.SupportCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc, ok := r.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *sc
	return &clone, nil
}

func (r *fakeCaseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cases[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.cases, id)
	return nil
}

func (r *fakeCaseRepo) ListByOwner(_ context.Context, ownerID string, openedSince *time.Time) ([]domain.SupportCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.SupportCase
	for _, sc := range r.cases {
		if sc.OwnerID != ownerID {
			continue
		}
		if openedSince != nil && sc.OpenedAt.Before(*openedSince) {
			continue
		}
		result = append(result, *sc)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].OpenedAt.After(result[j].OpenedAt)
	})
	return result, nil
}

// fakeMailer records outbound mail and can be told to fail per recipient.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []mail.Message
	failFor  map[string]error
	sawFiles map[string]bool // attachment path -> existed at send time
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]error), sawFiles: make(map[string]bool)}
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.AttachmentPath != "" {
		_, err := os.Stat(msg.AttachmentPath)
		m.sawFiles[msg.AttachmentPath] = err == nil
	}
	if err, ok := m.failFor[msg.To]; ok {
		return err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *fakeMailer) lastMessage() mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

func (m *fakeMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, msg := range m.sent {
		out = append(out, msg.To)
	}
	return out
}
