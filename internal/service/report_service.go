package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ebolarium/baplikasyon/internal/cache"
	"github.com/ebolarium/baplikasyon/internal/domain"
	"github.com/ebolarium/baplikasyon/internal/export"
	"github.com/ebolarium/baplikasyon/internal/mail"
	"github.com/ebolarium/baplikasyon/internal/report"
	"github.com/ebolarium/baplikasyon/internal/repository"
	apperrors "github.com/ebolarium/baplikasyon/pkg/util"
)

// ErrNoCases signals that an export was requested for a user without any
// cases in scope. It is the "nothing to export" outcome, not a failure.
var ErrNoCases = apperrors.NewDomainError("NOT_FOUND", "no support cases to export", 404, nil)

// ReportService aggregates cases into summaries and delivers spreadsheet
// exports interactively and on a schedule.
type ReportService struct {
	cases  repository.CaseRepository
	users  repository.UserRepository
	mailer mail.Mailer
	cache  *cache.ReportCache
	logger *zap.Logger
	loc    *time.Location
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	CaseRepo repository.CaseRepository
	UserRepo repository.UserRepository
	Mailer   mail.Mailer
	Cache    *cache.ReportCache
	Logger   *zap.Logger
	Location *time.Location
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		cases:  deps.CaseRepo,
		users:  deps.UserRepo,
		mailer: deps.Mailer,
		cache:  deps.Cache,
		logger: deps.Logger,
		loc:    loc,
	}
}

// Summary computes the caller's aggregate report, consulting the cache
// first.
func (s *ReportService) Summary(ctx context.Context, userID string) (report.Summary, error) {
	if payload, ok := s.cache.GetSummary(ctx, userID); ok {
		var cached report.Summary
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	cases, err := s.cases.ListByOwner(ctx, userID, nil)
	if err != nil {
		return report.Summary{}, err
	}

	summary := report.Summarize(cases, time.Now(), s.loc)
	if payload, err := json.Marshal(summary); err == nil {
		s.cache.SetSummary(ctx, userID, payload)
	}
	return summary, nil
}

// ExportWorkbook renders all of the caller's cases to xlsx bytes for
// direct download.
func (s *ReportService) ExportWorkbook(ctx context.Context, userID string) ([]byte, string, error) {
	cases, err := s.cases.ListByOwner(ctx, userID, nil)
	if err != nil {
		return nil, "", err
	}
	if len(cases) == 0 {
		return nil, "", ErrNoCases
	}

	wb, err := export.BuildWorkbook(cases, s.loc)
	if err != nil {
		return nil, "", err
	}
	defer wb.Close()

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), export.Filename(time.Now(), s.loc), nil
}

// DeliverByEmail mails the caller their full case export as an
// attachment.
func (s *ReportService) DeliverByEmail(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	cases, err := s.cases.ListByOwner(ctx, userID, nil)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return ErrNoCases
	}

	subject := fmt.Sprintf("Support Case Report - %s", time.Now().In(s.loc).Format("2006-01-02"))
	return s.sendReport(ctx, user, cases, subject)
}

// RunScheduled generates and emails the windowed report for every
// subscribed user. One user's failure is logged and skipped so the rest
// of the batch still goes out.
func (s *ReportService) RunScheduled(ctx context.Context, kind domain.ReportKind) error {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID), zap.String("kind", string(kind)))

	users, err := s.users.ListReportSubscribers(ctx, kind)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		log.Info("no report subscribers")
		return nil
	}
	log.Info("starting scheduled report run", zap.Int("subscribers", len(users)))

	since := s.windowStart(kind, time.Now())
	sent := 0
	for i := range users {
		user := &users[i]
		if err := s.sendScheduledReport(ctx, user, kind, since); err != nil {
			if err == ErrNoCases {
				continue
			}
			log.Error("scheduled report failed for user",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}
		sent++
	}

	log.Info("scheduled report run completed", zap.Int("sent", sent))
	return nil
}

func (s *ReportService) sendScheduledReport(ctx context.Context, user *domain.User, kind domain.ReportKind, since time.Time) error {
	cases, err := s.cases.ListByOwner(ctx, user.ID, &since)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return ErrNoCases
	}

	label := "Daily"
	if kind == domain.ReportKindWeekly {
		label = "Weekly"
	}
	subject := fmt.Sprintf("%s Support Case Report - %s", label, time.Now().In(s.loc).Format("2006-01-02"))
	return s.sendReport(ctx, user, cases, subject)
}

// sendReport writes the workbook to a temp file, mails it, and removes
// the file whether or not the send succeeded.
func (s *ReportService) sendReport(ctx context.Context, user *domain.User, cases []domain.SupportCase, subject string) error {
	wb, err := export.BuildWorkbook(cases, s.loc)
	if err != nil {
		return err
	}
	defer wb.Close()

	filename := export.Filename(time.Now(), s.loc)
	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+"-"+filename)
	if err := wb.SaveAs(tmpPath); err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove temp export file",
				zap.String("path", tmpPath), zap.Error(err))
		}
	}()

	msg := mail.Message{
		To:      user.Email,
		Subject: subject,
		TextBody: fmt.Sprintf(
			"Hello %s,\n\nYour support case report is attached. "+
				"It contains %d case(s).\n\nBest regards,\nBaplikasyon Support\n",
			user.Name, len(cases)),
		AttachmentPath: tmpPath,
		AttachmentName: filename,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("deliver report to %s: %w", user.Email, err)
	}
	return nil
}

// windowStart returns the opened-at lower bound for a scheduled report:
// local midnight for daily runs, a trailing seven days for weekly ones.
func (s *ReportService) windowStart(kind domain.ReportKind, now time.Time) time.Time {
	now = now.In(s.loc)
	if kind == domain.ReportKindWeekly {
		return now.AddDate(0, 0, -7)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}
