// Package scheduler runs the periodic report jobs. It is a thin wrapper
// over robfig/cron: job selection and per-user error isolation live in
// the report service, so the timer library stays swappable.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ebolarium/baplikasyon/internal/config"
	"github.com/ebolarium/baplikasyon/internal/domain"
	"github.com/ebolarium/baplikasyon/internal/service"
)

const jobTimeout = 10 * time.Minute

// Scheduler owns the cron timers for scheduled reporting.
type Scheduler struct {
	cron    *cron.Cron
	reports *service.ReportService
	logger  *zap.Logger
}

// New builds the scheduler with the configured timezone and cron specs.
func New(cfg config.ReportsConfig, reports *service.ReportService, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(cfg.Location()))
	s := &Scheduler{cron: c, reports: reports, logger: logger}

	if _, err := c.AddFunc(cfg.DailySpec, s.jobFunc(domain.ReportKindDaily)); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(cfg.WeeklySpec, s.jobFunc(domain.ReportKindWeekly)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) jobFunc(kind domain.ReportKind) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := s.reports.RunScheduled(ctx, kind); err != nil {
			s.logger.Error("scheduled report run failed",
				zap.String("kind", string(kind)), zap.Error(err))
		}
	}
}

// Start launches the timers.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("report scheduler started")
}

// Stop halts the timers and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("report scheduler stopped")
}
