package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ebolarium/baplikasyon/internal/api/http"
	"github.com/ebolarium/baplikasyon/internal/api/http/handlers"
	"github.com/ebolarium/baplikasyon/internal/auth"
	"github.com/ebolarium/baplikasyon/internal/cache"
	"github.com/ebolarium/baplikasyon/internal/config"
	"github.com/ebolarium/baplikasyon/internal/events"
	"github.com/ebolarium/baplikasyon/internal/mail"
	"github.com/ebolarium/baplikasyon/internal/observability"
	"github.com/ebolarium/baplikasyon/internal/persistence"
	"github.com/ebolarium/baplikasyon/internal/repository"
	"github.com/ebolarium/baplikasyon/internal/scheduler"
	"github.com/ebolarium/baplikasyon/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)

	mailer := mail.NewSMTPMailer(cfg.Mail, logger)
	reportCache := cache.NewReportCache(redis, logger, 5*time.Minute)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: userRepo,
		Mailer:   mailer,
		Logger:   logger,
	})
	caseService := service.NewCaseService(caseRepo, dispatcher)
	reportService := service.NewReportService(service.ReportDependencies{
		CaseRepo: caseRepo,
		UserRepo: userRepo,
		Mailer:   mailer,
		Cache:    reportCache,
		Logger:   logger,
		Location: cfg.Reports.Location(),
	})

	notifier := service.NewNotifierService(dispatcher, reportCache, logger)
	notifier.RegisterHandlers()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:  logger,
		Metrics: metrics,
		Timeout: cfg.App.RequestTimeout(),
		DevMode: cfg.App.IsDevelopment(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.App.Env, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(authService),
		Cases:          handlers.NewCasesHandler(caseService, reportService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	var reportScheduler *scheduler.Scheduler
	if cfg.Reports.Enabled {
		reportScheduler, err = scheduler.New(cfg.Reports, reportService, logger)
		if err != nil {
			logger.Fatal("failed to init report scheduler", zap.Error(err))
		}
		reportScheduler.Start()
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if reportScheduler != nil {
		reportScheduler.Stop()
	}
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
