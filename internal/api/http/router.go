package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ebolarium/baplikasyon/internal/api/http/handlers"
	"github.com/ebolarium/baplikasyon/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Cases          *handlers.CasesHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Health)

	api.Post("/auth", cfg.Auth.Login)
	api.Get("/auth", cfg.AuthMiddleware.Handle, cfg.Auth.Current)
	api.Post("/auth/forgot-password", cfg.Auth.ForgotPassword)
	api.Post("/auth/reset-password/:token", cfg.Auth.ResetPassword)

	api.Post("/users", cfg.Users.Register)
	api.Put("/users/me/settings", cfg.AuthMiddleware.Handle, cfg.Users.UpdateSettings)

	cases := api.Group("/cases", cfg.AuthMiddleware.Handle)
	cases.Get("/", cfg.Cases.List)
	cases.Post("/", cfg.Cases.Create)
	cases.Get("/export", cfg.Cases.Export)
	cases.Post("/export-email", cfg.Cases.ExportEmail)
	cases.Get("/:id", cfg.Cases.Get)
	cases.Put("/:id", cfg.Cases.Update)
	cases.Delete("/:id", cfg.Cases.Delete)

	api.Get("/reports/summary", cfg.AuthMiddleware.Handle, cfg.Reports.Summary)
}
