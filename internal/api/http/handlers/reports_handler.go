package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ebolarium/baplikasyon/internal/auth"
	"github.com/ebolarium/baplikasyon/internal/service"
	apperrors "github.com/ebolarium/baplikasyon/pkg/util"
)

// ReportsHandler exposes aggregate report endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Summary handles GET /api/reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	summary, err := h.reports.Summary(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
