package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ebolarium/baplikasyon/internal/api/dto"
	"github.com/ebolarium/baplikasyon/internal/auth"
	"github.com/ebolarium/baplikasyon/internal/service"
	apperrors "github.com/ebolarium/baplikasyon/pkg/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CasesHandler exposes support case CRUD and export endpoints.
type CasesHandler struct {
	cases   *service.CaseService
	reports *service.ReportService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(caseService *service.CaseService, reportService *service.ReportService) *CasesHandler {
	return &CasesHandler{cases: caseService, reports: reportService}
}

// List handles GET /api/cases.
func (h *CasesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	cases, err := h.cases.List(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromCases(cases))
}

// Get handles GET /api/cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	sc, err := h.cases.Get(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromCase(sc))
}

// Create handles POST /api/cases.
func (h *CasesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sc, err := h.cases.Create(c.UserContext(), principal.User.ID, service.CaseCreateInput{
		CompanyName:   req.CompanyName,
		Person:        req.Person,
		Topic:         req.Topic,
		Details:       req.Details,
		Status:        req.Status,
		ContactMethod: req.ContactMethod,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromCase(sc))
}

// Update handles PUT /api/cases/:id.
func (h *CasesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.UpdateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sc, err := h.cases.Update(c.UserContext(), principal.User.ID, c.Params("id"), service.CaseUpdateInput{
		CompanyName:   req.CompanyName,
		Person:        req.Person,
		Topic:         req.Topic,
		Details:       req.Details,
		Status:        req.Status,
		ContactMethod: req.ContactMethod,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromCase(sc))
}

// Delete handles DELETE /api/cases/:id.
func (h *CasesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	if err := h.cases.Delete(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Msg: "support case removed"})
}

// Export handles GET /api/cases/export, streaming the xlsx file.
func (h *CasesHandler) Export(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	payload, filename, err := h.reports.ExportWorkbook(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(payload)
}

// ExportEmail handles POST /api/cases/export-email.
func (h *CasesHandler) ExportEmail(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	if err := h.reports.DeliverByEmail(c.UserContext(), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Msg: "export sent by email"})
}
