package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ebolarium/baplikasyon/internal/api/dto"
	"github.com/ebolarium/baplikasyon/internal/auth"
	"github.com/ebolarium/baplikasyon/internal/service"
	apperrors "github.com/ebolarium/baplikasyon/pkg/util"
)

// UsersHandler exposes registration and settings endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.FromUser(user),
	})
}

// UpdateSettings handles PUT /api/users/me/settings.
func (h *UsersHandler) UpdateSettings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.UpdateSettings(c.UserContext(), principal.User.ID, service.SettingsInput{
		Name:                 req.Name,
		ReceiveDailyReports:  req.ReceiveDailyReports,
		ReceiveWeeklyReports: req.ReceiveWeeklyReports,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromUser(user))
}
