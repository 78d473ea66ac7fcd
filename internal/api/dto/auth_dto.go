package dto

import (
	"time"

	"github.com/ebolarium/baplikasyon/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	InviteCode string `json:"inviteCode"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest payload for reset requests.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload carrying the replacement password.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// SettingsRequest carries profile updates; absent fields stay unchanged.
type SettingsRequest struct {
	Name                 *string `json:"name"`
	ReceiveDailyReports  *bool   `json:"receiveDailyReports"`
	ReceiveWeeklyReports *bool   `json:"receiveWeeklyReports"`
}

// UserResponse is the public user projection; it never carries the
// password credential.
type UserResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	ReceiveDailyReports  bool      `json:"receiveDailyReports"`
	ReceiveWeeklyReports bool      `json:"receiveWeeklyReports"`
	CreatedAt            time.Time `json:"createdAt"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// MessageResponse wraps generic acknowledgements.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// FromUser maps the domain user to its public projection.
func FromUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		ReceiveDailyReports:  u.WantsReport(domain.ReportKindDaily),
		ReceiveWeeklyReports: u.WantsReport(domain.ReportKindWeekly),
		CreatedAt:            u.CreatedAt,
	}
}
