package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ebolarium/baplikasyon/internal/auth"
	"github.com/ebolarium/baplikasyon/internal/config"
	"github.com/ebolarium/baplikasyon/internal/domain"
	"github.com/ebolarium/baplikasyon/internal/mail"
	"github.com/ebolarium/baplikasyon/internal/repository"
	apperrors "github.com/ebolarium/baplikasyon/pkg/util"
)

var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// AuthService coordinates registration, login, settings and the password
// reset flow.
type AuthService struct {
	users    repository.UserRepository
	mailer   mail.Mailer
	tokenMgr *auth.TokenManager
	logger   *zap.Logger
	authCfg  config.AuthConfig
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Mailer   mail.Mailer
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		mailer:   deps.Mailer,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		logger:   deps.Logger,
		authCfg:  cfg,
	}
}

// RegisterInput describes a registration request.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	InviteCode string
}

// SettingsInput carries the mutable profile fields; nil leaves a field
// untouched.
type SettingsInput struct {
	Name                 *string
	ReceiveDailyReports  *bool
	ReceiveWeeklyReports *bool
}

// Register creates a new account and issues a session token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	details := map[string]any{}
	if name == "" {
		details["name"] = "required"
	}
	if email == "" {
		details["email"] = "required"
	} else if !emailPattern.MatchString(email) {
		details["email"] = "invalid format"
	}
	if len(input.Password) < s.authCfg.MinPasswordLength {
		details["password"] = fmt.Sprintf("must be at least %d characters", s.authCfg.MinPasswordLength)
	}
	if len(details) > 0 {
		return nil, "", time.Time{}, apperrors.NewValidationError("invalid registration payload", details)
	}

	if s.authCfg.InviteCode != "" && input.InviteCode != s.authCfg.InviteCode {
		return nil, "", time.Time{}, apperrors.NewForbidden("invalid invite code")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.authCfg.BcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Name, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates a user. The failure is identical for unknown emails
// and wrong passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}

	if err := s.verifyAndMigratePassword(ctx, user, password); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Name, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// verifyAndMigratePassword checks credentials. Accounts imported with a
// plaintext password get rehashed on their first successful login.
func (s *AuthService) verifyAndMigratePassword(ctx context.Context, user *domain.User, password string) error {
	if auth.IsBcryptHash(user.PasswordHash) {
		if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
			return apperrors.NewInvalidCredentials()
		}
		return nil
	}

	if user.PasswordHash != password {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(password, s.authCfg.BcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("migrated legacy plaintext password", zap.String("user_id", user.ID))
	return nil
}

// RequestPasswordReset stores a hashed reset token and mails the raw one.
// Unknown emails are a silent no-op so the acknowledgement stays generic.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}

	raw, digest := auth.NewResetToken()
	expiresAt := time.Now().Add(s.authCfg.ResetTTL())
	user.ResetTokenHash = &digest
	user.ResetTokenExpiresAt = &expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/%s", strings.TrimRight(s.authCfg.ResetURLBase, "/"), raw)
	msg := mail.Message{
		To:      user.Email,
		Subject: "Password Reset Request",
		TextBody: fmt.Sprintf(
			"Hello %s,\n\nA password reset was requested for your account. "+
				"Use the link below within %d minutes:\n\n%s\n\n"+
				"If you did not request this, you can ignore this email.\n",
			user.Name, int(s.authCfg.ResetTTL().Minutes()), resetURL),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		// The token is stored either way; surfacing the provider error
		// here would leak that the address exists.
		s.logger.Error("failed to send reset email", zap.String("user_id", user.ID), zap.Error(err))
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < s.authCfg.MinPasswordLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", s.authCfg.MinPasswordLength), nil)
	}

	user, err := s.users.GetByResetTokenHash(ctx, auth.HashResetToken(rawToken), time.Now())
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewInvalidResetToken()
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.authCfg.BcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	return s.users.Update(ctx, user)
}

// UpdateSettings applies profile and report-preference changes.
func (s *AuthService) UpdateSettings(ctx context.Context, userID string, input SettingsInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name must not be empty", nil)
		}
		user.Name = name
	}
	if input.ReceiveDailyReports != nil {
		user.ReceiveDailyReports = input.ReceiveDailyReports
	}
	if input.ReceiveWeeklyReports != nil {
		user.ReceiveWeeklyReports = input.ReceiveWeeklyReports
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
