package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/google/uuid"
)

// authService opens, rotates and closes application sessions.
type authService struct {
	BaseService
	users           portssvc.UserSvcFacade
	userRepo        portsrepo.UserRepositoryFacade
	refreshRepo     portsrepo.RefreshTokenRepository
	tokens          portssvc.TokenSvcFacade
	mailer          portssvc.Mailer
	frontendBaseURL string
	resetTTL        time.Duration
}

// AuthServiceConfig holds the collaborators of the auth service.
type AuthServiceConfig struct {
	Users           portssvc.UserSvcFacade
	UserRepo        portsrepo.UserRepositoryFacade
	RefreshRepo     portsrepo.RefreshTokenRepository
	Tokens          portssvc.TokenSvcFacade
	Mailer          portssvc.Mailer
	FrontendBaseURL string
	ResetTTL        time.Duration
}

func NewAuthService(c AuthServiceConfig, opts ...Option) portssvc.AuthSvc {
	if c.ResetTTL <= 0 {
		c.ResetTTL = time.Hour
	}
	return &authService{
		BaseService:     newBaseService(opts...),
		users:           c.Users,
		userRepo:        c.UserRepo,
		refreshRepo:     c.RefreshRepo,
		tokens:          c.Tokens,
		mailer:          c.Mailer,
		frontendBaseURL: strings.TrimRight(c.FrontendBaseURL, "/"),
		resetTTL:        c.ResetTTL,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Session, error) {
	user, err := s.users.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.IssueSession(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.users.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.IssueSession(ctx, user)
}

func (s *authService) IssueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	accessToken, accessExp, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	rawRefresh, refreshExp, err := s.tokens.GenerateRefreshToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	record := domain.RefreshToken{
		ID:        uuid.NewString(),
		TokenHash: utils.HashRefreshToken(rawRefresh),
		UserID:    user.UserID,
		ExpiresAt: refreshExp,
		CreatedAt: s.Now(),
	}
	if err := s.refreshRepo.SaveRefreshToken(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.Session{
		User:                  user,
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          rawRefresh,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

// Refresh deletes the presented token before issuing a new pair, so each refresh token works once.
func (s *authService) Refresh(ctx context.Context, rawRefreshToken string) (*domain.Session, error) {
	if rawRefreshToken == "" {
		return nil, apperrors.NewUnauthorizedError("Refresh token required")
	}
	hash := utils.HashRefreshToken(rawRefreshToken)

	stored, err := s.refreshRepo.FindRefreshTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		s.LogError(ctx, err, "Failed to look up refresh token")
		return nil, err
	}

	if err := s.refreshRepo.DeleteRefreshTokenByHash(ctx, hash); err != nil {
		s.LogError(ctx, err, "Failed to delete refresh token", slog.String("user_id", stored.UserID))
		return nil, err
	}

	if stored.IsExpired(s.Now()) {
		s.LogDebug(ctx, "Expired refresh token presented", slog.String("user_id", stored.UserID))
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "Refresh token expired", apperrors.ErrRefreshTokenExpired)
	}

	user, err := s.users.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, err
	}
	return s.IssueSession(ctx, user)
}

func (s *authService) Logout(ctx context.Context, rawRefreshToken string) error {
	if rawRefreshToken == "" {
		return nil
	}
	if err := s.refreshRepo.DeleteRefreshTokenByHash(ctx, utils.HashRefreshToken(rawRefreshToken)); err != nil {
		s.LogError(ctx, err, "Failed to delete refresh token on logout")
		return err
	}
	return nil
}

// ForgotPassword never reveals whether the email exists. Mail delivery failures are logged only.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return err
	}

	raw, err := utils.GenerateSecureRandomString(utils.ResetTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.userRepo.SetResetToken(ctx, user.UserID, utils.HashToken(raw), s.Now().Add(s.resetTTL)); err != nil {
		s.LogError(ctx, err, "Failed to store reset token", slog.String("user_id", user.UserID))
		return err
	}

	link := s.frontendBaseURL + "/reset-password?token=" + url.QueryEscape(raw)
	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, link); err != nil {
			s.LogError(ctx, err, "Failed to send password reset email", slog.String("user_id", user.UserID))
		}
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, rawResetToken, newPassword string) error {
	if len(newPassword) < utils.MinPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters", utils.MinPasswordLength), "password")
	}
	now := s.Now()

	user, err := s.userRepo.FindUserByResetTokenHash(ctx, utils.HashToken(rawResetToken), now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewBadRequestError("Invalid or expired reset token")
		}
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.UserID, hash, now); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("user_id", user.UserID))
		return err
	}

	revoked, err := s.refreshRepo.DeleteRefreshTokensByUserID(ctx, user.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to revoke sessions after password reset", slog.String("user_id", user.UserID))
		return err
	}
	s.LogInfo(ctx, "Password reset", slog.String("user_id", user.UserID), slog.Int64("revoked_sessions", revoked))
	return nil
}
