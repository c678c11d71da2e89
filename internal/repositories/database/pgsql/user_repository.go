package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/social_dashboard/internal/models"
	"github.com/SscSPs/social_dashboard/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const (
	selectUserFields = `
		user_id, email, name, password_hash, role, auth_provider, provider_user_id,
		facebook_token, facebook_token_expiry, facebook_id,
		linkedin_access_token, linkedin_refresh_token, linkedin_expires_at, linkedin_id,
		reset_token_hash, reset_token_expiry,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at
	`

	insertUserQuery = `
		INSERT INTO users (
			user_id, email, name, password_hash, role, auth_provider, provider_user_id,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	findUserByIDQuery = `SELECT ` + selectUserFields + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL`

	findUserByEmailQuery = `SELECT ` + selectUserFields + ` FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`

	findUserByProviderQuery = `
		SELECT ` + selectUserFields + ` FROM users
		WHERE auth_provider = $1 AND provider_user_id = $2 AND deleted_at IS NULL
	`

	findUserByResetTokenQuery = `
		SELECT ` + selectUserFields + ` FROM users
		WHERE reset_token_hash = $1 AND reset_token_expiry > $2 AND deleted_at IS NULL
	`

	updateUserQuery = `
		UPDATE users
		SET name = $1, role = $2, auth_provider = $3, provider_user_id = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $7 AND deleted_at IS NULL
	`

	updatePasswordQuery = `
		UPDATE users
		SET password_hash = $1, reset_token_hash = NULL, reset_token_expiry = NULL,
		    last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $3 AND deleted_at IS NULL
	`

	setResetTokenQuery = `
		UPDATE users SET reset_token_hash = $1, reset_token_expiry = $2
		WHERE user_id = $3 AND deleted_at IS NULL
	`

	updateFacebookCredentialQuery = `
		UPDATE users
		SET facebook_token = $1, facebook_token_expiry = $2, facebook_id = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $5 AND deleted_at IS NULL
	`

	updateLinkedInCredentialQuery = `
		UPDATE users
		SET linkedin_access_token = $1, linkedin_refresh_token = $2, linkedin_expires_at = $3, linkedin_id = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $6 AND deleted_at IS NULL
	`

	clearFacebookCredentialQuery = `
		UPDATE users
		SET facebook_token = NULL, facebook_token_expiry = NULL, facebook_id = NULL,
		    last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $2 AND deleted_at IS NULL
	`

	clearLinkedInCredentialQuery = `
		UPDATE users
		SET linkedin_access_token = NULL, linkedin_refresh_token = NULL, linkedin_expires_at = NULL, linkedin_id = NULL,
		    last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $2 AND deleted_at IS NULL
	`
)

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Name,
		&m.PasswordHash,
		&m.Role,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.FacebookToken,
		&m.FacebookTokenExpiry,
		&m.FacebookID,
		&m.LinkedInAccessToken,
		&m.LinkedInRefreshToken,
		&m.LinkedInExpiresAt,
		&m.LinkedInID,
		&m.ResetTokenHash,
		&m.ResetTokenExpiry,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	m, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.Pool.Exec(ctx, insertUserQuery,
		m.UserID,
		m.Email,
		m.Name,
		m.PasswordHash,
		m.Role,
		m.AuthProvider,
		m.ProviderUserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := r.findOne(ctx, findUserByIDQuery, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, err
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.findOne(ctx, findUserByEmailQuery, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, err
}

func (r *PgxUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	user, err := r.findOne(ctx, findUserByProviderQuery, authProvider, providerUserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user by provider %s: %w", authProvider, err)
	}
	return user, err
}

func (r *PgxUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	user, err := r.findOne(ctx, findUserByResetTokenQuery, tokenHash, now)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user by reset token: %w", err)
	}
	return user, err
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	cmdTag, err := r.Pool.Exec(ctx, updateUserQuery,
		m.Name,
		m.Role,
		m.AuthProvider,
		m.ProviderUserID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.UserID,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: provider identity already linked to another user", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, updatePasswordQuery, passwordHash, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, setResetTokenQuery, tokenHash, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateCredential(ctx context.Context, userID string, cred domain.Credential, updatedAt time.Time) error {
	var (
		query string
		args  []any
	)
	switch cred.Provider {
	case domain.ProviderFacebook:
		query = updateFacebookCredentialQuery
		args = []any{cred.AccessToken, cred.ExpiresAt, cred.ProviderUserID, updatedAt, userID}
	case domain.ProviderLinkedIn:
		query = updateLinkedInCredentialQuery
		args = []any{cred.AccessToken, cred.RefreshToken, cred.ExpiresAt, cred.ProviderUserID, updatedAt, userID}
	default:
		return fmt.Errorf("%w: unsupported credential provider %q", apperrors.ErrValidation, cred.Provider)
	}

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to store %s credential: %w", cred.Provider, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearCredential(ctx context.Context, userID string, provider domain.Provider, updatedAt time.Time) error {
	var query string
	switch provider {
	case domain.ProviderFacebook:
		query = clearFacebookCredentialQuery
	case domain.ProviderLinkedIn:
		query = clearLinkedInCredentialQuery
	default:
		return fmt.Errorf("%w: unsupported credential provider %q", apperrors.ErrValidation, provider)
	}

	cmdTag, err := r.Pool.Exec(ctx, query, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to clear %s credential: %w", provider, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
