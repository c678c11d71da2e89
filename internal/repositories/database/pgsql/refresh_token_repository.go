package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/social_dashboard/internal/models"
	"github.com/SscSPs/social_dashboard/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRefreshTokenRepository struct {
	BaseRepository
}

func newPgxRefreshTokenRepository(pool *pgxpool.Pool) portsrepo.RefreshTokenRepository {
	return &PgxRefreshTokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RefreshTokenRepository = (*PgxRefreshTokenRepository)(nil)

const (
	insertRefreshTokenQuery = `
		INSERT INTO refresh_tokens (refresh_token_id, token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	findRefreshTokenByHashQuery = `
		SELECT refresh_token_id, token_hash, user_id, expires_at, created_at
		FROM refresh_tokens WHERE token_hash = $1
	`
	deleteRefreshTokenByHashQuery    = `DELETE FROM refresh_tokens WHERE token_hash = $1`
	deleteRefreshTokensByUserIDQuery = `DELETE FROM refresh_tokens WHERE user_id = $1`
)

func (r *PgxRefreshTokenRepository) SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	m := mapping.ToModelRefreshToken(token)
	_, err := r.Pool.Exec(ctx, insertRefreshTokenQuery, m.RefreshTokenID, m.TokenHash, m.UserID, m.ExpiresAt, m.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: refresh token collision", apperrors.ErrDuplicate)
		case pgForeignKeyViolation:
			return fmt.Errorf("user %s not found: %w", m.UserID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	var m models.RefreshToken
	err := r.Pool.QueryRow(ctx, findRefreshTokenByHashQuery, tokenHash).Scan(
		&m.RefreshTokenID,
		&m.TokenHash,
		&m.UserID,
		&m.ExpiresAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	token := mapping.ToDomainRefreshToken(m)
	return &token, nil
}

func (r *PgxRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	if _, err := r.Pool.Exec(ctx, deleteRefreshTokenByHashQuery, tokenHash); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID string) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, deleteRefreshTokensByUserIDQuery, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete refresh tokens for user %s: %w", userID, err)
	}
	return cmdTag.RowsAffected(), nil
}
