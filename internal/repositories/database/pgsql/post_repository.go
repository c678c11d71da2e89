package pgsql

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/social_dashboard/internal/models"
	"github.com/SscSPs/social_dashboard/internal/utils/mapping"
	"github.com/SscSPs/social_dashboard/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPostRepository struct {
	BaseRepository
}

func newPgxPostRepository(pool *pgxpool.Pool) portsrepo.PostRepositoryFacade {
	return &PgxPostRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PostRepositoryFacade = (*PgxPostRepository)(nil)

const (
	insertPostQuery = `
		INSERT INTO posts (post_id, user_id, content, media_url, status, platform, platform_post_id, published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	selectPostFields = `post_id, user_id, content, media_url, status, platform, platform_post_id, published_at, created_at`
)

func (r *PgxPostRepository) SavePost(ctx context.Context, post domain.Post) error {
	m := mapping.ToModelPost(post)
	_, err := r.Pool.Exec(ctx, insertPostQuery,
		m.PostID,
		m.UserID,
		m.Content,
		m.MediaURL,
		m.Status,
		m.Platform,
		m.PlatformPostID,
		m.PublishedAt,
		m.CreatedAt,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: post %s", apperrors.ErrDuplicate, m.PostID)
		case pgForeignKeyViolation:
			return fmt.Errorf("user %s not found: %w", m.UserID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

func (r *PgxPostRepository) ListPostsByUser(ctx context.Context, userID string, platform *domain.Platform, limit int, nextToken *string) ([]domain.Post, *string, error) {
	limit = pagination.ClampLimit(limit)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + selectPostFields + ` FROM posts WHERE user_id = $1`)
	args := []any{userID}

	if platform != nil {
		args = append(args, string(*platform))
		fmt.Fprintf(&sb, " AND platform = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", err)
		}
		args = append(args, cursorTime, cursorID)
		fmt.Fprintf(&sb, " AND (published_at, post_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	// one extra row tells us whether another page exists
	args = append(args, limit+1)
	fmt.Fprintf(&sb, " ORDER BY published_at DESC, post_id DESC LIMIT $%d", len(args))

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list posts for user %s: %w", userID, err)
	}
	defer rows.Close()

	var ms []models.Post
	for rows.Next() {
		var m models.Post
		if err := rows.Scan(
			&m.PostID,
			&m.UserID,
			&m.Content,
			&m.MediaURL,
			&m.Status,
			&m.Platform,
			&m.PlatformPostID,
			&m.PublishedAt,
			&m.CreatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	var next *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.PublishedAt, last.PostID)
		next = &token
		ms = ms[:limit]
	}

	return mapping.ToDomainPostSlice(ms), next, nil
}
