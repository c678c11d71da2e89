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

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepository {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepository = (*PgxOrganizationRepository)(nil)

const (
	organizationReturnFields = `
		organization_id, user_id, name, category, description, website, location,
		size, employees, revenue, market_area, created_at, updated_at
	`
	findOrganizationByUserIDQuery = `SELECT ` + organizationReturnFields + ` FROM organizations WHERE user_id = $1`

	// organization_id and created_at survive a conflict; everything else is replaced.
	upsertOrganizationQuery = `
		INSERT INTO organizations (
			organization_id, user_id, name, category, description, website, location,
			size, employees, revenue, market_area, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			size = EXCLUDED.size,
			employees = EXCLUDED.employees,
			revenue = EXCLUDED.revenue,
			market_area = EXCLUDED.market_area,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + organizationReturnFields
)

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	var m models.Organization
	err := row.Scan(
		&m.OrganizationID,
		&m.UserID,
		&m.Name,
		&m.Category,
		&m.Description,
		&m.Website,
		&m.Location,
		&m.Size,
		&m.Employees,
		&m.Revenue,
		&m.MarketArea,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxOrganizationRepository) FindOrganizationByUserID(ctx context.Context, userID string) (*domain.Organization, error) {
	m, err := scanOrganization(r.Pool.QueryRow(ctx, findOrganizationByUserIDQuery, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization for user %s: %w", userID, err)
	}
	org := mapping.ToDomainOrganization(*m)
	return &org, nil
}

func (r *PgxOrganizationRepository) UpsertOrganization(ctx context.Context, org domain.Organization) (*domain.Organization, error) {
	in := mapping.ToModelOrganization(org)
	m, err := scanOrganization(r.Pool.QueryRow(ctx, upsertOrganizationQuery,
		in.OrganizationID,
		in.UserID,
		in.Name,
		in.Category,
		in.Description,
		in.Website,
		in.Location,
		in.Size,
		in.Employees,
		in.Revenue,
		in.MarketArea,
		in.CreatedAt,
		in.UpdatedAt,
	))
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, fmt.Errorf("user %s not found: %w", in.UserID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to upsert organization: %w", err)
	}
	out := mapping.ToDomainOrganization(*m)
	return &out, nil
}
