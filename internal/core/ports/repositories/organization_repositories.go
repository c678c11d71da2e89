package repositories

import (
	"context"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
)

// OrganizationRepository persists the single organization profile of a user.
type OrganizationRepository interface {
	// FindOrganizationByUserID returns apperrors.ErrNotFound when the user has no profile.
	FindOrganizationByUserID(ctx context.Context, userID string) (*domain.Organization, error)

	// UpsertOrganization creates or replaces the user's profile.
	UpsertOrganization(ctx context.Context, org domain.Organization) (*domain.Organization, error)
}
