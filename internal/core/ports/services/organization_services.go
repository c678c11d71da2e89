package services

import (
	"context"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/dto"
)

// OrganizationSvc manages the caller's organization profile.
type OrganizationSvc interface {
	GetOrganization(ctx context.Context, userID string) (*domain.Organization, error)
	UpsertOrganization(ctx context.Context, userID string, req dto.UpsertOrganizationRequest) (*domain.Organization, error)
}

// CaptionSvc generates post captions with the language model.
type CaptionSvc interface {
	GenerateCaption(ctx context.Context, userID string, req dto.CaptionRequest) (string, error)
}
