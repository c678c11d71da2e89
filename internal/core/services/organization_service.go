package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/google/uuid"
)

type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepository
}

func NewOrganizationService(orgRepo portsrepo.OrganizationRepository, opts ...Option) portssvc.OrganizationSvc {
	return &organizationService{BaseService: newBaseService(opts...), orgRepo: orgRepo}
}

var _ portssvc.OrganizationSvc = (*organizationService)(nil)

func (s *organizationService) GetOrganization(ctx context.Context, userID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load organization", slog.String("user_id", userID))
		}
		return nil, err
	}
	return org, nil
}

// UpsertOrganization replaces every field; the id and creation time survive through the upsert.
func (s *organizationService) UpsertOrganization(ctx context.Context, userID string, req dto.UpsertOrganizationRequest) (*domain.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("organization name is required", "name")
	}
	now := s.Now()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		UserID:         userID,
		Name:           name,
		Category:       strings.TrimSpace(req.Category),
		Description:    strings.TrimSpace(req.Description),
		Website:        strings.TrimSpace(req.Website),
		Location:       strings.TrimSpace(req.Location),
		Size:           strings.TrimSpace(req.Size),
		Employees:      req.Employees,
		Revenue:        strings.TrimSpace(req.Revenue),
		MarketArea:     strings.TrimSpace(req.MarketArea),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	saved, err := s.orgRepo.UpsertOrganization(ctx, org)
	if err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("user_id", userID))
		return nil, err
	}
	return saved, nil
}
