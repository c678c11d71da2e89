package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsproviders "github.com/SscSPs/social_dashboard/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
)

type captionService struct {
	BaseService
	generator portsproviders.CaptionGenerator
	orgRepo   portsrepo.OrganizationRepository
}

// NewCaptionService creates the caption service. A nil generator makes every call fail with 503.
func NewCaptionService(generator portsproviders.CaptionGenerator, orgRepo portsrepo.OrganizationRepository, opts ...Option) portssvc.CaptionSvc {
	return &captionService{BaseService: newBaseService(opts...), generator: generator, orgRepo: orgRepo}
}

var _ portssvc.CaptionSvc = (*captionService)(nil)

func (s *captionService) GenerateCaption(ctx context.Context, userID string, req dto.CaptionRequest) (string, error) {
	if s.generator == nil {
		return "", apperrors.NewServiceUnavailableError("Caption generation is not configured")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", apperrors.NewValidationError("prompt is required", "prompt")
	}

	var org *domain.Organization
	if req.UseOrganization {
		found, err := s.orgRepo.FindOrganizationByUserID(ctx, userID)
		switch {
		case err == nil:
			org = found
		case errors.Is(err, apperrors.ErrNotFound):
			s.LogDebug(ctx, "No organization profile for caption context", slog.String("user_id", userID))
		default:
			s.LogError(ctx, err, "Failed to load organization for caption", slog.String("user_id", userID))
			return "", err
		}
	}

	caption, err := s.generator.Generate(ctx, buildCaptionPrompt(req, org))
	if err != nil {
		s.LogError(ctx, err, "Caption generation failed", slog.String("user_id", userID))
		return "", err
	}
	return caption, nil
}

func buildCaptionPrompt(req dto.CaptionRequest, org *domain.Organization) string {
	var b strings.Builder
	b.WriteString("Write an engaging social media post caption.\n")
	if tone := strings.TrimSpace(req.Tone); tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", tone)
	}
	if org != nil {
		b.WriteString("The post is published on behalf of this organization:\n")
		writeField(&b, "Name", org.Name)
		writeField(&b, "Category", org.Category)
		writeField(&b, "Description", org.Description)
		writeField(&b, "Website", org.Website)
		writeField(&b, "Location", org.Location)
		writeField(&b, "Size", org.Size)
		if org.Employees != nil {
			writeField(&b, "Employees", fmt.Sprint(*org.Employees))
		}
		writeField(&b, "Revenue", org.Revenue)
		writeField(&b, "Market area", org.MarketArea)
	}
	fmt.Fprintf(&b, "Topic: %s\n", strings.TrimSpace(req.Prompt))
	b.WriteString("Reply with the caption text only.")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value = strings.TrimSpace(value); value != "" {
		fmt.Fprintf(b, "- %s: %s\n", label, value)
	}
}
