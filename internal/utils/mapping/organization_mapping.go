package mapping

import (
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/models"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToModelOrganization converts a domain Organization to a model Organization
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID: d.OrganizationID,
		UserID:         d.UserID,
		Name:           d.Name,
		Category:       optional(d.Category),
		Description:    optional(d.Description),
		Website:        optional(d.Website),
		Location:       optional(d.Location),
		Size:           optional(d.Size),
		Employees:      d.Employees,
		Revenue:        optional(d.Revenue),
		MarketArea:     optional(d.MarketArea),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Name:           m.Name,
		Category:       value(m.Category),
		Description:    value(m.Description),
		Website:        value(m.Website),
		Location:       value(m.Location),
		Size:           value(m.Size),
		Employees:      m.Employees,
		Revenue:        value(m.Revenue),
		MarketArea:     value(m.MarketArea),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
