package mapping

import (
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:               d.UserID,
		Email:                d.Email,
		Name:                 d.Name,
		PasswordHash:         d.PasswordHash,
		Role:                 string(d.Role),
		AuthProvider:         string(d.AuthProvider),
		ProviderUserID:       d.ProviderUserID,
		FacebookToken:        d.FacebookToken,
		FacebookTokenExpiry:  d.FacebookTokenExpiry,
		FacebookID:           d.FacebookID,
		LinkedInAccessToken:  d.LinkedInAccessToken,
		LinkedInRefreshToken: d.LinkedInRefreshToken,
		LinkedInExpiresAt:    d.LinkedInExpiresAt,
		LinkedInID:           d.LinkedInID,
		ResetTokenHash:       d.ResetTokenHash,
		ResetTokenExpiry:     d.ResetTokenExpiry,
		AuditFields:          ToModelAuditFields(d.AuditFields),
		DeletedAt:            d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:               m.UserID,
		Email:                m.Email,
		Name:                 m.Name,
		PasswordHash:         m.PasswordHash,
		Role:                 domain.UserRole(m.Role),
		AuthProvider:         domain.Provider(m.AuthProvider),
		ProviderUserID:       m.ProviderUserID,
		FacebookToken:        m.FacebookToken,
		FacebookTokenExpiry:  m.FacebookTokenExpiry,
		FacebookID:           m.FacebookID,
		LinkedInAccessToken:  m.LinkedInAccessToken,
		LinkedInRefreshToken: m.LinkedInRefreshToken,
		LinkedInExpiresAt:    m.LinkedInExpiresAt,
		LinkedInID:           m.LinkedInID,
		ResetTokenHash:       m.ResetTokenHash,
		ResetTokenExpiry:     m.ResetTokenExpiry,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
		DeletedAt:            m.DeletedAt,
	}
}
