package domain

import "time"

// UserRole is the application level role of a user.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User represents a user of the application in the domain.
// The provider columns form the credential store: a provider is connected when its token
// and identity are both present.
type User struct {
	UserID         string   `json:"userID"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	PasswordHash   *string  `json:"-"`
	Role           UserRole `json:"role"`
	AuthProvider   Provider `json:"authProvider"`
	ProviderUserID *string  `json:"-"`

	FacebookToken       *string    `json:"-"`
	FacebookTokenExpiry *time.Time `json:"-"`
	FacebookID          *string    `json:"-"`

	LinkedInAccessToken  *string    `json:"-"`
	LinkedInRefreshToken *string    `json:"-"`
	LinkedInExpiresAt    *time.Time `json:"-"`
	LinkedInID           *string    `json:"-"`

	ResetTokenHash   *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (u *User) GetUserID() string { return u.UserID }
func (u *User) GetEmail() string  { return u.Email }
func (u *User) GetName() string   { return u.Name }

// Credential extracts the stored credential for a provider, or nil when disconnected.
func (u *User) Credential(provider Provider) *Credential {
	switch provider {
	case ProviderFacebook:
		if u.FacebookToken == nil || *u.FacebookToken == "" {
			return nil
		}
		return &Credential{
			Provider:       ProviderFacebook,
			AccessToken:    *u.FacebookToken,
			ExpiresAt:      u.FacebookTokenExpiry,
			ProviderUserID: deref(u.FacebookID),
		}
	case ProviderLinkedIn:
		if u.LinkedInAccessToken == nil || *u.LinkedInAccessToken == "" {
			return nil
		}
		return &Credential{
			Provider:       ProviderLinkedIn,
			AccessToken:    *u.LinkedInAccessToken,
			RefreshToken:   u.LinkedInRefreshToken,
			ExpiresAt:      u.LinkedInExpiresAt,
			ProviderUserID: deref(u.LinkedInID),
		}
	default:
		return nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
