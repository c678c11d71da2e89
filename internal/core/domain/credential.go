package domain

import "time"

// Credential is the token bundle stored for one provider on a user record.
type Credential struct {
	Provider       Provider   `json:"provider"`
	AccessToken    string     `json:"-"`
	RefreshToken   *string    `json:"-"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	ProviderUserID string     `json:"providerUserId"`
}

// IsExpired reports whether the credential is past its expiry at now.
// A nil expiry never expires.
func (c Credential) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !c.ExpiresAt.After(now)
}

// CanRefresh reports whether a provider refresh token is available.
func (c Credential) CanRefresh() bool {
	return c.RefreshToken != nil && *c.RefreshToken != ""
}

// CredentialStatus is the connection summary shown to the dashboard.
type CredentialStatus struct {
	Provider       Provider   `json:"provider"`
	Connected      bool       `json:"connected"`
	Expired        bool       `json:"expired"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	ProviderUserID string     `json:"providerUserId,omitempty"`
}

// TokenBundle is what an OAuth exchange yields before it is persisted.
type TokenBundle struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is in seconds; zero means unknown or non-expiring.
	ExpiresIn int64
}

// ExpiresAt computes the absolute expiry relative to now.
func (b TokenBundle) ExpiresAt(now time.Time) *time.Time {
	if b.ExpiresIn <= 0 {
		return nil
	}
	t := now.Add(time.Duration(b.ExpiresIn) * time.Second)
	return &t
}
