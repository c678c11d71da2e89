package domain

import "time"

// OAuthState is the one-time CSRF envelope issued at the start of a provider connect flow.
// It is keyed by the random State value, not by user, since the initiator may be anonymous.
type OAuthState struct {
	State       string    `json:"state"`
	Provider    Provider  `json:"provider"`
	UserID      string    `json:"userId,omitempty"`
	RedirectURI string    `json:"redirectUri"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CallbackParams are the query parameters a provider sends back to the redirect URI.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// ConnectResult describes a completed provider connection.
type ConnectResult struct {
	Provider       Provider
	UserID         string
	ProviderUserID string
	ExpiresAt      *time.Time
	Reconnected    bool
}
