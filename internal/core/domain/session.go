package domain

import "time"

// Session is a freshly issued access/refresh token pair. The raw refresh token
// is only ever held here; storage keeps its hash.
type Session struct {
	User                  *User
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// GoogleUserInfo is the subset of the Google userinfo response used for sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
