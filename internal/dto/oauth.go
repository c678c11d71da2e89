package dto

// AuthURLResponse carries the provider authorization URL when the client asked for JSON.
type AuthURLResponse struct {
	URL string `json:"url"`
}

// CallbackQuery is what a provider appends to the redirect URI.
type CallbackQuery struct {
	Code             string `form:"code"`
	State            string `form:"state"`
	Error            string `form:"error"`
	ErrorDescription string `form:"error_description"`
}

// ExchangeCodeRequest is the body of POST /api/auth/google/exchange-code.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
