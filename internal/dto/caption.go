package dto

// CaptionRequest is the body of POST /api/ai/caption.
type CaptionRequest struct {
	Prompt          string `json:"prompt" binding:"required,max=2000"`
	Tone            string `json:"tone" binding:"max=50"`
	UseOrganization bool   `json:"useOrganization"`
}

type CaptionResponse struct {
	Caption string `json:"caption"`
}
