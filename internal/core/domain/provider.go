package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProviderIdentity is the stable account id returned by a provider's "who am I" endpoint.
type ProviderIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// FacebookPage is a page the user manages, with its page scoped token.
type FacebookPage struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PageAccessToken string `json:"-"`
}

// PostSummary is a provider post normalized for the dashboard.
// Counts default to zero when the provider does not report them.
type PostSummary struct {
	ID             string          `json:"id"`
	Text           string          `json:"text"`
	CreatedTime    time.Time       `json:"createdTime"`
	Permalink      string          `json:"permalink,omitempty"`
	ImageURL       *string         `json:"imageUrl,omitempty"`
	Impressions    int64           `json:"impressions"`
	Reactions      int64           `json:"reactions"`
	Comments       int64           `json:"comments"`
	Shares         int64           `json:"shares"`
	EngagementRate decimal.Decimal `json:"engagementRate"`
}

// ComputeEngagement fills EngagementRate as (reactions+comments+shares)/impressions*100,
// rounded to two places. Zero impressions give a zero rate.
func (p *PostSummary) ComputeEngagement() {
	if p.Impressions <= 0 {
		p.EngagementRate = decimal.Zero
		return
	}
	interactions := decimal.NewFromInt(p.Reactions + p.Comments + p.Shares)
	p.EngagementRate = interactions.
		Div(decimal.NewFromInt(p.Impressions)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
