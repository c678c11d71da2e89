package domain

import "time"

// Organization is read-only profile context used to enrich AI caption prompts.
type Organization struct {
	OrganizationID string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Category       string    `json:"category,omitempty"`
	Description    string    `json:"description,omitempty"`
	Website        string    `json:"website,omitempty"`
	Location       string    `json:"location,omitempty"`
	Size           string    `json:"size,omitempty"`
	Employees      *int      `json:"employees,omitempty"`
	Revenue        string    `json:"revenue,omitempty"`
	MarketArea     string    `json:"marketArea,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
