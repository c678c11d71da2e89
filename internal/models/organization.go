package models

import "time"

// Organization is the organizations table row (one per user).
type Organization struct {
	OrganizationID string    `db:"organization_id"`
	UserID         string    `db:"user_id"`
	Name           string    `db:"name"`
	Category       *string   `db:"category"`
	Description    *string   `db:"description"`
	Website        *string   `db:"website"`
	Location       *string   `db:"location"`
	Size           *string   `db:"size"`
	Employees      *int      `db:"employees"`
	Revenue        *string   `db:"revenue"`
	MarketArea     *string   `db:"market_area"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
