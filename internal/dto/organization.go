package dto

// UpsertOrganizationRequest replaces the caller's organization profile.
type UpsertOrganizationRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Category    string `json:"category" binding:"max=100"`
	Description string `json:"description" binding:"max=2000"`
	Website     string `json:"website" binding:"omitempty,url"`
	Location    string `json:"location" binding:"max=200"`
	Size        string `json:"size" binding:"max=50"`
	Employees   *int   `json:"employees" binding:"omitempty,min=0"`
	Revenue     string `json:"revenue" binding:"max=100"`
	MarketArea  string `json:"marketArea" binding:"max=200"`
}
