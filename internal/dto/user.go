package dto

import (
	"github.com/SscSPs/social_dashboard/internal/core/domain"
)

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

type UserResponse struct {
	UserID       string          `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Role         domain.UserRole `json:"role"`
	AuthProvider domain.Provider `json:"authProvider"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.GetUserID(),
		Email:        user.GetEmail(),
		Name:         user.GetName(),
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
	}
}
