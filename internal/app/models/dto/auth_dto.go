package dto

import "github.com/yigit/traineehub/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"604800"`
}

// RegisterRequest creates a user account. Department is required for DEPARTMENT users.
type RegisterRequest struct {
	Email      string          `json:"email" binding:"required,email"`
	Password   string          `json:"password" binding:"required,min=6"`
	Name       string          `json:"name" binding:"required"`
	Role       models.RoleType `json:"role" binding:"required,role"`
	Department *string         `json:"department"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name       string  `json:"name" binding:"required"`
	Department *string `json:"department"`
}

// ChangePasswordRequest swaps the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// UpdateUserStatusRequest activates or deactivates an account
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID         int64           `json:"id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Role       models.RoleType `json:"role"`
	Department *string         `json:"department,omitempty"`
	IsActive   bool            `json:"isActive"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// NewUserResponse strips credentials from a user
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		IsActive:   u.IsActive,
	}
}
