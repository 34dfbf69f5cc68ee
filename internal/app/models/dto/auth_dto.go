package dto

import (
	"time"

	"github.com/tailorwise/tailorwise/internal/app/models"
)

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"Password123!"`
}

// RefreshTokenRequest is the body for POST /auth/refresh and /auth/logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"d8f3a1c2-4b5e-6f7a-8b9c-0d1e2f3a4b5c"`
}

// TokenResponse carries a fresh token pair after login or refresh
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	User         UserResponse `json:"user"`
}

// ChangePasswordRequest is the body for POST /auth/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8" example:"NewPassword123!"`
}

// UserResponse is the public representation of a user account
type UserResponse struct {
	ID          int64           `json:"id" example:"1"`
	Username    string          `json:"username" example:"admin"`
	Email       string          `json:"email" example:"admin@tailorwise.local"`
	FirstName   string          `json:"firstName" example:"Site"`
	LastName    string          `json:"lastName" example:"Admin"`
	Phone       string          `json:"phone,omitempty" example:"+905551234567"`
	RoleType    models.RoleType `json:"roleType" example:"ADMIN"`
	IsActive    bool            `json:"isActive" example:"true"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewUserResponse maps a user model to its API representation
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		RoleType:    user.RoleType,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
