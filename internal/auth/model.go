// File: internal/auth/model.go
package auth

import (
	"time"

	"fixitnow_backend/internal/user"
)

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	Role     string  `json:"role,omitempty" binding:"omitempty,oneof=customer provider"`

	// Provider registrations open a business profile alongside the account.
	BusinessName *string  `json:"business_name,omitempty" binding:"omitempty,min=2,max=255"`
	Categories   []string `json:"categories,omitempty" binding:"omitempty,dive,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      user.UserResponse `json:"user"`
}
