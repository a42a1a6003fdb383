// File: internal/shared/core.go
// Package shared holds the small interfaces and view types that cross
// package boundaries, so domain packages can depend on each other's
// behavior without importing each other's models.
package shared

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims structure.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// UserDataForToken abstracts the user fields needed for token generation.
type UserDataForToken interface {
	GetID() uuid.UUID
	GetEmail() string
	GetRole() string
}

// TokenService defines the interface for bearer token operations.
type TokenService interface {
	GenerateToken(userData UserDataForToken) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// AuthUser is the view of a user the access gate needs: identity, role
// and the active flag checked on every authenticated request.
type AuthUser struct {
	ID       uuid.UUID
	Email    string
	Role     string
	IsActive bool
}

// UserResolver resolves a token subject to a live user record.
type UserResolver interface {
	ResolveAuthUser(ctx context.Context, id uuid.UUID) (*AuthUser, error)
}

// ProviderReview is the public view of a review shown on a provider's
// detail page.
type ProviderReview struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	ResponseText *string   `json:"response_text,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewFeed exposes a provider's latest reviews to the directory without
// the provider package importing the review package.
type ReviewFeed interface {
	LatestForProvider(ctx context.Context, providerID uuid.UUID, limit int) ([]ProviderReview, error)
}

// BookingCounter exposes booking counts to the provider stats endpoint
// without the provider package importing the booking package.
type BookingCounter interface {
	CountForProvider(ctx context.Context, providerID uuid.UUID) (int64, error)
	CountForProviderByStatus(ctx context.Context, providerID uuid.UUID, status string) (int64, error)
}
