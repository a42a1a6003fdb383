// File: internal/auth/token.go
package auth

import (
	"fmt"
	"time"

	"fixitnow_backend/internal/config"
	"fixitnow_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService issues and validates HS256 bearer tokens. It implements
// shared.TokenService.
type JWTService struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// NewJWTService creates a token service from configuration.
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secretKey:     []byte(cfg.JWTSecretKey),
		tokenDuration: cfg.JWTAccessTokenExpiry,
	}
}

// GenerateToken creates a signed token for the given user.
func (s *JWTService) GenerateToken(userData shared.UserDataForToken) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.tokenDuration)
	claims := shared.Claims{
		UserID: userData.GetID(),
		Email:  userData.GetEmail(),
		Role:   userData.GetRole(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userData.GetID().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a token string, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &shared.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*shared.Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("token claims are invalid")
	}
	return claims, nil
}
