// File: internal/auth/token_test.go
package auth

import (
	"testing"
	"time"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/config"
	"fixitnow_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService(expiry time.Duration) *JWTService {
	return NewJWTService(&config.Config{
		JWTSecretKey:         "test-secret-key-for-unit-tests",
		JWTAccessTokenExpiry: expiry,
	})
}

func testUser() *user.User {
	u := &user.User{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  common.RoleCustomer,
	}
	u.ID = uuid.New()
	return u
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testTokenService(time.Hour)
	u := testUser()

	token, expiresAt, err := svc.GenerateToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, common.RoleCustomer, claims.Role)
}

func TestValidateToken_ExpiredRejected(t *testing.T) {
	svc := testTokenService(-time.Minute)

	token, _, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_WrongSecretRejected(t *testing.T) {
	issuer := testTokenService(time.Hour)
	verifier := NewJWTService(&config.Config{
		JWTSecretKey:         "a-different-secret",
		JWTAccessTokenExpiry: time.Hour,
	})

	token, _, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_GarbageRejected(t *testing.T) {
	svc := testTokenService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}
