// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"strings"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/provider"
	"fixitnow_backend/internal/shared"
	"fixitnow_backend/internal/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the interface for registration and login.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	users     user.Repository
	providers provider.Service
	tokens    shared.TokenService
	logger    *zap.Logger
}

// NewService creates a new auth service.
func NewService(users user.Repository, providers provider.Service, tokens shared.TokenService, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		users:     users,
		providers: providers,
		tokens:    tokens,
		logger:    logger.Named("AuthService"),
	}
}

// Register creates an account with a bcrypt-hashed password. Provider
// registrations also open an unapproved business profile, which stays out
// of the public directory until an admin approves it.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = common.RoleCustomer
	}
	if role == common.RoleProvider && (req.BusinessName == nil || strings.TrimSpace(*req.BusinessName) == "") {
		return nil, common.NewValidationAPIError(map[string]string{
			"business_name": "The business_name field is required when registering as a provider.",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to process registration.")
	}

	u := &user.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	if role == common.RoleProvider {
		if _, err := s.providers.CreateProfile(ctx, u.ID, *req.BusinessName, req.Categories); err != nil {
			s.logger.Error("Account created but provider profile failed",
				zap.String("userID", u.ID.String()), zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("User registered", zap.String("userID", u.ID.String()), zap.String("role", role))
	return s.issueToken(u)
}

// Login verifies credentials and issues a token. Suspended accounts are
// rejected here as well as at the gate, so a fresh token never helps.
func (s *ServiceImplementation) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == common.ErrNotFound.StatusCode {
			return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}
	if !u.IsActive {
		return nil, common.ErrForbidden.WithDetails("Your account has been suspended.")
	}

	s.logger.Debug("User logged in", zap.String("userID", u.ID.String()))
	return s.issueToken(u)
}

func (s *ServiceImplementation) issueToken(u *user.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(u)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.String("userID", u.ID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to issue access token.")
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToUserResponse(u),
	}, nil
}
