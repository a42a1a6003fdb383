// File: internal/user/service.go
package user

import (
	"context"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for user-related business logic.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)

	// Admin specific
	AdminListUsers(ctx context.Context, query AdminUsersQuery) ([]User, error)
	AdminSetActive(ctx context.Context, id uuid.UUID, isActive bool) (*User, error)
}

// ServiceImplementation implements the user Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

// ResolveAuthUser implements shared.UserResolver for the auth middleware.
func (s *ServiceImplementation) ResolveAuthUser(ctx context.Context, id uuid.UUID) (*shared.AuthUser, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.AuthUser{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}, nil
}

// GetByID retrieves a user by ID.
func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies a self-service profile update. Only contact
// fields may change here; email and role are immutable.
func (s *ServiceImplementation) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.AvatarURL != nil {
		existing.AvatarURL = req.AvatarURL
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("Failed to update user profile", zap.Error(err), zap.String("userID", id.String()))
		return nil, err
	}
	return existing, nil
}

// AdminListUsers lists users for the admin console.
func (s *ServiceImplementation) AdminListUsers(ctx context.Context, query AdminUsersQuery) ([]User, error) {
	if query.Role != "" && query.Role != "all" && !common.ValidRole(query.Role) {
		return nil, common.ErrBadRequest.WithDetails("Unknown role filter.")
	}
	return s.repo.List(ctx, query)
}

// AdminSetActive suspends or reactivates an account. Suspension takes
// effect on the account's next request through the access gate.
func (s *ServiceImplementation) AdminSetActive(ctx context.Context, id uuid.UUID, isActive bool) (*User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.IsActive = isActive
	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("Failed to update user active flag", zap.Error(err), zap.String("userID", id.String()))
		return nil, err
	}

	s.logger.Info("Admin updated user status",
		zap.String("userID", id.String()),
		zap.Bool("isActive", isActive),
	)
	return existing, nil
}
