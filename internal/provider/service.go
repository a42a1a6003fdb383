// File: internal/provider/service.go
package provider

import (
	"context"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/shared"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for provider directory business logic.
type Service interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, businessName string, categories []string) (*Provider, error)
	Search(ctx context.Context, query SearchQuery) ([]Provider, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Provider, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error)
	AdminList(ctx context.Context, query AdminProvidersQuery, page, pageSize int) ([]Provider, int64, error)
	AdminSetStatus(ctx context.Context, id uuid.UUID, req AdminSetStatusRequest) (*Provider, error)
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	repo     Repository
	bookings shared.BookingCounter
	logger   *zap.Logger
}

// NewService creates a new provider service.
func NewService(repo Repository, bookings shared.BookingCounter, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:     repo,
		bookings: bookings,
		logger:   logger.Named("ProviderService"),
	}
}

// CreateProfile creates the unapproved profile attached to a newly
// registered provider account. Approval is an admin action.
func (s *ServiceImplementation) CreateProfile(ctx context.Context, userID uuid.UUID, businessName string, categories []string) (*Provider, error) {
	p := &Provider{
		UserID:       userID,
		BusinessName: businessName,
		Slug:         slug.Make(businessName),
		Categories:   categories,
		IsApproved:   false,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create provider profile", zap.String("userID", userID.String()), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Provider profile created, pending approval",
		zap.String("providerID", p.ID.String()),
		zap.String("businessName", p.BusinessName))
	return p, nil
}

func (s *ServiceImplementation) Search(ctx context.Context, query SearchQuery) ([]Provider, error) {
	return s.repo.Search(ctx, query)
}

func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) GetByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// UpdateProfile merges the provided fields into the caller's profile.
// Changing the business name regenerates the slug.
func (s *ServiceImplementation) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Provider, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		p.BusinessName = *req.BusinessName
		p.Slug = slug.Make(p.BusinessName)
	}
	if req.Categories != nil {
		p.Categories = req.Categories
	}
	if req.Services != nil {
		p.Services = req.Services
	}
	if req.ServiceAreaZips != nil {
		p.ServiceAreaZips = req.ServiceAreaZips
	}
	if req.WorkingHours != nil {
		p.WorkingHours = req.WorkingHours
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ExperienceYears != nil {
		p.ExperienceYears = *req.ExperienceYears
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update provider profile", zap.String("providerID", p.ID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to update provider profile.")
	}
	s.logger.Info("Provider profile updated", zap.String("providerID", p.ID.String()))
	return p, nil
}

func (s *ServiceImplementation) GetStats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.bookings.CountForProvider(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.bookings.CountForProviderByStatus(ctx, p.ID, "pending")
	if err != nil {
		return nil, err
	}
	completed, err := s.bookings.CountForProviderByStatus(ctx, p.ID, "completed")
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalBookings:     total,
		PendingBookings:   pending,
		CompletedBookings: completed,
		Rating:            Rating{Average: p.RatingAverage, Count: p.RatingCount},
		IsVerified:        p.IsVerified,
		IsApproved:        p.IsApproved,
	}, nil
}

func (s *ServiceImplementation) AdminList(ctx context.Context, query AdminProvidersQuery, page, pageSize int) ([]Provider, int64, error) {
	return s.repo.AdminList(ctx, query, page, pageSize)
}

// AdminSetStatus flips the approval flag (and optionally verification).
// Revoking approval removes the provider from the public directory but
// leaves existing bookings untouched.
func (s *ServiceImplementation) AdminSetStatus(ctx context.Context, id uuid.UUID, req AdminSetStatusRequest) (*Provider, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.IsApproved = *req.IsApproved
	if req.IsVerified != nil {
		p.IsVerified = *req.IsVerified
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to set provider status", zap.String("providerID", id.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to update provider status.")
	}
	s.logger.Info("Provider status changed",
		zap.String("providerID", id.String()),
		zap.Bool("isApproved", p.IsApproved),
		zap.Bool("isVerified", p.IsVerified))
	return p, nil
}
