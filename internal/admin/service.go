// File: internal/admin/service.go
// Package admin aggregates cross-domain data for the moderation
// dashboard. Per-resource admin actions live with their own domains.
package admin

import (
	"context"

	"fixitnow_backend/internal/booking"
	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/provider"
	"fixitnow_backend/internal/review"
	"fixitnow_backend/internal/user"

	"go.uber.org/zap"
)

const (
	recentBookingLimit = 10
	topProviderLimit   = 5
)

// DashboardCounts holds the headline numbers on the admin dashboard.
type DashboardCounts struct {
	Customers         int64 `json:"customers"`
	Providers         int64 `json:"providers"`
	PendingProviders  int64 `json:"pending_providers"`
	ApprovedProviders int64 `json:"approved_providers"`
	Bookings          int64 `json:"bookings"`
	PendingBookings   int64 `json:"pending_bookings"`
	CompletedBookings int64 `json:"completed_bookings"`
	Reviews           int64 `json:"reviews"`
}

// Dashboard is the full admin dashboard payload.
type Dashboard struct {
	Counts         DashboardCounts             `json:"counts"`
	RecentBookings []booking.BookingResponse   `json:"recent_bookings"`
	TopProviders   []provider.ProviderResponse `json:"top_providers"`
}

// Service defines the interface for the admin dashboard.
type Service interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	users     user.Repository
	providers provider.Repository
	bookings  booking.Repository
	reviews   review.Repository
	logger    *zap.Logger
}

// NewService creates a new admin dashboard service.
func NewService(users user.Repository, providers provider.Repository, bookings booking.Repository, reviews review.Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		users:     users,
		providers: providers,
		bookings:  bookings,
		reviews:   reviews,
		logger:    logger.Named("AdminService"),
	}
}

// GetDashboard assembles counts, the latest bookings, and the top rated
// providers. The numbers are read one by one without a snapshot, so a
// busy platform can show momentarily inconsistent counts.
func (s *ServiceImplementation) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		counts DashboardCounts
		err    error
	)

	if counts.Customers, err = s.users.CountByRole(ctx, common.RoleCustomer); err != nil {
		return nil, err
	}
	if counts.Providers, err = s.users.CountByRole(ctx, common.RoleProvider); err != nil {
		return nil, err
	}
	if counts.PendingProviders, err = s.providers.CountByApproval(ctx, false); err != nil {
		return nil, err
	}
	if counts.ApprovedProviders, err = s.providers.CountByApproval(ctx, true); err != nil {
		return nil, err
	}
	if counts.Bookings, err = s.bookings.Count(ctx); err != nil {
		return nil, err
	}
	if counts.PendingBookings, err = s.bookings.CountByStatus(ctx, booking.StatusPending); err != nil {
		return nil, err
	}
	if counts.CompletedBookings, err = s.bookings.CountByStatus(ctx, booking.StatusCompleted); err != nil {
		return nil, err
	}
	if counts.Reviews, err = s.reviews.Count(ctx); err != nil {
		return nil, err
	}

	recent, err := s.bookings.Recent(ctx, recentBookingLimit)
	if err != nil {
		return nil, err
	}
	top, err := s.providers.TopRated(ctx, topProviderLimit)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Counts:         counts,
		RecentBookings: make([]booking.BookingResponse, 0, len(recent)),
		TopProviders:   make([]provider.ProviderResponse, 0, len(top)),
	}
	for i := range recent {
		dashboard.RecentBookings = append(dashboard.RecentBookings, booking.ToBookingResponse(&recent[i]))
	}
	for i := range top {
		dashboard.TopProviders = append(dashboard.TopProviders, provider.ToProviderResponse(&top[i]))
	}
	return dashboard, nil
}
