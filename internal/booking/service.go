// File: internal/booking/service.go
package booking

import (
	"context"
	"fmt"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/provider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for booking lifecycle business logic.
type Service interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*Booking, error)
	GetByID(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID) (*Booking, error)
	ListMyBookings(ctx context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, error)
	ListProviderBookings(ctx context.Context, providerUserID uuid.UUID, query ListQuery) ([]Booking, error)
	UpdateStatus(ctx context.Context, providerUserID uuid.UUID, id uuid.UUID, req UpdateStatusRequest) (*Booking, error)
	CancelBooking(ctx context.Context, customerID uuid.UUID, id uuid.UUID) (*Booking, error)
	AdminList(ctx context.Context, query ListQuery, page, pageSize int) ([]Booking, int64, error)
}

// ServiceImplementation implements the Service interface. It also
// implements shared.BookingCounter for the provider stats endpoint.
type ServiceImplementation struct {
	repo      Repository
	providers provider.Repository
	logger    *zap.Logger
}

// NewService creates a new booking service.
func NewService(repo Repository, providers provider.Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:      repo,
		providers: providers,
		logger:    logger.Named("BookingService"),
	}
}

// CreateBooking opens a pending booking against an approved provider.
func (s *ServiceImplementation) CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*Booking, error) {
	p, err := s.providers.FindByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	// Unapproved providers are invisible in the directory; a booking
	// against one gets the same answer a search would.
	if !p.IsApproved {
		return nil, common.ErrNotFound.WithDetails(fmt.Sprintf("Provider with ID %s not found.", req.ProviderID))
	}

	b := &Booking{
		CustomerID:     customerID,
		ProviderID:     p.ID,
		ServiceName:    req.ServiceName,
		Description:    req.Description,
		Address:        req.Address,
		ZipCode:        req.ZipCode,
		Lat:            req.Lat,
		Lng:            req.Lng,
		ScheduledDate:  req.ScheduledDate,
		TimeSlot:       req.TimeSlot,
		Status:         StatusPending,
		EstimatedPrice: req.EstimatedPrice,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("Failed to create booking", zap.String("customerID", customerID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create booking.")
	}

	s.logger.Info("Booking created",
		zap.String("bookingID", b.ID.String()),
		zap.String("providerID", p.ID.String()))
	return s.repo.FindByID(ctx, b.ID)
}

// GetByID returns a booking the caller is a party to. Admins can read any
// booking.
func (s *ServiceImplementation) GetByID(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerRole == common.RoleAdmin || b.CustomerID == callerID {
		return b, nil
	}
	if b.Provider != nil && b.Provider.UserID == callerID {
		return b, nil
	}
	return nil, common.ErrForbidden.WithDetails("You are not a party to this booking.")
}

func (s *ServiceImplementation) ListMyBookings(ctx context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, error) {
	return s.repo.ListByCustomer(ctx, customerID, query)
}

func (s *ServiceImplementation) ListProviderBookings(ctx context.Context, providerUserID uuid.UUID, query ListQuery) ([]Booking, error) {
	p, err := s.providers.FindByUserID(ctx, providerUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByProvider(ctx, p.ID, query)
}

// UpdateStatus moves a booking along the lifecycle on behalf of its
// provider: pending -> accepted/rejected, accepted -> completed. Notes
// and the final price may ride along. Completing a booking bumps the
// provider's booking counter.
func (s *ServiceImplementation) UpdateStatus(ctx context.Context, providerUserID uuid.UUID, id uuid.UUID, req UpdateStatusRequest) (*Booking, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Provider == nil || b.Provider.UserID != providerUserID {
		return nil, common.ErrForbidden.WithDetails("This booking belongs to another provider.")
	}

	if !providerTransitionTargets[req.Status] || !CanTransition(b.Status, req.Status) {
		return nil, common.ErrInvalidTransition.WithDetails(
			fmt.Sprintf("Cannot change booking status from '%s' to '%s'.", b.Status, req.Status))
	}

	b.Status = req.Status
	if req.ProviderNotes != nil {
		b.ProviderNotes = req.ProviderNotes
	}
	if req.FinalPrice != nil {
		b.FinalPrice = req.FinalPrice
	}

	if err := s.repo.Update(ctx, b); err != nil {
		s.logger.Error("Failed to update booking status", zap.String("bookingID", id.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to update booking status.")
	}

	if b.Status == StatusCompleted {
		if err := s.providers.IncrementTotalBookings(ctx, b.ProviderID); err != nil {
			// The booking itself is already completed; the counter is a
			// display projection, so log and move on.
			s.logger.Error("Failed to bump provider booking counter",
				zap.String("providerID", b.ProviderID.String()), zap.Error(err))
		}
	}

	s.logger.Info("Booking status updated",
		zap.String("bookingID", b.ID.String()),
		zap.String("status", b.Status))
	return b, nil
}

// CancelBooking lets the customer withdraw a booking that is still
// pending. Once a provider has accepted, cancellation is closed.
func (s *ServiceImplementation) CancelBooking(ctx context.Context, customerID uuid.UUID, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, common.ErrForbidden.WithDetails("This booking belongs to another customer.")
	}
	if b.Status != StatusPending {
		return nil, common.ErrInvalidTransition.WithDetails(
			fmt.Sprintf("Cannot cancel a booking in status '%s'; only pending bookings can be cancelled.", b.Status))
	}

	b.Status = StatusCancelled
	if err := s.repo.Update(ctx, b); err != nil {
		s.logger.Error("Failed to cancel booking", zap.String("bookingID", id.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to cancel booking.")
	}

	s.logger.Info("Booking cancelled", zap.String("bookingID", b.ID.String()))
	return b, nil
}

func (s *ServiceImplementation) AdminList(ctx context.Context, query ListQuery, page, pageSize int) ([]Booking, int64, error) {
	return s.repo.AdminList(ctx, query, page, pageSize)
}

// CountForProvider implements shared.BookingCounter.
func (s *ServiceImplementation) CountForProvider(ctx context.Context, providerID uuid.UUID) (int64, error) {
	return s.repo.CountForProvider(ctx, providerID)
}

// CountForProviderByStatus implements shared.BookingCounter.
func (s *ServiceImplementation) CountForProviderByStatus(ctx context.Context, providerID uuid.UUID, status string) (int64, error) {
	return s.repo.CountForProviderByStatus(ctx, providerID, status)
}
