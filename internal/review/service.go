// File: internal/review/service.go
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fixitnow_backend/internal/booking"
	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/provider"
	"fixitnow_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for review and rating business logic.
type Service interface {
	CreateReview(ctx context.Context, customerID uuid.UUID, req CreateReviewRequest) (*Review, error)
	ListForProvider(ctx context.Context, providerID uuid.UUID, limit int) ([]Review, error)
	RespondToReview(ctx context.Context, providerUserID uuid.UUID, reviewID uuid.UUID, req RespondRequest) (*Review, error)
	AdminDeleteReview(ctx context.Context, id uuid.UUID) error
	ResyncAllProviderRatings(ctx context.Context) error
}

// ServiceImplementation implements the Service interface. It also
// implements shared.ReviewFeed for the provider detail view.
type ServiceImplementation struct {
	repo      Repository
	bookings  booking.Repository
	providers provider.Repository
	logger    *zap.Logger
}

// NewService creates a new review service.
func NewService(repo Repository, bookings booking.Repository, providers provider.Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:      repo,
		bookings:  bookings,
		providers: providers,
		logger:    logger.Named("ReviewService"),
	}
}

// CreateReview records a rating for a completed booking the caller owns,
// then recomputes the provider's aggregate from the full review set.
func (s *ServiceImplementation) CreateReview(ctx context.Context, customerID uuid.UUID, req CreateReviewRequest) (*Review, error) {
	b, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, common.ErrForbidden.WithDetails("You can only review your own bookings.")
	}
	if b.Status != booking.StatusCompleted {
		return nil, common.ErrBookingNotCompleted.WithDetails(
			fmt.Sprintf("The booking is '%s'; reviews are open once it is completed.", b.Status))
	}

	if _, err := s.repo.FindByBookingID(ctx, req.BookingID); err == nil {
		return nil, common.ErrConflict.WithDetails("This booking has already been reviewed.")
	} else {
		var apiErr *common.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != common.ErrNotFound.StatusCode {
			return nil, err
		}
	}

	r := &Review{
		BookingID:  req.BookingID,
		CustomerID: customerID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	if err := s.recomputeProviderRating(ctx, b.ProviderID); err != nil {
		// The review is saved; the aggregate catches up on the next
		// recompute or the nightly resync.
		s.logger.Error("Failed to recompute provider rating",
			zap.String("providerID", b.ProviderID.String()), zap.Error(err))
	}

	s.logger.Info("Review created",
		zap.String("reviewID", r.ID.String()),
		zap.String("providerID", b.ProviderID.String()),
		zap.Int("rating", r.Rating))
	return r, nil
}

func (s *ServiceImplementation) ListForProvider(ctx context.Context, providerID uuid.UUID, limit int) ([]Review, error) {
	return s.repo.LatestByProvider(ctx, providerID, limit)
}

// RespondToReview sets or overwrites the provider's public response.
func (s *ServiceImplementation) RespondToReview(ctx context.Context, providerUserID uuid.UUID, reviewID uuid.UUID, req RespondRequest) (*Review, error) {
	r, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	p, err := s.providers.FindByUserID(ctx, providerUserID)
	if err != nil {
		return nil, err
	}
	if r.ProviderID != p.ID {
		return nil, common.ErrForbidden.WithDetails("You can only respond to reviews of your own business.")
	}

	now := time.Now()
	r.ResponseText = &req.ResponseText
	r.RespondedAt = &now
	if err := s.repo.Update(ctx, r); err != nil {
		s.logger.Error("Failed to save review response", zap.String("reviewID", reviewID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to save response.")
	}
	return r, nil
}

// AdminDeleteReview removes a review and recomputes the provider's
// aggregate without it.
func (s *ServiceImplementation) AdminDeleteReview(ctx context.Context, id uuid.UUID) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.recomputeProviderRating(ctx, r.ProviderID); err != nil {
		s.logger.Error("Failed to recompute provider rating after delete",
			zap.String("providerID", r.ProviderID.String()), zap.Error(err))
	}

	s.logger.Info("Review deleted by admin", zap.String("reviewID", id.String()))
	return nil
}

// LatestForProvider implements shared.ReviewFeed.
func (s *ServiceImplementation) LatestForProvider(ctx context.Context, providerID uuid.UUID, limit int) ([]shared.ProviderReview, error) {
	reviews, err := s.repo.LatestByProvider(ctx, providerID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]shared.ProviderReview, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		view := shared.ProviderReview{
			ID:           r.ID,
			BookingID:    r.BookingID,
			CustomerID:   r.CustomerID,
			Rating:       r.Rating,
			Comment:      r.Comment,
			ResponseText: r.ResponseText,
			RespondedAt:  r.RespondedAt,
			CreatedAt:    r.CreatedAt,
		}
		if r.Customer != nil {
			view.CustomerName = r.Customer.Name
		}
		out = append(out, view)
	}
	return out, nil
}

// ResyncAllProviderRatings recomputes every provider's aggregate from its
// review set. Run nightly to converge aggregates that drifted under
// concurrent writes.
func (s *ServiceImplementation) ResyncAllProviderRatings(ctx context.Context) error {
	ids, err := s.providers.AllIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.recomputeProviderRating(ctx, id); err != nil {
			s.logger.Error("Rating resync failed for provider",
				zap.String("providerID", id.String()), zap.Error(err))
		}
	}
	s.logger.Info("Provider rating resync finished", zap.Int("providers", len(ids)))
	return nil
}

// recomputeProviderRating reads the provider's full review set and
// rewrites the stored aggregate. Two concurrent recomputes race and the
// last write wins; the resync job heals any drift.
func (s *ServiceImplementation) recomputeProviderRating(ctx context.Context, providerID uuid.UUID) error {
	reviews, err := s.repo.ListByProvider(ctx, providerID)
	if err != nil {
		return err
	}

	var average float64
	if len(reviews) > 0 {
		var sum int
		for i := range reviews {
			sum += reviews[i].Rating
		}
		// Stored raw; any display rounding is the client's concern.
		average = float64(sum) / float64(len(reviews))
	}
	return s.providers.UpdateRating(ctx, providerID, average, len(reviews))
}
