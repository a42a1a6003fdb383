// File: internal/review/repository.go
package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fixitnow_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access methods for reviews.
type Repository interface {
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]Review, error)
	LatestByProvider(ctx context.Context, providerID uuid.UUID, limit int) ([]Review, error)
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM-based review repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, review *Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return common.ErrConflict.WithDetails("This booking has already been reviewed.")
		}
		return fmt.Errorf("creating review: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).Preload("Customer").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails(fmt.Sprintf("Review with ID %s not found.", id))
		}
		return nil, fmt.Errorf("finding review by ID %s: %w", id, err)
	}
	return &review, nil
}

func (r *gormRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).First(&review, "booking_id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No review exists for this booking.")
		}
		return nil, fmt.Errorf("finding review by booking ID %s: %w", bookingID, err)
	}
	return &review, nil
}

func (r *gormRepository) Update(ctx context.Context, review *Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return fmt.Errorf("updating review %s: %w", review.ID, err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Review{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting review %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails(fmt.Sprintf("Review with ID %s not found.", id))
	}
	return nil
}

// ListByProvider returns every review for a provider. The rating
// recompute walks this full set.
func (r *gormRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("listing reviews for provider %s: %w", providerID, err)
	}
	return reviews, nil
}

func (r *gormRepository) LatestByProvider(ctx context.Context, providerID uuid.UUID, limit int) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("listing latest reviews for provider %s: %w", providerID, err)
	}
	return reviews, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Review{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting reviews: %w", err)
	}
	return count, nil
}
