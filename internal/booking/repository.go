// File: internal/booking/repository.go
package booking

import (
	"context"
	"errors"
	"fmt"

	"fixitnow_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access methods for bookings.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	Update(ctx context.Context, b *Booking) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, query ListQuery) ([]Booking, error)
	AdminList(ctx context.Context, query ListQuery, page, pageSize int) ([]Booking, int64, error)
	Recent(ctx context.Context, limit int) ([]Booking, error)
	CountForProvider(ctx context.Context, providerID uuid.UUID) (int64, error)
	CountForProviderByStatus(ctx context.Context, providerID uuid.UUID, status string) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM-based booking repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, b *Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("creating booking: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("Provider").Preload("Provider.User").
		First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails(fmt.Sprintf("Booking with ID %s not found.", id))
		}
		return nil, fmt.Errorf("finding booking by ID %s: %w", id, err)
	}
	return &b, nil
}

func (r *gormRepository) Update(ctx context.Context, b *Booking) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("updating booking %s: %w", b.ID, err)
	}
	return nil
}

func (r *gormRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, error) {
	db := r.db.WithContext(ctx).
		Preload("Provider").Preload("Provider.User").
		Where("customer_id = ?", customerID)
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var bookings []Booking
	if err := db.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("listing bookings for customer %s: %w", customerID, err)
	}
	return bookings, nil
}

func (r *gormRepository) ListByProvider(ctx context.Context, providerID uuid.UUID, query ListQuery) ([]Booking, error) {
	db := r.db.WithContext(ctx).
		Preload("Customer").
		Where("provider_id = ?", providerID)
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var bookings []Booking
	if err := db.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("listing bookings for provider %s: %w", providerID, err)
	}
	return bookings, nil
}

func (r *gormRepository) AdminList(ctx context.Context, query ListQuery, page, pageSize int) ([]Booking, int64, error) {
	db := r.db.WithContext(ctx).Model(&Booking{}).
		Preload("Customer").Preload("Provider")
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting bookings: %w", err)
	}

	var bookings []Booking
	err := db.Order("created_at DESC").
		Offset(common.PageOffset(page, pageSize)).Limit(pageSize).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *gormRepository) Recent(ctx context.Context, limit int) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("Provider").
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("listing recent bookings: %w", err)
	}
	return bookings, nil
}

func (r *gormRepository) CountForProvider(ctx context.Context, providerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("provider_id = ?", providerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting bookings for provider %s: %w", providerID, err)
	}
	return count, nil
}

func (r *gormRepository) CountForProviderByStatus(ctx context.Context, providerID uuid.UUID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("provider_id = ? AND status = ?", providerID, status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting %s bookings for provider %s: %w", status, providerID, err)
	}
	return count, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Booking{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting bookings: %w", err)
	}
	return count, nil
}

func (r *gormRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting %s bookings: %w", status, err)
	}
	return count, nil
}
