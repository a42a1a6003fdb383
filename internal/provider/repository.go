// File: internal/provider/repository.go
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fixitnow_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access methods for provider profiles.
type Repository interface {
	Create(ctx context.Context, p *Provider) error
	FindByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error)
	Update(ctx context.Context, p *Provider) error
	Search(ctx context.Context, query SearchQuery) ([]Provider, error)
	AdminList(ctx context.Context, query AdminProvidersQuery, page, pageSize int) ([]Provider, int64, error)
	UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int) error
	IncrementTotalBookings(ctx context.Context, id uuid.UUID) error
	TopRated(ctx context.Context, limit int) ([]Provider, error)
	AllIDs(ctx context.Context) ([]uuid.UUID, error)
	CountByApproval(ctx context.Context, approved bool) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM-based provider repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *Provider) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return common.ErrConflict.WithDetails("A provider profile already exists for this user.")
		}
		return fmt.Errorf("creating provider: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	var p Provider
	err := r.db.WithContext(ctx).Preload("User").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails(fmt.Sprintf("Provider with ID %s not found.", id))
		}
		return nil, fmt.Errorf("finding provider by ID %s: %w", id, err)
	}
	return &p, nil
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error) {
	var p Provider
	err := r.db.WithContext(ctx).Preload("User").First(&p, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No provider profile exists for this user.")
		}
		return nil, fmt.Errorf("finding provider by user ID %s: %w", userID, err)
	}
	return &p, nil
}

func (r *gormRepository) Update(ctx context.Context, p *Provider) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("updating provider %s: %w", p.ID, err)
	}
	return nil
}

// Search returns approved providers only. Results are capped at
// SearchPageSize regardless of how many match.
func (r *gormRepository) Search(ctx context.Context, query SearchQuery) ([]Provider, error) {
	db := r.db.WithContext(ctx).Model(&Provider{}).Preload("User").
		Where("is_approved = ?", true)

	if query.Category != "" {
		db = db.Where("? = ANY(categories)", query.Category)
	}
	if query.ZipCode != "" {
		db = db.Where("? = ANY(service_area_zips)", query.ZipCode)
	}
	if query.Search != "" {
		db = db.Where("business_name ILIKE ?", "%"+query.Search+"%")
	}

	switch query.SortBy {
	case SortByBookings:
		db = db.Order("total_bookings DESC")
	case SortByNewest:
		db = db.Order("created_at DESC")
	default:
		db = db.Order("rating_average DESC")
	}

	var providers []Provider
	if err := db.Limit(SearchPageSize).Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("searching providers: %w", err)
	}
	return providers, nil
}

func (r *gormRepository) AdminList(ctx context.Context, query AdminProvidersQuery, page, pageSize int) ([]Provider, int64, error) {
	db := r.db.WithContext(ctx).Model(&Provider{}).Preload("User")

	switch query.Status {
	case "approved":
		db = db.Where("is_approved = ?", true)
	case "pending":
		db = db.Where("is_approved = ?", false)
	}
	if query.Search != "" {
		db = db.Where("business_name ILIKE ?", "%"+query.Search+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting providers: %w", err)
	}

	var providers []Provider
	err := db.Order("created_at DESC").
		Offset(common.PageOffset(page, pageSize)).Limit(pageSize).
		Find(&providers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing providers: %w", err)
	}
	return providers, total, nil
}

func (r *gormRepository) UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int) error {
	err := r.db.WithContext(ctx).Model(&Provider{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating_average": average,
			"rating_count":   count,
		}).Error
	if err != nil {
		return fmt.Errorf("updating rating for provider %s: %w", id, err)
	}
	return nil
}

// IncrementTotalBookings bumps the completed-bookings counter. The
// read-then-write here is not atomic; concurrent completions can lose an
// increment, and the nightly resync does not repair this counter.
func (r *gormRepository) IncrementTotalBookings(ctx context.Context, id uuid.UUID) error {
	var p Provider
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound.WithDetails(fmt.Sprintf("Provider with ID %s not found.", id))
		}
		return fmt.Errorf("loading provider %s for booking counter: %w", id, err)
	}
	p.TotalBookings++
	if err := r.db.WithContext(ctx).Model(&Provider{}).Where("id = ?", id).
		Update("total_bookings", p.TotalBookings).Error; err != nil {
		return fmt.Errorf("incrementing booking counter for provider %s: %w", id, err)
	}
	return nil
}

func (r *gormRepository) TopRated(ctx context.Context, limit int) ([]Provider, error) {
	var providers []Provider
	err := r.db.WithContext(ctx).Preload("User").
		Where("is_approved = ?", true).
		Order("rating_average DESC").
		Limit(limit).
		Find(&providers).Error
	if err != nil {
		return nil, fmt.Errorf("listing top rated providers: %w", err)
	}
	return providers, nil
}

func (r *gormRepository) AllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Provider{}).Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing provider IDs: %w", err)
	}
	return ids, nil
}

func (r *gormRepository) CountByApproval(ctx context.Context, approved bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Provider{}).
		Where("is_approved = ?", approved).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting providers by approval: %w", err)
	}
	return count, nil
}
