// File: internal/provider/model.go
package provider

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/shared"
	"fixitnow_backend/internal/user"

	"github.com/google/uuid"
	"github.com/lib/pq" // For pq.StringArray
)

// PriceRange bounds the advertised price of a single offered service.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ServiceOffering is one entry in a provider's service catalog.
type ServiceOffering struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	PriceRange  PriceRange `json:"price_range"`
}

// ServiceOfferings is stored as a JSONB column.
type ServiceOfferings []ServiceOffering

// Value implements the driver.Valuer interface for ServiceOfferings.
func (s ServiceOfferings) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for ServiceOfferings.
func (s *ServiceOfferings) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if str, okStr := value.(string); okStr {
			b = []byte(str)
		} else {
			return errors.New("failed to scan ServiceOfferings: invalid type")
		}
	}
	return json.Unmarshal(b, s)
}

// DayHours describes opening hours for one weekday.
type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	IsOpen bool   `json:"is_open"`
}

// WorkingHours maps weekday name (lowercase) to hours. Stored as JSONB.
type WorkingHours map[string]DayHours

// Value implements the driver.Valuer interface for WorkingHours.
func (w WorkingHours) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan implements the sql.Scanner interface for WorkingHours.
func (w *WorkingHours) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if str, okStr := value.(string); okStr {
			b = []byte(str)
		} else {
			return errors.New("failed to scan WorkingHours: invalid type")
		}
	}
	return json.Unmarshal(b, w)
}

// Provider is a business profile owned one-to-one by a user with the
// provider role. RatingAverage/RatingCount and TotalBookings are derived
// projections, recomputed by the review aggregator and the booking
// lifecycle; the review set is the source of truth for the rating.
type Provider struct {
	common.BaseModel
	UserID          uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	User            *user.User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BusinessName    string           `gorm:"type:varchar(255);not null"`
	Slug            string           `gorm:"type:varchar(255);index"`
	Categories      pq.StringArray   `gorm:"type:text[]"`
	Services        ServiceOfferings `gorm:"type:jsonb"`
	ServiceAreaZips pq.StringArray   `gorm:"type:text[]"`
	WorkingHours    WorkingHours     `gorm:"type:jsonb"`
	Description     string           `gorm:"type:varchar(1000)"`
	ExperienceYears int              `gorm:"not null;default:0"`
	RatingAverage   float64          `gorm:"not null;default:0"`
	RatingCount     int              `gorm:"not null;default:0"`
	TotalBookings   int              `gorm:"not null;default:0"`
	IsVerified      bool             `gorm:"not null;default:false"`
	IsApproved      bool             `gorm:"not null;default:false"`
}

func (Provider) TableName() string {
	return "providers"
}

// --- DTOs for API ---

// SortBy values accepted by the directory search.
const (
	SortByRating   = "rating"
	SortByBookings = "bookings"
	SortByNewest   = "newest"
)

// SearchPageSize caps directory results per the product contract.
const SearchPageSize = 50

type SearchQuery struct {
	Category string `form:"category"`
	ZipCode  string `form:"zip_code"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=rating bookings newest"`
}

type UpdateProfileRequest struct {
	BusinessName    *string           `json:"business_name,omitempty" binding:"omitempty,min=2,max=255"`
	Categories      []string          `json:"categories,omitempty" binding:"omitempty,dive,max=100"`
	Services        []ServiceOffering `json:"services,omitempty"`
	ServiceAreaZips []string          `json:"service_area_zips,omitempty" binding:"omitempty,dive,max=20"`
	WorkingHours    WorkingHours      `json:"working_hours,omitempty"`
	Description     *string           `json:"description,omitempty" binding:"omitempty,max=1000"`
	ExperienceYears *int              `json:"experience_years,omitempty" binding:"omitempty,gte=0"`
}

type AdminSetStatusRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
	IsVerified *bool `json:"is_verified,omitempty"`
}

type AdminProvidersQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=approved pending all"`
	Search string `form:"search"`
}

// Rating is the aggregate pair exposed in responses.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type ProviderResponse struct {
	ID              uuid.UUID          `json:"id"`
	UserID          uuid.UUID          `json:"user_id"`
	User            *user.UserResponse `json:"user,omitempty"`
	BusinessName    string             `json:"business_name"`
	Slug            string             `json:"slug"`
	Categories      []string           `json:"categories"`
	Services        []ServiceOffering  `json:"services,omitempty"`
	ServiceAreaZips []string           `json:"service_area_zips,omitempty"`
	WorkingHours    WorkingHours       `json:"working_hours,omitempty"`
	Description     string             `json:"description,omitempty"`
	ExperienceYears int                `json:"experience_years"`
	Rating          Rating             `json:"rating"`
	TotalBookings   int                `json:"total_bookings"`
	IsVerified      bool               `json:"is_verified"`
	IsApproved      bool               `json:"is_approved"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ToProviderResponse converts a Provider model to its response DTO.
func ToProviderResponse(p *Provider) ProviderResponse {
	resp := ProviderResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		BusinessName:    p.BusinessName,
		Slug:            p.Slug,
		Categories:      p.Categories,
		Services:        p.Services,
		ServiceAreaZips: p.ServiceAreaZips,
		WorkingHours:    p.WorkingHours,
		Description:     p.Description,
		ExperienceYears: p.ExperienceYears,
		Rating:          Rating{Average: p.RatingAverage, Count: p.RatingCount},
		TotalBookings:   p.TotalBookings,
		IsVerified:      p.IsVerified,
		IsApproved:      p.IsApproved,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.User != nil {
		userResp := user.ToUserResponse(p.User)
		resp.User = &userResp
	}
	return resp
}

// ProviderDetailResponse pairs a provider with its latest reviews for the
// public detail view.
type ProviderDetailResponse struct {
	Provider ProviderResponse        `json:"provider"`
	Reviews  []shared.ProviderReview `json:"reviews"`
}

// StatsResponse is the provider's own dashboard summary.
type StatsResponse struct {
	TotalBookings     int64  `json:"total_bookings"`
	PendingBookings   int64  `json:"pending_bookings"`
	CompletedBookings int64  `json:"completed_bookings"`
	Rating            Rating `json:"rating"`
	IsVerified        bool   `json:"is_verified"`
	IsApproved        bool   `json:"is_approved"`
}
