// File: internal/review/model.go
package review

import (
	"time"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/user"

	"github.com/google/uuid"
)

// Review is a customer's rating of a completed booking. The unique index
// on BookingID is what enforces one review per booking; the service-level
// check only exists to return a friendlier error first.
type Review struct {
	common.BaseModel
	BookingID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Customer     *user.User `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ProviderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Rating       int        `gorm:"not null"`
	Comment      string     `gorm:"type:varchar(500)"`
	ResponseText *string    `gorm:"type:varchar(2000)"`
	RespondedAt  *time.Time
}

func (Review) TableName() string {
	return "reviews"
}

// --- DTOs for API ---

type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string    `json:"comment,omitempty" binding:"omitempty,max=500"`
}

type RespondRequest struct {
	ResponseText string `json:"response_text" binding:"required,max=2000"`
}

type ReviewResponse struct {
	ID           uuid.UUID          `json:"id"`
	BookingID    uuid.UUID          `json:"booking_id"`
	CustomerID   uuid.UUID          `json:"customer_id"`
	Customer     *user.UserResponse `json:"customer,omitempty"`
	ProviderID   uuid.UUID          `json:"provider_id"`
	Rating       int                `json:"rating"`
	Comment      string             `json:"comment,omitempty"`
	ResponseText *string            `json:"response_text,omitempty"`
	RespondedAt  *time.Time         `json:"responded_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToReviewResponse converts a Review model to its response DTO.
func ToReviewResponse(r *Review) ReviewResponse {
	resp := ReviewResponse{
		ID:           r.ID,
		BookingID:    r.BookingID,
		CustomerID:   r.CustomerID,
		ProviderID:   r.ProviderID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		ResponseText: r.ResponseText,
		RespondedAt:  r.RespondedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Customer != nil {
		customerResp := user.ToUserResponse(r.Customer)
		resp.Customer = &customerResp
	}
	return resp
}
