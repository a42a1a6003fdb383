// File: internal/booking/model.go
package booking

import (
	"time"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/provider"
	"fixitnow_backend/internal/user"

	"github.com/google/uuid"
)

// Booking statuses. A booking walks a one-way graph: pending is the only
// state with multiple exits, and completed, rejected and cancelled are
// terminal.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// allowedTransitions is the full lifecycle graph. The customer-only
// cancel path (pending -> cancelled) is enforced in the service; this map
// is about which moves exist at all.
var allowedTransitions = map[string][]string{
	StatusPending:  {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted: {StatusCompleted},
}

// CanTransition reports whether a booking may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// providerTransitionTargets are the statuses a provider may set through
// the status endpoint. Cancellation belongs to the customer.
var providerTransitionTargets = map[string]bool{
	StatusAccepted:  true,
	StatusRejected:  true,
	StatusCompleted: true,
}

// Booking is a customer's request for a provider's service at a given
// time and place.
type Booking struct {
	common.BaseModel
	CustomerID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	Customer       *user.User         `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ProviderID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	Provider       *provider.Provider `gorm:"foreignKey:ProviderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ServiceName    string             `gorm:"type:varchar(255);not null"`
	Description    string             `gorm:"type:varchar(2000)"`
	Address        string             `gorm:"type:varchar(500);not null"`
	ZipCode        string             `gorm:"type:varchar(20);not null"`
	Lat            *float64           `gorm:"type:double precision"`
	Lng            *float64           `gorm:"type:double precision"`
	ScheduledDate  time.Time          `gorm:"not null"`
	TimeSlot       string             `gorm:"type:varchar(50)"`
	Status         string             `gorm:"type:varchar(20);not null;default:'pending';index"`
	EstimatedPrice *float64           `gorm:"type:numeric"`
	ProviderNotes  *string            `gorm:"type:varchar(2000)"`
	FinalPrice     *float64
}

func (Booking) TableName() string {
	return "bookings"
}

// --- DTOs for API ---

type CreateBookingRequest struct {
	ProviderID     uuid.UUID `json:"provider_id" binding:"required"`
	ServiceName    string    `json:"service_name" binding:"required,min=2,max=255"`
	Description    string    `json:"description,omitempty" binding:"omitempty,max=2000"`
	Address        string    `json:"address" binding:"required,max=500"`
	ZipCode        string    `json:"zip_code" binding:"required,max=20"`
	Lat            *float64  `json:"lat,omitempty" binding:"omitempty,gte=-90,lte=90"`
	Lng            *float64  `json:"lng,omitempty" binding:"omitempty,gte=-180,lte=180"`
	ScheduledDate  time.Time `json:"scheduled_date" binding:"required"`
	TimeSlot       string    `json:"time_slot,omitempty" binding:"omitempty,max=50"`
	EstimatedPrice *float64  `json:"estimated_price,omitempty" binding:"omitempty,gte=0"`
}

type UpdateStatusRequest struct {
	Status        string   `json:"status" binding:"required,oneof=accepted rejected completed"`
	ProviderNotes *string  `json:"provider_notes,omitempty" binding:"omitempty,max=2000"`
	FinalPrice    *float64 `json:"final_price,omitempty" binding:"omitempty,gte=0"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending accepted rejected completed cancelled"`
}

type BookingResponse struct {
	ID             uuid.UUID                  `json:"id"`
	CustomerID     uuid.UUID                  `json:"customer_id"`
	Customer       *user.UserResponse         `json:"customer,omitempty"`
	ProviderID     uuid.UUID                  `json:"provider_id"`
	Provider       *provider.ProviderResponse `json:"provider,omitempty"`
	ServiceName    string                     `json:"service_name"`
	Description    string                     `json:"description,omitempty"`
	Address        string                     `json:"address"`
	ZipCode        string                     `json:"zip_code"`
	Lat            *float64                   `json:"lat,omitempty"`
	Lng            *float64                   `json:"lng,omitempty"`
	ScheduledDate  time.Time                  `json:"scheduled_date"`
	TimeSlot       string                     `json:"time_slot,omitempty"`
	Status         string                     `json:"status"`
	EstimatedPrice *float64                   `json:"estimated_price,omitempty"`
	ProviderNotes  *string                    `json:"provider_notes,omitempty"`
	FinalPrice     *float64                   `json:"final_price,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// ToBookingResponse converts a Booking model to its response DTO.
func ToBookingResponse(b *Booking) BookingResponse {
	resp := BookingResponse{
		ID:             b.ID,
		CustomerID:     b.CustomerID,
		ProviderID:     b.ProviderID,
		ServiceName:    b.ServiceName,
		Description:    b.Description,
		Address:        b.Address,
		ZipCode:        b.ZipCode,
		Lat:            b.Lat,
		Lng:            b.Lng,
		ScheduledDate:  b.ScheduledDate,
		TimeSlot:       b.TimeSlot,
		Status:         b.Status,
		EstimatedPrice: b.EstimatedPrice,
		ProviderNotes:  b.ProviderNotes,
		FinalPrice:     b.FinalPrice,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if b.Customer != nil {
		customerResp := user.ToUserResponse(b.Customer)
		resp.Customer = &customerResp
	}
	if b.Provider != nil {
		providerResp := provider.ToProviderResponse(b.Provider)
		resp.Provider = &providerResp
	}
	return resp
}
