// File: internal/user/model.go
package user

import (
	"time"

	"fixitnow_backend/internal/common"

	"github.com/google/uuid"
)

// User represents the user model in the database.
type User struct {
	common.BaseModel         // Embeds ID, CreatedAt, UpdatedAt
	Name             string  `gorm:"type:varchar(150);not null"`
	Email            string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash     string  `gorm:"type:varchar(255);not null"`
	Phone            *string `gorm:"type:varchar(50)"`
	Address          *string `gorm:"type:varchar(255)"`
	AvatarURL        *string `gorm:"type:text"`
	Role             string  `gorm:"type:varchar(50);not null;default:'customer'"`
	IsActive         bool    `gorm:"not null;default:true"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetRole() string {
	return u.Role
}

// --- DTOs for API requests/responses ---

// UpdateProfileRequest defines the self-service profile update. Email and
// role are immutable through this path.
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=2,max=150"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Address   *string `json:"address,omitempty" binding:"omitempty,max=255"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,max=2048"`
}

// AdminSetUserStatusRequest toggles the active flag on an account.
type AdminSetUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// AdminUsersQuery filters the admin user listing.
type AdminUsersQuery struct {
	Role   string `form:"role"`
	Search string `form:"search"`
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
