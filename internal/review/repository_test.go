// File: internal/review/repository_test.go
package review

import (
	"context"
	"testing"
	"time"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupRepository opens an in-memory sqlite database with explicit DDL;
// the production schema uses postgres defaults sqlite cannot parse. The
// users table exists so the Customer preload works.
func setupRepository(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id text PRIMARY KEY,
		created_at datetime NOT NULL DEFAULT current_timestamp,
		updated_at datetime NOT NULL DEFAULT current_timestamp,
		name text NOT NULL,
		email text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		phone text,
		address text,
		avatar_url text,
		role text NOT NULL DEFAULT 'customer',
		is_active numeric NOT NULL DEFAULT true
	)`).Error)

	require.NoError(t, db.Exec(`CREATE TABLE reviews (
		id text PRIMARY KEY,
		created_at datetime NOT NULL DEFAULT current_timestamp,
		updated_at datetime NOT NULL DEFAULT current_timestamp,
		booking_id text NOT NULL UNIQUE,
		customer_id text NOT NULL,
		provider_id text NOT NULL,
		rating integer NOT NULL,
		comment text,
		response_text text,
		responded_at datetime
	)`).Error)

	return NewRepository(db), db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	u := &user.User{
		Name:         name,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "$2a$10$notarealhash",
		Role:         common.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u.ID
}

func seedReview(t *testing.T, repo Repository, customerID, providerID uuid.UUID, rating int, createdAt time.Time) *Review {
	t.Helper()
	r := &Review{
		BookingID:  uuid.New(),
		CustomerID: customerID,
		ProviderID: providerID,
		Rating:     rating,
	}
	r.CreatedAt = createdAt
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestRepository_DuplicateBookingConflicts(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()
	customerID := seedCustomer(t, db, "Alice")
	bookingID := uuid.New()

	first := &Review{BookingID: bookingID, CustomerID: customerID, ProviderID: uuid.New(), Rating: 5}
	require.NoError(t, repo.Create(ctx, first))

	second := &Review{BookingID: bookingID, CustomerID: customerID, ProviderID: first.ProviderID, Rating: 1}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok, "unique violation must map to an API error")
	assert.Equal(t, common.ErrConflict.StatusCode, apiErr.StatusCode)
}

func TestRepository_ListByProviderReturnsFullSet(t *testing.T) {
	repo, db := setupRepository(t)
	customerID := seedCustomer(t, db, "Alice")
	providerID := uuid.New()
	otherProviderID := uuid.New()

	now := time.Now()
	for i, rating := range []int{5, 3, 4} {
		seedReview(t, repo, customerID, providerID, rating, now.Add(time.Duration(i)*time.Minute))
	}
	seedReview(t, repo, customerID, otherProviderID, 1, now)

	reviews, err := repo.ListByProvider(context.Background(), providerID)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
	for _, r := range reviews {
		assert.Equal(t, providerID, r.ProviderID)
	}
}

func TestRepository_LatestByProviderOrdersAndLimits(t *testing.T) {
	repo, db := setupRepository(t)
	customerID := seedCustomer(t, db, "Alice")
	providerID := uuid.New()

	now := time.Now()
	oldest := seedReview(t, repo, customerID, providerID, 3, now.Add(-2*time.Hour))
	middle := seedReview(t, repo, customerID, providerID, 4, now.Add(-time.Hour))
	newest := seedReview(t, repo, customerID, providerID, 5, now)

	reviews, err := repo.LatestByProvider(context.Background(), providerID, 2)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, newest.ID, reviews[0].ID)
	assert.Equal(t, middle.ID, reviews[1].ID)
	_ = oldest

	require.NotNil(t, reviews[0].Customer)
	assert.Equal(t, "Alice", reviews[0].Customer.Name)
}

func TestRepository_DeleteMissingIsNotFound(t *testing.T) {
	repo, _ := setupRepository(t)

	err := repo.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.StatusCode, apiErr.StatusCode)
}

func TestRepository_FindByBookingID(t *testing.T) {
	repo, db := setupRepository(t)
	customerID := seedCustomer(t, db, "Alice")
	r := seedReview(t, repo, customerID, uuid.New(), 4, time.Now())

	found, err := repo.FindByBookingID(context.Background(), r.BookingID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, found.ID)

	_, err = repo.FindByBookingID(context.Background(), uuid.New())
	require.Error(t, err)
}
