// File: internal/admin/service_test.go
package admin

import (
	"context"
	"testing"

	"fixitnow_backend/internal/booking"
	"fixitnow_backend/internal/provider"
	"fixitnow_backend/internal/review"
	"fixitnow_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUserRepo struct {
	user.Repository
	byRole map[string]int64
}

func (s *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	return s.byRole[role], nil
}

type stubProviderRepo struct {
	provider.Repository
	approved int64
	pending  int64
	top      []provider.Provider
}

func (s *stubProviderRepo) CountByApproval(_ context.Context, approved bool) (int64, error) {
	if approved {
		return s.approved, nil
	}
	return s.pending, nil
}

func (s *stubProviderRepo) TopRated(_ context.Context, limit int) ([]provider.Provider, error) {
	if len(s.top) > limit {
		return s.top[:limit], nil
	}
	return s.top, nil
}

type stubBookingRepo struct {
	booking.Repository
	total    int64
	byStatus map[string]int64
	recent   []booking.Booking
}

func (s *stubBookingRepo) Count(_ context.Context) (int64, error) {
	return s.total, nil
}

func (s *stubBookingRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	return s.byStatus[status], nil
}

func (s *stubBookingRepo) Recent(_ context.Context, limit int) ([]booking.Booking, error) {
	if len(s.recent) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

type stubReviewRepo struct {
	review.Repository
	total int64
}

func (s *stubReviewRepo) Count(_ context.Context) (int64, error) {
	return s.total, nil
}

func TestGetDashboard_AssemblesCountsAndLists(t *testing.T) {
	var recent []booking.Booking
	for i := 0; i < 12; i++ {
		b := booking.Booking{Status: booking.StatusPending, ServiceName: "Job"}
		b.ID = uuid.New()
		recent = append(recent, b)
	}
	var top []provider.Provider
	for i := 0; i < 7; i++ {
		p := provider.Provider{BusinessName: "Shop", IsApproved: true}
		p.ID = uuid.New()
		top = append(top, p)
	}

	svc := NewService(
		&stubUserRepo{byRole: map[string]int64{"customer": 40, "provider": 9}},
		&stubProviderRepo{approved: 7, pending: 2, top: top},
		&stubBookingRepo{total: 120, byStatus: map[string]int64{"pending": 15, "completed": 80}, recent: recent},
		&stubReviewRepo{total: 64},
		zap.NewNop(),
	)

	dashboard, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(40), dashboard.Counts.Customers)
	assert.Equal(t, int64(9), dashboard.Counts.Providers)
	assert.Equal(t, int64(7), dashboard.Counts.ApprovedProviders)
	assert.Equal(t, int64(2), dashboard.Counts.PendingProviders)
	assert.Equal(t, int64(120), dashboard.Counts.Bookings)
	assert.Equal(t, int64(15), dashboard.Counts.PendingBookings)
	assert.Equal(t, int64(80), dashboard.Counts.CompletedBookings)
	assert.Equal(t, int64(64), dashboard.Counts.Reviews)

	assert.Len(t, dashboard.RecentBookings, 10)
	assert.Len(t, dashboard.TopProviders, 5)
}
