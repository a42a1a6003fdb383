// File: internal/booking/service_test.go
package booking

import (
	"context"
	"testing"
	"time"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/provider"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRepository mimics the GORM repository, including the Provider
// preload FindByID performs.
type mockRepository struct {
	bookings  map[uuid.UUID]*Booking
	providers *mockProviderRepository
}

func newMockRepository(providers *mockProviderRepository) *mockRepository {
	return &mockRepository{
		bookings:  make(map[uuid.UUID]*Booking),
		providers: providers,
	}
}

func (m *mockRepository) Create(_ context.Context, b *Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Booking not found.")
	}
	cp := *b
	if p, perr := m.providers.FindByID(context.Background(), cp.ProviderID); perr == nil {
		cp.Provider = p
	}
	return &cp, nil
}

func (m *mockRepository) Update(_ context.Context, b *Booking) error {
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *mockRepository) ListByCustomer(_ context.Context, customerID uuid.UUID, query ListQuery) ([]Booking, error) {
	var out []Booking
	for _, b := range m.bookings {
		if b.CustomerID == customerID && (query.Status == "" || b.Status == query.Status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepository) ListByProvider(_ context.Context, providerID uuid.UUID, query ListQuery) ([]Booking, error) {
	var out []Booking
	for _, b := range m.bookings {
		if b.ProviderID == providerID && (query.Status == "" || b.Status == query.Status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepository) AdminList(_ context.Context, query ListQuery, _, _ int) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range m.bookings {
		if query.Status == "" || b.Status == query.Status {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Recent(_ context.Context, limit int) ([]Booking, error) {
	var out []Booking
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepository) CountForProvider(_ context.Context, providerID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range m.bookings {
		if b.ProviderID == providerID {
			n++
		}
	}
	return n, nil
}

func (m *mockRepository) CountForProviderByStatus(_ context.Context, providerID uuid.UUID, status string) (int64, error) {
	var n int64
	for _, b := range m.bookings {
		if b.ProviderID == providerID && b.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.bookings)), nil
}

func (m *mockRepository) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, b := range m.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

// mockProviderRepository stores providers keyed by ID and counts booking
// counter bumps.
type mockProviderRepository struct {
	providers map[uuid.UUID]*provider.Provider
}

func newMockProviderRepository() *mockProviderRepository {
	return &mockProviderRepository{providers: make(map[uuid.UUID]*provider.Provider)}
}

func (m *mockProviderRepository) addProvider(userID uuid.UUID, approved bool) *provider.Provider {
	p := &provider.Provider{
		UserID:       userID,
		BusinessName: "Test Shop",
		IsApproved:   approved,
	}
	p.ID = uuid.New()
	m.providers[p.ID] = p
	return p
}

func (m *mockProviderRepository) Create(_ context.Context, p *provider.Provider) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.providers[p.ID] = p
	return nil
}

func (m *mockProviderRepository) FindByID(_ context.Context, id uuid.UUID) (*provider.Provider, error) {
	p, ok := m.providers[id]
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Provider not found.")
	}
	return p, nil
}

func (m *mockProviderRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*provider.Provider, error) {
	for _, p := range m.providers {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, common.ErrNotFound.WithDetails("No provider profile exists for this user.")
}

func (m *mockProviderRepository) Update(_ context.Context, p *provider.Provider) error {
	m.providers[p.ID] = p
	return nil
}

func (m *mockProviderRepository) Search(_ context.Context, _ provider.SearchQuery) ([]provider.Provider, error) {
	return nil, nil
}

func (m *mockProviderRepository) AdminList(_ context.Context, _ provider.AdminProvidersQuery, _, _ int) ([]provider.Provider, int64, error) {
	return nil, 0, nil
}

func (m *mockProviderRepository) UpdateRating(_ context.Context, id uuid.UUID, average float64, count int) error {
	p, ok := m.providers[id]
	if !ok {
		return common.ErrNotFound
	}
	p.RatingAverage = average
	p.RatingCount = count
	return nil
}

func (m *mockProviderRepository) IncrementTotalBookings(_ context.Context, id uuid.UUID) error {
	p, ok := m.providers[id]
	if !ok {
		return common.ErrNotFound
	}
	p.TotalBookings++
	return nil
}

func (m *mockProviderRepository) TopRated(_ context.Context, _ int) ([]provider.Provider, error) {
	return nil, nil
}

func (m *mockProviderRepository) AllIDs(_ context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

func (m *mockProviderRepository) CountByApproval(_ context.Context, _ bool) (int64, error) {
	return 0, nil
}

func newTestService(t *testing.T) (*ServiceImplementation, *mockRepository, *mockProviderRepository) {
	t.Helper()
	providers := newMockProviderRepository()
	repo := newMockRepository(providers)
	return NewService(repo, providers, zap.NewNop()), repo, providers
}

func createRequest(providerID uuid.UUID) CreateBookingRequest {
	return CreateBookingRequest{
		ProviderID:    providerID,
		ServiceName:   "Drain cleaning",
		Address:       "500 Pine St",
		ZipCode:       "98101",
		ScheduledDate: time.Now().Add(48 * time.Hour),
		TimeSlot:      "morning",
	}
}

func requireAPIStatus(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok, "expected an API error, got %v", err)
	assert.Equal(t, want, apiErr.StatusCode)
}

func TestCreateBooking_StartsPending(t *testing.T) {
	svc, _, providers := newTestService(t)
	p := providers.addProvider(uuid.New(), true)

	b, err := svc.CreateBooking(context.Background(), uuid.New(), createRequest(p.ID))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Nil(t, b.FinalPrice)
	assert.Nil(t, b.ProviderNotes)
}

func TestCreateBooking_CarriesEstimateAndLocation(t *testing.T) {
	svc, _, providers := newTestService(t)
	p := providers.addProvider(uuid.New(), true)

	estimate := 120.0
	lat, lng := 47.6062, -122.3321
	req := createRequest(p.ID)
	req.EstimatedPrice = &estimate
	req.Lat = &lat
	req.Lng = &lng

	b, err := svc.CreateBooking(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	require.NotNil(t, b.EstimatedPrice)
	assert.Equal(t, 120.0, *b.EstimatedPrice)
	require.NotNil(t, b.Lat)
	require.NotNil(t, b.Lng)
	assert.Equal(t, 47.6062, *b.Lat)
	assert.Equal(t, -122.3321, *b.Lng)

	resp := ToBookingResponse(b)
	assert.Equal(t, b.EstimatedPrice, resp.EstimatedPrice)
	assert.Equal(t, b.Lat, resp.Lat)
	assert.Equal(t, b.Lng, resp.Lng)
}

func TestCreateBooking_UnknownProviderNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), createRequest(uuid.New()))
	requireAPIStatus(t, err, 404)
}

func TestCreateBooking_UnapprovedProviderNotFound(t *testing.T) {
	svc, _, providers := newTestService(t)
	p := providers.addProvider(uuid.New(), false)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), createRequest(p.ID))
	requireAPIStatus(t, err, 404)
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		to         string
		wantErr    bool
		wantStatus int
	}{
		{name: "pending to accepted", from: StatusPending, to: StatusAccepted},
		{name: "pending to rejected", from: StatusPending, to: StatusRejected},
		{name: "accepted to completed", from: StatusAccepted, to: StatusCompleted},
		{name: "pending to completed is blocked", from: StatusPending, to: StatusCompleted, wantErr: true, wantStatus: 400},
		{name: "rejected is terminal", from: StatusRejected, to: StatusAccepted, wantErr: true, wantStatus: 400},
		{name: "completed is terminal", from: StatusCompleted, to: StatusAccepted, wantErr: true, wantStatus: 400},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusAccepted, wantErr: true, wantStatus: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, providers := newTestService(t)
			providerUserID := uuid.New()
			p := providers.addProvider(providerUserID, true)

			b, err := svc.CreateBooking(context.Background(), uuid.New(), createRequest(p.ID))
			require.NoError(t, err)
			b.Status = tt.from
			require.NoError(t, repo.Update(context.Background(), b))

			updated, err := svc.UpdateStatus(context.Background(), providerUserID, b.ID, UpdateStatusRequest{Status: tt.to})
			if tt.wantErr {
				requireAPIStatus(t, err, tt.wantStatus)
				stored, ferr := repo.FindByID(context.Background(), b.ID)
				require.NoError(t, ferr)
				assert.Equal(t, tt.from, stored.Status, "a rejected transition must not change stored state")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
		})
	}
}

func TestUpdateStatus_WrongProviderForbidden(t *testing.T) {
	svc, _, providers := newTestService(t)
	owner := providers.addProvider(uuid.New(), true)
	providers.addProvider(uuid.New(), true)

	b, err := svc.CreateBooking(context.Background(), uuid.New(), createRequest(owner.ID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), b.ID, UpdateStatusRequest{Status: StatusAccepted})
	requireAPIStatus(t, err, 403)
}

func TestUpdateStatus_CompletionBumpsCounterAndStoresOutcome(t *testing.T) {
	svc, repo, providers := newTestService(t)
	providerUserID := uuid.New()
	p := providers.addProvider(providerUserID, true)

	b, err := svc.CreateBooking(context.Background(), uuid.New(), createRequest(p.ID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), providerUserID, b.ID, UpdateStatusRequest{Status: StatusAccepted})
	require.NoError(t, err)

	notes := "Replaced trap, flushed line."
	price := 180.0
	updated, err := svc.UpdateStatus(context.Background(), providerUserID, b.ID, UpdateStatusRequest{
		Status:        StatusCompleted,
		ProviderNotes: &notes,
		FinalPrice:    &price,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, updated.Status)
	require.NotNil(t, updated.ProviderNotes)
	assert.Equal(t, notes, *updated.ProviderNotes)
	require.NotNil(t, updated.FinalPrice)
	assert.Equal(t, price, *updated.FinalPrice)
	assert.Equal(t, 1, providers.providers[p.ID].TotalBookings)

	stored, err := repo.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
}

func TestUpdateStatus_RejectionDoesNotBumpCounter(t *testing.T) {
	svc, _, providers := newTestService(t)
	providerUserID := uuid.New()
	p := providers.addProvider(providerUserID, true)

	b, err := svc.CreateBooking(context.Background(), uuid.New(), createRequest(p.ID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), providerUserID, b.ID, UpdateStatusRequest{Status: StatusRejected})
	require.NoError(t, err)
	assert.Zero(t, providers.providers[p.ID].TotalBookings)
}

func TestCancelBooking_PendingOnly(t *testing.T) {
	svc, _, providers := newTestService(t)
	providerUserID := uuid.New()
	p := providers.addProvider(providerUserID, true)
	customerID := uuid.New()

	b, err := svc.CreateBooking(context.Background(), customerID, createRequest(p.ID))
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(context.Background(), customerID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
}

func TestCancelBooking_AcceptedIsTooLate(t *testing.T) {
	svc, _, providers := newTestService(t)
	providerUserID := uuid.New()
	p := providers.addProvider(providerUserID, true)
	customerID := uuid.New()

	b, err := svc.CreateBooking(context.Background(), customerID, createRequest(p.ID))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), providerUserID, b.ID, UpdateStatusRequest{Status: StatusAccepted})
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), customerID, b.ID)
	requireAPIStatus(t, err, 400)
}

func TestCancelledBookingCannotBeRevived(t *testing.T) {
	svc, _, providers := newTestService(t)
	providerUserID := uuid.New()
	p := providers.addProvider(providerUserID, true)
	customerID := uuid.New()

	b, err := svc.CreateBooking(context.Background(), customerID, createRequest(p.ID))
	require.NoError(t, err)
	_, err = svc.CancelBooking(context.Background(), customerID, b.ID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), providerUserID, b.ID, UpdateStatusRequest{Status: StatusAccepted})
	requireAPIStatus(t, err, 400)
}

func TestCancelBooking_WrongCustomerForbidden(t *testing.T) {
	svc, _, providers := newTestService(t)
	p := providers.addProvider(uuid.New(), true)

	b, err := svc.CreateBooking(context.Background(), uuid.New(), createRequest(p.ID))
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), uuid.New(), b.ID)
	requireAPIStatus(t, err, 403)
}

func TestGetByID_PartiesAndAdminOnly(t *testing.T) {
	svc, _, providers := newTestService(t)
	providerUserID := uuid.New()
	p := providers.addProvider(providerUserID, true)
	customerID := uuid.New()

	b, err := svc.CreateBooking(context.Background(), customerID, createRequest(p.ID))
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), customerID, common.RoleCustomer, b.ID)
	assert.NoError(t, err)
	_, err = svc.GetByID(context.Background(), uuid.New(), common.RoleAdmin, b.ID)
	assert.NoError(t, err)
	_, err = svc.GetByID(context.Background(), uuid.New(), common.RoleCustomer, b.ID)
	requireAPIStatus(t, err, 403)
}
