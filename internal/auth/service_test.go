// File: internal/auth/service_test.go
package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/provider"
	"fixitnow_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUserRepository struct {
	users map[uuid.UUID]*user.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uuid.UUID]*user.User)}
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	for _, existing := range m.users {
		if existing.Email == strings.ToLower(u.Email) {
			return common.ErrConflict.WithDetails("A user with this email already exists.")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(u.Email)
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, common.ErrNotFound.WithDetails("User not found.")
}

func (m *mockUserRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrNotFound.WithDetails("User not found.")
	}
	return u, nil
}

func (m *mockUserRepository) Update(_ context.Context, u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) List(_ context.Context, _ user.AdminUsersQuery) ([]user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) CountByRole(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

// mockProviderService records profile creations.
type mockProviderService struct {
	created map[uuid.UUID]string
}

func newMockProviderService() *mockProviderService {
	return &mockProviderService{created: make(map[uuid.UUID]string)}
}

func (m *mockProviderService) CreateProfile(_ context.Context, userID uuid.UUID, businessName string, _ []string) (*provider.Provider, error) {
	m.created[userID] = businessName
	p := &provider.Provider{UserID: userID, BusinessName: businessName}
	p.ID = uuid.New()
	return p, nil
}

func (m *mockProviderService) Search(_ context.Context, _ provider.SearchQuery) ([]provider.Provider, error) {
	return nil, nil
}

func (m *mockProviderService) GetByID(_ context.Context, _ uuid.UUID) (*provider.Provider, error) {
	return nil, common.ErrNotFound
}

func (m *mockProviderService) GetByUserID(_ context.Context, _ uuid.UUID) (*provider.Provider, error) {
	return nil, common.ErrNotFound
}

func (m *mockProviderService) UpdateProfile(_ context.Context, _ uuid.UUID, _ provider.UpdateProfileRequest) (*provider.Provider, error) {
	return nil, common.ErrNotFound
}

func (m *mockProviderService) GetStats(_ context.Context, _ uuid.UUID) (*provider.StatsResponse, error) {
	return nil, common.ErrNotFound
}

func (m *mockProviderService) AdminList(_ context.Context, _ provider.AdminProvidersQuery, _, _ int) ([]provider.Provider, int64, error) {
	return nil, 0, nil
}

func (m *mockProviderService) AdminSetStatus(_ context.Context, _ uuid.UUID, _ provider.AdminSetStatusRequest) (*provider.Provider, error) {
	return nil, common.ErrNotFound
}

func newAuthTestService(t *testing.T) (*ServiceImplementation, *mockUserRepository, *mockProviderService) {
	t.Helper()
	users := newMockUserRepository()
	providers := newMockProviderService()
	tokens := testTokenService(time.Hour)
	return NewService(users, providers, tokens, zap.NewNop()), users, providers
}

func requireAPIStatus(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok, "expected an API error, got %v", err)
	assert.Equal(t, want, apiErr.StatusCode)
}

func TestRegister_CustomerDefaultsAndHashing(t *testing.T) {
	svc, users, providers := newAuthTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, common.RoleCustomer, resp.User.Role)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", stored.PasswordHash, "password must be stored hashed")
	assert.Empty(t, providers.created)
}

func TestRegister_ProviderCreatesProfile(t *testing.T) {
	svc, _, providers := newAuthTestService(t)

	business := "Ace Plumbing"
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:         "Bob",
		Email:        "bob@example.com",
		Password:     "correct horse",
		Role:         common.RoleProvider,
		BusinessName: &business,
		Categories:   []string{"plumbing"},
	})
	require.NoError(t, err)
	assert.Equal(t, common.RoleProvider, resp.User.Role)
	assert.Equal(t, business, providers.created[resp.User.ID])
}

func TestRegister_ProviderWithoutBusinessNameRejected(t *testing.T) {
	svc, _, _ := newAuthTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "correct horse",
		Role:     common.RoleProvider,
	})
	requireAPIStatus(t, err, 422)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newAuthTestService(t)

	req := RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "correct horse"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	requireAPIStatus(t, err, 409)
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _, _ := newAuthTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ALICE@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	svc, _, _ := newAuthTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "alice@example.com", Password: "wrong"})
	requireAPIStatus(t, err, 401)
}

func TestLogin_UnknownEmailUnauthorizedNotNotFound(t *testing.T) {
	svc, _, _ := newAuthTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	requireAPIStatus(t, err, 401)
}

func TestLogin_SuspendedAccountForbidden(t *testing.T) {
	svc, users, _ := newAuthTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	u, err := users.FindByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, users.Update(context.Background(), u))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "alice@example.com", Password: "correct horse"})
	requireAPIStatus(t, err, 403)
}
