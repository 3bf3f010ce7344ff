package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/identity"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/auth"
	"github.com/salon/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(bool), args.Error(1)
}

// stubRoleResolver returns a fixed role, standing in for the user-store
// backed resolver.
type stubRoleResolver struct {
	role identity.Role
	err  error
}

func (r stubRoleResolver) ResolveRole(_ context.Context, _ uuid.UUID) (identity.Role, error) {
	return r.role, r.err
}

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-chars-long!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "salon-backend-test",
		MaxRefreshCount:        5,
	})
}

func newAuthService(repo *MockUserRepository, resolver identity.RoleResolver) *AuthService {
	return NewAuthService(repo, resolver, newJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func newUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("dana", "s3cret-pass", "Dana", role)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	repo := new(MockUserRepository)
	service := newAuthService(repo, stubRoleResolver{role: identity.RoleEmployee})

	user := newUser(t, identity.RoleEmployee)
	repo.On("FindByUsername", mock.Anything, "dana").Return(user, nil)

	resp, err := service.Login(context.Background(), LoginRequest{Username: "dana", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, "employee", resp.User.Role)
	assert.Contains(t, resp.User.Capabilities, "giftcards:write")
	assert.NotContains(t, resp.User.Capabilities, "payroll:read")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	service := newAuthService(repo, stubRoleResolver{role: identity.RoleEmployee})

	user := newUser(t, identity.RoleEmployee)
	repo.On("FindByUsername", mock.Anything, "dana").Return(user, nil)

	_, err := service.Login(context.Background(), LoginRequest{Username: "dana", Password: "wrong"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := new(MockUserRepository)
	service := newAuthService(repo, stubRoleResolver{role: identity.RoleEmployee})

	user := newUser(t, identity.RoleEmployee)
	require.NoError(t, user.Deactivate())
	repo.On("FindByUsername", mock.Anything, "dana").Return(user, nil)

	_, err := service.Login(context.Background(), LoginRequest{Username: "dana", Password: "s3cret-pass"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Refresh_RotatesAndRevokesOldToken(t *testing.T) {
	repo := new(MockUserRepository)
	service := newAuthService(repo, stubRoleResolver{role: identity.RoleSuperadmin})

	user := newUser(t, identity.RoleSuperadmin)
	repo.On("FindByUsername", mock.Anything, "dana").Return(user, nil)

	login, err := service.Login(context.Background(), LoginRequest{Username: "dana", Password: "s3cret-pass"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.RefreshToken)

	// The consumed refresh token cannot be replayed
	_, err = service.Refresh(context.Background(), RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Refresh_DeactivatedAccount(t *testing.T) {
	repo := new(MockUserRepository)
	service := newAuthService(repo, stubRoleResolver{err: shared.ErrForbidden})

	user := newUser(t, identity.RoleEmployee)
	repo.On("FindByUsername", mock.Anything, "dana").Return(user, nil)

	login, err := service.Login(context.Background(), LoginRequest{Username: "dana", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), RefreshRequest{RefreshToken: login.Tokens.RefreshToken})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Logout_BlocksToken(t *testing.T) {
	repo := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(repo, stubRoleResolver{role: identity.RoleEmployee}, newJWTService(), blacklist, zap.NewNop())

	user := newUser(t, identity.RoleEmployee)
	repo.On("FindByUsername", mock.Anything, "dana").Return(user, nil)

	login, err := service.Login(context.Background(), LoginRequest{Username: "dana", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), login.Tokens.AccessToken))

	claims, err := newJWTService().ValidateAccessToken(login.Tokens.AccessToken)
	require.NoError(t, err)
	blacklisted, err := blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}
