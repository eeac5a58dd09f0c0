package service

import (
	"context"
	"testing"
	"time"

	"comichub/internal/api/models"
	"comichub/internal/config"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPermissionRepository mocks the PermissionRepository interface
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) FindGroupByName(ctx context.Context, name string) (*models.PermissionGroup, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PermissionGroup), args.Error(1)
}

func (m *MockPermissionRepository) FindGroupByID(ctx context.Context, id int64) (*models.PermissionGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PermissionGroup), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-key-that-is-long-enough!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func newTestAuthService(userRepo *MockUserRepository, rtRepo *MockRefreshTokenRepository, permRepo *MockPermissionRepository) AuthService {
	return NewAuthService(userRepo, rtRepo, permRepo, testConfig())
}

func TestRegisterSuccess(t *testing.T) {
	userRepo := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	permRepo := new(MockPermissionRepository)
	svc := newTestAuthService(userRepo, rtRepo, permRepo)

	userRepo.On("FindByUsername", mock.Anything, "ann").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "ann@x.com").Return(nil, gorm.ErrRecordNotFound)
	permRepo.On("FindGroupByName", mock.Anything, models.GroupUser).
		Return(&models.PermissionGroup{ID: 2, Name: models.GroupUser}, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register(context.Background(), RegisterParams{
		Username: "ann",
		Password: "p@ssW0rd",
		Email:    "ann@x.com",
		Nickname: "Ann",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, "Ann", user.Nickname)
	assert.Equal(t, int64(2), user.PermissionGroupID)
	// the stored password must be a hash, never the plaintext
	assert.NotEqual(t, "p@ssW0rd", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("p@ssW0rd")))
	userRepo.AssertExpectations(t)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockPermissionRepository))

	userRepo.On("FindByUsername", mock.Anything, "ann").
		Return(&models.User{ID: "existing", Username: "ann"}, nil)

	user, err := svc.Register(context.Background(), RegisterParams{
		Username: "ann",
		Password: "p@ssW0rd",
		Email:    "other@x.com",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUserExists)
	// no Create call ever happened
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDefaultsNicknameToUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	permRepo := new(MockPermissionRepository)
	svc := newTestAuthService(userRepo, rtRepo, permRepo)

	userRepo.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "bob@x.com").Return(nil, gorm.ErrRecordNotFound)
	permRepo.On("FindGroupByName", mock.Anything, models.GroupUser).
		Return(&models.PermissionGroup{ID: 2, Name: models.GroupUser}, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register(context.Background(), RegisterParams{
		Username: "bob",
		Password: "hunter22",
		Email:    "bob@x.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "bob", user.Nickname)
}

// raceRegisterFixture sets up a signup where both pre-checks miss and the
// insert itself trips a unique index, as happens when two signups race.
func raceRegisterFixture(t *testing.T, insertErr error) AuthService {
	t.Helper()
	userRepo := new(MockUserRepository)
	permRepo := new(MockPermissionRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), permRepo)

	userRepo.On("FindByUsername", mock.Anything, "ann").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "ann@x.com").Return(nil, gorm.ErrRecordNotFound)
	permRepo.On("FindGroupByName", mock.Anything, models.GroupUser).
		Return(&models.PermissionGroup{ID: 2, Name: models.GroupUser}, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(insertErr)
	return svc
}

func TestRegisterRaceOnUsernameIndex(t *testing.T) {
	svc := raceRegisterFixture(t, &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"})

	_, err := svc.Register(context.Background(), RegisterParams{
		Username: "ann", Password: "p@ssW0rd", Email: "ann@x.com",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterRaceOnEmailIndex(t *testing.T) {
	svc := raceRegisterFixture(t, &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})

	_, err := svc.Register(context.Background(), RegisterParams{
		Username: "ann", Password: "p@ssW0rd", Email: "ann@x.com",
	})
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegisterRejectsBadIntroduction(t *testing.T) {
	svc := newTestAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), new(MockPermissionRepository))

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Register(context.Background(), RegisterParams{
		Username:     "carol",
		Password:     "hunter22",
		Email:        "carol@x.com",
		Introduction: string(long),
	})
	assert.ErrorIs(t, err, ErrInvalidIntroduction)
}

func loginFixture(t *testing.T) (*MockUserRepository, *MockRefreshTokenRepository, AuthService, *models.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("p@ssW0rd"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &models.User{
		ID:       "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba",
		Username: "ann",
		Password: string(hash),
	}

	userRepo := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(userRepo, rtRepo, new(MockPermissionRepository))
	return userRepo, rtRepo, svc, user
}

func TestLoginSuccess(t *testing.T) {
	userRepo, rtRepo, svc, user := loginFixture(t)

	userRepo.On("FindByUsername", mock.Anything, "ann").Return(user, nil)
	rtRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	access, refresh, got, err := svc.Login(context.Background(), "ann", "p@ssW0rd")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, user.ID, got.ID)

	claims, err := svc.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo, _, svc, user := loginFixture(t)
	userRepo.On("FindByUsername", mock.Anything, "ann").Return(user, nil)

	_, _, _, err := svc.Login(context.Background(), "ann", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUserSameError(t *testing.T) {
	userRepo, _, svc, _ := loginFixture(t)
	userRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := svc.Login(context.Background(), "nobody", "whatever")
	// indistinguishable from a wrong password
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), new(MockPermissionRepository))
	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAccessTokenRotates(t *testing.T) {
	userRepo := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(userRepo, rtRepo, new(MockPermissionRepository))

	user := &models.User{ID: "7b7e2f5e-35e8-4be1-9ce8-1ca5d5f3c6ba", Username: "ann"}
	stored := &models.RefreshToken{
		ID:        "rt-1",
		UserID:    user.ID,
		Token:     "old-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	rtRepo.On("FindByToken", mock.Anything, "old-token").Return(stored, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	rtRepo.On("Delete", mock.Anything, "rt-1").Return(nil)
	rtRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	access, refresh, err := svc.RefreshAccessToken(context.Background(), "old-token")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, "old-token", refresh)
	rtRepo.AssertCalled(t, "Delete", mock.Anything, "rt-1")
}

func TestRefreshAccessTokenRevoked(t *testing.T) {
	rtRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(new(MockUserRepository), rtRepo, new(MockPermissionRepository))

	stored := &models.RefreshToken{
		ID:        "rt-1",
		Token:     "old-token",
		ExpiresAt: time.Now().Add(time.Hour),
		Revoked:   true,
	}
	rtRepo.On("FindByToken", mock.Anything, "old-token").Return(stored, nil)

	_, _, err := svc.RefreshAccessToken(context.Background(), "old-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAccessTokenExpired(t *testing.T) {
	rtRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(new(MockUserRepository), rtRepo, new(MockPermissionRepository))

	stored := &models.RefreshToken{
		ID:        "rt-1",
		Token:     "old-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	rtRepo.On("FindByToken", mock.Anything, "old-token").Return(stored, nil)
	rtRepo.On("Delete", mock.Anything, "rt-1").Return(nil)

	_, _, err := svc.RefreshAccessToken(context.Background(), "old-token")
	assert.ErrorIs(t, err, ErrExpiredToken)
}
