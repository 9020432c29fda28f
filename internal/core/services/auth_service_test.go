package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/car_rental/internal/adapter/auth"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/core/ports/mocks"
	"github.com/srgjo27/car_rental/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	users   *mocks.UserRepository
	hasher  *auth.Hasher
	tokens  *auth.TokenManager
	service *services.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	f := &authFixture{
		users:  mocks.NewUserRepository(t),
		hasher: auth.NewHasher(bcrypt.MinCost),
		tokens: auth.NewTokenManager("test-secret", "car-rental-api"),
	}
	f.service = services.NewAuthService(f.users, f.hasher, f.tokens, time.Hour, 8*time.Hour)
	return f
}

func (f *authFixture) storedUser(t *testing.T, role domain.Role, password string) *domain.User {
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)

	return &domain.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", PasswordHash: hash, Role: role}
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)

	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ada@example.com" && u.Role == domain.RoleUser &&
			u.PasswordHash != "secret1" && u.ProfileImage == domain.DefaultProfileImage
	})).Return(nil)

	res, err := f.service.Register(context.Background(), services.RegisterRequest{
		Name:     "Ada",
		Email:    "  Ada@Example.com ",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	id, err := f.tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id.UserID)
	assert.Equal(t, domain.RoleUser, id.Role)
}

func TestRegister_Duplicate(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyExists)

	_, err := f.service.Register(context.Background(), services.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.EqualError(t, err, "User already exists")
}

func TestRegister_CannotSelfPromote(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(context.Background(), services.RegisterRequest{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	user := f.storedUser(t, domain.RoleUser, "secret1")

	f.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	f.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

	res, err := f.service.Login(context.Background(), services.LoginRequest{Email: "ADA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)

	_, err = f.service.Login(context.Background(), services.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.service.Login(context.Background(), services.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAdminLogin(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.storedUser(t, domain.RoleAdmin, "secret1")
	admin.Email = "root@example.com"
	user := f.storedUser(t, domain.RoleUser, "secret1")

	f.users.On("GetByEmail", mock.Anything, "root@example.com").Return(admin, nil)
	f.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	res, err := f.service.AdminLogin(context.Background(), services.LoginRequest{Email: "root@example.com", Password: "secret1"})
	require.NoError(t, err)

	id, err := f.tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.True(t, id.IsAdmin())

	_, err = f.service.AdminLogin(context.Background(), services.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.storedUser(t, domain.RoleUser, "secret1")
	caller := domain.Identity{UserID: user.ID, Role: domain.RoleUser}

	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.users.On("UpdatePassword", mock.Anything, user.ID, mock.MatchedBy(func(hash string) bool {
		return f.hasher.Compare(hash, "secret2") == nil
	})).Return(nil).Once()

	err := f.service.ChangePassword(context.Background(), caller, services.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"})
	require.NoError(t, err)

	err = f.service.ChangePassword(context.Background(), caller, services.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "secret3"})
	assert.ErrorIs(t, err, services.ErrCurrentPasswordIncorrect)
	assert.EqualError(t, err, "Current password is incorrect")
}
