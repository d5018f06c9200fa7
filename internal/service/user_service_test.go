package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamzaidakbar/ecommerce-app/internal/auth"
	"github.com/iamzaidakbar/ecommerce-app/internal/config"
	"github.com/iamzaidakbar/ecommerce-app/internal/repository/fixture"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	cfg := config.DefaultConfig()
	store := fixture.NewStore()
	return NewUserService(store.Users(), nil, &cfg.JWT, &cfg.Auth)
}

func TestLoginWithSeedCredentials(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	token, u, err := svc.Login(ctx, "john.doe@example.com", "Password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "John", u.FirstName)

	cfg := config.DefaultConfig()
	claims, err := auth.ParseToken(&cfg.JWT, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Role, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newUserService(t)

	_, _, err := svc.Login(context.Background(), "john.doe@example.com", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "Password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register(context.Background(), "John", "Doe", "john.doe@example.com", "Password123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Jane", "Smith", "jane.smith@example.com", "Secret123")
	require.NoError(t, err)
	assert.False(t, u.IsEmailVerified)

	token, _, err := svc.Login(ctx, "jane.smith@example.com", "Secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestChangePassword(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, 10, "WrongPass1", "NewSecret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, 10, "Password123", "NewSecret1"))

	_, _, err = svc.Login(ctx, "john.doe@example.com", "Password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "john.doe@example.com", "NewSecret1")
	require.NoError(t, err)
}

func TestUpdateProfileEmailResetsVerification(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.UpdateProfile(ctx, 10, "John", "Doe", "john.new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "john.new@example.com", u.Email)
	assert.False(t, u.IsEmailVerified)

	// 换成已占用的邮箱被拒
	_, err = svc.UpdateProfile(ctx, 10, "John", "Doe", "admin@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestOTPUnavailableWithoutRedis(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.VerifyEmail(ctx, "john.doe@example.com", "123456")
	assert.ErrorIs(t, err, ErrOTPUnavailable)

	err = svc.ResetPassword(ctx, "some-token", "NewSecret1")
	assert.ErrorIs(t, err, ErrOTPUnavailable)
}

func TestProfileTabsByRole(t *testing.T) {
	svc := newUserService(t)

	assert.Equal(t, []string{"profile", "orders", "settings"}, svc.ProfileTabs("user"))
	assert.Equal(t, []string{"profile", "orders", "settings", "users", "products"}, svc.ProfileTabs("admin"))
}
