package services

import (
	"testing"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:               "test-secret",
		JWTAccessTokenDuration:  time.Minute,
		JWTRefreshTokenDuration: time.Hour,
		AdminUsername:           "admin",
		AdminPassword:           "admin123",
		AdminEmail:              "admin@example.com",
		BcryptCost:              4,
	}
	return NewAuthService(newTestDB(t), cfg)
}

func TestEnsureDefaultAdminCreatesOnce(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.EnsureDefaultAdmin())
	require.NoError(t, svc.EnsureDefaultAdmin())

	var count int64
	require.NoError(t, svc.db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var admin models.User
	require.NoError(t, svc.db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsActive)
	assert.NotEqual(t, "admin123", admin.Password)
}

func TestEnsureDefaultAdminRejectsInvalidEmail(t *testing.T) {
	svc := newAuthService(t)
	svc.cfg.AdminEmail = "not-an-email"

	assert.ErrorIs(t, svc.EnsureDefaultAdmin(), ErrInvalidAdminEmail)

	var count int64
	require.NoError(t, svc.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.EnsureDefaultAdmin())

	access, refresh, user, err := svc.Login("admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, "admin", user.Username)

	loaded, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)

	_, _, _, err = svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = svc.Login("nobody", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.EnsureDefaultAdmin())

	_, refresh, _, err := svc.Login("admin", "admin123")
	require.NoError(t, err)

	access, err := svc.RefreshToken(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	// Access tokens are not refresh tokens
	_, err = svc.RefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, svc.Logout(refresh))
	_, err = svc.RefreshToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
