package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/models"
	"github.com/portfolio/backend/pkg/crypto"
	jwtpkg "github.com/portfolio/backend/pkg/jwt"
	"github.com/portfolio/backend/pkg/validation"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidAdminEmail  = errors.New("admin email is not a valid email address")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

// Login authenticates a user and returns access and refresh tokens
func (s *AuthService) Login(username, password string) (string, string, *models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, err
	}

	if !user.IsActive {
		return "", "", nil, ErrAccountDeactivated
	}

	if !crypto.CheckPassword(password, user.Password) {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := jwtpkg.GenerateToken(user.ID.String(), jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := jwtpkg.GenerateToken(user.ID.String(), jwtpkg.RefreshToken, s.cfg.JWTSecret, s.cfg.JWTRefreshTokenDuration)
	if err != nil {
		return "", "", nil, err
	}

	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshTokenDuration),
	}
	if err := s.db.Create(refreshTokenModel).Error; err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, &user, nil
}

// RefreshToken exchanges a stored refresh token for a new access token
func (s *AuthService) RefreshToken(refreshToken string) (string, error) {
	claims, err := jwtpkg.ValidateToken(refreshToken, s.cfg.JWTSecret)
	if err != nil || claims.TokenType != jwtpkg.RefreshToken {
		return "", ErrInvalidToken
	}

	var stored models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&stored).Error; err != nil {
		return "", ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		s.db.Delete(&stored)
		return "", ErrInvalidToken
	}

	return jwtpkg.GenerateToken(claims.UserID, jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
}

// Logout invalidates a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	return s.db.Where("token = ?", refreshToken).Delete(&models.RefreshToken{}).Error
}

// ValidateAccessToken validates a bearer token and loads the user
func (s *AuthService) ValidateAccessToken(tokenString string) (*models.User, error) {
	claims, err := jwtpkg.ValidateToken(tokenString, s.cfg.JWTSecret)
	if err != nil || claims.TokenType != jwtpkg.AccessToken {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return &user, nil
}

// EnsureDefaultAdmin creates the admin user from config if it does not exist
func (s *AuthService) EnsureDefaultAdmin() error {
	if !validation.ValidateEmail(s.cfg.AdminEmail) {
		return ErrInvalidAdminEmail
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", s.cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := crypto.HashPassword(s.cfg.AdminPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: s.cfg.AdminUsername,
		Email:    s.cfg.AdminEmail,
		Password: hashed,
		IsAdmin:  true,
		IsActive: true,
	}
	return s.db.Create(admin).Error
}
