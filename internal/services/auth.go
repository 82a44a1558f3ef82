package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/squadforge/squadforge/internal/config"
	"github.com/squadforge/squadforge/internal/models"
	"github.com/squadforge/squadforge/internal/utils"
	"github.com/squadforge/squadforge/pkg/logger"
	"github.com/squadforge/squadforge/pkg/response"
	"gorm.io/gorm"
)

// AuthService issues and renews sessions. Identities are created here and
// only here, either by local registration or by the OAuth exchange.
type AuthService struct {
	db         *gorm.DB
	profileSvc *ProfileService
	jwtConfig  *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		db:         db,
		profileSvc: NewProfileService(db),
		jwtConfig:  jwtCfg,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OAuthExchangeRequest carries a provider profile already verified by the
// OAuth gateway in front of this API. This endpoint trusts the gateway, not
// the browser; it must not be exposed directly to the public internet.
type OAuthExchangeRequest struct {
	Provider          string `json:"provider" binding:"required"`
	ProviderAccountID string `json:"provider_account_id" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Name              string `json:"name"`
	Image             string `json:"image"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type SessionResult struct {
	Token           string       `json:"token"`
	ExpireAt        time.Time    `json:"expire_at"`
	RefreshToken    string       `json:"refresh_token"`
	RefreshExpireAt time.Time    `json:"refresh_expire_at"`
	User            *models.User `json:"user"`
}

// Register creates a local-password account.
func (s *AuthService) Register(req *RegisterRequest, clientIP, userAgent string) (*SessionResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, response.NewConflict("an account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, Name: req.Name, PasswordHash: hash}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("an account with this email already exists")
		}
		return nil, err
	}

	logger.Info().Uint("user_id", user.ID).Msg("account registered")
	return s.issueSession(&user, clientIP, userAgent)
}

// Login authenticates a local-password account.
func (s *AuthService) Login(req *LoginRequest, clientIP, userAgent string) (*SessionResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if user.PasswordHash == "" || !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	return s.issueSession(&user, clientIP, userAgent)
}

// OAuthExchange turns a gateway-verified provider profile into a session,
// creating the user on first login and linking the provider account.
func (s *AuthService) OAuthExchange(req *OAuthExchangeRequest, clientIP, userAgent string) (*SessionResult, error) {
	user, err := s.profileSvc.EnsureUser(req.Email, req.Name, req.Image)
	if err != nil {
		return nil, err
	}

	var link models.OAuthAccount
	err = s.db.Where("provider = ? AND provider_account_id = ?", req.Provider, req.ProviderAccountID).
		First(&link).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		link = models.OAuthAccount{
			UserID:            user.ID,
			Provider:          req.Provider,
			ProviderAccountID: req.ProviderAccountID,
		}
		if err := s.db.Create(&link).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	case err != nil:
		return nil, err
	case link.UserID != user.ID:
		return nil, response.NewConflict("this provider account is linked to another user")
	}

	return s.issueSession(user, clientIP, userAgent)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued.
func (s *AuthService) Refresh(req *RefreshRequest, clientIP, userAgent string) (*SessionResult, error) {
	hash := hashRefreshToken(req.RefreshToken)

	var record models.RefreshToken
	if err := s.db.Where("token_hash = ?", hash).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid refresh token")
		}
		return nil, err
	}
	if !record.Active(time.Now()) {
		return nil, response.NewUnauthorized("refresh token expired or revoked")
	}

	var user models.User
	if err := s.db.First(&user, record.UserID).Error; err != nil {
		return nil, response.NewUnauthorized("invalid refresh token")
	}

	now := time.Now()
	record.RevokedAt = &now
	if err := s.db.Save(&record).Error; err != nil {
		return nil, err
	}

	return s.issueSession(&user, clientIP, userAgent)
}

// Logout revokes the presented refresh token. Access tokens expire on
// their own.
func (s *AuthService) Logout(userID uint, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	now := time.Now()
	return s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND token_hash = ? AND revoked_at IS NULL", userID, hashRefreshToken(refreshToken)).
		Update("revoked_at", &now).Error
}

// GetUserByID loads the session user.
func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// CleanupExpiredRefreshTokens deletes tokens past their expiry. Run
// periodically by the scheduler.
func (s *AuthService) CleanupExpiredRefreshTokens() (int64, error) {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

func (s *AuthService) issueSession(user *models.User, clientIP, userAgent string) (*SessionResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshHash, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	refreshExpireAt := time.Now().Add(time.Duration(s.jwtConfig.RefreshExpireHour) * time.Hour)
	record := models.RefreshToken{
		UserID:      user.ID,
		TokenHash:   refreshHash,
		ExpiresAt:   refreshExpireAt,
		CreatedByIP: clientIP,
		UserAgent:   userAgent,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	return &SessionResult{
		Token:           token,
		ExpireAt:        time.Now().Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
		RefreshToken:    refreshToken,
		RefreshExpireAt: refreshExpireAt,
		User:            user,
	}, nil
}

func generateRefreshToken() (token, hash string, err error) {
	raw := make([]byte, 32)
	if _, err = rand.Read(raw); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(raw)
	return token, hashRefreshToken(token), nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
