package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/domain"
	"learnhub/internal/dto"
	"learnhub/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
	ErrEncryptionFailed      = errors.New("failed to encrypt token")
	ErrDecryptionFailed      = errors.New("failed to decrypt token")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (accessToken, refreshToken string, user *domain.User, err error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	EncryptToken(token string) (string, error)
	DecryptToken(encryptedToken string) (string, error)
}

type authServiceImpl struct {
	userRepo      domain.UserRepository
	oauth2Config  *oauth2.Config
	appConfig     *config.Config
	encryptionKey []byte // 32 bytes for AES-256
}

// NewAuthService creates a new instance of AuthService. The first 32 bytes of
// the JWT secret double as the AES key for provider-token encryption.
func NewAuthService(userRepo domain.UserRepository, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) < 32 {
		return nil, errors.New("jwt secret key must be at least 32 bytes long")
	}

	return &authServiceImpl{
		userRepo: userRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     appConfig.GoogleOAuth.ClientID,
			ClientSecret: appConfig.GoogleOAuth.ClientSecret,
			RedirectURL:  appConfig.GoogleOAuth.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		appConfig:     appConfig,
		encryptionKey: []byte(appConfig.JWT.SecretKey[:32]),
	}, nil
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (string, string, *domain.User, error) {
	appLogger := logger.Get()
	if receivedState != expectedState {
		return "", "", nil, ErrInvalidAuthState
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	client := s.oauth2Config.Client(ctx, googleToken)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return "", "", nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if userInfo.ID == "" || userInfo.Email == "" {
		return "", "", nil, errors.New("google user info is incomplete")
	}

	user, err := s.userRepo.GetUserByGoogleID(ctx, userInfo.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("error fetching user by google_id: %w", err)
	}

	encryptedAccessToken, err := s.EncryptToken(googleToken.AccessToken)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}
	var encryptedRefreshToken string
	if googleToken.RefreshToken != "" {
		encryptedRefreshToken, err = s.EncryptToken(googleToken.RefreshToken)
		if err != nil {
			return "", "", nil, fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
	}

	role := domain.RoleUser
	if s.appConfig.IsAdminEmail(userInfo.Email) {
		role = domain.RoleAdmin
	}

	if user == nil {
		newUser := &domain.User{
			GoogleID:              userInfo.ID,
			Email:                 userInfo.Email,
			Name:                  userInfo.Name,
			Role:                  role,
			ProfilePictureURL:     userInfo.Picture,
			EncryptedAccessToken:  encryptedAccessToken,
			EncryptedRefreshToken: encryptedRefreshToken,
		}
		if err := s.userRepo.CreateUser(ctx, newUser); err != nil {
			return "", "", nil, fmt.Errorf("failed to create user: %w", err)
		}
		user = newUser
		appLogger.Info("new user created via Google OAuth", zap.String("userID", user.ID), zap.String("email", user.Email))
	} else {
		// Google is source of truth for profile fields; the allowlist is
		// source of truth for the role.
		user.Email = userInfo.Email
		user.Name = userInfo.Name
		user.Role = role
		user.ProfilePictureURL = userInfo.Picture
		user.EncryptedAccessToken = encryptedAccessToken
		if encryptedRefreshToken != "" {
			user.EncryptedRefreshToken = encryptedRefreshToken
		}
		if err := s.userRepo.UpdateUser(ctx, user); err != nil {
			return "", "", nil, fmt.Errorf("failed to update user: %w", err)
		}
		appLogger.Info("user logged in via Google OAuth", zap.String("userID", user.ID), zap.String("email", user.Email))
	}

	accessToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	appLogger := logger.Get()
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", "", errors.New("not a refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", "", fmt.Errorf("failed to load user for refresh token: %w", err)
	}
	if user == nil {
		return "", "", domain.NewNotFoundError(fmt.Sprintf("user %s not found for refresh token", claims.UserID))
	}

	newAccessToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", fmt.Errorf("failed to create new access token: %w", err)
	}
	newRefreshToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", fmt.Errorf("failed to create new refresh token: %w", err)
	}

	appLogger.Info("JWT token refreshed", zap.String("userID", user.ID))
	return newAccessToken, newRefreshToken, nil
}

// EncryptToken encrypts a token using AES-GCM.
func (s *authServiceImpl) EncryptToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	ciphertext := gcm.Seal(nonce, nonce, []byte(token), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptToken decrypts a token using AES-GCM.
func (s *authServiceImpl) DecryptToken(encryptedToken string) (string, error) {
	if encryptedToken == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(encryptedToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	if len(data) < gcm.NonceSize() {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return string(plaintext), nil
}
