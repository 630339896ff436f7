package middleware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"learnhub/internal/domain"
	"learnhub/internal/dto"
	"learnhub/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

// Manual mock for the service.AuthService interface; only ValidateJWT matters
// to the middleware.
type ManualMockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) GetGoogleLoginURL(state string) string {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (string, string, *domain.User, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func (m *ManualMockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) EncryptToken(token string) (string, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) DecryptToken(encryptedToken string) (string, error) {
	panic("not implemented in mock")
}

func accessClaims(userID, role string) *dto.AuthClaims {
	return &dto.AuthClaims{
		UserID:    userID,
		Role:      role,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(mockSvc *ManualMockAuthService)
		expectedStatus int
	}{
		{
			name:           "missing header",
			authHeader:     "",
			setupMock:      func(mockSvc *ManualMockAuthService) {},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic abc",
			setupMock:      func(mockSvc *ManualMockAuthService) {},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad_token",
			setupMock: func(mockSvc *ManualMockAuthService) {
				mockSvc.ValidateJWTFunc = func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
					return nil, errors.New("invalid jwt token")
				}
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "refresh token rejected",
			authHeader: "Bearer refresh_token",
			setupMock: func(mockSvc *ManualMockAuthService) {
				mockSvc.ValidateJWTFunc = func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
					claims := accessClaims("user123", domain.RoleUser)
					claims.TokenType = "refresh"
					return claims, nil
				}
			},
			expectedStatus: fiber.StatusForbidden,
		},
		{
			name:       "valid access token",
			authHeader: "Bearer good_token",
			setupMock: func(mockSvc *ManualMockAuthService) {
				mockSvc.ValidateJWTFunc = func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
					return accessClaims("user123", domain.RoleUser), nil
				}
			},
			expectedStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &ManualMockAuthService{}
			tt.setupMock(mockSvc)

			app := fiber.New()
			app.Get("/protected", middleware.Protected(mockSvc), func(c *fiber.Ctx) error {
				assert.Equal(t, "user123", c.Locals(middleware.UserIDKey))
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	newApp := func(role string) *fiber.App {
		mockSvc := &ManualMockAuthService{
			ValidateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return accessClaims("user123", role), nil
			},
		}
		app := fiber.New()
		app.Get("/admin", middleware.Protected(mockSvc), middleware.AdminOnly(), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer token")
		resp, err := newApp(domain.RoleAdmin).Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer token")
		resp, err := newApp(domain.RoleUser).Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
