package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/dto"
	"learnhub/internal/logger"
	"learnhub/internal/middleware"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const oauthStateCookieName = "oauthstate"

// AuthHandler handles the Google OAuth login flow and token refresh.
type AuthHandler struct {
	authService service.AuthService
	appConfig   *config.Config
}

func NewAuthHandler(authService service.AuthService, appConfig *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		appConfig:   appConfig,
	}
}

// GoogleLogin initiates the Google OAuth2 login flow.
// @Summary Initiate Google Login
// @Description Redirects the user to Google's OAuth2 consent page.
// @Tags auth
// @Success 307 {string} string "Redirects to Google"
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	appLogger := logger.Get()
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		appLogger.Error("failed to generate random state for OAuth", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(middleware.ErrorResponse{
			Code: "OAUTH_STATE_GENERATION_ERROR", Message: "Could not generate state for OAuth flow", Status: fiber.StatusInternalServerError,
		})
	}
	state := base64.URLEncoding.EncodeToString(b)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})

	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles the callback from Google OAuth2.
// @Summary Google OAuth2 Callback
// @Description Handles user authentication after Google login, issues JWTs.
// @Tags auth
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State string for CSRF protection"
// @Success 200 {object} dto.Response
// @Failure 400 {object} middleware.ErrorResponse "Invalid state or code"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	appLogger := logger.Get()
	code := c.Query("code")
	receivedState := c.Query("state")
	expectedState := c.Cookies(oauthStateCookieName)

	// The state cookie is single use.
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})

	if code == "" {
		appLogger.Warn("authorization code missing in Google OAuth callback")
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "MISSING_CODE", Message: "Authorization code is missing", Status: fiber.StatusBadRequest,
		})
	}
	if receivedState == "" || expectedState == "" || receivedState != expectedState {
		appLogger.Warn("OAuth state mismatch")
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_STATE", Message: "OAuth state mismatch or missing", Status: fiber.StatusBadRequest,
		})
	}

	accessToken, refreshToken, user, err := h.authService.HandleGoogleCallback(c.Context(), code, receivedState, expectedState)
	if err != nil {
		appLogger.Error("failed to handle Google callback", zap.Error(err))
		if errors.Is(err, service.ErrInvalidAuthState) || errors.Is(err, service.ErrFailedToExchangeToken) {
			return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
				Code: "OAUTH_CALLBACK_ERROR", Message: err.Error(), Status: fiber.StatusBadRequest,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(middleware.ErrorResponse{
			Code: "OAUTH_PROCESSING_ERROR", Message: "Error processing Google login", Status: fiber.StatusInternalServerError,
		})
	}

	appLogger.Info("Google OAuth callback successful, tokens issued", zap.String("userID", user.ID))

	return c.JSON(dto.NewSuccessResponse("login successful", dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}))
}

// RefreshToken issues a fresh token pair from a valid refresh token.
// @Summary Refresh JWT tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.Response
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST", Message: "refresh_token is required", Status: fiber.StatusBadRequest,
		})
	}

	accessToken, refreshToken, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_REFRESH_TOKEN", Message: err.Error(), Status: fiber.StatusUnauthorized,
		})
	}

	return c.JSON(dto.NewSuccessResponse("token refreshed", dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}))
}

// Logout acknowledges a logout request. JWTs are stateless, so the client
// discards its tokens; the request is logged for auditing.
// @Summary Logout user
// @Tags auth
// @Security ApiKeyAuth
// @Success 200 {object} dto.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	appLogger := logger.Get()
	if userID, ok := c.Locals(middleware.UserIDKey).(string); ok && userID != "" {
		appLogger.Info("user logout", zap.String("userID", userID))
	} else {
		appLogger.Info("logout request without identified user")
	}
	return c.JSON(dto.NewSuccessResponse("logout successful, discard your tokens", nil))
}
