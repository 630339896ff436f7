package middleware

import (
	"fmt"
	"strings"

	"learnhub/internal/domain"
	"learnhub/internal/logger"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	UserRoleKey         = "userRole"
)

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided AuthService and sets the userID and
// role in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		if claims.TokenType != "access" {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserRoleKey, claims.Role)

		return c.Next()
	}
}

// AdminOnly requires a Protected-authenticated user with the admin role.
// It must run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(UserRoleKey).(string)
		if role != domain.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    string(domain.CodeForbidden),
				Message: "Admin role required",
				Status:  fiber.StatusForbidden,
			})
		}
		return c.Next()
	}
}

// OptionalAuth is a middleware function that optionally authenticates a user.
// If a valid access token is provided, it sets the userID and role in the
// context. Otherwise it proceeds anonymously.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			logger.Get().Debug("optional auth: JWT validation failed, proceeding as anonymous", zap.Error(err))
			return c.Next()
		}
		if claims.TokenType != "access" {
			return c.Next()
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserRoleKey, claims.Role)

		return c.Next()
	}
}
