package middleware

import (
	"strconv"

	"learnhub/internal/domain"
	"learnhub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateIDParam validates a path parameter as a ULID and stores it in locals.
func (vm *ValidationMiddleware) ValidateIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params(param)
		if errs := vm.validator.ValidateID(param, id); len(errs) > 0 {
			return errs // handled by ErrorHandler
		}
		c.Locals("validated_"+param, id)
		return c.Next()
	}
}

// ValidateTrendParams normalizes the admin trend query parameters.
// Unrecognized range keys resolve to the default 30 day window.
func (vm *ValidationMiddleware) ValidateTrendParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rangeKey := vm.validator.NormalizeTrendRange(c.Query("range", "30d"))
		c.Locals("validated_range", rangeKey)
		return c.Next()
	}
}

// ValidateLimitParam validates an optional limit query parameter with a default.
func (vm *ValidationMiddleware) ValidateLimitParam(def, max int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := def
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil {
				return domain.ValidationErrors{domain.NewInvalidFormatError("limit", limitStr)}
			}
			limit = parsed
		}
		if errs := vm.validator.ValidateLimit(limit, max); len(errs) > 0 {
			return errs
		}
		c.Locals("validated_limit", limit)
		return c.Next()
	}
}
