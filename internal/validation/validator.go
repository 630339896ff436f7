package validation

import (
	"learnhub/internal/domain"
)

const ulidLength = 26

// Validator validates request parameters before they reach the services.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID checks that an identifier parameter looks like a ULID.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if id == "" {
		errs = append(errs, domain.NewMissingFieldError(field))
		return errs
	}
	if len(id) != ulidLength {
		errs = append(errs, domain.NewInvalidFormatError(field, id))
		return errs
	}
	for _, char := range id {
		if !isCrockfordBase32(char) {
			errs = append(errs, domain.NewInvalidFormatError(field, id))
			return errs
		}
	}
	return nil
}

// NormalizeTrendRange maps the admin trend range key to a supported window.
// Unrecognized keys fall back to the default 30 day window.
func (v *Validator) NormalizeTrendRange(rangeKey string) string {
	switch rangeKey {
	case "7d", "30d", "90d":
		return rangeKey
	default:
		return "30d"
	}
}

// ValidateLimit checks an optional positive limit parameter.
func (v *Validator) ValidateLimit(limit, max int) domain.ValidationErrors {
	if limit < 0 || limit > max {
		return domain.ValidationErrors{domain.NewOutOfRangeError("limit", limit, 0, max)}
	}
	return nil
}

func isCrockfordBase32(char rune) bool {
	switch {
	case char >= '0' && char <= '9':
		return true
	case char >= 'A' && char <= 'Z':
		return char != 'I' && char != 'L' && char != 'O' && char != 'U'
	default:
		return false
	}
}
