package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"

	// Attempt specific errors
	CodeAttemptAlreadyCompleted ErrorCode = "ATTEMPT_ALREADY_COMPLETED"
	CodeAttemptLimitExceeded    ErrorCode = "ATTEMPT_LIMIT_EXCEEDED"
	CodeQuestionNotInQuiz       ErrorCode = "QUESTION_NOT_IN_QUIZ"
	CodeOptionNotFound          ErrorCode = "OPTION_NOT_FOUND"

	// Certificate specific errors
	CodeCertificateAlreadyExists ErrorCode = "CERTIFICATE_ALREADY_EXISTS"

	// Enrollment specific errors
	CodeAlreadyEnrolled ErrorCode = "ALREADY_ENROLLED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewAttemptAlreadyCompletedError(attemptID string) *DomainError {
	return &DomainError{
		Code:    CodeAttemptAlreadyCompleted,
		Message: "Attempt has already been completed",
		Context: map[string]interface{}{"attempt_id": attemptID},
	}
}

func NewAttemptLimitExceededError(quizID string, maxAttempts int) *DomainError {
	return &DomainError{
		Code:    CodeAttemptLimitExceeded,
		Message: fmt.Sprintf("Maximum of %d attempts reached for this quiz", maxAttempts),
		Context: map[string]interface{}{"quiz_id": quizID, "max_attempts": maxAttempts},
	}
}

func NewQuestionNotInQuizError(questionID string) *DomainError {
	return &DomainError{
		Code:    CodeQuestionNotInQuiz,
		Message: "Question does not belong to the attempt's quiz",
		Context: map[string]interface{}{"question_id": questionID},
	}
}

func NewOptionNotFoundError(questionID, optionID string) *DomainError {
	return &DomainError{
		Code:    CodeOptionNotFound,
		Message: "Option does not belong to the question",
		Context: map[string]interface{}{"question_id": questionID, "option_id": optionID},
	}
}

func NewCertificateAlreadyExistsError(userID, courseID string) *DomainError {
	return &DomainError{
		Code:    CodeCertificateAlreadyExists,
		Message: "Certificate already issued for this user and course",
		Context: map[string]interface{}{"user_id": userID, "course_id": courseID},
	}
}

func NewAlreadyEnrolledError(userID, courseID string) *DomainError {
	return &DomainError{
		Code:    CodeAlreadyEnrolled,
		Message: "User is already enrolled in this course",
		Context: map[string]interface{}{"user_id": userID, "course_id": courseID},
	}
}

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level validation failures for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value)}
}
