package dto

import "time"

// Response is the envelope wrapping every API response.
// @Description Standard response envelope
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse wraps a failure message in the envelope.
func NewErrorResponse(message string) Response {
	return Response{
		Success:   false,
		Message:   message,
		Data:      nil,
		Timestamp: time.Now(),
	}
}
