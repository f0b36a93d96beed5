package dto

import "time"

// SuccessResponse is the envelope for every 2xx payload.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorResponse is the envelope for every non-2xx payload.
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSuccessResponse(message string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now(),
	}
}
