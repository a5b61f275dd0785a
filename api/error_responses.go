package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodePackageNotFound  ErrorCode = "PACKAGE_NOT_FOUND"
	ErrorCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidQuery     ErrorCode = "INVALID_QUERY"

	// Server Error Codes (5xx)
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
	ErrorCodeIndexingFailed    ErrorCode = "INDEXING_FAILED"
	ErrorCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}

	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendValidationError sends a validation error with structured details
func SendValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendPackageNotFoundError sends a standardized package not found error
func SendPackageNotFoundError(c *gin.Context, pkg string) {
	SendError(c, http.StatusNotFound, ErrorCodePackageNotFound,
		"Package '"+pkg+"' not found")
}

// SendInternalError sends a standardized internal error and logs the cause
func SendInternalError(c *gin.Context, operation string, err error) {
	log.Printf("Error during %s: %v", operation, err)
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Failed to "+operation)
}

// SendIndexingError sends a standardized indexing failure
func SendIndexingError(c *gin.Context, operation string, err error) {
	log.Printf("Indexing error during %s: %v", operation, err)
	SendError(c, http.StatusInternalServerError, ErrorCodeIndexingFailed,
		"Failed to "+operation)
}

// SendPersistenceError sends a standardized persistence failure
func SendPersistenceError(c *gin.Context, operation string, err error) {
	log.Printf("Persistence error during %s: %v", operation, err)
	SendError(c, http.StatusInternalServerError, ErrorCodePersistenceFailed,
		"Failed to "+operation)
}
