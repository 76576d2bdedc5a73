package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"visawatch/pkg/logger"
	"visawatch/pkg/utils/dateutils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Common error type definitions
var (
	// ErrInvalidParam indicates invalid parameter error
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrResourceNotFound indicates resource not found error
	ErrResourceNotFound = errors.New("resource not found")

	// ErrServiceUnavailable indicates service unavailable error
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrUnauthorized indicates unauthorized error
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternalServer indicates internal server error
	ErrInternalServer = errors.New("internal server error")

	// ErrBadRequest indicates bad request error
	ErrBadRequest = errors.New("bad request")
)

// APIError represents a custom API error structure
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API Error (Code: %d, Message: %s): %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("API Error (Code: %d, Message: %s)", e.Code, e.Message)
}

// Unwrap supports error wrapping
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new API error
func NewAPIError(code int, message string, err error) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, err error) *APIError {
	return &APIError{
		Code:    http.StatusBadRequest,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(message string, err error) *APIError {
	return &APIError{
		Code:    http.StatusNotFound,
		Message: message,
		Err:     err,
	}
}

// NewConflictError creates a 409 Conflict error
func NewConflictError(message string, err error) *APIError {
	return &APIError{
		Code:    http.StatusConflict,
		Message: message,
		Err:     err,
	}
}

// NewInternalServerError creates a 500 Internal Server Error
func NewInternalServerError(message string, err error) *APIError {
	return &APIError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// NewServiceUnavailableError creates a 503 Service Unavailable error
func NewServiceUnavailableError(message string, err error) *APIError {
	return &APIError{
		Code:    http.StatusServiceUnavailable,
		Message: message,
		Err:     err,
	}
}

// HandleError provides unified error handling
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		// Log detailed error information
		if apiErr.Err != nil {
			logger.Error("API error occurred",
				zap.Int("code", apiErr.Code),
				zap.String("message", apiErr.Message),
				zap.Error(apiErr.Err))
		} else {
			logger.Warn("API error occurred",
				zap.Int("code", apiErr.Code),
				zap.String("message", apiErr.Message))
		}

		writeError(c, apiErr.Code, apiErr.Message, apiErr.Err)
		return
	}

	// Handle standard errors
	switch {
	case errors.Is(err, ErrInvalidParam):
		writeError(c, http.StatusBadRequest, "Invalid parameter", err)
	case errors.Is(err, ErrResourceNotFound):
		writeError(c, http.StatusNotFound, "Resource not found", err)
	case errors.Is(err, ErrServiceUnavailable):
		writeError(c, http.StatusServiceUnavailable, "Service unavailable", err)
	case errors.Is(err, ErrUnauthorized):
		writeError(c, http.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, ErrBadRequest):
		writeError(c, http.StatusBadRequest, "Bad request", err)
	default:
		// Unknown error, log details and return generic 500 error
		logger.Error("Unexpected error occurred", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// writeError writes an error response in the shared JSON shape
func writeError(c *gin.Context, statusCode int, message string, err error) {
	body := gin.H{
		"error":   true,
		"message": message,
		"code":    statusCode,
	}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(statusCode, body)
}

// ValidateRequired validates required parameters
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidParam, fieldName)
	}
	return nil
}

// ValidateDate validates an optional YYYY-MM-DD parameter
func ValidateDate(value, fieldName string) error {
	if value == "" {
		return nil
	}
	if err := dateutils.ValidateDate(value); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidParam, fieldName, err)
	}
	return nil
}
