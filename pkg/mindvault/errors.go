package mindvault

import (
	"errors"
	"fmt"
)

// Sentinel errors for connection-related issues.
var (
	// ErrServerNotRunning indicates the server is not reachable.
	ErrServerNotRunning = errors.New("server is not running or unreachable")
	// ErrServerUnhealthy indicates the health check failed.
	ErrServerUnhealthy = errors.New("server health check failed")
)

// ErrorCode represents a domain error code from the API.
type ErrorCode string

const (
	ErrCodeTaskNotFound     ErrorCode = "TASK_NOT_FOUND"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// Error represents an error response from the MindVault API.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
	// Status is the HTTP status code of the response.
	Status int
}

func (e *Error) Error() string {
	if details := e.Details(); len(details) > 0 {
		return fmt.Sprintf("%s: %v", e.Message, details)
	}
	return e.Message
}

// Details returns the validation details carried by the error, if any.
func (e *Error) Details() []string {
	raw, ok := e.Context["details"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// CorrelationID returns the id under which the server logged an internal
// error, or "".
func (e *Error) CorrelationID() string {
	id, _ := e.Context["correlation_id"].(string)
	return id
}

type apiErrorResponse struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// IsTaskNotFound returns true if the error indicates a task was not found.
func IsTaskNotFound(err error) bool {
	return hasErrorCode(err, ErrCodeTaskNotFound)
}

// IsValidationFailed returns true if the error indicates validation failed.
func IsValidationFailed(err error) bool {
	return hasErrorCode(err, ErrCodeValidationFailed)
}

// IsInvalidArgument returns true if the server rejected the call itself.
func IsInvalidArgument(err error) bool {
	return hasErrorCode(err, ErrCodeInvalidArgument)
}

// IsInternal returns true if the server failed to complete the operation.
func IsInternal(err error) bool {
	return hasErrorCode(err, ErrCodeInternalError)
}

// IsServerNotRunning returns true if the error indicates the server is not running.
func IsServerNotRunning(err error) bool {
	return errors.Is(err, ErrServerNotRunning)
}

// IsServerUnhealthy returns true if the error indicates the server is unhealthy.
func IsServerUnhealthy(err error) bool {
	return errors.Is(err, ErrServerUnhealthy)
}

func hasErrorCode(err error, code ErrorCode) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
