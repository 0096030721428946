package domain

import "fmt"

// ErrorCode represents a domain error code.
type ErrorCode string

const (
	ErrCodeTaskNotFound     ErrorCode = "TASK_NOT_FOUND"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents an error in the domain layer with context.
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewTaskNotFoundError creates a task not found error.
func NewTaskNotFoundError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeTaskNotFound,
		Message: fmt.Sprintf("No task with id %d", id),
		Context: map[string]interface{}{"id": id},
	}
}

// NewValidationError creates a validation error.
func NewValidationError(details []string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Context: map[string]interface{}{"details": details},
	}
}

// NewFieldError creates a validation error for a single named field.
func NewFieldError(field, reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("Invalid %s: %s", field, reason),
		Context: map[string]interface{}{
			"field":   field,
			"details": []string{field + " " + reason},
		},
	}
}

// NewInvalidArgumentError creates an error for a call that misuses the
// store contract.
func NewInvalidArgumentError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidArgument,
		Message: message,
		Context: map[string]interface{}{},
	}
}

// NewInternalError creates an internal error. The backend detail is logged
// under correlationID and never exposed.
func NewInternalError(correlationID string) *DomainError {
	ctx := map[string]interface{}{}
	if correlationID != "" {
		ctx["correlation_id"] = correlationID
	}
	return &DomainError{
		Code:    ErrCodeInternalError,
		Message: "An internal error occurred",
		Context: ctx,
	}
}
