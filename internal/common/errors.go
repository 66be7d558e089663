package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Outcome taxonomy for a document run. ErrTimedOut may succeed on a retry;
// ErrInput never will.
var (
	ErrInput         = errors.New("unreadable or unsupported input")
	ErrTimedOut      = errors.New("deadline exceeded")
	ErrResolution    = errors.New("field could not be resolved")
	ErrFilesystem    = errors.New("filesystem operation failed")
	ErrRegistryWrite = errors.New("registry write failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
