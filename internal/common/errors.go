package common

import (
	"errors"
	"fmt"
)

// AppError carries a stable code alongside the message and cause.
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

// Request preconditions. All of these must hold before any file I/O starts.
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrMissingAPIKey   = errors.New("missing api key")
	ErrDataDirNotFound = errors.New("data directory not found")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
