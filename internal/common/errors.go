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

// Error taxonomy for the analysis pipeline.
//
// ErrNoDelimitersFound, ErrMalformedJSON and ErrSchemaValidation are always
// recovered locally into a typed fallback result and never reach the caller.
// ErrRateLimited refuses the pipeline before any model call happens.
// ErrUpstreamCall is the only class that surfaces to the end user: when the
// model provider gives no usable reply, there is no local data to substitute.
var (
	ErrNoDelimitersFound = errors.New("no JSON delimiters found in model reply")
	ErrMalformedJSON     = errors.New("malformed JSON fragment")
	ErrSchemaValidation  = errors.New("schema validation failed")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrUpstreamCall      = errors.New("upstream model call failed")
	ErrInvalidInput      = errors.New("invalid input")
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
