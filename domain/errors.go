package domain

import (
	"errors"
	"fmt"
)

// Error codes carried by DomainError
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeFileNotFound   = "FILE_NOT_FOUND"
	ErrCodeMarkerNotFound = "MARKER_NOT_FOUND"
	ErrCodeConfigError    = "CONFIG_ERROR"
	ErrCodeAnalysisError  = "ANALYSIS_ERROR"
	ErrCodeOutputError    = "OUTPUT_ERROR"
)

// DomainError is the error type returned by use cases and services
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) *DomainError {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewMarkerNotFoundError creates an error for a script region that could not be located.
// The message is shown to the user as-is, so it carries no cause.
func NewMarkerNotFoundError(message string) *DomainError {
	return NewDomainError(ErrCodeMarkerNotFound, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *DomainError {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) *DomainError {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) *DomainError {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// ErrorCode returns the code of the first DomainError in err's chain, or "" if none
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
