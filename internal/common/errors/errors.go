// Package errors provides standardized error handling for focus model queries.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Parameter validation errors, raised before any network I/O.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"

	// Transport errors talking to the focus model service.
	ErrCodeRequestFailed  ErrorCode = "REQUEST_FAILED"
	ErrCodeRequestTimeout ErrorCode = "REQUEST_TIMEOUT"
	ErrCodeBadHTTPStatus  ErrorCode = "BAD_HTTP_STATUS"

	// Response payload errors.
	ErrCodeTableParseFailed ErrorCode = "TABLE_PARSE_FAILED"
	ErrCodeImageParseFailed ErrorCode = "IMAGE_PARSE_FAILED"

	// Data errors.
	ErrCodeEmptyTable ErrorCode = "EMPTY_TABLE"

	// Image metadata errors.
	ErrCodeMetadataReadFailed  ErrorCode = "METADATA_READ_FAILED"
	ErrCodeMetadataWriteFailed ErrorCode = "METADATA_WRITE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidParameterError creates a non-retryable parameter validation error.
func NewInvalidParameterError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidParameter,
		Message:   "Invalid query parameter",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestFailedError creates a retryable transport error.
func NewRequestFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestFailed,
		Message:   "Focus model service request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestTimeoutError creates a retryable request timeout error.
func NewRequestTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestTimeout,
		Message:   "Focus model service request timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBadHTTPStatusError creates a retryable non-success status error.
func NewBadHTTPStatusError(status int, reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBadHTTPStatus,
		Message:   "Bad response from focus model service",
		Details:   fmt.Sprintf("status: %d, reason: %s", status, reason),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTableParseError creates a non-retryable table parse error.
func NewTableParseError(line int, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTableParseFailed,
		Message:   "Focus table does not match expected row structure",
		Details:   fmt.Sprintf("line: %d, error: %s", line, details),
		Retryable: false,
		Metadata:  map[string]interface{}{"line": line},
		Timestamp: time.Now().UTC(),
	}
}

// NewImageParseError creates a non-retryable plot payload error.
func NewImageParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeImageParseFailed,
		Message:   "Focus plot payload is not a PNG image",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyTableError creates a non-retryable empty table error.
func NewEmptyTableError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyTable,
		Message:   "Focus table has no rows, mean is undefined",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMetadataReadError creates a non-retryable header read error.
func NewMetadataReadError(target string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMetadataReadFailed,
		Message:   "Cannot read image metadata",
		Details:   fmt.Sprintf("target: %s, error: %s", target, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMetadataWriteError creates a non-retryable header write error.
func NewMetadataWriteError(target string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMetadataWriteFailed,
		Message:   "Cannot write image metadata",
		Details:   fmt.Sprintf("target: %s, error: %s", target, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf returns the ErrorCode carried by err, or "" if err is not a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsCode checks whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsRetryable checks whether err is a StandardError the caller may re-issue.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PARAMETER"):
		return "VALIDATION"
	case strings.Contains(codeStr, "REQUEST") || strings.Contains(codeStr, "HTTP"):
		return "NETWORK"
	case strings.Contains(codeStr, "PARSE"):
		return "PARSE"
	case strings.Contains(codeStr, "TABLE"):
		return "DATA"
	case strings.Contains(codeStr, "METADATA"):
		return "METADATA"
	default:
		return "OTHER"
	}
}
