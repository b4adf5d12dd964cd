package domain

import (
	"fmt"
	"time"
)

// errors.go defines domain-specific error types.
type domainErr struct {
	message string
}

// Error returns the error message.
func (e domainErr) Error() string {
	return e.message
}

// NotFoundErr represents an error when a requested entity is not found.
type NotFoundErr struct {
	domainErr
}

// NewNotFoundErr creates a new NotFoundErr with the given message.
func NewNotFoundErr(message string) *NotFoundErr {
	return &NotFoundErr{
		domainErr: domainErr{message: message},
	}
}

// ValidationErr represents an error when validation fails.
type ValidationErr struct {
	domainErr
}

// NewValidationErr creates a new ValidationErr with the given message.
func NewValidationErr(message string) *ValidationErr {
	return &ValidationErr{
		domainErr: domainErr{message: message},
	}
}

// ErrorKind is the error taxonomy exposed to callers.
type ErrorKind string

const (
	ErrorKind_UnknownTool          ErrorKind = "UNKNOWN_TOOL"
	ErrorKind_InvalidArguments     ErrorKind = "INVALID_ARGUMENTS"
	ErrorKind_MissingRequiredParam ErrorKind = "MISSING_REQUIRED_PARAM"
	ErrorKind_AuthenticationFailed ErrorKind = "AUTHENTICATION_FAILED"
	ErrorKind_AuthorizationFailed  ErrorKind = "AUTHORIZATION_FAILED"
	ErrorKind_RateLimitExceeded    ErrorKind = "RATE_LIMIT_EXCEEDED"
	ErrorKind_NetworkError         ErrorKind = "NETWORK_ERROR"
	ErrorKind_TimeoutError         ErrorKind = "TIMEOUT_ERROR"
	ErrorKind_AirtableAPIError     ErrorKind = "AIRTABLE_API_ERROR"
	ErrorKind_ValidationError      ErrorKind = "VALIDATION_ERROR"
	ErrorKind_CacheError           ErrorKind = "CACHE_ERROR"
	ErrorKind_InternalError        ErrorKind = "INTERNAL_ERROR"
)

// ToolError is the structured failure carried by a failed ToolResult.
type ToolError struct {
	Kind       ErrorKind      `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Retryable  bool           `json:"retryable"`
	RetryAfter *float64       `json:"retry_after,omitempty"`
}

// NewToolError creates a non-retryable ToolError.
func NewToolError(kind ErrorKind, message string) *ToolError {
	return &ToolError{Kind: kind, Message: message}
}

// Error returns the error message prefixed with its kind.
func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// WithDetail returns e with key set in its details.
func (e *ToolError) WithDetail(key string, value any) *ToolError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// AsRetryable marks e as retryable, optionally suggesting a delay.
func (e *ToolError) AsRetryable(after time.Duration) *ToolError {
	e.Retryable = true
	if after > 0 {
		secs := after.Seconds()
		e.RetryAfter = &secs
	}
	return e
}

// BackendStatusErr is returned when the backend answers with a non-2xx status.
type BackendStatusErr struct {
	StatusCode int
	Type       string
	Message    string
	Body       string
	RetryAfter time.Duration
}

// Error returns a description of the backend failure.
func (e *BackendStatusErr) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend responded %d %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Body)
}

// TransportErr is returned when the backend could not be reached after all attempts.
type TransportErr struct {
	Attempts int
	Err      error
}

// Error returns a description of the transport failure.
func (e *TransportErr) Error() string {
	return fmt.Sprintf("backend unreachable after %d attempt(s): %v", e.Attempts, e.Err)
}

// Unwrap returns the last underlying error.
func (e *TransportErr) Unwrap() error {
	return e.Err
}
