package usecases

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

// ClassifyError maps a tool failure onto the error taxonomy. Unrecognised errors
// become INTERNAL_ERROR with a generic message so internal text never leaks.
func ClassifyError(err error) *domain.ToolError {
	if err == nil {
		return nil
	}

	var toolErr *domain.ToolError
	if errors.As(err, &toolErr) {
		return toolErr
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewToolError(domain.ErrorKind_TimeoutError, "tool execution timed out").AsRetryable(0)
	case errors.Is(err, context.Canceled):
		return domain.NewToolError(domain.ErrorKind_TimeoutError, "tool execution was cancelled").
			AsRetryable(0).
			WithDetail("cancelled", true)
	}

	var statusErr *domain.BackendStatusErr
	if errors.As(err, &statusErr) {
		return classifyBackendStatus(statusErr)
	}

	var transportErr *domain.TransportErr
	if errors.As(err, &transportErr) {
		return domain.NewToolError(domain.ErrorKind_NetworkError, "backend is unreachable").
			AsRetryable(0).
			WithDetail("attempts", transportErr.Attempts)
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return domain.NewToolError(domain.ErrorKind_NetworkError, "backend is unreachable").AsRetryable(0)
	}

	var validationErr *domain.ValidationErr
	if errors.As(err, &validationErr) {
		return domain.NewToolError(domain.ErrorKind_ValidationError, validationErr.Error())
	}

	var notFoundErr *domain.NotFoundErr
	if errors.As(err, &notFoundErr) {
		return domain.NewToolError(domain.ErrorKind_AirtableAPIError, notFoundErr.Error()).
			WithDetail("status", http.StatusNotFound)
	}

	return domain.NewToolError(domain.ErrorKind_InternalError, "internal error while executing tool")
}

func classifyBackendStatus(e *domain.BackendStatusErr) *domain.ToolError {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.StatusCode)
	}

	var te *domain.ToolError
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		te = domain.NewToolError(domain.ErrorKind_AuthenticationFailed, message)
	case e.StatusCode == http.StatusForbidden:
		te = domain.NewToolError(domain.ErrorKind_AuthorizationFailed, message)
	case e.StatusCode == http.StatusTooManyRequests:
		te = domain.NewToolError(domain.ErrorKind_RateLimitExceeded, message).AsRetryable(e.RetryAfter)
	case e.StatusCode >= 500:
		te = domain.NewToolError(domain.ErrorKind_AirtableAPIError, message).AsRetryable(e.RetryAfter)
	default:
		te = domain.NewToolError(domain.ErrorKind_AirtableAPIError, message)
	}

	te.WithDetail("status", e.StatusCode)
	if e.Type != "" {
		te.WithDetail("type", e.Type)
	}
	return te
}
