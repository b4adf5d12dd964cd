package telemetry

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RetryPolicy bounds how often a backend request is attempted.
type RetryPolicy struct {
	MaxAttempts int
	WaitMin     time.Duration
	WaitMax     time.Duration
}

// DefaultRetryPolicy is three attempts with exponential backoff between 1s and 8s.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, WaitMin: time.Second, WaitMax: 8 * time.Second}

// NewRetryableHTTPClient returns an instrumented *http.Client that retries
// network failures up to p.MaxAttempts total attempts. HTTP responses are never
// retried, whatever their status. When every attempt failed the returned error
// wraps a *domain.TransportErr carrying the attempt count.
func NewRetryableHTTPClient(p RetryPolicy, logger *log.Logger) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = max(p.MaxAttempts-1, 0)
	retryClient.RetryWaitMin = p.WaitMin
	retryClient.RetryWaitMax = p.WaitMax
	retryClient.Backoff = retryablehttp.DefaultBackoff
	retryClient.CheckRetry = retryNetworkErrorsOnly(retryablehttp.DefaultRetryPolicy)
	retryClient.ErrorHandler = transportErrorHandler
	retryClient.Logger = nil
	if logger != nil {
		retryClient.Logger = logger
	}

	stdClient := retryClient.StandardClient()
	stdClient.Transport = otelhttp.NewTransport(
		stdClient.Transport,
		otelhttp.WithSpanNameFormatter(SpanNameFormatter),
	)
	return stdClient
}

// retryNetworkErrorsOnly retries when no response was received and policy
// considers the error recoverable. Context errors stop the loop immediately.
func retryNetworkErrorsOnly(policy retryablehttp.CheckRetry) retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err == nil {
			return false, nil
		}
		return policy(ctx, resp, err)
	}
}

func transportErrorHandler(resp *http.Response, err error, numTries int) (*http.Response, error) {
	if resp != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close() //nolint:errcheck
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	return nil, &domain.TransportErr{Attempts: numTries, Err: err}
}
