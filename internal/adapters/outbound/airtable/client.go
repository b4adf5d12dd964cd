// Package airtable provides the client used by the tool handlers to reach the
// Airtable-style REST data API.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxErrorBody = 4 << 10

var _ domain.BackendClient = Client{}

// Client is a thin JSON client for the backend data API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a new client.
func NewClient(baseURL string, apiKey string, httpClient *http.Client) Client {
	return Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// Do performs req and returns the raw JSON response body. Non-2xx responses are
// returned as *domain.BackendStatusErr.
func (c Client) Do(ctx context.Context, req domain.BackendRequest) (json.RawMessage, error) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
		attribute.String("backend.method", req.Method),
		attribute.String("backend.path", req.Path),
	))
	defer span.End()

	httpReq, err := c.newRequest(spanCtx, req)
	if err != nil {
		telemetry.RecordErrorAndStatus(span, err)
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		telemetry.RecordErrorAndStatus(span, err)
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.RecordErrorAndStatus(span, err)
		return nil, fmt.Errorf("read response: %w", err)
	}
	span.SetAttributes(attribute.Int("backend.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := newStatusErr(resp, respBody)
		telemetry.RecordErrorAndStatus(span, statusErr)
		return nil, statusErr
	}

	telemetry.RecordErrorAndStatus(span, nil)
	if len(bytes.TrimSpace(respBody)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("backend returned invalid JSON (%d bytes)", len(respBody))
	}
	return json.RawMessage(respBody), nil
}

func (c Client) newRequest(ctx context.Context, req domain.BackendRequest) (*http.Request, error) {
	endpoint, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	if len(req.Query) > 0 {
		q := endpoint.Query()
		for k, values := range req.Query {
			for _, v := range values {
				q.Add(k, v)
			}
		}
		endpoint.RawQuery = q.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if bodyReader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return httpReq, nil
}

// newStatusErr decodes the backend error envelope. The error member is either
// an object with type and message or a bare type string.
func newStatusErr(resp *http.Response, body []byte) *domain.BackendStatusErr {
	statusErr := &domain.BackendStatusErr{
		StatusCode: resp.StatusCode,
		Body:       truncate(string(body), maxErrorBody),
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return statusErr
	}

	var detailed struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &detailed); err == nil {
		statusErr.Type = detailed.Type
		statusErr.Message = detailed.Message
		return statusErr
	}

	var bare string
	if err := json.Unmarshal(envelope.Error, &bare); err == nil {
		statusErr.Type = bare
	}
	return statusErr
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// InitClient registers the backend client.
type InitClient struct {
	HttpClient *http.Client `resolve:""`
	BaseURL    string       `config:"AIRTABLE_BASE_URL" default:"https://api.airtable.com/v0"`
	APIKey     string       `config:"AIRTABLE_API_KEY" default:"-"`
}

// Initialize registers domain.BackendClient.
func (i InitClient) Initialize(ctx context.Context) (context.Context, error) {
	apiKey := i.APIKey
	if apiKey == "-" {
		apiKey = ""
	}
	depend.Register[domain.BackendClient](NewClient(i.BaseURL, apiKey, i.HttpClient))
	return ctx, nil
}
