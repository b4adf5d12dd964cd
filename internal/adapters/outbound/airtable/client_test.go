package airtable

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	tests := map[string]struct {
		req             domain.BackendRequest
		status          int
		headers         map[string]string
		respBody        string
		assertRequest   func(t *testing.T, r *http.Request, body []byte)
		expectedPayload string
		expectedErr     error
	}{
		"get-with-query": {
			req: domain.BackendRequest{
				Method: http.MethodGet,
				Path:   "/appABCDEFGHIJKLMN/My%20Tasks",
				Query:  map[string][]string{"maxRecords": {"10"}, "fields[]": {"Name", "Status"}},
			},
			status:   http.StatusOK,
			respBody: `{"records":[]}`,
			assertRequest: func(t *testing.T, r *http.Request, body []byte) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/v0/appABCDEFGHIJKLMN/My%20Tasks", r.URL.EscapedPath())
				assert.Equal(t, "10", r.URL.Query().Get("maxRecords"))
				assert.Equal(t, []string{"Name", "Status"}, r.URL.Query()["fields[]"])
				assert.Equal(t, "Bearer key123", r.Header.Get("Authorization"))
				assert.Empty(t, r.Header.Get("Content-Type"))
				assert.Empty(t, body)
			},
			expectedPayload: `{"records":[]}`,
		},
		"post-json-body": {
			req: domain.BackendRequest{
				Method: http.MethodPost,
				Path:   "/appABCDEFGHIJKLMN/Tasks",
				Body:   map[string]any{"fields": map[string]any{"Name": "x"}},
			},
			status:   http.StatusOK,
			respBody: `{"id":"rec1"}`,
			assertRequest: func(t *testing.T, r *http.Request, body []byte) {
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.JSONEq(t, `{"fields":{"Name":"x"}}`, string(body))
			},
			expectedPayload: `{"id":"rec1"}`,
		},
		"empty-success-body": {
			req:             domain.BackendRequest{Method: http.MethodDelete, Path: "/x"},
			status:          http.StatusNoContent,
			expectedPayload: `null`,
		},
		"detailed-error": {
			req:      domain.BackendRequest{Method: http.MethodGet, Path: "/x"},
			status:   http.StatusUnprocessableEntity,
			respBody: `{"error":{"type":"INVALID_FILTER_BY_FORMULA","message":"bad formula"}}`,
			expectedErr: &domain.BackendStatusErr{
				StatusCode: 422,
				Type:       "INVALID_FILTER_BY_FORMULA",
				Message:    "bad formula",
				Body:       `{"error":{"type":"INVALID_FILTER_BY_FORMULA","message":"bad formula"}}`,
			},
		},
		"bare-error": {
			req:      domain.BackendRequest{Method: http.MethodGet, Path: "/x"},
			status:   http.StatusNotFound,
			respBody: `{"error":"NOT_FOUND"}`,
			expectedErr: &domain.BackendStatusErr{
				StatusCode: 404,
				Type:       "NOT_FOUND",
				Body:       `{"error":"NOT_FOUND"}`,
			},
		},
		"rate-limited-with-retry-after": {
			req:      domain.BackendRequest{Method: http.MethodGet, Path: "/x"},
			status:   http.StatusTooManyRequests,
			headers:  map[string]string{"Retry-After": "30"},
			respBody: `not json`,
			expectedErr: &domain.BackendStatusErr{
				StatusCode: 429,
				Body:       "not json",
				RetryAfter: 30 * time.Second,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				if tt.assertRequest != nil {
					tt.assertRequest(t, r, body)
				}
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.respBody)
			}))
			defer srv.Close()

			client := NewClient(srv.URL+"/v0/", "key123", srv.Client())
			payload, err := client.Do(context.Background(), tt.req)
			if tt.expectedErr != nil {
				assert.Equal(t, tt.expectedErr, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.expectedPayload, string(payload))
		})
	}
}

func TestClient_Do_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", srv.Client()).Do(context.Background(), domain.BackendRequest{Path: "/x"})
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter("5"))
	assert.Zero(t, parseRetryAfter(""))
	assert.Zero(t, parseRetryAfter("soon"))
	assert.Zero(t, parseRetryAfter("-1"))
}

func TestInitClient_Initialize(t *testing.T) {
	i := InitClient{HttpClient: http.DefaultClient, BaseURL: "https://api.example.com/v0", APIKey: "-"}

	_, err := i.Initialize(context.Background())
	assert.NoError(t, err)

	c, err := depend.Resolve[domain.BackendClient]()
	assert.NoError(t, err)
	assert.Equal(t, NewClient("https://api.example.com/v0", "", http.DefaultClient), c)
}
