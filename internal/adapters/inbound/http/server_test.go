package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/inbound/rpc"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/usecases"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 1, 24, 15, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return fixedTime }

type serverMocks struct {
	authResolver    *domain.MockAuthResolver
	listTools       *usecases.MockListTools
	executeTool     *usecases.MockExecuteTool
	executeBatch    *usecases.MockExecuteBatch
	metrics         *usecases.MockMetricsCollector
	invalidateCache *usecases.MockInvalidateCache
	getStatus       *usecases.MockGetStatus
}

var listBasesDescriptor = usecases.ToolDescriptor{
	Name:        "list_bases",
	Category:    "bases",
	Description: "List the bases the configured API key can access.",
	InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
}

// newTestServer returns the server handler. The MCP surface lists the tools once at build time.
func newTestServer(t *testing.T, setupMocks func(m serverMocks)) http.Handler {
	t.Helper()
	m := serverMocks{
		authResolver:    domain.NewMockAuthResolver(t),
		listTools:       usecases.NewMockListTools(t),
		executeTool:     usecases.NewMockExecuteTool(t),
		executeBatch:    usecases.NewMockExecuteBatch(t),
		metrics:         usecases.NewMockMetricsCollector(t),
		invalidateCache: usecases.NewMockInvalidateCache(t),
		getStatus:       usecases.NewMockGetStatus(t),
	}
	m.listTools.EXPECT().Query(mock.Anything).Return([]usecases.ToolDescriptor{listBasesDescriptor}, nil).Once()
	if setupMocks != nil {
		setupMocks(m)
	}

	s := ToolGatewayServer{
		ServiceVersion:  "test",
		Logger:          log.New(io.Discard, "", 0),
		TimeProvider:    fixedClock{},
		AuthResolver:    m.authResolver,
		ListTools:       m.listTools,
		ExecuteTool:     m.executeTool,
		ExecuteBatch:    m.executeBatch,
		Metrics:         m.metrics,
		InvalidateCache: m.invalidateCache,
		GetStatus:       m.getStatus,
	}
	h, err := s.Handler(context.Background())
	require.NoError(t, err)
	return h
}

func completedResult(call domain.ToolCall) domain.ToolResult {
	return domain.NewCompletedResult(call, json.RawMessage(`{"bases":[{"id":"app1","name":"CRM"}]}`), time.Millisecond, false, fixedTime)
}

func TestToolGatewayServer_RPC(t *testing.T) {
	alice := &domain.AuthContext{PrincipalID: "alice", SessionID: "s1", Permissions: []string{"records:write"}}

	tests := map[string]struct {
		body          string
		headers       map[string]string
		setupMocks    func(m serverMocks)
		expectErrCode int
		checkResult   func(t *testing.T, result map[string]any)
	}{
		"anonymous-call": {
			body: `{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases"},"id":1}`,
			setupMocks: func(m serverMocks) {
				m.executeTool.EXPECT().Execute(mock.Anything, mock.MatchedBy(func(c domain.ToolCall) bool {
					return c.Auth == nil && c.ToolName == "list_bases"
				})).RunAndReturn(func(_ context.Context, c domain.ToolCall) domain.ToolResult {
					return completedResult(c)
				}).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, "completed", result["status"])
			},
		},
		"bearer-token": {
			body:    `{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases"},"id":1}`,
			headers: map[string]string{"Authorization": "Bearer tok"},
			setupMocks: func(m serverMocks) {
				m.authResolver.EXPECT().Resolve(mock.Anything, domain.Credentials{BearerToken: "tok"}).Return(alice, nil).Once()
				m.executeTool.EXPECT().Execute(mock.Anything, mock.MatchedBy(func(c domain.ToolCall) bool {
					return c.Auth == alice
				})).RunAndReturn(func(_ context.Context, c domain.ToolCall) domain.ToolResult {
					return completedResult(c)
				}).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, "completed", result["status"])
			},
		},
		"identity-headers": {
			body: `{"jsonrpc":"2.0","method":"ping","id":1}`,
			headers: map[string]string{
				HeaderPrincipalID: "bob",
				HeaderSessionID:   "s2",
				HeaderTenantID:    "acme",
				HeaderPermissions: "records:write, admin",
			},
			setupMocks: func(m serverMocks) {
				m.authResolver.EXPECT().Resolve(mock.Anything, domain.Credentials{
					PrincipalID: "bob",
					SessionID:   "s2",
					TenantID:    "acme",
					Permissions: []string{"records:write", "admin"},
				}).Return(&domain.AuthContext{PrincipalID: "bob"}, nil).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, true, result["pong"])
			},
		},
		"rejected-credentials": {
			body:    `{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases"},"id":1}`,
			headers: map[string]string{"Authorization": "Bearer expired"},
			setupMocks: func(m serverMocks) {
				m.authResolver.EXPECT().Resolve(mock.Anything, mock.Anything).Return(nil, errors.New("token is expired")).Once()
			},
			expectErrCode: rpc.CodeAuthFailed,
		},
		"malformed-envelope": {
			body:          `{"jsonrpc":"2.0","method":`,
			expectErrCode: rpc.CodeParseError,
		},
		"list-tools": {
			body: `{"jsonrpc":"2.0","method":"list_tools","id":1}`,
			setupMocks: func(m serverMocks) {
				m.listTools.EXPECT().Query(mock.Anything).Return([]usecases.ToolDescriptor{listBasesDescriptor}, nil).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Len(t, result["tools"], 1)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestServer(t, tt.setupMocks)

			req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(tt.body))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var out map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			if tt.expectErrCode != 0 {
				assert.Equal(t, float64(tt.expectErrCode), out["error"].(map[string]any)["code"])
				return
			}
			require.Contains(t, out, "result", w.Body.String())
			tt.checkResult(t, out["result"].(map[string]any))
		})
	}
}

func TestToolGatewayServer_Management(t *testing.T) {
	tests := map[string]struct {
		method         string
		target         string
		setupMocks     func(m serverMocks)
		expectedStatus int
		shouldContain  []string
	}{
		"healthz": {
			method:         http.MethodGet,
			target:         "/healthz",
			expectedStatus: http.StatusOK,
			shouldContain:  []string{`"status":"ok"`},
		},
		"status": {
			method: http.MethodGet,
			target: "/status",
			setupMocks: func(m serverMocks) {
				m.getStatus.EXPECT().Query(mock.Anything).Return(usecases.ServiceStatus{
					Status: "ok", StartedAt: fixedTime, UptimeSeconds: 12, ToolCount: 10,
				}).Once()
			},
			expectedStatus: http.StatusOK,
			shouldContain:  []string{`"tool_count":10`, `"uptime_seconds":12`},
		},
		"all-tool-metrics": {
			method: http.MethodGet,
			target: "/metrics/tools",
			setupMocks: func(m serverMocks) {
				m.metrics.EXPECT().Snapshot().Return([]domain.ToolExecutionMetrics{{ToolName: "list_bases", TotalCalls: 3}}).Once()
			},
			expectedStatus: http.StatusOK,
			shouldContain:  []string{`"tool_name":"list_bases"`, `"total_calls":3`},
		},
		"one-tool-metrics": {
			method: http.MethodGet,
			target: "/metrics/tools?tool=list_bases",
			setupMocks: func(m serverMocks) {
				m.metrics.EXPECT().ToolSnapshot("list_bases").Return(domain.ToolExecutionMetrics{ToolName: "list_bases", TotalCalls: 1}, true).Once()
			},
			expectedStatus: http.StatusOK,
			shouldContain:  []string{`"total_calls":1`},
		},
		"unknown-tool-metrics": {
			method: http.MethodGet,
			target: "/metrics/tools?tool=nope",
			setupMocks: func(m serverMocks) {
				m.metrics.EXPECT().ToolSnapshot("nope").Return(domain.ToolExecutionMetrics{}, false).Once()
			},
			expectedStatus: http.StatusNotFound,
			shouldContain:  []string{`"NOT_FOUND"`},
		},
		"invalidate-cache": {
			method: http.MethodPost,
			target: "/cache/invalidate?pattern=tool:list_bases:*",
			setupMocks: func(m serverMocks) {
				m.invalidateCache.EXPECT().Execute(mock.Anything, "tool:list_bases:*").Return(2, nil).Once()
			},
			expectedStatus: http.StatusOK,
			shouldContain:  []string{`"deleted":2`},
		},
		"invalidate-cache-bad-pattern": {
			method: http.MethodPost,
			target: "/cache/invalidate?pattern=%5B",
			setupMocks: func(m serverMocks) {
				m.invalidateCache.EXPECT().Execute(mock.Anything, "[").Return(0, domain.NewValidationErr("invalid cache key pattern: [")).Once()
			},
			expectedStatus: http.StatusBadRequest,
			shouldContain:  []string{`"BAD_REQUEST"`},
		},
		"invalidate-cache-store-down": {
			method: http.MethodPost,
			target: "/cache/invalidate",
			setupMocks: func(m serverMocks) {
				m.invalidateCache.EXPECT().Execute(mock.Anything, "").Return(0, errors.New("redis down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			shouldContain:  []string{`"INTERNAL_ERROR"`},
		},
		"rpc-requires-post": {
			method:         http.MethodGet,
			target:         "/rpc",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestServer(t, tt.setupMocks)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, s := range tt.shouldContain {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestToolGatewayServer_WebSocket(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})

	h := newTestServer(t, func(m serverMocks) {
		m.executeTool.EXPECT().Execute(mock.Anything, mock.MatchedBy(func(c domain.ToolCall) bool {
			return c.ToolName == "list_bases"
		})).RunAndReturn(func(_ context.Context, c domain.ToolCall) domain.ToolResult {
			return completedResult(c)
		}).Times(2)
		m.executeTool.EXPECT().Execute(mock.Anything, mock.MatchedBy(func(c domain.ToolCall) bool {
			return c.ToolName == "slow_tool"
		})).RunAndReturn(func(ctx context.Context, c domain.ToolCall) domain.ToolResult {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return domain.NewFailedResult(c, domain.NewToolError(domain.ErrorKind_TimeoutError, "cancelled"), 0, fixedTime)
		}).Once()
	})
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)

	requests := []string{
		`{"jsonrpc":"2.0","method":"initialize","id":"init"}`,
		`{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases"},"id":"a"}`,
		`garbage`,
		`{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases"},"id":"b"}`,
	}
	for _, r := range requests {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(r)))
	}

	got := map[string]map[string]any{}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for range requests {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(data, &resp))
		id, _ := resp["id"].(string)
		got[id] = resp
	}
	assert.Contains(t, got["init"], "result")
	assert.Equal(t, "completed", got["a"]["result"].(map[string]any)["status"])
	assert.Equal(t, "completed", got["b"]["result"].(map[string]any)["status"])
	assert.Equal(t, float64(rpc.CodeParseError), got[""]["error"].(map[string]any)["code"])

	// disconnecting cancels in-flight calls
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"jsonrpc":"2.0","method":"call_tool","params":{"name":"slow_tool"},"id":"slow"}`)))
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("slow call was not dispatched")
	}
	require.NoError(t, conn.Close())

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight call was not cancelled on disconnect")
	}
}

func TestToMCPResult(t *testing.T) {
	call := domain.ToolCall{ID: "c1", ToolName: "list_bases"}

	tests := map[string]struct {
		result        domain.ToolResult
		expectIsError bool
		shouldContain []string
	}{
		"payload-as-toon": {
			result:        completedResult(call),
			shouldContain: []string{"bases[", "CRM"},
		},
		"failure": {
			result: domain.NewFailedResult(call,
				domain.NewToolError(domain.ErrorKind_UnknownTool, "unknown tool: delete_universe"), 0, fixedTime),
			expectIsError: true,
			shouldContain: []string{"UNKNOWN_TOOL: unknown tool: delete_universe"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := toMCPResult(tt.result)
			assert.Equal(t, tt.expectIsError, res.IsError)
			require.Len(t, res.Content, 1)
			raw, err := json.Marshal(res.Content[0])
			require.NoError(t, err)
			for _, s := range tt.shouldContain {
				assert.Contains(t, string(raw), s)
			}
			assert.Equal(t, tt.result, res.StructuredContent)
		})
	}
}

func TestRenderPayload(t *testing.T) {
	assert.Equal(t, "not json", renderPayload([]byte("not json")))
	assert.NotContains(t, renderPayload([]byte(`{"a":1}`)), "{")
	assert.True(t, bytes.Contains([]byte(renderPayload([]byte(`{"a":1}`))), []byte("a: 1")))
}
