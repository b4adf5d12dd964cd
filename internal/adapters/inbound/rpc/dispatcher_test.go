package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/auth"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/usecases"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 1, 24, 15, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return fixedTime }

type dispatcherMocks struct {
	listTools       *usecases.MockListTools
	executeTool     *usecases.MockExecuteTool
	executeBatch    *usecases.MockExecuteBatch
	metrics         *usecases.MockMetricsCollector
	invalidateCache *usecases.MockInvalidateCache
	authResolver    *domain.MockAuthResolver
}

func newTestDispatcher(t *testing.T) (Dispatcher, dispatcherMocks) {
	m := dispatcherMocks{
		listTools:       usecases.NewMockListTools(t),
		executeTool:     usecases.NewMockExecuteTool(t),
		executeBatch:    usecases.NewMockExecuteBatch(t),
		metrics:         usecases.NewMockMetricsCollector(t),
		invalidateCache: usecases.NewMockInvalidateCache(t),
		authResolver:    domain.NewMockAuthResolver(t),
	}
	return Dispatcher{
		ListTools:       m.listTools,
		ExecuteTool:     m.executeTool,
		ExecuteBatch:    m.executeBatch,
		Metrics:         m.metrics,
		InvalidateCache: m.invalidateCache,
		AuthResolver:    m.authResolver,
		TimeProvider:    fixedClock{},
		Logger:          log.New(io.Discard, "", 0),
		ServerInfo:      ServerInfo{Name: "toolgateway", Version: "test"},
	}, m
}

func decodeResponse(t *testing.T, resp *Response) map[string]any {
	t.Helper()
	require.NotNil(t, resp)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestDispatcher_Handle(t *testing.T) {
	alice := &domain.AuthContext{PrincipalID: "alice", SessionID: "s1"}
	completed := domain.ToolResult{CallID: "c1", ToolName: "list_bases", Status: domain.ToolStatus_Completed, Payload: json.RawMessage(`{"bases":[]}`)}

	tests := map[string]struct {
		request         string
		auth            *domain.AuthContext
		authErr         error
		setExpectations func(m dispatcherMocks)
		expectErrCode   int
		expectErrData   map[string]any
		expectID        any
		expectEcho      bool
		checkResult     func(t *testing.T, result map[string]any)
	}{
		"parse-error": {
			request:       `{"jsonrpc":"2.0",`,
			expectErrCode: CodeParseError,
			expectID:      nil,
		},
		"unknown-method": {
			request:       `{"jsonrpc":"2.0","method":"drop_tables","id":1}`,
			expectErrCode: CodeMethodNotFound,
			expectID:      float64(1),
		},
		"initialize": {
			request: `{"jsonrpc":"2.0","method":"initialize","params":{"client_info":{"name":"cli"}},"id":"init"}`,
			auth:    alice,
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, "2.0", result["protocol_version"])
				assert.Equal(t, true, result["authenticated"])
				assert.NotEmpty(t, result["session_id"])
			},
			expectID: "init",
		},
		"initialize-with-token": {
			request: `{"jsonrpc":"2.0","method":"initialize","params":{"auth_token":"tok"},"id":1}`,
			setExpectations: func(m dispatcherMocks) {
				m.authResolver.EXPECT().Resolve(mock.Anything, domain.Credentials{BearerToken: "tok"}).Return(alice, nil).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, true, result["authenticated"])
			},
			expectID: float64(1),
		},
		"initialize-with-bad-token": {
			request: `{"jsonrpc":"2.0","method":"initialize","params":{"auth_token":"tok"},"id":1}`,
			setExpectations: func(m dispatcherMocks) {
				m.authResolver.EXPECT().Resolve(mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: token has invalid claims: %w", auth.ErrInvalidToken, jwt.ErrTokenExpired)).Once()
			},
			expectErrCode: CodeAuthFailed,
			expectErrData: map[string]any{"reason": "expired_token"},
			expectID:      float64(1),
		},
		"list-tools": {
			request: `{"jsonrpc":"2.0","method":"list_tools","id":2}`,
			setExpectations: func(m dispatcherMocks) {
				m.listTools.EXPECT().Query(mock.Anything).Return([]usecases.ToolDescriptor{{Name: "list_bases"}}, nil).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				tools := result["tools"].([]any)
				require.Len(t, tools, 1)
				assert.Equal(t, "list_bases", tools[0].(map[string]any)["name"])
			},
			expectID: float64(2),
		},
		"list-tools-failure": {
			request: `{"jsonrpc":"2.0","method":"list_tools","id":2}`,
			setExpectations: func(m dispatcherMocks) {
				m.listTools.EXPECT().Query(mock.Anything).Return(nil, errors.New("boom")).Once()
			},
			expectErrCode: CodeInternalError,
			expectID:      float64(2),
		},
		"call-tool": {
			request: `{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases","arguments":{},"metadata":{"trace":"x"},"timeout_ms":1500},"id":3}`,
			auth:    alice,
			setExpectations: func(m dispatcherMocks) {
				m.executeTool.EXPECT().Execute(mock.Anything, mock.MatchedBy(func(call domain.ToolCall) bool {
					return call.ToolName == "list_bases" &&
						call.ID != "" &&
						call.Auth == alice &&
						call.Timeout == 1500*time.Millisecond &&
						call.Metadata["trace"] == "x" &&
						call.CreatedAt.Equal(fixedTime)
				})).Return(completed).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, "completed", result["status"])
				assert.Equal(t, map[string]any{"bases": []any{}}, result["result"])
			},
			expectID: float64(3),
		},
		"call-tool-failure-is-a-result": {
			request: `{"jsonrpc":"2.0","method":"call_tool","params":{"name":"delete_universe"},"id":4}`,
			setExpectations: func(m dispatcherMocks) {
				m.executeTool.EXPECT().Execute(mock.Anything, mock.Anything).Return(domain.ToolResult{
					CallID: "c", ToolName: "delete_universe", Status: domain.ToolStatus_Failed,
					Error: domain.NewToolError(domain.ErrorKind_UnknownTool, "unknown tool: delete_universe"),
				}).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, "failed", result["status"])
				assert.Equal(t, "UNKNOWN_TOOL", result["error"].(map[string]any)["code"])
			},
			expectID: float64(4),
		},
		"call-tool-missing-name": {
			request:       `{"jsonrpc":"2.0","method":"call_tool","params":{"arguments":{}},"id":5}`,
			expectErrCode: CodeInvalidParams,
			expectID:      float64(5),
		},
		"call-tool-without-params": {
			request:       `{"jsonrpc":"2.0","method":"call_tool","id":5}`,
			expectErrCode: CodeInvalidParams,
			expectID:      float64(5),
		},
		"call-tool-arguments-not-object": {
			request:       `{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases","arguments":[1]},"id":5}`,
			expectErrCode: CodeInvalidParams,
			expectErrData: map[string]any{"reason": "invalid_params", "field": "arguments"},
			expectID:      float64(5),
		},
		"call-tool-negative-timeout": {
			request:       `{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases","timeout_ms":-1},"id":5}`,
			expectErrCode: CodeInvalidParams,
			expectID:      float64(5),
		},
		"call-tool-with-auth-failure": {
			request:       `{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases"},"id":6}`,
			authErr:       fmt.Errorf("%w: %w", auth.ErrInvalidToken, jwt.ErrSignatureInvalid),
			expectErrCode: CodeAuthFailed,
			expectErrData: map[string]any{"reason": "invalid_token"},
			expectID:      float64(6),
		},
		"ping-with-auth-failure": {
			request:  `{"jsonrpc":"2.0","method":"ping","id":6}`,
			authErr:  errors.New("signature is invalid"),
			expectID: float64(6),
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, true, result["pong"])
			},
		},
		"version-key-echoed": {
			request:    `{"version":"2.0","method":"ping","id":13}`,
			expectID:   float64(13),
			expectEcho: true,
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, true, result["pong"])
			},
		},
		"version-key-echoed-on-error": {
			request:       `{"version":"2.0","method":"call_tool","params":"list_bases","id":14}`,
			expectErrCode: CodeInvalidParams,
			expectErrData: map[string]any{"reason": "invalid_params"},
			expectID:      float64(14),
			expectEcho:    true,
		},
		"handler-panic-keeps-id": {
			request: `{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases"},"id":"p-1"}`,
			setExpectations: func(m dispatcherMocks) {
				m.executeTool.EXPECT().Execute(mock.Anything, mock.Anything).RunAndReturn(func(context.Context, domain.ToolCall) domain.ToolResult {
					panic("unexpected")
				}).Once()
			},
			expectErrCode: CodeInternalError,
			expectID:      "p-1",
		},
		"batch": {
			request: `{"jsonrpc":"2.0","method":"batch_call_tools","params":{"tool_calls":[{"name":"a"},{"name":"b","arguments":{"x":1}}],"parallel":false,"stop_on_error":true},"id":7}`,
			setExpectations: func(m dispatcherMocks) {
				m.executeBatch.EXPECT().Execute(mock.Anything, mock.MatchedBy(func(b domain.BatchCall) bool {
					return len(b.Calls) == 2 && b.StopOnError && !b.Parallel &&
						b.Calls[0].ToolName == "a" && b.Calls[1].Arguments["x"] == float64(1) &&
						b.Calls[0].ID != b.Calls[1].ID
				})).Return(domain.BatchResult{Results: []domain.ToolResult{completed}, SuccessCount: 1}, nil).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, float64(1), result["success_count"])
				assert.Len(t, result["results"], 1)
			},
			expectID: float64(7),
		},
		"batch-entry-without-name": {
			request:       `{"jsonrpc":"2.0","method":"batch_call_tools","params":{"tool_calls":[{"name":"a"},{}]},"id":8}`,
			expectErrCode: CodeInvalidParams,
			expectID:      float64(8),
		},
		"batch-size-violation": {
			request: `{"jsonrpc":"2.0","method":"batch_call_tools","params":{"tool_calls":[]},"id":9}`,
			setExpectations: func(m dispatcherMocks) {
				m.executeBatch.EXPECT().Execute(mock.Anything, mock.Anything).
					Return(domain.BatchResult{}, domain.NewValidationErr("tool_calls must contain between 1 and 10 calls, got 0")).Once()
			},
			expectErrCode: CodeInvalidParams,
			expectID:      float64(9),
		},
		"get-metrics": {
			request: `{"jsonrpc":"2.0","method":"get_metrics","id":10}`,
			setExpectations: func(m dispatcherMocks) {
				m.metrics.EXPECT().Snapshot().Return([]domain.ToolExecutionMetrics{{ToolName: "list_bases", TotalCalls: 2}}).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				tools := result["tools"].([]any)
				assert.Equal(t, float64(2), tools[0].(map[string]any)["total_calls"])
			},
			expectID: float64(10),
		},
		"invalidate-cache": {
			request: `{"jsonrpc":"2.0","method":"invalidate_cache","params":{"pattern":"tool:list_bases:*"},"id":11}`,
			setExpectations: func(m dispatcherMocks) {
				m.invalidateCache.EXPECT().Execute(mock.Anything, "tool:list_bases:*").Return(3, nil).Once()
			},
			checkResult: func(t *testing.T, result map[string]any) {
				assert.Equal(t, float64(3), result["deleted"])
			},
			expectID: float64(11),
		},
		"invalidate-cache-bad-pattern": {
			request: `{"jsonrpc":"2.0","method":"invalidate_cache","params":{"pattern":"["},"id":12}`,
			setExpectations: func(m dispatcherMocks) {
				m.invalidateCache.EXPECT().Execute(mock.Anything, "[").Return(0, domain.NewValidationErr("invalid cache key pattern: [")).Once()
			},
			expectErrCode: CodeInvalidParams,
			expectID:      float64(12),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d, m := newTestDispatcher(t)
			if tt.setExpectations != nil {
				tt.setExpectations(m)
			}
			session := NewSession(tt.auth, tt.authErr, fixedTime)

			out := decodeResponse(t, d.Handle(context.Background(), session, []byte(tt.request)))
			assert.Equal(t, "2.0", out["jsonrpc"])
			assert.Equal(t, tt.expectID, out["id"])
			if tt.expectEcho {
				assert.Equal(t, "2.0", out["version"])
			} else {
				assert.NotContains(t, out, "version")
			}

			if tt.expectErrCode != 0 {
				require.Contains(t, out, "error")
				assert.NotContains(t, out, "result")
				rpcErr := out["error"].(map[string]any)
				assert.Equal(t, float64(tt.expectErrCode), rpcErr["code"])
				if tt.expectErrData != nil {
					assert.Equal(t, tt.expectErrData, rpcErr["data"])
				}
				return
			}
			require.Contains(t, out, "result")
			assert.NotContains(t, out, "error")
			if tt.checkResult != nil {
				tt.checkResult(t, out["result"].(map[string]any))
			}
		})
	}
}

func TestDispatcher_SessionTransitions(t *testing.T) {
	d, m := newTestDispatcher(t)
	m.executeTool.EXPECT().Execute(mock.Anything, mock.Anything).Return(domain.ToolResult{Status: domain.ToolStatus_Completed, Payload: json.RawMessage("{}")}).Once()

	session := NewSession(nil, nil, fixedTime)
	ctx := context.Background()

	d.Handle(ctx, session, []byte(`{"jsonrpc":"2.0","method":"initialize","id":1}`))
	assert.Equal(t, SessionState_Initialized, session.State())

	d.Handle(ctx, session, []byte(`{"jsonrpc":"2.0","method":"call_tool","params":{"name":"list_bases"},"id":2}`))
	assert.Equal(t, SessionState_Active, session.State())

	d.Handle(ctx, session, []byte(`{"jsonrpc":"2.0","method":"initialize","id":3}`))
	assert.Equal(t, SessionState_Active, session.State())

	// a malformed message does not end the session
	resp := d.Handle(ctx, session, []byte(`not json`))
	require.NotNil(t, resp)
	assert.Equal(t, SessionState_Active, session.State())

	session.Close()
	assert.Nil(t, d.Handle(ctx, session, []byte(`{"jsonrpc":"2.0","method":"ping","id":4}`)))

	resp2 := d.Dispatch(ctx, session, Request{Version: Version, Method: MethodPing, ID: json.RawMessage("5")})
	require.NotNil(t, resp2.Error)
	assert.Equal(t, CodeSessionClosed, resp2.Error.Code)
}
