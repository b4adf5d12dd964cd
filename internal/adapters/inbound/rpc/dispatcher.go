package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/auth"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/usecases"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Method names.
const (
	MethodInitialize      = "initialize"
	MethodListTools       = "list_tools"
	MethodCallTool        = "call_tool"
	MethodBatchCallTools  = "batch_call_tools"
	MethodPing            = "ping"
	MethodGetMetrics      = "get_metrics"
	MethodInvalidateCache = "invalidate_cache"
)

// ServerInfo identifies the gateway in the initialize response.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult is returned by the initialize method.
type InitializeResult struct {
	ProtocolVersion string         `json:"protocol_version"`
	ServerInfo      ServerInfo     `json:"server_info"`
	SessionID       string         `json:"session_id"`
	Capabilities    map[string]any `json:"capabilities"`
	Authenticated   bool           `json:"authenticated"`
}

// Dispatcher routes decoded requests to the use cases. It is safe for
// concurrent use; per-connection state lives in the Session.
type Dispatcher struct {
	ListTools       usecases.ListTools
	ExecuteTool     usecases.ExecuteTool
	ExecuteBatch    usecases.ExecuteBatch
	Metrics         usecases.MetricsCollector
	InvalidateCache usecases.InvalidateCache
	AuthResolver    domain.AuthResolver
	TimeProvider    domain.CurrentTimeProvider
	Logger          *log.Logger
	ServerInfo      ServerInfo
}

type methodFunc func(d Dispatcher, ctx context.Context, session *Session, params json.RawMessage) (any, *Error)

var methods = map[string]methodFunc{
	MethodInitialize:      Dispatcher.initialize,
	MethodListTools:       Dispatcher.listTools,
	MethodCallTool:        Dispatcher.callTool,
	MethodBatchCallTools:  Dispatcher.batchCallTools,
	MethodPing:            Dispatcher.ping,
	MethodGetMetrics:      Dispatcher.getMetrics,
	MethodInvalidateCache: Dispatcher.invalidateCache,
}

// unauthenticatedMethods may be served when the transport failed to resolve credentials.
var unauthenticatedMethods = map[string]bool{
	MethodInitialize: true,
	MethodPing:       true,
}

// Handle decodes and serves one raw envelope. It returns nil when the session
// is closed, in which case the message is dropped.
func (d Dispatcher) Handle(ctx context.Context, session *Session, data []byte) *Response {
	if session.Closed() {
		return nil
	}
	req, perr := ParseRequest(data)
	if perr != nil {
		resp := req.Reply(ErrorResponse(req.ID, perr))
		return &resp
	}
	resp := req.Reply(d.Dispatch(ctx, session, req))
	return &resp
}

// Dispatch serves a decoded request. Panics raised while serving become
// internal errors that keep the request id.
func (d Dispatcher) Dispatch(ctx context.Context, session *Session, req Request) (resp Response) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
		attribute.String("rpc.method", req.Method),
		attribute.String("rpc.session_id", session.ID()),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			d.Logger.Printf("RPCDispatcher: recovered panic serving %s: %v", req.Method, r)
			resp = ErrorResponse(req.ID, NewError(CodeInternalError, "internal error"))
		}
		if resp.Error != nil {
			span.SetAttributes(attribute.Int("rpc.error_code", resp.Error.Code))
		}
	}()

	if session.Closed() {
		return ErrorResponse(req.ID, NewError(CodeSessionClosed, "session is closed"))
	}

	method, ok := methods[req.Method]
	if !ok {
		return ErrorResponse(req.ID, NewError(CodeMethodNotFound, "method not found: "+req.Method))
	}
	if !unauthenticatedMethods[req.Method] {
		if _, authErr := session.Auth(); authErr != nil {
			return ErrorResponse(req.ID, d.authError(authErr))
		}
	}

	result, rerr := method(d, spanCtx, session, req.Params)
	if rerr != nil {
		return ErrorResponse(req.ID, rerr)
	}
	return ResultResponse(req.ID, result)
}

func (d Dispatcher) initialize(ctx context.Context, session *Session, raw json.RawMessage) (any, *Error) {
	var params initializeParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}

	if params.AuthToken != "" {
		ac, err := d.AuthResolver.Resolve(ctx, domain.Credentials{BearerToken: params.AuthToken})
		if err != nil {
			return nil, d.authError(err)
		}
		session.SetAuth(ac)
	}

	if !session.Initialize(params.ClientInfo) {
		return nil, NewError(CodeSessionClosed, "session is closed")
	}

	ac, authErr := session.Auth()
	return InitializeResult{
		ProtocolVersion: Version,
		ServerInfo:      d.ServerInfo,
		SessionID:       session.ID(),
		Capabilities: map[string]any{
			"tools":   map[string]any{"batch": true},
			"methods": []string{MethodListTools, MethodCallTool, MethodBatchCallTools, MethodPing, MethodGetMetrics, MethodInvalidateCache},
		},
		Authenticated: ac != nil && authErr == nil,
	}, nil
}

func (d Dispatcher) listTools(ctx context.Context, _ *Session, _ json.RawMessage) (any, *Error) {
	tools, err := d.ListTools.Query(ctx)
	if err != nil {
		d.Logger.Printf("RPCDispatcher: list_tools failed: %v", err)
		return nil, NewError(CodeInternalError, "failed to list tools")
	}
	return map[string]any{"tools": tools}, nil
}

func (d Dispatcher) callTool(ctx context.Context, session *Session, raw json.RawMessage) (any, *Error) {
	if len(raw) == 0 {
		return nil, NewError(CodeInvalidParams, "invalid params: name is required")
	}
	var params callToolParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}

	ac, _ := session.Auth()
	call, perr := params.toolCall(ac, d.TimeProvider.Now())
	if perr != nil {
		return nil, perr
	}
	if !session.Activate() {
		return nil, NewError(CodeSessionClosed, "session is closed")
	}
	return d.ExecuteTool.Execute(ctx, call), nil
}

func (d Dispatcher) batchCallTools(ctx context.Context, session *Session, raw json.RawMessage) (any, *Error) {
	var params batchCallToolsParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}

	ac, _ := session.Auth()
	batch, perr := params.batchCall(ac, d.TimeProvider.Now())
	if perr != nil {
		return nil, perr
	}
	if !session.Activate() {
		return nil, NewError(CodeSessionClosed, "session is closed")
	}

	result, err := d.ExecuteBatch.Execute(ctx, batch)
	if err != nil {
		var validationErr *domain.ValidationErr
		if errors.As(err, &validationErr) {
			return nil, NewError(CodeInvalidParams, "invalid params: "+validationErr.Error())
		}
		d.Logger.Printf("RPCDispatcher: batch_call_tools failed: %v", err)
		return nil, NewError(CodeInternalError, "internal error")
	}
	return result, nil
}

func (d Dispatcher) ping(context.Context, *Session, json.RawMessage) (any, *Error) {
	return map[string]any{"pong": true, "time": d.TimeProvider.Now().UTC().Format(time.RFC3339Nano)}, nil
}

func (d Dispatcher) getMetrics(context.Context, *Session, json.RawMessage) (any, *Error) {
	return map[string]any{"tools": d.Metrics.Snapshot()}, nil
}

func (d Dispatcher) invalidateCache(ctx context.Context, _ *Session, raw json.RawMessage) (any, *Error) {
	var params invalidateCacheParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}

	deleted, err := d.InvalidateCache.Execute(ctx, params.Pattern)
	if err != nil {
		var validationErr *domain.ValidationErr
		if errors.As(err, &validationErr) {
			return nil, NewError(CodeInvalidParams, "invalid params: "+validationErr.Error())
		}
		d.Logger.Printf("RPCDispatcher: invalidate_cache failed: %v", err)
		return nil, NewError(CodeInternalError, "failed to invalidate cache")
	}
	return map[string]any{"deleted": deleted, "pattern": params.Pattern}, nil
}

// authError reports a fixed reason code; the resolver detail is only logged.
func (d Dispatcher) authError(err error) *Error {
	d.Logger.Printf("RPCDispatcher: authentication failed: %v", err)
	return &Error{
		Code:    CodeAuthFailed,
		Message: "authentication failed",
		Data:    map[string]any{"reason": auth.Reason(err)},
	}
}
