// Package rpc implements the JSON-RPC style envelope, the session state machine
// and the method dispatcher shared by every gateway transport.
package rpc

import (
	"bytes"
	"encoding/json"
)

// Version is the only protocol version accepted in the jsonrpc or version field.
const Version = "2.0"

// Protocol error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeAuthFailed     = -32001
	CodeSessionClosed  = -32002
)

var nullID = json.RawMessage("null")

// Request is an inbound envelope.
type Request struct {
	Version      string          `json:"jsonrpc"`
	// VersionAlias is the protocol version sent under the "version" key.
	VersionAlias string          `json:"version,omitempty"`
	Method       string          `json:"method"`
	Params       json.RawMessage `json:"params,omitempty"`
	ID           json.RawMessage `json:"id,omitempty"`
}

// Response is an outbound envelope. Exactly one of Result and Error is set.
type Response struct {
	Version      string          `json:"jsonrpc"`
	VersionAlias string          `json:"version,omitempty"`
	Result       any             `json:"result,omitempty"`
	Error        *Error          `json:"error,omitempty"`
	ID           json.RawMessage `json:"id"`
}

// Error is the protocol-level error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.Message
}

// NewError creates a protocol error.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// ResultResponse wraps result for the request identified by id.
func ResultResponse(id json.RawMessage, result any) Response {
	return Response{Version: Version, Result: result, ID: normalizeID(id)}
}

// ErrorResponse wraps err for the request identified by id.
func ErrorResponse(id json.RawMessage, err *Error) Response {
	return Response{Version: Version, Error: err, ID: normalizeID(id)}
}

// Reply echoes the version key used by r on resp.
func (r Request) Reply(resp Response) Response {
	if r.VersionAlias != "" {
		resp.VersionAlias = Version
	}
	return resp
}

// ParseRequest decodes one envelope. A nil *Error means req is well formed.
// The returned request keeps whatever id could be recovered so an error
// response can still be correlated.
func ParseRequest(data []byte) (Request, *Error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Request{}, NewError(CodeInvalidRequest, "empty request")
	}
	if !json.Valid(trimmed) {
		return Request{}, NewError(CodeParseError, "parse error: request is not valid JSON")
	}
	if trimmed[0] != '{' {
		return Request{}, NewError(CodeInvalidRequest, "request must be a JSON object; use batch_call_tools to send several calls")
	}

	var req Request
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return recoverEnvelope(trimmed), &Error{
			Code:    CodeInvalidRequest,
			Message: "invalid request",
			Data:    map[string]any{"reason": "invalid_request"},
		}
	}
	if req.Version != "" && req.Version != Version {
		return req, NewError(CodeInvalidRequest, "unsupported jsonrpc version "+req.Version)
	}
	if req.VersionAlias != "" && req.VersionAlias != Version {
		return req, NewError(CodeInvalidRequest, "unsupported version "+req.VersionAlias)
	}
	if req.Method == "" {
		return req, NewError(CodeInvalidRequest, "invalid request: method is required")
	}
	if !validID(req.ID) {
		return Request{}, NewError(CodeInvalidRequest, "invalid request: id must be a string, a number or null")
	}
	return req, nil
}

// recoverEnvelope extracts the id and version key of an envelope whose other
// fields failed to decode.
func recoverEnvelope(data []byte) Request {
	var envelope struct {
		VersionAlias json.RawMessage `json:"version"`
		ID           json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || !validID(envelope.ID) {
		return Request{}
	}
	req := Request{ID: envelope.ID}
	if len(envelope.VersionAlias) > 0 {
		req.VersionAlias = Version
	}
	return req
}

func validID(id json.RawMessage) bool {
	if len(id) == 0 {
		return true
	}
	switch id[0] {
	case '"', 'n', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	}
	return false
}

func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return nullID
	}
	return id
}
