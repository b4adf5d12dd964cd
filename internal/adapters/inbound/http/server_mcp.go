package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/auth"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/toon-format/toon-go"
)

// newMCPHandler exposes the catalog as a Model Context Protocol server over
// streamable HTTP. Credentials are resolved per HTTP request and travel to the
// tool handlers through the request context.
func (s ToolGatewayServer) newMCPHandler(ctx context.Context) (http.Handler, error) {
	server := mcp.NewServer(&mcp.Implementation{Name: "toolgateway", Version: s.ServiceVersion}, nil)

	tools, err := s.ListTools.Query(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tools {
		server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, s.mcpToolHandler(t.Name))
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{Stateless: true})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, err := s.resolveAuth(r)
		if err != nil {
			s.Logger.Printf("ToolGatewayServer: mcp authentication failed: %v", err)
			respondError(w, http.StatusUnauthorized, string(domain.ErrorKind_AuthenticationFailed), auth.Reason(err))
			return
		}
		handler.ServeHTTP(w, r.WithContext(withAuthContext(r.Context(), ac)))
	}), nil
}

func (s ToolGatewayServer) mcpToolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]any{}
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, errors.New("arguments must be a JSON object")
			}
		}

		result := s.ExecuteTool.Execute(ctx, domain.ToolCall{
			ID:        uuid.NewString(),
			ToolName:  name,
			Arguments: args,
			Auth:      authContextFrom(ctx),
			CreatedAt: s.TimeProvider.Now(),
		})
		return toMCPResult(result), nil
	}
}

// toMCPResult renders the payload as TOON text for the model and keeps the full
// result as structured content.
func toMCPResult(result domain.ToolResult) *mcp.CallToolResult {
	if result.Error != nil {
		return &mcp.CallToolResult{
			IsError:           true,
			Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%s: %s", result.Error.Kind, result.Error.Message)}},
			StructuredContent: result,
		}
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: renderPayload(result.Payload)}},
		StructuredContent: result,
	}
}

// renderPayload marshals payload to TOON, falling back to the raw JSON.
func renderPayload(payload json.RawMessage) string {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return string(payload)
	}
	text, err := toon.MarshalString(v, toon.WithLengthMarkers(true))
	if err != nil {
		return string(payload)
	}
	return text
}
