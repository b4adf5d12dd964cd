package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

var placeholderRe = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// EndpointTool serves a catalog entry that declares an endpoint instead of a dedicated handler.
type EndpointTool struct {
	name     string
	endpoint domain.Endpoint
	client   domain.BackendClient
}

// NewEndpointTool creates an EndpointTool for def. def.Endpoint must be set.
func NewEndpointTool(def domain.ToolDefinition, client domain.BackendClient) EndpointTool {
	return EndpointTool{name: def.Name, endpoint: *def.Endpoint, client: client}
}

// Name returns the tool name.
func (t EndpointTool) Name() string { return t.name }

// Execute fills the endpoint template from the call arguments and performs the request.
func (t EndpointTool) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	rest := make(map[string]any, len(call.Arguments))
	for k, v := range call.Arguments {
		rest[k] = v
	}

	var missing error
	path := placeholderRe.ReplaceAllStringFunc(t.endpoint.Path, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := rest[name]
		if !ok || v == nil {
			missing = domain.NewValidationErr(fmt.Sprintf("%s: required by the endpoint path", name))
			return m
		}
		delete(rest, name)
		return url.PathEscape(scalarString(v))
	})
	if missing != nil {
		return nil, missing
	}

	req := domain.BackendRequest{Method: t.endpoint.Method, Path: path}
	if len(rest) == 0 {
		return t.client.Do(ctx, req)
	}

	switch t.endpoint.Method {
	case http.MethodGet, http.MethodDelete:
		req.Query = make(map[string][]string, len(rest))
		for k, v := range rest {
			if list, ok := v.([]any); ok {
				key := k + "[]"
				for _, item := range list {
					req.Query[key] = append(req.Query[key], scalarString(item))
				}
				continue
			}
			req.Query[k] = []string{scalarString(v)}
		}
	default:
		req.Body = rest
	}
	return t.client.Do(ctx, req)
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
