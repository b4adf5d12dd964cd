package domain

import (
	"context"
	"encoding/json"
	"time"
)

// ParamType is the JSON type accepted by a tool parameter.
type ParamType string

const (
	ParamType_String ParamType = "string"
	ParamType_Int    ParamType = "int"
	ParamType_Number ParamType = "number"
	ParamType_Bool   ParamType = "bool"
	ParamType_Array  ParamType = "array"
	ParamType_Object ParamType = "object"
)

// ParameterSpec describes a single argument accepted by a tool.
type ParameterSpec struct {
	Name        string    `json:"name" yaml:"name" validate:"required"`
	Type        ParamType `json:"type" yaml:"type" validate:"required,oneof=string int number bool array object"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Required    bool      `json:"required" yaml:"required"`
	Default     any       `json:"default,omitempty" yaml:"default"`
	Enum        []any     `json:"enum,omitempty" yaml:"enum"`
	Pattern     string    `json:"pattern,omitempty" yaml:"pattern"`
	MinValue    *float64  `json:"min_value,omitempty" yaml:"min_value"`
	MaxValue    *float64  `json:"max_value,omitempty" yaml:"max_value"`
	MinLength   *int      `json:"min_length,omitempty" yaml:"min_length"`
	MaxLength   *int      `json:"max_length,omitempty" yaml:"max_length"`
}

// RateLimitHint bounds how often a tool may be dispatched to the backend.
type RateLimitHint struct {
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" validate:"gt=0"`
	Burst             int     `json:"burst" yaml:"burst" validate:"gte=0"`
}

// ToolExample is an illustrative invocation shown to callers.
type ToolExample struct {
	Description string         `json:"description" yaml:"description"`
	Arguments   map[string]any `json:"arguments" yaml:"arguments"`
}

// ToolDefinition is an immutable catalog entry.
type ToolDefinition struct {
	Name               string          `json:"name" yaml:"name" validate:"required,max=64,toolname"`
	Category           string          `json:"category" yaml:"category" validate:"required"`
	Description        string          `json:"description" yaml:"description" validate:"required"`
	Parameters         []ParameterSpec `json:"parameters" yaml:"parameters" validate:"dive"`
	Timeout            time.Duration   `json:"timeout" yaml:"timeout" validate:"gte=0"`
	RateLimit          *RateLimitHint  `json:"rate_limit,omitempty" yaml:"rate_limit" validate:"omitempty"`
	Cacheable          bool            `json:"cacheable" yaml:"cacheable"`
	CacheTTL           time.Duration   `json:"cache_ttl,omitempty" yaml:"cache_ttl" validate:"gte=0"`
	RequiresAuth       bool            `json:"requires_auth" yaml:"requires_auth"`
	RequiredPermission string          `json:"required_permission,omitempty" yaml:"required_permission"`
	Invalidates        []string        `json:"invalidates,omitempty" yaml:"invalidates"`
	Examples           []ToolExample   `json:"examples,omitempty" yaml:"examples"`
	Endpoint           *Endpoint       `json:"-" yaml:"endpoint" validate:"omitempty"`
}

// Endpoint maps a tool without a dedicated handler onto one backend call.
// Path segments written as {param} are filled from the arguments; the remaining
// arguments become the query string for GET and DELETE and the JSON body otherwise.
type Endpoint struct {
	Method string `yaml:"method" validate:"required,oneof=GET POST PATCH PUT DELETE"`
	Path   string `yaml:"path" validate:"required,startswith=/"`
}

// Parameter returns the named parameter.
func (d ToolDefinition) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// ToolCatalog resolves and validates tools. It is read-only at runtime.
type ToolCatalog interface {
	// Lookup returns the definition of the named tool, resolving legacy aliases.
	Lookup(name string) (ToolDefinition, bool)
	// ValidateArguments checks args against the named tool's parameter schema.
	ValidateArguments(name string, args map[string]any) []ArgumentViolation
	// List returns every registered definition sorted by name.
	List() []ToolDefinition
}

// ArgumentViolation describes one failed argument check.
type ArgumentViolation struct {
	Parameter string    `json:"parameter"`
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
}

// BackendRequest is an HTTP call against the backend data API.
type BackendRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   any
}

// BackendClient performs requests against the backend data API.
type BackendClient interface {
	Do(ctx context.Context, req BackendRequest) (json.RawMessage, error)
}

// ToolHandler is the strategy implementing one tool.
type ToolHandler interface {
	// Name returns the canonical tool name the handler serves.
	Name() string
	// Execute runs the tool with already validated arguments.
	Execute(ctx context.Context, call ToolCall) (json.RawMessage, error)
}

// ToolHandlerRegistry maps tool names to their implementation.
type ToolHandlerRegistry interface {
	Handler(name string) (ToolHandler, bool)
}
