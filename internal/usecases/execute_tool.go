package usecases

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/catalog"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// ExecuteTool runs a single tool call.
type ExecuteTool interface {
	// Execute never panics; every failure is encoded in the returned result.
	Execute(ctx context.Context, call domain.ToolCall) domain.ToolResult
}

// ExecuteToolImpl authenticates, validates, caches and dispatches tool calls.
type ExecuteToolImpl struct {
	catalog           domain.ToolCatalog
	handlers          domain.ToolHandlerRegistry
	cache             ToolResultCache
	metrics           MetricsCollector
	events            UsageEventQueue
	timeProvider      domain.CurrentTimeProvider
	logger            *log.Logger
	limiters          map[string]*rate.Limiter
	scopePerPrincipal bool
}

// NewExecuteToolImpl creates the executor. Rate limiters are built once from the catalog.
func NewExecuteToolImpl(
	toolCatalog domain.ToolCatalog,
	handlers domain.ToolHandlerRegistry,
	cache ToolResultCache,
	metrics MetricsCollector,
	events UsageEventQueue,
	timeProvider domain.CurrentTimeProvider,
	logger *log.Logger,
	scopePerPrincipal bool,
) ExecuteToolImpl {
	limiters := map[string]*rate.Limiter{}
	for _, def := range toolCatalog.List() {
		if def.RateLimit == nil {
			continue
		}
		burst := def.RateLimit.Burst
		if burst < 1 {
			burst = max(1, int(def.RateLimit.RequestsPerSecond))
		}
		limiters[def.Name] = rate.NewLimiter(rate.Limit(def.RateLimit.RequestsPerSecond), burst)
	}

	return ExecuteToolImpl{
		catalog:           toolCatalog,
		handlers:          handlers,
		cache:             cache,
		metrics:           metrics,
		events:            events,
		timeProvider:      timeProvider,
		logger:            logger,
		limiters:          limiters,
		scopePerPrincipal: scopePerPrincipal,
	}
}

// Execute runs call through auth, catalog, validation, cache, rate limit and dispatch.
func (et ExecuteToolImpl) Execute(ctx context.Context, call domain.ToolCall) (result domain.ToolResult) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
		attribute.String("tool.name", call.ToolName),
		attribute.String("tool.call_id", call.ID),
	))
	defer span.End()

	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	start := et.timeProvider.Now()
	resolved := false

	defer func() {
		if r := recover(); r != nil {
			et.logger.Printf("ExecuteTool: recovered panic in %s (call %s): %v", call.ToolName, call.ID, r)
			result = et.fail(call, domain.NewToolError(domain.ErrorKind_InternalError, "internal error while executing tool"), start)
		}
		if result.Error != nil {
			span.SetAttributes(attribute.String("tool.error_kind", string(result.Error.Kind)))
			telemetry.RecordErrorAndStatus(span, result.Error)
		} else {
			telemetry.RecordErrorAndStatus(span, nil)
		}
		span.SetAttributes(attribute.Bool("tool.cache_hit", result.CacheHit))
		et.finish(spanCtx, call, result, resolved)
	}()

	if call.Auth != nil && call.Auth.Expired(start) {
		return et.fail(call, domain.NewToolError(domain.ErrorKind_AuthenticationFailed, "authentication context has expired"), start)
	}

	def, ok := et.catalog.Lookup(call.ToolName)
	if !ok {
		return et.fail(call,
			domain.NewToolError(domain.ErrorKind_UnknownTool, fmt.Sprintf("unknown tool: %s", call.ToolName)).
				WithDetail("tool", call.ToolName),
			start)
	}
	call.ToolName = def.Name
	resolved = true

	if violations := et.catalog.ValidateArguments(def.Name, call.Arguments); len(violations) > 0 {
		return et.fail(call, violationsError(violations), start)
	}
	call.Arguments = catalog.ApplyDefaults(def, call.Arguments)

	if toolErr := checkAccess(def, call.Auth); toolErr != nil {
		return et.fail(call, toolErr, start)
	}

	cacheKey := ""
	if def.Cacheable && def.CacheTTL > 0 {
		key, err := et.cache.Key(def.Name, call.Arguments, et.cacheScope(call))
		if err != nil {
			et.logger.Printf("ExecuteTool: cache key for %s failed, bypassing cache: %v", def.Name, err)
		} else {
			cacheKey = key
			if entry, hit := et.cache.Get(spanCtx, cacheKey); hit {
				elapsed, now := domain.Elapsed(et.timeProvider, start)
				return domain.NewCompletedResult(call, entry.Payload, elapsed, true, now)
			}
		}
	}

	if limiter, ok := et.limiters[def.Name]; ok && !limiter.AllowN(et.timeProvider.Now(), 1) {
		retryAfter := time.Duration(float64(time.Second) / def.RateLimit.RequestsPerSecond)
		return et.fail(call,
			domain.NewToolError(domain.ErrorKind_RateLimitExceeded, fmt.Sprintf("rate limit exceeded for tool %s", def.Name)).
				AsRetryable(retryAfter),
			start)
	}

	handler, ok := et.handlers.Handler(def.Name)
	if !ok {
		et.logger.Printf("ExecuteTool: no handler registered for %s", def.Name)
		return et.fail(call, domain.NewToolError(domain.ErrorKind_InternalError, "internal error while executing tool"), start)
	}

	timeout := def.Timeout
	if call.Timeout > 0 {
		timeout = call.Timeout
	}
	dispatchCtx, cancel := context.WithTimeout(spanCtx, timeout)
	defer cancel()

	payload, err := handler.Execute(dispatchCtx, call)
	if err != nil {
		toolErr := ClassifyError(err)
		if toolErr.Kind == domain.ErrorKind_TimeoutError {
			toolErr.WithDetail("timeout_ms", timeout.Milliseconds())
		}
		if toolErr.Kind == domain.ErrorKind_InternalError {
			et.logger.Printf("ExecuteTool: %s (call %s) failed: %v", def.Name, call.ID, err)
		}
		return et.fail(call, toolErr, start)
	}
	if payload, err = CompactPayload(payload); err != nil {
		et.logger.Printf("ExecuteTool: %s (call %s) returned an invalid payload: %v", def.Name, call.ID, err)
		return et.fail(call, domain.NewToolError(domain.ErrorKind_InternalError, "internal error while executing tool"), start)
	}

	if cacheKey != "" {
		hash, _ := ArgumentsHash(call.Arguments)
		et.cache.Set(spanCtx, domain.CacheEntry{
			Key:           cacheKey,
			ToolName:      def.Name,
			ArgumentsHash: hash,
			Payload:       payload,
			PrincipalID:   et.cacheScope(call),
		}, def.CacheTTL)
	}
	et.invalidateDependents(spanCtx, def)

	elapsed, now := domain.Elapsed(et.timeProvider, start)
	return domain.NewCompletedResult(call, payload, elapsed, false, now)
}

func (et ExecuteToolImpl) cacheScope(call domain.ToolCall) string {
	if !et.scopePerPrincipal {
		return ""
	}
	return call.PrincipalID()
}

// invalidateDependents drops the cached results of the read tools a mutating tool affects.
func (et ExecuteToolImpl) invalidateDependents(ctx context.Context, def domain.ToolDefinition) {
	for _, name := range def.Invalidates {
		for _, pattern := range []string{cacheKeyPrefix + name + ":*", cacheKeyPrefix + "p:*:" + name + ":*"} {
			if _, err := et.cache.Invalidate(ctx, pattern); err != nil {
				et.logger.Printf("ExecuteTool: invalidating %s after %s failed: %v", pattern, def.Name, err)
			}
		}
	}
}

func (et ExecuteToolImpl) fail(call domain.ToolCall, toolErr *domain.ToolError, start time.Time) domain.ToolResult {
	elapsed, now := domain.Elapsed(et.timeProvider, start)
	return domain.NewFailedResult(call, toolErr, elapsed, now)
}

// finish records metrics and enqueues the usage event. Unknown tools are not
// recorded so arbitrary names cannot grow the metrics map.
func (et ExecuteToolImpl) finish(ctx context.Context, call domain.ToolCall, result domain.ToolResult, resolved bool) {
	if resolved {
		kind := domain.ErrorKind("")
		if result.Error != nil {
			kind = result.Error.Kind
		}
		et.metrics.Record(result.ToolName, result.DurationMs, result.Succeeded(), kind, result.CacheHit)
		RecordToolCall(ctx, result)
	}
	if et.events != nil {
		et.events.Enqueue(ctx, domain.NewToolExecutedEvent(call, result))
	}
}

func checkAccess(def domain.ToolDefinition, auth *domain.AuthContext) *domain.ToolError {
	if !def.RequiresAuth && def.RequiredPermission == "" {
		return nil
	}
	if auth == nil || auth.PrincipalID == "" {
		return domain.NewToolError(domain.ErrorKind_AuthenticationFailed, fmt.Sprintf("tool %s requires an authenticated principal", def.Name))
	}
	if !auth.HasPermission(def.RequiredPermission) {
		return domain.NewToolError(domain.ErrorKind_AuthorizationFailed, fmt.Sprintf("permission %s is required", def.RequiredPermission)).
			WithDetail("required_permission", def.RequiredPermission)
	}
	return nil
}

func violationsError(violations []domain.ArgumentViolation) *domain.ToolError {
	kind := domain.ErrorKind_InvalidArguments
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		if v.Kind == domain.ErrorKind_MissingRequiredParam {
			kind = domain.ErrorKind_MissingRequiredParam
		}
		messages = append(messages, v.Message)
	}
	return domain.NewToolError(kind, strings.Join(messages, "; ")).WithDetail("violations", violations)
}

// InitExecuteTool registers the ExecuteTool use case.
type InitExecuteTool struct {
	Catalog           domain.ToolCatalog         `resolve:""`
	Handlers          domain.ToolHandlerRegistry `resolve:""`
	Cache             ToolResultCache            `resolve:""`
	Metrics           MetricsCollector           `resolve:""`
	Events            UsageEventQueue            `resolve:""`
	TimeProvider      domain.CurrentTimeProvider `resolve:""`
	Logger            *log.Logger                `resolve:""`
	ScopePerPrincipal bool                       `config:"CACHE_SCOPE_PER_PRINCIPAL" default:"true"`
}

// Initialize registers the ExecuteTool implementation in the dependency container.
func (i InitExecuteTool) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[ExecuteTool](NewExecuteToolImpl(
		i.Catalog,
		i.Handlers,
		i.Cache,
		i.Metrics,
		i.Events,
		i.TimeProvider,
		i.Logger,
		i.ScopePerPrincipal,
	))
	return ctx, nil
}
