package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/inbound/rpc"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/usecases"
	"github.com/rs/cors"
)

const maxRequestBytes = 1 << 20

// ToolGatewayServer exposes the tool gateway over HTTP, WebSocket and MCP,
// plus the management endpoints.
type ToolGatewayServer struct {
	Port            int                        `config:"HTTP_PORT" default:"8080"`
	ServiceVersion  string                     `config:"SERVICE_VERSION" default:"dev"`
	Logger          *log.Logger                `resolve:""`
	TimeProvider    domain.CurrentTimeProvider `resolve:""`
	AuthResolver    domain.AuthResolver        `resolve:""`
	ListTools       usecases.ListTools         `resolve:""`
	ExecuteTool     usecases.ExecuteTool       `resolve:""`
	ExecuteBatch    usecases.ExecuteBatch      `resolve:""`
	Metrics         usecases.MetricsCollector  `resolve:""`
	InvalidateCache usecases.InvalidateCache   `resolve:""`
	GetStatus       usecases.GetStatus         `resolve:""`
}

func (s ToolGatewayServer) dispatcher() rpc.Dispatcher {
	return rpc.Dispatcher{
		ListTools:       s.ListTools,
		ExecuteTool:     s.ExecuteTool,
		ExecuteBatch:    s.ExecuteBatch,
		Metrics:         s.Metrics,
		InvalidateCache: s.InvalidateCache,
		AuthResolver:    s.AuthResolver,
		TimeProvider:    s.TimeProvider,
		Logger:          s.Logger,
		ServerInfo:      rpc.ServerInfo{Name: "toolgateway", Version: s.ServiceVersion},
	}
}

// Handler builds the routed, instrumented handler served by Run.
func (s ToolGatewayServer) Handler(ctx context.Context) (http.Handler, error) {
	dispatcher := s.dispatcher()

	mcpHandler, err := s.newMCPHandler(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /rpc", s.handleRPC(dispatcher))
	mux.HandleFunc("GET /ws", s.handleWebSocket(dispatcher))
	mux.Handle("/mcp", mcpHandler)

	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /metrics/tools", s.handleToolMetrics)
	mux.HandleFunc("POST /cache/invalidate", s.handleCacheInvalidate)
	mux.HandleFunc("GET /healthz", handleHealth)

	// Register introspection endpoint for debugging and testing purposes
	mux.HandleFunc("GET /introspect", IntrospectHandler)

	h := telemetry.Middleware("toolgateway-api")(mux)

	// Apply CORS at the top-level so preflight requests hit it, too.
	return cors.AllowAll().Handler(h), nil
}

// Run starts the HTTP server.
func (s ToolGatewayServer) Run(ctx context.Context) error {
	h, err := s.Handler(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           h,
		Addr:              fmt.Sprintf(":%d", s.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Printf("ToolGatewayServer: Listening on port %d", s.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if err != nil {
			s.Logger.Printf("ToolGatewayServer: error during shutdown: %v", err)
		} else {
			s.Logger.Println("ToolGatewayServer: stopped")
		}
		return err
	case err := <-errCh:
		return err
	}
}

// IsReady checks if the ToolGatewayServer is ready by performing a health check.
func (s ToolGatewayServer) IsReady(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://:%d/healthz", s.Port), nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
