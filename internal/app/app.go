package app

import (
	"github.com/cleitonmarx/symbiont"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/inbound/http"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/inbound/workers"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/outbound/airtable"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/outbound/config"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/outbound/log"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/outbound/memory"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/outbound/postgres"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/outbound/pubsub"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/outbound/redis"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/outbound/time"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/auth"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/catalog"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/tools"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/usecases"
)

// NewToolGatewayApp creates and returns a new instance of the tool gateway application.
func NewToolGatewayApp(initializers ...symbiont.Initializer) *symbiont.App {
	return symbiont.NewApp().
		Initialize(initializers...).
		Initialize(
			&log.InitLogger{},
			&telemetry.InitOpenTelemetry{},
			&telemetry.InitHttpClient{},
			&config.InitVaultProvider{},
			&time.InitCurrentTimeProvider{},

			&catalog.InitToolCatalog{},
			&airtable.InitClient{},
			&tools.InitToolRegistry{},
			&auth.InitAuthResolver{},

			&memory.InitCacheStore{},
			&redis.InitCacheStore{},
			&postgres.InitCacheStore{},
			&pubsub.InitPublisher{},

			&usecases.InitMetricsCollector{},
			&usecases.InitToolResultCache{},
			&usecases.InitUsageEvents{},
			&usecases.InitExecuteTool{},
			&usecases.InitExecuteBatch{},
			&usecases.InitListTools{},
			&usecases.InitGetStatus{},
			&usecases.InitInvalidateCache{},
			&usecases.InitSweepCache{},
		).
		Host(
			&http.ToolGatewayServer{},
			&workers.UsageEventRelay{},
			&workers.CacheSweeper{},
		).
		Introspect(&MermaidGraphIntrospector{})
}
