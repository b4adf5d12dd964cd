package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
)

// InitToolCatalog builds the tool catalog and registers it in the dependency container.
type InitToolCatalog struct {
	Logger          *log.Logger   `resolve:""`
	CatalogFile     string        `config:"TOOL_CATALOG_FILE" default:"-"`
	DefaultTimeout  time.Duration `config:"TOOL_DEFAULT_TIMEOUT" default:"30s"`
	DefaultCacheTTL time.Duration `config:"CACHE_DEFAULT_TTL" default:"5m"`
}

// Initialize loads the builtin definitions plus the optional extension file.
func (i InitToolCatalog) Initialize(ctx context.Context) (context.Context, error) {
	defs := BuiltinDefinitions()
	var aliases map[string]string

	if i.CatalogFile != "-" && i.CatalogFile != "" {
		ext, err := LoadExtensions(i.CatalogFile)
		if err != nil {
			return ctx, err
		}
		defs = append(defs, ext.Tools...)
		aliases = ext.Aliases
		i.Logger.Printf("InitToolCatalog: loaded %d extra tool(s) from %s", len(ext.Tools), i.CatalogFile)
	}

	c, err := New(Options{
		DefaultTimeout:  i.DefaultTimeout,
		DefaultCacheTTL: i.DefaultCacheTTL,
	}, defs, aliases)
	if err != nil {
		return ctx, fmt.Errorf("failed to build tool catalog: %w", err)
	}

	depend.Register[domain.ToolCatalog](c)
	return ctx, nil
}
