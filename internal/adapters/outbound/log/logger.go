package log

import (
	"context"
	"log"
	"os"

	"github.com/cleitonmarx/symbiont/depend"
)

// InitLogger registers the process logger. Components prefix their messages
// with their own name, e.g. "ToolGatewayServer: listening on :8080".
type InitLogger struct {
	Prefix string `config:"LOG_PREFIX" default:"[toolgateway] "`
}

// Initialize registers the logger in the dependency container.
func (il InitLogger) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register(log.New(os.Stdout, il.Prefix, log.LstdFlags|log.LUTC|log.Lmsgprefix))
	return ctx, nil
}
