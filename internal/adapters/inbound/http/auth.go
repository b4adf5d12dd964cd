package http

import (
	"context"
	"net/http"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/auth"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

// Credential headers accepted when no bearer token is presented.
const (
	HeaderPrincipalID = "X-Principal-ID"
	HeaderSessionID   = "X-Session-ID"
	HeaderTenantID    = "X-Tenant-ID"
	HeaderPermissions = "X-Permissions"
)

type authContextKey struct{}

func credentialsFromRequest(r *http.Request) domain.Credentials {
	return domain.Credentials{
		BearerToken: auth.ExtractBearer(r.Header.Get("Authorization")),
		PrincipalID: r.Header.Get(HeaderPrincipalID),
		SessionID:   r.Header.Get(HeaderSessionID),
		TenantID:    r.Header.Get(HeaderTenantID),
		Permissions: auth.ParsePermissions(r.Header.Get(HeaderPermissions)),
	}
}

// resolveAuth returns the principal of r. Requests without credentials are anonymous.
func (s ToolGatewayServer) resolveAuth(r *http.Request) (*domain.AuthContext, error) {
	creds := credentialsFromRequest(r)
	if creds.Empty() {
		return nil, nil
	}
	return s.AuthResolver.Resolve(r.Context(), creds)
}

func withAuthContext(ctx context.Context, ac *domain.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, ac)
}

func authContextFrom(ctx context.Context) *domain.AuthContext {
	ac, _ := ctx.Value(authContextKey{}).(*domain.AuthContext)
	return ac
}
