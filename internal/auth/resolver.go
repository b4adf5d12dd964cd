// Package auth turns inbound credentials into a domain.AuthContext.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/golang-jwt/jwt/v5"
)

var _ domain.AuthResolver = Resolver{}

// ErrHeadersNotAccepted is returned for identity headers when bearer tokens are configured.
var ErrHeadersNotAccepted = errors.New("identity headers are not accepted when token authentication is configured")

// ErrTokensNotAccepted is returned for bearer tokens when no token scheme is configured.
var ErrTokensNotAccepted = errors.New("bearer tokens are not accepted: no token scheme configured")

// ErrInvalidToken is returned for bearer tokens that fail validation.
var ErrInvalidToken = errors.New("invalid bearer token")

// ErrInvalidHeaders is returned for incomplete identity headers.
var ErrInvalidHeaders = errors.New("identity headers require both a principal id and a session id")

// Reason maps a resolver error to a fixed code that is safe to return to callers.
// Parser and claim details stay in the error chain for logging.
func Reason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired_token"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrHeadersNotAccepted):
		return "headers_not_accepted"
	case errors.Is(err, ErrTokensNotAccepted):
		return "tokens_not_accepted"
	case errors.Is(err, ErrInvalidHeaders):
		return "invalid_identity_headers"
	default:
		return "authentication_failed"
	}
}

// Permissions decodes either a JSON array of strings or a space separated string.
type Permissions []string

// UnmarshalJSON implements json.Unmarshaler.
func (p *Permissions) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("permissions must be a string or an array of strings")
	}
	*p = strings.Fields(s)
	return nil
}

// Claims are the token claims understood by the resolver.
type Claims struct {
	jwt.RegisteredClaims
	SessionID   string      `json:"sid,omitempty"`
	TenantID    string      `json:"tid,omitempty"`
	Permissions Permissions `json:"perms,omitempty"`
	Scope       Permissions `json:"scope,omitempty"`
}

// Resolver validates bearer tokens signed with a shared HMAC secret, or trusts
// caller-asserted identity headers when no secret is configured.
type Resolver struct {
	secret       []byte
	parser       *jwt.Parser
	timeProvider domain.CurrentTimeProvider
}

// NewResolver creates a Resolver. An empty secret disables token validation
// and enables the identity header pair.
func NewResolver(secret, issuer, audience string, timeProvider domain.CurrentTimeProvider) Resolver {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithTimeFunc(timeProvider.Now),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return Resolver{
		secret:       []byte(secret),
		parser:       jwt.NewParser(opts...),
		timeProvider: timeProvider,
	}
}

// TokensEnabled reports whether a token scheme is configured.
func (r Resolver) TokensEnabled() bool {
	return len(r.secret) > 0
}

// Resolve returns nil for anonymous callers and an error for credentials that fail verification.
func (r Resolver) Resolve(_ context.Context, creds domain.Credentials) (*domain.AuthContext, error) {
	switch {
	case creds.BearerToken != "":
		if !r.TokensEnabled() {
			return nil, ErrTokensNotAccepted
		}
		return r.resolveToken(creds.BearerToken)
	case creds.PrincipalID != "" || creds.SessionID != "":
		if r.TokensEnabled() {
			return nil, ErrHeadersNotAccepted
		}
		return resolveHeaders(creds)
	default:
		return nil, nil
	}
}

func (r Resolver) resolveToken(token string) (*domain.AuthContext, error) {
	claims := &Claims{}
	_, err := r.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return r.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	ac := &domain.AuthContext{
		PrincipalID: claims.Subject,
		SessionID:   claims.SessionID,
		TenantID:    claims.TenantID,
		Permissions: claims.Permissions,
	}
	if len(ac.Permissions) == 0 {
		ac.Permissions = claims.Scope
	}
	if ac.SessionID == "" {
		ac.SessionID = claims.ID
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.UTC()
		ac.ExpiresAt = &exp
	}
	return ac, nil
}

func resolveHeaders(creds domain.Credentials) (*domain.AuthContext, error) {
	if creds.PrincipalID == "" || creds.SessionID == "" {
		return nil, ErrInvalidHeaders
	}
	return &domain.AuthContext{
		PrincipalID: creds.PrincipalID,
		SessionID:   creds.SessionID,
		TenantID:    creds.TenantID,
		Permissions: creds.Permissions,
	}, nil
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>" header value.
func ExtractBearer(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// ParsePermissions splits a comma or space separated permission list.
func ParsePermissions(header string) []string {
	return strings.FieldsFunc(header, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

// InitAuthResolver registers the domain.AuthResolver.
type InitAuthResolver struct {
	Logger       *log.Logger                `resolve:""`
	TimeProvider domain.CurrentTimeProvider `resolve:""`
	Secret       string                     `config:"AUTH_JWT_SECRET" default:"-"`
	Issuer       string                     `config:"AUTH_JWT_ISSUER" default:"-"`
	Audience     string                     `config:"AUTH_JWT_AUDIENCE" default:"-"`
}

// Initialize registers the resolver in the dependency container.
func (i InitAuthResolver) Initialize(ctx context.Context) (context.Context, error) {
	resolver := NewResolver(unset(i.Secret), unset(i.Issuer), unset(i.Audience), i.TimeProvider)
	if resolver.TokensEnabled() {
		i.Logger.Println("InitAuthResolver: bearer token authentication enabled")
	} else {
		i.Logger.Println("InitAuthResolver: AUTH_JWT_SECRET not set, trusting identity headers")
	}
	depend.Register[domain.AuthResolver](resolver)
	return ctx, nil
}

func unset(v string) string {
	if v == "-" {
		return ""
	}
	return v
}
