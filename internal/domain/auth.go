package domain

import (
	"context"
	"slices"
	"time"
)

// AuthContext is the principal attached to a tool call. The engine never creates one.
type AuthContext struct {
	PrincipalID string     `json:"principal_id"`
	SessionID   string     `json:"session_id"`
	TenantID    string     `json:"tenant_id,omitempty"`
	Permissions []string   `json:"permissions,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the context carries an expiry at or before now.
func (a AuthContext) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && !now.Before(*a.ExpiresAt)
}

// HasPermission reports whether p was granted. "*" grants everything.
func (a AuthContext) HasPermission(p string) bool {
	if p == "" {
		return true
	}
	return slices.Contains(a.Permissions, p) || slices.Contains(a.Permissions, "*")
}

// Credentials are the inbound credentials presented by a caller.
type Credentials struct {
	BearerToken string
	PrincipalID string
	SessionID   string
	TenantID    string
	Permissions []string
}

// Empty reports whether no credential was presented.
func (c Credentials) Empty() bool {
	return c.BearerToken == "" && c.PrincipalID == "" && c.SessionID == ""
}

// AuthResolver turns inbound credentials into an AuthContext.
// A nil context with a nil error means anonymous.
type AuthResolver interface {
	Resolve(ctx context.Context, creds Credentials) (*AuthContext, error)
}
