package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthContext_Expired(t *testing.T) {
	past := fixedTime.Add(-time.Minute)
	future := fixedTime.Add(time.Minute)

	tests := map[string]struct {
		expiresAt *time.Time
		want      bool
	}{
		"no-expiry":      {expiresAt: nil, want: false},
		"expired":        {expiresAt: &past, want: true},
		"expires-at-now": {expiresAt: &fixedTime, want: true},
		"still-valid":    {expiresAt: &future, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ac := AuthContext{PrincipalID: "alice", ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, ac.Expired(fixedTime))
		})
	}
}

func TestAuthContext_HasPermission(t *testing.T) {
	tests := map[string]struct {
		granted    []string
		permission string
		want       bool
	}{
		"granted":          {granted: []string{"records:read", "records:write"}, permission: "records:write", want: true},
		"not-granted":      {granted: []string{"records:read"}, permission: "records:write", want: false},
		"wildcard":         {granted: []string{"*"}, permission: "records:write", want: true},
		"none-required":    {granted: nil, permission: "", want: true},
		"empty-grant-list": {granted: nil, permission: "records:write", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ac := AuthContext{PrincipalID: "alice", Permissions: tt.granted}
			assert.Equal(t, tt.want, ac.HasPermission(tt.permission))
		})
	}
}

func TestCredentials_Empty(t *testing.T) {
	assert.True(t, Credentials{}.Empty())
	assert.True(t, Credentials{TenantID: "t1", Permissions: []string{"*"}}.Empty())
	assert.False(t, Credentials{BearerToken: "tok"}.Empty())
	assert.False(t, Credentials{PrincipalID: "alice"}.Empty())
	assert.False(t, Credentials{SessionID: "s1"}.Empty())
}
