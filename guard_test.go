package auth_test

import (
	"testing"

	auth "github.com/dennis-kuruvilla/auth-docs-service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func claimsWithRoles(roles ...string) auth.AuthClaims {
	return &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "tester"},
		Roles:            roles,
	}
}

func TestCheckRoles(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		held     []string
		allowed  bool
	}{
		{
			name:     "holding one of several required roles passes",
			required: []string{auth.RoleAdmin, auth.RoleEditor},
			held:     []string{auth.RoleEditor},
			allowed:  true,
		},
		{
			name:     "holding none of the required roles fails",
			required: []string{auth.RoleAdmin, auth.RoleEditor},
			held:     []string{auth.RoleViewer},
			allowed:  false,
		},
		{
			name:     "empty required set allows everyone",
			required: nil,
			held:     []string{auth.RoleViewer},
			allowed:  true,
		},
		{
			name:     "empty required set allows role-less callers",
			required: []string{},
			held:     nil,
			allowed:  true,
		},
		{
			name:     "no roles held fails a guarded route",
			required: []string{auth.RoleViewer},
			held:     nil,
			allowed:  false,
		},
		{
			name:     "exact single role match passes",
			required: []string{auth.RoleAdmin},
			held:     []string{auth.RoleAdmin},
			allowed:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := auth.CheckRoles(tc.required, claimsWithRoles(tc.held...))
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, auth.ErrUnauthorized)
				assert.Equal(t, "Unauthorized", auth.ErrUnauthorized.Message)
			}
		})
	}

	t.Run("nil claims fail guarded routes", func(t *testing.T) {
		assert.ErrorIs(t, auth.CheckRoles([]string{auth.RoleViewer}, nil), auth.ErrUnauthorized)
	})

	t.Run("nil claims pass open routes", func(t *testing.T) {
		assert.NoError(t, auth.CheckRoles(nil, nil))
	})
}

func TestRouteRoles(t *testing.T) {
	assert.Equal(t, []string{auth.RoleAdmin}, auth.RequiredRolesFor("admin.users"))
	assert.Equal(t, []string{auth.RoleAdmin}, auth.RequiredRolesFor("auth.smoke"))
	assert.ElementsMatch(t, []string{auth.RoleAdmin, auth.RoleEditor}, auth.RequiredRolesFor("documents.write"))
	assert.Nil(t, auth.RequiredRolesFor("documents.read"))
}
