package auth_test

import (
	"testing"

	auth "github.com/dennis-kuruvilla/auth-docs-service"
	"github.com/stretchr/testify/assert"
)

func TestStaticConfigDefaults(t *testing.T) {
	cfg := auth.StaticConfig{SigningKey: "key"}

	assert.Equal(t, "key", cfg.GetSigningKey())
	assert.Equal(t, "HS256", cfg.GetSigningMethod())
	assert.Equal(t, "user", cfg.GetContextKey())
	assert.Equal(t, 1, cfg.GetTokenExpiration())
	assert.Equal(t, "header:Authorization", cfg.GetTokenLookup())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
	assert.Empty(t, cfg.GetIssuer())
	assert.Empty(t, cfg.GetAudience())
}

func TestStaticConfigOverrides(t *testing.T) {
	cfg := auth.StaticConfig{
		SigningKey:      "key",
		SigningMethod:   "HS512",
		ContextKey:      "session",
		TokenExpiration: 4,
		TokenLookup:     "cookie:jwt",
		AuthScheme:      "Token",
		Issuer:          "issuer",
		Audience:        []string{"aud:one"},
	}

	assert.Equal(t, "HS512", cfg.GetSigningMethod())
	assert.Equal(t, "session", cfg.GetContextKey())
	assert.Equal(t, 4, cfg.GetTokenExpiration())
	assert.Equal(t, "cookie:jwt", cfg.GetTokenLookup())
	assert.Equal(t, "Token", cfg.GetAuthScheme())
	assert.Equal(t, "issuer", cfg.GetIssuer())
	assert.Equal(t, []string{"aud:one"}, cfg.GetAudience())
}
