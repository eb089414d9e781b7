package auth

// StaticConfig is a plain value implementation of Config. Zero fields fall
// back to sane defaults through the getters, so only the signing key is
// strictly required.
type StaticConfig struct {
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenExpiration int
	TokenLookup     string
	AuthScheme      string
	Issuer          string
	Audience        []string
}

var _ Config = (*StaticConfig)(nil)

func (c StaticConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c StaticConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

func (c StaticConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

// GetTokenExpiration returns the token lifetime in hours.
func (c StaticConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return 1
	}
	return c.TokenExpiration
}

func (c StaticConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return "header:Authorization"
	}
	return c.TokenLookup
}

func (c StaticConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c StaticConfig) GetIssuer() string {
	return c.Issuer
}

func (c StaticConfig) GetAudience() []string {
	return c.Audience
}
