package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents validated token claims with role checking helpers.
type AuthClaims interface {
	Subject() string
	UserID() string
	RoleNames() []string
	HasRole(role string) bool
	HasAnyRole(roles ...string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete claims payload: registered claims plus the
// subject's role names captured at login time. Roles are not re-derived after
// issuance; a token keeps the role set it was minted with.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID   string   `json:"uid,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID, falling back to the subject claim.
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// RoleNames returns the role names minted into the token.
func (c *JWTClaims) RoleNames() []string {
	return c.Roles
}

// HasRole checks if the token carries a specific role
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if the token carries at least one of the given roles.
func (c *JWTClaims) HasAnyRole(roles ...string) bool {
	return rolesIntersect(roles, c.Roles)
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issuance time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ensureTokenID assigns a jti when the claims lack one.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
