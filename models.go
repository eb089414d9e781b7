package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the identity record. The password hash is stored but never
// serialized; queries exclude the column unless they explicitly ask for it.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Roles         []*Role    `bun:"m2m:user_roles,join:User=Role" json:"roles,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// RoleNames returns the names of the user's assigned roles.
func (u *User) RoleNames() []string {
	if u == nil || len(u.Roles) == 0 {
		return nil
	}
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r != nil {
			names = append(names, r.Name)
		}
	}
	return names
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r != nil && r.Name == name {
			return true
		}
	}
	return false
}

// Role is a named permission tag from the closed, admin-managed vocabulary.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string    `bun:"name,notnull,unique" json:"name,omitempty"`
}

// UserRoleAssignment is the users<->roles join row. Uniqueness on
// (user_id, role_id) gives role assignment its union semantics.
type UserRoleAssignment struct {
	bun.BaseModel `bun:"table:user_roles,alias:urol"`
	UserID        uuid.UUID `bun:"user_id,pk,type:uuid" json:"user_id"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	RoleID        uuid.UUID `bun:"role_id,pk,type:uuid" json:"role_id"`
	Role          *Role     `bun:"rel:belongs-to,join:role_id=id" json:"-"`
}

// SessionStatus is the session lifecycle enum. Logout deletes rows instead of
// flipping them to revoked, so only active rows are ever written; the revoked
// value exists for forward compatibility with audit-preserving stores.
type SessionStatus = string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusRevoked SessionStatus = "revoked"
)

// Session is the stateful half of authentication: one row per login, storing
// the signed token verbatim. A token is usable iff a row with matching
// (user_id, token) exists with status active, and its exp claim still holds.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:ses"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID     `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User         `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Token         string        `bun:"token,notnull" json:"-"`
	Status        SessionStatus `bun:"status,notnull,default:'active'" json:"status,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// IsActive reports whether the session row is usable.
func (s *Session) IsActive() bool {
	return s != nil && s.Status == SessionStatusActive
}
