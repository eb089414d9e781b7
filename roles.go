package auth

// UserRole is a role name from the closed vocabulary.
type UserRole = string

const (
	// RoleViewer can read documents.
	RoleViewer UserRole = "viewer"
	// RoleEditor can read and mutate documents.
	RoleEditor UserRole = "editor"
	// RoleAdmin can additionally manage users and role assignments.
	RoleAdmin UserRole = "admin"
)

// DefaultRegistrationRole is assigned when registration supplies no roles.
const DefaultRegistrationRole = RoleViewer

// AllRoles returns the closed role vocabulary.
func AllRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleEditor, RoleViewer}
}

// RegistrationRoles returns the subset of roles a user may self-select at
// registration. Admin is never self-assignable.
func RegistrationRoles() []UserRole {
	return []UserRole{RoleEditor, RoleViewer}
}

// IsValidRole reports whether name is part of the vocabulary.
func IsValidRole(name string) bool {
	switch name {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// IsRegistrationAssignable reports whether name may be self-selected at
// registration.
func IsRegistrationAssignable(name string) bool {
	switch name {
	case RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// uniqueRoleNames drops duplicates while preserving first-seen order.
func uniqueRoleNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// rolesIntersect reports whether any name in have appears in want.
func rolesIntersect(want, have []string) bool {
	if len(want) == 0 || len(have) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(want))
	for _, w := range want {
		set[w] = struct{}{}
	}
	for _, h := range have {
		if _, ok := set[h]; ok {
			return true
		}
	}
	return false
}
