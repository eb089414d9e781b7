package auth

// CheckRoles enforces OR semantics over a required role set: the caller
// passes when it holds at least one of the required roles. An empty required
// set means the route is open to any authenticated caller. Denials use the
// generic ErrUnauthorized so responses never leak which role was missing.
func CheckRoles(required []string, claims AuthClaims) error {
	if len(required) == 0 {
		return nil
	}

	if claims == nil {
		return ErrUnauthorized
	}

	if rolesIntersect(required, claims.RoleNames()) {
		return nil
	}

	return ErrUnauthorized
}

// RouteRoles maps logical route names to the roles allowed to reach them.
// Routes absent from the map require authentication only.
var RouteRoles = map[string][]string{
	"auth.smoke":      {RoleAdmin},
	"admin.users":     {RoleAdmin},
	"documents.write": {RoleAdmin, RoleEditor},
}

// RequiredRolesFor looks up the role set declared for a logical route name.
func RequiredRolesFor(route string) []string {
	return RouteRoles[route]
}
