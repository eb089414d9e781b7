// Package auth implements the hybrid authentication and authorization
// subsystem of the documents API: JWT issuance layered over revocable
// server-side sessions, plus role-based access control for protected
// operations.
//
// Tokens are stateless HS256 JWTs carrying {sub, roles, iat, exp}, but every
// authenticated request is cross-checked against the sessions table, so a
// logout revokes a token before its natural expiry. The middleware in
// middleware/jwtware runs that chain per request: extract bearer token,
// verify signature and expiry, decode claims, confirm a live session row,
// then enforce the route's declared role set.
//
// Role requirements are declared per route as plain data (see RouteRoles) and
// checked procedurally; an operation with no declared roles admits any
// authenticated identity, otherwise a single matching role suffices.
package auth
