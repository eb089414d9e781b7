package auth

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeUserExists         = "auth_user_exists"
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeInvalidSession     = "auth_invalid_session"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeTokenMalformed     = "auth_token_malformed"
	TextCodeUnauthorized       = "auth_unauthorized"
	TextCodeUserNotFound       = "auth_user_not_found"
	TextCodeInvalidUserID      = "auth_invalid_user_id"
	TextCodeRoleNotFound       = "auth_role_not_found"
	TextCodeRolesNotFound      = "auth_roles_not_found"
)

// ErrUserExists is returned when registration hits an already taken email.
var ErrUserExists = errors.New("user already exists", errors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(errors.CodeConflict)

// ErrInvalidCredentials is returned for unknown emails and bad passwords
// alike; the two cases must stay indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidSession is returned when no active session row backs a token.
var ErrInvalidSession = errors.New("session is invalid or expired", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidSession).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a token's exp claim has passed.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail parsing or signature checks.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthorized is the generic role-check denial. The message deliberately
// says nothing about which roles the operation required.
var ErrUnauthorized = errors.New("Unauthorized", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidUserID is returned when a path parameter fails to parse as a
// UUID; malformed ids are a request problem, not a lookup miss.
var ErrInvalidUserID = errors.New("invalid user id", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidUserID).
	WithCode(errors.CodeBadRequest)

// ErrUserNotFound is returned by admin operations targeting an unknown user.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrRoleNotFound is returned when a single named role does not resolve.
var ErrRoleNotFound = errors.New("role not found", errors.CategoryNotFound).
	WithTextCode(TextCodeRoleNotFound).
	WithCode(errors.CodeNotFound)

// ErrRolesNotFound is returned by the strict admin paths when any requested
// role name fails to resolve.
var ErrRolesNotFound = errors.New("one or more roles not found", errors.CategoryNotFound).
	WithTextCode(TextCodeRolesNotFound).
	WithCode(errors.CodeNotFound)

// ErrMismatchedHashAndPassword is the password comparison failure.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty input to the password hasher.
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// HTTPStatus maps an error to the status code the HTTP boundary should emit.
// Store and signing failures carry no auth category and fall through to 500;
// they are never masked as authentication failures.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var rich *errors.Error
	if !errors.As(err, &rich) {
		return http.StatusInternalServerError
	}

	switch rich.Category {
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsTokenExpiredError will check for expired tokens. Wrapped rich errors keep
// their TextCode, so the check works on both the sentinel and wraps of it.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	var rich *errors.Error
	if errors.As(err, &rich) && rich.TextCode == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for malformed or badly signed tokens.
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	var rich *errors.Error
	if errors.As(err, &rich) && rich.TextCode == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "missing or malformed JWT")
}
