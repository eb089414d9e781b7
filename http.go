package auth

import (
	"github.com/dennis-kuruvilla/auth-docs-service/middleware/jwtware"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// RouteAuthenticator wires the authenticator into go-router middleware and
// JSON error responses.
type RouteAuthenticator struct {
	auth         *Auther
	cfg          Config
	Logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

func NewHTTPAuthenticator(auther *Auther, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler

	return a, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// Auther returns the underlying authenticator.
func (a *RouteAuthenticator) Auther() *Auther {
	return a.auth
}

// ProtectedRoute guards a route with the hybrid check: JWT signature and
// expiry first, then the session store, then the role set. Role names follow
// OR semantics; no roles means any authenticated caller.
func (a *RouteAuthenticator) ProtectedRoute(requiredRoles ...string) router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		ErrorHandler: a.ErrorHandler,
		SigningKey: jwtware.SigningKey{
			Key:    []byte(a.cfg.GetSigningKey()),
			JWTAlg: a.cfg.GetSigningMethod(),
		},
		AuthScheme:       a.cfg.GetAuthScheme(),
		ContextKey:       a.cfg.GetContextKey(),
		TokenLookup:      a.cfg.GetTokenLookup(),
		TokenValidator:   tokenValidatorAdapter{ts: a.auth.TokenService()},
		SessionValidator: a.auth.ValidateSession,
		RequiredRoles:    requiredRoles,
	})
}

// ProtectedRouteFor resolves the route's role set from RouteRoles by its
// logical name.
func (a *RouteAuthenticator) ProtectedRouteFor(route string) router.MiddlewareFunc {
	return a.ProtectedRoute(RequiredRolesFor(route)...)
}

// RequestToken returns the raw bearer token the middleware extracted for
// this request.
func (a *RouteAuthenticator) RequestToken(ctx router.Context) (string, bool) {
	raw := ctx.Locals(jwtware.TokenLocalsKey(a.cfg.GetContextKey()))
	if raw == nil {
		return "", false
	}
	token, ok := raw.(string)
	return token, ok && token != ""
}

// RequestClaims returns the validated claims the middleware stored for this
// request.
func (a *RouteAuthenticator) RequestClaims(ctx router.Context) (AuthClaims, bool) {
	return GetRouterClaims(ctx, a.cfg.GetContextKey())
}

// tokenValidatorAdapter bridges the auth TokenService into the middleware's
// local TokenValidator interface.
type tokenValidatorAdapter struct {
	ts TokenService
}

func (v tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := v.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	switch err {
	case jwtware.ErrJWTMissingOrMalformed:
		return jsonError(c, router.StatusUnauthorized, "Unauthorized")
	case jwtware.ErrSessionRevoked:
		return jsonError(c, router.StatusUnauthorized, ErrInvalidSession.Message)
	case jwtware.ErrInsufficientRole:
		return jsonError(c, router.StatusUnauthorized, "Unauthorized")
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Debug("auth middleware rejected request: %s [%s]", richErr.Message, richErr.TextCode)

	status := HTTPStatus(richErr)
	if status >= 500 {
		return jsonError(c, status, "internal server error")
	}

	return jsonError(c, status, richErr.Message)
}

func jsonError(c router.Context, status int, message string) error {
	return c.JSON(status, map[string]string{
		"message": message,
	})
}
