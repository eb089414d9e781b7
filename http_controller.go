package auth

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

type AuthControllerRoutes struct {
	Register string
	Login    string
	Logout   string
	Smoke    string
	Admin    string
}

// AuthController exposes the JSON endpoints for registration, login, logout,
// and the admin user/role surface.
type AuthController struct {
	Debug        bool
	Logger       Logger
	Auther       *Auther
	Admin        *UserAdminService
	HTTP         *RouteAuthenticator
	Routes       *AuthControllerRoutes
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithAuthControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithAuthControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(auther *Auther, admin *UserAdminService, http *RouteAuthenticator, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Auther: auther,
		Admin:  admin,
		HTTP:   http,
		Routes: &AuthControllerRoutes{
			Register: "/auth/register",
			Login:    "/auth/login",
			Logout:   "/auth/logout",
			Smoke:    "/auth",
			Admin:    "/admin/users",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	c.ErrorHandler = c.handleError

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Admin == nil {
		panic("Missing UserAdminService in auth controller...")
	}

	if c.HTTP == nil {
		panic("Missing RouteAuthenticator in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the auth and admin routes. The logout route only
// needs a valid session; the smoke and admin routes resolve their role sets
// from RouteRoles.
func RegisterAuthRoutes(app RouteRegistrar, c *AuthController) {
	app.Post(c.Routes.Register, c.Register)
	app.Post(c.Routes.Login, c.Login)
	app.Post(c.Routes.Logout, c.Logout, c.HTTP.ProtectedRoute())
	app.Get(c.Routes.Smoke, c.SmokeTest, c.HTTP.ProtectedRouteFor("auth.smoke"))

	admin := c.HTTP.ProtectedRouteFor("admin.users")
	app.Get(c.Routes.Admin, c.ListUsers, admin)
	app.Get(c.Routes.Admin+"/:userId", c.GetUser, admin)
	app.Post(c.Routes.Admin+"/:userId/roles", c.AssignRoles, admin)
	app.Put(c.Routes.Admin+"/:userId/roles", c.UpdateRoles, admin)
	app.Delete(c.Routes.Admin+"/:userId/roles", c.RemoveRole, admin)
}

// RegisterPayload is the registration request body.
type RegisterPayload struct {
	Email    string   `form:"email" json:"email"`
	Password string   `form:"password" json:"password"`
	Roles    []string `form:"roles" json:"roles"`
}

// Validate will run validation rules
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(0, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(0, 100)),
		validation.Field(&r.Roles, validation.By(ValidateRegistrationRoles)),
	)
}

// ValidateRegistrationRoles accepts only role names callers may self-select.
// Omitting the field is fine, but a provided set must not be empty.
func ValidateRegistrationRoles(value any) error {
	names, _ := value.([]string)
	if names != nil && len(names) == 0 {
		return errors.New("must not be empty when provided")
	}
	for _, name := range names {
		if !IsRegistrationAssignable(name) {
			return fmt.Errorf("role %q cannot be self-assigned", name)
		}
	}
	return nil
}

func (c *AuthController) Register(ctx router.Context) error {
	payload := new(RegisterPayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("register parse payload: %s", err)
		return badRequest(ctx, "Error parsing body")
	}

	if err := payload.Validate(); err != nil {
		return c.ErrorHandler(ctx, err)
	}

	if c.Debug {
		fmt.Println("======= AUTH REGISTER ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("============================")
	}

	user, err := c.Auther.Register(ctx.Context(), RegisterMessage{
		Email:    payload.Email,
		Password: payload.Password,
		Roles:    payload.Roles,
	})
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, user)
}

// LoginPayload is the login request body.
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (c *AuthController) Login(ctx router.Context) error {
	payload := new(LoginPayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("login parse payload: %s", err)
		return badRequest(ctx, "Error parsing body")
	}

	if err := payload.Validate(); err != nil {
		return c.ErrorHandler(ctx, err)
	}

	token, err := c.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"accessToken": token,
	})
}

func (c *AuthController) Logout(ctx router.Context) error {
	claims, ok := c.HTTP.RequestClaims(ctx)
	if !ok {
		return c.ErrorHandler(ctx, ErrInvalidSession)
	}

	token, ok := c.HTTP.RequestToken(ctx)
	if !ok {
		return c.ErrorHandler(ctx, ErrInvalidSession)
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return c.ErrorHandler(ctx, ErrInvalidSession)
	}

	if err := c.Auther.Logout(ctx.Context(), userID, token); err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"message": "Logout successful",
	})
}

func (c *AuthController) SmokeTest(ctx router.Context) error {
	return ctx.JSON(router.StatusOK, map[string]string{
		"message": "auth is working fine",
	})
}

// RolesPayload carries role names for the admin assign and update endpoints.
type RolesPayload struct {
	Roles []string `form:"roles" json:"roles"`
}

// Validate will run validation rules
func (r RolesPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Roles, validation.Required),
	)
}

// RemoveRolePayload names the single role to detach.
type RemoveRolePayload struct {
	Role string `form:"role" json:"role"`
}

// Validate will run validation rules
func (r RemoveRolePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required),
	)
}

func (c *AuthController) AssignRoles(ctx router.Context) error {
	userID, err := pathUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	payload := new(RolesPayload)
	if err := ctx.Bind(payload); err != nil {
		return badRequest(ctx, "Error parsing body")
	}

	if err := payload.Validate(); err != nil {
		return c.ErrorHandler(ctx, err)
	}

	user, err := c.Admin.AssignRoles(ctx.Context(), userID, payload.Roles)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

func (c *AuthController) UpdateRoles(ctx router.Context) error {
	userID, err := pathUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	payload := new(RolesPayload)
	if err := ctx.Bind(payload); err != nil {
		return badRequest(ctx, "Error parsing body")
	}

	if err := payload.Validate(); err != nil {
		return c.ErrorHandler(ctx, err)
	}

	user, err := c.Admin.UpdateRoles(ctx.Context(), userID, payload.Roles)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

func (c *AuthController) RemoveRole(ctx router.Context) error {
	userID, err := pathUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	payload := new(RemoveRolePayload)
	if err := ctx.Bind(payload); err != nil {
		return badRequest(ctx, "Error parsing body")
	}

	if err := payload.Validate(); err != nil {
		return c.ErrorHandler(ctx, err)
	}

	user, err := c.Admin.RemoveRole(ctx.Context(), userID, payload.Role)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

func (c *AuthController) ListUsers(ctx router.Context) error {
	search := ctx.Query("search", "")

	users, err := c.Admin.ListUsers(ctx.Context(), search)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	if c.Debug {
		fmt.Println("======= ADMIN USERS ======")
		fmt.Println(print.MaybePrettyJSON(users))
		fmt.Println("==========================")
	}

	return ctx.JSON(router.StatusOK, users)
}

func (c *AuthController) GetUser(ctx router.Context) error {
	userID, err := pathUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	user, err := c.Admin.GetUser(ctx.Context(), userID)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

func pathUserID(ctx router.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return uuid.Nil, ErrInvalidUserID
	}
	return id, nil
}

func (c *AuthController) handleError(ctx router.Context, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"message": "validation failed",
			"errors":  verrs,
		})
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		status := HTTPStatus(richErr)
		if status >= 500 {
			c.Logger.Error("request failed: %s", richErr)
			return jsonError(ctx, status, "internal server error")
		}
		return jsonError(ctx, status, richErr.Message)
	}

	c.Logger.Error("unexpected error: %s", err)
	return jsonError(ctx, router.StatusInternalServerError, "internal server error")
}

func badRequest(ctx router.Context, message string) error {
	return jsonError(ctx, router.StatusBadRequest, message)
}
