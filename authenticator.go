package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Auther orchestrates registration, login, logout, and session validation
// over explicit store references; nothing is resolved from ambient state.
type Auther struct {
	repo         RepositoryManager
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(repo RepositoryManager, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		repo:         repo,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService swaps the token issuer, e.g. for custom claim layouts.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// RegisterMessage carries a registration request into the service. Role names
// outside the stored vocabulary are dropped silently; the HTTP boundary is
// where the self-assignable allow-list gets enforced.
type RegisterMessage struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles,omitempty"`
	UseHashid bool     `json:"-"`
}

// Register persists a new user with an encrypted password and resolved roles.
// It does not create a session; registration does not log the user in.
func (s *Auther) Register(ctx context.Context, msg RegisterMessage) (*User, error) {
	if _, err := s.repo.Users().GetByEmail(ctx, msg.Email); err == nil {
		return nil, ErrUserExists
	} else if !repository.IsRecordNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing user")
	}

	hash, err := HashPassword(msg.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	names := uniqueRoleNames(msg.Roles)
	if len(names) == 0 {
		names = []string{DefaultRegistrationRole}
	}

	roles, err := s.repo.Roles().GetByNames(ctx, names)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve roles")
	}

	user := &User{
		Email:        msg.Email,
		PasswordHash: hash,
	}

	if msg.UseHashid {
		if id, err := hashid.NewUUID(msg.Email); err == nil {
			user.ID = id
		}
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err = s.repo.Users().RegisterTx(ctx, tx, user, roles)
		return err
	})

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	return user, nil
}

// Login verifies credentials, mints a token carrying the user's current role
// names, and opens a new session row for it. Prior sessions are untouched.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.Users().GetByEmailWithPassword(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			s.logger.Debug("Login unknown email: %s", email)
			return "", ErrInvalidCredentials
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch user")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.logger.Debug("Login password mismatch for user %s", user.ID)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(NewIdentityFromUser(user))
	if err != nil {
		s.logger.Error("Login error generating token: %s", err)
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	if _, err := s.repo.Sessions().Start(ctx, user.ID, token); err != nil {
		s.logger.Error("Login error creating session: %s", err)
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create session")
	}

	return token, nil
}

// Logout revokes the active session matching (userID, token). Revoking a
// token twice fails the second time; there is no session left to revoke.
func (s *Auther) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	err := s.repo.Sessions().Revoke(ctx, userID, token)
	if err == nil {
		return nil
	}

	if repository.IsRecordNotFound(err) {
		return ErrInvalidSession
	}

	return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to revoke session")
}

// ValidateSession reports whether an active session row matches
// (userID, token). It is a pure read and never returns an error; store
// failures are logged and read as "not valid".
func (s *Auther) ValidateSession(ctx context.Context, userID, token string) bool {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return false
	}

	if _, err := s.repo.Sessions().FindActive(ctx, uid, token); err != nil {
		if !repository.IsRecordNotFound(err) {
			s.logger.Warn("ValidateSession store lookup failed: %s", err)
		}
		return false
	}

	return true
}
