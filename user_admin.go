package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserAdminService exposes the administrative role-management operations.
// Unlike registration, role resolution here is strict: every requested role
// name must exist or the whole operation fails.
type UserAdminService struct {
	repo   RepositoryManager
	logger Logger
}

func NewUserAdminService(repo RepositoryManager) *UserAdminService {
	return &UserAdminService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *UserAdminService) WithLogger(logger Logger) *UserAdminService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// AssignRoles unions the given roles into the user's current set. Roles the
// user already holds are left alone.
func (s *UserAdminService) AssignRoles(ctx context.Context, userID uuid.UUID, roleNames []string) (*User, error) {
	roles, err := s.resolveRolesStrict(ctx, roleNames)
	if err != nil {
		return nil, err
	}

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.repo.Users().AddRolesTx(ctx, tx, userID, roles)
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to assign roles")
	}

	return s.getUser(ctx, userID)
}

// UpdateRoles replaces the user's role set with exactly the given roles.
func (s *UserAdminService) UpdateRoles(ctx context.Context, userID uuid.UUID, roleNames []string) (*User, error) {
	roles, err := s.resolveRolesStrict(ctx, roleNames)
	if err != nil {
		return nil, err
	}

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.repo.Users().ReplaceRolesTx(ctx, tx, userID, roles)
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update roles")
	}

	return s.getUser(ctx, userID)
}

// RemoveRole detaches a single role from the user. Both the user and the
// role must exist; removing a role the user never held succeeds quietly.
func (s *UserAdminService) RemoveRole(ctx context.Context, userID uuid.UUID, roleName string) (*User, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	role, err := s.repo.Roles().GetByName(ctx, roleName)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrRoleNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve role")
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.repo.Users().RemoveRoleTx(ctx, tx, userID, role.ID)
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to remove role")
	}

	return s.getUser(ctx, userID)
}

// ListUsers returns users whose email contains the search term, ignoring
// case. An empty term lists everyone.
func (s *UserAdminService) ListUsers(ctx context.Context, search string) ([]*User, error) {
	users, err := s.repo.Users().Search(ctx, search)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users")
	}
	return users, nil
}

// GetUser fetches a single user with roles loaded.
func (s *UserAdminService) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.getUser(ctx, userID)
}

func (s *UserAdminService) getUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := s.repo.Users().GetUserByID(ctx, userID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch user")
	}
	return user, nil
}

func (s *UserAdminService) resolveRolesStrict(ctx context.Context, roleNames []string) ([]*Role, error) {
	names := uniqueRoleNames(roleNames)
	if len(names) == 0 {
		return nil, ErrRolesNotFound
	}

	roles, err := s.repo.Roles().GetByNames(ctx, names)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve roles")
	}

	if len(roles) != len(names) {
		return nil, ErrRolesNotFound
	}

	return roles, nil
}
