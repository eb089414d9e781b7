package auth_test

import (
	"context"
	"testing"

	auth "github.com/dennis-kuruvilla/auth-docs-service"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignRoles(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("unions resolved roles into the current set", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		svc := auth.NewUserAdminService(repo)

		editor := &auth.Role{ID: uuid.New(), Name: auth.RoleEditor}

		repo.roles.On("GetByNames", ctx, []string{auth.RoleEditor}).
			Return([]*auth.Role{editor}, nil)
		repo.users.On("GetUserByID", ctx, userID).
			Return(&auth.User{ID: userID, Email: "user@example.com"}, nil).Once()
		repo.users.On("AddRolesTx", ctx, mock.Anything, userID, []*auth.Role{editor}).
			Return(nil)
		repo.users.On("GetUserByID", ctx, userID).
			Return(&auth.User{
				ID:    userID,
				Email: "user@example.com",
				Roles: []*auth.Role{{Name: auth.RoleViewer}, editor},
			}, nil)

		user, err := svc.AssignRoles(ctx, userID, []string{auth.RoleEditor})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{auth.RoleViewer, auth.RoleEditor}, user.RoleNames())

		repo.users.AssertExpectations(t)
	})

	t.Run("fails when any role name is unknown", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		svc := auth.NewUserAdminService(repo)

		repo.roles.On("GetByNames", ctx, []string{auth.RoleEditor, "superuser"}).
			Return([]*auth.Role{{ID: uuid.New(), Name: auth.RoleEditor}}, nil)

		user, err := svc.AssignRoles(ctx, userID, []string{auth.RoleEditor, "superuser"})
		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, auth.ErrRolesNotFound)

		repo.users.AssertNotCalled(t, "AddRolesTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fails with an empty role list", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		svc := auth.NewUserAdminService(repo)

		_, err := svc.AssignRoles(ctx, userID, nil)
		assert.ErrorIs(t, err, auth.ErrRolesNotFound)
	})

	t.Run("fails for an unknown user", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		svc := auth.NewUserAdminService(repo)

		repo.roles.On("GetByNames", ctx, []string{auth.RoleEditor}).
			Return([]*auth.Role{{ID: uuid.New(), Name: auth.RoleEditor}}, nil)
		repo.users.On("GetUserByID", ctx, userID).
			Return(nil, repository.NewRecordNotFound())

		_, err := svc.AssignRoles(ctx, userID, []string{auth.RoleEditor})
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}

func TestUpdateRoles(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("replaces the role set outright", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		svc := auth.NewUserAdminService(repo)

		admin := &auth.Role{ID: uuid.New(), Name: auth.RoleAdmin}

		repo.roles.On("GetByNames", ctx, []string{auth.RoleAdmin}).
			Return([]*auth.Role{admin}, nil)
		repo.users.On("GetUserByID", ctx, userID).
			Return(&auth.User{
				ID:    userID,
				Roles: []*auth.Role{{Name: auth.RoleViewer}},
			}, nil).Once()
		repo.users.On("ReplaceRolesTx", ctx, mock.Anything, userID, []*auth.Role{admin}).
			Return(nil)
		repo.users.On("GetUserByID", ctx, userID).
			Return(&auth.User{ID: userID, Roles: []*auth.Role{admin}}, nil)

		user, err := svc.UpdateRoles(ctx, userID, []string{auth.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, []string{auth.RoleAdmin}, user.RoleNames())
	})
}

func TestRemoveRole(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("detaches an assigned role", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		svc := auth.NewUserAdminService(repo)

		editor := &auth.Role{ID: uuid.New(), Name: auth.RoleEditor}

		repo.users.On("GetUserByID", ctx, userID).
			Return(&auth.User{ID: userID, Roles: []*auth.Role{editor}}, nil).Once()
		repo.roles.On("GetByName", ctx, auth.RoleEditor).Return(editor, nil)
		repo.users.On("RemoveRoleTx", ctx, mock.Anything, userID, editor.ID).
			Return(nil)
		repo.users.On("GetUserByID", ctx, userID).
			Return(&auth.User{ID: userID}, nil)

		user, err := svc.RemoveRole(ctx, userID, auth.RoleEditor)
		require.NoError(t, err)
		assert.Empty(t, user.RoleNames())
	})

	t.Run("unassigned role removal is a quiet no-op", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		svc := auth.NewUserAdminService(repo)

		editor := &auth.Role{ID: uuid.New(), Name: auth.RoleEditor}
		stored := &auth.User{ID: userID, Roles: []*auth.Role{{Name: auth.RoleViewer}}}

		repo.users.On("GetUserByID", ctx, userID).Return(stored, nil)
		repo.roles.On("GetByName", ctx, auth.RoleEditor).Return(editor, nil)
		repo.users.On("RemoveRoleTx", ctx, mock.Anything, userID, editor.ID).
			Return(nil)

		user, err := svc.RemoveRole(ctx, userID, auth.RoleEditor)
		require.NoError(t, err)
		assert.Equal(t, []string{auth.RoleViewer}, user.RoleNames())
	})

	t.Run("unknown role is a 404", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		svc := auth.NewUserAdminService(repo)

		repo.users.On("GetUserByID", ctx, userID).
			Return(&auth.User{ID: userID}, nil)
		repo.roles.On("GetByName", ctx, "superuser").
			Return(nil, repository.NewRecordNotFound())

		_, err := svc.RemoveRole(ctx, userID, "superuser")
		assert.ErrorIs(t, err, auth.ErrRoleNotFound)
	})

	t.Run("unknown user is a 404", func(t *testing.T) {
		repo := NewMockRepositoryManager()
		svc := auth.NewUserAdminService(repo)

		repo.users.On("GetUserByID", ctx, userID).
			Return(nil, repository.NewRecordNotFound())

		_, err := svc.RemoveRole(ctx, userID, auth.RoleEditor)
		assert.ErrorIs(t, err, auth.ErrUserNotFound)

		repo.roles.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()

	repo := NewMockRepositoryManager()
	svc := auth.NewUserAdminService(repo)

	repo.users.On("Search", ctx, "an").Return([]*auth.User{
		{ID: uuid.New(), Email: "anna@example.com"},
		{ID: uuid.New(), Email: "Dylan@example.com"},
	}, nil)

	users, err := svc.ListUsers(ctx, "an")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
