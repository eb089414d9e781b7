package auth_test

import (
	"context"
	"database/sql"

	auth "github.com/dennis-kuruvilla/auth-docs-service"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockUsers implements auth.Users. The embedded generic repository satisfies
// the interface; only the named methods are scripted.
type MockUsers struct {
	mock.Mock
	repository.Repository[*auth.User]
}

var (
	_ auth.Users             = (*MockUsers)(nil)
	_ auth.Roles             = (*MockRoles)(nil)
	_ auth.Sessions          = (*MockSessions)(nil)
	_ auth.RepositoryManager = (*MockRepositoryManager)(nil)
)

func (m *MockUsers) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetUserByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*auth.User, error) {
	args := m.Called(ctx, tx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*auth.User, error) {
	args := m.Called(ctx, tx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByEmailWithPassword(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) Search(ctx context.Context, emailSubstring string) ([]*auth.User, error) {
	args := m.Called(ctx, emailSubstring)
	users, _ := args.Get(0).([]*auth.User)
	return users, args.Error(1)
}

func (m *MockUsers) Register(ctx context.Context, user *auth.User, roles []*auth.Role) (*auth.User, error) {
	args := m.Called(ctx, user, roles)
	out, _ := args.Get(0).(*auth.User)
	return out, args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *auth.User, roles []*auth.Role) (*auth.User, error) {
	args := m.Called(ctx, tx, user, roles)
	out, _ := args.Get(0).(*auth.User)
	return out, args.Error(1)
}

func (m *MockUsers) AddRolesTx(ctx context.Context, tx bun.IDB, userID uuid.UUID, roles []*auth.Role) error {
	args := m.Called(ctx, tx, userID, roles)
	return args.Error(0)
}

func (m *MockUsers) ReplaceRolesTx(ctx context.Context, tx bun.IDB, userID uuid.UUID, roles []*auth.Role) error {
	args := m.Called(ctx, tx, userID, roles)
	return args.Error(0)
}

func (m *MockUsers) RemoveRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, tx, userID, roleID)
	return args.Error(0)
}

// MockRoles implements auth.Roles
type MockRoles struct {
	mock.Mock
	repository.Repository[*auth.Role]
}

func (m *MockRoles) GetByName(ctx context.Context, name string) (*auth.Role, error) {
	args := m.Called(ctx, name)
	role, _ := args.Get(0).(*auth.Role)
	return role, args.Error(1)
}

func (m *MockRoles) GetByNames(ctx context.Context, names []string) ([]*auth.Role, error) {
	args := m.Called(ctx, names)
	roles, _ := args.Get(0).([]*auth.Role)
	return roles, args.Error(1)
}

func (m *MockRoles) Seed(ctx context.Context, names ...string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}

// MockSessions implements auth.Sessions
type MockSessions struct {
	mock.Mock
	repository.Repository[*auth.Session]
}

func (m *MockSessions) Start(ctx context.Context, userID uuid.UUID, token string) (*auth.Session, error) {
	args := m.Called(ctx, userID, token)
	session, _ := args.Get(0).(*auth.Session)
	return session, args.Error(1)
}

func (m *MockSessions) FindActive(ctx context.Context, userID uuid.UUID, token string) (*auth.Session, error) {
	args := m.Called(ctx, userID, token)
	session, _ := args.Get(0).(*auth.Session)
	return session, args.Error(1)
}

func (m *MockSessions) Revoke(ctx context.Context, userID uuid.UUID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockSessions) CountActive(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockRepositoryManager implements auth.RepositoryManager. RunInTx calls the
// callback with a zero bun.Tx so transactional paths run without a database.
type MockRepositoryManager struct {
	mock.Mock
	users    *MockUsers
	roles    *MockRoles
	sessions *MockSessions
}

func NewMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{
		users:    new(MockUsers),
		roles:    new(MockRoles),
		sessions: new(MockSessions),
	}
}

func (m *MockRepositoryManager) Validate() error {
	return nil
}

func (m *MockRepositoryManager) MustValidate() {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Users() auth.Users {
	return m.users
}

func (m *MockRepositoryManager) Roles() auth.Roles {
	return m.roles
}

func (m *MockRepositoryManager) Sessions() auth.Sessions {
	return m.sessions
}
