package auth

import (
	"strings"

	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users persists user records and their role assignments. Fetches load roles
// eagerly only where the method name says so, and the password column stays
// out of results unless the method name says otherwise.
type Users interface {
	repository.Repository[*User]

	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*User, error)
	Search(ctx context.Context, emailSubstring string) ([]*User, error)

	Register(ctx context.Context, user *User, roles []*Role) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User, roles []*Role) (*User, error)

	AddRolesTx(ctx context.Context, tx bun.IDB, userID uuid.UUID, roles []*Role) error
	ReplaceRolesTx(ctx context.Context, tx bun.IDB, userID uuid.UUID, roles []*Role) error
	RemoveRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func prepareUserDefaults(record *User) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func (a *users) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return a.GetUserByIDTx(ctx, a.db, id)
}

func (a *users) GetUserByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Relation("Roles").
		ExcludeColumn("password_hash").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	return a.getByEmail(ctx, tx, email, false)
}

// GetByEmailWithPassword is the login-path fetch: it includes the otherwise
// excluded password_hash column.
func (a *users) GetByEmailWithPassword(ctx context.Context, email string) (*User, error) {
	return a.getByEmail(ctx, a.db, email, true)
}

func (a *users) getByEmail(ctx context.Context, tx bun.IDB, email string, withPassword bool) (*User, error) {
	record := &User{}
	q := tx.NewSelect().
		Model(record).
		Relation("Roles")

	if !withPassword {
		q = q.ExcludeColumn("password_hash")
	}

	err := q.
		Where("?TableAlias.email = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": email})
		}
		return nil, err
	}

	return record, nil
}

// Search lists users with roles attached, optionally filtered by a
// case-insensitive email substring.
func (a *users) Search(ctx context.Context, emailSubstring string) ([]*User, error) {
	var records []*User
	q := a.db.NewSelect().
		Model(&records).
		Relation("Roles").
		ExcludeColumn("password_hash").
		Order("email ASC")

	if s := strings.TrimSpace(emailSubstring); s != "" {
		q = q.Where("LOWER(?TableAlias.email) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (a *users) Register(ctx context.Context, user *User, roles []*Role) (*User, error) {
	return a.RegisterTx(ctx, a.db, user, roles)
}

// RegisterTx inserts the user row plus one join row per resolved role.
func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User, roles []*Role) (*User, error) {
	prepareUserDefaults(user)

	if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, err
	}

	if err := a.AddRolesTx(ctx, tx, user.ID, roles); err != nil {
		return nil, err
	}

	user.Roles = roles
	return user, nil
}

// AddRolesTx appends role assignments, skipping rows the user already has.
func (a *users) AddRolesTx(ctx context.Context, tx bun.IDB, userID uuid.UUID, roles []*Role) error {
	if len(roles) == 0 {
		return nil
	}

	assignments := make([]*UserRoleAssignment, 0, len(roles))
	for _, role := range roles {
		if role == nil {
			continue
		}
		assignments = append(assignments, &UserRoleAssignment{
			UserID: userID,
			RoleID: role.ID,
		})
	}

	if len(assignments) == 0 {
		return nil
	}

	_, err := tx.NewInsert().
		Model(&assignments).
		On("CONFLICT DO NOTHING").
		Exec(ctx)

	return err
}

// ReplaceRolesTx swaps the user's role set for the given one.
func (a *users) ReplaceRolesTx(ctx context.Context, tx bun.IDB, userID uuid.UUID, roles []*Role) error {
	_, err := tx.NewDelete().
		Model((*UserRoleAssignment)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}

	return a.AddRolesTx(ctx, tx, userID, roles)
}

// RemoveRoleTx drops a single role assignment. Removing a role the user does
// not have is a silent no-op.
func (a *users) RemoveRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*UserRoleAssignment)(nil)).
		Where("user_id = ?", userID).
		Where("role_id = ?", roleID).
		Exec(ctx)

	return err
}
