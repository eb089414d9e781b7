package auth

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Roles persists the closed role vocabulary.
type Roles interface {
	repository.Repository[*Role]

	GetByName(ctx context.Context, name string) (*Role, error)
	GetByNames(ctx context.Context, names []string) ([]*Role, error)
	Seed(ctx context.Context, names ...string) error
}

type roles struct {
	repository.Repository[*Role]
	db *bun.DB
}

var _ Roles = (*roles)(nil)

func NewRolesRepository(db *bun.DB) Roles {
	repo := repository.NewRepository[*Role](db, repository.ModelHandlers[*Role]{
		NewRecord: func() *Role { return &Role{} },
		GetID: func(r *Role) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *Role, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &roles{
		Repository: repo,
		db:         db,
	}
}

func (a *roles) GetByName(ctx context.Context, name string) (*Role, error) {
	record := &Role{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"name": name})
		}
		return nil, err
	}

	return record, nil
}

// GetByNames resolves role names to records. Names that do not resolve are
// simply absent from the result; strictness is the caller's concern.
func (a *roles) GetByNames(ctx context.Context, names []string) ([]*Role, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var records []*Role
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.name IN (?)", bun.In(names)).
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

// Seed inserts any missing roles from the given vocabulary.
func (a *roles) Seed(ctx context.Context, names ...string) error {
	for _, name := range names {
		role := &Role{ID: uuid.New(), Name: name}
		_, err := a.db.NewInsert().
			Model(role).
			On("CONFLICT DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
