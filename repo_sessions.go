package auth

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Sessions persists the revocation side of authentication: one row per login.
type Sessions interface {
	repository.Repository[*Session]

	Start(ctx context.Context, userID uuid.UUID, token string) (*Session, error)
	FindActive(ctx context.Context, userID uuid.UUID, token string) (*Session, error)
	Revoke(ctx context.Context, userID uuid.UUID, token string) error
	CountActive(ctx context.Context, userID uuid.UUID) (int, error)
}

type sessions struct {
	repository.Repository[*Session]
	db *bun.DB
}

var _ Sessions = (*sessions)(nil)

func NewSessionsRepository(db *bun.DB) Sessions {
	repo := repository.NewRepository[*Session](db, repository.ModelHandlers[*Session]{
		NewRecord: func() *Session { return &Session{} },
		GetID: func(s *Session) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Session, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
	})

	return &sessions{
		Repository: repo,
		db:         db,
	}
}

// Start records a fresh session for the issued token. Sessions are
// independent rows: concurrent logins for the same user never collide.
func (a *sessions) Start(ctx context.Context, userID uuid.UUID, token string) (*Session, error) {
	record := &Session{
		ID:     uuid.New(),
		UserID: userID,
		Token:  token,
		Status: SessionStatusActive,
	}

	if _, err := a.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

// FindActive returns the session row matching (userID, token) with status
// active, or a record-not-found error.
func (a *sessions) FindActive(ctx context.Context, userID uuid.UUID, token string) (*Session, error) {
	record := &Session{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.token = ?", token).
		Where("?TableAlias.status = ?", SessionStatusActive).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"user_id": userID.String()})
		}
		return nil, err
	}

	return record, nil
}

// Revoke removes the matching active session row. The row is deleted rather
// than flipped to revoked; a second revoke for the same token reports
// record-not-found so callers can surface "no session to revoke".
func (a *sessions) Revoke(ctx context.Context, userID uuid.UUID, token string) error {
	res, err := a.db.NewDelete().
		Model((*Session)(nil)).
		Where("user_id = ?", userID).
		Where("token = ?", token).
		Where("status = ?", SessionStatusActive).
		Exec(ctx)

	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{"user_id": userID.String()})
	}

	return nil
}

// CountActive reports how many live sessions a user holds. There is no
// single-session constraint; this exists for operational visibility.
func (a *sessions) CountActive(ctx context.Context, userID uuid.UUID) (int, error) {
	return a.db.NewSelect().
		Model((*Session)(nil)).
		Where("user_id = ?", userID).
		Where("status = ?", SessionStatusActive).
		Count(ctx)
}
