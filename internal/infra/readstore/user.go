package readstore

import (
	"context"

	"smart-parking/internal/domain/user"
	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/pkg/pgconv"
	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

const userByIDSQL = `
SELECT id, email, role, is_active, last_login
FROM users
WHERE id = $1
`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var (
		v         queries.AuthorizedUserView
		lastLogin pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, userByIDSQL, id).Scan(&v.ID, &v.Email, &v.Role, &v.IsActive, &lastLogin)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	v.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &v, nil
}

const userByEmailSQL = `
SELECT id, email, password_hash, role, is_active, last_login, created_at, updated_at
FROM users
WHERE email = $1
`

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var (
		id                   uuid.UUID
		rawEmail             string
		passwordHash         string
		role                 string
		isActive             bool
		lastLogin            pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, userByEmailSQL, email).Scan(
		&id, &rawEmail, &passwordHash, &role, &isActive, &lastLogin, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	emailVO, err := user.NewEmail(rawEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid email in storage", err)
	}
	return user.ReconstructUser(
		id, emailVO, passwordHash, user.Role(role),
		pgconv.TimePtrFromPgtype(lastLogin), isActive,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
