package readstore

import (
	"context"

	"island-eats/internal/infra"
	"island-eats/internal/infra/db"
	"island-eats/internal/pkg/pgconv"
	"island-eats/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	findUserByIDQuery = `
		SELECT id, email, display_name, photo_url, is_active, last_login_at, created_at
		FROM users
		WHERE id = $1`

	findUserByEmailQuery = `
		SELECT id, email, display_name, photo_url, is_active, last_login_at, created_at, password_hash
		FROM users
		WHERE email = $1`
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var (
		view        queries.AuthorizedUserView
		photoURL    pgtype.Text
		lastLoginAt pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, findUserByIDQuery, id).Scan(
		&view.ID,
		&view.Email,
		&view.DisplayName,
		&photoURL,
		&view.IsActive,
		&lastLoginAt,
		&createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	view.PhotoURL = pgconv.StringPtrFromPgtype(photoURL)
	view.LastLoginAt = pgconv.TimePtrFromPgtype(lastLoginAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)

	return &view, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		view         queries.AuthorizedUserView
		photoURL     pgtype.Text
		lastLoginAt  pgtype.Timestamptz
		createdAt    pgtype.Timestamptz
		passwordHash string
	)

	err := r.db.QueryRow(ctx, findUserByEmailQuery, email).Scan(
		&view.ID,
		&view.Email,
		&view.DisplayName,
		&photoURL,
		&view.IsActive,
		&lastLoginAt,
		&createdAt,
		&passwordHash,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	view.PhotoURL = pgconv.StringPtrFromPgtype(photoURL)
	view.LastLoginAt = pgconv.TimePtrFromPgtype(lastLoginAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)

	return &view, passwordHash, nil
}

var _ queries.UserReadStore = (*UserReadStore)(nil)
