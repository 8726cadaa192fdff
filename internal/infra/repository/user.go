package repository

import (
	"context"

	"island-eats/internal/infra"
	"island-eats/internal/infra/db"
	"island-eats/internal/usecase/shared"

	"github.com/google/uuid"
)

const updateLastLoginQuery = `
	UPDATE users
	SET last_login_at = now()
	WHERE id = $1`

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, updateLastLoginQuery, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

var _ shared.UserRepository = (*UserRepository)(nil)
