package repository

import (
	"context"
	"time"

	"island-eats/internal/infra"
	"island-eats/internal/infra/db"
	"island-eats/internal/pkg/pgconv"
	"island-eats/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	tryInsertIdempotencyKeyQuery = `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, user_id) DO NOTHING`

	getIdempotencyKeyQuery = `
		SELECT key, user_id, endpoint, request_hash, status, result_order_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`

	completeIdempotencyKeyQuery = `
		UPDATE idempotency_keys
		SET status = 'completed', result_order_id = $3
		WHERE key = $1 AND user_id = $2`

	releaseIdempotencyKeyQuery = `
		DELETE FROM idempotency_keys
		WHERE key = $1 AND user_id = $2 AND status = 'processing'`

	deleteExpiredIdempotencyKeysQuery = `
		DELETE FROM idempotency_keys
		WHERE expires_at < now() AND status <> 'completed'`
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, tryInsertIdempotencyKeyQuery, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		rec           shared.IdempotencyRecord
		resultOrderID pgtype.UUID
		expiresAt     pgtype.Timestamptz
	)

	err := tx.QueryRow(ctx, getIdempotencyKeyQuery, key, userID).Scan(
		&rec.Key,
		&rec.UserID,
		&rec.Endpoint,
		&rec.RequestHash,
		&rec.Status,
		&resultOrderID,
		&expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	rec.ResultOrderID = pgconv.UUIDPtrFromPgtype(resultOrderID)
	rec.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)

	return &rec, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultOrderID uuid.UUID) error {
	tag, err := tx.Exec(ctx, completeIdempotencyKeyQuery, key, userID, resultOrderID)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

// Release drops a processing key so the same key can be retried. A no-op
// for completed keys, which must survive for replay.
func (r *IdempotencyRepository) Release(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, releaseIdempotencyKeyQuery, key, userID); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

// DeleteExpired removes abandoned processing keys so a crashed checkout does
// not pin its key forever. Completed keys stay for replay.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx db.DBTX) (int64, error) {
	tag, err := tx.Exec(ctx, deleteExpiredIdempotencyKeysQuery)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}

var _ shared.IdempotencyRepository = (*IdempotencyRepository)(nil)
