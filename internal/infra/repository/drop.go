package repository

import (
	"context"
	"encoding/json"

	"island-eats/internal/domain/drop"
	"island-eats/internal/infra"
	"island-eats/internal/infra/db"
	"island-eats/internal/infra/notify"
	"island-eats/internal/usecase/shared"
)

const (
	ensureDropQuery = `
		INSERT INTO drops (id, total_slots, orders_count)
		VALUES ($1, $2, 0)
		ON CONFLICT (id) DO NOTHING`

	lockDropQuery = `
		SELECT total_slots, orders_count
		FROM drops
		WHERE id = $1
		FOR UPDATE`

	setDropCountQuery = `
		UPDATE drops
		SET orders_count = $2, updated_at = now()
		WHERE id = $1`

	notifyDropQuery = `SELECT pg_notify($1, $2)`
)

type DropRepository struct{}

func NewDropRepository() *DropRepository {
	return &DropRepository{}
}

// LockForCheckout creates the counter row on first use (an absent document
// reads as zero orders) and holds a row lock until the surrounding
// transaction ends, so concurrent claims on the same drop serialize.
func (r *DropRepository) LockForCheckout(ctx context.Context, tx db.DBTX, dropID string, totalSlots int32) (drop.Drop, error) {
	if _, err := tx.Exec(ctx, ensureDropQuery, dropID, totalSlots); err != nil {
		return drop.Drop{}, infra.WrapRepoErr("failed to ensure drop row", err)
	}

	var storedSlots, ordersCount int32
	if err := tx.QueryRow(ctx, lockDropQuery, dropID).Scan(&storedSlots, &ordersCount); err != nil {
		return drop.Drop{}, infra.WrapRepoErr("failed to lock drop row", err)
	}

	return drop.Reconstruct(dropID, storedSlots, ordersCount), nil
}

func (r *DropRepository) SetOrdersCount(ctx context.Context, tx db.DBTX, dropID string, ordersCount int32) error {
	tag, err := tx.Exec(ctx, setDropCountQuery, dropID, ordersCount)
	if err != nil {
		return infra.WrapRepoErr("failed to update drop orders count", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("drop not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *DropRepository) NotifyUpdated(ctx context.Context, tx db.DBTX, d drop.Drop) error {
	payload, err := json.Marshal(notify.DropUpdate{
		DropID:      d.ID(),
		TotalSlots:  d.TotalSlots(),
		OrdersCount: d.OrdersCount(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to marshal drop update", err)
	}

	if _, err := tx.Exec(ctx, notifyDropQuery, notify.DropUpdatesChannel, string(payload)); err != nil {
		return infra.WrapRepoErr("failed to notify drop update", err)
	}
	return nil
}

var _ shared.DropRepository = (*DropRepository)(nil)
