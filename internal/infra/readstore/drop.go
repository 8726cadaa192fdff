package readstore

import (
	"context"

	"island-eats/internal/domain/drop"
	"island-eats/internal/infra"
	"island-eats/internal/infra/db"
	"island-eats/internal/pkg/pgconv"
	"island-eats/internal/usecase/queries"
)

const findDropQuery = `
	SELECT total_slots, orders_count
	FROM drops
	WHERE id = $1`

type DropReadStore struct {
	db db.DBTX
}

func NewDropReadStore(dbtx db.DBTX) *DropReadStore {
	return &DropReadStore{db: dbtx}
}

// Find reads the counter without locking. A missing row means no order has
// ever been placed for this drop.
func (r *DropReadStore) Find(ctx context.Context, dropID string, totalSlots int32) (drop.Drop, error) {
	var storedSlots, ordersCount int32

	err := r.db.QueryRow(ctx, findDropQuery, dropID).Scan(&storedSlots, &ordersCount)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return drop.Reconstruct(dropID, totalSlots, 0), nil
		}
		return drop.Drop{}, infra.WrapRepoErr("failed to find drop", err)
	}

	return drop.Reconstruct(dropID, storedSlots, ordersCount), nil
}

var _ queries.DropReadStore = (*DropReadStore)(nil)
