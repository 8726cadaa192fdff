package repository

import (
	"context"
	"encoding/json"
	"errors"

	"island-eats/internal/domain/order"
	"island-eats/internal/infra"
	"island-eats/internal/infra/db"
	"island-eats/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

const createOrderQuery = `
	INSERT INTO orders (id, drop_id, order_number, user_id, user_email, user_name, items, total_cents, placed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id`

// orderItemRecord is the JSONB shape of one snapshotted cart line.
type orderItemRecord struct {
	ItemID     int32  `json:"item_id"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int32  `json:"quantity"`
}

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, ord *order.Order) (uuid.UUID, error) {
	items := ord.Items()
	records := make([]orderItemRecord, len(items))
	for i, l := range items {
		records[i] = orderItemRecord{
			ItemID:     l.Item.ID,
			Name:       l.Item.Name,
			Emoji:      l.Item.Emoji,
			PriceCents: l.Item.PriceCents,
			Quantity:   l.Quantity,
		}
	}

	itemsJSON, err := json.Marshal(records)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to marshal order items", err)
	}

	buyer := ord.Buyer()

	var resultID uuid.UUID
	err = tx.QueryRow(ctx, createOrderQuery,
		ord.ID(),
		ord.DropID(),
		ord.OrderNumber(),
		buyer.ID,
		buyer.Email,
		buyer.DisplayName,
		itemsJSON,
		ord.TotalCents(),
		ord.PlacedAt(),
	).Scan(&resultID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return uuid.Nil, infra.WrapRepoErr("order number already taken", err, infra.KindConflict)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err)
	}

	return resultID, nil
}

var _ shared.OrderRepository = (*OrderRepository)(nil)
