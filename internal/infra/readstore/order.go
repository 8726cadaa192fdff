package readstore

import (
	"context"
	"encoding/json"

	"island-eats/internal/infra"
	"island-eats/internal/infra/db"
	"island-eats/internal/pkg/pgconv"
	"island-eats/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	findOrderByIDQuery = `
		SELECT id, drop_id, order_number, user_id, user_email, user_name, items, total_cents, placed_at
		FROM orders
		WHERE id = $1`

	findOrdersByUserQuery = `
		SELECT id, drop_id, order_number, user_id, user_email, user_name, items, total_cents, placed_at
		FROM orders
		WHERE user_id = $1
		ORDER BY placed_at DESC, id`
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row := r.db.QueryRow(ctx, findOrderByIDQuery, id)

	view, err := scanOrderView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	return view, nil
}

func (r *OrderReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, findOrdersByUserQuery, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orders by user", err)
	}
	defer rows.Close()

	var result []*queries.OrderView
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}

	return result, nil
}

func scanOrderView(row pgx.Row) (*queries.OrderView, error) {
	var (
		view      queries.OrderView
		itemsJSON []byte
		placedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&view.ID,
		&view.DropID,
		&view.OrderNumber,
		&view.UserID,
		&view.UserEmail,
		&view.UserName,
		&itemsJSON,
		&view.TotalCents,
		&placedAt,
	)
	if err != nil {
		return nil, err
	}

	var items []struct {
		ItemID     int32  `json:"item_id"`
		Name       string `json:"name"`
		Emoji      string `json:"emoji"`
		PriceCents int64  `json:"price_cents"`
		Quantity   int32  `json:"quantity"`
	}
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return nil, err
	}

	view.Items = make([]queries.OrderItemView, len(items))
	for i, it := range items {
		view.Items[i] = queries.OrderItemView{
			ItemID:     it.ItemID,
			Name:       it.Name,
			Emoji:      it.Emoji,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
		}
	}
	view.PlacedAt = pgconv.TimeFromPgtype(placedAt)

	return &view, nil
}

var _ queries.OrderReadStore = (*OrderReadStore)(nil)
