package queries

import (
	"context"

	"island-eats/internal/domain/drop"
	"island-eats/internal/pkg/config"
)

// DropStatusView is the derived presentation of the slot counter. It is
// recomputed from the counter on every read; nothing here is stored.
type DropStatusView struct {
	DropID         string  `json:"dropId"`
	TotalSlots     int32   `json:"totalSlots"`
	OrdersCount    int32   `json:"ordersCount"`
	SlotsRemaining int32   `json:"slotsRemaining"`
	Percentage     float64 `json:"percentage"`
	SoldOut        bool    `json:"soldOut"`
}

type DropQueries interface {
	Status(ctx context.Context) (*DropStatusView, error)
}

type DropReadStore interface {
	// Find returns the drop with the given capacity. An absent counter row
	// reads as zero orders.
	Find(ctx context.Context, dropID string, totalSlots int32) (drop.Drop, error)
}

type dropQueriesImpl struct {
	readStore DropReadStore
	cfg       config.DropConfig
}

func NewDropQueries(readStore DropReadStore, cfg config.DropConfig) DropQueries {
	return &dropQueriesImpl{
		readStore: readStore,
		cfg:       cfg,
	}
}

func (q *dropQueriesImpl) Status(ctx context.Context) (*DropStatusView, error) {
	d, err := q.readStore.Find(ctx, q.cfg.ID, q.cfg.TotalSlots)
	if err != nil {
		return nil, err
	}
	return StatusViewFromDrop(d), nil
}

func StatusViewFromDrop(d drop.Drop) *DropStatusView {
	return &DropStatusView{
		DropID:         d.ID(),
		TotalSlots:     d.TotalSlots(),
		OrdersCount:    d.OrdersCount(),
		SlotsRemaining: d.SlotsRemaining(),
		Percentage:     d.Percentage(),
		SoldOut:        d.SoldOut(),
	}
}
