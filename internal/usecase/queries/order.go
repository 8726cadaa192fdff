package queries

import (
	"context"
	"time"

	"island-eats/internal/infra"
	"island-eats/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrOrderNotOwned = errs.New("order not owned by user")
)

type OrderItemView struct {
	ItemID     int32  `json:"itemId"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int32  `json:"quantity"`
}

type OrderView struct {
	ID          uuid.UUID
	DropID      string
	OrderNumber int32
	UserID      uuid.UUID
	UserEmail   string
	UserName    string
	Items       []OrderItemView
	TotalCents  int64
	PlacedAt    time.Time
}

type OrderQueries interface {
	GetByID(ctx context.Context, id, userID uuid.UUID) (*OrderView, error)
	// GetByIDSystem skips the ownership check; used for idempotent replay
	// where the key itself proves ownership.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderView, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{
		readStore: readStore,
	}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id, userID uuid.UUID) (*OrderView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != userID {
		return nil, ErrOrderNotOwned
	}
	return view, nil
}

func (q *orderQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderView, error) {
	return q.readStore.FindByUser(ctx, userID)
}
