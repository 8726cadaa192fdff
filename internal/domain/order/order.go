package order

import (
	"errors"
	"time"

	"island-eats/internal/domain/cart"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder    = errors.New("order must contain at least one item")
	ErrInvalidBuyer  = errors.New("order requires an authenticated buyer")
	ErrInvalidNumber = errors.New("order number must be positive")
)

// Buyer is the identity attached to an order record, snapshotted at
// placement time so later profile edits never rewrite history.
type Buyer struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
}

// Order is an append-only record of a fulfilled checkout. The items are a
// frozen snapshot of the cart at the moment checkout began.
type Order struct {
	id          uuid.UUID
	dropID      string
	orderNumber int32
	buyer       Buyer
	items       []cart.Line
	totalCents  int64
	placedAt    time.Time
}

func New(dropID string, orderNumber int32, buyer Buyer, snapshot cart.Cart, placedAt time.Time) (*Order, error) {
	if buyer.ID == uuid.Nil {
		return nil, ErrInvalidBuyer
	}
	if snapshot.IsEmpty() {
		return nil, ErrEmptyOrder
	}
	if orderNumber < 1 {
		return nil, ErrInvalidNumber
	}

	return &Order{
		id:          uuid.New(),
		dropID:      dropID,
		orderNumber: orderNumber,
		buyer:       buyer,
		items:       snapshot.Lines(),
		totalCents:  snapshot.TotalCents(),
		placedAt:    placedAt,
	}, nil
}

func (o *Order) ID() uuid.UUID       { return o.id }
func (o *Order) DropID() string      { return o.dropID }
func (o *Order) OrderNumber() int32  { return o.orderNumber }
func (o *Order) Buyer() Buyer        { return o.buyer }
func (o *Order) TotalCents() int64   { return o.totalCents }
func (o *Order) PlacedAt() time.Time { return o.placedAt }

func (o *Order) Items() []cart.Line {
	out := make([]cart.Line, len(o.items))
	copy(out, o.items)
	return out
}
