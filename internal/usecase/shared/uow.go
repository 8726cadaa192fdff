package shared

import (
	"context"
	"time"

	"island-eats/internal/domain/drop"
	"island-eats/internal/domain/order"
	"island-eats/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry on
	// serialization conflicts
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Drops() DropRepository
	Orders() OrderRepository
	Idempotency() IdempotencyRepository
	Users() UserRepository
	DB() db.DBTX
}

type DropRepository interface {
	// LockForCheckout materializes the drop row if absent (orders_count 0)
	// and returns it under a row lock held until the transaction ends.
	LockForCheckout(ctx context.Context, tx db.DBTX, dropID string, totalSlots int32) (drop.Drop, error)
	SetOrdersCount(ctx context.Context, tx db.DBTX, dropID string, ordersCount int32) error
	// NotifyUpdated queues a counter-change notification that reaches live
	// subscribers when the surrounding transaction commits.
	NotifyUpdated(ctx context.Context, tx db.DBTX, d drop.Drop) error
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, ord *order.Order) (uuid.UUID, error)
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Endpoint      string
	RequestHash   string
	Status        string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

type IdempotencyRepository interface {
	// TryInsert claims the key for this attempt. Returns false when another
	// attempt (or a completed checkout) already holds it.
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultOrderID uuid.UUID) error
	// Release frees a processing key whose attempt committed nothing.
	// Completed keys are never released.
	Release(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
