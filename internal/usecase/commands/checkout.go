package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"island-eats/internal/domain/cart"
	"island-eats/internal/domain/order"
	"island-eats/internal/infra"
	"island-eats/internal/infra/db"
	"island-eats/internal/pkg/clock"
	"island-eats/internal/pkg/config"
	"island-eats/internal/pkg/errs"
	"island-eats/internal/usecase/queries"
	"island-eats/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCartEmpty               = errs.New("cart is empty")
	ErrSoldOut                 = errs.New("sold out")
	ErrDuplicateCheckout       = errs.New("duplicate checkout with different cart")
	ErrCheckoutInProgress      = errs.New("checkout in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const checkoutEndpoint = "POST /api/orders"

type CheckoutResult struct {
	Order *queries.OrderView
	// IsReplayed is true when the idempotency key matched an already
	// completed checkout and the stored order was returned instead of
	// claiming another slot.
	IsReplayed bool
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, userID, idempotencyKey uuid.UUID) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	carts        CartStore
	uow          shared.UnitOfWork
	idempotency  shared.IdempotencyRepository
	userQueries  queries.UserQueries
	orderQueries queries.OrderQueries
	clock        clock.Clock
	cfg          config.DropConfig
}

func NewCheckoutUseCase(
	carts CartStore,
	uow shared.UnitOfWork,
	idempotency shared.IdempotencyRepository,
	userQueries queries.UserQueries,
	orderQueries queries.OrderQueries,
	clk clock.Clock,
	cfg config.DropConfig,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		carts:        carts,
		uow:          uow,
		idempotency:  idempotency,
		userQueries:  userQueries,
		orderQueries: orderQueries,
		clock:        clk,
		cfg:          cfg,
	}
}

// Checkout claims one drop slot and records the order in a single
// transaction. Either both the counter bump and the order row commit, or
// neither does, so the counter can never run ahead of the order log.
func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, userID, idempotencyKey uuid.UUID) (*CheckoutResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.CheckoutTimeout)
	defer cancel()

	// Freeze the snapshot before any I/O; the live cart may keep mutating
	// while the checkout is in flight.
	snapshot := uc.carts.Get(userID)
	if snapshot.IsEmpty() {
		// A retry of a checkout that already committed arrives with an
		// empty cart, because success cleared it. Consult the key before
		// rejecting so the lost-response retry replays instead of 400ing.
		return uc.replayAfterClearedCart(ctx, idempotencyKey, userID)
	}

	buyer, err := uc.userQueries.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	requestHash := snapshotHash(snapshot)
	expiresAt := uc.clock.Now().Add(24 * time.Hour)

	existing, err := uc.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CheckoutResult{Order: existing, IsReplayed: true}, nil
	}

	view, err := uc.placeOrder(ctx, snapshot, buyer, idempotencyKey)
	if err != nil {
		// Nothing committed, so free the key for a same-key retry.
		uc.releaseKey(ctx, idempotencyKey, userID)
		return nil, err
	}

	uc.carts.Clear(userID)

	return &CheckoutResult{Order: view, IsReplayed: false}, nil
}

// replayAfterClearedCart resolves an empty-cart checkout against the
// idempotency log: a completed key means the order already exists and is
// replayed; anything else is a genuine empty-cart rejection.
func (uc *checkoutUseCaseImpl) replayAfterClearedCart(ctx context.Context, idempotencyKey, userID uuid.UUID) (*CheckoutResult, error) {
	var existing *shared.IdempotencyRecord

	err := uc.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		rec, err := uc.idempotency.Get(ctx, dbtx, idempotencyKey, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}
		existing = rec
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	if existing == nil {
		return nil, ErrCartEmpty
	}

	switch existing.Status {
	case "completed":
		if existing.ResultOrderID == nil {
			return nil, errs.New("completed checkout missing result order ID")
		}
		// The stored hash cannot match an empty cart; the key alone proves
		// this is the same checkout.
		view, err := uc.orderQueries.GetByIDSystem(ctx, *existing.ResultOrderID)
		if err != nil {
			return nil, err
		}
		return &CheckoutResult{Order: view, IsReplayed: true}, nil

	case "processing":
		return nil, ErrCheckoutInProgress

	default:
		return nil, ErrCartEmpty
	}
}

// releaseKey deletes a claimed but uncommitted key. Runs on a fresh
// deadline because the checkout context may already be expired; a missed
// release is picked up by the expiry sweep.
func (uc *checkoutUseCaseImpl) releaseKey(ctx context.Context, idempotencyKey, userID uuid.UUID) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err := uc.uow.WithDB(releaseCtx, func(ctx context.Context, dbtx db.DBTX) error {
		return uc.idempotency.Release(ctx, dbtx, idempotencyKey, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key",
			"key", idempotencyKey.String(),
			"error", err.Error())
	}
}

func (uc *checkoutUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.OrderView, error) {
	var (
		claimed  bool
		existing *shared.IdempotencyRecord
	)

	err := uc.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		inserted, err := uc.idempotency.TryInsert(ctx, dbtx, idempotencyKey, userID, checkoutEndpoint, requestHash, expiresAt)
		if err != nil {
			return err
		}
		if inserted {
			claimed = true
			return nil
		}
		rec, err := uc.idempotency.Get(ctx, dbtx, idempotencyKey, userID)
		if err != nil {
			return err
		}
		existing = rec
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	// This attempt owns the key; go on to place the order.
	if claimed {
		return nil, nil
	}

	switch existing.Status {
	case "completed":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateCheckout
		}
		if existing.ResultOrderID == nil {
			return nil, errs.New("completed checkout missing result order ID")
		}
		return uc.orderQueries.GetByIDSystem(ctx, *existing.ResultOrderID)

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateCheckout
		}
		return nil, ErrCheckoutInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (uc *checkoutUseCaseImpl) placeOrder(
	ctx context.Context,
	snapshot cart.Cart,
	buyer *queries.AuthorizedUserView,
	idempotencyKey uuid.UUID,
) (*queries.OrderView, error) {
	var orderID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := tx.Drops().LockForCheckout(ctx, tx.DB(), uc.cfg.ID, uc.cfg.TotalSlots)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		orderNumber, err := d.Claim()
		if err != nil {
			// Aborts the transaction: a sold-out checkout writes nothing.
			return ErrSoldOut
		}

		ord, err := order.New(d.ID(), orderNumber, order.Buyer{
			ID:          buyer.ID,
			Email:       buyer.Email,
			DisplayName: buyer.DisplayName,
		}, snapshot, uc.clock.Now())
		if err != nil {
			return err
		}

		if err := tx.Drops().SetOrdersCount(ctx, tx.DB(), d.ID(), d.OrdersCount()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		orderID, err = tx.Orders().Create(ctx, tx.DB(), ord)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, buyer.ID, orderID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Delivered to live-feed subscribers at commit, not before.
		return tx.Drops().NotifyUpdated(ctx, tx.DB(), d)
	})
	if err != nil {
		return nil, err
	}

	return uc.orderQueries.GetByIDSystem(ctx, orderID)
}

type snapshotLine struct {
	ItemID     int32 `json:"item_id"`
	Quantity   int32 `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

// snapshotHash fingerprints the frozen cart so a replayed idempotency key
// with a different cart is detectable.
func snapshotHash(snapshot cart.Cart) string {
	lines := snapshot.Lines()
	digest := make([]snapshotLine, len(lines))
	for i, l := range lines {
		digest[i] = snapshotLine{
			ItemID:     l.Item.ID,
			Quantity:   l.Quantity,
			PriceCents: l.Item.PriceCents,
		}
	}

	data, _ := json.Marshal(digest)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
