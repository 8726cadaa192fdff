package commands

import (
	"island-eats/internal/domain/cart"

	"github.com/google/uuid"
)

// CartStore holds the live cart for each user session. Operations are
// synchronous and total; carts live in process memory, not in the database.
type CartStore interface {
	Get(userID uuid.UUID) cart.Cart
	Replace(userID uuid.UUID, c cart.Cart)
	Clear(userID uuid.UUID)
}
