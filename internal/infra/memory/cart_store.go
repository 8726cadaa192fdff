package memory

import (
	"sync"

	"island-eats/internal/domain/cart"
	"island-eats/internal/usecase/commands"

	"github.com/google/uuid"
)

// CartStore keeps each user's live cart in process memory. Cart values are
// immutable, so a returned cart is safe to read without holding the lock.
type CartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]cart.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[uuid.UUID]cart.Cart),
	}
}

func (s *CartStore) Get(userID uuid.UUID) cart.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[userID]
	if !ok {
		return cart.New()
	}
	return c
}

func (s *CartStore) Replace(userID uuid.UUID, c cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = c
}

func (s *CartStore) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
}

var _ commands.CartStore = (*CartStore)(nil)
