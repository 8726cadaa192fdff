//go:build unit

package memory_test

import (
	"sync"
	"testing"

	"island-eats/internal/domain/menu"
	"island-eats/internal/infra/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartStore(t *testing.T) {
	catalog := menu.NewCatalog()
	wings, err := catalog.ByID(1)
	require.NoError(t, err)

	t.Run("Get on an unknown user returns an empty cart", func(t *testing.T) {
		store := memory.NewCartStore()

		c := store.Get(uuid.New())

		assert.True(t, c.IsEmpty())
	})

	t.Run("Replace then Get round-trips", func(t *testing.T) {
		store := memory.NewCartStore()
		userID := uuid.New()

		store.Replace(userID, store.Get(userID).Add(wings))

		got := store.Get(userID)
		require.Len(t, got.Lines(), 1)
		assert.Equal(t, wings.ID, got.Lines()[0].Item.ID)
	})

	t.Run("carts are per user", func(t *testing.T) {
		store := memory.NewCartStore()
		alice, bob := uuid.New(), uuid.New()

		store.Replace(alice, store.Get(alice).Add(wings))

		assert.False(t, store.Get(alice).IsEmpty())
		assert.True(t, store.Get(bob).IsEmpty())
	})

	t.Run("Clear empties only that user's cart", func(t *testing.T) {
		store := memory.NewCartStore()
		alice, bob := uuid.New(), uuid.New()

		store.Replace(alice, store.Get(alice).Add(wings))
		store.Replace(bob, store.Get(bob).Add(wings))
		store.Clear(alice)

		assert.True(t, store.Get(alice).IsEmpty())
		assert.False(t, store.Get(bob).IsEmpty())
	})

	t.Run("concurrent access does not lose updates across users", func(t *testing.T) {
		store := memory.NewCartStore()

		var wg sync.WaitGroup
		userIDs := make([]uuid.UUID, 50)
		for i := range userIDs {
			userIDs[i] = uuid.New()
		}

		for _, id := range userIDs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				store.Replace(id, store.Get(id).Add(wings))
			}()
		}
		wg.Wait()

		for _, id := range userIDs {
			assert.Equal(t, int32(1), store.Get(id).TotalQuantity())
		}
	})
}
