//go:build unit

package menu_test

import (
	"testing"

	"island-eats/internal/domain/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog := menu.NewCatalog()

	t.Run("lists the four individual items", func(t *testing.T) {
		items := catalog.Items()
		require.Len(t, items, 4)

		var total int64
		for _, it := range items {
			assert.Positive(t, it.PriceCents)
			total += it.PriceCents
		}
		assert.Equal(t, int64(4250), total)
	})

	t.Run("combo undercuts the sum of its parts", func(t *testing.T) {
		combo := catalog.Combo()

		assert.Equal(t, int64(3800), combo.PriceCents)
		assert.Equal(t, int64(4250), catalog.ComboRegularPriceCents())
		assert.Equal(t, int64(450), catalog.ComboSavingsCents())
	})

	t.Run("ByID resolves items and the combo", func(t *testing.T) {
		wings, err := catalog.ByID(1)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), wings.PriceCents)

		combo, err := catalog.ByID(5)
		require.NoError(t, err)
		assert.Equal(t, catalog.Combo(), combo)
	})

	t.Run("ByID rejects unknown ids", func(t *testing.T) {
		_, err := catalog.ByID(42)
		assert.ErrorIs(t, err, menu.ErrItemNotFound)
	})

	t.Run("Items returns a copy", func(t *testing.T) {
		items := catalog.Items()
		items[0].PriceCents = 1

		fresh := catalog.Items()
		assert.Equal(t, int64(2000), fresh[0].PriceCents)
	})
}
