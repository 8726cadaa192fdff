//go:build unit

package drop_test

import (
	"testing"

	"island-eats/internal/domain/drop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrop_Claim(t *testing.T) {
	t.Run("claims return sequential order numbers", func(t *testing.T) {
		d := drop.Reconstruct("sunday-drop", 20, 0)

		first, err := d.Claim()
		require.NoError(t, err)
		second, err := d.Claim()
		require.NoError(t, err)

		assert.Equal(t, int32(1), first)
		assert.Equal(t, int32(2), second)
		assert.Equal(t, int32(2), d.OrdersCount())
	})

	t.Run("last slot claims successfully", func(t *testing.T) {
		d := drop.Reconstruct("sunday-drop", 20, 19)

		number, err := d.Claim()
		require.NoError(t, err)

		assert.Equal(t, int32(20), number)
		assert.True(t, d.SoldOut())
		assert.Equal(t, int32(0), d.SlotsRemaining())
	})

	t.Run("claim on a sold out drop fails without mutating", func(t *testing.T) {
		d := drop.Reconstruct("sunday-drop", 20, 20)

		_, err := d.Claim()

		assert.ErrorIs(t, err, drop.ErrSoldOut)
		assert.Equal(t, int32(20), d.OrdersCount())
	})
}

func TestDrop_Status(t *testing.T) {
	t.Run("percentage tracks the counter", func(t *testing.T) {
		d := drop.Reconstruct("sunday-drop", 20, 5)

		assert.Equal(t, int32(15), d.SlotsRemaining())
		assert.InDelta(t, 25.0, d.Percentage(), 0.001)
		assert.False(t, d.SoldOut())
	})

	t.Run("counter past capacity reads as sold out with zero remaining", func(t *testing.T) {
		d := drop.Reconstruct("sunday-drop", 20, 25)

		assert.True(t, d.SoldOut())
		assert.Equal(t, int32(0), d.SlotsRemaining())
	})

	t.Run("zero capacity is always sold out and never divides by zero", func(t *testing.T) {
		d := drop.Reconstruct("sunday-drop", 0, 0)

		assert.True(t, d.SoldOut())
		assert.Equal(t, float64(0), d.Percentage())
	})
}
