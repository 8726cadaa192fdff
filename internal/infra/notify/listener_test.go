//go:build unit

package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenerFanOut(t *testing.T) {
	update := DropUpdate{DropID: "sunday-drop", TotalSlots: 20, OrdersCount: 5}

	t.Run("subscriber receives a broadcast update", func(t *testing.T) {
		l := NewListener(nil)
		ch, cancel := l.Subscribe()
		defer cancel()

		l.broadcast(update)

		got := <-ch
		assert.Equal(t, update, got)
	})

	t.Run("every subscriber gets its own copy", func(t *testing.T) {
		l := NewListener(nil)
		ch1, cancel1 := l.Subscribe()
		defer cancel1()
		ch2, cancel2 := l.Subscribe()
		defer cancel2()

		l.broadcast(update)

		assert.Equal(t, update, <-ch1)
		assert.Equal(t, update, <-ch2)
	})

	t.Run("cancelled subscriber stops receiving", func(t *testing.T) {
		l := NewListener(nil)
		ch, cancel := l.Subscribe()
		cancel()

		l.broadcast(update)

		select {
		case got := <-ch:
			t.Fatalf("cancelled subscriber received %+v", got)
		default:
		}
	})

	t.Run("slow subscriber does not block the broadcast", func(t *testing.T) {
		l := NewListener(nil)
		slow, cancelSlow := l.Subscribe()
		defer cancelSlow()

		// Broadcast past the buffer without draining. Every call must
		// return; overflow is dropped, not queued.
		for i := range int32(cap(slow) + 3) {
			l.broadcast(DropUpdate{DropID: "sunday-drop", TotalSlots: 20, OrdersCount: i})
		}

		require.Len(t, slow, cap(slow))
		for i := range int32(cap(slow)) {
			got := <-slow
			assert.Equal(t, i, got.OrdersCount)
		}
		select {
		case got := <-slow:
			t.Fatalf("slow subscriber received beyond its buffer: %+v", got)
		default:
		}
	})
}
