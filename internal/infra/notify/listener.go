package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Listener holds one dedicated connection on LISTEN and fans incoming drop
// updates out to in-process subscribers (the live status feed). Updates are
// advisory: a slow subscriber misses intermediate counts, never blocks the
// listener, and can always re-read the current status.
type Listener struct {
	pool *pgxpool.Pool

	mu   sync.Mutex
	subs map[chan DropUpdate]struct{}
}

func NewListener(pool *pgxpool.Pool) *Listener {
	return &Listener{
		pool: pool,
		subs: make(map[chan DropUpdate]struct{}),
	}
}

// Subscribe registers a live-update channel. The returned cancel func must
// be called when the subscriber goes away.
func (l *Listener) Subscribe() (<-chan DropUpdate, func()) {
	ch := make(chan DropUpdate, 8)

	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		delete(l.subs, ch)
		l.mu.Unlock()
	}
	return ch, cancel
}

// Run blocks listening for notifications until ctx is canceled, reconnecting
// with backoff on connection loss.
func (l *Listener) Run(ctx context.Context) {
	const reconnectWait = 2 * time.Second

	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("drop update listener disconnected", "error", err.Error())
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectWait):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+DropUpdatesChannel); err != nil {
		return err
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var update DropUpdate
		if err := json.Unmarshal([]byte(notification.Payload), &update); err != nil {
			slog.Warn("ignoring malformed drop update payload", "error", err.Error())
			continue
		}

		l.broadcast(update)
	}
}

func (l *Listener) broadcast(update DropUpdate) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ch := range l.subs {
		select {
		case ch <- update:
		default:
			// Subscriber is behind; it will catch up on the next update.
		}
	}
}
