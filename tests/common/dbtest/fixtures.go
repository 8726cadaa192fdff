//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, displayName string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, display_name, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, displayName)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// ResetDB truncates all mutable tables so each subtest starts from a clean
// slate without recreating the database.
func ResetDB(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(),
		"TRUNCATE idempotency_keys, orders, drops, users CASCADE")
	return err
}

// SetDropCount forces the counter so tests can start from any fill level.
func SetDropCount(t *testing.T, db DBLike, dropID string, totalSlots, ordersCount int32) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO drops (id, total_slots, orders_count) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET total_slots = $2, orders_count = $3",
		dropID, totalSlots, ordersCount)
	require.NoError(t, err)
}
