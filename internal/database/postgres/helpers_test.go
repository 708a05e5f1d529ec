package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ReferralBot_Go/internal/database"
)

const testAcquireTimeout = 2 * time.Second

// setupTestPool connects to the shared test container, applies migrations
// and empties the tables. Skips when no database is available.
func setupTestPool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, testDBConnString, database.PoolConfig{
		MaxConns:        maxConns,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: 5 * time.Minute,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE referrals, users CASCADE"); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return pool
}
