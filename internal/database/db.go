// Package database persists player logins and finished-game results to
// Postgres. Persistence is optional: without DATABASE_URL the pool stays
// nil and every write is a no-op, keeping the game core fully in-memory.
package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the global connection pool. Nil when persistence is not configured.
var DB *pgxpool.Pool

// Connect initializes the pool from DATABASE_URL. Returns false without
// error when the variable is unset.
func Connect(ctx context.Context) (bool, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return false, nil
	}

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return false, fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return false, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return false, fmt.Errorf("db ping error: %w", err)
	}

	DB = pool
	return true, nil
}

// Close releases the pool, if one was opened.
func Close() {
	if DB != nil {
		DB.Close()
	}
}
