// Package postgres is the optional store backend. Records are kept as
// jsonb documents so the wire contract stays identical to the file
// backend; a sequence column preserves insertion order.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posbridge/moto-gateway/internal/config"
)

// Connect establishes the connection pool and verifies connectivity.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pgxCfg, err := cfg.PgxConfig()
	if err != nil {
		return nil, fmt.Errorf("building pgx config: %w", err)
	}

	logger.Info("connecting to database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
	)

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the document tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS moto_transactions (
			seq bigserial PRIMARY KEY,
			id text NOT NULL UNIQUE,
			doc jsonb NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS moto_devices (
			id text PRIMARY KEY,
			doc jsonb NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS moto_settings (
			id int PRIMARY KEY CHECK (id = 1),
			doc jsonb NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}
