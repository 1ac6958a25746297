package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/config"
)

// Connections are recycled periodically so long-lived sessions cannot pin
// stale search_path state after an `org create`.
const (
	connMaxLifetime = time.Hour
	connMaxIdleTime = 15 * time.Minute
	healthCheck     = time.Minute
)

// NewPool opens a pgx pool sized from the clinic configuration and verifies
// the database is reachable before returning it.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	pc.MaxConns = cfg.DBMaxConns
	pc.MinConns = cfg.DBMinConns
	pc.MaxConnLifetime = connMaxLifetime
	pc.MaxConnIdleTime = connMaxIdleTime
	pc.HealthCheckPeriod = healthCheck

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
