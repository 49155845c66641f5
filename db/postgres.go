// Package db persists search history in PostgreSQL.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kmorales/wayfarer/config"
)

// PostgresDB represents a PostgreSQL connection pool
type PostgresDB struct {
	pool *pgxpool.Pool
}

// NewPostgresDB creates a new PostgreSQL connection pool
func NewPostgresDB(ctx context.Context, cfg config.PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the connection pool
func (p *PostgresDB) Close() {
	p.pool.Close()
}

// Pool returns the underlying connection pool
func (p *PostgresDB) Pool() *pgxpool.Pool {
	return p.pool
}

// InitSchema initializes the database schema
func (p *PostgresDB) InitSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS search_history (
			id SERIAL PRIMARY KEY,
			session_id UUID NOT NULL,
			leg_id VARCHAR(20) NOT NULL,
			origin VARCHAR(3) NOT NULL,
			destination VARCHAR(3) NOT NULL,
			departure_date DATE NOT NULL,
			trip_type VARCHAR(20) NOT NULL,
			cabin_class VARCHAR(20) NOT NULL,
			stops VARCHAR(20) NOT NULL,
			passengers INT NOT NULL DEFAULT 1,
			flight_count INT NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL,
			error_message TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_search_history_created_at
			ON search_history (created_at);
		CREATE INDEX IF NOT EXISTS idx_search_history_route
			ON search_history (origin, destination);
	`)
	return err
}
