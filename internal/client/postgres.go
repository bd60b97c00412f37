package client

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresClient wraps the pgxpool.Pool.
type PostgresClient struct {
	Pool *pgxpool.Pool
}

// NewPostgresClient connects a pgx pool and verifies the connection.
func NewPostgresClient(ctx context.Context, url string) (*PostgresClient, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &PostgresClient{Pool: pool}, nil
}

// Close closes the database connection pool.
func (c *PostgresClient) Close() {
	c.Pool.Close()
}
