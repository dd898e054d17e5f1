package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DatabaseCheck probes the pool for the readiness endpoint.
type DatabaseCheck struct {
	pool  *pgxpool.Pool
	query string
}

const pingQuery = "SELECT 1"

func NewDatabaseCheck(pool *pgxpool.Pool) *DatabaseCheck {
	return &DatabaseCheck{pool: pool, query: pingQuery}
}

func (c *DatabaseCheck) Name() string { return "database" }

// Check borrows one connection, runs a no-op query and hands the connection back.
// The connection is released on every path, including a failed query.
func (c *DatabaseCheck) Check(ctx context.Context) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, c.query)
	return err
}
