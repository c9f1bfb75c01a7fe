package database

import (
	"context"
	"database/sql"
)

const healthQuery = "SELECT 1 AS health_check"

// Probe checks connectivity by running a trivial query on a dedicated connection.
type Probe struct {
	db *sql.DB
}

func NewProbe(db *sql.DB) *Probe {
	return &Probe{db: db}
}

// Check acquires one connection, runs the health query and returns the sentinel it read.
// The connection goes back to the pool on every path. Driver errors are returned as-is so
// callers can surface the driver's own message.
func (p *Probe) Check(ctx context.Context) (int64, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var sentinel int64
	if err := conn.QueryRowContext(ctx, healthQuery).Scan(&sentinel); err != nil {
		return 0, err
	}
	return sentinel, nil
}
