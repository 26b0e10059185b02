package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v4/pgxpool"
)

// queryJSON runs a SQL that returns a single json value and unmarshals it
// into dst.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, dst interface{}, sql string, args ...interface{}) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
