package postgres

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/dealdesk/internal/migrations"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Apply brings the backend schema up to date.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := migrations.Run(ctx, target{pool}, migrationsFS, "sql")
	return err
}

type target struct {
	pool *pgxpool.Pool
}

func (t target) Init(ctx context.Context) error {
	_, err := t.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations_history (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	return err
}

func (t target) Applied(ctx context.Context, name string) (bool, error) {
	var count int
	err := t.pool.QueryRow(ctx, "SELECT COUNT(*) FROM migrations_history WHERE name = $1", name).Scan(&count)
	return count > 0, err
}

func (t target) Exec(ctx context.Context, stmt string) error {
	_, err := t.pool.Exec(ctx, stmt)
	return err
}

func (t target) Record(ctx context.Context, name string) error {
	_, err := t.pool.Exec(ctx, "INSERT INTO migrations_history (name) VALUES ($1)", name)
	return err
}
