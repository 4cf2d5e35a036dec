package migrations

import (
	"context"
	"database/sql"
	"embed"
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// ApplySQLite brings the local snapshot cache schema up to date.
func ApplySQLite(ctx context.Context, db *sql.DB) error {
	_, err := Run(ctx, sqliteTarget{db}, sqliteFS, "sqlite")
	return err
}

type sqliteTarget struct {
	db *sql.DB
}

func (t sqliteTarget) Init(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (t sqliteTarget) Applied(ctx context.Context, name string) (bool, error) {
	var count int
	err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations_history WHERE name = ?", name).Scan(&count)
	return count > 0, err
}

func (t sqliteTarget) Exec(ctx context.Context, stmt string) error {
	_, err := t.db.ExecContext(ctx, stmt)
	return err
}

func (t sqliteTarget) Record(ctx context.Context, name string) error {
	_, err := t.db.ExecContext(ctx, "INSERT INTO migrations_history (name) VALUES (?)", name)
	return err
}
