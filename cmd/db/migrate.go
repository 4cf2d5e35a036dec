package main

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/garrettladley/dealdesk/internal/db"
	"github.com/garrettladley/dealdesk/internal/migrations/postgres"
	"github.com/garrettladley/dealdesk/internal/paths"
	"github.com/garrettladley/dealdesk/internal/server"
)

func migrateCmd() *cobra.Command {
	var backend bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  "Applies the local snapshot cache migrations, or with --backend the server's PostgreSQL migrations against DATABASE_URL.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if backend {
				cfg, err := server.ReadConfig()
				if err != nil {
					return fmt.Errorf("failed to read config: %w", err)
				}
				if cfg.Database.URL == "" {
					return errors.New("DATABASE_URL is not set")
				}
				pool, err := pgxpool.New(ctx, cfg.Database.URL)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer pool.Close()

				if err := postgres.Apply(ctx, pool); err != nil {
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
				fmt.Println("Backend migrations applied successfully")
				return nil
			}

			if _, err := paths.EnsureDir(); err != nil {
				return err
			}

			dbPath, err := paths.DB()
			if err != nil {
				return err
			}

			sqlDB, err := db.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = sqlDB.Close()
			}()

			fmt.Println("Migrations applied successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&backend, "backend", false, "migrate the server's PostgreSQL database")
	return cmd
}
