package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Starting database migrations")

	migrations := []Migration{
		{
			Name: "create_portfolios",
			Up:   createPortfolios,
		},
		{
			Name: "index_portfolios_by_user",
			Up:   indexPortfoliosByUser,
		},
		{
			Name: "add_theme_to_portfolios",
			Up:   addThemeToPortfolios,
		},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			logger.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		logger.Info("Migration completed", "name", m.Name)
	}

	logger.Info("All migrations completed successfully")
	return nil
}

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

func createPortfolios(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS portfolios (
			id         UUID PRIMARY KEY,
			user_id    TEXT NOT NULL,
			title      TEXT NOT NULL DEFAULT '',
			html       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func indexPortfoliosByUser(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS portfolios_user_updated
		ON portfolios (user_id, updated_at DESC);
	`)
	return err
}

// addThemeToPortfolios adds the theme column if it doesn't exist. Tables
// created before themes were recorded lack it.
func addThemeToPortfolios(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		ALTER TABLE portfolios
		ADD COLUMN IF NOT EXISTS theme TEXT NOT NULL DEFAULT '';
	`)
	return err
}
