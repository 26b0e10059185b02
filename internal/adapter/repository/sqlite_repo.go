package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portfolio-customizer/internal/domain"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteRepo stores portfolios in a single SQLite file.
type SQLiteRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens path and brings the schema up to date.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteRepo, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; avoids SQLITE_BUSY between the pool's connections
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration up failed: %w", err)
	}
	logger.Info("sqlite storage ready", "path", path)
	return &SQLiteRepo{db: db, logger: logger}, nil
}

func (r *SQLiteRepo) Close() error { return r.db.Close() }

func (r *SQLiteRepo) Save(ctx context.Context, p *domain.Portfolio) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO portfolios (id, user_id, title, html, theme, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT (id) DO UPDATE SET user_id = excluded.user_id, title = excluded.title, html = excluded.html, theme = excluded.theme, updated_at = excluded.updated_at`,
		p.ID.String(), p.UserID, p.Title, p.HTML, p.Theme, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upsert portfolio %s: %w", p.ID, err)
	}
	r.logger.Debug("portfolio saved", "id", p.ID, "user", p.UserID, "bytes", len(p.HTML))
	return nil
}

func (r *SQLiteRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	var (
		p                  domain.Portfolio
		rawID, created, up string
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, user_id, title, html, theme, created_at, updated_at FROM portfolios WHERE id = ?`, id.String()).
		Scan(&rawID, &p.UserID, &p.Title, &p.HTML, &p.Theme, &created, &up)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPortfolioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get portfolio %s: %w", id, err)
	}
	if p.ID, err = uuid.Parse(rawID); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(up); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepo) ListForUser(ctx context.Context, userID string) ([]domain.PortfolioSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, theme, updated_at FROM portfolios WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list portfolios for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []domain.PortfolioSummary
	for rows.Next() {
		var (
			s         domain.PortfolioSummary
			rawID, up string
		)
		if err := rows.Scan(&rawID, &s.Title, &s.Theme, &up); err != nil {
			return nil, err
		}
		if s.ID, err = uuid.Parse(rawID); err != nil {
			return nil, err
		}
		if s.UpdatedAt, err = parseTime(up); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// timestamps are fixed-width UTC so they sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) { return time.Parse(timeLayout, s) }
