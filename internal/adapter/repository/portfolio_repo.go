package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio-customizer/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var errNoPool = errors.New("postgres pool not configured")

// PortfolioRepo stores portfolios in Postgres.
type PortfolioRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPortfolioRepo(pool *pgxpool.Pool, logger *slog.Logger) *PortfolioRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortfolioRepo{pool: pool, logger: logger}
}

// Save upserts p. The html column holds the snapshot unchanged.
func (r *PortfolioRepo) Save(ctx context.Context, p *domain.Portfolio) error {
	if r.pool == nil {
		return errNoPool
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO portfolios (id, user_id, title, html, theme, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, title = EXCLUDED.title, html = EXCLUDED.html, theme = EXCLUDED.theme, updated_at = EXCLUDED.updated_at`,
		p.ID, p.UserID, p.Title, p.HTML, p.Theme, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert portfolio %s: %w", p.ID, err)
	}
	r.logger.Debug("portfolio saved", "id", p.ID, "user", p.UserID, "bytes", len(p.HTML))
	return nil
}

func (r *PortfolioRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	if r.pool == nil {
		return nil, errNoPool
	}
	var (
		p     domain.Portfolio
		rawID string
	)
	err := r.pool.QueryRow(ctx, `SELECT id::text, user_id, title, html, theme, created_at, updated_at FROM portfolios WHERE id = $1`, id).
		Scan(&rawID, &p.UserID, &p.Title, &p.HTML, &p.Theme, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPortfolioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get portfolio %s: %w", id, err)
	}
	if p.ID, err = uuid.Parse(rawID); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListForUser returns the user's portfolios, most recently updated first.
func (r *PortfolioRepo) ListForUser(ctx context.Context, userID string) ([]domain.PortfolioSummary, error) {
	if r.pool == nil {
		return nil, errNoPool
	}
	var out []domain.PortfolioSummary
	err := queryJSON(ctx, r.pool, &out, `SELECT coalesce(json_agg(json_build_object(
			'id', p.id, 'title', p.title, 'theme', p.theme, 'updated_at', p.updated_at
		) ORDER BY p.updated_at DESC), '[]') FROM portfolios p WHERE p.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list portfolios for %s: %w", userID, err)
	}
	return out, nil
}
