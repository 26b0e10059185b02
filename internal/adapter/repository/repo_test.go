package repository

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"portfolio-customizer/internal/domain"
	"portfolio-customizer/internal/infrastructure/migration"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store interface {
	Save(ctx context.Context, p *domain.Portfolio) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Portfolio, error)
	ListForUser(ctx context.Context, userID string) ([]domain.PortfolioSummary, error)
}

const snapshot = "<!DOCTYPE html><html><head><title>Jane</title></head><body>\n<h1 class=\"x\">Jane</h1>\n</body></html>"

func exerciseStore(t *testing.T, s store) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	u1, u2 := "u1-"+uuid.NewString(), "u2-"+uuid.NewString()

	first := &domain.Portfolio{ID: uuid.New(), UserID: u1, Title: "Jane", HTML: snapshot, Theme: "Indigo Light", CreatedAt: base, UpdatedAt: base}
	second := &domain.Portfolio{ID: uuid.New(), UserID: u1, Title: "Second", HTML: "<p>2</p>", CreatedAt: base, UpdatedAt: base.Add(time.Hour)}
	other := &domain.Portfolio{ID: uuid.New(), UserID: u2, Title: "Other", HTML: "<p>o</p>", CreatedAt: base, UpdatedAt: base}
	for _, p := range []*domain.Portfolio{first, second, other} {
		require.NoError(t, s.Save(ctx, p))
	}

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got.HTML, "stored verbatim")
	assert.Equal(t, "Jane", got.Title)
	assert.Equal(t, "Indigo Light", got.Theme)
	assert.True(t, base.Equal(got.CreatedAt))

	list, err := s.ListForUser(ctx, u1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "most recent first")
	assert.Equal(t, first.ID, list[1].ID)

	first.HTML = "<p>edited</p>"
	first.UpdatedAt = base.Add(2 * time.Hour)
	require.NoError(t, s.Save(ctx, first))
	got, err = s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>edited</p>", got.HTML)
	list, err = s.ListForUser(ctx, u1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	_, err = s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPortfolioNotFound)

	empty, err := s.ListForUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryRepo(t *testing.T) {
	exerciseStore(t, NewMemoryRepo())
}

func TestSQLiteRepo(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "portfolios.db"), nil)
	require.NoError(t, err)
	defer repo.Close()
	exerciseStore(t, repo)
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolios.db")
	repo, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	p := &domain.Portfolio{ID: uuid.New(), UserID: "u", Title: "t", HTML: "<p>x</p>", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, repo.Save(context.Background(), p))
	require.NoError(t, repo.Close())

	repo, err = OpenSQLite(path, nil)
	require.NoError(t, err)
	defer repo.Close()
	got, err := repo.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", got.HTML)
}

func TestPortfolioRepoWithoutPool(t *testing.T) {
	r := NewPortfolioRepo(nil, nil)
	assert.Error(t, r.Save(context.Background(), &domain.Portfolio{ID: uuid.New()}))
	_, err := r.Get(context.Background(), uuid.New())
	assert.Error(t, err)
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestPortfolioRepoPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, migration.RunMigrations(ctx, pool, slog.Default()))
	exerciseStore(t, NewPortfolioRepo(pool, nil))
}
