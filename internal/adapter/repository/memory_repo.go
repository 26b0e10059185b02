package repository

import (
	"context"
	"sort"
	"sync"

	"portfolio-customizer/internal/domain"

	"github.com/google/uuid"
)

// MemoryRepo keeps portfolios for the life of the process.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.Portfolio
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[uuid.UUID]domain.Portfolio)}
}

func (r *MemoryRepo) Save(_ context.Context, p *domain.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.items[p.ID]; ok {
		p.CreatedAt = old.CreatedAt
	}
	r.items[p.ID] = *p
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	return &p, nil
}

func (r *MemoryRepo) ListForUser(_ context.Context, userID string) ([]domain.PortfolioSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.PortfolioSummary
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, domain.PortfolioSummary{ID: p.ID, Title: p.Title, Theme: p.Theme, UpdatedAt: p.UpdatedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}
