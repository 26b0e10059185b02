package usecase

import (
	"context"
	"errors"

	"portfolio-customizer/internal/domain"
	"portfolio-customizer/internal/editor"
	"portfolio-customizer/pkg/extract"

	"github.com/google/uuid"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type PortfolioRepo interface {
	Save(ctx context.Context, p *domain.Portfolio) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Portfolio, error)
	ListForUser(ctx context.Context, userID string) ([]domain.PortfolioSummary, error)
}

// Generator produces a portfolio page from resume text. The answer may be
// wrapped in a markdown code fence.
type Generator interface {
	GenerateHTML(ctx context.Context, resumeText, language string) (string, error)
}

type TextExtractor interface {
	Extract(filename string, data []byte) (extract.Result, error)
}

var ErrSessionNotFound = errors.New("session not found")

// View is what clients see of a session after every operation.
type View struct {
	SessionID   string            `json:"sessionId"`
	PortfolioID string            `json:"portfolioId,omitempty"`
	Selection   *editor.Selection `json:"selection"`
	Theme       string            `json:"theme,omitempty"`
	Palette     editor.Palette    `json:"palette"`
	CanUndo     bool              `json:"canUndo"`
	CanRedo     bool              `json:"canRedo"`
	HistoryLen  int               `json:"historyLength"`
	Cursor      int               `json:"cursor"`
	HTML        string            `json:"html"`
}

// GenerateResult is a new session plus any sections the generated page
// seems to lack.
type GenerateResult struct {
	View
	Missing []string `json:"missing,omitempty"`
}
