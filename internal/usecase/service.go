package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"portfolio-customizer/internal/domain"
	"portfolio-customizer/internal/editor"
	"portfolio-customizer/internal/model"
	ai "portfolio-customizer/pkg/ai"
	"portfolio-customizer/pkg/extract"

	"github.com/google/uuid"
)

// Service wires sessions to the generator, storage, renderer and extractor.
type Service struct {
	sessions    *SessionStore
	repo        PortfolioRepo
	generator   Generator
	renderer    Renderer
	extractor   TextExtractor
	logger      *slog.Logger
	randomTheme bool
	pickTheme   func(n int) int
	now         func() time.Time
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRandomTheme applies a random catalog theme to every generated page.
func WithRandomTheme(on bool) Option {
	return func(s *Service) { s.randomTheme = on }
}

// WithThemePicker replaces the random index source.
func WithThemePicker(pick func(n int) int) Option {
	return func(s *Service) { s.pickTheme = pick }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo PortfolioRepo, gen Generator, r Renderer, x TextExtractor, opts ...Option) *Service {
	s := &Service{
		sessions:  NewSessionStore(),
		repo:      repo,
		generator: gen,
		renderer:  r,
		extractor: x,
		logger:    slog.Default(),
		pickTheme: rand.Intn,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Sessions() *SessionStore { return s.sessions }

func (s *Service) newEditor(snapshot string) (*editor.Editor, error) {
	return editor.New(snapshot, editor.WithLogger(s.logger))
}

// Generate asks the generator for a page and opens it in a new session.
func (s *Service) Generate(ctx context.Context, req model.GenerateRequest) (GenerateResult, error) {
	raw, err := s.generator.GenerateHTML(ctx, req.ResumeText, req.Language)
	if err != nil {
		if !errors.Is(err, ai.ErrGenerationFailed) {
			err = fmt.Errorf("%w: %v", ai.ErrGenerationFailed, err)
		}
		return GenerateResult{}, err
	}
	page := editor.StripCodeFences(raw)
	if page == "" {
		return GenerateResult{}, fmt.Errorf("%w: empty page", ai.ErrGenerationFailed)
	}
	e, err := s.newEditor(page)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("%w: %v", ai.ErrGenerationFailed, err)
	}

	check := PageValidator(e.Document())
	if !check.Valid {
		s.logger.Warn("generated page lacks sections", "missing", check.Missing)
	}

	if s.randomTheme {
		themes := editor.Themes()
		t := themes[s.pickTheme(len(themes))]
		if err := e.ApplyTheme(t); err != nil {
			s.logger.Warn("could not apply initial theme", "theme", t.Name, "error", err)
		}
	}

	sess := s.sessions.Create(e)
	s.logger.Info("portfolio generated", "session", sess.ID, "user", req.UserID, "bytes", len(page))
	return GenerateResult{View: sess.View(), Missing: check.Missing}, nil
}

// Open starts a session on caller-supplied markup.
func (s *Service) Open(html string) (View, error) {
	if strings.TrimSpace(html) == "" {
		return View{}, editor.ErrEmptyDocument
	}
	e, err := s.newEditor(html)
	if err != nil {
		return View{}, err
	}
	sess := s.sessions.Create(e)
	s.logger.Info("session opened", "session", sess.ID)
	return sess.View(), nil
}

// OpenSaved starts a session on a stored portfolio. Saving that session
// overwrites the same portfolio.
func (s *Service) OpenSaved(ctx context.Context, id uuid.UUID) (View, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	e, err := s.newEditor(p.HTML)
	if err != nil {
		return View{}, err
	}
	sess := s.sessions.Create(e)
	sess.portfolioID = p.ID
	s.logger.Info("portfolio opened", "session", sess.ID, "portfolio", p.ID)
	return sess.View(), nil
}

func (s *Service) Session(id uuid.UUID) (*Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Edit runs fn against the session's editor.
func (s *Service) Edit(id uuid.UUID, fn func(e *editor.Editor) error) (View, error) {
	sess, err := s.Session(id)
	if err != nil {
		return View{}, err
	}
	v, err := sess.Edit(fn)
	if err != nil {
		s.logger.Debug("edit refused", "session", id, "error", err)
	}
	return v, err
}

func (s *Service) Close(id uuid.UUID) {
	s.sessions.Delete(id)
}

// Save stores the snapshot at the history cursor, unchanged.
func (s *Service) Save(ctx context.Context, id uuid.UUID, userID string) (*domain.Portfolio, error) {
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	e := sess.editor
	now := s.now()
	p := &domain.Portfolio{
		ID:        sess.portfolioID,
		UserID:    userID,
		Title:     editor.DocumentTitle(e.Document()),
		HTML:      e.Snapshot(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Title == "" {
		p.Title = "Portfolio"
	}
	if t, ok := e.CurrentTheme(); ok {
		p.Theme = t.Name
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save portfolio: %w", err)
	}
	sess.portfolioID = p.ID
	s.logger.Info("portfolio saved", "session", id, "portfolio", p.ID, "user", userID)
	return p, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.PortfolioSummary, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *Service) snapshot(id uuid.UUID) (string, error) {
	sess, err := s.Session(id)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.editor.Snapshot(), nil
}

// ExportPDF prints the current snapshot.
func (s *Service) ExportPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	snap, err := s.snapshot(id)
	if err != nil {
		return nil, err
	}
	if s.renderer == nil {
		return nil, errors.New("pdf export is not configured")
	}
	return s.renderer.RenderHTMLToPDF(ctx, snap)
}

// ExportHTML returns the current snapshot, optionally minified.
func (s *Service) ExportHTML(id uuid.UUID, minified bool) (string, error) {
	snap, err := s.snapshot(id)
	if err != nil {
		return "", err
	}
	if !minified {
		return snap, nil
	}
	return minifyHTML(snap), nil
}

func (s *Service) Extract(filename string, data []byte) (extract.Result, error) {
	return s.extractor.Extract(filename, data)
}
