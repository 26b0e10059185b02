package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"portfolio-customizer/pkg/ai/formatters"
)

// ErrGenerationFailed carries the message shown when generation fails.
var ErrGenerationFailed = errors.New("Failed to generate portfolio.")

// Client calls the internal ai-service to turn resume text into a portfolio
// page.
type Client struct {
	BaseURL         string
	HTTP            *http.Client
	DefaultLanguage string
	logger          *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://ai-service:8000"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: &http.Client{Timeout: 120 * time.Second}, logger: logger}
}

func NewClientWithLanguage(baseURL, language string, logger *slog.Logger) *Client {
	c := NewClient(baseURL, logger)
	c.DefaultLanguage = language
	return c
}

// Formatter produces text from a resume.
type Formatter interface {
	Format(ctx context.Context, resumeText string) (string, error)
}

// NewPortfolioFormatter writes in language, or DefaultLanguage when empty.
func (c *Client) NewPortfolioFormatter(language string) Formatter {
	if language == "" {
		language = c.DefaultLanguage
	}
	return formatters.NewPortfolioFormatter(c.HTTP, c.BaseURL, language, c.logger)
}

// GenerateHTML asks the ai-service for a portfolio page. The caller strips
// any code fence. Failures wrap ErrGenerationFailed.
func (c *Client) GenerateHTML(ctx context.Context, resumeText, language string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", fmt.Errorf("%w: resume text is empty", ErrGenerationFailed)
	}
	start := time.Now()
	out, err := c.NewPortfolioFormatter(language).Format(ctx, resumeText)
	if err != nil {
		c.logger.Error("portfolio generation failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	c.logger.Info("portfolio generated", "bytes", len(out), "took", time.Since(start))
	return out, nil
}
