package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Portfolio is a saved document. HTML is the snapshot at the history cursor
// when it was saved, stored verbatim.
type Portfolio struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	HTML      string    `json:"html,omitempty"`
	Theme     string    `json:"theme,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PortfolioSummary is a listing row without the document body.
type PortfolioSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Theme     string    `json:"theme,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrPortfolioNotFound is returned by repositories for unknown ids.
var ErrPortfolioNotFound = errors.New("portfolio not found")
