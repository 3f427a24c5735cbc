// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"stocksignal/internal/analysis"
	"stocksignal/internal/models"
)

// DataStore defines the interface for data persistence.
type DataStore interface {
	// Candles
	SaveCandles(ctx context.Context, symbol string, candles []models.Candle) error
	GetCandles(ctx context.Context, symbol string, limit int) ([]models.Candle, error)

	// Watchlist
	AddToWatchlist(ctx context.Context, symbol, listName string) error
	RemoveFromWatchlist(ctx context.Context, symbol, listName string) error
	GetWatchlist(ctx context.Context, listName string) ([]string, error)
	GetAllWatchlists(ctx context.Context) (map[string][]string, error)

	// Scan results
	SaveScanResults(ctx context.Context, results []ScanRecord) error
	GetLatestScanResults(ctx context.Context, limit int) ([]ScanRecord, error)

	// Signal history
	SaveSignal(ctx context.Context, record *SignalRecord) error
	GetSignals(ctx context.Context, symbol string, limit int) ([]SignalRecord, error)

	// Lifecycle
	Close() error
}

// ScanRecord is one row of a persisted screening run.
type ScanRecord struct {
	Symbol     string          `json:"symbol"`
	Price      float64         `json:"price"`
	ChangeRate float64         `json:"change_rate"`
	Score      float64         `json:"score"`
	Signal     analysis.Signal `json:"signal"`
	ScannedAt  time.Time       `json:"scanned_at"`
}

// SignalRecord is one persisted classification for a symbol.
type SignalRecord struct {
	Symbol         string          `json:"symbol"`
	Signal         analysis.Signal `json:"signal"`
	Confidence     float64         `json:"confidence"`
	CompositeScore float64         `json:"composite_score"`
	TechnicalScore int             `json:"technical_score"`
	Reasons        []string        `json:"reasons"`
	CreatedAt      time.Time       `json:"created_at"`
}
