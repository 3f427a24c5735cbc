// Package marketdata defines the market-data collaborator interface and a
// file-backed implementation. Network-backed providers plug in behind the
// same interface.
package marketdata

import (
	"context"

	"stocksignal/internal/models"
)

// Provider supplies price series and quotes for symbols. Implementations
// own their own rate limiting and caching.
type Provider interface {
	// GetCandles returns up to limit ascending daily candles for the
	// symbol; limit <= 0 means all available history.
	GetCandles(ctx context.Context, symbol string, limit int) ([]models.Candle, error)

	// GetQuote returns the latest traded snapshot for the symbol.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
}

// ContextSource supplies optional market context (cap, theme, news) for a
// symbol. Implementations return (nil, nil) when nothing is known.
type ContextSource interface {
	GetMarketContext(ctx context.Context, symbol string) (*models.MarketContext, error)
}
