// Package models defines the core data structures for market analysis.
package models

import "time"

// Market identifies the market an instrument trades on.
type Market string

const (
	MarketKR Market = "KR"
	MarketUS Market = "US"
)

// Candle represents a single OHLCV price bar.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// Valid reports whether the candle satisfies basic OHLC invariants.
func (c Candle) Valid() bool {
	if c.Close <= 0 || c.High < c.Low {
		return false
	}
	if c.High < c.Open || c.High < c.Close {
		return false
	}
	if c.Low > c.Open || c.Low > c.Close {
		return false
	}
	return true
}

// Quote represents a snapshot of the latest traded state of an instrument.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name,omitempty"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}

// Instrument represents a tradable instrument.
type Instrument struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Market Market `json:"market"`
}

// ThemeContext carries sector/theme popularity signals for scoring.
type ThemeContext struct {
	Name       string  `json:"name"`
	ChangeRate float64 `json:"change_rate"` // theme-level % change
	Rank       int     `json:"rank"`        // rank of the instrument within the theme
}

// NewsContext carries news recency signals for scoring.
type NewsContext struct {
	Count        int  `json:"count"`
	HasToday     bool `json:"has_today"`
	HasYesterday bool `json:"has_yesterday"`
}

// Fundamentals carries the valuation ratios used for fundamental scoring.
// A zero value means the ratio is unavailable.
type Fundamentals struct {
	PER float64 `json:"per"`
	PBR float64 `json:"pbr"`
}

// MarketContext bundles the optional contextual inputs that accompany a
// price series. Nil sub-fields mean the context was not available; the
// scoring engine narrows its denominator accordingly.
type MarketContext struct {
	Market       Market        `json:"market"`
	MarketCap    float64       `json:"market_cap"` // KR: 억원, US: $M
	Theme        *ThemeContext `json:"theme,omitempty"`
	News         *NewsContext  `json:"news,omitempty"`
	Fundamentals *Fundamentals `json:"fundamentals,omitempty"`
}
