// Package analysis provides technical analysis functionality including indicators,
// composite scoring, pattern detection, and signal generation.
package analysis

import (
	"stocksignal/internal/models"
)

// Indicator defines the interface for technical indicators.
type Indicator interface {
	Name() string
	Calculate(candles []models.Candle) ([]float64, error)
	Period() int
}

// MultiValueIndicator defines the interface for indicators that return multiple values.
type MultiValueIndicator interface {
	Name() string
	Calculate(candles []models.Candle) (map[string][]float64, error)
	Period() int
}

// Signal is the discrete trading signal derived from a score.
type Signal string

const (
	StrongBuy  Signal = "STRONG_BUY"
	Buy        Signal = "BUY"
	Hold       Signal = "HOLD"
	Sell       Signal = "SELL"
	StrongSell Signal = "STRONG_SELL"
)

// TimingVerdict is the bucketed outcome of the rule-accumulator timing pass.
type TimingVerdict string

const (
	TimingStrongBuy  TimingVerdict = "STRONG_BUY"
	TimingBuy        TimingVerdict = "BUY_CONSIDER"
	TimingWatch      TimingVerdict = "WATCH"
	TimingSell       TimingVerdict = "SELL_CONSIDER"
	TimingStrongSell TimingVerdict = "STRONG_SELL"
)

// TimingAction is the entry-timing verdict of the recommendation engine.
type TimingAction string

const (
	ActionBuy  TimingAction = "BUY"
	ActionSell TimingAction = "SELL"
	ActionWait TimingAction = "WAIT"
)

// PatternType identifies a detected chart structure.
type PatternType string

const (
	PatternTrend             PatternType = "trend"
	PatternDoubleTop         PatternType = "double_top"
	PatternDoubleBottom      PatternType = "double_bottom"
	PatternTriangle          PatternType = "triangle"
	PatternRange             PatternType = "range"
	PatternSupportResistance PatternType = "support_resistance"
)

// PatternDirection represents the expected direction of a pattern.
type PatternDirection string

const (
	PatternBullish PatternDirection = "bullish"
	PatternBearish PatternDirection = "bearish"
	PatternNeutral PatternDirection = "neutral"
)

// Reliability grades how trustworthy a detected pattern is.
type Reliability string

const (
	ReliabilityHigh     Reliability = "high"
	ReliabilityModerate Reliability = "moderate"
	ReliabilityInfo     Reliability = "info"
)

// Pattern represents a structure found by the windowed pattern detector.
type Pattern struct {
	Type        PatternType      `json:"type"`
	Direction   PatternDirection `json:"direction"`
	Reliability Reliability      `json:"reliability"`
	Description string           `json:"description"`
	Support     float64          `json:"support,omitempty"`
	Resistance  float64          `json:"resistance,omitempty"`
}

// RiskTier buckets volatility into qualitative risk levels.
type RiskTier string

const (
	RiskVeryHigh RiskTier = "very_high"
	RiskHigh     RiskTier = "high"
	RiskModerate RiskTier = "moderate"
	RiskLow      RiskTier = "low"
)

// Trend classifies the windowed price direction.
type Trend string

const (
	TrendStrongUp   Trend = "strong_uptrend"
	TrendUp         Trend = "uptrend"
	TrendSideways   Trend = "sideways"
	TrendDown       Trend = "downtrend"
	TrendStrongDown Trend = "strong_downtrend"
)
