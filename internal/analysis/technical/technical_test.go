package technical

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/models"
)

func candlesFromCloses(closes []float64) []models.Candle {
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		candles[i] = models.Candle{
			Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    10000,
		}
	}
	return candles
}

func risingSeries(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return closes
}

func TestAnalyze_InsufficientData(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	_, err := analyzer.Analyze(context.Background(), candlesFromCloses(risingSeries(30, 100, 1)))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientData)
}

func TestAnalyze_RisingSeriesScoresBullish(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	candles := candlesFromCloses(risingSeries(80, 100, 1))

	result, err := analyzer.Analyze(context.Background(), candles)
	require.NoError(t, err)

	assert.InDelta(t, 179, result.CurrentPrice, 0.0001)
	assert.InDelta(t, 178, result.PreviousClose, 0.0001)

	require.NotNil(t, result.Indicators.RSI)
	require.NotNil(t, result.Indicators.MA20)
	require.NotNil(t, result.Indicators.MA60)
	require.NotNil(t, result.Indicators.MACD)
	require.NotNil(t, result.Indicators.Bollinger)
	require.NotNil(t, result.Indicators.ATR)

	// Steadily rising closes keep RSI pinned high and the MA stack ordered,
	// so the MACD and alignment bonuses outweigh the overbought penalty.
	assert.Greater(t, result.Score, 50)
	assert.NotEmpty(t, result.Signals)
}

func TestAnalyze_EntryLevelsFollowATRMultiples(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	candles := candlesFromCloses(risingSeries(80, 100, 1))

	result, err := analyzer.Analyze(context.Background(), candles)
	require.NoError(t, err)
	require.NotNil(t, result.Indicators.ATR)

	atr := *result.Indicators.ATR
	price := result.CurrentPrice
	assert.InDelta(t, price-2*atr, result.Risk.StopLoss, 0.0001)
	assert.InDelta(t, price+2*atr, result.Risk.Target1, 0.0001)
	assert.InDelta(t, price+3*atr, result.Risk.Target2, 0.0001)
	assert.InDelta(t, price+5*atr, result.Risk.Target3, 0.0001)
}

func TestTechnicalScore_MA20RuleNeedsMA60(t *testing.T) {
	// The price-vs-MA20 adjustment only applies when both moving averages
	// are available.
	ma20 := 100.0
	result := &Result{Indicators: IndicatorSet{MA20: &ma20}}

	score, signals := technicalScore(result, 110, 109)
	assert.Equal(t, 50, score)
	assert.NotContains(t, signals, "Price above MA20")

	ma60 := 90.0
	result.Indicators.MA60 = &ma60
	score, signals = technicalScore(result, 110, 109)
	assert.Equal(t, 65, score)
	assert.Contains(t, signals, "Price above MA20")
}

func TestTechnicalScore_ClampedToRange(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// A steep collapse stacks every bearish adjustment.
	falling := make([]float64, 80)
	for i := range falling {
		falling[i] = 500 - float64(i)*5
	}
	result, err := analyzer.Analyze(context.Background(), candlesFromCloses(falling))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Score, 0)
	assert.LessOrEqual(t, result.Score, 100)
	assert.Less(t, result.Score, 50)
}
