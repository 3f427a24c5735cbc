package indicators

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/models"
)

// candlesFromCloses builds a series where each bar trades in a narrow band
// around its close.
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

func TestRSI_WilderSeedAndRecurrence(t *testing.T) {
	closes := []float64{
		44, 44.3, 44.1, 43.6, 44.3, 45.1, 45.2, 45.6,
		46.0, 46.9, 47.7, 47.0, 46.4, 47.0, 46.0,
	}
	candles := candlesFromCloses(closes)

	values, err := NewRSI(14).Calculate(candles)
	require.NoError(t, err)
	require.Len(t, values, len(closes))

	// Seed averages: gains sum 5.0, losses sum 3.0 over the first 14 deltas,
	// so RS = 5/3 and RSI = 62.5.
	assert.InDelta(t, 62.5, values[14], 0.0001)
}

func TestRSI_AllGainsPinsAt100(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	values, err := NewRSI(14).Calculate(candlesFromCloses(closes))
	require.NoError(t, err)
	assert.InDelta(t, 100, values[len(values)-1], 0.0001)
}

func TestRSI_InsufficientData(t *testing.T) {
	_, err := NewRSI(14).Calculate(candlesFromCloses([]float64{100, 101, 102}))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientData)
}

func TestSMA_TrailingMean(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6}
	values, err := NewSMA(3).Calculate(candlesFromCloses(closes))
	require.NoError(t, err)

	assert.InDelta(t, 2, values[2], 0.0001)
	assert.InDelta(t, 5, values[5], 0.0001)
}

func TestEMA_SeededFromFirstValue(t *testing.T) {
	closes := []float64{100, 110, 120, 130, 140, 150, 160, 170, 180, 190, 200, 210}
	values, err := NewEMA(12).Calculate(candlesFromCloses(closes))
	require.NoError(t, err)

	// The recurrence is seeded with the first close, not an SMA.
	assert.InDelta(t, 100, values[0], 0.0001)

	k := 2.0 / 13.0
	expected := closes[1]*k + 100*(1-k)
	assert.InDelta(t, expected, values[1], 0.0001)
}

func TestMACD_DerivedSignalAndHistogram(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	values, err := NewMACD(12, 26).Calculate(candlesFromCloses(closes))
	require.NoError(t, err)

	line := values["macd"]
	last := len(line) - 1
	assert.InDelta(t, line[last]*0.8, values["signal"][last], 0.0001)
	assert.InDelta(t, line[last]*0.2, values["histogram"][last], 0.0001)
}

func TestATR_MeanOfConstantTrueRanges(t *testing.T) {
	// Flat closes with a fixed 2-point bar range keep every TR at 2.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	values, err := NewATR(14).Calculate(candlesFromCloses(closes))
	require.NoError(t, err)
	assert.InDelta(t, 2, values[len(values)-1], 0.0001)
}

func TestBollingerBands_FlatSeriesCollapses(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 50
	}
	values, err := NewBollingerBands(20, 2.0).Calculate(candlesFromCloses(closes))
	require.NoError(t, err)

	last := len(closes) - 1
	assert.InDelta(t, 50, values["middle"][last], 0.0001)
	assert.InDelta(t, 50, values["upper"][last], 0.0001)
	assert.InDelta(t, 50, values["lower"][last], 0.0001)
}

func TestVolumeRatio_LatestAgainstTrailingMean(t *testing.T) {
	candles := candlesFromCloses(make([]float64, 21))
	for i := range candles {
		candles[i].Close = 100
		candles[i].Volume = 1000
	}
	candles[len(candles)-1].Volume = 3000

	ratio, err := VolumeRatio(candles, 20)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, ratio, 0.0001)
}

func TestEngine_CalculateAllProducesEverySnapshot(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}
	engine := NewDefaultEngine(4)

	singles, multis, err := engine.CalculateAll(context.Background(), candlesFromCloses(closes))
	require.NoError(t, err)

	for _, name := range []string{"RSI_14", "SMA_5", "SMA_20", "SMA_60", "ATR_14"} {
		assert.Contains(t, singles, name)
		assert.Len(t, singles[name], len(closes))
	}
	for _, name := range []string{"MACD_12_26", "BollingerBands_20_2.0"} {
		assert.Contains(t, multis, name)
	}
}

func TestEngine_CalculateAllHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewDefaultEngine(2)
	_, _, err := engine.CalculateAll(ctx, candlesFromCloses(make([]float64, 80)))
	assert.ErrorIs(t, err, context.Canceled)
}
