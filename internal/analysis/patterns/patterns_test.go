package patterns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksignal/internal/analysis"
	"stocksignal/internal/models"
)

func candlesFromOHLC(closes, highs, lows []float64) []models.Candle {
	candles := make([]models.Candle, len(closes))
	for i := range closes {
		candles[i] = models.Candle{
			Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:      closes[i],
			High:      highs[i],
			Low:       lows[i],
			Close:     closes[i],
			Volume:    10000,
		}
	}
	return candles
}

func candlesFromCloses(closes []float64) []models.Candle {
	highs := make([]float64, len(closes))
	lows := make([]float64, len(closes))
	for i, c := range closes {
		highs[i] = c + 1
		lows[i] = c - 1
	}
	return candlesFromOHLC(closes, highs, lows)
}

func findPattern(patterns []analysis.Pattern, typ analysis.PatternType) (analysis.Pattern, bool) {
	for _, p := range patterns {
		if p.Type == typ {
			return p, true
		}
	}
	return analysis.Pattern{}, false
}

func TestDetect_TooFewBars(t *testing.T) {
	closes := make([]float64, 19)
	for i := range closes {
		closes[i] = 100
	}
	assert.Nil(t, NewDetector().Detect(candlesFromCloses(closes)))
}

func TestDetect_RisingSeriesIsStrongUptrend(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	patterns := NewDetector().Detect(candlesFromCloses(closes))
	require.NotEmpty(t, patterns)

	trend := patterns[0]
	assert.Equal(t, analysis.PatternTrend, trend.Type)
	assert.Equal(t, analysis.PatternBullish, trend.Direction)
	assert.Equal(t, analysis.ReliabilityHigh, trend.Reliability)
	assert.Contains(t, trend.Description, "10-bar change")

	sr := patterns[len(patterns)-1]
	assert.Equal(t, analysis.PatternSupportResistance, sr.Type)
	assert.InDelta(t, 139, sr.Support, 0.0001)
	assert.InDelta(t, 160, sr.Resistance, 0.0001)
}

func TestDetect_DoubleBottomConfirmed(t *testing.T) {
	// Two matched troughs in the trailing lows, current price above the
	// first low plus the 2% confirmation margin.
	lows := []float64{
		104, 103, 100, 103, 104, 105, 106, 103, 100.5, 103,
		104, 105, 105, 105, 105, 105, 105, 105, 105, 105,
	}
	closes := make([]float64, 30)
	highs := make([]float64, 30)
	allLows := make([]float64, 30)
	for i := 0; i < 30; i++ {
		closes[i] = 108
		highs[i] = 109
		allLows[i] = 105
	}
	copy(allLows[10:], lows)
	closes[29] = 110
	highs[29] = 111

	patterns := NewDetector().Detect(candlesFromOHLC(closes, highs, allLows))
	p, ok := findPattern(patterns, analysis.PatternDoubleBottom)
	require.True(t, ok)
	assert.Equal(t, analysis.PatternBullish, p.Direction)
	assert.Equal(t, analysis.ReliabilityHigh, p.Reliability)
	assert.InDelta(t, 100, p.Support, 0.0001)
}

func TestDetect_RangeBoundMarket(t *testing.T) {
	closes := make([]float64, 40)
	highs := make([]float64, 40)
	lows := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
		highs[i] = 101
		lows[i] = 99
	}
	patterns := NewDetector().Detect(candlesFromOHLC(closes, highs, lows))

	p, ok := findPattern(patterns, analysis.PatternRange)
	require.True(t, ok)
	assert.Equal(t, analysis.ReliabilityHigh, p.Reliability)
	assert.InDelta(t, 99, p.Support, 0.0001)
	assert.InDelta(t, 101, p.Resistance, 0.0001)

	trend, ok := findPattern(patterns, analysis.PatternTrend)
	require.True(t, ok)
	assert.Equal(t, analysis.PatternNeutral, trend.Direction)
}

// doubleTopSeries builds a peak-valley-peak close series with the peaks at
// indexes 10 and 30 and the valley at 20.
func doubleTopSeries() []models.Candle {
	closes := make([]float64, 60)
	for i := range closes {
		switch {
		case i <= 10:
			closes[i] = 100 + float64(i)
		case i <= 20:
			closes[i] = 110 - float64(i-10)
		case i <= 30:
			closes[i] = 100 + float64(i-20)
		case i <= 40:
			closes[i] = 110 - 1.5*float64(i-30)
		default:
			closes[i] = 95 - 0.5*float64(i-40)
		}
	}
	return candlesFromCloses(closes)
}

func TestScanner_FindsDoubleTop(t *testing.T) {
	scanner := NewScanner(DefaultScannerConfig())
	matches := scanner.ScanDoubleTops(doubleTopSeries())
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, analysis.PatternDoubleTop, m.Type)
	assert.Equal(t, 10, m.FirstIndex)
	assert.Equal(t, 20, m.MiddleIndex)
	assert.Equal(t, 30, m.SecondIndex)
	assert.InDelta(t, 110, m.FirstPrice, 0.0001)
	assert.InDelta(t, 100, m.MiddlePrice, 0.0001)
	assert.InDelta(t, 110, m.SecondPrice, 0.0001)
	assert.Equal(t, 95, m.Confidence)
	assert.InDelta(t, 90, m.TargetPrice, 0.0001)
}

func TestScanner_FindsDoubleBottom(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		switch {
		case i <= 10:
			closes[i] = 110 - float64(i)
		case i <= 20:
			closes[i] = 100 + float64(i-10)
		case i <= 30:
			closes[i] = 110 - float64(i-20)
		case i <= 40:
			closes[i] = 100 + 1.5*float64(i-30)
		default:
			closes[i] = 115 + 0.5*float64(i-40)
		}
	}
	scanner := NewScanner(DefaultScannerConfig())
	matches := scanner.ScanDoubleBottoms(candlesFromCloses(closes))
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, analysis.PatternDoubleBottom, m.Type)
	assert.Equal(t, 10, m.FirstIndex)
	assert.Equal(t, 30, m.SecondIndex)
	assert.Equal(t, 100, m.Confidence)
	assert.InDelta(t, 120, m.TargetPrice, 0.0001)
}

func TestScanner_MinConfidenceFilter(t *testing.T) {
	cfg := DefaultScannerConfig()
	cfg.MinConfidence = 96
	matches := NewScanner(cfg).ScanDoubleTops(doubleTopSeries())
	assert.Empty(t, matches)
}

func TestScanner_SeriesTooShort(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i%3)
	}
	assert.Nil(t, NewScanner(DefaultScannerConfig()).ScanDoubleTops(candlesFromCloses(closes)))
}
